// Package connectors contains the source adapter implementations.
// Each subpackage hides one external retrieval mechanism behind the
// driven.SourceAdapter port: the official query API (datajud), the
// court-portal scraping vendor (portaltj) and the headless-browser
// automation vendor (courtbot).
package connectors
