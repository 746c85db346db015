// Package driving defines the inbound ports: the use-case interfaces
// the CLI invokes on the core services.
package driving
