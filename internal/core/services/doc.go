// Package services contains the core pipeline use-cases: the
// consolidated search, the change-detection writer, the quota tracker
// and the sync orchestrator. Services depend only on ports and are
// wired with explicit instances, never package singletons.
package services
