// Package driven defines the outbound ports: interfaces the core
// services depend on and adapters implement (source adapters, the
// document store, the normaliser registry).
package driven
