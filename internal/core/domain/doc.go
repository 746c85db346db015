// Package domain contains the core business entities and logic for
// the case aggregation pipeline: canonical case records, the raw
// source variants they are normalised from, consolidation outcomes,
// sync audit entries and quota classification.
//
// Domain types have no dependencies on adapters or infrastructure.
package domain
