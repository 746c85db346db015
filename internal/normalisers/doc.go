// Package normalisers converts raw, source-tagged case records into
// the canonical schema. The parent package holds the registry and the
// field logic every source shares (dates, parties, status keywords);
// each subpackage maps one source's raw variant.
package normalisers
