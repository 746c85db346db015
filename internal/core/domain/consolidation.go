package domain

// SourceResult records one adapter's contribution to a consolidation
// run. A failed adapter contributes an empty case list and Err.
type SourceResult struct {
	// Source is the adapter's source system identifier.
	Source string `json:"source"`

	// Count is the number of raw records the adapter returned.
	Count int `json:"count"`

	// Cases are the normalised records from this source.
	Cases []CanonicalCase `json:"-"`

	// Err holds the isolated failure, nil on success.
	Err error `json:"-"`
}

// Conflict is one factual disagreement between two sources describing
// the same case. Detection never blocks merging; conflicts are
// reported alongside the merged result.
type Conflict struct {
	// ProcessID identifies the disputed case.
	ProcessID string `json:"processId"`

	// Field names the disagreeing field: classification, subject or filingDate.
	Field string `json:"field"`

	// SourceA produced ValueA; it is the value currently held.
	SourceA string `json:"sourceA"`

	// SourceB produced ValueB, the newly observed value.
	SourceB string `json:"sourceB"`

	// ValueA is the held value.
	ValueA string `json:"valueA"`

	// ValueB is the disagreeing value.
	ValueB string `json:"valueB"`
}

// Conflict field names.
const (
	ConflictFieldClassification = "classification"
	ConflictFieldSubject        = "subject"
	ConflictFieldFilingDate     = "filingDate"
)

// ConsolidationResult is the outcome of one consolidated search.
// It is always well formed: a run with every source failed still
// yields an empty result, never an error.
type ConsolidationResult struct {
	// UniqueCases holds one merged record per ProcessID.
	UniqueCases []CanonicalCase `json:"uniqueCases"`

	// DuplicateCount is the number of records merged away.
	DuplicateCount int `json:"duplicateCount"`

	// Conflicts lists the factual disagreements found while merging.
	Conflicts []Conflict `json:"conflicts"`

	// SourceResults holds the per-adapter outcomes, failures included.
	SourceResults []SourceResult `json:"sourceResults"`

	// SourcesSuccessful counts the adapters that settled without error.
	SourcesSuccessful int `json:"sourcesSuccessful"`
}
