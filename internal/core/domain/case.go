package domain

import "time"

// Unclassified is the explicit placeholder name stored when a source
// omits the classification or subject. Conflict detection compares
// against a stable value, never nil.
const Unclassified = "unclassified"

// CaseStatus is the lifecycle state inferred from the latest
// procedural movement.
type CaseStatus string

const (
	// StatusActive means the case is still moving.
	StatusActive CaseStatus = "active"

	// StatusConcluded means a final judgment was rendered.
	StatusConcluded CaseStatus = "concluded"

	// StatusArchived means the case was shelved or extinguished.
	StatusArchived CaseStatus = "archived"
)

// PartyRole buckets the free-text role labels sources attach to
// participants.
type PartyRole string

const (
	// RoleClaimant is the party that brought the case.
	RoleClaimant PartyRole = "claimant"

	// RoleRespondent is the party the case was brought against.
	RoleRespondent PartyRole = "respondent"

	// RoleIntervenor covers third parties, experts and the public
	// prosecutor.
	RoleIntervenor PartyRole = "intervenor"

	// RoleOther holds labels no keyword table matched.
	RoleOther PartyRole = "other"
)

// Party is one normalised participant.
type Party struct {
	// Name is upper-cased with collapsed whitespace.
	Name string `json:"name"`

	// DocumentID is the digits-only CPF or CNPJ, empty when the
	// source withheld it.
	DocumentID string `json:"documentId,omitempty"`

	// PersonType distinguishes natural and legal persons when the
	// source says.
	PersonType string `json:"personType,omitempty"`
}

// Classification is the coded procedural class of a case.
type Classification struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Subject is the coded matter in dispute.
type Subject struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Movement is one procedural step. Only the most recent one is kept
// on the canonical record.
type Movement struct {
	// Date is when the movement was registered, zero when unparseable.
	Date time.Time `json:"date"`

	// Code is the national movement table code, empty for sources
	// that only emit text.
	Code string `json:"code,omitempty"`

	// Name is the movement's title.
	Name string `json:"name"`

	// Description carries the free-text complement.
	Description string `json:"description,omitempty"`
}

// CanonicalCase is the merged, source-independent view of one judicial
// case. It is the unit of change detection and persistence.
type CanonicalCase struct {
	// ProcessID is the digits-only case number, the merge and storage
	// key.
	ProcessID string `json:"processId"`

	// CaseNumber is the display rendering in the standard
	// NNNNNNN-DD.AAAA.J.TR.OOOO format.
	CaseNumber string `json:"caseNumber"`

	// NumberValid reports whether ProcessID carries the full 20
	// digits.
	NumberValid bool `json:"numberValid"`

	// Tribunal is the court system resolved from the number's
	// segment.
	Tribunal Tribunal `json:"tribunal"`

	// Classification and Subject hold the coded class and matter,
	// with the unclassified placeholder when unknown.
	Classification Classification `json:"classification"`
	Subject        Subject        `json:"subject"`

	// FilingDate is when the case was distributed. Zero when no
	// source supplied a parseable date.
	FilingDate time.Time `json:"filingDate"`

	// LastUpdateDate is the source's latest-change timestamp.
	LastUpdateDate time.Time `json:"lastUpdateDate"`

	// Parties groups participants by role.
	Parties map[PartyRole][]Party `json:"parties"`

	// Judge is the assigned judge's name, when any source knows it.
	Judge string `json:"judge,omitempty"`

	// ClaimValue is the monetary value of the claim in BRL.
	ClaimValue float64 `json:"claimValue,omitempty"`

	// InstanceLevel is the degree of jurisdiction (G1, G2, ...).
	InstanceLevel string `json:"instanceLevel,omitempty"`

	// Status is the inferred lifecycle state.
	Status CaseStatus `json:"status"`

	// LastMovement is the most recent procedural step, nil when the
	// source returned none.
	LastMovement *Movement `json:"lastMovement,omitempty"`

	// ContentHash is the change-detection fingerprint of the stored
	// revision.
	ContentHash string `json:"contentHash,omitempty"`

	// SyncStatus is write bookkeeping, excluded from the fingerprint.
	SyncStatus string `json:"syncStatus,omitempty"`

	// SourceSystem identifies which adapter last contributed to this
	// record.
	SourceSystem string `json:"sourceSystem"`
}

// AllParties flattens the role buckets into one slice, in a fixed
// role order so callers iterate deterministically.
func (c *CanonicalCase) AllParties() []Party {
	var out []Party
	for _, role := range []PartyRole{RoleClaimant, RoleRespondent, RoleIntervenor, RoleOther} {
		out = append(out, c.Parties[role]...)
	}
	return out
}
