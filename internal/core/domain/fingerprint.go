package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"
)

// fingerprintFields is the stable subset hashed for change detection.
// Sync bookkeeping (SyncStatus, fetch timestamps) is deliberately
// excluded so two runs producing identical semantic content yield
// identical fingerprints.
type fingerprintFields struct {
	CaseNumber     string     `json:"caseNumber"`
	LastUpdateDate time.Time  `json:"lastUpdateDate"`
	LastMovement   *Movement  `json:"lastMovement"`
	Status         CaseStatus `json:"status"`
	Parties        []Party    `json:"parties"`
}

// Fingerprint computes the content hash over the stable field subset.
// Party order is normalised before hashing so bucket iteration order
// cannot leak into the digest.
func (c *CanonicalCase) Fingerprint() string {
	parties := c.AllParties()
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].Name != parties[j].Name {
			return parties[i].Name < parties[j].Name
		}
		return parties[i].DocumentID < parties[j].DocumentID
	})

	payload := fingerprintFields{
		CaseNumber:     c.CaseNumber,
		LastUpdateDate: c.LastUpdateDate.UTC(),
		LastMovement:   c.LastMovement,
		Status:         c.Status,
		Parties:        parties,
	}

	// Struct marshalling is deterministic: fixed field order, no maps.
	data, err := json.Marshal(payload)
	if err != nil {
		// Only unmarshalable types can fail here; none are present.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
