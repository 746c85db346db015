package services

import (
	"context"
	"fmt"
	"time"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
	"github.com/atrium-legal/jurisync-cli/internal/logger"
)

// WriteReason records why a case was written.
type WriteReason string

const (
	// ReasonNew means no document existed under the case key.
	ReasonNew WriteReason = "new"

	// ReasonUpdated means the stored fingerprint differed.
	ReasonUpdated WriteReason = "updated"
)

// WriteFailure is one case that could not be written.
type WriteFailure struct {
	// ProcessID identifies the failed case.
	ProcessID string `json:"processId"`

	// Err is the failure.
	Err error `json:"-"`
}

// BatchResult aggregates one writer batch.
type BatchResult struct {
	// WriteCost is the number of billable writes performed.
	WriteCost int `json:"writeCost"`

	// Skipped is the number of unchanged cases left alone.
	Skipped int `json:"skipped"`

	// Failures lists the cases that could not be written.
	Failures []WriteFailure `json:"failures,omitempty"`

	// TotalProcessed is the number of cases examined.
	TotalProcessed int `json:"totalProcessed"`
}

// Writer persists canonical cases through change detection: a case
// whose content fingerprint matches the stored one is skipped, so
// unchanged records cost nothing against the write budget.
type Writer struct {
	store driven.DocumentStore
	now   func() time.Time
}

// NewWriter creates a writer over the store.
func NewWriter(store driven.DocumentStore) *Writer {
	return &Writer{store: store, now: time.Now}
}

// WriteCase persists one case if its content changed. Returns the
// cost (0 or 1) and the reason when a write happened.
func (w *Writer) WriteCase(ctx context.Context, c *domain.CanonicalCase) (int, WriteReason, error) {
	hash := c.Fingerprint()

	stored, err := w.store.Get(ctx, domain.CaseKey(c.ProcessID))
	if err != nil {
		return 0, "", fmt.Errorf("get case %s: %w", c.ProcessID, err)
	}

	reason := ReasonNew
	if stored.Exists {
		if prev, _ := stored.Fields["contentHash"].(string); prev == hash {
			logger.Debug("case %s unchanged, skipping", c.ProcessID)
			return 0, "", nil
		}
		reason = ReasonUpdated
	}

	c.ContentHash = hash
	c.SyncStatus = "synced"
	fields := caseFields(c, w.now())
	if err := w.store.SetMerge(ctx, domain.CaseKey(c.ProcessID), fields); err != nil {
		return 0, "", fmt.Errorf("write case %s: %w", c.ProcessID, err)
	}

	logger.Debug("case %s written (%s)", c.ProcessID, reason)
	return 1, reason, nil
}

// WriteBatch processes each case independently; one failure is
// recorded and never aborts the rest.
func (w *Writer) WriteBatch(ctx context.Context, cases []domain.CanonicalCase) *BatchResult {
	res := &BatchResult{TotalProcessed: len(cases)}

	for i := range cases {
		cost, _, err := w.WriteCase(ctx, &cases[i])
		if err != nil {
			res.Failures = append(res.Failures, WriteFailure{
				ProcessID: cases[i].ProcessID,
				Err:       err,
			})
			continue
		}
		if cost == 0 {
			res.Skipped++
		}
		res.WriteCost += cost
	}

	return res
}

// caseFields flattens a case into the stored field map. The merge
// write overlays these fields; anything another writer added under
// the key survives.
func caseFields(c *domain.CanonicalCase, now time.Time) map[string]any {
	fields := map[string]any{
		"processId":      c.ProcessID,
		"caseNumber":     c.CaseNumber,
		"numberValid":    c.NumberValid,
		"tribunal":       c.Tribunal,
		"classification": c.Classification,
		"subject":        c.Subject,
		"parties":        c.Parties,
		"judge":          c.Judge,
		"claimValue":     c.ClaimValue,
		"instanceLevel":  c.InstanceLevel,
		"status":         string(c.Status),
		"contentHash":    c.ContentHash,
		"syncStatus":     c.SyncStatus,
		"sourceSystem":   c.SourceSystem,
		"syncedAt":       now.UTC().Format(time.RFC3339),
	}
	if !c.FilingDate.IsZero() {
		fields["filingDate"] = c.FilingDate.UTC().Format(time.RFC3339)
	}
	if !c.LastUpdateDate.IsZero() {
		fields["lastUpdateDate"] = c.LastUpdateDate.UTC().Format(time.RFC3339)
	}
	if c.LastMovement != nil {
		fields["lastMovement"] = c.LastMovement
	}
	return fields
}
