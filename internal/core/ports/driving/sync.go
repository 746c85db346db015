package driving

import (
	"context"
	"time"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
)

// RunState is the terminal state of one sync invocation.
type RunState string

const (
	// RunSuccess means the run completed and wrote or skipped records.
	RunSuccess RunState = "success"

	// RunNoData means the source returned nothing; terminal success
	// with zero writes.
	RunNoData RunState = "no_data"

	// RunError means the run failed; a log entry was still recorded.
	RunError RunState = "error"
)

// RunResult summarises one sync invocation for one tribunal.
type RunResult struct {
	// RunID uniquely identifies the invocation.
	RunID string `json:"runId"`

	// Tribunal is the court system this run targeted.
	Tribunal string `json:"tribunal"`

	// State is the terminal state.
	State RunState `json:"state"`

	// Fetched, Processed, Written, Skipped are the run's totals.
	Fetched   int `json:"fetched"`
	Processed int `json:"processed"`
	Written   int `json:"written"`
	Skipped   int `json:"skipped"`

	// Errors holds per-record and terminal failure messages.
	Errors []string `json:"errors,omitempty"`

	// Quota is the advisory budget status consulted at run start.
	Quota domain.QuotaStatus `json:"quota"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// SyncRunner drives one scheduled incremental synchronisation for one
// court system. Every invocation records exactly one additive audit
// log merge for (day, tribunal), whatever the outcome.
type SyncRunner interface {
	Run(ctx context.Context, tribunalCode string) (*RunResult, error)
}

// QuotaService classifies the day's remaining write budget.
// Advisory: read failures surface as a conservative estimate, never
// as a blocking error.
type QuotaService interface {
	Status(ctx context.Context, day time.Time) domain.QuotaStatus
}
