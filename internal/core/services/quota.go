package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driving"
	"github.com/atrium-legal/jurisync-cli/internal/logger"
)

// Ensure QuotaTracker implements the interface.
var _ driving.QuotaService = (*QuotaTracker)(nil)

// DefaultDailyWriteBudget is the storage tier's daily write budget.
const DefaultDailyWriteBudget = 20000

// quotaWarningThreshold is the usage fraction where HEALTHY turns to
// WARNING.
const quotaWarningThreshold = 0.8

// QuotaTracker classifies the day's remaining write budget from the
// accumulated sync log counters. The check is advisory: a read
// failure yields a conservative mid-range estimate, never an error
// that blocks the caller.
type QuotaTracker struct {
	store  driven.DocumentStore
	budget int
}

// NewQuotaTracker creates a tracker. A non-positive budget selects
// the default.
func NewQuotaTracker(store driven.DocumentStore, budget int) *QuotaTracker {
	if budget <= 0 {
		budget = DefaultDailyWriteBudget
	}
	return &QuotaTracker{store: store, budget: budget}
}

// Status computes the quota status for the given day.
func (q *QuotaTracker) Status(ctx context.Context, day time.Time) domain.QuotaStatus {
	used, err := q.writesUsed(ctx, day)
	if err != nil {
		logger.Warn("quota counters unreadable, assuming mid-range usage: %v", err)
		// Conservative estimate: half the budget spent.
		return classify(q.budget/2, q.budget, domain.QuotaError)
	}
	return classify(used, q.budget, "")
}

// writesUsed sums the day's written counters across every tribunal.
func (q *QuotaTracker) writesUsed(ctx context.Context, day time.Time) (int, error) {
	stored, err := q.store.Get(ctx, domain.SyncLogKey(day))
	if err != nil {
		return 0, err
	}
	if !stored.Exists {
		return 0, nil
	}

	entry, err := decodeSyncLog(stored.Fields)
	if err != nil {
		return 0, err
	}

	used := 0
	for _, totals := range entry.Tribunals {
		used += totals.Written
	}
	return used, nil
}

// classify maps usage onto a quota level. A non-empty override wins;
// it is used to mark estimated (unreadable-counter) statuses.
func classify(used, budget int, override domain.QuotaLevel) domain.QuotaStatus {
	percent := float64(used) / float64(budget) * 100

	level := domain.QuotaHealthy
	switch {
	case float64(used) >= float64(budget):
		level = domain.QuotaExceeded
	case float64(used) >= float64(budget)*quotaWarningThreshold:
		level = domain.QuotaWarning
	}
	if override != "" {
		level = override
	}

	remaining := budget - used
	if remaining < 0 {
		remaining = 0
	}

	return domain.QuotaStatus{
		Status:          level,
		WritesUsed:      used,
		WritesRemaining: remaining,
		WritesPercent:   percent,
	}
}

// decodeSyncLog rebuilds a sync log entry from its stored field map.
// The store hands back generic JSON shapes; a marshal round-trip is
// the simplest faithful decode.
func decodeSyncLog(fields map[string]any) (*domain.SyncLogEntry, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var entry domain.SyncLogEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	if entry.Tribunals == nil {
		entry.Tribunals = make(map[string]domain.TribunalDayTotals)
	}
	return &entry, nil
}
