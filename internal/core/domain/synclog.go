package domain

import "time"

// TribunalDayTotals are the accumulated counters for one tribunal on
// one calendar day. Same-day runs add into the existing totals; an
// entry is never overwritten wholesale.
type TribunalDayTotals struct {
	// Fetched is the number of raw records pulled from the source.
	Fetched int `json:"totalFetched"`

	// Processed is the number of records that normalised cleanly.
	Processed int `json:"success"`

	// Written is the number of billable writes performed.
	Written int `json:"updated"`

	// Skipped is the number of unchanged records left alone.
	Skipped int `json:"skipped"`

	// Failed is the number of per-record failures.
	Failed int `json:"failed"`

	// Errors holds the per-record failure messages, newest last.
	Errors []string `json:"errors,omitempty"`

	// LastRun is when the most recent run for this tribunal finished.
	LastRun time.Time `json:"lastRun"`

	// LastRunID identifies the most recent run.
	LastRunID string `json:"lastRunId,omitempty"`
}

// Add merges another run's totals into this entry.
func (t *TribunalDayTotals) Add(other TribunalDayTotals) {
	t.Fetched += other.Fetched
	t.Processed += other.Processed
	t.Written += other.Written
	t.Skipped += other.Skipped
	t.Failed += other.Failed
	t.Errors = append(t.Errors, other.Errors...)
	if other.LastRun.After(t.LastRun) {
		t.LastRun = other.LastRun
		t.LastRunID = other.LastRunID
	}
}

// SyncLogEntry is the daily audit document: one per calendar day,
// keyed by date, mapping tribunal code to accumulated totals.
type SyncLogEntry struct {
	// Date is the calendar day in YYYY-MM-DD form.
	Date string `json:"date"`

	// Tribunals maps the tribunal code to its accumulated totals.
	Tribunals map[string]TribunalDayTotals `json:"tribunals"`
}

// SyncLogKey is the storage key for a day's log document.
func SyncLogKey(day time.Time) string {
	return "synclogs/" + day.Format("2006-01-02")
}

// CaseKey is the storage key for a canonical case document.
func CaseKey(processID string) string {
	return "cases/" + processID
}
