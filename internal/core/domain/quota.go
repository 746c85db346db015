package domain

// QuotaLevel classifies how much of the daily write budget is left.
type QuotaLevel string

const (
	// QuotaHealthy means usage is below 80% of the budget.
	QuotaHealthy QuotaLevel = "HEALTHY"

	// QuotaWarning means usage is at or above 80% but under 100%.
	QuotaWarning QuotaLevel = "WARNING"

	// QuotaExceeded means the budget is spent.
	QuotaExceeded QuotaLevel = "EXCEEDED"

	// QuotaError means the counters could not be read; the reported
	// usage is a conservative estimate, not a measurement.
	QuotaError QuotaLevel = "ERROR"
)

// QuotaStatus is the advisory view of the day's write budget.
// Recomputed on demand, never stored.
type QuotaStatus struct {
	// Status is the classified level.
	Status QuotaLevel `json:"status"`

	// WritesUsed is the number of billable writes performed today.
	WritesUsed int `json:"writesUsed"`

	// WritesRemaining is the budget minus usage, floored at zero.
	WritesRemaining int `json:"writesRemaining"`

	// WritesPercent is usage as a percentage of the budget.
	WritesPercent float64 `json:"writesPercent"`
}
