package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driving"
	"github.com/atrium-legal/jurisync-cli/internal/logger"
	"github.com/atrium-legal/jurisync-cli/internal/resilience"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncRunner = (*SyncOrchestrator)(nil)

// Sync orchestrator defaults.
const (
	// DefaultPageSize is the per-page record count requested from the
	// official API.
	DefaultPageSize = 100

	// DefaultMaxPages caps one run's pagination.
	DefaultMaxPages = 10

	// DefaultPageDelay is the polite pause between page fetches.
	DefaultPageDelay = 2 * time.Second
)

// SyncConfig tunes a SyncOrchestrator.
type SyncConfig struct {
	// PageSize, MaxPages and PageDelay bound the paginated fetch.
	// Zero values select the defaults.
	PageSize  int
	MaxPages  int
	PageDelay time.Duration
}

// SyncOrchestrator drives one scheduled synchronisation: fetch one
// tribunal from the official source, normalise, write changed records
// and append the daily audit entry. Separate tribunal runs share no
// state and may run concurrently as independent invocations.
type SyncOrchestrator struct {
	official driven.SourceAdapter
	registry driven.NormaliserRegistry
	writer   *Writer
	quota    driving.QuotaService
	store    driven.DocumentStore
	executor *resilience.Executor
	cfg      SyncConfig

	// injected in tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewSyncOrchestrator wires an orchestrator. The executor guards the
// official adapter's page fetches.
func NewSyncOrchestrator(
	official driven.SourceAdapter,
	registry driven.NormaliserRegistry,
	writer *Writer,
	quota driving.QuotaService,
	store driven.DocumentStore,
	executor *resilience.Executor,
	cfg SyncConfig,
) *SyncOrchestrator {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.PageDelay <= 0 {
		cfg.PageDelay = DefaultPageDelay
	}
	return &SyncOrchestrator{
		official: official,
		registry: registry,
		writer:   writer,
		quota:    quota,
		store:    store,
		executor: executor,
		cfg:      cfg,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Run executes one sync for one tribunal. Whatever the terminal
// state, exactly one additive audit log merge is recorded for
// (day, tribunal) before Run returns.
func (o *SyncOrchestrator) Run(ctx context.Context, tribunalCode string) (*driving.RunResult, error) {
	res := &driving.RunResult{
		RunID:     uuid.NewString(),
		Tribunal:  tribunalCode,
		StartedAt: o.now(),
	}

	// The audit entry is written on every path out of this function,
	// including the error ones.
	var runErr error
	defer func() {
		res.FinishedAt = o.now()
		if err := o.recordLog(res); err != nil {
			logger.Warn("sync %s: audit log write failed: %v", res.RunID, err)
			res.Errors = append(res.Errors, fmt.Sprintf("audit log: %v", err))
		}
	}()

	logger.Section("Sync " + tribunalCode)
	logger.Info("run %s starting for %s", res.RunID, tribunalCode)

	if _, ok := domain.TribunalByCode(tribunalCode); !ok {
		res.State = driving.RunError
		runErr = fmt.Errorf("%w: unknown tribunal %q", domain.ErrInvalidInput, tribunalCode)
		res.Errors = append(res.Errors, runErr.Error())
		return res, runErr
	}

	res.Quota = o.quota.Status(ctx, o.now())
	logger.Info("quota: %s (%d/%d writes)", res.Quota.Status, res.Quota.WritesUsed,
		res.Quota.WritesUsed+res.Quota.WritesRemaining)
	if res.Quota.Status == domain.QuotaExceeded {
		res.State = driving.RunError
		runErr = domain.ErrQuotaExceeded
		res.Errors = append(res.Errors, runErr.Error())
		return res, runErr
	}

	cases, fetchErr := o.fetchAndNormalise(ctx, tribunalCode, res)
	if fetchErr != nil {
		res.State = driving.RunError
		runErr = fetchErr
		res.Errors = append(res.Errors, fetchErr.Error())
		return res, runErr
	}

	if res.Fetched == 0 {
		res.State = driving.RunNoData
		logger.Info("run %s: no data", res.RunID)
		return res, nil
	}

	batch := o.writer.WriteBatch(ctx, cases)
	res.Written = batch.WriteCost
	res.Skipped = batch.Skipped
	for _, f := range batch.Failures {
		res.Errors = append(res.Errors, fmt.Sprintf("write %s: %v", f.ProcessID, f.Err))
	}

	res.State = driving.RunSuccess
	logger.Info("run %s: %d fetched, %d written, %d skipped, %d errors",
		res.RunID, res.Fetched, res.Written, res.Skipped, len(res.Errors))
	return res, nil
}

// fetchAndNormalise pulls pages from the official source until an
// empty page, the page cap, or a terminal fetch failure. Records that
// fail normalisation are logged into the result and skipped; they
// never abort the run.
func (o *SyncOrchestrator) fetchAndNormalise(
	ctx context.Context,
	tribunalCode string,
	res *driving.RunResult,
) ([]domain.CanonicalCase, error) {
	var cases []domain.CanonicalCase

	for page := 1; page <= o.cfg.MaxPages; page++ {
		var raws []domain.RawCase
		err := o.executor.Do(ctx, "fetch "+tribunalCode, func(ctx context.Context) error {
			var ferr error
			raws, ferr = o.official.Search(ctx, tribunalCode, driven.SearchOptions{
				Page:     page,
				PageSize: o.cfg.PageSize,
			})
			return ferr
		})
		if err != nil {
			return cases, fmt.Errorf("fetch page %d: %w", page, err)
		}

		if len(raws) == 0 {
			break
		}
		res.Fetched += len(raws)

		for i := range raws {
			cc, nerr := o.registry.Normalise(&raws[i])
			if nerr != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("normalise record %d page %d: %v", i, page, nerr))
				continue
			}
			res.Processed++
			cases = append(cases, *cc)
		}

		// A short page is the last one; no need to ask again.
		if len(raws) < o.cfg.PageSize {
			break
		}
		if page < o.cfg.MaxPages {
			if err := o.sleep(ctx, o.cfg.PageDelay); err != nil {
				return cases, err
			}
		}
	}

	return cases, nil
}

// recordLog merges this run's totals into the day's audit document.
// Accumulation is additive per tribunal: the existing totals are read
// and summed, never overwritten wholesale.
func (o *SyncOrchestrator) recordLog(res *driving.RunResult) error {
	// The run context may already be cancelled; the audit entry still
	// has to land.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	day := res.StartedAt
	key := domain.SyncLogKey(day)

	totals := domain.TribunalDayTotals{
		Fetched:   res.Fetched,
		Processed: res.Processed,
		Written:   res.Written,
		Skipped:   res.Skipped,
		Failed:    len(res.Errors),
		Errors:    res.Errors,
		LastRun:   res.FinishedAt,
		LastRunID: res.RunID,
	}

	stored, err := o.store.Get(ctx, key)
	if err == nil && stored.Exists {
		if entry, derr := decodeSyncLog(stored.Fields); derr == nil {
			if prev, ok := entry.Tribunals[res.Tribunal]; ok {
				prev.Add(totals)
				totals = prev
			}
		}
	}
	// A failed read degrades to overwrite-with-own-totals; better a
	// lossy entry than none.

	return o.store.SetMerge(ctx, key, map[string]any{
		"date": day.Format("2006-01-02"),
		"tribunals": map[string]any{
			res.Tribunal: totals,
		},
	})
}

// sleepCtx waits for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
