package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driving"
	"github.com/atrium-legal/jurisync-cli/internal/logger"
	"github.com/atrium-legal/jurisync-cli/internal/resilience"
)

// Ensure Consolidator implements the interface.
var _ driving.ConsolidatedSearch = (*Consolidator)(nil)

// DefaultSourceTimeout bounds one adapter's share of a consolidated
// search. An adapter that blows the timeout contributes an empty
// result and an error; it never blocks the others.
const DefaultSourceTimeout = 30 * time.Second

// filingDateTolerance is how far two sources' filing dates may drift
// before the disagreement counts as a conflict. Sources truncate
// timestamps differently; a single calendar day is formatting noise.
const filingDateTolerance = 24 * time.Hour

// ConsolidatorConfig tunes a Consolidator.
type ConsolidatorConfig struct {
	// SourceTimeout bounds each adapter call. Zero selects the default.
	SourceTimeout time.Duration

	// Executor configures the per-adapter resilience executors. The
	// Breaker field is ignored; each adapter gets its own breaker.
	Executor resilience.Config

	// CanonicalSource names the source whose values win merge
	// disagreements. Empty selects the official API.
	CanonicalSource string
}

// Consolidator fans a query out to every source adapter, isolates
// per-adapter failures, normalises what came back and merges records
// describing the same case.
type Consolidator struct {
	adapters  []driven.SourceAdapter
	registry  driven.NormaliserRegistry
	executors map[string]*resilience.Executor
	timeout   time.Duration
	canonical string
}

// NewConsolidator creates a consolidator over the given adapters.
// Each adapter gets its own executor and circuit breaker: one flaky
// source tripping its breaker must not gate the others.
func NewConsolidator(
	adapters []driven.SourceAdapter,
	registry driven.NormaliserRegistry,
	cfg ConsolidatorConfig,
) *Consolidator {
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = DefaultSourceTimeout
	}
	if cfg.CanonicalSource == "" {
		cfg.CanonicalSource = domain.SourceDataJud
	}

	executors := make(map[string]*resilience.Executor, len(adapters))
	for _, a := range adapters {
		ecfg := cfg.Executor
		ecfg.Breaker = resilience.NewBreaker(0, 0)
		executors[a.Source()] = resilience.NewExecutor(ecfg)
	}

	return &Consolidator{
		adapters:  adapters,
		registry:  registry,
		executors: executors,
		timeout:   cfg.SourceTimeout,
		canonical: cfg.CanonicalSource,
	}
}

// Search runs the consolidated search. The result is always well
// formed: per-source failures are recorded in SourceResults and a run
// with every source down yields an empty result, not an error.
func (c *Consolidator) Search(ctx context.Context, query string) (*domain.ConsolidationResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	logger.Section("Consolidated Search")
	logger.Debug("Query: %q across %d sources", query, len(c.adapters))

	// Fan out: one task per adapter, each time-boxed and isolated.
	// Results land in a fixed slot per adapter, so no locking and a
	// deterministic merge order once all tasks have joined.
	results := make([]domain.SourceResult, len(c.adapters))
	done := make(chan int, len(c.adapters))

	for i, adapter := range c.adapters {
		go func(i int, adapter driven.SourceAdapter) {
			defer func() { done <- i }()
			results[i] = c.searchOne(ctx, adapter, query)
		}(i, adapter)
	}
	for range c.adapters {
		<-done
	}

	// All tasks joined; merging is single-threaded from here on.
	out := c.merge(results)

	logger.Info("Consolidation: %d unique, %d duplicates, %d conflicts, %d/%d sources ok",
		len(out.UniqueCases), out.DuplicateCount, len(out.Conflicts),
		out.SourcesSuccessful, len(c.adapters))
	return out, nil
}

// searchOne runs a single adapter through its executor and normalises
// the records. Panics and errors become the SourceResult's Err; the
// record list stays empty on failure.
func (c *Consolidator) searchOne(ctx context.Context, adapter driven.SourceAdapter, query string) (res domain.SourceResult) {
	res.Source = adapter.Source()

	defer func() {
		if r := recover(); r != nil {
			res.Cases = nil
			res.Err = fmt.Errorf("source %s panicked: %v", res.Source, r)
			logger.Warn("source %s panicked: %v", res.Source, r)
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var raws []domain.RawCase
	err := c.executors[res.Source].Do(callCtx, "search "+res.Source, func(ctx context.Context) error {
		var ferr error
		raws, ferr = adapter.Search(ctx, query, driven.SearchOptions{})
		return ferr
	})
	if err != nil {
		res.Err = err
		logger.Warn("source %s failed: %v", res.Source, err)
		return res
	}

	res.Count = len(raws)
	dropped := 0
	for i := range raws {
		cc, nerr := c.registry.Normalise(&raws[i])
		if nerr != nil {
			// Bad records are dropped individually; the source still
			// counts as successful for the records that survived.
			dropped++
			logger.Debug("source %s: record %d failed normalisation: %v", res.Source, i, nerr)
			continue
		}
		res.Cases = append(res.Cases, *cc)
	}
	if dropped > 0 {
		logger.Warn("source %s: dropped %d of %d records", res.Source, dropped, len(raws))
	}
	return res
}

// merge groups normalised records by ProcessID, reporting duplicates
// and factual disagreements. The first record seen for a case becomes
// the working entry; the canonical source's classification and
// subject win disagreements.
func (c *Consolidator) merge(results []domain.SourceResult) *domain.ConsolidationResult {
	out := &domain.ConsolidationResult{SourceResults: results}

	byID := make(map[string]int) // ProcessID -> index into UniqueCases
	var sources []heldSources    // parallel to UniqueCases

	for _, sr := range results {
		if sr.Err == nil {
			out.SourcesSuccessful++
		}
		for _, cc := range sr.Cases {
			idx, seen := byID[cc.ProcessID]
			if !seen {
				byID[cc.ProcessID] = len(out.UniqueCases)
				out.UniqueCases = append(out.UniqueCases, cc)
				sources = append(sources, newHeldSources(cc.SourceSystem))
				continue
			}

			out.DuplicateCount++
			held := &out.UniqueCases[idx]
			out.Conflicts = append(out.Conflicts, c.mergeInto(held, &sources[idx], &cc)...)
		}
	}

	return out
}

// heldSources records which source supplied each contested field the
// working entry currently holds. Without it a conflict raised after a
// canonical overwrite would attribute the canonical value to the
// first-seen record's source.
type heldSources struct {
	classification string
	subject        string
	filingDate     string
}

func newHeldSources(source string) heldSources {
	return heldSources{classification: source, subject: source, filingDate: source}
}

// mergeInto folds next into the held working entry, returning any
// conflicts detected. Detection never blocks the merge.
func (c *Consolidator) mergeInto(held *domain.CanonicalCase, src *heldSources, next *domain.CanonicalCase) []domain.Conflict {
	var conflicts []domain.Conflict

	conflict := func(field, sourceA, valueA, valueB string) {
		conflicts = append(conflicts, domain.Conflict{
			ProcessID: held.ProcessID,
			Field:     field,
			SourceA:   sourceA,
			SourceB:   next.SourceSystem,
			ValueA:    valueA,
			ValueB:    valueB,
		})
	}

	if !strings.EqualFold(held.Classification.Name, next.Classification.Name) {
		conflict(domain.ConflictFieldClassification, src.classification,
			held.Classification.Name, next.Classification.Name)
		if next.SourceSystem == c.canonical {
			held.Classification = next.Classification
			src.classification = next.SourceSystem
		}
		// Neither from the canonical source: first-seen wins. An
		// artifact of arrival order, flagged as a risk upstream.
	}

	if !strings.EqualFold(held.Subject.Name, next.Subject.Name) {
		conflict(domain.ConflictFieldSubject, src.subject,
			held.Subject.Name, next.Subject.Name)
		if next.SourceSystem == c.canonical {
			held.Subject = next.Subject
			src.subject = next.SourceSystem
		}
	}

	if !held.FilingDate.IsZero() && !next.FilingDate.IsZero() {
		drift := held.FilingDate.Sub(next.FilingDate)
		if drift < 0 {
			drift = -drift
		}
		if drift > filingDateTolerance {
			conflict(domain.ConflictFieldFilingDate, src.filingDate,
				held.FilingDate.Format(time.DateOnly), next.FilingDate.Format(time.DateOnly))
		}
	} else if held.FilingDate.IsZero() {
		held.FilingDate = next.FilingDate
		src.filingDate = next.SourceSystem
	}

	// Parties are unioned by case-insensitive name, never overwritten.
	for role, parties := range next.Parties {
		for _, p := range parties {
			if !hasParty(held.Parties[role], p.Name) {
				held.Parties[role] = append(held.Parties[role], p)
			}
		}
	}

	// Fill gaps the first source left open.
	if held.Judge == "" {
		held.Judge = next.Judge
	}
	if held.ClaimValue == 0 {
		held.ClaimValue = next.ClaimValue
	}
	if held.LastMovement == nil {
		held.LastMovement = next.LastMovement
		held.Status = next.Status
	} else if next.LastMovement != nil && next.LastMovement.Date.After(held.LastMovement.Date) {
		held.LastMovement = next.LastMovement
		held.Status = next.Status
	}
	if next.LastUpdateDate.After(held.LastUpdateDate) {
		held.LastUpdateDate = next.LastUpdateDate
	}

	return conflicts
}

// hasParty reports whether parties already holds name, compared
// case-insensitively.
func hasParty(parties []domain.Party, name string) bool {
	for _, p := range parties {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}
