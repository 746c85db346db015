package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driving"
)

// mockSearch returns a canned consolidation result.
type mockSearch struct {
	result *domain.ConsolidationResult
	err    error
}

func (m *mockSearch) Search(_ context.Context, query string) (*domain.ConsolidationResult, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockRunner returns a canned run result.
type mockRunner struct {
	result *driving.RunResult
	err    error
}

func (m *mockRunner) Run(_ context.Context, tribunalCode string) (*driving.RunResult, error) {
	if m.result != nil {
		m.result.Tribunal = tribunalCode
	}
	return m.result, m.err
}

// mockQuota returns a canned quota status.
type mockQuota struct {
	status domain.QuotaStatus
}

func (m *mockQuota) Status(_ context.Context, _ time.Time) domain.QuotaStatus {
	return m.status
}

func sampleCase() domain.CanonicalCase {
	c := domain.CanonicalCase{
		ProcessID:      "00012345620238260100",
		CaseNumber:     "0001234-56.2023.8.26.0100",
		NumberValid:    true,
		Tribunal:       domain.ResolveTribunal("00012345620238260100"),
		Classification: domain.Classification{Code: "436", Name: "Procedimento Comum Cível"},
		Subject:        domain.Subject{Code: "7780", Name: "Indenização por Dano Material"},
		Status:         domain.StatusActive,
		SourceSystem:   domain.SourceDataJud,
		Parties: map[domain.PartyRole][]domain.Party{
			domain.RoleClaimant:   {{Name: "MARIA DA SILVA"}},
			domain.RoleRespondent: {{Name: "BANCO EXEMPLO SA"}},
		},
	}
	return c
}

// setupTestServices installs mock services and reports a cleanup
// restoring the previous wiring.
func setupTestServices() func() {
	oldSearch, oldRunner, oldQuota := searchService, syncRunner, quotaService

	searchService = &mockSearch{result: &domain.ConsolidationResult{
		UniqueCases:    []domain.CanonicalCase{sampleCase()},
		DuplicateCount: 1,
		SourceResults: []domain.SourceResult{
			{Source: domain.SourceDataJud, Count: 1},
			{Source: domain.SourcePortalTJ, Count: 1},
			{Source: domain.SourceCourtBot, Err: fmt.Errorf("unreachable")},
		},
		SourcesSuccessful: 2,
	}}
	syncRunner = &mockRunner{result: &driving.RunResult{
		RunID:   "run-1",
		State:   driving.RunSuccess,
		Fetched: 12, Processed: 12, Written: 3, Skipped: 9,
		Quota: domain.QuotaStatus{Status: domain.QuotaHealthy, WritesUsed: 3, WritesRemaining: 19997},
	}}
	quotaService = &mockQuota{status: domain.QuotaStatus{
		Status: domain.QuotaHealthy, WritesUsed: 100, WritesRemaining: 19900, WritesPercent: 0.5,
	}}

	return func() {
		searchService, syncRunner, quotaService = oldSearch, oldRunner, oldQuota
	}
}
