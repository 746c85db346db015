package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
	"github.com/atrium-legal/jurisync-cli/internal/normalisers"
	"github.com/atrium-legal/jurisync-cli/internal/normalisers/courtbot"
	"github.com/atrium-legal/jurisync-cli/internal/normalisers/datajud"
	"github.com/atrium-legal/jurisync-cli/internal/normalisers/portaltj"
	"github.com/atrium-legal/jurisync-cli/internal/resilience"
)

// --- Mock adapters ---

// mockAdapter implements driven.SourceAdapter for testing.
type mockAdapter struct {
	source string
	cases  []domain.RawCase
	err    error
	panics bool
	delay  time.Duration
	calls  int
}

func (m *mockAdapter) Source() string { return m.source }
func (m *mockAdapter) Close() error   { return nil }

func (m *mockAdapter) Search(ctx context.Context, _ string, _ driven.SearchOptions) ([]domain.RawCase, error) {
	m.calls++
	if m.panics {
		panic("adapter exploded")
	}
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.delay):
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.cases, nil
}

// --- Raw record fixtures, one per source variant ---

const caseXNumber = "0001234-56.2023.8.26.0100"

func rawDataJud(classe, assunto string) domain.RawCase {
	return domain.RawCase{
		SourceSystem: domain.SourceDataJud,
		DataJud: &domain.DataJudHit{
			NumeroProcesso:  caseXNumber,
			Classe:          domain.DataJudCode{Codigo: 436, Nome: classe},
			Assuntos:        []domain.DataJudCode{{Codigo: 7698, Nome: assunto}},
			DataAjuizamento: "2023-01-15T00:00:00Z",
			Partes: []domain.DataJudParty{
				{Nome: "Maria da Silva", Polo: "Polo Ativo"},
			},
		},
	}
}

func rawPortal(classe, assunto string) domain.RawCase {
	return domain.RawCase{
		SourceSystem: domain.SourcePortalTJ,
		Portal: &domain.PortalRow{
			Numero:       caseXNumber,
			Classe:       classe,
			Assunto:      assunto,
			Distribuicao: "15/01/2023",
			Partes:       map[string]string{"Requerido": "Banco Exemplo SA"},
		},
	}
}

func rawCourtBot(classe, assunto string) domain.RawCase {
	return domain.RawCase{
		SourceSystem: domain.SourceCourtBot,
		CourtBot: &domain.CourtBotPayload{
			CaseNumber:  caseXNumber,
			CaseClass:   classe,
			CaseSubject: assunto,
			FiledOn:     "2023-01-15",
		},
	}
}

func testRegistry() driven.NormaliserRegistry {
	r := normalisers.NewRegistry()
	r.Register(datajud.New())
	r.Register(portaltj.New())
	r.Register(courtbot.New())
	return r
}

func newTestConsolidator(adapters ...driven.SourceAdapter) *Consolidator {
	return NewConsolidator(adapters, testRegistry(), ConsolidatorConfig{
		SourceTimeout: 2 * time.Second,
		Executor:      resilience.Config{MaxAttempts: 1},
	})
}

// --- Tests ---

func TestSearchDeduplicatesAcrossSources(t *testing.T) {
	// Three sources, same case, same content: one unique record and
	// two duplicates, no conflicts.
	c := newTestConsolidator(
		&mockAdapter{source: domain.SourceDataJud, cases: []domain.RawCase{rawDataJud("Procedimento Comum Cível", "Dano Material")}},
		&mockAdapter{source: domain.SourcePortalTJ, cases: []domain.RawCase{rawPortal("Procedimento Comum Cível", "Dano Material")}},
		&mockAdapter{source: domain.SourceCourtBot, cases: []domain.RawCase{rawCourtBot("Procedimento Comum Cível", "Dano Material")}},
	)

	res, err := c.Search(context.Background(), "maria da silva")
	require.NoError(t, err)

	assert.Len(t, res.UniqueCases, 1)
	assert.Equal(t, 2, res.DuplicateCount)
	assert.Empty(t, res.Conflicts)
	assert.Equal(t, 3, res.SourcesSuccessful)

	// Parties from all sources are unioned onto the merged record.
	merged := res.UniqueCases[0]
	assert.Len(t, merged.Parties[domain.RoleClaimant], 1)
	assert.Len(t, merged.Parties[domain.RoleRespondent], 1)
}

func TestSearchDetectsClassificationConflict(t *testing.T) {
	c := newTestConsolidator(
		&mockAdapter{source: domain.SourceDataJud, cases: []domain.RawCase{rawDataJud("Civil Procedure", "Dano Material")}},
		&mockAdapter{source: domain.SourcePortalTJ, cases: []domain.RawCase{rawPortal("Labor Claim", "Dano Material")}},
	)

	res, err := c.Search(context.Background(), "maria")
	require.NoError(t, err)

	require.Len(t, res.Conflicts, 1)
	conflict := res.Conflicts[0]
	assert.Equal(t, domain.ConflictFieldClassification, conflict.Field)
	assert.Equal(t, domain.SourceDataJud, conflict.SourceA)
	assert.Equal(t, domain.SourcePortalTJ, conflict.SourceB)
	assert.Equal(t, "Civil Procedure", conflict.ValueA)
	assert.Equal(t, "Labor Claim", conflict.ValueB)

	// Detection does not block merging.
	assert.Len(t, res.UniqueCases, 1)
	assert.Equal(t, 1, res.DuplicateCount)
}

func TestSearchCanonicalSourceWinsDisagreements(t *testing.T) {
	// Portal is seen first; the official source's classification must
	// still win the merged record.
	c := newTestConsolidator(
		&mockAdapter{source: domain.SourcePortalTJ, cases: []domain.RawCase{rawPortal("Labor Claim", "Dano Material")}},
		&mockAdapter{source: domain.SourceDataJud, cases: []domain.RawCase{rawDataJud("Civil Procedure", "Dano Material")}},
	)

	res, err := c.Search(context.Background(), "maria")
	require.NoError(t, err)

	require.Len(t, res.UniqueCases, 1)
	assert.Equal(t, "Civil Procedure", res.UniqueCases[0].Classification.Name)
	require.Len(t, res.Conflicts, 1)
}

func TestSearchConflictAttributesCanonicalOverwrite(t *testing.T) {
	// Portal is seen first, then the official source replaces the held
	// classification. A third source's disagreement must name the
	// official source as the holder of the value it clashed with, not
	// the first-seen record.
	c := newTestConsolidator(
		&mockAdapter{source: domain.SourcePortalTJ, cases: []domain.RawCase{rawPortal("Labor Claim", "Dano Material")}},
		&mockAdapter{source: domain.SourceDataJud, cases: []domain.RawCase{rawDataJud("Civil Procedure", "Dano Material")}},
		&mockAdapter{source: domain.SourceCourtBot, cases: []domain.RawCase{rawCourtBot("Execução Fiscal", "Dano Material")}},
	)

	res, err := c.Search(context.Background(), "maria")
	require.NoError(t, err)

	require.Len(t, res.Conflicts, 2)

	first := res.Conflicts[0]
	assert.Equal(t, domain.SourcePortalTJ, first.SourceA)
	assert.Equal(t, "Labor Claim", first.ValueA)

	second := res.Conflicts[1]
	assert.Equal(t, domain.SourceDataJud, second.SourceA)
	assert.Equal(t, domain.SourceCourtBot, second.SourceB)
	assert.Equal(t, "Civil Procedure", second.ValueA)
	assert.Equal(t, "Execução Fiscal", second.ValueB)
}

func TestSearchEndToEndScenario(t *testing.T) {
	// sourceA: caseX; sourceB: caseX with a different subject;
	// sourceC: error.
	c := newTestConsolidator(
		&mockAdapter{source: domain.SourceDataJud, cases: []domain.RawCase{rawDataJud("Procedimento Comum Cível", "Dano Material")}},
		&mockAdapter{source: domain.SourcePortalTJ, cases: []domain.RawCase{rawPortal("Procedimento Comum Cível", "Dano Moral")}},
		&mockAdapter{source: domain.SourceCourtBot, err: domain.ErrTransient},
	)

	res, err := c.Search(context.Background(), "maria")
	require.NoError(t, err)

	assert.Len(t, res.UniqueCases, 1)
	assert.Equal(t, 1, res.DuplicateCount)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, domain.ConflictFieldSubject, res.Conflicts[0].Field)
	assert.Equal(t, 2, res.SourcesSuccessful)

	// The failed source is present in the per-source results.
	var failed *domain.SourceResult
	for i := range res.SourceResults {
		if res.SourceResults[i].Source == domain.SourceCourtBot {
			failed = &res.SourceResults[i]
		}
	}
	require.NotNil(t, failed)
	assert.Error(t, failed.Err)
	assert.Empty(t, failed.Cases)
}

func TestSearchAllSourcesEmpty(t *testing.T) {
	c := newTestConsolidator(
		&mockAdapter{source: domain.SourceDataJud},
		&mockAdapter{source: domain.SourcePortalTJ},
	)

	res, err := c.Search(context.Background(), "nobody")
	require.NoError(t, err)

	assert.Empty(t, res.UniqueCases)
	assert.Empty(t, res.Conflicts)
	assert.Equal(t, 0, res.DuplicateCount)
	assert.Equal(t, 2, res.SourcesSuccessful)
}

func TestSearchAllSourcesFailedStillWellFormed(t *testing.T) {
	c := newTestConsolidator(
		&mockAdapter{source: domain.SourceDataJud, err: errors.New("boom")},
		&mockAdapter{source: domain.SourcePortalTJ, err: domain.ErrPermanent},
	)

	res, err := c.Search(context.Background(), "maria")
	require.NoError(t, err, "total source outage is not an error")

	assert.Empty(t, res.UniqueCases)
	assert.Equal(t, 0, res.SourcesSuccessful)
	for _, sr := range res.SourceResults {
		assert.Error(t, sr.Err)
	}
}

func TestSearchIsolatesPanickingAdapter(t *testing.T) {
	c := newTestConsolidator(
		&mockAdapter{source: domain.SourceDataJud, cases: []domain.RawCase{rawDataJud("Procedimento Comum Cível", "Dano Material")}},
		&mockAdapter{source: domain.SourcePortalTJ, panics: true},
	)

	res, err := c.Search(context.Background(), "maria")
	require.NoError(t, err)

	assert.Len(t, res.UniqueCases, 1)
	assert.Equal(t, 1, res.SourcesSuccessful)
}

func TestSearchTimesOutSlowAdapter(t *testing.T) {
	slow := &mockAdapter{source: domain.SourcePortalTJ, delay: 500 * time.Millisecond}
	c := NewConsolidator(
		[]driven.SourceAdapter{
			&mockAdapter{source: domain.SourceDataJud, cases: []domain.RawCase{rawDataJud("Procedimento Comum Cível", "Dano Material")}},
			slow,
		},
		testRegistry(),
		ConsolidatorConfig{
			SourceTimeout: 20 * time.Millisecond,
			Executor:      resilience.Config{MaxAttempts: 1},
		},
	)

	res, err := c.Search(context.Background(), "maria")
	require.NoError(t, err)

	// The slow source contributes an empty result and an error; the
	// fast one is unaffected.
	assert.Len(t, res.UniqueCases, 1)
	assert.Equal(t, 1, res.SourcesSuccessful)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	c := newTestConsolidator(&mockAdapter{source: domain.SourceDataJud})

	_, err := c.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
