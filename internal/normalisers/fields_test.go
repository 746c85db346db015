package normalisers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"RFC3339", "2023-05-10T12:30:00Z", time.Date(2023, 5, 10, 12, 30, 0, 0, time.UTC)},
		{"ISO no zone", "2023-05-10T12:30:00", time.Date(2023, 5, 10, 12, 30, 0, 0, time.UTC)},
		{"date only", "2023-05-10", time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)},
		{"locale date", "10/05/2023", time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)},
		{"empty", "", time.Time{}},
		{"garbage", "sometime soon", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDate(tt.input))
		})
	}
}

func TestParseDateNeverDefaultsToNow(t *testing.T) {
	// A synthetic "now" would make unrelated runs look like content
	// changes; invalid dates must stay zero.
	got := ParseDate("31/02/2023")
	assert.True(t, got.IsZero())
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "MARIA DA SILVA", CleanName("  maria   da Silva "))
	assert.Equal(t, "", CleanName("   "))
}

func TestCleanDocumentID(t *testing.T) {
	assert.Equal(t, "12345678901", CleanDocumentID("123.456.789-01"))
	assert.Equal(t, "", CleanDocumentID("n/a"))
}

func TestClassifyRole(t *testing.T) {
	tests := []struct {
		label string
		want  domain.PartyRole
	}{
		{"Autor", domain.RoleClaimant},
		{"REQUERENTE", domain.RoleClaimant},
		{"Polo Ativo", domain.RoleClaimant},
		{"Réu", domain.RoleRespondent},
		{"requerido", domain.RoleRespondent},
		{"Polo Passivo", domain.RoleRespondent},
		{"Terceiro Interessado", domain.RoleIntervenor},
		{"Advogado", domain.RoleOther},
		{"", domain.RoleOther},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRole(tt.label))
		})
	}
}

func TestInferStatus(t *testing.T) {
	mov := func(name string) *domain.Movement { return &domain.Movement{Name: name} }

	assert.Equal(t, domain.StatusActive, InferStatus(nil))
	assert.Equal(t, domain.StatusActive, InferStatus(mov("Juntada de Petição")))
	assert.Equal(t, domain.StatusConcluded, InferStatus(mov("Julgamento Procedente")))
	assert.Equal(t, domain.StatusConcluded, InferStatus(mov("Sentença publicada")))
	assert.Equal(t, domain.StatusArchived, InferStatus(mov("Arquivado Definitivamente")))
	assert.Equal(t, domain.StatusArchived, InferStatus(mov("Baixa Definitiva")))

	// Archival wins when a movement mentions both.
	assert.Equal(t, domain.StatusArchived, InferStatus(mov("Arquivamento após trânsito em julgado")))
}

func TestBaseCaseFlagsShortNumbers(t *testing.T) {
	c := BaseCase("1234-56/2023", domain.SourcePortalTJ)
	assert.Equal(t, "1234562023", c.ProcessID)
	assert.False(t, c.NumberValid)
	assert.Equal(t, "unknown", c.Tribunal.Code)

	valid := BaseCase("0001234-56.2023.8.26.0100", domain.SourceDataJud)
	assert.True(t, valid.NumberValid)
	assert.Equal(t, "tjsp", valid.Tribunal.Code)
}

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()

	_, err := r.Normalise(&domain.RawCase{SourceSystem: "mystery"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)

	_, err = r.Normalise(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
