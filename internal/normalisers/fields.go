package normalisers

import (
	"strings"
	"time"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
)

// dateLayouts are tried in order when parsing source date strings.
// Sources emit ISO-8601 with varying precision, or locale dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseDate parses an ISO-8601 or locale date string. Invalid or
// missing input yields the zero time, never "now": a synthetic
// timestamp would make every run look like a content change and
// corrupt change detection.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// CleanName upper-cases and whitespace-collapses a party name so the
// same person compares equal across sources.
func CleanName(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// CleanDocumentID strips everything but digits from an identity
// document (CPF/CNPJ).
func CleanDocumentID(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Role keyword tables. Labels arrive as free text in Portuguese;
// matching is case-insensitive on substrings.
var (
	claimantTerms   = []string{"autor", "requerente", "exequente", "reclamante", "impetrante", "embargante", "apelante", "ativo"}
	respondentTerms = []string{"réu", "reu", "requerido", "executado", "reclamado", "impetrado", "embargado", "apelado", "passivo"}
	intervenorTerms = []string{"terceiro", "interessado", "assistente", "perito", "fiscal da lei"}
)

// ClassifyRole buckets a free-text role label into a party role.
func ClassifyRole(label string) domain.PartyRole {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, term := range claimantTerms {
		if strings.Contains(l, term) {
			return domain.RoleClaimant
		}
	}
	for _, term := range respondentTerms {
		if strings.Contains(l, term) {
			return domain.RoleRespondent
		}
	}
	for _, term := range intervenorTerms {
		if strings.Contains(l, term) {
			return domain.RoleIntervenor
		}
	}
	return domain.RoleOther
}

// Status keyword tables, checked against the latest movement text.
// Archival terms are checked first: an archival movement often also
// mentions the judgment it follows.
var (
	archivedTerms = []string{"arquivado", "arquivamento", "baixa definitiva", "extinto", "extinção", "extincao", "cancelamento da distribuição"}
	concludedTerms = []string{"julgado", "julgamento", "sentença", "sentenca", "trânsito em julgado", "transitado em julgado", "procedente", "improcedente", "acórdão", "acordao", "decisão final"}
)

// InferStatus derives the case status from the most recent movement's
// text. No movement, or no matching keyword, means the case is still
// active.
func InferStatus(lastMovement *domain.Movement) domain.CaseStatus {
	if lastMovement == nil {
		return domain.StatusActive
	}
	text := strings.ToLower(lastMovement.Name + " " + lastMovement.Description)
	for _, term := range archivedTerms {
		if strings.Contains(text, term) {
			return domain.StatusArchived
		}
	}
	for _, term := range concludedTerms {
		if strings.Contains(text, term) {
			return domain.StatusConcluded
		}
	}
	return domain.StatusActive
}

// Placeholder returns the explicit unclassified placeholder used when
// a source omits classification or subject. Downstream conflict
// detection needs a stable comparison baseline, not nil.
func Placeholder() (string, string) {
	return "0", domain.Unclassified
}

// BaseCase seeds a canonical case from the source's rendering of the
// case number: merge key, display form, validity flag and tribunal.
func BaseCase(caseNumber, sourceSystem string) domain.CanonicalCase {
	id, valid := domain.CanonicalProcessID(caseNumber)
	return domain.CanonicalCase{
		ProcessID:    id,
		CaseNumber:   domain.FormatCaseNumber(id),
		NumberValid:  valid,
		Tribunal:     domain.ResolveTribunal(id),
		SourceSystem: sourceSystem,
		Status:       domain.StatusActive,
		Parties:      make(map[domain.PartyRole][]domain.Party),
	}
}
