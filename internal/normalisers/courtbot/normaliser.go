// Package courtbot normalises job results from the headless-browser
// automation vendor.
package courtbot

import (
	"strings"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
	"github.com/atrium-legal/jurisync-cli/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser maps CourtBot payloads onto the canonical schema.
type Normaliser struct{}

// New creates a CourtBot normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SourceSystem returns the raw variant this normaliser handles.
func (n *Normaliser) SourceSystem() string {
	return domain.SourceCourtBot
}

// Normalise converts one CourtBot payload.
func (n *Normaliser) Normalise(raw *domain.RawCase) (*domain.CanonicalCase, error) {
	if raw == nil || raw.CourtBot == nil {
		return nil, domain.ErrInvalidInput
	}
	payload := raw.CourtBot

	c := normalisers.BaseCase(payload.CaseNumber, domain.SourceCourtBot)
	c.FilingDate = normalisers.ParseDate(payload.FiledOn)
	c.LastUpdateDate = normalisers.ParseDate(payload.UpdatedOn)
	c.Judge = strings.TrimSpace(payload.Judge)

	phCode, phName := normalisers.Placeholder()
	c.Classification = domain.Classification{Code: phCode, Name: phName}
	if payload.CaseClass != "" {
		c.Classification = domain.Classification{Code: phCode, Name: strings.TrimSpace(payload.CaseClass)}
	}
	c.Subject = domain.Subject{Code: phCode, Name: phName}
	if payload.CaseSubject != "" {
		c.Subject = domain.Subject{Code: phCode, Name: strings.TrimSpace(payload.CaseSubject)}
	}

	for _, p := range payload.Parties {
		role := normalisers.ClassifyRole(p.Role)
		c.Parties[role] = append(c.Parties[role], domain.Party{
			Name:       normalisers.CleanName(p.Name),
			DocumentID: normalisers.CleanDocumentID(p.Doc),
		})
	}

	// Movements arrive newest first.
	if len(payload.Movements) > 0 {
		latest := payload.Movements[0]
		c.LastMovement = &domain.Movement{
			Date: normalisers.ParseDate(latest.Date),
			Name: strings.TrimSpace(latest.Text),
		}
		if c.LastUpdateDate.IsZero() {
			c.LastUpdateDate = c.LastMovement.Date
		}
	}
	c.Status = normalisers.InferStatus(c.LastMovement)

	return &c, nil
}
