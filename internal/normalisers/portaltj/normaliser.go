// Package portaltj normalises rows from the court-portal scraping
// vendor.
package portaltj

import (
	"strconv"
	"strings"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
	"github.com/atrium-legal/jurisync-cli/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser maps portal rows onto the canonical schema.
type Normaliser struct{}

// New creates a portal normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SourceSystem returns the raw variant this normaliser handles.
func (n *Normaliser) SourceSystem() string {
	return domain.SourcePortalTJ
}

// Normalise converts one portal row.
func (n *Normaliser) Normalise(raw *domain.RawCase) (*domain.CanonicalCase, error) {
	if raw == nil || raw.Portal == nil {
		return nil, domain.ErrInvalidInput
	}
	row := raw.Portal

	c := normalisers.BaseCase(row.Numero, domain.SourcePortalTJ)
	c.FilingDate = normalisers.ParseDate(row.Distribuicao)
	c.Judge = strings.TrimSpace(row.Juiz)
	c.ClaimValue = parseMoney(row.Valor)

	phCode, phName := normalisers.Placeholder()
	c.Classification = domain.Classification{Code: phCode, Name: phName}
	if row.Classe != "" {
		c.Classification = domain.Classification{Code: phCode, Name: strings.TrimSpace(row.Classe)}
	}
	c.Subject = domain.Subject{Code: phCode, Name: phName}
	if row.Assunto != "" {
		c.Subject = domain.Subject{Code: phCode, Name: strings.TrimSpace(row.Assunto)}
	}

	// The portal renders parties as role label -> semicolon-joined names.
	for label, names := range row.Partes {
		role := normalisers.ClassifyRole(label)
		for _, name := range strings.Split(names, ";") {
			name = normalisers.CleanName(name)
			if name == "" {
				continue
			}
			c.Parties[role] = append(c.Parties[role], domain.Party{Name: name})
		}
	}

	if row.UltimoAndamento != "" {
		date := normalisers.ParseDate(row.DataAndamento)
		c.LastMovement = &domain.Movement{
			Date: date,
			Name: strings.TrimSpace(row.UltimoAndamento),
		}
		c.LastUpdateDate = date
	}
	c.Status = normalisers.InferStatus(c.LastMovement)

	return &c, nil
}

// parseMoney parses the portal's "R$ 1.234,56" rendering. Unparseable
// values yield zero.
func parseMoney(s string) float64 {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
