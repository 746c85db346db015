// Package datajud normalises hits from the official query API.
package datajud

import (
	"sort"
	"strconv"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
	"github.com/atrium-legal/jurisync-cli/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser maps DataJud hits onto the canonical schema.
type Normaliser struct{}

// New creates a DataJud normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SourceSystem returns the raw variant this normaliser handles.
func (n *Normaliser) SourceSystem() string {
	return domain.SourceDataJud
}

// Normalise converts one DataJud hit.
func (n *Normaliser) Normalise(raw *domain.RawCase) (*domain.CanonicalCase, error) {
	if raw == nil || raw.DataJud == nil {
		return nil, domain.ErrInvalidInput
	}
	hit := raw.DataJud

	c := normalisers.BaseCase(hit.NumeroProcesso, domain.SourceDataJud)
	c.FilingDate = normalisers.ParseDate(hit.DataAjuizamento)
	c.LastUpdateDate = normalisers.ParseDate(hit.DataHoraUltimaAtualizacao)
	c.InstanceLevel = hit.Grau
	c.ClaimValue = hit.ValorCausa

	phCode, phName := normalisers.Placeholder()
	c.Classification = domain.Classification{Code: phCode, Name: phName}
	if hit.Classe.Nome != "" {
		c.Classification = domain.Classification{
			Code: strconv.Itoa(hit.Classe.Codigo),
			Name: hit.Classe.Nome,
		}
	}

	c.Subject = domain.Subject{Code: phCode, Name: phName}
	if len(hit.Assuntos) > 0 && hit.Assuntos[0].Nome != "" {
		// The first subject is the principal one.
		c.Subject = domain.Subject{
			Code: strconv.Itoa(hit.Assuntos[0].Codigo),
			Name: hit.Assuntos[0].Nome,
		}
	}

	for _, p := range hit.Partes {
		role := normalisers.ClassifyRole(p.Polo)
		c.Parties[role] = append(c.Parties[role], domain.Party{
			Name:       normalisers.CleanName(p.Nome),
			DocumentID: normalisers.CleanDocumentID(p.Documento),
			PersonType: p.TipoPessoa,
		})
	}

	if len(hit.Movimentos) > 0 {
		movs := make([]domain.DataJudMovement, len(hit.Movimentos))
		copy(movs, hit.Movimentos)
		sort.SliceStable(movs, func(i, j int) bool {
			return normalisers.ParseDate(movs[i].DataHora).Before(normalisers.ParseDate(movs[j].DataHora))
		})
		last := movs[len(movs)-1]
		c.LastMovement = &domain.Movement{
			Date:        normalisers.ParseDate(last.DataHora),
			Name:        last.Nome,
			Code:        strconv.Itoa(last.Codigo),
			Description: last.Complemento,
		}
	}
	c.Status = normalisers.InferStatus(c.LastMovement)

	return &c, nil
}
