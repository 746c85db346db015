package domain

// Source system identifiers. DataJud is the designated canonical
// source: its values win merge disagreements.
const (
	SourceDataJud  = "datajud"
	SourcePortalTJ = "portaltj"
	SourceCourtBot = "courtbot"
)

// RawCase is one source-tagged record as returned by an adapter,
// before normalisation. It is a tagged union keyed by SourceSystem:
// exactly one of the variant fields is set. RawCases are ephemeral and
// discarded once normalised.
type RawCase struct {
	// SourceSystem identifies the adapter and selects the variant.
	SourceSystem string

	// DataJud is set when SourceSystem == SourceDataJud.
	DataJud *DataJudHit

	// Portal is set when SourceSystem == SourcePortalTJ.
	Portal *PortalRow

	// CourtBot is set when SourceSystem == SourceCourtBot.
	CourtBot *CourtBotPayload
}

// DataJudParty is one participant in a DataJud hit.
type DataJudParty struct {
	Nome       string `json:"nome"`
	Documento  string `json:"documento,omitempty"`
	Polo       string `json:"polo"`
	TipoPessoa string `json:"tipoPessoa,omitempty"`
}

// DataJudMovement is one procedural movement in a DataJud hit.
type DataJudMovement struct {
	Codigo      int    `json:"codigo"`
	Nome        string `json:"nome"`
	DataHora    string `json:"dataHora"`
	Complemento string `json:"complemento,omitempty"`
}

// DataJudCode is a coded name pair (class, subject).
type DataJudCode struct {
	Codigo int    `json:"codigo"`
	Nome   string `json:"nome"`
}

// DataJudHit is the official API's document shape, one search hit.
type DataJudHit struct {
	NumeroProcesso            string            `json:"numeroProcesso"`
	Classe                    DataJudCode       `json:"classe"`
	Assuntos                  []DataJudCode     `json:"assuntos"`
	DataAjuizamento           string            `json:"dataAjuizamento"`
	DataHoraUltimaAtualizacao string            `json:"dataHoraUltimaAtualizacao"`
	Grau                      string            `json:"grau"`
	Movimentos                []DataJudMovement `json:"movimentos"`
	Partes                    []DataJudParty    `json:"partes"`
	ValorCausa                float64           `json:"valorCausa,omitempty"`
}

// PortalRow is the row shape the portal-scraping vendor emits.
// Field names follow the portal's display labels, already flattened;
// Partes maps the role label to a semicolon-joined name list.
type PortalRow struct {
	Numero          string            `json:"numero"`
	Classe          string            `json:"classe,omitempty"`
	Assunto         string            `json:"assunto,omitempty"`
	Distribuicao    string            `json:"distribuicao,omitempty"`
	Juiz            string            `json:"juiz,omitempty"`
	Valor           string            `json:"valor,omitempty"`
	Partes          map[string]string `json:"partes,omitempty"`
	UltimoAndamento string            `json:"ultimoAndamento,omitempty"`
	DataAndamento   string            `json:"dataAndamento,omitempty"`
}

// CourtBotParty is one participant in a CourtBot payload.
type CourtBotParty struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Doc  string `json:"doc,omitempty"`
}

// CourtBotMovement is one movement in a CourtBot payload.
type CourtBotMovement struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// CourtBotPayload is the headless-automation vendor's job result.
type CourtBotPayload struct {
	CaseNumber  string             `json:"case_number"`
	CaseClass   string             `json:"case_class,omitempty"`
	CaseSubject string             `json:"case_subject,omitempty"`
	FiledOn     string             `json:"filed_on,omitempty"`
	UpdatedOn   string             `json:"updated_on,omitempty"`
	Judge       string             `json:"judge,omitempty"`
	Parties     []CourtBotParty    `json:"parties,omitempty"`
	Movements   []CourtBotMovement `json:"movements,omitempty"`
}

// CaseNumberText returns the case number exactly as the source
// rendered it, regardless of variant.
func (r *RawCase) CaseNumberText() string {
	switch {
	case r.DataJud != nil:
		return r.DataJud.NumeroProcesso
	case r.Portal != nil:
		return r.Portal.Numero
	case r.CourtBot != nil:
		return r.CourtBot.CaseNumber
	}
	return ""
}
