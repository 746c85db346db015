package domain

// Tribunal identifies one court system.
type Tribunal struct {
	// Code is the short identifier used in commands, API index names
	// and audit logs (e.g. "tjsp").
	Code string `json:"code"`

	// Name is the court's full name.
	Name string `json:"name"`

	// Segment is the branch of the judiciary: state, federal, labour
	// or superior.
	Segment string `json:"segment"`

	// SegmentKey is the "J.TR" pair of the unified numbering that
	// maps to this court.
	SegmentKey string `json:"segmentKey"`
}

// UnknownTribunal is returned when a case number carries no
// resolvable segment. Resolution never fails; unknown courts are a
// data condition, not an error.
var UnknownTribunal = Tribunal{
	Code:    "unknown",
	Name:    "Unknown tribunal",
	Segment: "unknown",
}

// tribunals maps the "J.TR" segment of a case number to its court
// system. State courts carry J=8, federal regional courts J=4,
// labour regional courts J=5.
var tribunals = map[string]Tribunal{
	// Superior courts.
	"1.00": {Code: "stf", Name: "Supremo Tribunal Federal", Segment: "superior", SegmentKey: "1.00"},
	"3.00": {Code: "stj", Name: "Superior Tribunal de Justiça", Segment: "superior", SegmentKey: "3.00"},
	"5.00": {Code: "tst", Name: "Tribunal Superior do Trabalho", Segment: "superior", SegmentKey: "5.00"},

	// Federal regional courts.
	"4.01": {Code: "trf1", Name: "Tribunal Regional Federal da 1ª Região", Segment: "federal", SegmentKey: "4.01"},
	"4.02": {Code: "trf2", Name: "Tribunal Regional Federal da 2ª Região", Segment: "federal", SegmentKey: "4.02"},
	"4.03": {Code: "trf3", Name: "Tribunal Regional Federal da 3ª Região", Segment: "federal", SegmentKey: "4.03"},
	"4.04": {Code: "trf4", Name: "Tribunal Regional Federal da 4ª Região", Segment: "federal", SegmentKey: "4.04"},
	"4.05": {Code: "trf5", Name: "Tribunal Regional Federal da 5ª Região", Segment: "federal", SegmentKey: "4.05"},
	"4.06": {Code: "trf6", Name: "Tribunal Regional Federal da 6ª Região", Segment: "federal", SegmentKey: "4.06"},

	// Labour regional courts.
	"5.01": {Code: "trt1", Name: "Tribunal Regional do Trabalho da 1ª Região", Segment: "labour", SegmentKey: "5.01"},
	"5.02": {Code: "trt2", Name: "Tribunal Regional do Trabalho da 2ª Região", Segment: "labour", SegmentKey: "5.02"},
	"5.03": {Code: "trt3", Name: "Tribunal Regional do Trabalho da 3ª Região", Segment: "labour", SegmentKey: "5.03"},
	"5.04": {Code: "trt4", Name: "Tribunal Regional do Trabalho da 4ª Região", Segment: "labour", SegmentKey: "5.04"},
	"5.05": {Code: "trt5", Name: "Tribunal Regional do Trabalho da 5ª Região", Segment: "labour", SegmentKey: "5.05"},
	"5.09": {Code: "trt9", Name: "Tribunal Regional do Trabalho da 9ª Região", Segment: "labour", SegmentKey: "5.09"},
	"5.15": {Code: "trt15", Name: "Tribunal Regional do Trabalho da 15ª Região", Segment: "labour", SegmentKey: "5.15"},

	// State courts.
	"8.01": {Code: "tjac", Name: "Tribunal de Justiça do Acre", Segment: "state", SegmentKey: "8.01"},
	"8.02": {Code: "tjal", Name: "Tribunal de Justiça de Alagoas", Segment: "state", SegmentKey: "8.02"},
	"8.03": {Code: "tjap", Name: "Tribunal de Justiça do Amapá", Segment: "state", SegmentKey: "8.03"},
	"8.04": {Code: "tjam", Name: "Tribunal de Justiça do Amazonas", Segment: "state", SegmentKey: "8.04"},
	"8.05": {Code: "tjba", Name: "Tribunal de Justiça da Bahia", Segment: "state", SegmentKey: "8.05"},
	"8.06": {Code: "tjce", Name: "Tribunal de Justiça do Ceará", Segment: "state", SegmentKey: "8.06"},
	"8.07": {Code: "tjdft", Name: "Tribunal de Justiça do Distrito Federal e Territórios", Segment: "state", SegmentKey: "8.07"},
	"8.08": {Code: "tjes", Name: "Tribunal de Justiça do Espírito Santo", Segment: "state", SegmentKey: "8.08"},
	"8.09": {Code: "tjgo", Name: "Tribunal de Justiça de Goiás", Segment: "state", SegmentKey: "8.09"},
	"8.10": {Code: "tjma", Name: "Tribunal de Justiça do Maranhão", Segment: "state", SegmentKey: "8.10"},
	"8.11": {Code: "tjmt", Name: "Tribunal de Justiça de Mato Grosso", Segment: "state", SegmentKey: "8.11"},
	"8.12": {Code: "tjms", Name: "Tribunal de Justiça de Mato Grosso do Sul", Segment: "state", SegmentKey: "8.12"},
	"8.13": {Code: "tjmg", Name: "Tribunal de Justiça de Minas Gerais", Segment: "state", SegmentKey: "8.13"},
	"8.14": {Code: "tjpa", Name: "Tribunal de Justiça do Pará", Segment: "state", SegmentKey: "8.14"},
	"8.15": {Code: "tjpb", Name: "Tribunal de Justiça da Paraíba", Segment: "state", SegmentKey: "8.15"},
	"8.16": {Code: "tjpr", Name: "Tribunal de Justiça do Paraná", Segment: "state", SegmentKey: "8.16"},
	"8.17": {Code: "tjpe", Name: "Tribunal de Justiça de Pernambuco", Segment: "state", SegmentKey: "8.17"},
	"8.18": {Code: "tjpi", Name: "Tribunal de Justiça do Piauí", Segment: "state", SegmentKey: "8.18"},
	"8.19": {Code: "tjrj", Name: "Tribunal de Justiça do Rio de Janeiro", Segment: "state", SegmentKey: "8.19"},
	"8.20": {Code: "tjrn", Name: "Tribunal de Justiça do Rio Grande do Norte", Segment: "state", SegmentKey: "8.20"},
	"8.21": {Code: "tjrs", Name: "Tribunal de Justiça do Rio Grande do Sul", Segment: "state", SegmentKey: "8.21"},
	"8.22": {Code: "tjro", Name: "Tribunal de Justiça de Rondônia", Segment: "state", SegmentKey: "8.22"},
	"8.23": {Code: "tjrr", Name: "Tribunal de Justiça de Roraima", Segment: "state", SegmentKey: "8.23"},
	"8.24": {Code: "tjsc", Name: "Tribunal de Justiça de Santa Catarina", Segment: "state", SegmentKey: "8.24"},
	"8.25": {Code: "tjse", Name: "Tribunal de Justiça de Sergipe", Segment: "state", SegmentKey: "8.25"},
	"8.26": {Code: "tjsp", Name: "Tribunal de Justiça de São Paulo", Segment: "state", SegmentKey: "8.26"},
	"8.27": {Code: "tjto", Name: "Tribunal de Justiça do Tocantins", Segment: "state", SegmentKey: "8.27"},
}

// tribunalsByCode indexes the same table by short code.
var tribunalsByCode = func() map[string]Tribunal {
	m := make(map[string]Tribunal, len(tribunals))
	for _, t := range tribunals {
		m[t.Code] = t
	}
	return m
}()

// segmentNames maps the J digit of the unified numbering to its
// branch of the judiciary.
var segmentNames = map[byte]string{
	'1': "superior",
	'2': "council",
	'3': "superior",
	'4': "federal",
	'5': "labour",
	'6': "electoral",
	'7': "military",
	'8': "state",
	'9': "military",
}

// ResolveTribunal maps a canonical process ID to its court system via
// the number's "J.TR" segment. Unknown segments resolve to a tribunal
// with code "unknown" carrying the observed segment key; resolution
// never fails.
func ResolveTribunal(id string) Tribunal {
	key := SegmentKey(id)
	if key == "" {
		return UnknownTribunal
	}
	if t, ok := tribunals[key]; ok {
		return t
	}
	segment := segmentNames[key[0]]
	if segment == "" {
		segment = "unknown"
	}
	return Tribunal{
		Code:       "unknown",
		Name:       "Unknown tribunal",
		Segment:    segment,
		SegmentKey: key,
	}
}

// TribunalByCode looks a tribunal up by its short code.
func TribunalByCode(code string) (Tribunal, bool) {
	t, ok := tribunalsByCode[code]
	return t, ok
}

// Tribunals returns every known tribunal, for listings.
func Tribunals() []Tribunal {
	out := make([]Tribunal, 0, len(tribunals))
	for _, t := range tribunals {
		out = append(out, t)
	}
	return out
}
