// Package intent interprets free-text queries from sales agents into a flat
// record of detected intents and extracted entities. Extraction is a single
// linear pass of independent rules; overlapping numeric captures are left
// for the matcher's disambiguation pipeline to resolve.
package intent

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

// DefaultLookbackMonths is the history window used when the query names none.
const DefaultLookbackMonths = 6

// Flags are independent boolean intents. They are not mutually exclusive;
// each one is driven by its own keyword test.
type Flags struct {
	Installment   bool `json:"installment"`
	Bid           bool `json:"bid"`
	Term          bool `json:"term"`
	Group         bool `json:"group"`
	Vacancy       bool `json:"vacancy"`
	Contemplation bool `json:"contemplation"`
	Quantity      bool `json:"quantity"`
	Highest       bool `json:"highest"`
	Lowest        bool `json:"lowest"`
	Average       bool `json:"average"`
	FixedBid      bool `json:"fixed_bid"`
	FreeBid       bool `json:"free_bid"`
	Light         bool `json:"light"`
	SuperLight    bool `json:"super_light"`
	Summary       bool `json:"summary"`
	Forecast      bool `json:"forecast"`
	Credit        bool `json:"credit"`
	Embedded      bool `json:"embedded"`
}

// Result is the ephemeral product of one query interpretation, discarded
// after a single matching pass.
type Result struct {
	Normalized       string        `json:"normalized"`
	Species          types.Species `json:"species,omitempty"`
	Numbers          []float64     `json:"numbers,omitempty"`
	GroupNumber      string        `json:"group_number,omitempty"`
	CreditValue      float64       `json:"credit_value,omitempty"`
	TermMonths       int           `json:"term_months,omitempty"`
	Percent          float64       `json:"percent,omitempty"`
	MonthsLookback   int           `json:"months_lookback"`
	LastAssemblyOnly bool          `json:"last_assembly_only"`
	Flags            Flags         `json:"flags"`
}

var (
	multiplierRe     = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:mil\b|k\b)`)
	thousandsRe      = regexp.MustCompile(`\b(\d{1,3})((?:\.\d{3})+)(?:,\d+)?\b`)
	decimalRe        = regexp.MustCompile(`\b(\d+)[.,]\d+\b`)
	symbolRe         = regexp.MustCompile(`[^a-z0-9 ]+`)
	spaceRe          = regexp.MustCompile(`\s+`)
	numberRe         = regexp.MustCompile(`\d+`)
	groupRe          = regexp.MustCompile(`grupo\s*(\d+)`)
	creditRe         = regexp.MustCompile(`(?:credito|carta|bem)\s+(?:de\s+)?(?:r\s+)?(\d+)`)
	termRe           = regexp.MustCompile(`prazo\s+(?:de\s+)?(\d+)|em\s+(\d+)\s+(?:meses|vezes|parcelas)|(\d+)\s*x\b`)
	percentRe        = regexp.MustCompile(`(\d+)\s+por\s+cento`)
	bidAmountRe      = regexp.MustCompile(`lance\s+(?:de\s+)?(\d+)\b`)
	lookbackRe       = regexp.MustCompile(`ultim[ao]s\s+(\d+)\s+(?:meses|assembleias|resultados)`)
	lastAssemblyRe   = regexp.MustCompile(`ultim[ao]\s+(?:assembleia|resultado)`)
	diacriticFolding = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

var speciesPatterns = []struct {
	species types.Species
	re      *regexp.Regexp
}{
	{types.SpeciesMotorcycle, regexp.MustCompile(`\b(moto|motos|motocicleta|motoca|scooter)\b`)},
	{types.SpeciesAuto, regexp.MustCompile(`\b(carro|carros|auto|automovel|veiculo|veiculos|caminhao|caminhonete|pickup|suv)\b`)},
	{types.SpeciesProperty, regexp.MustCompile(`\b(imovel|imoveis|casa|apartamento|apto|terreno|imobiliario)\b`)},
	{types.SpeciesService, regexp.MustCompile(`\b(servico|servicos|viagem|cirurgia|formatura|intercambio)\b`)},
}

var flagPatterns = map[string]*regexp.Regexp{
	"installment":   regexp.MustCompile(`\b(parcela|parcelas|prestacao|prestacoes|mensalidade)\b`),
	"bid":           regexp.MustCompile(`\b(lance|lances|oferta|ofertar)\b`),
	"term":          regexp.MustCompile(`\b(prazo|prazos|meses|vezes|duracao)\b`),
	"group":         regexp.MustCompile(`\b(grupo|grupos)\b`),
	"vacancy":       regexp.MustCompile(`\b(vaga|vagas|disponivel|disponiveis)\b`),
	"contemplation": regexp.MustCompile(`\b(contemplacao|contemplacoes|contemplado|contemplados|contemplar)\b`),
	"quantity":      regexp.MustCompile(`\b(quantos|quantas|quantidade|numero de|total de)\b`),
	"highest":       regexp.MustCompile(`\b(maior|maiores|maximo|mais alto|mais alta)\b`),
	"lowest":        regexp.MustCompile(`\b(menor|menores|minimo|mais baixo|mais baixa)\b`),
	"average":       regexp.MustCompile(`\b(media|medias|em media)\b`),
	"fixed_bid":     regexp.MustCompile(`\b(lance fixo|lances fixos|fixo|fixos)\b`),
	"free_bid":      regexp.MustCompile(`\b(lance livre|lances livres|livre|livres)\b`),
	"light":         regexp.MustCompile(`\blight\b`),
	"super_light":   regexp.MustCompile(`\b(superlight|super light)\b`),
	"summary":       regexp.MustCompile(`\b(resultado|resultados|resumo|como foi|saiu)\b`),
	"forecast":      regexp.MustCompile(`\b(previsao|probabilidade|chance|chances|tendencia|prever)\b`),
	"credit":        regexp.MustCompile(`\b(credito|creditos|carta|cartas|bem|valor do bem)\b`),
	"embedded":      regexp.MustCompile(`\b(embutido|embutidos)\b`),
}

// Normalize expands shorthand multipliers, folds diacritics, lowercases and
// strips symbols. "%" survives as the literal phrase "por cento" so the
// percentage rule still sees it after stripping.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "%", " por cento")
	if folded, _, err := transform.String(diacriticFolding, s); err == nil {
		s = folded
	}
	s = thousandsRe.ReplaceAllStringFunc(s, func(m string) string {
		cleaned := strings.ReplaceAll(m, ".", "")
		if i := strings.IndexByte(cleaned, ','); i >= 0 {
			cleaned = cleaned[:i]
		}
		return cleaned
	})
	s = multiplierRe.ReplaceAllStringFunc(s, expandMultiplier)
	s = decimalRe.ReplaceAllString(s, "$1")
	s = symbolRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func expandMultiplier(match string) string {
	sub := multiplierRe.FindStringSubmatch(match)
	raw := strings.ReplaceAll(sub[1], ",", ".")
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return match
	}
	return strconv.FormatFloat(val*1000, 'f', 0, 64)
}

// Extract interprets a free-text query. It is pure and deterministic; false
// positives across fields are possible and resolved downstream.
func Extract(text string) Result {
	normalized := Normalize(text)

	result := Result{
		Normalized:     normalized,
		MonthsLookback: DefaultLookbackMonths,
	}

	for _, sp := range speciesPatterns {
		if sp.re.MatchString(normalized) {
			result.Species = sp.species
			break
		}
	}

	if m := lookbackRe.FindStringSubmatch(normalized); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			result.MonthsLookback = n
		}
	} else if lastAssemblyRe.MatchString(normalized) {
		result.MonthsLookback = 1
		result.LastAssemblyOnly = true
	}

	result.Flags = extractFlags(normalized)

	for _, m := range numberRe.FindAllString(normalized, -1) {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			result.Numbers = append(result.Numbers, v)
		}
	}

	if m := groupRe.FindStringSubmatch(normalized); m != nil {
		result.GroupNumber = m[1]
	}
	if m := creditRe.FindStringSubmatch(normalized); m != nil {
		result.CreditValue, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := termRe.FindStringSubmatch(normalized); m != nil {
		for _, g := range m[1:] {
			if g == "" {
				continue
			}
			if n, err := strconv.Atoi(g); err == nil {
				result.TermMonths = n
			}
			break
		}
	}
	if m := percentRe.FindStringSubmatch(normalized); m != nil {
		result.Percent, _ = strconv.ParseFloat(m[1], 64)
	} else if m := bidAmountRe.FindStringSubmatch(normalized); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v <= 100 {
			result.Percent = v
		}
	}

	return result
}

func extractFlags(normalized string) Flags {
	return Flags{
		Installment:   flagPatterns["installment"].MatchString(normalized),
		Bid:           flagPatterns["bid"].MatchString(normalized),
		Term:          flagPatterns["term"].MatchString(normalized),
		Group:         flagPatterns["group"].MatchString(normalized),
		Vacancy:       flagPatterns["vacancy"].MatchString(normalized),
		Contemplation: flagPatterns["contemplation"].MatchString(normalized),
		Quantity:      flagPatterns["quantity"].MatchString(normalized),
		Highest:       flagPatterns["highest"].MatchString(normalized),
		Lowest:        flagPatterns["lowest"].MatchString(normalized),
		Average:       flagPatterns["average"].MatchString(normalized),
		FixedBid:      flagPatterns["fixed_bid"].MatchString(normalized),
		FreeBid:       flagPatterns["free_bid"].MatchString(normalized),
		Light:         flagPatterns["light"].MatchString(normalized),
		SuperLight:    flagPatterns["super_light"].MatchString(normalized),
		Summary:       flagPatterns["summary"].MatchString(normalized),
		Forecast:      flagPatterns["forecast"].MatchString(normalized),
		Credit:        flagPatterns["credit"].MatchString(normalized),
		Embedded:      flagPatterns["embedded"].MatchString(normalized),
	}
}
