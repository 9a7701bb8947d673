package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercase and diacritics",
			in:   "Crédito para CONTEMPLAÇÃO de imóvel",
			want: "credito para contemplacao de imovel",
		},
		{
			name: "k multiplier",
			in:   "Quero crédito de 50k para carro",
			want: "quero credito de 50000 para carro",
		},
		{
			name: "mil multiplier",
			in:   "lance de 30 mil",
			want: "lance de 30000",
		},
		{
			name: "fractional mil multiplier",
			in:   "1,5 mil",
			want: "1500",
		},
		{
			name: "thousands separators with cents",
			in:   "R$ 200.000,00",
			want: "r 200000",
		},
		{
			name: "thousands separators in sentence",
			in:   "parcela de 1.234,56",
			want: "parcela de 1234",
		},
		{
			name: "percent sign survives as words",
			in:   "lance de 45%",
			want: "lance de 45 por cento",
		},
		{
			name: "plain decimal truncated",
			in:   "media de 45,5",
			want: "media de 45",
		},
		{
			name: "symbols and extra spaces",
			in:   "grupo   #2011!",
			want: "grupo 2011",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestExtractEntities(t *testing.T) {
	result := Extract("grupo 2011 crédito 200000 prazo 200")

	assert.Equal(t, "2011", result.GroupNumber)
	assert.Equal(t, 200000.0, result.CreditValue)
	assert.Equal(t, 200, result.TermMonths)
	assert.Equal(t, []float64{2011, 200000, 200}, result.Numbers)
	assert.Empty(t, result.Species)
}

func TestExtractSpecies(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want types.Species
	}{
		{"motorcycle", "consórcio de moto", types.SpeciesMotorcycle},
		{"auto", "quero um carro novo", types.SpeciesAuto},
		{"property", "apartamento na planta", types.SpeciesProperty},
		{"service", "consórcio de viagem", types.SpeciesService},
		{"priority motorcycle over auto", "moto ou carro", types.SpeciesMotorcycle},
		{"priority auto over property", "trocar o carro pela casa", types.SpeciesAuto},
		{"none", "qual o melhor grupo", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.in).Species)
		})
	}
}

func TestExtractTerm(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"prazo phrase", "prazo de 180 meses", 180},
		{"em N vezes", "pagar em 72 vezes", 72},
		{"multiplicative x", "financiar em 60x", 60},
		{"absent", "qual a melhor parcela", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.in).TermMonths)
		})
	}
}

func TestExtractPercent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"spelled out", "lance de 35 por cento", 35},
		{"percent sign", "lance de 40%", 40},
		{"bare bid amount within range", "lance de 40", 40},
		{"bare bid amount too large is money", "lance de 5000", 0},
		{"no bid context", "prazo de 40", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.in).Percent)
		})
	}
}

func TestExtractLookback(t *testing.T) {
	t.Run("default window", func(t *testing.T) {
		result := Extract("quantas contemplações de moto")
		assert.Equal(t, DefaultLookbackMonths, result.MonthsLookback)
		assert.False(t, result.LastAssemblyOnly)
	})

	t.Run("explicit window", func(t *testing.T) {
		result := Extract("quantas contemplações nos últimos 3 meses")
		assert.Equal(t, 3, result.MonthsLookback)
		assert.False(t, result.LastAssemblyOnly)
	})

	t.Run("last assembly only", func(t *testing.T) {
		result := Extract("como foi o último resultado do grupo 809")
		assert.Equal(t, 1, result.MonthsLookback)
		assert.True(t, result.LastAssemblyOnly)
		assert.Equal(t, "809", result.GroupNumber)
	})
}

func TestExtractFlags(t *testing.T) {
	result := Extract("qual a média de lance livre para contemplação de imóvel nos últimos 3 meses")

	assert.True(t, result.Flags.Average)
	assert.True(t, result.Flags.Bid)
	assert.True(t, result.Flags.FreeBid)
	assert.True(t, result.Flags.Contemplation)
	assert.False(t, result.Flags.Quantity)
	assert.False(t, result.Flags.FixedBid)
	assert.False(t, result.Flags.Installment)

	result = Extract("quantas vagas no plano light com lance embutido")
	assert.True(t, result.Flags.Quantity)
	assert.True(t, result.Flags.Vacancy)
	assert.True(t, result.Flags.Light)
	assert.True(t, result.Flags.Embedded)
	assert.False(t, result.Flags.SuperLight)

	result = Extract("previsão de contemplação no plano super light")
	assert.True(t, result.Flags.Forecast)
	assert.True(t, result.Flags.SuperLight)
}

func TestExtractIsDeterministic(t *testing.T) {
	query := "grupo 1503 crédito de 150 mil em 120 meses com lance de 30%"
	first := Extract(query)
	second := Extract(query)
	assert.Equal(t, first, second)
}
