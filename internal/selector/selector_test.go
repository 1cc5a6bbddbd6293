package selector

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"jortiz/resumen-csv/internal/models"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		filename string
		opts     Options
		expected Kind
	}{
		{"Explicit AI override", "whatever", "resumen.txt", Options{Method: "ai"}, KindAI},
		{"Explicit tabular override", "whatever", "resumen.txt", Options{Method: "tabular"}, KindTabular},
		{"Override is case-insensitive", "whatever", "resumen.txt", Options{Method: "AI"}, KindAI},
		{"CSV extension", "fecha,monto", "export.csv", Options{}, KindTabular},
		{"TSV extension", "fecha\tmonto", "export.tsv", Options{}, KindTabular},
		{"Filename says tarjeta", "texto", "tarjeta-galicia-2025-11.txt", Options{}, KindCard},
		{"Filename says visa", "texto", "VISA_noviembre.txt", Options{}, KindCard},
		{"Filename says amex", "texto", "resumen-amex.txt", Options{}, KindCard},
		{"Content says limite de compra", "Limite de Compra: 500.000", "resumen.txt", Options{}, KindCard},
		{"Content says total consumos", "Total Consumos de JUAN", "resumen.txt", Options{}, KindCard},
		{"Default is bank", "09/10/2025 COTO 1.000,00", "resumen.txt", Options{}, KindBank},
		{"Empty everything is bank", "", "", Options{}, KindBank},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Detect(tc.text, tc.filename, tc.opts))
		})
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, KindCard, Detect("limite de compra", "resumen.txt", Options{}))
	}
}

type stubParser struct{ name string }

func (s stubParser) Parse(r io.Reader) ([]models.Transaction, error) { return nil, nil }

func TestFactoryParserForIsTotal(t *testing.T) {
	factory := Factory{
		Bank:    stubParser{"bank"},
		Card:    stubParser{"card"},
		Tabular: stubParser{"tabular"},
		AI:      stubParser{"ai"},
	}

	assert.Equal(t, stubParser{"bank"}, factory.ParserFor(KindBank))
	assert.Equal(t, stubParser{"card"}, factory.ParserFor(KindCard))
	assert.Equal(t, stubParser{"tabular"}, factory.ParserFor(KindTabular))
	assert.Equal(t, stubParser{"ai"}, factory.ParserFor(KindAI))
	// Unknown kinds still resolve to a parser.
	assert.Equal(t, stubParser{"bank"}, factory.ParserFor(Kind("pdf")))
}

func TestFactorySelect(t *testing.T) {
	factory := Factory{Bank: stubParser{"bank"}, Card: stubParser{"card"}}

	p, kind := factory.Select("total consumos de JUAN", "resumen.txt", Options{})
	assert.Equal(t, KindCard, kind)
	assert.Equal(t, stubParser{"card"}, p)
}
