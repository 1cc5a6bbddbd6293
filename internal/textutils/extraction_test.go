package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDate(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
		found    bool
	}{
		{"Slash date", "09/10/2025 MERPAGO*RAPSODIA 40.000,00", "09/10/2025", true},
		{"Two-digit year", "compra 09/10/25 COTO", "09/10/25", true},
		{"Dash date", "09-10-2025 TRANSFERENCIA", "09-10-2025", true},
		{"Spanish month", "05-Ene-25 NETFLIX", "05-Ene-25", true},
		{"No date", "SALDO ANTERIOR 1.000,00", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token, loc, ok := FindDate(tc.line)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.expected, token)
				assert.Equal(t, tc.expected, tc.line[loc[0]:loc[1]])
			}
		})
	}
}

func TestFindAmount(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
		found    bool
	}{
		{"Argentinian format", "MERPAGO*RAPSODIA 40.000,00", "40.000,00", true},
		{"Plain decimal", "UBER TRIP 1234.56", "1234.56", true},
		{"Signed", "AJUSTE -500,25", "-500,25", true},
		{"Thousands-only token is not an amount", "REF 12,345 FIN", "", false},
		{"No amount", "TOTAL CONSUMOS DE JUAN PEREZ", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token, _, ok := FindAmount(tc.line)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.expected, token)
			}
		})
	}
}

func TestFindLastAmount(t *testing.T) {
	line := "SU PAGO 1.000,00 GRACIAS 15.000,00"
	token, _, ok := FindLastAmount(line)
	require.True(t, ok)
	assert.Equal(t, "15.000,00", token)
}

func TestExtractInstallment(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		installment int
		total       int
		rest        string
		found       bool
	}{
		{"Bare marker", "MERPAGO*RAPSODIA 02/06", 2, 6, "MERPAGO*RAPSODIA", true},
		{"Cuota prefix", "FRAVEGA Cuota 03/12", 3, 12, "FRAVEGA", true},
		{"C. prefix", "GARBARINO C.01/03", 1, 3, "GARBARINO", true},
		{"N greater than M rejected", "SERVICIO 24/7 ATENCION", 0, 0, "SERVICIO 24/7 ATENCION", false},
		{"Total of one rejected", "PROMO 1/1", 0, 0, "PROMO 1/1", false},
		{"No marker", "COTO SUCURSAL", 0, 0, "COTO SUCURSAL", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, total, rest, ok := ExtractInstallment(tc.input)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.installment, n)
			assert.Equal(t, tc.total, total)
			assert.Equal(t, tc.rest, rest)
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a\t b \n c  "))
	assert.Equal(t, "", CollapseWhitespace("   "))
}

func TestRemoveSpans(t *testing.T) {
	line := "09/10/2025 MERPAGO*RAPSODIA 40.000,00"
	dateLoc := []int{0, 10}
	amountLoc := []int{28, 37}
	assert.Equal(t, "MERPAGO*RAPSODIA", RemoveSpans(line, dateLoc, amountLoc))

	t.Run("Nil span ignored", func(t *testing.T) {
		assert.Equal(t, "MERPAGO*RAPSODIA 40.000,00", RemoveSpans(line, dateLoc, nil))
	})
}

func TestTitleCaseName(t *testing.T) {
	assert.Equal(t, "Juan Perez", TitleCaseName("JUAN PEREZ"))
	assert.Equal(t, "Maria Del Carmen Lopez", TitleCaseName("MARIA DEL CARMEN  LOPEZ"))
}
