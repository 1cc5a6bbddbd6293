package tabularparser

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
)

func newTestParser() *Parser {
	return New(logging.NewMockLogger(), models.CurrencyARS)
}

func TestParseSpanishHeaders(t *testing.T) {
	input := strings.Join([]string{
		"Fecha,Detalle,Monto,Moneda",
		"09/10/2025,COTO SUC 45,-12345.67,ARS",
		"10/10/2025,SUELDO OCTUBRE,900000.00,ARS",
	}, "\n")

	transactions, err := newTestParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "09/10/2025", transactions[0].Date)
	assert.Equal(t, "COTO SUC 45", transactions[0].Description)
	assert.Equal(t, models.TypeRealExpense, transactions[0].Type)
	assert.Equal(t, models.TypeRealIncome, transactions[1].Type)
}

func TestParseEnglishHeadersAnyOrder(t *testing.T) {
	input := strings.Join([]string{
		"Amount,Description,Date,Owner",
		"\"-1,234.56\",NETFLIX.COM,05/11/2025,Juan Perez",
	}, "\n")

	transactions, err := newTestParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	tx := transactions[0]
	assert.True(t, tx.Amount.Equal(decimal.NewFromFloat(-1234.56)))
	assert.Equal(t, "NETFLIX.COM", tx.Description)
	assert.Equal(t, "Juan Perez", tx.Owner)
}

func TestParseSemicolonDelimiter(t *testing.T) {
	input := strings.Join([]string{
		"fecha;descripcion;importe",
		"09/10/2025;FARMACITY;-1500,50",
	}, "\n")

	transactions, err := newTestParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.True(t, transactions[0].Amount.Equal(decimal.NewFromFloat(-1500.50)))
}

func TestParseTypeColumnWinsOverSign(t *testing.T) {
	input := strings.Join([]string{
		"fecha,detalle,monto,tipo",
		"09/10/2025,TRANSFERENCIA PROPIA,-5000.00,transferencia",
		"10/10/2025,AJUSTE,-100.00,excluido",
	}, "\n")

	transactions, err := newTestParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, models.TypeInternalTransfer, transactions[0].Type)
	assert.Equal(t, models.TypeExcluded, transactions[1].Type)
}

func TestParseISODates(t *testing.T) {
	input := strings.Join([]string{
		"date,description,amount",
		"2025-10-09,UBER TRIP,-3000.00",
	}, "\n")

	transactions, err := newTestParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "09/10/2025", transactions[0].Date)
}

func TestParseSkipsInvalidRows(t *testing.T) {
	input := strings.Join([]string{
		"fecha,detalle,monto",
		"no-es-fecha,ALGO,-100.00",
		"09/10/2025,VALIDO,-100.00",
		"10/10/2025,SIN MONTO,",
		"11/10/2025,,50.00",
	}, "\n")

	transactions, err := newTestParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "VALIDO", transactions[0].Description)
}

func TestParsePreambleBeforeHeader(t *testing.T) {
	input := strings.Join([]string{
		"Exportado el 01/11/2025",
		"",
		"fecha,detalle,monto",
		"09/10/2025,VALIDO,-100.00",
	}, "\n")

	transactions, err := newTestParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)
}

func TestParseNoHeaderIsAnError(t *testing.T) {
	input := "esto,no,tiene\nencabezado,reconocible,1.00\n"

	_, err := newTestParser().Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestParseUnknownCurrencyFallsBack(t *testing.T) {
	input := strings.Join([]string{
		"fecha,detalle,monto,moneda",
		"09/10/2025,ALGO,-100.00,EUR",
	}, "\n")

	transactions, err := newTestParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, models.CurrencyARS, transactions[0].Currency)
}
