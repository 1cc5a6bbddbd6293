package cardparser

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
)

func newTestParser(mappings models.CardMappings, primaryHolder string) *Parser {
	return New(logging.NewMockLogger(), mappings, primaryHolder, models.CurrencyARS)
}

func TestParseOwnerFooterStampsBufferedBlock(t *testing.T) {
	input := strings.Join([]string{
		"Cierre actual: 15/11/2025",
		"09/10/2025 MERPAGO*RAPSODIA 40.000,00",
		"12/10/2025 COTO SUC 45 12.345,00",
		"Total Consumos de JUAN PEREZ 52.345,00",
		"05/11/2025 NETFLIX.COM 8.999,00",
		"Total Consumos de MARIA PEREZ 8.999,00",
	}, "\n")

	transactions, err := newTestParser(nil, "").Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	assert.Equal(t, "Juan Perez", transactions[0].Owner)
	assert.Equal(t, "Juan Perez", transactions[1].Owner)
	assert.Equal(t, "Maria Perez", transactions[2].Owner)
}

func TestParseLinesAfterFooterDoNotInheritOwner(t *testing.T) {
	input := strings.Join([]string{
		"09/10/2025 COMPRA UNO 1.000,00",
		"Total Consumos de JUAN PEREZ 1.000,00",
		"10/10/2025 COMPRA DOS 2.000,00",
	}, "\n")

	transactions, err := newTestParser(nil, "").Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "Juan Perez", transactions[0].Owner)
	// The trailing block closed without a footer; with no primary holder
	// configured the owner stays unresolved.
	assert.Equal(t, "", transactions[1].Owner)
}

func TestParseTrailingBufferUsesPrimaryHolder(t *testing.T) {
	input := "09/10/2025 COMPRA UNO 1.000,00\n"

	transactions, err := newTestParser(nil, "Juan Perez").Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Juan Perez", transactions[0].Owner)
}

func TestParseCardMarkerSetsOwnerDirectly(t *testing.T) {
	mappings := models.CardMappings{{Last4: "4521", Owner: "Maria Perez"}}
	input := strings.Join([]string{
		"09/10/2025 COMPRA HUERFANA 1.000,00",
		"Tarjeta terminada en 4521",
		"10/10/2025 COMPRA DE MARIA 2.000,00",
	}, "\n")

	transactions, err := newTestParser(mappings, "").Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	// The orphan block before the marker is flushed as-is, best effort.
	assert.Equal(t, "", transactions[0].Owner)
	assert.Equal(t, "Maria Perez", transactions[1].Owner)
}

func TestParseFooterPrefersCardMappingOverFooterName(t *testing.T) {
	mappings := models.CardMappings{{Last4: "4521", Owner: "Maria Perez"}}
	input := strings.Join([]string{
		"09/10/2025 COMPRA 1.000,00",
		"Total Consumos de J PEREZ 4521",
	}, "\n")

	transactions, err := newTestParser(mappings, "").Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Maria Perez", transactions[0].Owner)
}

func TestParseInstallmentAdjustedToStatementMonth(t *testing.T) {
	input := strings.Join([]string{
		"Vencimiento: 15/11/2025",
		"09/10/2025 MERPAGO*RAPSODIA 02/06 40.000,00",
		"Total Consumos de JUAN PEREZ 40.000,00",
	}, "\n")

	transactions, err := newTestParser(nil, "").Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	tx := transactions[0]
	assert.Equal(t, "09/11/2025", tx.Date)
	assert.Equal(t, "MERPAGO*RAPSODIA", tx.Description)
	assert.True(t, tx.IsInstallment)
	assert.Equal(t, 2, tx.Installment)
	assert.Equal(t, 6, tx.TotalInstallments)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(-40000)))
	assert.Equal(t, models.TypeRealExpense, tx.Type)
}

func TestParseClosingDateWinsOverDueDate(t *testing.T) {
	input := strings.Join([]string{
		"Cierre actual: 10/11/2025",
		"Vencimiento: 20/11/2025",
		"09/10/2025 COMPRA 03/06 1.000,00",
	}, "\n")

	transactions, err := newTestParser(nil, "Juan Perez").Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "09/11/2025", transactions[0].Date)
}

func TestParsePaymentLineIsExcludedWithOriginalType(t *testing.T) {
	input := strings.Join([]string{
		"Vencimiento: 15/11/2025",
		"SU PAGO 15.000,00",
	}, "\n")

	transactions, err := newTestParser(nil, "Juan Perez").Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	tx := transactions[0]
	assert.Equal(t, models.TypeExcluded, tx.Type)
	assert.Equal(t, models.TypePayment, tx.OriginalType)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(15000)))
	// Payment lines carry no date; the statement date stands in.
	assert.Equal(t, "15/11/2025", tx.Date)
}

func TestParsePaymentLineWithoutAnyDateIsSkipped(t *testing.T) {
	transactions, err := newTestParser(nil, "").Parse(strings.NewReader("SU PAGO 15.000,00\n"))
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestParseMultipleConsumptionsPerLine(t *testing.T) {
	input := strings.Join([]string{
		"09/10/2025 COMPRA UNO 1.000,00 10/10/2025 COMPRA DOS 2.000,00",
		"Total Consumos de JUAN PEREZ 3.000,00",
	}, "\n")

	transactions, err := newTestParser(nil, "").Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "COMPRA UNO", transactions[0].Description)
	assert.Equal(t, "COMPRA DOS", transactions[1].Description)
}

func TestParseStampsPaymentMethod(t *testing.T) {
	input := strings.Join([]string{
		"VISA Banco Galicia - Resumen de cuenta",
		"09/10/2025 COMPRA 1.000,00",
		"Total Consumos de JUAN PEREZ 1.000,00",
	}, "\n")

	transactions, err := newTestParser(nil, "").Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Visa Galicia", transactions[0].PaymentMethod)
}

func TestParseDollarConsumption(t *testing.T) {
	input := strings.Join([]string{
		"09/10/2025 COMPRA EXTERIOR USD 100,00",
		"Total Consumos de JUAN PEREZ 100,00",
	}, "\n")

	transactions, err := newTestParser(nil, "").Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, models.CurrencyUSD, transactions[0].Currency)
}
