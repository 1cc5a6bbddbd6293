package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jortiz/resumen-csv/internal/models"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			Date:        "09/10/2025",
			Description: "MERPAGO*RAPSODIA",
			Amount:      decimal.NewFromInt(-40000),
			Currency:    models.CurrencyARS,
			Owner:       "Juan Perez",
			Type:        models.TypeRealExpense,
			Category:    models.CategoryShopping,
			Subcategory: models.CategoryShopping,
		},
		{
			Date:              "09/11/2025",
			Description:       "FRAVEGA",
			Amount:            decimal.NewFromInt(-15000),
			Currency:          models.CurrencyARS,
			Type:              models.TypeRealExpense,
			Installment:       3,
			TotalInstallments: 12,
			IsInstallment:     true,
			PaymentMethod:     "Visa Galicia",
		},
	}
}

func TestWriteAndReadTransactionsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "transacciones.csv")

	require.NoError(t, WriteTransactionsToCSV(sampleTransactions(), path))

	loaded, err := ReadCSVFile[models.Transaction](path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "MERPAGO*RAPSODIA", loaded[0].Description)
	assert.True(t, loaded[0].Amount.Equal(decimal.NewFromInt(-40000)))
	assert.Equal(t, "Juan Perez", loaded[0].Owner)
	assert.Equal(t, "3/12", loaded[1].InstallmentLabel())
	assert.Equal(t, "Visa Galicia", loaded[1].PaymentMethod)
}

func TestWriteTransactionsToCSVRejectsNil(t *testing.T) {
	err := WriteTransactionsToCSV(nil, filepath.Join(t.TempDir(), "out.csv"))
	assert.Error(t, err)
}

func TestWriteTransactionsToCSVEmptyListWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vacio.csv")
	require.NoError(t, WriteTransactionsToCSV([]models.Transaction{}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date")

	loaded, err := ReadCSVFile[models.Transaction](path)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSetDelimiter(t *testing.T) {
	original := Delimiter
	defer SetDelimiter(original)

	SetDelimiter(';')
	assert.Equal(t, ';', int32(Delimiter))

	path := filepath.Join(t.TempDir(), "semicolon.csv")
	require.NoError(t, WriteTransactionsToCSV(sampleTransactions(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date;Description")

	loaded, err := ReadCSVFile[models.Transaction](path)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}
