package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jortiz/resumen-csv/internal/models"
)

func TestValidateTransactions(t *testing.T) {
	valid := models.Transaction{
		Date:        "09/10/2025",
		Description: "COTO SUC 45",
		Amount:      decimal.NewFromInt(-1000),
		Currency:    models.CurrencyARS,
		Type:        models.TypeRealExpense,
	}

	t.Run("All valid", func(t *testing.T) {
		assert.NoError(t, ValidateTransactions([]models.Transaction{valid}))
	})

	t.Run("Missing type", func(t *testing.T) {
		tx := valid
		tx.Type = ""
		err := ValidateTransactions([]models.Transaction{tx})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "type")
	})

	t.Run("Broken invariant reports index", func(t *testing.T) {
		tx := valid
		tx.Date = ""
		err := ValidateTransactions([]models.Transaction{valid, tx})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "transaction 1")
	})

	t.Run("Empty list", func(t *testing.T) {
		assert.NoError(t, ValidateTransactions(nil))
	})
}

func TestIsValidInputPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "resumen.txt")
	require.NoError(t, os.WriteFile(file, []byte("data"), 0o600))

	assert.NoError(t, IsValidInputPath(file))
	assert.Error(t, IsValidInputPath(filepath.Join(dir, "missing.txt")))
	assert.Error(t, IsValidInputPath(dir))
}

func TestIsValidParserMethod(t *testing.T) {
	assert.NoError(t, IsValidParserMethod(""))
	assert.NoError(t, IsValidParserMethod("ai"))
	assert.NoError(t, IsValidParserMethod("tabular"))
	assert.Error(t, IsValidParserMethod("pdf"))
}
