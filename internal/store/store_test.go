package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), logging.NewMockLogger())
}

func TestLoadRulesMissingFileIsEmpty(t *testing.T) {
	rules, err := newTestStore(t).LoadRules()
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestSaveAndLoadRulesPreservesOrder(t *testing.T) {
	s := newTestStore(t)

	rules := []models.CategorizationRule{
		{
			Name: "first",
			Condition: models.RuleCondition{
				Field:    models.FieldDescription,
				Operator: models.OpContains,
				Value:    "netflix",
			},
			Action:  models.RuleAction{Category: "Entretenimiento", Subcategory: "Streaming"},
			Enabled: true,
		},
		{
			Name: "second",
			Condition: models.RuleCondition{
				Field:    models.FieldAmount,
				Operator: models.OpGreaterThan,
				Value:    "100000",
			},
			Action:  models.RuleAction{Category: "Extraordinarios", Subcategory: "Extraordinarios"},
			Enabled: false,
		},
	}
	require.NoError(t, s.SaveRules(rules))

	loaded, err := s.LoadRules()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "first", loaded[0].Name)
	assert.Equal(t, "netflix", loaded[0].Condition.Value)
	assert.True(t, loaded[0].Enabled)
	assert.Equal(t, "second", loaded[1].Name)
	assert.False(t, loaded[1].Enabled)
}

func TestSaveAndLoadCardMappings(t *testing.T) {
	s := newTestStore(t)

	mappings := models.CardMappings{
		{Last4: "4521", Owner: "Juan Perez"},
		{Last4: "7788", Owner: "Maria Perez"},
	}
	require.NoError(t, s.SaveCardMappings(mappings))

	loaded, err := s.LoadCardMappings()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Juan Perez", loaded.OwnerForExact("4521"))
}

func TestLoadCardMappingsBareListFormat(t *testing.T) {
	dir := t.TempDir()
	bare := "- last4: \"4521\"\n  owner: Juan Perez\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, CardMappingsFile), []byte(bare), 0o600))

	loaded, err := New(dir, logging.NewMockLogger()).LoadCardMappings()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Juan Perez", loaded.OwnerForExact("4521"))
}

func TestLoadKeywordOverrides(t *testing.T) {
	dir := t.TempDir()
	content := "Mascotas:\n  - veterinaria\n  - puppis\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeywordsFile), []byte(content), 0o600))

	overrides, err := New(dir, logging.NewMockLogger()).LoadKeywordOverrides()
	require.NoError(t, err)
	assert.Equal(t, []string{"veterinaria", "puppis"}, overrides["Mascotas"])
}

func TestLoadKeywordOverridesMissingFile(t *testing.T) {
	overrides, err := newTestStore(t).LoadKeywordOverrides()
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestFindDataFilePrefersDataDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, RulesFile)
	require.NoError(t, os.WriteFile(path, []byte("rules: []\n"), 0o600))

	found, err := New(dir, logging.NewMockLogger()).FindDataFile(RulesFile)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestLoadRulesMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, RulesFile), []byte("rules: [unclosed"), 0o600))

	_, err := New(dir, logging.NewMockLogger()).LoadRules()
	assert.Error(t, err)
}
