package logging

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHookedAdapter() (*LogrusAdapter, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return &LogrusAdapter{logger: logger, entry: logrus.NewEntry(logger)}, hook
}

func TestNewLogrusAdapterLevelFallback(t *testing.T) {
	adapter, ok := NewLogrusAdapter("not-a-level", "text").(*LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, logrus.InfoLevel, adapter.logger.GetLevel())
}

func TestNewLogrusAdapterJSONFormat(t *testing.T) {
	adapter, ok := NewLogrusAdapter("debug", "json").(*LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, logrus.DebugLevel, adapter.logger.GetLevel())
	_, isJSON := adapter.logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}

func TestAdapterCarriesFieldsToEntries(t *testing.T) {
	adapter, hook := newHookedAdapter()

	adapter.Info("parser selected",
		Field{Key: FieldParser, Value: "banco"},
		Field{Key: FieldCount, Value: 3})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "parser selected", entry.Message)
	assert.Equal(t, "banco", entry.Data[FieldParser])
	assert.Equal(t, 3, entry.Data[FieldCount])
}

func TestAdapterDerivedLoggersDoNotMutateParent(t *testing.T) {
	adapter, hook := newHookedAdapter()
	cause := errors.New("boom")

	derived := adapter.WithField(FieldOwner, "Juan Perez").WithError(cause)
	derived.Warn("owner block dropped")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "Juan Perez", entry.Data[FieldOwner])
	assert.Equal(t, cause, entry.Data[logrus.ErrorKey])

	adapter.Info("plain entry")
	assert.NotContains(t, hook.LastEntry().Data, FieldOwner)
}
