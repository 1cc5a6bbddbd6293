// Package store loads and saves the user's categorization data: rules, card
// mappings and keyword overrides, all as YAML files resolved through a fixed
// search path.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"jortiz/resumen-csv/internal/fileutils"
	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
)

const (
	RulesFile        = "rules.yaml"
	CardMappingsFile = "card_mappings.yaml"
	KeywordsFile     = "keywords.yaml"
)

// Store resolves and persists the YAML data files. DataDir, when set, is
// checked before the standard locations.
type Store struct {
	DataDir string
	logger  logging.Logger
}

// New creates a store rooted at dataDir; an empty dataDir falls back to the
// search path alone.
func New(dataDir string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{DataDir: dataDir, logger: logger}
}

// FindDataFile looks for filename in the standard locations: the configured
// data directory, the working directory, ./data and ~/.resumen-csv.
func (s *Store) FindDataFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	var locations []string
	if s.DataDir != "" {
		locations = append(locations, filepath.Join(s.DataDir, filename))
	}
	locations = append(locations,
		filename,
		filepath.Join("data", filename),
	)
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".resumen-csv", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// writePath is where new files are created: the data directory when set,
// else the working directory.
func (s *Store) writePath(filename string) string {
	if s.DataDir != "" {
		return filepath.Join(s.DataDir, filename)
	}
	return filename
}

type rulesDocument struct {
	Rules []models.CategorizationRule `yaml:"rules"`
}

// LoadRules reads the categorization rules in file order. A missing file is
// not an error: it yields an empty rule set.
func (s *Store) LoadRules() ([]models.CategorizationRule, error) {
	path, err := s.FindDataFile(RulesFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField(logging.FieldFile, RulesFile).
				Debug("Rules file not found, starting with no rules")
			return nil, nil
		}
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var doc rulesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing rules file: %w", err)
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(doc.Rules)},
	).Debug("Loaded categorization rules")
	return doc.Rules, nil
}

// SaveRules writes the full rule list back, preserving order.
func (s *Store) SaveRules(rules []models.CategorizationRule) error {
	data, err := yaml.Marshal(rulesDocument{Rules: rules})
	if err != nil {
		return fmt.Errorf("error marshaling rules: %w", err)
	}
	return s.writeFile(RulesFile, data)
}

type cardMappingsDocument struct {
	Cards []models.CardMapping `yaml:"cards"`
}

// LoadCardMappings reads the card-to-owner mapping table. A missing file
// yields an empty table.
func (s *Store) LoadCardMappings() (models.CardMappings, error) {
	path, err := s.FindDataFile(CardMappingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField(logging.FieldFile, CardMappingsFile).
				Debug("Card mappings file not found")
			return nil, nil
		}
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading card mappings file: %w", err)
	}

	var doc cardMappingsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// Older files carry a bare list without the top-level key.
		var direct []models.CardMapping
		if directErr := yaml.Unmarshal(data, &direct); directErr != nil {
			return nil, fmt.Errorf("error parsing card mappings file: %w", err)
		}
		doc.Cards = direct
	}

	return models.CardMappings(doc.Cards), nil
}

// SaveCardMappings writes the mapping table.
func (s *Store) SaveCardMappings(mappings models.CardMappings) error {
	data, err := yaml.Marshal(cardMappingsDocument{Cards: mappings})
	if err != nil {
		return fmt.Errorf("error marshaling card mappings: %w", err)
	}
	return s.writeFile(CardMappingsFile, data)
}

// KeywordOverrides maps a category name to extra keywords the user added on
// top of the built-in heuristic table.
type KeywordOverrides map[string][]string

// LoadKeywordOverrides reads user keyword additions. A missing file yields
// an empty map.
func (s *Store) LoadKeywordOverrides() (KeywordOverrides, error) {
	path, err := s.FindDataFile(KeywordsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return KeywordOverrides{}, nil
		}
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading keywords file: %w", err)
	}

	overrides := KeywordOverrides{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("error parsing keywords file: %w", err)
	}
	return overrides, nil
}

func (s *Store) writeFile(filename string, data []byte) error {
	path := s.writePath(filename)
	if err := fileutils.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}
	s.logger.WithField(logging.FieldFile, path).Debug("Saved data file")
	return nil
}
