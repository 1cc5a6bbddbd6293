// Package container provides dependency injection for the resumen-csv
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"jortiz/resumen-csv/internal/aiparser"
	"jortiz/resumen-csv/internal/bankparser"
	"jortiz/resumen-csv/internal/cardparser"
	"jortiz/resumen-csv/internal/classifier"
	"jortiz/resumen-csv/internal/config"
	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
	"jortiz/resumen-csv/internal/selector"
	"jortiz/resumen-csv/internal/store"
	"jortiz/resumen-csv/internal/tabularparser"
)

// Container holds all application dependencies. It is immutable after
// creation; components are reached through getter methods only.
type Container struct {
	logger       logging.Logger
	config       *config.Config
	store        *store.Store
	aiClient     aiparser.Client
	rules        []models.CategorizationRule
	cardMappings models.CardMappings
	factory      selector.Factory
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	dataStore := store.New(cfg.Data.Directory, logger)

	cardMappings, err := dataStore.LoadCardMappings()
	if err != nil {
		return nil, fmt.Errorf("failed to load card mappings: %w", err)
	}

	rules, err := dataStore.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load categorization rules: %w", err)
	}
	overrides, err := dataStore.LoadKeywordOverrides()
	if err != nil {
		return nil, fmt.Errorf("failed to load keyword overrides: %w", err)
	}
	// User rules keep priority; owner exclusions and keyword additions
	// follow them in that order.
	rules = append(rules, classifier.RulesFromExcludedOwners(cfg.Classification.ExcludedOwners)...)
	rules = append(rules, classifier.RulesFromKeywords(overrides)...)

	var aiClient aiparser.Client
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		aiClient, err = aiparser.NewGeminiClient(context.Background(), cfg.AI.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create AI client: %w", err)
		}
		logger.Info("AI-assisted parsing enabled")
	} else {
		logger.Info("AI-assisted parsing disabled")
	}

	factory := selector.Factory{
		Bank: bankparser.New(logger, cardMappings, cfg.Statement.DefaultCurrency),
		Card: cardparser.New(logger, cardMappings,
			cfg.Statement.PrimaryHolder, cfg.Statement.DefaultCurrency),
		Tabular: tabularparser.New(logger, cfg.Statement.DefaultCurrency),
	}
	if aiClient != nil {
		factory.AI = aiparser.New(logger, aiClient,
			cfg.AI.Models, cfg.AI.MaxDocumentChars, cfg.Statement.DefaultCurrency)
	}

	logger.Info("Container initialized successfully",
		logging.Field{Key: "rules_count", Value: len(rules)},
		logging.Field{Key: "ai_enabled", Value: aiClient != nil})

	return &Container{
		logger:       logger,
		config:       cfg,
		store:        dataStore,
		aiClient:     aiClient,
		rules:        rules,
		cardMappings: cardMappings,
		factory:      factory,
	}, nil
}

// SelectParser picks the parser for a document. Requesting the AI parser
// without an AI client configured is an error rather than a silent fallback.
func (c *Container) SelectParser(text, filename string, opts selector.Options) (models.Parser, selector.Kind, error) {
	kind := selector.Detect(text, filename, opts)
	if kind == selector.KindAI && c.factory.AI == nil {
		return nil, kind, fmt.Errorf("AI parsing requested but no API key is configured")
	}
	return c.factory.ParserFor(kind), kind, nil
}

// ParserFor returns the parser for an explicitly chosen kind.
func (c *Container) ParserFor(kind selector.Kind) (models.Parser, error) {
	if kind == selector.KindAI && c.factory.AI == nil {
		return nil, fmt.Errorf("AI parsing requested but no API key is configured")
	}
	return c.factory.ParserFor(kind), nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's data store instance.
func (c *Container) GetStore() *store.Store {
	return c.store
}

// GetRules returns the effective rule list: user rules followed by keyword
// additions.
func (c *Container) GetRules() []models.CategorizationRule {
	return c.rules
}

// GetCardMappings returns the card-to-owner mapping table.
func (c *Container) GetCardMappings() models.CardMappings {
	return c.cardMappings
}

// Close releases container resources.
func (c *Container) Close() error {
	if c.aiClient != nil {
		if err := c.aiClient.Close(); err != nil {
			return err
		}
	}
	c.logger.Info("Container closed")
	return nil
}
