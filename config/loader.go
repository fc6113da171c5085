// Package config loads quote fixtures: rebate tiers, lifetime loading, the
// pre-bundled extras catalog and initial attributes.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/liamcoop/healthquote/internal/logger"
	"github.com/liamcoop/healthquote/quote"
	"github.com/liamcoop/healthquote/rebate"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a quote fixture
type File struct {
	// LogLevel overrides LOG_LEVEL when set
	LogLevel string `yaml:"logLevel"`

	LHC        quote.LifetimeLoading    `yaml:"lhc"`
	Tiers      []*rebate.TierDefinition `yaml:"tiers"`
	Extras     quote.Catalog            `yaml:"extras"`
	Attributes map[string]any           `yaml:"attributes"`
}

// Load reads and parses the fixture at path and applies its log level.
// Unlike application config, a missing fixture is an error.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quote file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if f.LogLevel != "" {
		level, _ := logger.ParseLevel(f.LogLevel)
		logger.SetLevel(level)
	}

	return f, nil
}

// Parse decodes a fixture and validates it without touching process state
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse quote file: %w", err)
	}

	if f.LHC.Loading < 0 {
		return nil, fmt.Errorf("lhc loading %v cannot be negative", f.LHC.Loading)
	}

	if err := rebate.ValidateTierDefinitions(f.Tiers); err != nil {
		return nil, fmt.Errorf("invalid tiers: %w", err)
	}

	if f.LogLevel != "" {
		if _, err := logger.ParseLevel(f.LogLevel); err != nil {
			return nil, err
		}
	}

	return &f, nil
}

// NewModel compiles the tiers and builds a quote model.
// now may be nil to use the wall clock.
func (f *File) NewModel(now func() time.Time) (*quote.Model, error) {
	store := rebate.NewInMemoryTierStore()
	for _, def := range f.Tiers {
		if err := store.Add(def); err != nil {
			return nil, err
		}
	}

	engine, err := rebate.NewEngine(store)
	if err != nil {
		return nil, err
	}

	m := quote.New(quote.Config{
		AGR:                      engine,
		LHC:                      f.LHC,
		Attributes:               f.Attributes,
		PreBundledExtrasProducts: f.Extras,
		Now:                      now,
	})

	logger.Info("quote loaded", "quote_id", m.ID(), "tiers", len(f.Tiers), "extras", len(f.Extras))

	return m, nil
}
