package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileName is the workspace configuration file.
const FileName = "bilanco.yaml"

// Tolerance names. The summary tolerance applies to headline totals, the
// detail tolerance to per-period reconciliation.
const (
	ToleranceSummary = "summary"
	ToleranceDetail  = "detail"
)

// Matching strategies for items without an account code.
const (
	StrategyName  = "name"
	StrategyExact = "exact"
)

// Import encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1254 = "windows-1254"
)

// Config represents the top-level bilanco.yaml configuration.
type Config struct {
	Workspace      WorkspaceConfig      `yaml:"workspace"`
	Storage        StorageConfig        `yaml:"storage"`
	Catalog        CatalogConfig        `yaml:"catalog"`
	Reconciliation ReconciliationConfig `yaml:"reconciliation"`
	Display        DisplayConfig        `yaml:"display"`
	Aggregation    AggregationConfig    `yaml:"aggregation"`
	Matching       MatchingConfig       `yaml:"matching"`
	Import         ImportConfig         `yaml:"import"`
}

// WorkspaceConfig names the workspace, usually after the company.
type WorkspaceConfig struct {
	Name string `yaml:"name"`
}

// StorageConfig locates the sheet database, relative to the workspace root.
type StorageConfig struct {
	Database string `yaml:"database"`
}

// CatalogConfig locates the chart-of-accounts CSV.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// ReconciliationConfig holds tolerances as decimal strings, e.g. "0.01".
type ReconciliationConfig struct {
	SummaryTolerance string `yaml:"summary_tolerance"`
	DetailTolerance  string `yaml:"detail_tolerance"`
}

// DisplayConfig controls tree output.
type DisplayConfig struct {
	ShowEmptyRows bool `yaml:"show_empty_rows"`
}

// AggregationConfig controls how parent totals are resolved.
type AggregationConfig struct {
	PreferReported bool `yaml:"prefer_reported"`
}

// MatchingConfig controls comparison of uncoded rows.
type MatchingConfig struct {
	Strategy      string  `yaml:"strategy"`
	MinSimilarity float64 `yaml:"min_similarity"`
}

// ImportConfig controls importer defaults.
type ImportConfig struct {
	Encoding string `yaml:"encoding"`
}

// ErrUnknownTolerance is returned by Tolerance for names other than
// ToleranceSummary and ToleranceDetail.
var ErrUnknownTolerance = errors.New("unknown tolerance")

// Load reads a bilanco.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(name string) *Config {
	return &Config{
		Workspace: WorkspaceConfig{Name: name},
		Storage:   StorageConfig{Database: "bilanco.db"},
		Catalog:   CatalogConfig{Path: "accounts/chart-of-accounts.csv"},
		Reconciliation: ReconciliationConfig{
			SummaryTolerance: "1.00",
			DetailTolerance:  "0.01",
		},
		Matching: MatchingConfig{
			Strategy:      StrategyName,
			MinSimilarity: 0.8,
		},
		Import: ImportConfig{Encoding: EncodingUTF8},
	}
}

// Tolerance returns the named tolerance as a decimal.
func (c *Config) Tolerance(name string) (decimal.Decimal, error) {
	var raw string
	switch name {
	case ToleranceSummary:
		raw = c.Reconciliation.SummaryTolerance
	case ToleranceDetail:
		raw = c.Reconciliation.DetailTolerance
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownTolerance, name)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s tolerance %q: %w", name, raw, err)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s tolerance %q is negative", name, raw)
	}
	return v, nil
}

// Validate checks enumerated settings and tolerances. It returns every
// problem found.
func (c *Config) Validate() []error {
	var errs []error
	switch c.Matching.Strategy {
	case StrategyName, StrategyExact:
	default:
		errs = append(errs, fmt.Errorf("matching.strategy %q: want %q or %q", c.Matching.Strategy, StrategyName, StrategyExact))
	}
	if c.Matching.Strategy == StrategyName && (c.Matching.MinSimilarity <= 0 || c.Matching.MinSimilarity > 1) {
		errs = append(errs, fmt.Errorf("matching.min_similarity %v: want a value in (0, 1]", c.Matching.MinSimilarity))
	}
	switch c.Import.Encoding {
	case EncodingUTF8, EncodingWindows1254:
	default:
		errs = append(errs, fmt.Errorf("import.encoding %q: want %q or %q", c.Import.Encoding, EncodingUTF8, EncodingWindows1254))
	}
	for _, name := range []string{ToleranceSummary, ToleranceDetail} {
		if _, err := c.Tolerance(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
