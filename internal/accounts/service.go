package accounts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bilanco-dev/bilanco/internal/model"
)

// DefaultPath is the catalog location inside a workspace.
const DefaultPath = "accounts/chart-of-accounts.csv"

// Service provides in-memory lookup over the chart of accounts. It is
// loaded once and shared for the life of the process.
type Service struct {
	entries []model.ChartCatalogEntry
	byCode  map[string]model.ChartCatalogEntry
}

// NewService creates a Service from catalog entries.
func NewService(entries []model.ChartCatalogEntry) *Service {
	byCode := make(map[string]model.ChartCatalogEntry, len(entries))
	for _, e := range entries {
		byCode[strings.TrimSpace(e.Code)] = e
	}
	return &Service{entries: entries, byCode: byCode}
}

// Load reads the catalog CSV at path.
func Load(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	entries, err := ReadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(entries), nil
}

// All returns all entries.
func (s *Service) All() []model.ChartCatalogEntry {
	return s.entries
}

// Get returns the entry for a code.
func (s *Service) Get(c string) (model.ChartCatalogEntry, bool) {
	e, ok := s.byCode[strings.TrimSpace(c)]
	return e, ok
}

// Exists reports whether a code is in the catalog.
func (s *Service) Exists(c string) bool {
	_, ok := s.Get(c)
	return ok
}

// BySide returns all entries on one side of the balance sheet.
func (s *Service) BySide(side model.Side) []model.ChartCatalogEntry {
	var result []model.ChartCatalogEntry
	for _, e := range s.entries {
		if e.Side == side {
			result = append(result, e)
		}
	}
	return result
}

// Save writes the catalog to path, creating parent directories.
func (s *Service) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteCatalog(f, s.entries); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
