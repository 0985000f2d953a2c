package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/bilanco-dev/bilanco/internal/accounts"
	"github.com/bilanco-dev/bilanco/internal/model"
)

// Parser format names.
const (
	FormatCSV     = "csv"
	FormatCSV1254 = "csv-1254"
	FormatJSON    = "json"
)

const (
	csvColCode    = 0
	csvColName    = 1
	csvFirstValue = 2
)

// CSVParser reads UTF-8 sheets laid out as code,name,<period>,<period>...
// The header row names the period columns. Values are kept raw; blank
// cells become model.NoData.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return FormatCSV }

// Parse reads a sheet CSV.
func (p *CSVParser) Parse(r io.Reader) (model.BalanceSheet, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return model.BalanceSheet{}, fmt.Errorf("reading sheet CSV: %w", err)
	}
	if len(records) == 0 {
		return model.BalanceSheet{}, fmt.Errorf("reading sheet CSV: missing header")
	}

	periods, err := csvPeriods(records[0])
	if err != nil {
		return model.BalanceSheet{}, err
	}

	sheet := model.BalanceSheet{Periods: periods}
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		sheet.Items = append(sheet.Items, csvItem(rec, periods))
	}
	return sheet, nil
}

func csvPeriods(header []string) ([]string, error) {
	if len(header) < csvFirstValue {
		return nil, fmt.Errorf("header has %d columns, want code,name,<periods>", len(header))
	}
	first := strings.TrimSpace(strings.TrimPrefix(header[csvColCode], "\ufeff"))
	if !strings.EqualFold(first, "code") && !strings.EqualFold(first, "kod") {
		return nil, fmt.Errorf("header starts with %q, want code", first)
	}

	var periods []string
	seen := make(map[string]bool)
	for _, h := range header[csvFirstValue:] {
		key := strings.TrimSpace(h)
		if key == "" {
			return nil, fmt.Errorf("header has an empty period column")
		}
		if seen[key] {
			return nil, fmt.Errorf("header repeats period %q", key)
		}
		seen[key] = true
		periods = append(periods, key)
	}
	return periods, nil
}

func csvItem(rec []string, periods []string) model.LineItem {
	it := model.LineItem{
		Code:         strings.TrimSpace(rec[csvColCode]),
		DisplayName:  accounts.NormalizeName(rec[csvColName]),
		PeriodValues: make(map[string]string, len(periods)),
		Source:       model.SourceExtracted,
	}
	for j, p := range periods {
		raw := strings.TrimSpace(rec[csvFirstValue+j])
		if raw == "" {
			raw = model.NoData
		}
		it.PeriodValues[p] = raw
	}
	return it
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Windows1254Parser reads the same layout as CSVParser from legacy
// exports encoded in Windows-1254 (Turkish).
type Windows1254Parser struct {
	CSVParser
}

// Format returns the parser name.
func (p *Windows1254Parser) Format() string { return FormatCSV1254 }

// Parse decodes r and parses it as a sheet CSV.
func (p *Windows1254Parser) Parse(r io.Reader) (model.BalanceSheet, error) {
	return p.CSVParser.Parse(transform.NewReader(r, charmap.Windows1254.NewDecoder()))
}
