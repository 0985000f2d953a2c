package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bilanco-dev/bilanco/internal/code"
	"github.com/bilanco-dev/bilanco/internal/model"
)

const (
	numFields  = 5
	colCode    = 0
	colName    = 1
	colSide    = 2
	colLedger  = 3
	colDesc    = 4
	headerCode = "code"
)

// ReadCatalog reads chart-of-accounts.csv.
func ReadCatalog(r io.Reader) ([]model.ChartCatalogEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading catalog CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.ChartCatalogEntry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteCatalog writes chart-of-accounts.csv.
func WriteCatalog(w io.Writer, entries []model.ChartCatalogEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{headerCode, "name", "side", "ledger_code", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalEntry converts a catalog entry to a CSV row.
func MarshalEntry(e model.ChartCatalogEntry) []string {
	row := make([]string, numFields)
	row[colCode] = e.Code
	row[colName] = e.Name
	row[colSide] = string(e.Side)
	row[colLedger] = e.LedgerCode
	row[colDesc] = e.Description
	return row
}

// UnmarshalEntry converts a CSV row to a catalog entry. The side column
// may be left empty, in which case it is derived from the code; when given
// it must agree with the code.
func UnmarshalEntry(record []string) (model.ChartCatalogEntry, error) {
	if len(record) != numFields {
		return model.ChartCatalogEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	side, err := code.Classify(record[colCode])
	if err != nil {
		return model.ChartCatalogEntry{}, fmt.Errorf("parsing code: %w", err)
	}
	if s := model.Side(record[colSide]); s != "" && s != side {
		return model.ChartCatalogEntry{}, fmt.Errorf("code %s is %s, side column says %s", record[colCode], side, s)
	}

	return model.ChartCatalogEntry{
		Code:        record[colCode],
		Name:        record[colName],
		Side:        side,
		LedgerCode:  record[colLedger],
		Description: record[colDesc],
	}, nil
}
