package compare

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/bilanco-dev/bilanco/internal/model"
	"github.com/bilanco-dev/bilanco/internal/numeric"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "Karşılaştırma"

// WriteCSV writes the table with one header row of column labels. Values
// use the Turkish number format; absent cells are "-".
func WriteCSV(w io.Writer, a Alignment) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"code", "name"}
	for _, c := range a.Columns {
		header = append(header, c.Label())
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range a.Rows {
		rec := []string{r.Code, r.Name}
		for _, cell := range r.Cells {
			rec = append(rec, formatCell(cell))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(c Cell) string {
	if !c.Present {
		return model.NoData
	}
	return numeric.Format(c.Value)
}

// header rows in the workbook: sheet, reported year/label, period
const xlsxHeaderRows = 3

// WriteXLSX writes the table as a workbook. The first three rows identify
// each column (sheet, reported period, data period); values are numeric
// cells with two-decimal formatting.
func WriteXLSX(w io.Writer, a Alignment) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	sheetRow := []interface{}{"Bilanço", ""}
	reportRow := []interface{}{"Dönem", ""}
	periodRow := []interface{}{"Kod", "Hesap"}
	for _, c := range a.Columns {
		sheetRow = append(sheetRow, c.SheetID)
		reportRow = append(reportRow, strconv.Itoa(c.ReportedYear)+" "+c.PeriodLabel)
		periodRow = append(periodRow, c.Period)
	}
	for i, row := range [][]interface{}{sheetRow, reportRow, periodRow} {
		if err := setRow(f, i+1, row); err != nil {
			return err
		}
	}

	for i, r := range a.Rows {
		vals := []interface{}{r.Code, r.Name}
		for _, cell := range r.Cells {
			if cell.Present {
				vals = append(vals, cell.Value.InexactFloat64())
			} else {
				vals = append(vals, nil)
			}
		}
		if err := setRow(f, xlsxHeaderRows+1+i, vals); err != nil {
			return err
		}
	}

	if len(a.Columns) > 0 && len(a.Rows) > 0 {
		style, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
		if err != nil {
			return fmt.Errorf("creating number style: %w", err)
		}
		from, _ := excelize.CoordinatesToCellName(3, xlsxHeaderRows+1)
		to, _ := excelize.CoordinatesToCellName(2+len(a.Columns), xlsxHeaderRows+len(a.Rows))
		if err := f.SetCellStyle(SheetName, from, to, style); err != nil {
			return fmt.Errorf("styling values: %w", err)
		}
	}
	if err := f.SetColWidth(SheetName, "B", "B", 48); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, vals []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &vals); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}
