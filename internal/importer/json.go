package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bilanco-dev/bilanco/internal/accounts"
	"github.com/bilanco-dev/bilanco/internal/model"
)

// JSONParser reads sheets produced by the extraction step. Two shapes are
// accepted and may be mixed: a flat "items" array, and "groups" whose items
// nest "children" to any depth. Nested items are flattened in document
// order; the hierarchy is rebuilt from codes later.
//
//	{
//	  "company": "Örnek A.Ş.",
//	  "reported_year": 2024,
//	  "period_label": "12/2024",
//	  "periods": ["2023", "2024"],
//	  "items": [{"code": "A.1.1.1", "name": "KASA", "values": {"2024": "125.000,00"}}],
//	  "groups": [{"name": "DÖNEN VARLIKLAR", "items": [{"code": "A.1", "children": [...]}]}]
//	}
//
// Values may be strings in the Turkish format or plain JSON numbers.
type JSONParser struct{}

// Format returns the parser name.
func (p *JSONParser) Format() string { return FormatJSON }

type jsonSheet struct {
	Company      string      `json:"company"`
	ReportedYear int         `json:"reported_year"`
	PeriodLabel  string      `json:"period_label"`
	Periods      []string    `json:"periods"`
	Items        []jsonItem  `json:"items"`
	Groups       []jsonGroup `json:"groups"`
}

type jsonGroup struct {
	Name  string     `json:"name"`
	Items []jsonItem `json:"items"`
}

type jsonItem struct {
	Code     string               `json:"code"`
	Name     string               `json:"name"`
	Values   map[string]jsonValue `json:"values"`
	Children []jsonItem           `json:"children"`
}

// jsonValue is a raw period value given as a string, a number, or null.
type jsonValue string

func (v *jsonValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = model.NoData
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = jsonValue(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("value %s: want string or number", data)
		}
		// Plain numbers use '.' for decimals; convert to the Turkish form
		// the rest of the pipeline reads.
		*v = jsonValue(strings.Replace(n.String(), ".", ",", 1))
	}
	return nil
}

// Parse reads a sheet JSON document.
func (p *JSONParser) Parse(r io.Reader) (model.BalanceSheet, error) {
	var doc jsonSheet
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return model.BalanceSheet{}, fmt.Errorf("decoding sheet JSON: %w", err)
	}

	sheet := model.BalanceSheet{
		Company:      strings.TrimSpace(doc.Company),
		ReportedYear: doc.ReportedYear,
		PeriodLabel:  strings.TrimSpace(doc.PeriodLabel),
	}
	for _, it := range doc.Items {
		sheet.Items = flatten(sheet.Items, it)
	}
	for _, g := range doc.Groups {
		for _, it := range g.Items {
			sheet.Items = flatten(sheet.Items, it)
		}
	}

	if len(doc.Periods) > 0 {
		sheet.Periods = doc.Periods
	} else {
		sheet.Periods = model.CollectPeriods(sheet.Items)
	}
	return sheet, nil
}

func flatten(out []model.LineItem, it jsonItem) []model.LineItem {
	li := model.LineItem{
		Code:         strings.TrimSpace(it.Code),
		DisplayName:  accounts.NormalizeName(it.Name),
		PeriodValues: make(map[string]string, len(it.Values)),
		Source:       model.SourceExtracted,
	}
	for p, v := range it.Values {
		raw := strings.TrimSpace(string(v))
		if raw == "" {
			raw = model.NoData
		}
		li.PeriodValues[strings.TrimSpace(p)] = raw
	}
	out = append(out, li)
	for _, c := range it.Children {
		out = flatten(out, c)
	}
	return out
}
