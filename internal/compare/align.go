// Package compare lines up several balance sheets into one wide table.
package compare

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bilanco-dev/bilanco/internal/accounts"
	"github.com/bilanco-dev/bilanco/internal/code"
	"github.com/bilanco-dev/bilanco/internal/diag"
	"github.com/bilanco-dev/bilanco/internal/hierarchy"
	"github.com/bilanco-dev/bilanco/internal/model"
	"github.com/bilanco-dev/bilanco/internal/numeric"
)

// Selection is one sheet picked for comparison.
type Selection struct {
	SheetID      string
	ReportedYear int
	PeriodLabel  string
	Periods      []string // empty means every period used by Items
	Items        []model.LineItem
}

// FromSheet builds a Selection from a stored sheet.
func FromSheet(s model.BalanceSheet) Selection {
	return Selection{
		SheetID:      s.ID,
		ReportedYear: s.ReportedYear,
		PeriodLabel:  s.PeriodLabel,
		Periods:      s.Periods,
		Items:        s.Items,
	}
}

// Column identifies one period column of one sheet.
type Column struct {
	SheetID      string
	ReportedYear int
	PeriodLabel  string
	Period       string
}

// Label is a short header for the column.
func (c Column) Label() string {
	id := c.SheetID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s (%s #%s)", c.Period, c.PeriodLabel, id)
}

// Cell is one value in the table. Present is false when the sheet had
// nothing for that row and period.
type Cell struct {
	Value    decimal.Decimal
	Present  bool
	Computed bool
}

// Row is one account across all columns.
type Row struct {
	Code  string // raw account code, empty for name-keyed rows
	Name  string
	Cells []Cell
}

// Alignment is the merged table.
type Alignment struct {
	Columns     []Column
	Rows        []Row
	Diagnostics diag.List
}

type options struct {
	matcher Matcher
	aggOpts []hierarchy.Option
}

// Option configures Align.
type Option func(*options)

// WithMatcher sets the strategy for items that carry no code.
func WithMatcher(m Matcher) Option {
	return func(o *options) { o.matcher = m }
}

// WithAggregation passes options to the per-sheet hierarchy.Aggregate run,
// e.g. hierarchy.PreferReported().
func WithAggregation(aggOpts ...hierarchy.Option) Option {
	return func(o *options) { o.aggOpts = append(o.aggOpts, aggOpts...) }
}

// DefaultMinSimilarity is the NameMatch threshold used when none is configured.
const DefaultMinSimilarity = 0.8

// Align merges sheets. Columns are every sheet's own period columns,
// concatenated in selection order; two sheets covering the same year keep
// separate columns. Rows are keyed by raw account code. Items without a code
// are placed by the Matcher once all coded rows exist; a row only qualifies
// when it has no value yet in any column of the item's sheet, so an item
// never loses its values to an occupied row.
func Align(sheets []Selection, opts ...Option) Alignment {
	o := options{matcher: NameMatch{MinSimilarity: DefaultMinSimilarity}}
	for _, fn := range opts {
		fn(&o)
	}

	var a Alignment
	offsets := make([]int, len(sheets))
	periods := make([][]string, len(sheets))
	for i, s := range sheets {
		offsets[i] = len(a.Columns)
		periods[i] = s.Periods
		if len(periods[i]) == 0 {
			periods[i] = model.CollectPeriods(s.Items)
		}
		for _, p := range periods[i] {
			a.Columns = append(a.Columns, Column{
				SheetID:      s.SheetID,
				ReportedYear: s.ReportedYear,
				PeriodLabel:  s.PeriodLabel,
				Period:       p,
			})
		}
	}

	t := &table{width: len(a.Columns), byKey: make(map[string]int)}

	for i, s := range sheets {
		t.addCoded(s, offsets[i], periods[i], o.aggOpts, &a.Diagnostics)
	}
	for i, s := range sheets {
		for _, it := range s.Items {
			if !it.Uncoded() {
				continue
			}
			t.addUncoded(s.SheetID, it, offsets[i], periods[i], o.matcher, &a.Diagnostics)
		}
	}

	a.Rows = t.sorted()
	return a
}

type table struct {
	width int
	rows  []Row
	kinds []rowKind
	byKey map[string]int
}

type rowKind int

const (
	rowValid rowKind = iota
	rowInvalid
	rowNamed
)

func (t *table) ensure(key, rawCode, name string, kind rowKind) int {
	if i, ok := t.byKey[key]; ok {
		if t.rows[i].Name == "" {
			t.rows[i].Name = accounts.NormalizeName(name)
		}
		return i
	}
	t.rows = append(t.rows, Row{Code: rawCode, Name: accounts.NormalizeName(name), Cells: make([]Cell, t.width)})
	t.kinds = append(t.kinds, kind)
	t.byKey[key] = len(t.rows) - 1
	return len(t.rows) - 1
}

func (t *table) addCoded(s Selection, offset int, periods []string, aggOpts []hierarchy.Option, diags *diag.List) {
	var assets, liabs []model.LineItem
	for _, it := range s.Items {
		if it.Uncoded() {
			continue
		}
		side, err := code.Classify(it.Code)
		if err != nil {
			row := t.ensure(it.Code, it.Code, it.DisplayName, rowInvalid)
			t.fillRaw(row, it, offset, periods)
			diags.Add(diag.KindInvalidCode, it.Code, "", fmt.Sprintf("sheet %s: %v", s.SheetID, err))
			continue
		}
		if side == model.SideAsset {
			assets = append(assets, it)
		} else {
			liabs = append(liabs, it)
		}
	}

	for _, items := range [][]model.LineItem{assets, liabs} {
		roots, built := hierarchy.Build(items)
		appendForSheet(diags, s.SheetID, built)
		// Items are split by side, so Aggregate cannot report mixed sides.
		found, _ := hierarchy.Aggregate(roots, periods, aggOpts...)
		appendForSheet(diags, s.SheetID, found)

		seen := make(map[string]bool)
		hierarchy.WalkForest(roots, func(n *hierarchy.Node, _ int) {
			if seen[n.Item.Code] {
				diags.Add(diag.KindDuplicateCode, n.Item.Code, "",
					fmt.Sprintf("sheet %s: later occurrence %q left out of the table", s.SheetID, n.Item.DisplayName))
				return
			}
			seen[n.Item.Code] = true
			row := t.ensure(n.Item.Code, n.Item.Code, n.Item.DisplayName, rowValid)
			for j, p := range periods {
				if v, ok := n.Value(p); ok {
					t.rows[row].Cells[offset+j] = Cell{Value: v, Present: true, Computed: n.IsComputed(p)}
				}
			}
		})
	}
}

func appendForSheet(diags *diag.List, sheetID string, found diag.List) {
	for _, d := range found {
		d.Detail = fmt.Sprintf("sheet %s: %s", sheetID, d.Detail)
		*diags = append(*diags, d)
	}
}

func (t *table) addUncoded(sheetID string, it model.LineItem, offset int, periods []string, m Matcher, diags *diag.List) {
	// Only rows still empty for this sheet are offered to the matcher.
	var free []int
	var candidates []Row
	for i, r := range t.rows {
		if t.vacant(i, offset, len(periods)) {
			free = append(free, i)
			candidates = append(candidates, r)
		}
	}
	if j, ok := m.Match(it.DisplayName, candidates); ok {
		idx := free[j]
		diags.Add(diag.KindNameMatch, t.rows[idx].Code, "",
			fmt.Sprintf("sheet %s: %q placed on row %q", sheetID, it.DisplayName, t.rows[idx].Name))
		t.fillRaw(idx, it, offset, periods)
		return
	}

	base := "name:" + accounts.FoldName(it.DisplayName)
	key := base
	for n := 2; ; n++ {
		i, exists := t.byKey[key]
		if !exists || t.vacant(i, offset, len(periods)) {
			break
		}
		key = fmt.Sprintf("%s#%d", base, n)
	}
	row := t.ensure(key, "", it.DisplayName, rowNamed)
	diags.Add(diag.KindUnmatched, "", "",
		fmt.Sprintf("sheet %s: %q kept on its own row", sheetID, it.DisplayName))
	t.fillRaw(row, it, offset, periods)
}

// vacant reports whether row has no value in the n columns from offset.
func (t *table) vacant(row, offset, n int) bool {
	for _, c := range t.rows[row].Cells[offset : offset+n] {
		if c.Present {
			return false
		}
	}
	return true
}

// fillRaw writes the item's own values into cells that are still empty.
func (t *table) fillRaw(row int, it model.LineItem, offset int, periods []string) {
	for j, p := range periods {
		cell := &t.rows[row].Cells[offset+j]
		raw := it.Raw(p)
		if cell.Present || !numeric.IsPresent(raw) {
			continue
		}
		*cell = Cell{Value: numeric.Lenient(raw), Present: true}
	}
}

func (t *table) sorted() []Row {
	idx := make([]int, len(t.rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := t.kinds[idx[a]], t.kinds[idx[b]]
		if ka != kb {
			return ka < kb
		}
		if ka == rowNamed {
			return false
		}
		return code.Compare(t.rows[idx[a]].Code, t.rows[idx[b]].Code) < 0
	})
	out := make([]Row, len(idx))
	for i, j := range idx {
		out[i] = t.rows[j]
	}
	return out
}
