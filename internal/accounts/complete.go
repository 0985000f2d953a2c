package accounts

import (
	"sort"
	"strings"

	"github.com/bilanco-dev/bilanco/internal/code"
	"github.com/bilanco-dev/bilanco/internal/diag"
	"github.com/bilanco-dev/bilanco/internal/model"
)

// Densify adds a placeholder item for every catalog entry on side that the
// extracted items do not cover. See DensifyReport.
func Densify(items []model.LineItem, catalog []model.ChartCatalogEntry, side model.Side) []model.LineItem {
	out, _ := DensifyReport(items, catalog, side)
	return out
}

// DensifyReport is Densify that also reports each synthesized entry as an
// unmatched-catalog diagnostic. Placeholders carry the "-" marker for every
// period used by items. Existing items are returned unchanged; the result is
// ordered by natural code order with uncoded and invalid items last.
func DensifyReport(items []model.LineItem, catalog []model.ChartCatalogEntry, side model.Side) ([]model.LineItem, diag.List) {
	have := make(map[string]bool, len(items))
	for _, it := range items {
		have[strings.TrimSpace(it.Code)] = true
	}
	periods := model.CollectPeriods(items)

	out := make([]model.LineItem, len(items), len(items)+len(catalog))
	copy(out, items)

	var diags diag.List
	for _, e := range catalog {
		c := strings.TrimSpace(e.Code)
		if e.Side != side || have[c] {
			continue
		}
		have[c] = true

		pv := make(map[string]string, len(periods))
		for _, p := range periods {
			pv[p] = model.NoData
		}
		out = append(out, model.LineItem{
			Code:         c,
			DisplayName:  NormalizeName(e.Name),
			PeriodValues: pv,
			Source:       model.SourceSynthesized,
		})
		diags.Add(diag.KindUnmatchedCatalog, c, "", e.Name)
	}

	sort.SliceStable(out, func(i, j int) bool {
		li, lj := sortsLast(out[i]), sortsLast(out[j])
		if li != lj {
			return lj
		}
		if li {
			return false
		}
		return code.Compare(strings.TrimSpace(out[i].Code), strings.TrimSpace(out[j].Code)) < 0
	})
	return out, diags
}

func sortsLast(it model.LineItem) bool {
	if it.Uncoded() {
		return true
	}
	_, err := code.Parse(strings.TrimSpace(it.Code))
	return err != nil
}
