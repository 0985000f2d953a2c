// Package analysis runs the single-sheet pipeline: optional densify from
// the catalog, hierarchy build and aggregation per side, and
// reconciliation.
package analysis

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bilanco-dev/bilanco/internal/accounts"
	"github.com/bilanco-dev/bilanco/internal/code"
	"github.com/bilanco-dev/bilanco/internal/diag"
	"github.com/bilanco-dev/bilanco/internal/hierarchy"
	"github.com/bilanco-dev/bilanco/internal/model"
	"github.com/bilanco-dev/bilanco/internal/reconcile"
)

// Options controls Analyze.
type Options struct {
	// Catalog is used only when ShowEmptyRows is set.
	Catalog        []model.ChartCatalogEntry
	ShowEmptyRows  bool
	PreferReported bool
	Tolerance      decimal.Decimal
}

// Result is everything derived from one sheet. Each call builds a fresh
// Result; nothing is shared between calls.
type Result struct {
	Periods        []string
	Assets         []*hierarchy.Node
	Liabilities    []*hierarchy.Node
	Unplaced       []model.LineItem // uncoded or invalid items, in input order
	Reconciliation reconcile.Report
	Discrepancies  []hierarchy.Discrepancy
	Diagnostics    diag.List
}

// Analyze builds both sides of sheet and reconciles every period.
func Analyze(sheet model.BalanceSheet, opts Options) (*Result, error) {
	res := &Result{Periods: sheet.Periods}
	if len(res.Periods) == 0 {
		res.Periods = model.CollectPeriods(sheet.Items)
	}

	var assets, liabs []model.LineItem
	for _, it := range sheet.Items {
		if it.Uncoded() {
			res.Unplaced = append(res.Unplaced, it)
			res.Diagnostics.Add(diag.KindUnmatched, it.Code, "", it.DisplayName)
			continue
		}
		side, err := code.Classify(it.Code)
		if err != nil {
			res.Unplaced = append(res.Unplaced, it)
			res.Diagnostics.Add(diag.KindInvalidCode, it.Code, "", err.Error())
			continue
		}
		if side == model.SideAsset {
			assets = append(assets, it)
		} else {
			liabs = append(liabs, it)
		}
	}

	aggOpts := []hierarchy.Option{
		hierarchy.OnDiscrepancy(func(d hierarchy.Discrepancy) {
			res.Discrepancies = append(res.Discrepancies, d)
		}),
	}
	if opts.PreferReported {
		aggOpts = append(aggOpts, hierarchy.PreferReported())
	}

	var err error
	if res.Assets, err = res.side(assets, model.SideAsset, opts, aggOpts); err != nil {
		return nil, err
	}
	if res.Liabilities, err = res.side(liabs, model.SideLiabilityEquity, opts, aggOpts); err != nil {
		return nil, err
	}

	res.Reconciliation = reconcile.ReconcileAll(res.Assets, res.Liabilities, res.Periods, opts.Tolerance)
	return res, nil
}

func (res *Result) side(items []model.LineItem, side model.Side, opts Options, aggOpts []hierarchy.Option) ([]*hierarchy.Node, error) {
	if opts.ShowEmptyRows {
		var found diag.List
		items, found = accounts.DensifyReport(items, opts.Catalog, side)
		res.Diagnostics = append(res.Diagnostics, found...)
	}

	roots, found := hierarchy.Build(items)
	res.Diagnostics = append(res.Diagnostics, found...)

	found, err := hierarchy.Aggregate(roots, res.Periods, aggOpts...)
	if err != nil {
		return nil, fmt.Errorf("aggregating %s side: %w", side, err)
	}
	res.Diagnostics = append(res.Diagnostics, found...)
	return roots, nil
}
