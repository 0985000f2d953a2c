// Package reconcile checks that assets equal liabilities plus equity.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bilanco-dev/bilanco/internal/hierarchy"
	"github.com/bilanco-dev/bilanco/internal/numeric"
)

// Result is the reconciliation of one period.
type Result struct {
	Period               string
	AssetTotal           decimal.Decimal
	LiabilityEquityTotal decimal.Decimal
	Difference           decimal.Decimal // AssetTotal - LiabilityEquityTotal
	Tolerance            decimal.Decimal
	Balanced             bool
}

func (r Result) String() string {
	status := "BALANCED"
	if !r.Balanced {
		status = "UNBALANCED"
	}
	return fmt.Sprintf("%s %s: assets %s, liabilities+equity %s, difference %s",
		r.Period, status, numeric.Format(r.AssetTotal), numeric.Format(r.LiabilityEquityTotal), numeric.Format(r.Difference))
}

// Reconcile totals the root nodes of each side for period. Roots already
// carry aggregated values, so leaves are not summed again. Balanced holds
// when |difference| < tolerance.
func Reconcile(assetRoots, liabilityRoots []*hierarchy.Node, period string, tolerance decimal.Decimal) Result {
	assets := sumRoots(assetRoots, period)
	liabs := sumRoots(liabilityRoots, period)
	diff := assets.Sub(liabs)
	return Result{
		Period:               period,
		AssetTotal:           assets,
		LiabilityEquityTotal: liabs,
		Difference:           diff,
		Tolerance:            tolerance,
		Balanced:             diff.Abs().LessThan(tolerance),
	}
}

func sumRoots(roots []*hierarchy.Node, period string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range roots {
		if r.Code.IsZero() {
			continue
		}
		if v, ok := r.Value(period); ok {
			total = total.Add(v)
		}
	}
	return total
}

// Report holds one Result per period, in the order requested.
type Report struct {
	Results []Result
}

// ReconcileAll runs Reconcile for each period.
func ReconcileAll(assetRoots, liabilityRoots []*hierarchy.Node, periods []string, tolerance decimal.Decimal) Report {
	rep := Report{Results: make([]Result, 0, len(periods))}
	for _, p := range periods {
		rep.Results = append(rep.Results, Reconcile(assetRoots, liabilityRoots, p, tolerance))
	}
	return rep
}

// Balanced reports whether every period balanced. An empty report is balanced.
func (r Report) Balanced() bool {
	for _, res := range r.Results {
		if !res.Balanced {
			return false
		}
	}
	return true
}

// Period returns the result for one period.
func (r Report) Period(p string) (Result, bool) {
	for _, res := range r.Results {
		if res.Period == p {
			return res, true
		}
	}
	return Result{}, false
}

// Unbalanced returns the periods that failed.
func (r Report) Unbalanced() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Balanced {
			out = append(out, res)
		}
	}
	return out
}
