package hierarchy

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bilanco-dev/bilanco/internal/diag"
	"github.com/bilanco-dev/bilanco/internal/model"
	"github.com/bilanco-dev/bilanco/internal/numeric"
)

// ErrMixedSides is returned when a forest holds both asset and
// liability/equity codes. Callers split items by side before building.
var ErrMixedSides = errors.New("forest mixes asset and liability/equity codes")

// Discrepancy is a parent whose reported value disagrees with the sum of
// its children.
type Discrepancy struct {
	Code     string
	Period   string
	Reported decimal.Decimal
	Children decimal.Decimal
	Kept     decimal.Decimal // the value the node ended up with
}

type options struct {
	preferReported bool
	onDiscrepancy  func(Discrepancy)
}

// Option configures Aggregate.
type Option func(*options)

// PreferReported keeps a parent's own non-zero reported value instead of
// replacing it with the children sum. The default replaces it.
func PreferReported() Option {
	return func(o *options) { o.preferReported = true }
}

// OnDiscrepancy registers fn to be called for every parent whose reported
// value differs from its children sum.
func OnDiscrepancy(fn func(Discrepancy)) Option {
	return func(o *options) { o.onDiscrepancy = fn }
}

// Aggregate computes effective per-period values bottom-up. A parent takes
// the sum of every child that has a value for the period and is marked
// computed; a parent with no contributing child keeps its own value. Any
// earlier annotations are discarded, so calling it again is harmless.
func Aggregate(roots []*Node, periods []string, opts ...Option) (diag.List, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	if err := checkSides(roots); err != nil {
		return nil, err
	}

	var diags diag.List
	for _, r := range roots {
		aggregateNode(r, periods, &o, &diags)
	}
	return diags, nil
}

func checkSides(roots []*Node) error {
	var side model.Side
	var err error
	WalkForest(roots, func(n *Node, _ int) {
		if err != nil || n.Code.IsZero() {
			return
		}
		s := n.Code.Side()
		if side == "" {
			side = s
			return
		}
		if s != side {
			err = fmt.Errorf("%w: %s is %s, forest is %s", ErrMixedSides, n.Item.Code, s, side)
		}
	})
	return err
}

func aggregateNode(n *Node, periods []string, o *options, diags *diag.List) {
	for _, c := range n.Children {
		aggregateNode(c, periods, o, diags)
	}

	n.values = make(map[string]decimal.Decimal, len(periods))
	n.computed = make(map[string]bool, len(periods))

	for _, p := range periods {
		own, hasOwn := ownValue(n, p, diags)

		sum := decimal.Zero
		contributed := 0
		for _, c := range n.Children {
			if v, ok := c.values[p]; ok {
				sum = sum.Add(v)
				contributed++
			}
		}

		if contributed == 0 {
			if hasOwn {
				n.values[p] = own
			}
			continue
		}

		reported := hasOwn && !own.IsZero()
		keepOwn := reported && o.preferReported
		if keepOwn {
			n.values[p] = own
		} else {
			n.values[p] = sum
			n.computed[p] = true
		}

		if reported && !own.Equal(sum) {
			d := Discrepancy{Code: n.Item.Code, Period: p, Reported: own, Children: sum, Kept: n.values[p]}
			diags.Add(diag.KindDiscrepancy, d.Code, p, fmt.Sprintf("reported %s, children sum %s, kept %s",
				numeric.Format(own), numeric.Format(sum), numeric.Format(d.Kept)))
			if o.onDiscrepancy != nil {
				o.onDiscrepancy(d)
			}
		}
	}
}

func ownValue(n *Node, period string, diags *diag.List) (decimal.Decimal, bool) {
	raw := n.Item.Raw(period)
	if !numeric.IsPresent(raw) {
		return decimal.Zero, false
	}
	v, err := numeric.Parse(raw)
	if err != nil {
		diags.Add(diag.KindParseWarning, n.Item.Code, period, err.Error())
	}
	return v, true
}
