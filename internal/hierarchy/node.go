// Package hierarchy turns a flat list of balance-sheet line items into a
// forest keyed by account code and rolls child values up into parents.
package hierarchy

import (
	"github.com/shopspring/decimal"

	"github.com/bilanco-dev/bilanco/internal/code"
	"github.com/bilanco-dev/bilanco/internal/model"
)

// Node is one line item placed in the account tree.
type Node struct {
	Item     model.LineItem
	Code     code.Code // zero when Item.Code did not parse
	Children []*Node

	values   map[string]decimal.Decimal
	computed map[string]bool
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Value returns the effective value for period after aggregation. ok is
// false when neither the item nor any descendant reported the period.
func (n *Node) Value(period string) (decimal.Decimal, bool) {
	v, ok := n.values[period]
	return v, ok
}

// IsComputed reports whether the value for period came from summing children.
func (n *Node) IsComputed(period string) bool {
	return n.computed[period]
}

// Walk visits n and its descendants depth-first, parents before children.
func (n *Node) Walk(fn func(n *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// WalkForest walks every root in order.
func WalkForest(roots []*Node, fn func(n *Node, depth int)) {
	for _, r := range roots {
		r.Walk(fn)
	}
}

// Find returns the first node whose raw code equals c.
func Find(roots []*Node, c string) *Node {
	var found *Node
	WalkForest(roots, func(n *Node, _ int) {
		if found == nil && n.Item.Code == c {
			found = n
		}
	})
	return found
}
