package hierarchy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bilanco-dev/bilanco/internal/code"
	"github.com/bilanco-dev/bilanco/internal/diag"
	"github.com/bilanco-dev/bilanco/internal/model"
)

// Build places items into a forest using only their codes: an item whose
// parent code is present hangs under it, anything else becomes a root. Items
// are never dropped. Children and roots are in natural code order.
func Build(items []model.LineItem) ([]*Node, diag.List) {
	var diags diag.List

	nodes := make([]*Node, len(items))
	byCode := make(map[string]*Node, len(items))
	for i, it := range items {
		n := &Node{Item: it}
		c, err := code.Parse(it.Code)
		switch {
		case err == nil:
			n.Code = c
		case it.Uncoded():
			diags.Add(diag.KindUnmatched, it.Code, "", fmt.Sprintf("%q has no account code", it.DisplayName))
		default:
			var ice *code.InvalidCodeError
			if errors.As(err, &ice) {
				diags.Add(diag.KindInvalidCode, it.Code, "", ice.Reason)
			} else {
				diags.Add(diag.KindInvalidCode, it.Code, "", err.Error())
			}
		}
		nodes[i] = n

		if n.Code.IsZero() {
			continue
		}
		if _, dup := byCode[it.Code]; dup {
			diags.Add(diag.KindDuplicateCode, it.Code, "", "children attach to the first occurrence")
			continue
		}
		byCode[it.Code] = n
	}

	var roots []*Node
	for _, n := range nodes {
		parent, ok := n.Code.Parent()
		if !ok {
			roots = append(roots, n)
			continue
		}
		p, found := byCode[parent.String()]
		if !found {
			// Side roots ("A", "P") are rarely listed; only deeper gaps are reported.
			if parent.Depth() > 1 {
				diags.Add(diag.KindMissingParent, n.Item.Code, "", fmt.Sprintf("parent %s not in sheet", parent))
			}
			roots = append(roots, n)
			continue
		}
		p.Children = append(p.Children, n)
	}

	sortNodes(roots)
	for _, n := range nodes {
		sortNodes(n.Children)
	}
	return roots, diags
}

// sortNodes orders by natural code order, unparsable codes last. Ties keep
// input order.
func sortNodes(ns []*Node) {
	sort.SliceStable(ns, func(i, j int) bool {
		zi, zj := ns[i].Code.IsZero(), ns[j].Code.IsZero()
		if zi != zj {
			return zj
		}
		if zi {
			return false
		}
		return code.Compare(ns[i].Item.Code, ns[j].Item.Code) < 0
	})
}
