// Package diag collects data-quality findings produced while building and
// reconciling balance sheets. Nothing here aborts processing; callers decide
// what to show.
package diag

import (
	"fmt"
	"strings"
)

// Kind classifies a diagnostic.
type Kind string

const (
	KindInvalidCode      Kind = "invalid-code"
	KindUnmatched        Kind = "unmatched"
	KindMissingParent    Kind = "missing-parent"
	KindDuplicateCode    Kind = "duplicate-code"
	KindParseWarning     Kind = "parse-warning"
	KindDiscrepancy      Kind = "discrepancy"
	KindUnmatchedCatalog Kind = "unmatched-catalog"
	KindNameMatch        Kind = "name-match"
)

// Diagnostic is one finding about one code (and optionally one period).
type Diagnostic struct {
	Kind   Kind
	Code   string
	Period string
	Detail string
}

// IsError reports whether the finding needs the caller's attention.
// Only structurally invalid codes do; everything else was recovered.
func (d Diagnostic) IsError() bool {
	return d.Kind == KindInvalidCode
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(string(d.Kind))
	if d.Code != "" {
		fmt.Fprintf(&b, " [%s]", d.Code)
	}
	if d.Period != "" {
		fmt.Fprintf(&b, " (%s)", d.Period)
	}
	if d.Detail != "" {
		b.WriteString(": ")
		b.WriteString(d.Detail)
	}
	return b.String()
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// Add appends a diagnostic.
func (l *List) Add(kind Kind, code, period, detail string) {
	*l = append(*l, Diagnostic{Kind: kind, Code: code, Period: period, Detail: detail})
}

// Errors returns the entries for which IsError is true.
func (l List) Errors() List {
	var out List
	for _, d := range l {
		if d.IsError() {
			out = append(out, d)
		}
	}
	return out
}

// OfKind returns the entries of the given kind.
func (l List) OfKind(kind Kind) List {
	var out List
	for _, d := range l {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Count tallies entries by kind.
func (l List) Count() map[Kind]int {
	m := make(map[Kind]int)
	for _, d := range l {
		m[d.Kind]++
	}
	return m
}
