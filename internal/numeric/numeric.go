// Package numeric converts between Turkish-locale amount strings
// ("1.234.567,89") and decimal values.
package numeric

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	thousandsSep = "."
	decimalSep   = ","
	noData       = "-"
)

// ParseWarning reports a raw value that could not be read as a number.
// The value is treated as zero.
type ParseWarning struct {
	Raw string
	Err error
}

func (w *ParseWarning) Error() string {
	return fmt.Sprintf("unparsable amount %q: %v", w.Raw, w.Err)
}

func (w *ParseWarning) Unwrap() error { return w.Err }

// IsPresent reports whether raw carries a value at all. Empty strings and
// the "-" marker mean no data was reported.
func IsPresent(raw string) bool {
	s := strings.TrimSpace(raw)
	return s != "" && s != noData
}

// Parse reads a localized amount. Missing values parse as zero without
// error; anything else that is not a number returns zero and a *ParseWarning.
func Parse(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if !IsPresent(s) {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, thousandsSep, "")
	s = strings.Replace(s, decimalSep, ".", 1)
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' {
			return -1
		}
		return r
	}, s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ParseWarning{Raw: raw, Err: err}
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// Lenient is Parse with warnings dropped.
func Lenient(raw string) decimal.Decimal {
	d, _ := Parse(raw)
	return d
}

// Format renders v with two fraction digits, "," as decimal separator and
// "." between thousands groups.
func Format(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandsSep)
		}
		b.WriteByte(intPart[i])
	}
	b.WriteString(decimalSep)
	b.WriteString(frac)
	return b.String()
}
