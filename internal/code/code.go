// Package code parses dot-delimited chart-of-accounts codes such as
// "A.1.3.1" and orders them naturally.
package code

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bilanco-dev/bilanco/internal/model"
)

const sep = "."

// InvalidCodeError describes a code that cannot be placed in the chart.
type InvalidCodeError struct {
	Code   string
	Reason string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid account code %q: %s", e.Code, e.Reason)
}

// Code is a parsed account code.
type Code struct {
	raw      string
	segments []string
}

// Parse splits s on "." and checks the first segment names a side.
func Parse(s string) (Code, error) {
	if s == "" {
		return Code{}, &InvalidCodeError{Code: s, Reason: "empty code"}
	}
	segs := strings.Split(s, sep)
	for i, seg := range segs {
		if seg == "" {
			return Code{}, &InvalidCodeError{Code: s, Reason: fmt.Sprintf("empty segment %d", i+1)}
		}
	}
	if _, ok := sideOf(segs[0]); !ok {
		return Code{}, &InvalidCodeError{Code: s, Reason: fmt.Sprintf("unknown side %q, want A or P", segs[0])}
	}
	return Code{raw: s, segments: segs}, nil
}

// MustParse is Parse that panics on error. For tests and built-in tables.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func sideOf(first string) (model.Side, bool) {
	switch first {
	case "A":
		return model.SideAsset, true
	case "P":
		return model.SideLiabilityEquity, true
	}
	return "", false
}

// IsZero reports whether c is the zero Code (no successful parse).
func (c Code) IsZero() bool { return c.raw == "" }

func (c Code) String() string { return c.raw }

// Segments returns a copy of the path components.
func (c Code) Segments() []string {
	return append([]string(nil), c.segments...)
}

// Depth is the number of segments.
func (c Code) Depth() int { return len(c.segments) }

// Side reports the balance-sheet side named by the first segment.
func (c Code) Side() model.Side {
	if c.IsZero() {
		return ""
	}
	s, _ := sideOf(c.segments[0])
	return s
}

// Parent returns the code with the last segment dropped. ok is false for
// top-level codes.
func (c Code) Parent() (Code, bool) {
	if len(c.segments) <= 1 {
		return Code{}, false
	}
	segs := c.segments[:len(c.segments)-1]
	return Code{raw: strings.Join(segs, sep), segments: segs}, true
}

// ParentCode returns the parent of s as a string.
// "A.1.3.1" -> "A.1.3"; "A" -> "", false.
func ParentCode(s string) (string, bool) {
	c, err := Parse(s)
	if err != nil {
		return "", false
	}
	p, ok := c.Parent()
	if !ok {
		return "", false
	}
	return p.String(), true
}

// Depth returns the segment count of s, or 0 if s is not a valid code.
func Depth(s string) int {
	c, err := Parse(s)
	if err != nil {
		return 0
	}
	return c.Depth()
}

// Classify returns the side of s.
func Classify(s string) (model.Side, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return c.Side(), nil
}

// Compare orders two raw codes naturally: numeric segments compare as
// numbers ("2" < "10"), others lexically, and a code sorts before its
// descendants. Invalid codes are compared segment-wise all the same.
func Compare(a, b string) int {
	as := strings.Split(a, sep)
	bs := strings.Split(b, sep)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func compareSegment(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return strings.Compare(a, b) // "01" vs "1"
	}
	return strings.Compare(a, b)
}
