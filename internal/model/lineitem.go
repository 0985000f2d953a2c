package model

// Side is the balance-sheet side an account belongs to.
type Side string

const (
	SideAsset           Side = "asset"
	SideLiabilityEquity Side = "liability-equity"
)

// SourceKind records where a line item came from.
type SourceKind string

const (
	SourceExtracted   SourceKind = "extracted"
	SourceSynthesized SourceKind = "synthesized-from-catalog"
)

// UnmatchedCode is the code extraction assigns to rows it could not map
// onto the chart of accounts.
const UnmatchedCode = "UNMATCHED"

// NoData is the raw value for a period with nothing reported.
const NoData = "-"

// LineItem is one reported account row of a balance sheet.
type LineItem struct {
	Code         string
	DisplayName  string
	PeriodValues map[string]string // period key -> raw localized value or NoData
	Source       SourceKind
}

// Uncoded reports whether the item carries no usable account code.
func (li LineItem) Uncoded() bool {
	return li.Code == "" || li.Code == UnmatchedCode
}

// Raw returns the raw value for a period, or NoData when the period is missing.
func (li LineItem) Raw(period string) string {
	v, ok := li.PeriodValues[period]
	if !ok {
		return NoData
	}
	return v
}
