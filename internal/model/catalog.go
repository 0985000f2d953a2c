package model

// ChartCatalogEntry is one row of the canonical chart of accounts.
type ChartCatalogEntry struct {
	Code        string // hierarchical code, e.g. "A.1.1.1"
	Name        string
	Side        Side
	LedgerCode  string // three-digit TDHP ledger number, empty for group rows
	Description string
}
