package model

import "time"

// BalanceSheet is a stored balance sheet with its period columns.
type BalanceSheet struct {
	ID           string
	Company      string
	ReportedYear int
	PeriodLabel  string // e.g. "12/2024" or "2024/Q3"
	Periods      []string
	Items        []LineItem
	CreatedAt    time.Time
}
