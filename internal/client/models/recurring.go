package models

import "github.com/shopspring/decimal"

// RecurringRule is a template the backend expands into periodic expenses.
// The client never computes occurrences.
type RecurringRule struct {
	ID          int64           `json:"id,omitempty"`
	StartDate   string          `json:"start_date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Frequency   Frequency       `json:"frequency"`
}

func (r RecurringRule) Title() string {
	if r.Description != "" {
		return r.Description
	}
	return "Recurring expense"
}

// NewRecurringRule is the payload of a recurring rule creation request.
type NewRecurringRule struct {
	StartDate   string
	Description string
	Amount      decimal.Decimal
	Frequency   Frequency
}
