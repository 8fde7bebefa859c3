// Package models defines the client-side shapes of expenses, recurring rules,
// sessions and view state.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/expenses/internal/common"
	"github.com/shopspring/decimal"
)

// Frequency is the recurrence period of a recurring expense.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Frequencies lists the accepted values in display order.
var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// ParseFrequency accepts a frequency name in any case.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidFrequency, s)
	}
	return f, nil
}

// Expense is a backend-owned expense as cached by the client. ID is unique
// within one fetch; Frequency is set only when IsRecurring is true.
type Expense struct {
	ID                 int64           `json:"id,omitempty"`
	Date               string          `json:"date"`
	Amount             decimal.Decimal `json:"amount"`
	Description        string          `json:"description,omitempty"`
	AttachmentFilename string          `json:"attachment_filename,omitempty"`
	IsRecurring        bool            `json:"is_recurring"`
	Frequency          Frequency       `json:"frequency,omitempty"`
}

// Normalize drops a frequency sent for a non-recurring expense.
func (e *Expense) Normalize() {
	if !e.IsRecurring {
		e.Frequency = ""
	}
}

func (e Expense) HasAttachment() bool {
	return e.AttachmentFilename != ""
}

// Title is the card heading: the description, or a placeholder.
func (e Expense) Title() string {
	if e.Description != "" {
		return e.Description
	}
	return "Untitled expense"
}

// NewExpense is the payload of an expense creation request.
type NewExpense struct {
	Date           string
	Description    string
	Amount         decimal.Decimal
	AttachmentPath string
	IsRecurring    bool
	Frequency      Frequency
}

// ShareLink is the opaque token minted by the backend for one expense.
type ShareLink struct {
	Token string `json:"token"`
}
