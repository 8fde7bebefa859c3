package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/expenses/internal/common"
)

// SummaryMode selects which backend summary the dashboard shows.
type SummaryMode string

const (
	SummaryTotal SummaryMode = "total"
	SummaryMonth SummaryMode = "month"
	SummaryNone  SummaryMode = "none"
)

func ParseSummaryMode(s string) (SummaryMode, error) {
	switch m := SummaryMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SummaryTotal, SummaryMonth, SummaryNone:
		return m, nil
	}
	return "", fmt.Errorf("unknown summary mode %q", s)
}

// RecurrenceFilter restricts expenses by their recurring flag. The analytics
// view mode uses the same values.
type RecurrenceFilter string

const (
	RecurrenceAll       RecurrenceFilter = "all"
	RecurrenceRecurring RecurrenceFilter = "recurring"
	RecurrenceOneTime   RecurrenceFilter = "one-time"
)

func ParseRecurrenceFilter(s string) (RecurrenceFilter, error) {
	switch f := RecurrenceFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case RecurrenceAll, RecurrenceRecurring, RecurrenceOneTime:
		return f, nil
	}
	return "", fmt.Errorf("unknown recurrence filter %q", s)
}

// Matches reports whether an expense with the given flag passes the filter.
func (f RecurrenceFilter) Matches(isRecurring bool) bool {
	switch f {
	case RecurrenceRecurring:
		return isRecurring
	case RecurrenceOneTime:
		return !isRecurring
	default:
		return true
	}
}

// MonthAll disables month filtering.
const MonthAll = "all"

// Months are the selectable two-digit month values.
var Months = []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}

// ParseMonth normalises "3", "03" to "03". "all" is returned unchanged when
// allowAll is set.
func ParseMonth(s string, allowAll bool) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if allowAll && s == MonthAll {
		return MonthAll, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidMonth, s)
	}
	return fmt.Sprintf("%02d", n), nil
}

// CurrentMonth is the two-digit month of t.
func CurrentMonth(t time.Time) string {
	return fmt.Sprintf("%02d", int(t.Month()))
}

// ViewState is the dashboard UI state. It is never persisted.
type ViewState struct {
	SummaryMode     SummaryMode
	SummaryMonth    string
	FilterMonth     string
	FilterRecurring RecurrenceFilter
}

// DefaultViewState is the state after start-up or "reset".
func DefaultViewState(now time.Time) ViewState {
	return ViewState{
		SummaryMode:     SummaryTotal,
		SummaryMonth:    CurrentMonth(now),
		FilterMonth:     MonthAll,
		FilterRecurring: RecurrenceAll,
	}
}
