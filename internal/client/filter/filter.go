// Package filter selects the expenses shown on the dashboard and in the
// analytics view. Functions here never modify their input.
package filter

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/expenses/internal/client/models"
)

// Criteria is the dashboard filter. Zero values mean "all".
type Criteria struct {
	Month     string
	Recurring models.RecurrenceFilter
}

// FromView extracts the list filter from the dashboard state.
func FromView(v models.ViewState) Criteria {
	return Criteria{Month: v.FilterMonth, Recurring: v.FilterRecurring}
}

// MonthOf returns the number in the middle segment of a date string. ok is
// false when there is no such segment or it is not a number.
func MonthOf(date string) (int, bool) {
	parts := strings.Split(date, "-")
	if len(parts) < 2 {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return m, true
}

func (c Criteria) monthMatches(date string) bool {
	if c.Month == "" || c.Month == models.MonthAll {
		return true
	}
	want, err := strconv.Atoi(c.Month)
	if err != nil {
		return false
	}
	got, ok := MonthOf(date)
	return ok && got == want
}

// Match reports whether e passes both the month and the recurrence filter.
func (c Criteria) Match(e models.Expense) bool {
	return c.monthMatches(e.Date) && c.Recurring.Matches(e.IsRecurring)
}

// Apply returns the expenses matching c, in their original order.
func Apply(expenses []models.Expense, c Criteria) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if c.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// ByViewMode is the analytics pre-filter: only the recurrence flag counts.
func ByViewMode(expenses []models.Expense, mode models.RecurrenceFilter) []models.Expense {
	return Apply(expenses, Criteria{Recurring: mode})
}
