package forms

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/dmitrijs2005/expenses/internal/common"
)

type RecurringForm struct {
	StartDate   string
	Description string
	Amount      string
	Frequency   models.Frequency
	Disabled    bool
}

func NewRecurringForm(now time.Time) *RecurringForm {
	return &RecurringForm{
		StartDate: now.Format(common.DateLayout),
		Frequency: models.FrequencyMonthly,
	}
}

// Submit mirrors ExpenseForm.Submit: the start date survives, the rest is
// cleared.
func (f *RecurringForm) Submit() (models.NewRecurringRule, bool) {
	if f.Disabled || strings.TrimSpace(f.StartDate) == "" {
		return models.NewRecurringRule{}, false
	}
	amount, err := parseAmount(f.Amount)
	if err != nil {
		return models.NewRecurringRule{}, false
	}

	freq := f.Frequency
	if !freq.Valid() {
		freq = models.FrequencyMonthly
	}

	r := models.NewRecurringRule{
		StartDate:   strings.TrimSpace(f.StartDate),
		Description: f.Description,
		Amount:      amount,
		Frequency:   freq,
	}

	f.Description = ""
	f.Amount = ""
	f.Frequency = models.FrequencyMonthly
	return r, true
}
