// Package forms holds the editable state behind the add-expense and
// add-recurring prompts and turns it into request payloads.
//
// Validation stays deliberately thin: a submit with a non-numeric amount or
// a missing date is silently rejected, and the backend decides the rest.
package forms

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/dmitrijs2005/expenses/internal/common"
	"github.com/shopspring/decimal"
)

var ErrUnsupportedAttachment = errors.New("attachment must be an image or a PDF")

// attachmentExts are the file types offered by the attachment picker.
var attachmentExts = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {}, ".bmp": {},
	".svg": {}, ".heic": {}, ".heif": {}, ".avif": {}, ".tif": {}, ".tiff": {},
	".pdf": {},
}

// AcceptsAttachment reports whether path looks like an image or a PDF. Only
// the extension is checked.
func AcceptsAttachment(path string) bool {
	_, ok := attachmentExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// parseAmount accepts any decimal number. Empty input is not a number.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}
	return d, nil
}

type ExpenseForm struct {
	Date           string
	Description    string
	Amount         string
	AttachmentPath string
	IsRecurring    bool
	Frequency      models.Frequency
	Disabled       bool
}

// NewExpenseForm returns an empty form dated today.
func NewExpenseForm(now time.Time) *ExpenseForm {
	return &ExpenseForm{
		Date:      now.Format(common.DateLayout),
		Frequency: models.FrequencyMonthly,
	}
}

// SetAttachment selects a file, or clears the selection when path is empty.
func (f *ExpenseForm) SetAttachment(path string) error {
	path = strings.TrimSpace(path)
	if path != "" && !AcceptsAttachment(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedAttachment, filepath.Base(path))
	}
	f.AttachmentPath = path
	return nil
}

// Submit returns the payload and clears every field but the date. It returns
// false, leaving the form untouched, when the form is disabled, the date is
// empty or the amount is not a number.
func (f *ExpenseForm) Submit() (models.NewExpense, bool) {
	if f.Disabled || strings.TrimSpace(f.Date) == "" {
		return models.NewExpense{}, false
	}
	amount, err := parseAmount(f.Amount)
	if err != nil {
		return models.NewExpense{}, false
	}

	e := models.NewExpense{
		Date:           strings.TrimSpace(f.Date),
		Description:    f.Description,
		Amount:         amount,
		AttachmentPath: f.AttachmentPath,
		IsRecurring:    f.IsRecurring,
	}
	if f.IsRecurring {
		e.Frequency = f.Frequency
	}

	f.reset()
	return e, true
}

func (f *ExpenseForm) reset() {
	f.Description = ""
	f.Amount = ""
	f.AttachmentPath = ""
	f.IsRecurring = false
	f.Frequency = models.FrequencyMonthly
}
