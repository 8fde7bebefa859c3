package cli

import (
	"context"

	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/dmitrijs2005/expenses/internal/client/views"
)

// Recurring loads and shows the recurring rules.
func (a *App) Recurring(ctx context.Context, _ []string) error {
	a.println(views.RecurringList(nil, a.money, true))
	a.refreshRecurring(ctx)
	a.renderRecurring()
	return nil
}

// AddRecurring fills the recurring form interactively and submits it.
func (a *App) AddRecurring(ctx context.Context, _ []string) error {
	f := a.recurringForm
	if f.Disabled = !a.isLoggedIn(); f.Disabled {
		a.println("Sign in to enable uploads and save expenses.")
		return nil
	}

	var err error

	if f.StartDate, err = GetWithDefault(a.in, "Start date (YYYY-MM-DD)", f.StartDate, a.out); err != nil {
		return err
	}
	if f.Amount, err = getSimpleText(a.in, "Amount", a.out); err != nil {
		return err
	}
	if f.Description, err = getSimpleText(a.in, "Description (optional)", a.out); err != nil {
		return err
	}
	raw, err := GetWithDefault(a.in, "Frequency (daily, weekly, monthly, yearly)", string(f.Frequency), a.out)
	if err != nil {
		return err
	}
	if fr, err := models.ParseFrequency(raw); err == nil {
		f.Frequency = fr
	}

	f.Disabled = !a.isLoggedIn()
	r, ok := f.Submit()
	if !ok {
		return nil
	}

	a.setStatus("Saving recurring expense...")
	a.println(a.statusLine())

	if _, err := a.svc.Recurring.Add(ctx, r); err != nil {
		a.setStatus(errorStatus(err, "Unable to save recurring expense."))
		a.println(a.statusLine())
		return nil
	}
	a.setStatus("Recurring expense saved.")

	a.refreshRecurring(ctx)
	a.renderRecurring()
	return nil
}

// DeleteRecurring removes a recurring rule and reloads the rules.
func (a *App) DeleteRecurring(ctx context.Context, args []string) error {
	id, err := parseID(args, "delrecurring <id>")
	if err != nil {
		a.println(err.Error())
		return nil
	}

	a.setStatus("Deleting...")
	a.println(a.statusLine())

	if _, err := a.svc.Recurring.Delete(ctx, id); err != nil {
		a.setStatus(errorStatus(err, "Unable to delete."))
		a.println(a.statusLine())
		return nil
	}
	a.setStatus("Deleted.")

	a.refreshRecurring(ctx)
	a.renderRecurring()
	return nil
}
