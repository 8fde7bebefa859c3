package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/expenses/internal/client/models"
)

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

// List shows the dashboard.
func (a *App) List(_ context.Context, _ []string) error {
	a.renderDashboard()
	return nil
}

// Refresh reloads the expense list.
func (a *App) Refresh(ctx context.Context, _ []string) error {
	a.println("Refreshing...")
	a.refreshExpenses(ctx)
	if a.snapshot().route.Page == PageAnalytics {
		a.renderAnalytics()
		return nil
	}
	a.renderDashboard()
	return nil
}

// Add fills the expense form interactively and submits it. A form that
// fails validation, or whose session ended while it was being filled, is
// dropped without a request.
func (a *App) Add(ctx context.Context, _ []string) error {
	f := a.form
	if f.Disabled = !a.isLoggedIn(); f.Disabled {
		a.println("Sign in to enable uploads and save expenses.")
		return nil
	}

	var err error

	if f.Date, err = GetWithDefault(a.in, "Date (YYYY-MM-DD)", f.Date, a.out); err != nil {
		return err
	}
	if f.Amount, err = getSimpleText(a.in, "Amount", a.out); err != nil {
		return err
	}
	if f.Description, err = getSimpleText(a.in, "Description (optional)", a.out); err != nil {
		return err
	}
	path, err := getSimpleText(a.in, "Attachment: image or PDF path (optional)", a.out)
	if err != nil {
		return err
	}
	if err := f.SetAttachment(path); err != nil {
		a.println(err.Error())
	}
	if f.IsRecurring, err = GetYesNo(a.in, "Recurring?", false, a.out); err != nil {
		return err
	}
	if f.IsRecurring {
		raw, err := GetWithDefault(a.in, "Frequency (daily, weekly, monthly, yearly)", string(f.Frequency), a.out)
		if err != nil {
			return err
		}
		if fr, err := models.ParseFrequency(raw); err == nil {
			f.Frequency = fr
		}
	}

	f.Disabled = !a.isLoggedIn()
	e, ok := f.Submit()
	if !ok {
		return nil
	}
	a.create(ctx, e)
	return nil
}

// create sends one add request, then reloads the list and the summary.
// Each step reports its own failure.
func (a *App) create(ctx context.Context, e models.NewExpense) {
	a.setStatus("Saving expense...")
	a.println(a.statusLine())

	if _, err := a.svc.Expenses.Add(ctx, e); err != nil {
		a.setStatus(errorStatus(err, "Unable to save expense."))
		a.println(a.statusLine())
		return
	}
	a.setStatus("Expense saved.")

	a.refreshExpenses(ctx)
	a.refreshSummary(ctx)
	a.renderDashboard()
}

// Show fetches one expense from the backend and prints its card.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "show <id>")
	if err != nil {
		a.println(err.Error())
		return nil
	}

	e, err := a.svc.Expenses.Get(ctx, id)
	if err != nil {
		a.setStatus(errorStatus(err, "Unable to load expense."))
		a.println(a.statusLine())
		return nil
	}
	a.renderExpense(e)
	return nil
}

// Delete removes an expense, then reloads the list and the summary.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete <id>")
	if err != nil {
		a.println(err.Error())
		return nil
	}

	a.setStatus("Deleting...")
	a.println(a.statusLine())

	if _, err := a.svc.Expenses.Delete(ctx, id); err != nil {
		a.setStatus(errorStatus(err, "Unable to delete."))
		a.println(a.statusLine())
		return nil
	}
	a.setStatus("Deleted.")

	a.refreshExpenses(ctx)
	a.refreshSummary(ctx)
	a.renderDashboard()
	return nil
}

// Share mints a public link for an expense and copies it to the clipboard
// when the terminal supports it.
func (a *App) Share(ctx context.Context, args []string) error {
	id, err := parseID(args, "share <id>")
	if err != nil {
		a.println(err.Error())
		return nil
	}

	a.setStatus("Creating share link...")
	a.println(a.statusLine())

	link, err := a.svc.Expenses.Share(ctx, id)
	if err != nil {
		a.setStatus(errorStatus(err, "Unable to create share link."))
		a.println(a.statusLine())
		return nil
	}

	a.setStatus("Share link ready: " + link)
	if a.clipboard(link) {
		a.setStatus("Share link copied to clipboard: " + link)
	}
	a.println(a.statusLine())
	return nil
}

// Attachment downloads the receipt of an expense, or of the shared expense
// on the shared page, into the export directory.
func (a *App) Attachment(ctx context.Context, args []string) error {
	st := a.snapshot()
	dir := a.config.ExportDir

	if st.route.Page == PageShared {
		if st.shared == nil || !st.shared.HasAttachment() {
			a.println("No attachment")
			return nil
		}
		path, err := a.svc.Shared.DownloadAttachment(ctx, st.route.Token, *st.shared, dir)
		if err != nil {
			a.update(func(s *state) { s.sharedStatus = errorStatus(err, "Failed to download shared attachment") })
			a.println(a.sharedStatusLine())
			return nil
		}
		a.println("Saved " + path)
		return nil
	}

	id, err := parseID(args, "attachment <id>")
	if err != nil {
		a.println(err.Error())
		return nil
	}

	var found *models.Expense
	for i := range st.expenses {
		if st.expenses[i].ID == id {
			found = &st.expenses[i]
			break
		}
	}
	if found == nil || !found.HasAttachment() {
		a.println("No attachment")
		return nil
	}

	path, err := a.svc.Expenses.DownloadAttachment(ctx, *found, dir)
	if err != nil {
		a.setStatus(errorStatus(err, "Failed to download attachment"))
		a.println(a.statusLine())
		return nil
	}
	a.println("Saved " + path)
	return nil
}
