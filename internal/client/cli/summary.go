package cli

import (
	"context"

	"github.com/dmitrijs2005/expenses/internal/client/models"
)

// Summary optionally switches the summary mode ("total", "none" or
// "month [MM]") and reloads the summary.
func (a *App) Summary(ctx context.Context, args []string) error {
	if len(args) > 0 {
		mode, err := models.ParseSummaryMode(args[0])
		if err != nil {
			a.println(err.Error())
			return nil
		}
		month := ""
		if mode == models.SummaryMonth && len(args) > 1 {
			if month, err = models.ParseMonth(args[1], false); err != nil {
				a.println(err.Error())
				return nil
			}
		}
		a.update(func(s *state) {
			s.view.SummaryMode = mode
			if month != "" {
				s.view.SummaryMonth = month
			}
		})
	}

	a.refreshSummary(ctx)
	a.renderDashboard()
	return nil
}

// Filter sets the client-side list filters: "month <all|MM>" or
// "recurring <all|recurring|one-time>".
func (a *App) Filter(_ context.Context, args []string) error {
	if len(args) < 2 {
		a.println("Usage: filter month <all|01..12> | filter recurring <all|recurring|one-time>")
		return nil
	}

	switch args[0] {
	case "month":
		m, err := models.ParseMonth(args[1], true)
		if err != nil {
			a.println(err.Error())
			return nil
		}
		a.update(func(s *state) { s.view.FilterMonth = m })
	case "recurring", "recurrence":
		f, err := models.ParseRecurrenceFilter(args[1])
		if err != nil {
			a.println(err.Error())
			return nil
		}
		a.update(func(s *state) { s.view.FilterRecurring = f })
	default:
		a.println("Unknown filter: " + args[0])
		return nil
	}

	a.renderDashboard()
	return nil
}

// Reset restores the default view state, reloads the total and then the
// list. A summary failure blanks it and skips the list reload.
func (a *App) Reset(ctx context.Context, _ []string) error {
	v := models.DefaultViewState(a.now())
	a.update(func(s *state) {
		s.view = v
		s.status = ""
	})

	total, err := a.svc.Expenses.Summary(ctx, v)
	if err != nil {
		a.update(func(s *state) { s.summary = "" })
		a.renderDashboard()
		return nil
	}
	a.update(func(s *state) { s.summary = total })

	a.refreshExpenses(ctx)
	a.renderDashboard()
	return nil
}
