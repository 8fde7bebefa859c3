package cli

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// refreshExpenses reloads the expense list. A failure becomes the status;
// the previous list is kept. A successful load counts as activity.
func (a *App) refreshExpenses(ctx context.Context) {
	a.update(func(s *state) { s.loading = true })

	items, err := a.svc.Expenses.List(ctx)

	a.update(func(s *state) {
		s.loading = false
		if err != nil {
			s.status = errorStatus(err, "Unable to load expenses.")
			return
		}
		s.expenses = items
	})
	if err != nil {
		a.logger.Warn(ctx, "list expenses failed", "error", err)
		return
	}
	a.touch(ctx)
}

// refreshSummary reloads the summary selected by the view state. Any
// failure blanks it.
func (a *App) refreshSummary(ctx context.Context) {
	v := a.snapshot().view

	text, err := a.svc.Expenses.Summary(ctx, v)
	if err != nil {
		a.logger.Debug(ctx, "summary failed", "mode", v.SummaryMode, "error", err)
		text = ""
	}
	a.update(func(s *state) { s.summary = text })
	if err == nil {
		a.touch(ctx)
	}
}

// refreshAll loads the list and the summary concurrently. Each handles its
// own failure, so neither cancels the other.
func (a *App) refreshAll(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		a.refreshExpenses(ctx)
		return nil
	})
	g.Go(func() error {
		a.refreshSummary(ctx)
		return nil
	})
	_ = g.Wait()
}

func (a *App) refreshRecurring(ctx context.Context) {
	a.update(func(s *state) { s.recLoad = true })

	rules, err := a.svc.Recurring.List(ctx)

	a.update(func(s *state) {
		s.recLoad = false
		if err != nil {
			s.status = errorStatus(err, "Unable to load recurring expenses.")
			return
		}
		s.recurring = rules
	})
	if err == nil {
		a.touch(ctx)
	}
}
