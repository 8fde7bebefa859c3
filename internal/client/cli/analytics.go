package cli

import (
	"context"

	"github.com/dmitrijs2005/expenses/internal/client/models"
)

// Analytics opens the analytics page, optionally switching the view mode.
func (a *App) Analytics(_ context.Context, args []string) error {
	if len(args) > 0 {
		m, err := models.ParseRecurrenceFilter(args[0])
		if err != nil {
			a.println(err.Error())
			return nil
		}
		a.SetViewMode(m)
	}
	a.update(func(s *state) { s.route = Route{Page: PageAnalytics} })
	a.renderAnalytics()
	return nil
}

// Export saves the analytics panel of all expenses as a PDF.
func (a *App) Export(ctx context.Context, _ []string) error {
	if a.snapshot().loading {
		a.println("Refreshing...")
		return nil
	}

	a.println("Exporting PDF...")
	loc, err := a.svc.Exporter.ExportPDF(ctx, a)
	if err != nil {
		a.logger.Error(ctx, "pdf export failed", "error", err)
		a.setStatus(errorStatus(err, "Unable to export PDF."))
		a.println(a.statusLine())
		return nil
	}

	a.setStatus("PDF saved: " + loc)
	a.println(a.statusLine())
	return nil
}
