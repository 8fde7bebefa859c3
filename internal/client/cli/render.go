package cli

import (
	"strings"

	"github.com/dmitrijs2005/expenses/internal/client/analytics"
	"github.com/dmitrijs2005/expenses/internal/client/filter"
	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/dmitrijs2005/expenses/internal/client/views"
)

func (a *App) statusLine() string {
	return views.Status(a.snapshot().status)
}

func (a *App) sharedStatusLine() string {
	return views.Status(a.snapshot().sharedStatus)
}

func (a *App) renderDashboard() {
	st := a.snapshot()
	u := a.svc.Auth.CurrentUser()

	parts := []string{
		views.Topbar(string(PageDashboard), u != nil),
		views.UserBar(u),
	}
	if s := views.Status(st.status); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, views.Controls(st.view))
	if s := views.Summary(st.summary); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, views.ExpenseList(
		filter.Apply(st.expenses, filter.FromView(st.view)),
		a.money,
		st.loading,
		a.svc.Expenses.AttachmentURL,
	))

	a.println(strings.Join(parts, "\n\n"))
}

func (a *App) renderExpense(e models.Expense) {
	a.println(views.ExpenseCard(e, a.money, a.svc.Expenses.AttachmentURL(e.ID), true))
}

func (a *App) renderAnalytics() {
	st := a.snapshot()
	report := analytics.Build(st.expenses, st.viewMode)

	a.println(views.Topbar(string(PageAnalytics), a.isLoggedIn()))
	a.println()
	if st.loading {
		a.println("Refreshing...")
	}
	a.println("View: " + analytics.ModeLabel(st.viewMode))
	a.println(analytics.RenderTerminal(report, a.money, terminalWidth()))
}

func (a *App) renderShared() {
	st := a.snapshot()

	a.println(views.Topbar("", a.isLoggedIn()))
	a.println()
	a.println("Shared expense")
	if st.shared != nil {
		a.println(views.SharedCard(*st.shared, a.money, a.svc.Shared.AttachmentURL(st.route.Token)))
	}
	if s := views.Status(st.sharedStatus); s != "" {
		a.println(s)
	}
	if !a.isLoggedIn() {
		a.println(views.UserBar(nil))
	}
}

func (a *App) renderRecurring() {
	st := a.snapshot()
	if s := views.Status(st.status); s != "" {
		a.println(s)
	}
	a.println(views.RecurringList(st.recurring, a.money, st.recLoad))
}
