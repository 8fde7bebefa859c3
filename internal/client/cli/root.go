package cli

import (
	"context"
	"fmt"
)

func (a *App) page() Page {
	return a.snapshot().route.Page
}

// promptStatus is the route plus the signed-in user's email.
func (a *App) promptStatus() string {
	s := a.snapshot().route.Path()
	if u := a.svc.Auth.CurrentUser(); u != nil {
		s += " " + u.DisplayEmail()
	}
	return fmt.Sprintf("(%s)", s)
}

// Root shows the dashboard and blocks in the REPL.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to the expenses CLI (type 'help' for commands)")
	a.renderDashboard()

	runREPL(ctx, a, a.promptStatus, a.in)
}
