package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/expenses/internal/client/services"
)

// Shared opens the shared-expense page for a token or a full share link and
// loads the expense. No sign-in is needed.
func (a *App) Shared(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: shared <token|link>")
		return nil
	}

	token := args[0]
	if r, ok := ParseRoute(args[0]); ok && r.Page == PageShared {
		token = r.Token
	}

	a.update(func(s *state) {
		s.route = Route{Page: PageShared, Token: token}
		s.shared = nil
		s.sharedStatus = "Loading shared expense..."
	})
	a.println(a.sharedStatusLine())

	e, err := a.svc.Shared.Get(ctx, token)
	a.update(func(s *state) {
		if err != nil {
			s.sharedStatus = errorStatus(err, "Unable to load shared expense.")
			return
		}
		s.shared = e
		s.sharedStatus = ""
	})

	a.renderShared()
	return nil
}

// Import copies the shared expense into the signed-in user's list. Signed
// out, it only asks the user to sign in.
func (a *App) Import(ctx context.Context, _ []string) error {
	st := a.snapshot()
	if st.route.Page != PageShared {
		a.println("Open a shared link first.")
		return nil
	}

	if !a.isLoggedIn() {
		a.update(func(s *state) { s.sharedStatus = "Sign in to import this expense." })
		a.println(a.sharedStatusLine())
		return nil
	}
	if st.shared == nil {
		a.println("Nothing to import.")
		return nil
	}

	a.update(func(s *state) { s.sharedStatus = "Importing..." })
	a.println(a.sharedStatusLine())

	if _, err := a.svc.Shared.Import(ctx, st.route.Token); err != nil {
		msg := errorStatus(err, "Unable to import expense.")
		if errors.Is(err, services.ErrSignInRequired) {
			msg = "Sign in to import this expense."
		}
		a.update(func(s *state) { s.sharedStatus = msg })
		a.println(a.sharedStatusLine())
		return nil
	}

	a.update(func(s *state) { s.sharedStatus = "Imported to your expenses." })
	a.println(a.sharedStatusLine())

	a.refreshExpenses(ctx)
	return nil
}

// Back returns to the dashboard.
func (a *App) Back(ctx context.Context, _ []string) error {
	return a.Go(ctx, []string{"/"})
}

// Go navigates to a path.
func (a *App) Go(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: go </|/analytics|/shared/<token>>")
		return nil
	}

	r, ok := ParseRoute(args[0])
	if !ok {
		a.println("Unknown page: " + args[0])
		return nil
	}

	switch r.Page {
	case PageAnalytics:
		return a.Analytics(ctx, nil)
	case PageShared:
		return a.Shared(ctx, []string{r.Token})
	}

	a.update(func(s *state) { s.route = r })
	a.renderDashboard()
	return nil
}
