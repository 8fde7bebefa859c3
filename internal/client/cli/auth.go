package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/expenses/internal/client/views"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Login signs in with an identity token. The token is taken from args or
// read without echo after printing the sign-in URL. On a non-terminal stdin
// it falls back to a plain line.
func (a *App) Login(ctx context.Context, args []string) error {
	if u := a.svc.Auth.CurrentUser(); u != nil {
		a.println("Already signed in as " + u.DisplayEmail() + ".")
		return nil
	}

	credential := strings.Join(args, "")
	if credential == "" {
		target, err := a.svc.Auth.SignInTarget()
		if err != nil {
			a.setStatus(errorStatus(err, "Sign-in unavailable."))
			a.println(a.statusLine())
			return nil
		}
		a.println("Open this URL, sign in and paste the id_token from the redirect address:")
		a.println(target)

		credential, err = getSecret("ID token", a.out)
		if err != nil {
			credential, err = getSimpleText(a.in, "ID token", a.out)
			if err != nil {
				return err
			}
		}
	}

	u, err := a.svc.Auth.SignIn(ctx, credential)
	if err != nil {
		a.setStatus(errorStatus(err, "Sign-in failed."))
		a.println(a.statusLine())
		return nil
	}

	a.setStatus("")
	a.logger.Info(ctx, "signed in", "email", u.Email)
	a.println(views.UserBar(&u))

	a.onSignedIn(ctx)
	a.renderDashboard()
	return nil
}

// Logout forgets the user and clears everything loaded for them.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.svc.Auth.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	a.clearUserState("")
	a.println("Signed out.")
	return nil
}
