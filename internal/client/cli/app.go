package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/expenses/internal/archive"
	"github.com/dmitrijs2005/expenses/internal/client/analytics"
	"github.com/dmitrijs2005/expenses/internal/client/client"
	"github.com/dmitrijs2005/expenses/internal/client/config"
	"github.com/dmitrijs2005/expenses/internal/client/currency"
	"github.com/dmitrijs2005/expenses/internal/client/forms"
	"github.com/dmitrijs2005/expenses/internal/client/identity"
	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/dmitrijs2005/expenses/internal/client/services"
	"github.com/dmitrijs2005/expenses/internal/client/session"
	"github.com/dmitrijs2005/expenses/internal/logging"
)

// Exporter writes the analytics panel of a view to a PDF and returns where
// it was stored.
type Exporter interface {
	ExportPDF(ctx context.Context, view analytics.View) (string, error)
}

// Services are the collaborators App drives.
type Services struct {
	Auth      services.AuthService
	Expenses  services.ExpenseService
	Recurring services.RecurringService
	Shared    services.SharedService
	Exporter  Exporter
}

// state is everything the pages render. It is guarded by App.mu because the
// expiry watcher changes it from its own goroutine.
type state struct {
	route Route

	expenses  []models.Expense
	recurring []models.RecurringRule
	loading   bool
	recLoad   bool

	view     models.ViewState
	viewMode models.RecurrenceFilter
	summary  string
	status   string

	shared       *models.Expense
	sharedStatus string
}

type App struct {
	config *config.Config
	logger logging.Logger
	svc    Services
	money  currency.Formatter
	now    func() time.Time

	in        *bufio.Scanner
	out       io.Writer
	clipboard func(string) bool
	closers   []func() error

	form          *forms.ExpenseForm
	recurringForm *forms.RecurringForm

	mu sync.Mutex
	st state
}

func newApp(cfg *config.Config, svc Services, in io.Reader, out io.Writer, logger logging.Logger, now func() time.Time) *App {
	return &App{
		config:        cfg,
		logger:        logger,
		svc:           svc,
		money:         currency.New(cfg.Currency),
		now:           now,
		in:            bufio.NewScanner(in),
		out:           out,
		clipboard:     func(string) bool { return false },
		form:          forms.NewExpenseForm(now()),
		recurringForm: forms.NewRecurringForm(now()),
		st: state{
			route:    Route{Page: PageDashboard},
			view:     models.DefaultViewState(now()),
			viewMode: models.RecurrenceAll,
		},
	}
}

// NewApp opens the local database and wires the API client, session store,
// identity adapter and PDF exporter described by c.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.NewStore(db, session.WithTimeout(c.SessionTimeout), session.WithLogger(logger))
	id := identity.New(c.IdentityClientID, c.PublicBaseURL)
	api := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, logger)
	money := currency.New(c.Currency)

	var sink archive.Sink = archive.NewFileSink(c.ExportDir)
	if c.S3.Enabled() {
		sink = archive.NewS3Sink(archive.S3Config{
			Bucket:          c.S3.Bucket,
			Region:          c.S3.Region,
			Endpoint:        c.S3.Endpoint,
			Prefix:          c.S3.Prefix,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
		})
	}
	browser := analytics.NewBrowser(true)

	svc := Services{
		Auth:      services.NewAuthService(store, id),
		Expenses:  services.NewExpenseService(api, store, c.PublicBaseURL),
		Recurring: services.NewRecurringService(api, store),
		Shared:    services.NewSharedService(api, store),
		Exporter:  analytics.NewExporter(browser, sink, money, analytics.WithExportLogger(logger)),
	}

	a := newApp(c, svc, os.Stdin, os.Stdout, logger, time.Now)
	a.clipboard = terminalClipboard(os.Stdout)
	a.closers = append(a.closers, browser.Close, db.Close)
	return a, nil
}

// Run restores the session, loads the dashboard and runs the REPL until the
// user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.start(ctx)
	a.Root(ctx)
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func (a *App) start(ctx context.Context) {
	u, err := a.svc.Auth.Restore(ctx)
	if err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
	}
	if u != nil {
		a.onSignedIn(ctx)
	}
}

// onSignedIn starts the inactivity watcher and loads the user's data.
func (a *App) onSignedIn(ctx context.Context) {
	a.svc.Auth.WatchExpiry(ctx, a.config.ExpiryCheckInterval, a.onExpired)
	a.refreshAll(ctx)
}

func (a *App) onExpired() {
	a.clearUserState("Session expired after inactivity.")
	a.logger.Info(context.Background(), "session expired")
	a.println(a.statusLine())
}

func (a *App) clearUserState(status string) {
	a.update(func(s *state) {
		s.expenses = nil
		s.recurring = nil
		s.summary = ""
		s.status = status
	})
}

func (a *App) isLoggedIn() bool {
	return a.svc.Auth.CurrentUser() != nil
}

// touch records activity. Activity that arrives after the timeout ends the
// session the same way the watcher does.
func (a *App) touch(ctx context.Context) {
	if !a.isLoggedIn() {
		return
	}
	err := a.svc.Auth.Touch(ctx)
	if errors.Is(err, services.ErrSessionExpired) {
		a.onExpired()
		return
	}
	if err != nil {
		a.logger.Warn(ctx, "failed to record activity", "error", err)
	}
}

func (a *App) update(fn func(s *state)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(&a.st)
}

// snapshot copies the state so pages render without holding the lock.
func (a *App) snapshot() state {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.st
	s.expenses = append([]models.Expense(nil), a.st.expenses...)
	s.recurring = append([]models.RecurringRule(nil), a.st.recurring...)
	return s
}

func (a *App) setStatus(s string) {
	a.update(func(st *state) { st.status = s })
}

// SetViewMode selects the recurrence subset shown on the analytics page.
func (a *App) SetViewMode(m models.RecurrenceFilter) {
	a.update(func(s *state) { s.viewMode = m })
}

// Expenses is the cached list of the signed-in user.
func (a *App) Expenses() []models.Expense {
	return a.snapshot().expenses
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// errorStatus is the message shown for a failed action: the server's text,
// or fallback when there is none.
func errorStatus(err error, fallback string) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, services.ErrSignInRequired):
		return "Sign in first."
	case err != nil && err.Error() != "":
		return err.Error()
	}
	return fallback
}
