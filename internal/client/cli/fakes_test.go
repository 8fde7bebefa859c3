package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/expenses/internal/client/analytics"
	"github.com/dmitrijs2005/expenses/internal/client/config"
	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/dmitrijs2005/expenses/internal/logging"
)

type calls struct {
	mu  sync.Mutex
	log []string
}

func (c *calls) add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = append(c.log, name)
}

func (c *calls) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.log {
		if l == name {
			n++
		}
	}
	return n
}

func (c *calls) get() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.log...)
}

type fakeAuth struct {
	calls
	user      *models.User
	restored  *models.User
	signInErr error
	touchErr  error
	watching  bool
	onExpire  func()
}

func (f *fakeAuth) Restore(context.Context) (*models.User, error) {
	f.add("restore")
	f.user = f.restored
	return f.restored, nil
}
func (f *fakeAuth) CurrentUser() *models.User { return f.user }
func (f *fakeAuth) SignInTarget() (string, error) {
	return "https://accounts.example/auth", nil
}
func (f *fakeAuth) SignIn(_ context.Context, credential string) (models.User, error) {
	f.add("signin")
	if f.signInErr != nil {
		return models.User{}, f.signInErr
	}
	u := models.User{Name: "Alice", Email: "alice@example.com", Token: credential}
	f.user = &u
	return u, nil
}
func (f *fakeAuth) SignOut(context.Context) error {
	f.add("signout")
	f.user = nil
	return nil
}
func (f *fakeAuth) Touch(context.Context) error {
	f.add("touch")
	if f.touchErr != nil {
		f.user = nil
	}
	return f.touchErr
}
func (f *fakeAuth) WatchExpiry(_ context.Context, _ time.Duration, onExpire func()) {
	f.watching = true
	f.onExpire = onExpire
}

type fakeExpenses struct {
	calls
	items      []models.Expense
	added      []models.NewExpense
	lastView   models.ViewState
	summary    string
	link       string
	addErr     error
	listErr    error
	summaryErr error
	getErr     error
}

func (f *fakeExpenses) List(context.Context) ([]models.Expense, error) {
	f.add("list")
	return f.items, f.listErr
}
func (f *fakeExpenses) Add(_ context.Context, e models.NewExpense) (string, error) {
	f.add("add")
	f.added = append(f.added, e)
	return "ok", f.addErr
}
func (f *fakeExpenses) Get(_ context.Context, id int64) (models.Expense, error) {
	f.add("get")
	if f.getErr != nil {
		return models.Expense{}, f.getErr
	}
	for _, e := range f.items {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Expense{ID: id}, nil
}
func (f *fakeExpenses) Delete(context.Context, int64) (string, error) {
	f.add("delete")
	return "ok", nil
}
func (f *fakeExpenses) Summary(_ context.Context, v models.ViewState) (string, error) {
	f.add("summary")
	f.lastView = v
	return f.summary, f.summaryErr
}
func (f *fakeExpenses) Share(context.Context, int64) (string, error) {
	f.add("share")
	return f.link, nil
}
func (f *fakeExpenses) DownloadAttachment(_ context.Context, e models.Expense, dir string) (string, error) {
	f.add("attachment")
	return dir + "/" + e.AttachmentFilename, nil
}
func (f *fakeExpenses) AttachmentURL(int64) string { return "http://api/attachment" }

type fakeRecurring struct {
	calls
	rules []models.RecurringRule
}

func (f *fakeRecurring) List(context.Context) ([]models.RecurringRule, error) {
	f.add("list")
	return f.rules, nil
}
func (f *fakeRecurring) Add(context.Context, models.NewRecurringRule) (string, error) {
	f.add("add")
	return "ok", nil
}
func (f *fakeRecurring) Delete(context.Context, int64) (string, error) {
	f.add("delete")
	return "ok", nil
}

type fakeShared struct {
	calls
	expense *models.Expense
	err     error
}

func (f *fakeShared) Get(context.Context, string) (*models.Expense, error) {
	f.add("get")
	return f.expense, f.err
}
func (f *fakeShared) Import(context.Context, string) (string, error) {
	f.add("import")
	return "ok", nil
}
func (f *fakeShared) DownloadAttachment(_ context.Context, _ string, e models.Expense, dir string) (string, error) {
	f.add("attachment")
	return dir + "/" + e.AttachmentFilename, nil
}
func (f *fakeShared) AttachmentURL(token string) string { return "http://api/shared/" + token + "/attachment" }

type fakeExporter struct {
	seen []models.Expense
	loc  string
	err  error
}

func (f *fakeExporter) ExportPDF(_ context.Context, view analytics.View) (string, error) {
	view.SetViewMode(models.RecurrenceAll)
	f.seen = view.Expenses()
	return f.loc, f.err
}

type harness struct {
	app       *App
	out       *bytes.Buffer
	auth      *fakeAuth
	expenses  *fakeExpenses
	recurring *fakeRecurring
	shared    *fakeShared
	exporter  *fakeExporter
}

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newHarness(t *testing.T, input ...string) *harness {
	t.Helper()
	h := &harness{
		out:       &bytes.Buffer{},
		auth:      &fakeAuth{},
		expenses:  &fakeExpenses{},
		recurring: &fakeRecurring{},
		shared:    &fakeShared{},
		exporter:  &fakeExporter{},
	}
	cfg := &config.Config{Currency: "USD", ExportDir: t.TempDir(), ExpiryCheckInterval: time.Second}
	svc := Services{
		Auth:      h.auth,
		Expenses:  h.expenses,
		Recurring: h.recurring,
		Shared:    h.shared,
		Exporter:  h.exporter,
	}
	in := strings.NewReader(strings.Join(input, "\n") + "\n")
	h.app = newApp(cfg, svc, in, h.out, logging.Discard(), func() time.Time { return testNow })
	return h
}

func (h *harness) signIn() {
	h.auth.user = &models.User{Name: "Alice", Email: "alice@example.com", Token: "tok"}
}
