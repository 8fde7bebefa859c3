package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	pg       Page

	calls   []string
	args    [][]string
	touches int
}

func (f *fakeExec) isLoggedIn() bool       { return f.loggedIn }
func (f *fakeExec) page() Page             { return f.pg }
func (f *fakeExec) touch(_ context.Context) { f.touches++ }

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) Login(_ context.Context, a []string) error {
	f.loggedIn = true
	return f.rec("login", a)
}
func (f *fakeExec) Logout(_ context.Context, a []string) error {
	f.loggedIn = false
	return f.rec("logout", a)
}
func (f *fakeExec) List(_ context.Context, a []string) error       { return f.rec("list", a) }
func (f *fakeExec) Refresh(_ context.Context, a []string) error    { return f.rec("refresh", a) }
func (f *fakeExec) Add(_ context.Context, a []string) error        { return f.rec("add", a) }
func (f *fakeExec) Show(_ context.Context, a []string) error       { return f.rec("show", a) }
func (f *fakeExec) Delete(_ context.Context, a []string) error     { return f.rec("delete", a) }
func (f *fakeExec) Share(_ context.Context, a []string) error      { return f.rec("share", a) }
func (f *fakeExec) Attachment(_ context.Context, a []string) error { return f.rec("attachment", a) }
func (f *fakeExec) Summary(_ context.Context, a []string) error    { return f.rec("summary", a) }
func (f *fakeExec) Filter(_ context.Context, a []string) error     { return f.rec("filter", a) }
func (f *fakeExec) Reset(_ context.Context, a []string) error      { return f.rec("reset", a) }
func (f *fakeExec) Analytics(_ context.Context, a []string) error  { return f.rec("analytics", a) }
func (f *fakeExec) Export(_ context.Context, a []string) error     { return f.rec("export", a) }
func (f *fakeExec) Recurring(_ context.Context, a []string) error  { return f.rec("recurring", a) }
func (f *fakeExec) AddRecurring(_ context.Context, a []string) error {
	return f.rec("addrecurring", a)
}
func (f *fakeExec) DeleteRecurring(_ context.Context, a []string) error {
	return f.rec("delrecurring", a)
}
func (f *fakeExec) Shared(_ context.Context, a []string) error { return f.rec("shared", a) }
func (f *fakeExec) Import(_ context.Context, a []string) error { return f.rec("import", a) }
func (f *fakeExec) Back(_ context.Context, a []string) error   { return f.rec("back", a) }
func (f *fakeExec) Go(_ context.Context, a []string) error     { return f.rec("go", a) }

func silence(t *testing.T) *[]string {
	t.Helper()
	var out []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i], _ = v.(string)
		}
		out = append(out, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &out
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silence(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"l",
		"add",
		"delete 4",
		"share 4",
		"summary month 03",
		"filter recurring one-time",
		"",
		"dashboard",
		"go /analytics",
		"show 9",
		"foobar",
		"exit",
		"list",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"login", "list", "add", "delete", "share", "summary", "filter", "back", "go", "show"}, exec.calls)
	assert.Equal(t, []string{"4"}, exec.args[3])
	assert.Equal(t, []string{"month", "03"}, exec.args[5])
	assert.Equal(t, []string{"/analytics"}, exec.args[8])
	assert.Equal(t, []string{"9"}, exec.args[9])
	assert.Equal(t, 13, exec.touches, "every non-empty line counts as activity")
}

func TestRunREPL_HelpDependsOnPage(t *testing.T) {
	out := silence(t)

	exec := &fakeExec{pg: PageShared}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("help\nquit\n")))

	require.NotEmpty(t, *out)
	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "import, attachment, back")
	assert.Contains(t, joined, "Bye!")
	assert.Empty(t, exec.calls)
}

func TestRunREPL_StopsOnEOFAndCancel(t *testing.T) {
	silence(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("list")))
	assert.Equal(t, []string{"list"}, exec.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("list\n")))
	assert.Empty(t, exec.calls)
}

func TestHelpText(t *testing.T) {
	assert.Contains(t, helpText(PageDashboard, false), "login")
	assert.NotContains(t, helpText(PageDashboard, false), "logout")
	assert.Contains(t, helpText(PageDashboard, true), "logout")
	assert.Contains(t, helpText(PageAnalytics, true), "export")
}
