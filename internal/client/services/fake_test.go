package services

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/expenses/internal/client/models"
)

// fakeClient records calls and the tokens they carried.
type fakeClient struct {
	mu     sync.Mutex
	calls  []string
	tokens []string

	expenses  []models.Expense
	recurring []models.RecurringRule
	shared    *models.Expense
	summary   string
	shareTok  string
	body      string
	err       error
}

func (f *fakeClient) record(name, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	f.tokens = append(f.tokens, token)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) ListExpenses(_ context.Context, token string) ([]models.Expense, error) {
	f.record("list", token)
	return f.expenses, f.err
}

func (f *fakeClient) AddExpense(_ context.Context, _ models.NewExpense, token string) (string, error) {
	f.record("add", token)
	return "Expense added", f.err
}

func (f *fakeClient) GetExpense(_ context.Context, id int64, token string) (*models.Expense, error) {
	f.record("get", token)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Expense{ID: id, Description: "one"}, nil
}

func (f *fakeClient) DeleteExpense(_ context.Context, _ int64, token string) (string, error) {
	f.record("delete", token)
	return "Deleted", f.err
}

func (f *fakeClient) DownloadAttachment(_ context.Context, _ int64, token string, w io.Writer) (int64, error) {
	f.record("attachment", token)
	if f.err != nil {
		return 0, f.err
	}
	return io.Copy(w, strings.NewReader(f.body))
}

func (f *fakeClient) AttachmentURL(id int64) string { return "http://api/attachment/" + itoa(id) }

func (f *fakeClient) SummaryTotal(_ context.Context, token string) (string, error) {
	f.record("summary", token)
	return f.summary, f.err
}

func (f *fakeClient) SummaryByMonth(_ context.Context, month int, token string) (string, error) {
	f.record("summary/"+itoa(int64(month)), token)
	return f.summary, f.err
}

func (f *fakeClient) CreateShare(_ context.Context, _ int64, token string) (models.ShareLink, error) {
	f.record("share", token)
	return models.ShareLink{Token: f.shareTok}, f.err
}

func (f *fakeClient) GetShared(_ context.Context, shareToken string) (*models.Expense, error) {
	f.record("shared", "")
	return f.shared, f.err
}

func (f *fakeClient) CloneShared(_ context.Context, _ string, token string) (string, error) {
	f.record("clone", token)
	return "Imported", f.err
}

func (f *fakeClient) DownloadSharedAttachment(_ context.Context, _ string, w io.Writer) (int64, error) {
	f.record("shared-attachment", "")
	if f.err != nil {
		return 0, f.err
	}
	return io.Copy(w, strings.NewReader(f.body))
}

func (f *fakeClient) SharedAttachmentURL(shareToken string) string {
	return "http://api/shared/" + shareToken + "/attachment"
}

func (f *fakeClient) ListRecurring(_ context.Context, token string) ([]models.RecurringRule, error) {
	f.record("recurring", token)
	return f.recurring, f.err
}

func (f *fakeClient) AddRecurring(_ context.Context, _ models.NewRecurringRule, token string) (string, error) {
	f.record("recurring/add", token)
	return "Recurring added", f.err
}

func (f *fakeClient) DeleteRecurring(_ context.Context, _ int64, token string) (string, error) {
	f.record("recurring/delete", token)
	return "Recurring deleted", f.err
}

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token() (string, error) { return s.token, s.err }
