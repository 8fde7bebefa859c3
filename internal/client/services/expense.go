package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/expenses/internal/client/client"
	"github.com/dmitrijs2005/expenses/internal/client/models"
)

type ExpenseService interface {
	List(ctx context.Context) ([]models.Expense, error)
	Add(ctx context.Context, e models.NewExpense) (string, error)
	Get(ctx context.Context, id int64) (models.Expense, error)
	Delete(ctx context.Context, id int64) (string, error)
	// Summary fetches the backend summary selected by the view state. Mode
	// "none" yields an empty string without a request.
	Summary(ctx context.Context, v models.ViewState) (string, error)
	// Share mints a token for id and returns the public link.
	Share(ctx context.Context, id int64) (string, error)
	DownloadAttachment(ctx context.Context, e models.Expense, dir string) (string, error)
	AttachmentURL(id int64) string
}

type expenseService struct {
	client     client.Client
	tokens     TokenSource
	publicBase string
}

// NewExpenseService binds the expense operations to the API client. Share
// links are built on publicBase.
func NewExpenseService(c client.Client, tokens TokenSource, publicBase string) ExpenseService {
	return &expenseService{client: c, tokens: tokens, publicBase: strings.TrimRight(publicBase, "/")}
}

func (s *expenseService) List(ctx context.Context) ([]models.Expense, error) {
	token, err := bearer(s.tokens)
	if err != nil {
		return nil, err
	}
	return s.client.ListExpenses(ctx, token)
}

func (s *expenseService) Add(ctx context.Context, e models.NewExpense) (string, error) {
	token, err := bearer(s.tokens)
	if err != nil {
		return "", err
	}
	return s.client.AddExpense(ctx, e, token)
}

func (s *expenseService) Get(ctx context.Context, id int64) (models.Expense, error) {
	token, err := bearer(s.tokens)
	if err != nil {
		return models.Expense{}, err
	}
	e, err := s.client.GetExpense(ctx, id, token)
	if err != nil {
		return models.Expense{}, err
	}
	return *e, nil
}

func (s *expenseService) Delete(ctx context.Context, id int64) (string, error) {
	token, err := bearer(s.tokens)
	if err != nil {
		return "", err
	}
	return s.client.DeleteExpense(ctx, id, token)
}

func (s *expenseService) Summary(ctx context.Context, v models.ViewState) (string, error) {
	if v.SummaryMode == models.SummaryNone {
		return "", nil
	}

	token, err := bearer(s.tokens)
	if err != nil {
		return "", err
	}

	if v.SummaryMode == models.SummaryMonth {
		month, err := strconv.Atoi(v.SummaryMonth)
		if err != nil {
			return "", fmt.Errorf("summary month %q: %w", v.SummaryMonth, err)
		}
		return s.client.SummaryByMonth(ctx, month, token)
	}
	return s.client.SummaryTotal(ctx, token)
}

// ShareURL is the public link for a share token.
func ShareURL(publicBase, token string) string {
	return strings.TrimRight(publicBase, "/") + "/shared/" + token
}

func (s *expenseService) Share(ctx context.Context, id int64) (string, error) {
	token, err := bearer(s.tokens)
	if err != nil {
		return "", err
	}
	link, err := s.client.CreateShare(ctx, id, token)
	if err != nil {
		return "", err
	}
	return ShareURL(s.publicBase, link.Token), nil
}

func (s *expenseService) DownloadAttachment(ctx context.Context, e models.Expense, dir string) (string, error) {
	token, err := bearer(s.tokens)
	if err != nil {
		return "", err
	}
	name := e.AttachmentFilename
	if name == "" {
		name = "attachment-" + strconv.FormatInt(e.ID, 10)
	}
	return saveDownload(dir, name, func(w writer) (int64, error) {
		return s.client.DownloadAttachment(ctx, e.ID, token, w)
	})
}

func (s *expenseService) AttachmentURL(id int64) string {
	return s.client.AttachmentURL(id)
}
