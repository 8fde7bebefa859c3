package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/expenses/internal/client/models"
)

// Client is the backend REST API. Every method takes the caller's bearer
// token; an empty token sends no Authorization header.
type Client interface {
	ListExpenses(ctx context.Context, token string) ([]models.Expense, error)
	AddExpense(ctx context.Context, e models.NewExpense, token string) (string, error)
	GetExpense(ctx context.Context, id int64, token string) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id int64, token string) (string, error)
	DownloadAttachment(ctx context.Context, id int64, token string, w io.Writer) (int64, error)
	AttachmentURL(id int64) string

	SummaryTotal(ctx context.Context, token string) (string, error)
	SummaryByMonth(ctx context.Context, month int, token string) (string, error)

	CreateShare(ctx context.Context, id int64, token string) (models.ShareLink, error)
	GetShared(ctx context.Context, shareToken string) (*models.Expense, error)
	CloneShared(ctx context.Context, shareToken string, token string) (string, error)
	DownloadSharedAttachment(ctx context.Context, shareToken string, w io.Writer) (int64, error)
	SharedAttachmentURL(shareToken string) string

	ListRecurring(ctx context.Context, token string) ([]models.RecurringRule, error)
	AddRecurring(ctx context.Context, r models.NewRecurringRule, token string) (string, error)
	DeleteRecurring(ctx context.Context, id int64, token string) (string, error)
}
