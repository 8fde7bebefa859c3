package services

import (
	"context"

	"github.com/dmitrijs2005/expenses/internal/client/client"
	"github.com/dmitrijs2005/expenses/internal/client/models"
)

// SharedService reads expenses by share token. Reading needs no session;
// importing does.
type SharedService interface {
	Get(ctx context.Context, shareToken string) (*models.Expense, error)
	// Import clones the shared expense into the signed-in user's account.
	// Without a session it returns ErrSignInRequired and sends nothing.
	Import(ctx context.Context, shareToken string) (string, error)
	DownloadAttachment(ctx context.Context, shareToken string, e models.Expense, dir string) (string, error)
	AttachmentURL(shareToken string) string
}

type sharedService struct {
	client client.Client
	tokens TokenSource
}

func NewSharedService(c client.Client, tokens TokenSource) SharedService {
	return &sharedService{client: c, tokens: tokens}
}

func (s *sharedService) Get(ctx context.Context, shareToken string) (*models.Expense, error) {
	return s.client.GetShared(ctx, shareToken)
}

func (s *sharedService) Import(ctx context.Context, shareToken string) (string, error) {
	token, err := bearer(s.tokens)
	if err != nil {
		return "", err
	}
	return s.client.CloneShared(ctx, shareToken, token)
}

func (s *sharedService) DownloadAttachment(ctx context.Context, shareToken string, e models.Expense, dir string) (string, error) {
	name := e.AttachmentFilename
	if name == "" {
		name = "shared-attachment"
	}
	return saveDownload(dir, name, func(w writer) (int64, error) {
		return s.client.DownloadSharedAttachment(ctx, shareToken, w)
	})
}

func (s *sharedService) AttachmentURL(shareToken string) string {
	return s.client.SharedAttachmentURL(shareToken)
}
