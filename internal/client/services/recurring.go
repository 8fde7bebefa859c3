package services

import (
	"context"

	"github.com/dmitrijs2005/expenses/internal/client/client"
	"github.com/dmitrijs2005/expenses/internal/client/models"
)

type RecurringService interface {
	List(ctx context.Context) ([]models.RecurringRule, error)
	Add(ctx context.Context, r models.NewRecurringRule) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
}

type recurringService struct {
	client client.Client
	tokens TokenSource
}

func NewRecurringService(c client.Client, tokens TokenSource) RecurringService {
	return &recurringService{client: c, tokens: tokens}
}

func (s *recurringService) List(ctx context.Context) ([]models.RecurringRule, error) {
	token, err := bearer(s.tokens)
	if err != nil {
		return nil, err
	}
	return s.client.ListRecurring(ctx, token)
}

func (s *recurringService) Add(ctx context.Context, r models.NewRecurringRule) (string, error) {
	token, err := bearer(s.tokens)
	if err != nil {
		return "", err
	}
	return s.client.AddRecurring(ctx, r, token)
}

func (s *recurringService) Delete(ctx context.Context, id int64) (string, error) {
	token, err := bearer(s.tokens)
	if err != nil {
		return "", err
	}
	return s.client.DeleteRecurring(ctx, id, token)
}
