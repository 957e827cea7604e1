package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// QuoteRepository persists quotes together with their products and attachments.
type QuoteRepository interface {
	Create(ctx context.Context, quote *model.Quote) (*model.Quote, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Quote, error)
	List(ctx context.Context, filter model.QuoteFilter, page model.Page) ([]model.Quote, error)
	Update(ctx context.Context, id uuid.UUID, changes model.QuoteChanges) (*model.Quote, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
