package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// OrderRepository describes persistence of both order variants.
// Methods taking a product type operate on that variant's table only.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	Resolve(ctx context.Context, id uuid.UUID) (model.ProductType, error)
	Get(ctx context.Context, kind model.ProductType, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.Order, error)
	UpdateStatus(ctx context.Context, kind model.ProductType, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
	UpdatePayment(ctx context.Context, kind model.ProductType, id uuid.UUID, update model.PaymentUpdate) (*model.Order, error)
	Delete(ctx context.Context, kind model.ProductType, id uuid.UUID) error
}
