package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/usecase"
)

// HealthProbe reports whether the datastore answers.
type HealthProbe interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade exposes the use cases to the HTTP layer.
type StorefrontFacade struct {
	auth    *usecase.AuthUseCase
	orders  *usecase.OrderUseCase
	quotes  *usecase.QuoteUseCase
	uploads *usecase.UploadUseCase
	health  HealthProbe
}

func NewStorefrontFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, quotes *usecase.QuoteUseCase, uploads *usecase.UploadUseCase, health HealthProbe) *StorefrontFacade {
	return &StorefrontFacade{auth: auth, orders: orders, quotes: quotes, uploads: uploads, health: health}
}

func (f *StorefrontFacade) Login(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Login(ctx, login, password)
	return token, err
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) CreateTShirtOrder(ctx context.Context, req model.TShirtOrderRequest) (*model.Order, error) {
	return f.orders.CreateTShirtOrder(ctx, req)
}

func (f *StorefrontFacade) CreateColorCopiesOrder(ctx context.Context, req model.ColorCopiesOrderRequest) (*model.Order, error) {
	return f.orders.CreateColorCopiesOrder(ctx, req)
}

func (f *StorefrontFacade) Order(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *StorefrontFacade) Orders(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.Order, model.Page, error) {
	return f.orders.List(ctx, filter, page)
}

func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, id, status)
}

func (f *StorefrontFacade) ConfirmPayment(ctx context.Context, id uuid.UUID, c model.PaymentConfirmation) (*model.Order, error) {
	return f.orders.ConfirmPayment(ctx, id, c)
}

func (f *StorefrontFacade) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return f.orders.Delete(ctx, id)
}

func (f *StorefrontFacade) CreateQuote(ctx context.Context, req model.QuoteRequest) (*model.Quote, error) {
	return f.quotes.Create(ctx, req)
}

func (f *StorefrontFacade) Quote(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	return f.quotes.Get(ctx, id)
}

func (f *StorefrontFacade) Quotes(ctx context.Context, filter model.QuoteFilter, page model.Page) ([]model.Quote, model.Page, error) {
	return f.quotes.List(ctx, filter, page)
}

func (f *StorefrontFacade) UpdateQuote(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Quote, error) {
	return f.quotes.Update(ctx, id, fields)
}

func (f *StorefrontFacade) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	return f.quotes.Delete(ctx, id)
}

func (f *StorefrontFacade) AcceptUpload(ctx context.Context, attempt model.UploadAttempt) (*model.AcceptedUpload, error) {
	return f.uploads.Accept(ctx, attempt)
}

func (f *StorefrontFacade) SecurityEvents(ctx context.Context, limit int) ([]model.SecurityEvent, error) {
	return f.uploads.RecentEvents(ctx, limit)
}

func (f *StorefrontFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
