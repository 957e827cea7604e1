package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// AuthFacade describes admin authentication capabilities required by handlers.
type AuthFacade interface {
	Login(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateTShirtOrder(ctx context.Context, req model.TShirtOrderRequest) (*model.Order, error)
	CreateColorCopiesOrder(ctx context.Context, req model.ColorCopiesOrderRequest) (*model.Order, error)
	Order(ctx context.Context, id uuid.UUID) (*model.Order, error)
	Orders(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.Order, model.Page, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
	ConfirmPayment(ctx context.Context, id uuid.UUID, c model.PaymentConfirmation) (*model.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

// QuoteFacade provides quote operations.
type QuoteFacade interface {
	CreateQuote(ctx context.Context, req model.QuoteRequest) (*model.Quote, error)
	Quote(ctx context.Context, id uuid.UUID) (*model.Quote, error)
	Quotes(ctx context.Context, filter model.QuoteFilter, page model.Page) ([]model.Quote, model.Page, error)
	UpdateQuote(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Quote, error)
	DeleteQuote(ctx context.Context, id uuid.UUID) error
}

// UploadFacade gates file uploads and exposes the security event log.
type UploadFacade interface {
	AcceptUpload(ctx context.Context, attempt model.UploadAttempt) (*model.AcceptedUpload, error)
	SecurityEvents(ctx context.Context, limit int) ([]model.SecurityEvent, error)
}

// HealthChecker reports datastore availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	OrderFacade
	QuoteFacade
	UploadFacade
	HealthChecker
}
