package test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// SampleOrder returns a priced t-shirt order for handler tests.
func SampleOrder(id uuid.UUID) *model.Order {
	created := time.Unix(1_700_000_000, 0).UTC()
	return &model.Order{
		ID:       id,
		Type:     model.ProductTypeTShirt,
		Status:   model.OrderStatusPending,
		Payment:  model.Payment{Status: model.PaymentStatusPending},
		Customer: model.Customer{Name: "Ada", Email: "ada@example.com"},
		Quantity: 3,
		Pricing: model.Pricing{
			UnitPrice:       decimal.RequireFromString("7.50"),
			BasePrice:       decimal.RequireFromString("22.50"),
			TurnaroundPrice: decimal.RequireFromString("4.00"),
			TotalPrice:      decimal.RequireFromString("26.50"),
		},
		TShirt: &model.TShirtDesign{
			Product:    "tshirt",
			Color:      "black",
			Size:       "M",
			PrintAreas: []string{"front", "left_sleeve"},
			Turnaround: "rush",
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateTShirtFn      func(context.Context, model.TShirtOrderRequest) (*model.Order, error)
	CreateColorCopiesFn func(context.Context, model.ColorCopiesOrderRequest) (*model.Order, error)
	OrderFn             func(context.Context, uuid.UUID) (*model.Order, error)
	OrdersFn            func(context.Context, model.OrderFilter, model.Page) ([]model.Order, model.Page, error)
	UpdateStatusFn      func(context.Context, uuid.UUID, model.OrderStatus) (*model.Order, error)
	ConfirmPaymentFn    func(context.Context, uuid.UUID, model.PaymentConfirmation) (*model.Order, error)
	DeleteFn            func(context.Context, uuid.UUID) error
}

// CreateTShirtOrder delegates to override or returns the sample order.
func (s OrderFacadeStub) CreateTShirtOrder(ctx context.Context, req model.TShirtOrderRequest) (*model.Order, error) {
	if s.CreateTShirtFn != nil {
		return s.CreateTShirtFn(ctx, req)
	}
	return SampleOrder(uuid.New()), nil
}

// CreateColorCopiesOrder delegates to override or returns the sample order.
func (s OrderFacadeStub) CreateColorCopiesOrder(ctx context.Context, req model.ColorCopiesOrderRequest) (*model.Order, error) {
	if s.CreateColorCopiesFn != nil {
		return s.CreateColorCopiesFn(ctx, req)
	}
	return SampleOrder(uuid.New()), nil
}

// Order returns the sample order for any id.
func (s OrderFacadeStub) Order(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return SampleOrder(id), nil
}

// Orders returns one sample order.
func (s OrderFacadeStub) Orders(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.Order, model.Page, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, filter, page)
	}
	if page.Limit == 0 {
		page.Limit = 20
	}
	return []model.Order{*SampleOrder(uuid.New())}, page, nil
}

// UpdateOrderStatus returns the sample order with the new status.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	order := SampleOrder(id)
	order.Status = status
	return order, nil
}

// ConfirmPayment returns the sample order marked with the payment.
func (s OrderFacadeStub) ConfirmPayment(ctx context.Context, id uuid.UUID, c model.PaymentConfirmation) (*model.Order, error) {
	if s.ConfirmPaymentFn != nil {
		return s.ConfirmPaymentFn(ctx, id, c)
	}
	order := SampleOrder(id)
	order.Payment.Status = c.Status
	order.Payment.ID = &c.PaymentID
	return order, nil
}

// DeleteOrder succeeds unless overridden.
func (s OrderFacadeStub) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// QuoteFacadeStub simulates quote operations.
type QuoteFacadeStub struct {
	CreateFn func(context.Context, model.QuoteRequest) (*model.Quote, error)
	QuoteFn  func(context.Context, uuid.UUID) (*model.Quote, error)
	QuotesFn func(context.Context, model.QuoteFilter, model.Page) ([]model.Quote, model.Page, error)
	UpdateFn func(context.Context, uuid.UUID, map[string]any) (*model.Quote, error)
	DeleteFn func(context.Context, uuid.UUID) error
}

// CreateQuote echoes the request as a pending quote.
func (s QuoteFacadeStub) CreateQuote(ctx context.Context, req model.QuoteRequest) (*model.Quote, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &model.Quote{ID: uuid.New(), Customer: req.Customer, Status: model.QuoteStatusPending, Products: req.Products}, nil
}

// Quote returns a pending quote for any id.
func (s QuoteFacadeStub) Quote(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	if s.QuoteFn != nil {
		return s.QuoteFn(ctx, id)
	}
	return &model.Quote{ID: id, Status: model.QuoteStatusPending}, nil
}

// Quotes returns an empty listing.
func (s QuoteFacadeStub) Quotes(ctx context.Context, filter model.QuoteFilter, page model.Page) ([]model.Quote, model.Page, error) {
	if s.QuotesFn != nil {
		return s.QuotesFn(ctx, filter, page)
	}
	return []model.Quote{}, page, nil
}

// UpdateQuote returns a quote for any id.
func (s QuoteFacadeStub) UpdateQuote(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Quote, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, fields)
	}
	return &model.Quote{ID: id, Status: model.QuoteStatusReviewed}, nil
}

// DeleteQuote succeeds unless overridden.
func (s QuoteFacadeStub) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// UploadFacadeStub simulates upload intake.
type UploadFacadeStub struct {
	AcceptFn func(context.Context, model.UploadAttempt) (*model.AcceptedUpload, error)
	EventsFn func(context.Context, int) ([]model.SecurityEvent, error)
}

// AcceptUpload echoes the attempt as accepted.
func (s UploadFacadeStub) AcceptUpload(ctx context.Context, attempt model.UploadAttempt) (*model.AcceptedUpload, error) {
	if s.AcceptFn != nil {
		return s.AcceptFn(ctx, attempt)
	}
	return &model.AcceptedUpload{FileName: attempt.FileName, Size: int64(len(attempt.Data)), MimeType: attempt.MimeType, Remaining: 4}, nil
}

// SecurityEvents returns no events.
func (s UploadFacadeStub) SecurityEvents(ctx context.Context, limit int) ([]model.SecurityEvent, error) {
	if s.EventsFn != nil {
		return s.EventsFn(ctx, limit)
	}
	return []model.SecurityEvent{}, nil
}

// HealthCheckerStub reports a configured datastore state.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	QuoteFacadeStub
	UploadFacadeStub
	HealthCheckerStub
}
