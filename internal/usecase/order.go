package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/domain/repository"
)

const maxOrderQuantity = 10000

// OrderPolicy tunes order lifecycle rules.
type OrderPolicy struct {
	// LockFinalizedPayment refuses payment changes on completed or cancelled orders.
	LockFinalizedPayment bool
	DefaultPageSize      int
	MaxPageSize          int
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders  repository.OrderRepository
	catalog Catalog
	policy  OrderPolicy
	now     func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, catalog Catalog, policy OrderPolicy) *OrderUseCase {
	return &OrderUseCase{orders: orders, catalog: catalog, policy: policy, now: time.Now}
}

// CreateTShirtOrder prices and persists an apparel order.
func (u *OrderUseCase) CreateTShirtOrder(ctx context.Context, in model.TShirtOrderRequest) (*model.Order, error) {
	customer, err := validateCustomer(in.Customer)
	if err != nil {
		return nil, err
	}
	if err := validateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	design := in.Design
	if design.Product == "" {
		design.Product = "tshirt"
	}
	if !u.catalog.Products[design.Product] {
		return nil, domainErrors.Invalid("unknown product %q", design.Product)
	}
	if strings.TrimSpace(design.Color) == "" || strings.TrimSpace(design.Size) == "" {
		return nil, domainErrors.Invalid("color and size are required")
	}
	pricing, err := u.catalog.PriceTShirt(in.Quantity, design)
	if err != nil {
		return nil, err
	}
	if design.Turnaround == "" {
		design.Turnaround = TurnaroundStandard
	}

	order := newOrder(model.ProductTypeTShirt, customer, in.Quantity, pricing)
	order.TShirt = &design
	return u.orders.Create(ctx, order)
}

// CreateColorCopiesOrder prices and persists a copy order.
func (u *OrderUseCase) CreateColorCopiesOrder(ctx context.Context, in model.ColorCopiesOrderRequest) (*model.Order, error) {
	customer, err := validateCustomer(in.Customer)
	if err != nil {
		return nil, err
	}
	if err := validateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	design := in.Design
	if strings.TrimSpace(design.PaperSize) == "" {
		return nil, domainErrors.Invalid("paper size is required")
	}
	pricing, err := u.catalog.PriceColorCopies(in.Quantity, design)
	if err != nil {
		return nil, err
	}
	if design.Turnaround == "" {
		design.Turnaround = TurnaroundStandard
	}

	order := newOrder(model.ProductTypeColorCopies, customer, in.Quantity, pricing)
	order.ColorCopies = &design
	return u.orders.Create(ctx, order)
}

// Get loads an order of either variant.
func (u *OrderUseCase) Get(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	kind, err := u.orders.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.orders.Get(ctx, kind, id)
}

// List returns a page of orders, newest first. The returned page is the normalized one.
func (u *OrderUseCase) List(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.Order, model.Page, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, page, domainErrors.Invalid("unknown status %q", *filter.Status)
	}
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, page, domainErrors.Invalid("unknown order type %q", *filter.Type)
	}
	page = u.policy.normalize(page)
	orders, err := u.orders.List(ctx, filter, page)
	if err != nil {
		return nil, page, err
	}
	return orders, page, nil
}

// UpdateStatus overwrites the fulfillment status. Any known status may follow any other.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	kind, err := u.orders.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.orders.UpdateStatus(ctx, kind, id, status)
}

// ConfirmPayment applies a payment provider callback.
// A paid confirmation moves the order to processing, anything else leaves it pending.
func (u *OrderUseCase) ConfirmPayment(ctx context.Context, id uuid.UUID, c model.PaymentConfirmation) (*model.Order, error) {
	if !c.Status.Valid() {
		return nil, domainErrors.Invalid("unknown payment status %q", c.Status)
	}
	if strings.TrimSpace(c.PaymentID) == "" {
		return nil, domainErrors.Invalid("paymentId is required")
	}

	order, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Payment.Status == model.PaymentStatusPaid {
		return nil, domainErrors.ErrAlreadyPaid
	}
	if u.policy.LockFinalizedPayment && order.Status.Final() {
		return nil, domainErrors.ErrPaymentLocked
	}

	update := model.PaymentUpdate{
		PaymentStatus: c.Status,
		Status:        model.OrderStatusPending,
		PaymentID:     optional(c.PaymentID),
		Method:        optional(c.Method),
		TransactionID: optional(c.TransactionID),
	}
	if c.Status == model.PaymentStatusPaid {
		paidAt := u.now().UTC()
		update.Status = model.OrderStatusProcessing
		update.PaidAt = &paidAt
	}
	return u.orders.UpdatePayment(ctx, order.Type, id, update)
}

// Delete removes an order from whichever variant table holds it.
func (u *OrderUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	kind, err := u.orders.Resolve(ctx, id)
	if err != nil {
		return err
	}
	return u.orders.Delete(ctx, kind, id)
}

func (p OrderPolicy) normalize(page model.Page) model.Page {
	def := p.DefaultPageSize
	if def <= 0 {
		def = 20
	}
	maxSize := p.MaxPageSize
	if maxSize < def {
		maxSize = def
	}
	if page.Limit <= 0 {
		page.Limit = def
	}
	if page.Limit > maxSize {
		page.Limit = maxSize
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return page
}

func newOrder(kind model.ProductType, customer model.Customer, quantity int, pricing model.Pricing) *model.Order {
	return &model.Order{
		ID:       uuid.New(),
		Type:     kind,
		Status:   model.OrderStatusPending,
		Payment:  model.Payment{Status: model.PaymentStatusPending},
		Customer: customer,
		Quantity: quantity,
		Pricing:  pricing,
	}
}

func validateCustomer(c model.Customer) (model.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Name == "" {
		return c, domainErrors.Invalid("customer name is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return c, domainErrors.Invalid("customer email is invalid")
	}
	return c, nil
}

func validateQuantity(q int) error {
	if q < 1 || q > maxOrderQuantity {
		return domainErrors.Invalid("quantity must be between 1 and %d", maxOrderQuantity)
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
