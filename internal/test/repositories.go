package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
)

// AdminUserRepositoryStub stores admin users in-memory for tests.
type AdminUserRepositoryStub struct {
	Users map[string]*model.AdminUser
	Next  int64
	Err   error
}

// NewAdminUserRepositoryStub constructs stub repository with initialized maps.
func NewAdminUserRepositoryStub() *AdminUserRepositoryStub {
	return &AdminUserRepositoryStub{Users: make(map[string]*model.AdminUser), Next: 1}
}

// Create registers admin unless already exists or stub has explicit error.
func (s *AdminUserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.AdminUser, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.AdminUser)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.AdminUser{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	return user, nil
}

// GetByLogin fetches admin by login or returns not found.
func (s *AdminUserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.AdminUser, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in memory. Fn fields override behaviour.
type OrderRepositoryStub struct {
	CreateFn        func(context.Context, *model.Order) (*model.Order, error)
	ListFn          func(context.Context, model.OrderFilter, model.Page) ([]model.Order, error)
	UpdatePaymentFn func(context.Context, model.ProductType, uuid.UUID, model.PaymentUpdate) (*model.Order, error)

	Orders   map[uuid.UUID]*model.Order
	Payments []model.PaymentUpdate
	Deleted  []uuid.UUID
	Pages    []model.Page
	Now      time.Time
}

// NewOrderRepositoryStub constructs an empty stub.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[uuid.UUID]*model.Order), Now: time.Unix(1_700_000_000, 0).UTC()}
}

// Put stores a copy of order.
func (s *OrderRepositoryStub) Put(order model.Order) {
	if s.Orders == nil {
		s.Orders = make(map[uuid.UUID]*model.Order)
	}
	s.Orders[order.ID] = &order
}

// Create stores the order and stamps timestamps.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt, order.UpdatedAt = s.Now, s.Now
	s.Put(*order)
	return order, nil
}

// Resolve reports the variant of a stored order.
func (s *OrderRepositoryStub) Resolve(ctx context.Context, id uuid.UUID) (model.ProductType, error) {
	if o, ok := s.Orders[id]; ok {
		return o.Type, nil
	}
	return "", domainErrors.ErrNotFound
}

// Get returns a stored order of the given variant.
func (s *OrderRepositoryStub) Get(ctx context.Context, kind model.ProductType, id uuid.UUID) (*model.Order, error) {
	o, ok := s.Orders[id]
	if !ok || o.Type != kind {
		return nil, domainErrors.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

// List returns matching orders newest first.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.Order, error) {
	s.Pages = append(s.Pages, page)
	if s.ListFn != nil {
		return s.ListFn(ctx, filter, page)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.Type != nil && o.Type != *filter.Type {
			continue
		}
		out = append(out, *o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if page.Offset >= len(out) {
		return []model.Order{}, nil
	}
	out = out[page.Offset:]
	if page.Limit > 0 && len(out) > page.Limit {
		out = out[:page.Limit]
	}
	return out, nil
}

// UpdateStatus overwrites the stored status.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, kind model.ProductType, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	o, ok := s.Orders[id]
	if !ok || o.Type != kind {
		return nil, domainErrors.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = s.Now
	copied := *o
	return &copied, nil
}

// UpdatePayment records the update and applies it keeping existing values for nil fields.
func (s *OrderRepositoryStub) UpdatePayment(ctx context.Context, kind model.ProductType, id uuid.UUID, update model.PaymentUpdate) (*model.Order, error) {
	s.Payments = append(s.Payments, update)
	if s.UpdatePaymentFn != nil {
		return s.UpdatePaymentFn(ctx, kind, id, update)
	}
	o, ok := s.Orders[id]
	if !ok || o.Type != kind {
		return nil, domainErrors.ErrNotFound
	}
	if o.Payment.Status == model.PaymentStatusPaid {
		return nil, domainErrors.ErrAlreadyPaid
	}
	o.Payment.Status = update.PaymentStatus
	o.Status = update.Status
	if update.PaymentID != nil {
		o.Payment.ID = update.PaymentID
	}
	if update.Method != nil {
		o.Payment.Method = update.Method
	}
	if update.TransactionID != nil {
		o.Payment.TransactionID = update.TransactionID
	}
	if update.PaidAt != nil {
		o.Payment.PaidAt = update.PaidAt
	}
	copied := *o
	return &copied, nil
}

// Delete removes a stored order.
func (s *OrderRepositoryStub) Delete(ctx context.Context, kind model.ProductType, id uuid.UUID) error {
	o, ok := s.Orders[id]
	if !ok || o.Type != kind {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, id)
	s.Deleted = append(s.Deleted, id)
	return nil
}

// QuoteRepositoryStub keeps quotes in memory.
type QuoteRepositoryStub struct {
	Quotes  map[uuid.UUID]*model.Quote
	Changes []model.QuoteChanges
	Err     error
}

// NewQuoteRepositoryStub constructs an empty stub.
func NewQuoteRepositoryStub() *QuoteRepositoryStub {
	return &QuoteRepositoryStub{Quotes: make(map[uuid.UUID]*model.Quote)}
}

// Create stores quote.
func (s *QuoteRepositoryStub) Create(ctx context.Context, quote *model.Quote) (*model.Quote, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	copied := *quote
	s.Quotes[quote.ID] = &copied
	return quote, nil
}

// Get returns stored quote.
func (s *QuoteRepositoryStub) Get(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	q, ok := s.Quotes[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *q
	return &copied, nil
}

// List returns quotes matching the status filter.
func (s *QuoteRepositoryStub) List(ctx context.Context, filter model.QuoteFilter, page model.Page) ([]model.Quote, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := []model.Quote{}
	for _, q := range s.Quotes {
		if filter.Status != nil && q.Status != *filter.Status {
			continue
		}
		out = append(out, *q)
	}
	return out, nil
}

// Update records changes and applies the quote status.
func (s *QuoteRepositoryStub) Update(ctx context.Context, id uuid.UUID, changes model.QuoteChanges) (*model.Quote, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	q, ok := s.Quotes[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.Changes = append(s.Changes, changes)
	if status, ok := changes[model.QuoteFieldStatus].(model.QuoteStatus); ok {
		q.Status = status
	}
	if notes, ok := changes[model.QuoteFieldAdminNotes].(string); ok {
		q.AdminNotes = &notes
	}
	copied := *q
	return &copied, nil
}

// Delete removes a quote unless converted.
func (s *QuoteRepositoryStub) Delete(ctx context.Context, id uuid.UUID) error {
	if s.Err != nil {
		return s.Err
	}
	q, ok := s.Quotes[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if q.Status == model.QuoteStatusConverted {
		return domainErrors.ErrQuoteConverted
	}
	delete(s.Quotes, id)
	return nil
}

// SecurityEventRepositoryStub collects appended events.
type SecurityEventRepositoryStub struct {
	mu     sync.Mutex
	Events []model.SecurityEvent
	Limits []int
	Err    error
}

// Append stores event.
func (s *SecurityEventRepositoryStub) Append(ctx context.Context, event model.SecurityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Events = append(s.Events, event)
	return nil
}

// ListRecent returns stored events, newest first.
func (s *SecurityEventRepositoryStub) ListRecent(ctx context.Context, limit int) ([]model.SecurityEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Limits = append(s.Limits, limit)
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.SecurityEvent, 0, len(s.Events))
	for i := len(s.Events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.Events[i])
	}
	return out, nil
}
