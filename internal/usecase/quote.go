package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// QuoteUseCase manages quote requests.
type QuoteUseCase struct {
	quotes  repository.QuoteRepository
	catalog Catalog
	policy  OrderPolicy
}

// NewQuoteUseCase constructs QuoteUseCase.
func NewQuoteUseCase(quotes repository.QuoteRepository, catalog Catalog, policy OrderPolicy) *QuoteUseCase {
	return &QuoteUseCase{quotes: quotes, catalog: catalog, policy: policy}
}

// Create validates and stores a quote request in pending state.
func (u *QuoteUseCase) Create(ctx context.Context, in model.QuoteRequest) (*model.Quote, error) {
	customer, err := validateCustomer(in.Customer)
	if err != nil {
		return nil, err
	}
	if len(in.Products) == 0 {
		return nil, domainErrors.Invalid("at least one product is required")
	}

	products := make([]model.QuoteProduct, 0, len(in.Products))
	for i, p := range in.Products {
		p.Product = strings.TrimSpace(p.Product)
		if p.Product == "" {
			return nil, domainErrors.Invalid("product %d: name is required", i+1)
		}
		if sum := sumSizes(p.Sizes); sum > 0 {
			p.Quantity = sum
		}
		if err := validateQuantity(p.Quantity); err != nil {
			return nil, domainErrors.Invalid("product %d: quantity must be between 1 and %d", i+1, maxOrderQuantity)
		}
		products = append(products, p)
	}
	for i, a := range in.Attachments {
		if strings.TrimSpace(a.FileName) == "" {
			return nil, domainErrors.Invalid("attachment %d: file name is required", i+1)
		}
	}

	quote := &model.Quote{
		ID:          uuid.New(),
		Customer:    customer,
		Company:     strings.TrimSpace(in.Company),
		Status:      model.QuoteStatusPending,
		Notes:       optional(in.Notes),
		EventDate:   in.EventDate,
		DueDate:     in.DueDate,
		Products:    products,
		Attachments: in.Attachments,
	}
	quote.EstimatedTotal = u.estimate(products)
	return u.quotes.Create(ctx, quote)
}

// estimate prices products whose print areas are all in the catalog.
// Quotes with custom areas are left unpriced for manual review.
func (u *QuoteUseCase) estimate(products []model.QuoteProduct) *decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		if len(p.PrintAreas) == 0 {
			return nil
		}
		pricing, err := u.catalog.PriceTShirt(p.Quantity, model.TShirtDesign{PrintAreas: p.PrintAreas})
		if err != nil {
			return nil
		}
		total = total.Add(pricing.BasePrice)
	}
	return &total
}

// Get loads a quote with its children.
func (u *QuoteUseCase) Get(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	return u.quotes.Get(ctx, id)
}

// List returns a page of quotes, newest first.
func (u *QuoteUseCase) List(ctx context.Context, filter model.QuoteFilter, page model.Page) ([]model.Quote, model.Page, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, page, domainErrors.Invalid("unknown quote status %q", *filter.Status)
	}
	page = u.policy.normalize(page)
	quotes, err := u.quotes.List(ctx, filter, page)
	if err != nil {
		return nil, page, err
	}
	return quotes, page, nil
}

// Update applies the allow-listed subset of fields. Unknown keys are ignored.
func (u *QuoteUseCase) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Quote, error) {
	changes, err := ParseQuoteChanges(fields)
	if err != nil {
		return nil, err
	}
	return u.quotes.Update(ctx, id, changes)
}

// Delete removes a quote unless it was converted to an order.
func (u *QuoteUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.quotes.Delete(ctx, id)
}

// ParseQuoteChanges converts a decoded JSON object into typed quote changes.
// It fails with ErrNoValidFields when no allow-listed key is present.
func ParseQuoteChanges(fields map[string]any) (model.QuoteChanges, error) {
	changes := make(model.QuoteChanges)
	for key, raw := range fields {
		field := model.QuoteField(key)
		switch field {
		case model.QuoteFieldStatus:
			s, ok := raw.(string)
			status := model.QuoteStatus(s)
			if !ok || !status.Valid() {
				return nil, domainErrors.Invalid("unknown quote status %v", raw)
			}
			changes[field] = status
		case model.QuoteFieldNotes, model.QuoteFieldAdminNotes:
			v, err := stringOrNull(key, raw)
			if err != nil {
				return nil, err
			}
			changes[field] = v
		case model.QuoteFieldEventDate, model.QuoteFieldDueDate, model.QuoteFieldConvertedAt:
			v, err := timeOrNull(key, raw)
			if err != nil {
				return nil, err
			}
			changes[field] = v
		case model.QuoteFieldConvertedOrderID:
			v, err := uuidOrNull(key, raw)
			if err != nil {
				return nil, err
			}
			changes[field] = v
		}
	}
	if len(changes) == 0 {
		return nil, domainErrors.ErrNoValidFields
	}
	return changes, nil
}

func stringOrNull(key string, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, domainErrors.Invalid("%s must be a string", key)
	}
	return s, nil
}

func timeOrNull(key string, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, domainErrors.Invalid("%s must be a date", key)
	}
	for _, layout := range []string{time.RFC3339, dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return nil, domainErrors.Invalid("%s must be a date", key)
}

func uuidOrNull(key string, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, domainErrors.Invalid("%s must be an order id", key)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, domainErrors.Invalid("%s must be an order id", key)
	}
	return id, nil
}

func sumSizes(sizes map[string]int) int {
	total := 0
	for _, n := range sizes {
		if n > 0 {
			total += n
		}
	}
	return total
}
