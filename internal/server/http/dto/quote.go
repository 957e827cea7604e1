package dto

import (
	"time"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// QuoteProductPayload is a product line of a quote.
type QuoteProductPayload struct {
	Product    string         `json:"product"`
	Color      string         `json:"color,omitempty"`
	Sizes      map[string]int `json:"sizes,omitempty"`
	Quantity   int            `json:"quantity"`
	PrintAreas []string       `json:"printAreas,omitempty"`
	Notes      string         `json:"notes,omitempty"`
}

// QuoteAttachmentPayload is artwork metadata of a quote.
type QuoteAttachmentPayload struct {
	FileName    string `json:"fileName"`
	FileURL     string `json:"fileUrl,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// QuoteRequest is the body of POST /api/quotes.
type QuoteRequest struct {
	CustomerPayload
	Company     string                   `json:"company"`
	Notes       string                   `json:"notes"`
	EventDate   *time.Time               `json:"eventDate"`
	DueDate     *time.Time               `json:"dueDate"`
	Products    []QuoteProductPayload    `json:"products"`
	Attachments []QuoteAttachmentPayload `json:"attachments"`
}

// QuoteResponse is the admin representation of a quote.
type QuoteResponse struct {
	ID               string                   `json:"id"`
	CustomerName     string                   `json:"customerName"`
	CustomerEmail    string                   `json:"customerEmail"`
	CustomerPhone    string                   `json:"customerPhone,omitempty"`
	Company          string                   `json:"company,omitempty"`
	Status           string                   `json:"quote_status"`
	Notes            *string                  `json:"notes"`
	AdminNotes       *string                  `json:"admin_notes"`
	EventDate        *time.Time               `json:"event_date"`
	DueDate          *time.Time               `json:"due_date"`
	ConvertedOrderID *string                  `json:"converted_order_id"`
	ConvertedAt      *time.Time               `json:"converted_at"`
	EstimatedTotal   *Money                   `json:"estimated_total"`
	Products         []QuoteProductPayload    `json:"quote_products"`
	Attachments      []QuoteAttachmentPayload `json:"quote_attachments"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// QuoteEnvelope wraps a single quote.
type QuoteEnvelope struct {
	Success bool          `json:"success"`
	Quote   QuoteResponse `json:"quote"`
}

// QuoteListResponse is a page of quotes.
type QuoteListResponse struct {
	Success bool            `json:"success"`
	Quotes  []QuoteResponse `json:"quotes"`
	HasMore bool            `json:"hasMore"`
}

// Request converts the body into a domain request.
func (r QuoteRequest) Request() model.QuoteRequest {
	products := make([]model.QuoteProduct, 0, len(r.Products))
	for _, p := range r.Products {
		products = append(products, model.QuoteProduct{
			Product:    p.Product,
			Color:      p.Color,
			Sizes:      p.Sizes,
			Quantity:   p.Quantity,
			PrintAreas: p.PrintAreas,
			Notes:      p.Notes,
		})
	}
	attachments := make([]model.QuoteAttachment, 0, len(r.Attachments))
	for _, a := range r.Attachments {
		attachments = append(attachments, model.QuoteAttachment{
			FileName:    a.FileName,
			FileURL:     a.FileURL,
			ContentType: a.ContentType,
			Size:        a.Size,
		})
	}
	return model.QuoteRequest{
		Customer:    r.Customer(),
		Company:     r.Company,
		Notes:       r.Notes,
		EventDate:   r.EventDate,
		DueDate:     r.DueDate,
		Products:    products,
		Attachments: attachments,
	}
}

// NewQuoteResponse maps a domain quote.
func NewQuoteResponse(q model.Quote) QuoteResponse {
	resp := QuoteResponse{
		ID:            q.ID.String(),
		CustomerName:  q.Customer.Name,
		CustomerEmail: q.Customer.Email,
		CustomerPhone: q.Customer.Phone,
		Company:       q.Company,
		Status:        string(q.Status),
		Notes:         q.Notes,
		AdminNotes:    q.AdminNotes,
		EventDate:     q.EventDate,
		DueDate:       q.DueDate,
		ConvertedAt:   q.ConvertedAt,
		Products:      make([]QuoteProductPayload, 0, len(q.Products)),
		Attachments:   make([]QuoteAttachmentPayload, 0, len(q.Attachments)),
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
	if q.ConvertedOrderID != nil {
		id := q.ConvertedOrderID.String()
		resp.ConvertedOrderID = &id
	}
	if q.EstimatedTotal != nil {
		total := Money(*q.EstimatedTotal)
		resp.EstimatedTotal = &total
	}
	for _, p := range q.Products {
		resp.Products = append(resp.Products, QuoteProductPayload{
			Product:    p.Product,
			Color:      p.Color,
			Sizes:      p.Sizes,
			Quantity:   p.Quantity,
			PrintAreas: p.PrintAreas,
			Notes:      p.Notes,
		})
	}
	for _, a := range q.Attachments {
		resp.Attachments = append(resp.Attachments, QuoteAttachmentPayload{
			FileName:    a.FileName,
			FileURL:     a.FileURL,
			ContentType: a.ContentType,
			Size:        a.Size,
		})
	}
	return resp
}
