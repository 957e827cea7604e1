package dto

import (
	"time"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// CustomerPayload holds contact details of orders and quotes.
type CustomerPayload struct {
	Name  string `json:"customerName"`
	Email string `json:"customerEmail"`
	Phone string `json:"customerPhone,omitempty"`
}

// DesignOrderRequest is the body of POST /api/orders/design.
type DesignOrderRequest struct {
	CustomerPayload
	Product       string                 `json:"product"`
	Color         string                 `json:"color"`
	Size          string                 `json:"size"`
	Quantity      int                    `json:"quantity"`
	PrintAreas    []string               `json:"printAreas"`
	TextOverlays  []model.TextOverlay    `json:"textOverlays"`
	ImageOverlays []model.ImageOverlay   `json:"imageOverlays"`
	Turnaround    string                 `json:"turnaround"`
	Proof         model.ProofPreferences `json:"proof"`
}

// CopiesOrderRequest is the body of POST /api/orders/copies.
type CopiesOrderRequest struct {
	CustomerPayload
	Quantity    int      `json:"quantity"`
	PaperSize   string   `json:"paperSize"`
	PaperType   string   `json:"paperType"`
	ColorMode   string   `json:"colorMode"`
	DoubleSided bool     `json:"doubleSided"`
	Options     []string `json:"options"`
	Turnaround  string   `json:"turnaround"`
	SourceFile  string   `json:"sourceFile"`
	Notes       string   `json:"notes"`
}

// CreateOrderResponse echoes the server computed price of a new order.
type CreateOrderResponse struct {
	Success         bool   `json:"success"`
	OrderID         string `json:"orderId"`
	TotalPrice      Money  `json:"totalPrice"`
	BasePrice       Money  `json:"basePrice"`
	TurnaroundPrice Money  `json:"turnaroundPrice"`
}

// PaymentRequest is the payment provider callback body.
type PaymentRequest struct {
	PaymentID     string `json:"paymentId"`
	Status        string `json:"status"`
	PaymentMethod string `json:"paymentMethod"`
	TransactionID string `json:"transactionId"`
}

// StatusRequest is the body of PATCH /api/orders/:id.
type StatusRequest struct {
	Status string `json:"status"`
}

// DesignPayload is the t-shirt design part of an order.
type DesignPayload struct {
	Product       string                 `json:"product"`
	Color         string                 `json:"color"`
	Size          string                 `json:"size"`
	PrintAreas    []string               `json:"printAreas"`
	TextOverlays  []model.TextOverlay    `json:"textOverlays"`
	ImageOverlays []model.ImageOverlay   `json:"imageOverlays"`
	Turnaround    string                 `json:"turnaround"`
	Proof         model.ProofPreferences `json:"proof"`
}

// CopiesPayload is the color copies part of an order.
type CopiesPayload struct {
	PaperSize   string   `json:"paperSize"`
	PaperType   string   `json:"paperType,omitempty"`
	ColorMode   string   `json:"colorMode"`
	DoubleSided bool     `json:"doubleSided"`
	Options     []string `json:"options"`
	Turnaround  string   `json:"turnaround"`
	SourceFile  string   `json:"sourceFile,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// OrderResponse is the public representation of an order.
type OrderResponse struct {
	ID              string         `json:"id"`
	Type            string         `json:"productType"`
	Status          string         `json:"status"`
	PaymentStatus   string         `json:"paymentStatus"`
	PaymentID       *string        `json:"paymentId,omitempty"`
	PaymentMethod   *string        `json:"paymentMethod,omitempty"`
	TransactionID   *string        `json:"transactionId,omitempty"`
	PaidAt          *time.Time     `json:"paidAt,omitempty"`
	CustomerName    string         `json:"customerName"`
	CustomerEmail   string         `json:"customerEmail"`
	CustomerPhone   string         `json:"customerPhone,omitempty"`
	Quantity        int            `json:"quantity"`
	UnitPrice       Money          `json:"unitPrice"`
	BasePrice       Money          `json:"basePrice"`
	TurnaroundPrice Money          `json:"turnaroundPrice"`
	TotalPrice      Money          `json:"totalPrice"`
	Design          *DesignPayload `json:"design,omitempty"`
	Copies          *CopiesPayload `json:"copies,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// OrderEnvelope wraps a single order.
type OrderEnvelope struct {
	Success bool          `json:"success"`
	Order   OrderResponse `json:"order"`
}

// OrderListResponse is a page of orders.
type OrderListResponse struct {
	Success bool            `json:"success"`
	Orders  []OrderResponse `json:"orders"`
	HasMore bool            `json:"hasMore"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(o model.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID.String(),
		Type:            string(o.Type),
		Status:          string(o.Status),
		PaymentStatus:   string(o.Payment.Status),
		PaymentID:       o.Payment.ID,
		PaymentMethod:   o.Payment.Method,
		TransactionID:   o.Payment.TransactionID,
		PaidAt:          o.Payment.PaidAt,
		CustomerName:    o.Customer.Name,
		CustomerEmail:   o.Customer.Email,
		CustomerPhone:   o.Customer.Phone,
		Quantity:        o.Quantity,
		UnitPrice:       Money(o.Pricing.UnitPrice),
		BasePrice:       Money(o.Pricing.BasePrice),
		TurnaroundPrice: Money(o.Pricing.TurnaroundPrice),
		TotalPrice:      Money(o.Pricing.TotalPrice),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if d := o.TShirt; d != nil {
		resp.Design = &DesignPayload{
			Product:       d.Product,
			Color:         d.Color,
			Size:          d.Size,
			PrintAreas:    d.PrintAreas,
			TextOverlays:  d.TextOverlays,
			ImageOverlays: d.ImageOverlays,
			Turnaround:    d.Turnaround,
			Proof:         d.Proof,
		}
	}
	if d := o.ColorCopies; d != nil {
		resp.Copies = &CopiesPayload{
			PaperSize:   d.PaperSize,
			PaperType:   d.PaperType,
			ColorMode:   d.ColorMode,
			DoubleSided: d.DoubleSided,
			Options:     d.Options,
			Turnaround:  d.Turnaround,
			SourceFile:  d.SourceFile,
			Notes:       d.Notes,
		}
	}
	return resp
}

// Customer converts the payload into the domain value.
func (p CustomerPayload) Customer() model.Customer {
	return model.Customer{Name: p.Name, Email: p.Email, Phone: p.Phone}
}

// Request converts the body into a domain request.
func (r DesignOrderRequest) Request() model.TShirtOrderRequest {
	return model.TShirtOrderRequest{
		Customer: r.Customer(),
		Quantity: r.Quantity,
		Design: model.TShirtDesign{
			Product:       r.Product,
			Color:         r.Color,
			Size:          r.Size,
			PrintAreas:    r.PrintAreas,
			TextOverlays:  r.TextOverlays,
			ImageOverlays: r.ImageOverlays,
			Turnaround:    r.Turnaround,
			Proof:         r.Proof,
		},
	}
}

// Request converts the body into a domain request.
func (r CopiesOrderRequest) Request() model.ColorCopiesOrderRequest {
	return model.ColorCopiesOrderRequest{
		Customer: r.Customer(),
		Quantity: r.Quantity,
		Design: model.ColorCopiesDesign{
			PaperSize:   r.PaperSize,
			PaperType:   r.PaperType,
			ColorMode:   r.ColorMode,
			DoubleSided: r.DoubleSided,
			Options:     r.Options,
			Turnaround:  r.Turnaround,
			SourceFile:  r.SourceFile,
			Notes:       r.Notes,
		},
	}
}
