package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductType discriminates physical order variants.
type ProductType string

const (
	ProductTypeTShirt      ProductType = "tshirt"
	ProductTypeColorCopies ProductType = "color_copies"
)

// ProductTypes lists variants in resolution order.
var ProductTypes = []ProductType{ProductTypeTShirt, ProductTypeColorCopies}

// Valid reports whether t names a known variant.
func (t ProductType) Valid() bool {
	return t == ProductTypeTShirt || t == ProductTypeColorCopies
}

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPrinting   OrderStatus = "printing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusPrinting,
		OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Final reports whether the order reached a terminal status.
func (s OrderStatus) Final() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// PaymentStatus describes payment sub-state.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPaid || s == PaymentStatusFailed
}

// Pricing is the server computed price breakdown of an order.
type Pricing struct {
	UnitPrice       decimal.Decimal
	BasePrice       decimal.Decimal
	TurnaroundPrice decimal.Decimal
	TotalPrice      decimal.Decimal
}

// Customer holds contact details captured with an order.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Payment holds fields written by the payment confirmation path.
type Payment struct {
	Status        PaymentStatus
	ID            *string
	Method        *string
	TransactionID *string
	PaidAt        *time.Time
}

// TextOverlay is a text element placed on a print area.
type TextOverlay struct {
	Text     string  `json:"text"`
	Font     string  `json:"font,omitempty"`
	Color    string  `json:"color,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
	Area     string  `json:"area"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// ImageOverlay is an uploaded image placed on a print area.
type ImageOverlay struct {
	FileName string  `json:"fileName"`
	URL      string  `json:"url,omitempty"`
	Area     string  `json:"area"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// ProofPreferences captures how the customer wants to approve a proof.
type ProofPreferences struct {
	Required bool   `json:"required"`
	Email    string `json:"email,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// TShirtDesign is the design payload of apparel and merchandise orders.
type TShirtDesign struct {
	Product       string
	Color         string
	Size          string
	PrintAreas    []string
	TextOverlays  []TextOverlay
	ImageOverlays []ImageOverlay
	Turnaround    string
	Proof         ProofPreferences
}

// ColorCopiesDesign is the design payload of color copy orders.
type ColorCopiesDesign struct {
	PaperSize   string
	PaperType   string
	ColorMode   string
	DoubleSided bool
	Options     []string
	Turnaround  string
	SourceFile  string
	Notes       string
}

// Order is a customer print request. Exactly one design field is set,
// matching Type.
type Order struct {
	ID          uuid.UUID
	Type        ProductType
	Status      OrderStatus
	Payment     Payment
	Customer    Customer
	Quantity    int
	Pricing     Pricing
	TShirt      *TShirtDesign
	ColorCopies *ColorCopiesDesign
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status *OrderStatus
	Type   *ProductType
}

// Page is an offset based window.
type Page struct {
	Limit  int
	Offset int
}

// PaymentConfirmation is the payload of the payment confirmation path.
type PaymentConfirmation struct {
	PaymentID     string
	Status        PaymentStatus
	Method        string
	TransactionID string
}

// PaymentUpdate is persisted by the gateway. Nil pointers keep stored values.
type PaymentUpdate struct {
	PaymentStatus PaymentStatus
	Status        OrderStatus
	PaymentID     *string
	Method        *string
	TransactionID *string
	PaidAt        *time.Time
}

// TShirtOrderRequest is a customer submitted apparel order.
type TShirtOrderRequest struct {
	Customer Customer
	Quantity int
	Design   TShirtDesign
}

// ColorCopiesOrderRequest is a customer submitted copy order.
type ColorCopiesOrderRequest struct {
	Customer Customer
	Quantity int
	Design   ColorCopiesDesign
}
