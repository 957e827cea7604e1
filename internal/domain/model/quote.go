package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus describes negotiation progress of a quote.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusReviewed  QuoteStatus = "reviewed"
	QuoteStatusSent      QuoteStatus = "sent"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusConverted QuoteStatus = "converted"
)

// Valid reports whether s is a known quote status.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusReviewed, QuoteStatusSent,
		QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusConverted:
		return true
	}
	return false
}

// QuoteField names a mutable quote column.
type QuoteField string

const (
	QuoteFieldStatus           QuoteField = "quote_status"
	QuoteFieldNotes            QuoteField = "notes"
	QuoteFieldAdminNotes       QuoteField = "admin_notes"
	QuoteFieldEventDate        QuoteField = "event_date"
	QuoteFieldDueDate          QuoteField = "due_date"
	QuoteFieldConvertedOrderID QuoteField = "converted_order_id"
	QuoteFieldConvertedAt      QuoteField = "converted_at"
)

// QuoteChanges maps allow-listed fields to typed values. A nil value clears the column.
type QuoteChanges map[QuoteField]any

// QuoteProduct is a product line requested in a quote.
type QuoteProduct struct {
	ID         int64
	QuoteID    uuid.UUID
	Product    string
	Color      string
	Sizes      map[string]int
	Quantity   int
	PrintAreas []string
	Notes      string
}

// QuoteAttachment is artwork metadata submitted with a quote.
type QuoteAttachment struct {
	ID          int64
	QuoteID     uuid.UUID
	FileName    string
	FileURL     string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

// Quote is a negotiated pricing request.
type Quote struct {
	ID               uuid.UUID
	Customer         Customer
	Company          string
	Status           QuoteStatus
	Notes            *string
	AdminNotes       *string
	EventDate        *time.Time
	DueDate          *time.Time
	ConvertedOrderID *uuid.UUID
	ConvertedAt      *time.Time
	EstimatedTotal   *decimal.Decimal
	Products         []QuoteProduct
	Attachments      []QuoteAttachment
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// QuoteFilter narrows quote listings.
type QuoteFilter struct {
	Status *QuoteStatus
}

// QuoteRequest is a customer quote submission.
type QuoteRequest struct {
	Customer    Customer
	Company     string
	Notes       string
	EventDate   *time.Time
	DueDate     *time.Time
	Products    []QuoteProduct
	Attachments []QuoteAttachment
}
