package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes the two postable document types
type DocumentKind string

const (
	DocumentKindInvoice  DocumentKind = "invoice"
	DocumentKindPurchase DocumentKind = "purchase"
)

// Document is a posted invoice (sale) or purchase with its line items.
// Total is the sum of line subtotals at posting time and is never
// recomputed afterwards.
type Document struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Kind      DocumentKind    `json:"kind" db:"-"`
	PartyID   uuid.UUID       `json:"party_id" db:"party_id"`
	PartyName string          `json:"party_name" db:"party_name"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Lines     []LineItem      `json:"lines" db:"-"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// LineItem is one product line within a document. UnitPrice is a snapshot of
// the price agreed at posting time, independent of later catalog changes.
type LineItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	DocumentID  uuid.UUID       `json:"document_id" db:"document_id"`
	ProductID   uuid.UUID       `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"subtotal"`
}
