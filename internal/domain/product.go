package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents an inventory item in the catalog. Quantity is only
// mutated through document posting or an explicit stock adjustment.
type Product struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	SKU        string          `json:"sku" db:"sku"`
	Name       string          `json:"name" db:"name"`
	Price      decimal.Decimal `json:"price" db:"price"`
	Quantity   int             `json:"quantity" db:"quantity"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty" db:"category_id"`
	TaxID      *uuid.UUID      `json:"tax_id,omitempty" db:"tax_id"`
	StoreID    *uuid.UUID      `json:"store_id,omitempty" db:"store_id"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// Category represents a product category
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
