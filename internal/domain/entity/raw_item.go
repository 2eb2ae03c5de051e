package entity

import (
	"github.com/shopspring/decimal"

	"nft_tracker/internal/domain/value"
)

// RawItem is one SKU entry of the storefront inventory feed.
type RawItem struct {
	Type      string     `json:"type" validate:"required"`
	Name      string     `json:"name" validate:"required"`
	Inventory *Inventory `json:"inventory" validate:"required"`
	Price     *Price     `json:"price" validate:"required"`
}

type Inventory struct {
	MaxQuantity     *int         `json:"maxQuantity,omitempty"` // nil means unlimited supply
	CurrentQuantity *int         `json:"currentQuantity" validate:"required"`
	Attributes      value.Traits `json:"attributes" validate:"required"`
}

type Price struct {
	CurrencyID    string           `json:"currencyId" validate:"required"`
	NaturalAmount *decimal.Decimal `json:"naturalAmount" validate:"required"`
}
