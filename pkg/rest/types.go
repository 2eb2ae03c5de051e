// Package rest holds the JSON models of the HTTP view.
package rest

import "time"

type Asset struct {
	Name            string  `json:"name"`
	Rarity          string  `json:"rarity"`
	MaxQuantity     *int    `json:"maxQuantity"`
	CurrentQuantity int     `json:"currentQuantity"`
	PriceUSDC       *string `json:"priceUsdc"`
	PriceSecondary  *string `json:"priceSecondary"`
	Tier            string  `json:"tier"`
}

type AssetList struct {
	UpdatedAt time.Time `json:"updatedAt"`
	Cycles    int       `json:"cycles"`
	Assets    []Asset   `json:"assets"`
}

// Error is the error body of every non-2xx response.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	SupportID string    `json:"supportId"`
}

type ErrorCode string
