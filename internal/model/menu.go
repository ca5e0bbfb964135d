package model

import "github.com/shopspring/decimal"

func init() {
	// Prices serialize as JSON numbers, matching the public API.
	decimal.MarshalJSONWithoutQuotes = true
}

// MenuItem is one entry of the flat, append-only menu.
type MenuItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"size:1024"`
	Image       string          `json:"image" gorm:"size:255"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
}
