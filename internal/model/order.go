package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order through submission to the factory.
type OrderStatus string

const (
	OrderStatusSubmitted OrderStatus = "submitted"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusFailed    OrderStatus = "failed"
)

// Order is a diner's order. ConfirmationID holds the factory's confirmation
// token and is set only once the order is confirmed; a confirmed order is
// never mutated again.
type Order struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	DinerID        uint            `json:"dinerId" gorm:"index;not null"`
	FranchiseID    uint            `json:"franchiseId" gorm:"not null"`
	StoreID        uint            `json:"storeId" gorm:"not null"`
	Status         OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'submitted';index"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	ConfirmationID string          `json:"-" gorm:"type:text"`
	Items          []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time       `json:"date"`
	UpdatedAt      time.Time       `json:"-"`
}

// OrderItem is one line of an order. Price is the server-resolved menu price
// at submission time, never the client-supplied value.
type OrderItem struct {
	ID          uint            `json:"-" gorm:"primaryKey"`
	OrderID     uint            `json:"-" gorm:"index;not null"`
	MenuID      uint            `json:"menuId" gorm:"not null"`
	Description string          `json:"description" gorm:"size:1024"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
}
