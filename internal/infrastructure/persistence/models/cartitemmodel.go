package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItemModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    string          `gorm:"size:64;not null;uniqueIndex:idx_cart_items_user_book"`
	BookID    uint            `gorm:"not null;uniqueIndex:idx_cart_items_user_book"`
	Title     string          `gorm:"size:255;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartItemModel) TableName() string {
	return "cart_items"
}
