package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderModel is the orders table. The VNPay settlement columns stay empty
// until the order is paid.
type OrderModel struct {
	ID              uint            `gorm:"primaryKey"`
	UserID          string          `gorm:"size:64;not null;index"`
	CustomerName    string          `gorm:"size:128;not null"`
	CustomerEmail   string          `gorm:"size:255;not null"`
	CustomerMobile  string          `gorm:"size:32"`
	CustomerAddress string          `gorm:"size:512"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency        string          `gorm:"size:10;not null;default:'VND'"`
	Status          string          `gorm:"size:32;not null;index"`
	IsPaid          bool            `gorm:"not null;default:false"`
	PaymentMethod   string          `gorm:"size:20;not null"`
	BankCode        string          `gorm:"size:32"`
	TransactionNo   string          `gorm:"size:64"`
	PayDate         string          `gorm:"size:14"`
	FailureCode     string          `gorm:"size:8"`
	PaidAt          *time.Time
	Metadata        datatypes.JSONMap
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel snapshots a cart line at checkout.
type OrderItemModel struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;index"`
	BookID    uint            `gorm:"not null"`
	Title     string          `gorm:"size:255;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt time.Time
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
