package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookModel struct {
	ID        uint            `gorm:"primaryKey"`
	Title     string          `gorm:"size:255;not null"`
	Author    string          `gorm:"size:255"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (BookModel) TableName() string {
	return "books"
}
