package book

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrBookNotFound = errors.New("book not found")

// Book is the slice of the catalog the cart needs: a title and a current price.
type Book struct {
	ID     uint
	Title  string
	Author string
	Price  decimal.Decimal
}

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Book, error)
}
