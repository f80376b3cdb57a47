package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Item is one line of a user's cart. UnitPrice is the price captured when the
// book was added.
type Item struct {
	ID        uint
	BookID    uint
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

func NewItem(bookID uint, title string, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	if bookID == 0 {
		return nil, fmt.Errorf("book ID is required")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	if !unitPrice.IsPositive() {
		return nil, fmt.Errorf("unit price must be positive")
	}
	return &Item{BookID: bookID, Title: title, Quantity: quantity, UnitPrice: unitPrice}, nil
}

func (i *Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	UserID string
	Items  []*Item
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// ItemCount is the number of books in the cart, counting quantities.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Total is the sum of all line subtotals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
