package dto

import "github.com/bookstore-vn/bookstore/internal/domain/cart"

type CartDTO struct {
	Items     []CartItemDTO `json:"items"`
	ItemCount int           `json:"item_count"`
	Total     string        `json:"total"`
}

type CartItemDTO struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

func ToCartDTO(c *cart.Cart) *CartDTO {
	d := &CartDTO{Items: []CartItemDTO{}, ItemCount: c.ItemCount(), Total: c.Total().String()}
	if c == nil {
		return d
	}
	for _, item := range c.Items {
		d.Items = append(d.Items, CartItemDTO{
			BookID:    item.BookID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
			Subtotal:  item.Subtotal().String(),
		})
	}
	return d
}
