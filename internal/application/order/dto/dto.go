package dto

import (
	"time"

	"github.com/bookstore-vn/bookstore/internal/domain/order"
)

// OrderDTO is the customer-facing view of an order.
type OrderDTO struct {
	ID            uint           `json:"id"`
	Status        string         `json:"status"`
	IsPaid        bool           `json:"is_paid"`
	TotalAmount   string         `json:"total_amount"`
	Currency      string         `json:"currency"`
	PaymentMethod string         `json:"payment_method"`
	Payment       *PaymentDTO    `json:"payment,omitempty"`
	FailureCode   string         `json:"failure_code,omitempty"`
	Items         []OrderItemDTO `json:"items"`
	PaidAt        *time.Time     `json:"paid_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

type OrderItemDTO struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// PaymentDTO carries the gateway's settlement references.
type PaymentDTO struct {
	BankCode      string `json:"bank_code"`
	TransactionNo string `json:"transaction_no"`
	PayDate       string `json:"pay_date"`
}

func ToOrderDTO(o *order.Order) *OrderDTO {
	items := make([]OrderItemDTO, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = OrderItemDTO{
			BookID:    item.BookID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Amount().String(),
		}
	}

	d := &OrderDTO{
		ID:            o.ID(),
		Status:        o.Status().String(),
		IsPaid:        o.IsPaid(),
		TotalAmount:   o.TotalAmount().Amount().String(),
		Currency:      o.TotalAmount().Currency(),
		PaymentMethod: o.PaymentMethod(),
		FailureCode:   o.FailureCode(),
		Items:         items,
		PaidAt:        o.PaidAt(),
		CreatedAt:     o.CreatedAt(),
	}
	if p := o.Payment(); p != nil {
		d.Payment = &PaymentDTO{BankCode: p.BankCode, TransactionNo: p.TransactionNo, PayDate: p.PayDate}
	}
	return d
}

func ToOrderDTOs(orders []*order.Order) []*OrderDTO {
	dtos := make([]*OrderDTO, len(orders))
	for i, o := range orders {
		dtos[i] = ToOrderDTO(o)
	}
	return dtos
}
