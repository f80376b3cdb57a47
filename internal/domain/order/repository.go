package order

import (
	"context"
	"time"

	vo "github.com/bookstore-vn/bookstore/internal/domain/order/valueobjects"
)

type Repository interface {
	// Create persists the order together with its items and assigns its ID.
	Create(ctx context.Context, o *Order) error
	// GetByID returns ErrOrderNotFound when no order has the given ID.
	GetByID(ctx context.Context, id uint) (*Order, error)
	// ListByUserID returns the user's orders, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*Order, error)
	// Update writes status, failure code and metadata of an unpaid order.
	// It returns ErrOrderAlreadyPaid when the stored order is paid.
	Update(ctx context.Context, o *Order) error
	// MarkPaid atomically flips an unpaid order to paid. It reports whether
	// this call performed the transition; concurrent callers see exactly one true.
	MarkPaid(ctx context.Context, id uint, info vo.PaymentInfo, paidAt time.Time) (bool, error)
	// MarkPaymentFailed records a failed attempt unless the order is paid.
	MarkPaymentFailed(ctx context.Context, id uint, responseCode string) (bool, error)
}
