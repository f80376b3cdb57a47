package usecases

import (
	"context"

	"github.com/bookstore-vn/bookstore/internal/domain/order"
)

// TransactionManager runs fn in a database transaction carried by the context.
// *db.TransactionManager satisfies it.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// OrderLocker serialises callback handling for one order across instances.
// TryLock does not block; release must be called when it reports true.
type OrderLocker interface {
	TryLock(ctx context.Context, orderID uint) (release func(context.Context) error, acquired bool, err error)
}

// PaymentNotifier tells the customer their order was paid.
type PaymentNotifier interface {
	SendPaymentConfirmation(o *order.Order) error
}

// BackgroundRunner runs fire-and-forget work that shutdown can wait for.
// *goroutine.Group satisfies it.
type BackgroundRunner interface {
	Go(name string, fn func())
}
