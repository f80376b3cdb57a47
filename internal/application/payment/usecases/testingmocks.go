package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bookstore-vn/bookstore/internal/application/payment/paymentgateway"
	"github.com/bookstore-vn/bookstore/internal/domain/cart"
	"github.com/bookstore-vn/bookstore/internal/domain/order"
	vo "github.com/bookstore-vn/bookstore/internal/domain/order/valueobjects"
)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepository) ListByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *mockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepository) MarkPaid(ctx context.Context, id uint, info vo.PaymentInfo, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, id, info, paidAt)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepository) MarkPaymentFailed(ctx context.Context, id uint, responseCode string) (bool, error) {
	args := m.Called(ctx, id, responseCode)
	return args.Bool(0), args.Error(1)
}

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) GetByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *mockCartRepository) AddItem(ctx context.Context, userID string, item *cart.Item) error {
	args := m.Called(ctx, userID, item)
	return args.Error(0)
}

func (m *mockCartRepository) RemoveItem(ctx context.Context, userID string, bookID uint) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCartRepository) ClearByUserID(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockPaymentGateway struct {
	mock.Mock
}

func (m *mockPaymentGateway) CreatePaymentURL(ctx context.Context, req paymentgateway.CreatePaymentRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockPaymentGateway) VerifyCallback(params map[string]string) bool {
	args := m.Called(params)
	return args.Bool(0)
}

func (m *mockPaymentGateway) ParseCallback(params map[string]string) (*paymentgateway.CallbackData, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentgateway.CallbackData), args.Error(1)
}

// fakeTxManager runs fn inline and remembers whether it was rolled back.
type fakeTxManager struct {
	mu         sync.Mutex
	calls      int
	rolledBack int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	err := fn(ctx)
	if err != nil {
		f.mu.Lock()
		f.rolledBack++
		f.mu.Unlock()
	}
	return err
}

type mockOrderLocker struct {
	mock.Mock
}

func (m *mockOrderLocker) TryLock(ctx context.Context, orderID uint) (func(context.Context) error, bool, error) {
	args := m.Called(ctx, orderID)
	release, _ := args.Get(0).(func(context.Context) error)
	return release, args.Bool(1), args.Error(2)
}

type mockPaymentNotifier struct {
	mock.Mock
}

func (m *mockPaymentNotifier) SendPaymentConfirmation(o *order.Order) error {
	args := m.Called(o)
	return args.Error(0)
}

// inlineRunner runs background work synchronously.
type inlineRunner struct {
	names []string
}

func (r *inlineRunner) Go(name string, fn func()) {
	r.names = append(r.names, name)
	fn()
}
