package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/bookstore-vn/bookstore/internal/domain/order/valueobjects"
)

// --- helpers ---

func vnd(amount int64) vo.Money {
	return vo.NewMoney(decimal.NewFromInt(amount), vo.CurrencyVND)
}

func validCustomer() Customer {
	return Customer{Name: "Nguyen Van A", Email: "a@example.vn", MobileNumber: "0900000000", Address: "Ha Noi"}
}

func validItems() []Item {
	return []Item{
		{BookID: 1, Title: "Dế Mèn Phiêu Lưu Ký", Quantity: 2, UnitPrice: vnd(50000)},
		{BookID: 2, Title: "Số Đỏ", Quantity: 1, UnitPrice: vnd(50000)},
	}
}

func awaitingOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("user-1", validCustomer(), validItems())
	require.NoError(t, err)
	o.SetID(1024)
	require.NoError(t, o.AwaitPayment())
	return o
}

func successInfo() vo.PaymentInfo {
	return vo.PaymentInfo{BankCode: "NCB", TransactionNo: "14012345", PayDate: "20240302003000"}
}

// =============================================================================
// Constructor
// =============================================================================

func TestNewOrder_ComputesTotalFromItems(t *testing.T) {
	o, err := NewOrder("user-1", validCustomer(), validItems())
	require.NoError(t, err)

	assert.True(t, o.TotalAmount().Equals(vnd(150000)))
	assert.Equal(t, int64(15000000), o.TotalAmount().MinorUnits())
	assert.Equal(t, vo.OrderStatusCreated, o.Status())
	assert.False(t, o.IsPaid())
	assert.Equal(t, vo.PaymentMethodVNPay, o.PaymentMethod())
	assert.NotNil(t, o.Metadata())
}

func TestNewOrder_Validation(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		customer Customer
		items    []Item
		wantErr  string
	}{
		{
			name:     "missing user",
			customer: validCustomer(),
			items:    validItems(),
			wantErr:  "user ID is required",
		},
		{
			name:    "missing customer email",
			userID:  "user-1",
			items:   validItems(),
			wantErr: "customer name and email are required",
		},
		{
			name:     "empty cart",
			userID:   "user-1",
			customer: validCustomer(),
			wantErr:  "at least one item",
		},
		{
			name:     "zero quantity",
			userID:   "user-1",
			customer: validCustomer(),
			items:    []Item{{BookID: 9, Quantity: 0, UnitPrice: vnd(1000)}},
			wantErr:  "invalid quantity",
		},
		{
			name:     "free items",
			userID:   "user-1",
			customer: validCustomer(),
			items:    []Item{{BookID: 9, Quantity: 1, UnitPrice: vnd(0)}},
			wantErr:  "total must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOrder(tt.userID, tt.customer, tt.items)
			assert.Nil(t, o)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

// =============================================================================
// State transitions
// =============================================================================

func TestMarkAsPaid_FromAwaitingPayment(t *testing.T) {
	o := awaitingOrder(t)

	applied, err := o.MarkAsPaid(successInfo())
	require.NoError(t, err)
	assert.True(t, applied)

	assert.Equal(t, vo.OrderStatusPaid, o.Status())
	assert.True(t, o.IsPaid())
	require.NotNil(t, o.Payment())
	assert.Equal(t, "NCB", o.Payment().BankCode)
	assert.Equal(t, "14012345", o.Payment().TransactionNo)
	assert.NotNil(t, o.PaidAt())
}

func TestMarkAsPaid_IsIdempotent(t *testing.T) {
	o := awaitingOrder(t)

	applied, err := o.MarkAsPaid(successInfo())
	require.NoError(t, err)
	require.True(t, applied)
	firstPaidAt := *o.PaidAt()

	applied, err = o.MarkAsPaid(vo.PaymentInfo{BankCode: "VCB", TransactionNo: "other"})
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, "NCB", o.Payment().BankCode, "second success must not overwrite payment details")
	assert.Equal(t, firstPaidAt, *o.PaidAt())
}

func TestMarkAsPaid_LateSuccessAfterFailure(t *testing.T) {
	o := awaitingOrder(t)
	require.NoError(t, o.MarkPaymentFailed("24"))

	applied, err := o.MarkAsPaid(successInfo())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Empty(t, o.FailureCode())
}

func TestMarkAsPaid_RequiresPaymentStarted(t *testing.T) {
	o, err := NewOrder("user-1", validCustomer(), validItems())
	require.NoError(t, err)

	applied, err := o.MarkAsPaid(successInfo())
	assert.False(t, applied)
	assert.ErrorContains(t, err, "status created")
}

func TestMarkPaymentFailed(t *testing.T) {
	o := awaitingOrder(t)

	require.NoError(t, o.MarkPaymentFailed("24"))
	assert.Equal(t, vo.OrderStatusPaymentFailed, o.Status())
	assert.Equal(t, "24", o.FailureCode())
	assert.False(t, o.IsPaid())

	// repeated failure callback is harmless
	require.NoError(t, o.MarkPaymentFailed("24"))
}

func TestMarkPaymentFailed_DoesNotUndoPaid(t *testing.T) {
	o := awaitingOrder(t)
	_, err := o.MarkAsPaid(successInfo())
	require.NoError(t, err)

	assert.ErrorIs(t, o.MarkPaymentFailed("24"), ErrOrderAlreadyPaid)
	assert.Equal(t, vo.OrderStatusPaid, o.Status())
}

func TestAwaitPayment(t *testing.T) {
	t.Run("retry after failure", func(t *testing.T) {
		o := awaitingOrder(t)
		require.NoError(t, o.MarkPaymentFailed("11"))

		require.NoError(t, o.AwaitPayment())
		assert.Equal(t, vo.OrderStatusAwaitingPayment, o.Status())
		assert.Empty(t, o.FailureCode())
	})

	t.Run("already awaiting is a no-op", func(t *testing.T) {
		o := awaitingOrder(t)
		before := o.UpdatedAt()
		require.NoError(t, o.AwaitPayment())
		assert.Equal(t, before, o.UpdatedAt())
	})

	t.Run("paid order is rejected", func(t *testing.T) {
		o := awaitingOrder(t)
		_, err := o.MarkAsPaid(successInfo())
		require.NoError(t, err)
		assert.ErrorIs(t, o.AwaitPayment(), ErrOrderAlreadyPaid)
	})
}

func TestValidateCallbackAmount(t *testing.T) {
	o := awaitingOrder(t)

	assert.NoError(t, o.ValidateCallbackAmount(15000000))
	assert.ErrorContains(t, o.ValidateCallbackAmount(150000), "amount mismatch: expected 15000000, got 150000")
}

func TestReconstructOrder(t *testing.T) {
	paidAt := time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC)
	info := successInfo()

	o := ReconstructOrder(OrderReconstructParams{
		ID:          1024,
		UserID:      "user-1",
		Customer:    validCustomer(),
		TotalAmount: vnd(150000),
		Status:      vo.OrderStatusPaid,
		IsPaid:      true,
		Payment:     &info,
		PaidAt:      &paidAt,
	})

	assert.Equal(t, uint(1024), o.ID())
	assert.True(t, o.IsOwnedBy("user-1"))
	assert.False(t, o.IsOwnedBy("user-2"))
	assert.NotNil(t, o.Metadata())

	applied, err := o.MarkAsPaid(successInfo())
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestOrderStatus_CanSettle(t *testing.T) {
	assert.False(t, vo.OrderStatusCreated.CanSettle())
	assert.True(t, vo.OrderStatusAwaitingPayment.CanSettle())
	assert.True(t, vo.OrderStatusPaymentFailed.CanSettle())
	assert.False(t, vo.OrderStatusPaid.CanSettle())
	assert.ElementsMatch(t, []string{"awaiting_payment", "payment_failed"}, vo.SettleableStatuses())
}
