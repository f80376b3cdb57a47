package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bookstore-vn/bookstore/internal/application/payment/paymentgateway"
	"github.com/bookstore-vn/bookstore/internal/domain/cart"
	"github.com/bookstore-vn/bookstore/internal/domain/order"
	vo "github.com/bookstore-vn/bookstore/internal/domain/order/valueobjects"
	apperrors "github.com/bookstore-vn/bookstore/internal/shared/errors"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

var testClient = paymentgateway.ClientInfo{IP: "203.0.113.7", Scheme: "https", Host: "shop.example.vn"}

func checkoutCommand() CheckoutCommand {
	return CheckoutCommand{
		UserID:   "user-1",
		Customer: order.Customer{Name: "Nguyễn Văn A", Email: "a@example.vn", MobileNumber: "0901234567", Address: "Hà Nội"},
		Client:   testClient,
	}
}

func TestCheckoutUseCase_Execute_Success(t *testing.T) {
	orders := new(mockOrderRepository)
	carts := new(mockCartRepository)
	gateway := new(mockPaymentGateway)
	tx := &fakeTxManager{}

	userCart := &cart.Cart{UserID: "user-1", Items: []*cart.Item{
		{BookID: 1, Title: "Mắt Biếc", Quantity: 2, UnitPrice: decimal.NewFromInt(50000)},
		{BookID: 2, Title: "Kính Vạn Hoa", Quantity: 1, UnitPrice: decimal.NewFromInt(50000)},
	}}
	carts.On("GetByUserID", mock.Anything, "user-1").Return(userCart, nil)
	orders.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*order.Order).SetID(1024)
		}).
		Return(nil)
	gateway.On("CreatePaymentURL", mock.Anything, mock.MatchedBy(func(req paymentgateway.CreatePaymentRequest) bool {
		return req.OrderID == 1024 && req.Amount.Equal(decimal.NewFromInt(150000)) && req.Client == testClient
	})).Return("https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?vnp_TxnRef=1024", nil)

	uc := NewCheckoutUseCase(orders, carts, tx, gateway, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), checkoutCommand())

	require.NoError(t, err)
	assert.Equal(t, uint(1024), result.OrderID)
	assert.True(t, decimal.NewFromInt(150000).Equal(result.TotalAmount))
	assert.Contains(t, result.PaymentURL, "vnp_TxnRef=1024")
	assert.Equal(t, 1, tx.calls)

	created := orders.Calls[0].Arguments.Get(1).(*order.Order)
	assert.Equal(t, vo.OrderStatusAwaitingPayment, created.Status())
	assert.Len(t, created.Items(), 2)
	assert.Equal(t, "203.0.113.7", created.Metadata()["client_ip"])

	orders.AssertExpectations(t)
	carts.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestCheckoutUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		cmd      func() CheckoutCommand
		cart     *cart.Cart
		cartErr  error
		wantType apperrors.ErrorType
	}{
		{
			name:     "anonymous user",
			cmd:      func() CheckoutCommand { c := checkoutCommand(); c.UserID = ""; return c },
			wantType: apperrors.ErrorTypeUnauthorized,
		},
		{
			name:     "empty cart",
			cmd:      checkoutCommand,
			cart:     &cart.Cart{UserID: "user-1"},
			wantType: apperrors.ErrorTypeValidation,
		},
		{
			name: "missing customer email",
			cmd:  func() CheckoutCommand { c := checkoutCommand(); c.Customer.Email = ""; return c },
			cart: &cart.Cart{UserID: "user-1", Items: []*cart.Item{
				{BookID: 1, Title: "Mắt Biếc", Quantity: 1, UnitPrice: decimal.NewFromInt(50000)},
			}},
			wantType: apperrors.ErrorTypeValidation,
		},
		{
			name:     "cart storage failure",
			cmd:      checkoutCommand,
			cartErr:  errors.New("db down"),
			wantType: apperrors.ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mockOrderRepository)
			carts := new(mockCartRepository)
			gateway := new(mockPaymentGateway)

			if tt.cart != nil || tt.cartErr != nil {
				carts.On("GetByUserID", mock.Anything, "user-1").Return(tt.cart, tt.cartErr)
			}

			uc := NewCheckoutUseCase(orders, carts, &fakeTxManager{}, gateway, logger.NewNopLogger())
			result, err := uc.Execute(context.Background(), tt.cmd())

			assert.Nil(t, result)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr, "got %v", err)
			assert.Equal(t, tt.wantType, appErr.Type)
			orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			gateway.AssertNotCalled(t, "CreatePaymentURL", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckoutUseCase_Execute_GatewayFailure(t *testing.T) {
	orders := new(mockOrderRepository)
	carts := new(mockCartRepository)
	gateway := new(mockPaymentGateway)

	carts.On("GetByUserID", mock.Anything, "user-1").Return(&cart.Cart{UserID: "user-1", Items: []*cart.Item{
		{BookID: 1, Title: "Mắt Biếc", Quantity: 1, UnitPrice: decimal.NewFromInt(50000)},
	}}, nil)
	orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	gateway.On("CreatePaymentURL", mock.Anything, mock.Anything).Return("", errors.New("relative return url needs the request host"))

	uc := NewCheckoutUseCase(orders, carts, &fakeTxManager{}, gateway, logger.NewNopLogger())
	_, err := uc.Execute(context.Background(), checkoutCommand())

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	orders.AssertExpectations(t)
}
