package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bookstore-vn/bookstore/internal/domain/book"
	"github.com/bookstore-vn/bookstore/internal/domain/cart"
	apperrors "github.com/bookstore-vn/bookstore/internal/shared/errors"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

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
	return m.Called(ctx, userID, item).Error(0)
}

func (m *mockCartRepository) RemoveItem(ctx context.Context, userID string, bookID uint) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCartRepository) ClearByUserID(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) GetByID(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func TestAddCartItemUseCase_Execute_PricesFromCatalog(t *testing.T) {
	carts := new(mockCartRepository)
	books := new(mockBookRepository)

	books.On("GetByID", mock.Anything, uint(7)).Return(&book.Book{ID: 7, Title: "Mắt Biếc", Price: decimal.NewFromInt(50000)}, nil)
	carts.On("AddItem", mock.Anything, "user-1", mock.MatchedBy(func(item *cart.Item) bool {
		return item.BookID == 7 && item.Quantity == 2 && item.UnitPrice.Equal(decimal.NewFromInt(50000)) && item.Title == "Mắt Biếc"
	})).Return(nil)
	carts.On("GetByUserID", mock.Anything, "user-1").Return(&cart.Cart{UserID: "user-1", Items: []*cart.Item{
		{BookID: 7, Title: "Mắt Biếc", Quantity: 2, UnitPrice: decimal.NewFromInt(50000)},
	}}, nil)

	uc := NewAddCartItemUseCase(carts, books, logger.NewNopLogger())
	got, err := uc.Execute(context.Background(), AddCartItemCommand{UserID: "user-1", BookID: 7, Quantity: 2})

	require.NoError(t, err)
	assert.Equal(t, "100000", got.Total)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "100000", got.Items[0].Subtotal)
	carts.AssertExpectations(t)
	books.AssertExpectations(t)
}

func TestAddCartItemUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		cmd      AddCartItemCommand
		bookErr  error
		wantType apperrors.ErrorType
	}{
		{name: "anonymous", cmd: AddCartItemCommand{BookID: 7, Quantity: 1}, wantType: apperrors.ErrorTypeUnauthorized},
		{name: "too many", cmd: AddCartItemCommand{UserID: "user-1", BookID: 7, Quantity: 100}, wantType: apperrors.ErrorTypeValidation},
		{name: "unknown book", cmd: AddCartItemCommand{UserID: "user-1", BookID: 9, Quantity: 1}, bookErr: book.ErrBookNotFound, wantType: apperrors.ErrorTypeNotFound},
		{name: "zero quantity", cmd: AddCartItemCommand{UserID: "user-1", BookID: 7, Quantity: 0}, wantType: apperrors.ErrorTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := new(mockCartRepository)
			books := new(mockBookRepository)
			if tt.bookErr != nil {
				books.On("GetByID", mock.Anything, tt.cmd.BookID).Return(nil, tt.bookErr)
			} else {
				books.On("GetByID", mock.Anything, tt.cmd.BookID).Return(&book.Book{ID: 7, Title: "Mắt Biếc", Price: decimal.NewFromInt(50000)}, nil).Maybe()
			}

			uc := NewAddCartItemUseCase(carts, books, logger.NewNopLogger())
			got, err := uc.Execute(context.Background(), tt.cmd)

			assert.Nil(t, got)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantType, appErr.Type)
			carts.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetCartUseCase_Execute_EmptyCart(t *testing.T) {
	carts := new(mockCartRepository)
	carts.On("GetByUserID", mock.Anything, "user-1").Return(&cart.Cart{UserID: "user-1"}, nil)

	got, err := NewGetCartUseCase(carts, logger.NewNopLogger()).Execute(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Equal(t, "0", got.Total)
}

func TestRemoveCartItemUseCase_Execute(t *testing.T) {
	carts := new(mockCartRepository)
	carts.On("RemoveItem", mock.Anything, "user-1", uint(7)).Return(true, nil)
	carts.On("GetByUserID", mock.Anything, "user-1").Return(&cart.Cart{UserID: "user-1", Items: []*cart.Item{
		{BookID: 9, Title: "Tôi thấy hoa vàng trên cỏ xanh", Quantity: 2, UnitPrice: decimal.NewFromInt(99000)},
	}}, nil)

	got, err := NewRemoveCartItemUseCase(carts, logger.NewNopLogger()).
		Execute(context.Background(), RemoveCartItemCommand{UserID: "user-1", BookID: 7})

	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, uint(9), got.Items[0].BookID)
	assert.Equal(t, 2, got.ItemCount)
	assert.Equal(t, "198000", got.Total)
	carts.AssertExpectations(t)
}

func TestRemoveCartItemUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		cmd       RemoveCartItemCommand
		removed   bool
		removeErr error
		wantType  apperrors.ErrorType
	}{
		{name: "anonymous", cmd: RemoveCartItemCommand{BookID: 7}, wantType: apperrors.ErrorTypeUnauthorized},
		{name: "book not in cart", cmd: RemoveCartItemCommand{UserID: "user-1", BookID: 7}, wantType: apperrors.ErrorTypeNotFound},
		{name: "storage failure", cmd: RemoveCartItemCommand{UserID: "user-1", BookID: 7}, removeErr: errors.New("db down"), wantType: apperrors.ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := new(mockCartRepository)
			if tt.cmd.UserID != "" {
				carts.On("RemoveItem", mock.Anything, tt.cmd.UserID, tt.cmd.BookID).Return(tt.removed, tt.removeErr)
			}

			got, err := NewRemoveCartItemUseCase(carts, logger.NewNopLogger()).Execute(context.Background(), tt.cmd)

			assert.Nil(t, got)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantType, appErr.Type)
			carts.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
			carts.AssertExpectations(t)
		})
	}
}
