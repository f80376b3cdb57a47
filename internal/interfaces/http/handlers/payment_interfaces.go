package handlers

import (
	"context"

	cartdto "github.com/bookstore-vn/bookstore/internal/application/cart/dto"
	cartUsecases "github.com/bookstore-vn/bookstore/internal/application/cart/usecases"
	orderdto "github.com/bookstore-vn/bookstore/internal/application/order/dto"
	orderUsecases "github.com/bookstore-vn/bookstore/internal/application/order/usecases"
	paymentUsecases "github.com/bookstore-vn/bookstore/internal/application/payment/usecases"
)

type checkoutUseCase interface {
	Execute(ctx context.Context, cmd paymentUsecases.CheckoutCommand) (*paymentUsecases.CheckoutResult, error)
}

type payOrderUseCase interface {
	Execute(ctx context.Context, cmd paymentUsecases.PayOrderCommand) (string, error)
}

type vnpayCallbackUseCase interface {
	Execute(ctx context.Context, params map[string]string) (*paymentUsecases.HandleVNPayCallbackResult, error)
}

type getOrderUseCase interface {
	Execute(ctx context.Context, query orderUsecases.GetOrderQuery) (*orderdto.OrderDTO, error)
}

type listOrdersUseCase interface {
	Execute(ctx context.Context, userID string) ([]*orderdto.OrderDTO, error)
}

type addCartItemUseCase interface {
	Execute(ctx context.Context, cmd cartUsecases.AddCartItemCommand) (*cartdto.CartDTO, error)
}

type getCartUseCase interface {
	Execute(ctx context.Context, userID string) (*cartdto.CartDTO, error)
}

type removeCartItemUseCase interface {
	Execute(ctx context.Context, cmd cartUsecases.RemoveCartItemCommand) (*cartdto.CartDTO, error)
}
