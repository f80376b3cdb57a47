package http

import (
	cartUsecases "github.com/bookstore-vn/bookstore/internal/application/cart/usecases"
	orderUsecases "github.com/bookstore-vn/bookstore/internal/application/order/usecases"
	paymentUsecases "github.com/bookstore-vn/bookstore/internal/application/payment/usecases"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/cache"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/email"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Payment
	checkoutUC      *paymentUsecases.CheckoutUseCase
	payOrderUC      *paymentUsecases.PayOrderUseCase
	vnpayCallbackUC *paymentUsecases.HandleVNPayCallbackUseCase

	// Order
	getOrderUC   *orderUsecases.GetOrderUseCase
	listOrdersUC *orderUsecases.ListOrdersUseCase

	// Cart
	addCartItemUC    *cartUsecases.AddCartItemUseCase
	getCartUC        *cartUsecases.GetCartUseCase
	removeCartItemUC *cartUsecases.RemoveCartItemUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	paymentLog := c.log.Named("payment")

	callbackUC := paymentUsecases.NewHandleVNPayCallbackUseCase(r.orderRepo, r.cartRepo, r.txMgr, c.gateway, paymentLog)
	if c.redis != nil {
		locker := cache.NewRedisOrderLocker(c.redis, cache.DefaultOrderLockPrefix, cache.DefaultOrderLockTTL)
		callbackUC.SetOrderLocker(locker, 0)
		c.log.Infow("vnpay callback order lock enabled", "prefix", cache.DefaultOrderLockPrefix)
	}
	if c.cfg.Email.Enabled() {
		callbackUC.SetPaymentNotifier(email.NewSMTPEmailService(c.cfg.Email), c.background)
		c.log.Infow("payment confirmation email enabled", "smtp_host", c.cfg.Email.SMTPHost)
	}

	c.ucs = &allUseCases{
		checkoutUC:       paymentUsecases.NewCheckoutUseCase(r.orderRepo, r.cartRepo, r.txMgr, c.gateway, paymentLog),
		payOrderUC:       paymentUsecases.NewPayOrderUseCase(r.orderRepo, c.gateway, paymentLog),
		vnpayCallbackUC:  callbackUC,
		getOrderUC:       orderUsecases.NewGetOrderUseCase(r.orderRepo, c.log.Named("order")),
		listOrdersUC:     orderUsecases.NewListOrdersUseCase(r.orderRepo, c.log.Named("order")),
		addCartItemUC:    cartUsecases.NewAddCartItemUseCase(r.cartRepo, r.bookRepo, c.log.Named("cart")),
		getCartUC:        cartUsecases.NewGetCartUseCase(r.cartRepo, c.log.Named("cart")),
		removeCartItemUC: cartUsecases.NewRemoveCartItemUseCase(r.cartRepo, c.log.Named("cart")),
	}
}
