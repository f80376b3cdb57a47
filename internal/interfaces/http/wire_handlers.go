package http

import (
	"github.com/bookstore-vn/bookstore/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler  *handlers.HealthHandler
	paymentHandler *handlers.PaymentHandler
	orderHandler   *handlers.OrderHandler
	cartHandler    *handlers.CartHandler
}

func (c *Container) initHandlers() {
	var pinger handlers.Pinger = noDB{}
	if sqlDB, err := c.db.DB(); err == nil {
		pinger = sqlDB
	} else {
		c.log.Warnw("health check cannot reach the database handle", "error", err)
	}

	c.hdlrs = &allHandlers{
		healthHandler:  handlers.NewHealthHandler(pinger),
		paymentHandler: handlers.NewPaymentHandler(c.ucs.checkoutUC, c.ucs.payOrderUC, c.ucs.vnpayCallbackUC, c.log.Named("payment-handler")),
		orderHandler:   handlers.NewOrderHandler(c.ucs.getOrderUC, c.ucs.listOrdersUC),
		cartHandler:    handlers.NewCartHandler(c.ucs.addCartItemUC, c.ucs.getCartUC, c.ucs.removeCartItemUC, c.log.Named("cart-handler")),
	}
}
