package http

import (
	"context"
	"errors"

	"github.com/bookstore-vn/bookstore/internal/infrastructure/metrics"
	"github.com/bookstore-vn/bookstore/internal/interfaces/http/middleware"
	"github.com/bookstore-vn/bookstore/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log.Named("http")))
	c.engine.Use(middleware.Recovery(c.log))

	c.engine.GET("/healthz", c.hdlrs.healthHandler.HealthCheck)
	if c.cfg.Metrics.Enabled {
		c.engine.GET("/metrics", metrics.Handler())
	}

	routes.SetupPaymentRoutes(c.engine, &routes.PaymentRouteConfig{
		PaymentHandler: c.hdlrs.paymentHandler,
		AuthMiddleware: c.authMiddleware,
	})
	routes.SetupShopRoutes(c.engine, &routes.ShopRouteConfig{
		CartHandler:    c.hdlrs.cartHandler,
		OrderHandler:   c.hdlrs.orderHandler,
		AuthMiddleware: c.authMiddleware,
	})
}

type noDB struct{}

func (noDB) PingContext(context.Context) error {
	return errors.New("database handle unavailable")
}
