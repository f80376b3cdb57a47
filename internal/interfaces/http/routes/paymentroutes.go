package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bookstore-vn/bookstore/internal/interfaces/http/handlers"
	"github.com/bookstore-vn/bookstore/internal/interfaces/http/middleware"
)

// PaymentRouteConfig holds dependencies for payment routes.
type PaymentRouteConfig struct {
	PaymentHandler *handlers.PaymentHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupPaymentRoutes configures checkout and VNPay routes. Checkout and pay
// act for the signed-in user; the return and IPN URLs are called by VNPay and
// carry no user identity.
func SetupPaymentRoutes(engine *gin.Engine, cfg *PaymentRouteConfig) {
	engine.POST("/checkout/vnpay", cfg.AuthMiddleware.RequireUser(), cfg.PaymentHandler.Checkout)

	vnpay := engine.Group("/payments/vnpay")
	{
		vnpay.GET("/pay/:order_id", cfg.AuthMiddleware.RequireUser(), cfg.PaymentHandler.Pay)
		vnpay.GET("/return", cfg.PaymentHandler.Return)
		vnpay.GET("/ipn", cfg.PaymentHandler.IPN)
	}
}
