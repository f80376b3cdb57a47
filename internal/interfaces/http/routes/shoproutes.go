package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bookstore-vn/bookstore/internal/interfaces/http/handlers"
	"github.com/bookstore-vn/bookstore/internal/interfaces/http/middleware"
)

// ShopRouteConfig holds dependencies for the shopper's cart and order routes.
type ShopRouteConfig struct {
	CartHandler    *handlers.CartHandler
	OrderHandler   *handlers.OrderHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupShopRoutes(engine *gin.Engine, cfg *ShopRouteConfig) {
	cart := engine.Group("/cart")
	cart.Use(cfg.AuthMiddleware.RequireUser())
	{
		cart.GET("", cfg.CartHandler.GetCart)
		cart.POST("/items", cfg.CartHandler.AddItem)
		cart.DELETE("/items/:book_id", cfg.CartHandler.RemoveItem)
	}

	orders := engine.Group("/orders")
	orders.Use(cfg.AuthMiddleware.RequireUser())
	{
		orders.GET("", cfg.OrderHandler.ListOrders)
		orders.GET("/:id", cfg.OrderHandler.GetOrder)
	}
}
