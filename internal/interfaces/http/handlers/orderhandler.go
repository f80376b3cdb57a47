package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderUsecases "github.com/bookstore-vn/bookstore/internal/application/order/usecases"
	"github.com/bookstore-vn/bookstore/internal/interfaces/http/middleware"
	"github.com/bookstore-vn/bookstore/internal/shared/utils"
)

type OrderHandler struct {
	getOrderUC   getOrderUseCase
	listOrdersUC listOrdersUseCase
}

func NewOrderHandler(getOrderUC getOrderUseCase, listOrdersUC listOrdersUseCase) *OrderHandler {
	return &OrderHandler{getOrderUC: getOrderUC, listOrdersUC: listOrdersUC}
}

// ListOrders handles GET /orders, the signed-in user's order history.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.listOrdersUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetOrder handles GET /orders/:id for the order's owner.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	orderID, err := utils.ParseUintParam(c, "id", "order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getOrderUC.Execute(c.Request.Context(), orderUsecases.GetOrderQuery{
		OrderID: orderID,
		UserID:  userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
