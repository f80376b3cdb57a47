package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartUsecases "github.com/bookstore-vn/bookstore/internal/application/cart/usecases"
	"github.com/bookstore-vn/bookstore/internal/interfaces/http/middleware"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
	"github.com/bookstore-vn/bookstore/internal/shared/utils"
)

type CartHandler struct {
	addItemUC    addCartItemUseCase
	getCartUC    getCartUseCase
	removeItemUC removeCartItemUseCase
	logger       logger.Interface
}

func NewCartHandler(addItemUC addCartItemUseCase, getCartUC getCartUseCase, removeItemUC removeCartItemUseCase, logger logger.Interface) *CartHandler {
	return &CartHandler{addItemUC: addItemUC, getCartUC: getCartUC, removeItemUC: removeItemUC, logger: logger}
}

type AddCartItemRequest struct {
	BookID   uint `json:"book_id" validate:"required,gt=0"`
	Quantity int  `json:"quantity" validate:"required,gt=0"`
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("failed to bind cart request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.addItemUC.Execute(c.Request.Context(), cartUsecases.AddCartItemCommand{
		UserID:   userID,
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "item added to cart", result)
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.getCartUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RemoveItem handles DELETE /cart/items/:book_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	bookID, err := utils.ParseUintParam(c, "book_id", "book")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.removeItemUC.Execute(c.Request.Context(), cartUsecases.RemoveCartItemCommand{
		UserID: userID,
		BookID: bookID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "item removed from cart", result)
}
