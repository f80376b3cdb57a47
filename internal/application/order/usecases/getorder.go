package usecases

import (
	"context"
	"errors"

	"github.com/bookstore-vn/bookstore/internal/application/order/dto"
	"github.com/bookstore-vn/bookstore/internal/domain/order"
	apperrors "github.com/bookstore-vn/bookstore/internal/shared/errors"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

type GetOrderQuery struct {
	OrderID uint
	UserID  string
}

// GetOrderUseCase returns an order to its owner. Orders of other users are
// reported as not found.
type GetOrderUseCase struct {
	orderRepo order.Repository
	logger    logger.Interface
}

func NewGetOrderUseCase(orderRepo order.Repository, logger logger.Interface) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo, logger: logger}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, query GetOrderQuery) (*dto.OrderDTO, error) {
	if query.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("user is required")
	}

	o, err := uc.orderRepo.GetByID(ctx, query.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, apperrors.NewNotFoundError("order not found")
		}
		uc.logger.Errorw("failed to get order", "order_id", query.OrderID, "error", err)
		return nil, apperrors.NewInternalError("failed to get order")
	}

	if !o.IsOwnedBy(query.UserID) {
		uc.logger.Warnw("order requested by non-owner", "order_id", query.OrderID, "user_id", query.UserID)
		return nil, apperrors.NewNotFoundError("order not found")
	}

	return dto.ToOrderDTO(o), nil
}
