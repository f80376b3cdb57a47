package usecases

import (
	"context"

	"github.com/bookstore-vn/bookstore/internal/application/order/dto"
	"github.com/bookstore-vn/bookstore/internal/domain/order"
	apperrors "github.com/bookstore-vn/bookstore/internal/shared/errors"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

// ListOrdersUseCase returns the order history of a user, newest first.
type ListOrdersUseCase struct {
	orderRepo order.Repository
	logger    logger.Interface
}

func NewListOrdersUseCase(orderRepo order.Repository, logger logger.Interface) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo, logger: logger}
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, userID string) ([]*dto.OrderDTO, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("user is required")
	}

	orders, err := uc.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list orders", "user_id", userID, "error", err)
		return nil, apperrors.NewInternalError("failed to list orders")
	}

	return dto.ToOrderDTOs(orders), nil
}
