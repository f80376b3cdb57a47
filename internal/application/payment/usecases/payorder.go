package usecases

import (
	"context"
	"errors"

	"github.com/bookstore-vn/bookstore/internal/application/payment/paymentgateway"
	"github.com/bookstore-vn/bookstore/internal/domain/order"
	apperrors "github.com/bookstore-vn/bookstore/internal/shared/errors"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

type PayOrderCommand struct {
	OrderID uint
	UserID  string
	Client  paymentgateway.ClientInfo
}

// PayOrderUseCase issues a fresh payment URL for an existing unpaid order of
// the requesting user. An order whose last attempt failed moves back to
// AwaitingPayment. Orders of other users are reported as not found.
type PayOrderUseCase struct {
	orderRepo order.Repository
	gateway   paymentgateway.PaymentGateway
	logger    logger.Interface
}

func NewPayOrderUseCase(orderRepo order.Repository, gateway paymentgateway.PaymentGateway, logger logger.Interface) *PayOrderUseCase {
	return &PayOrderUseCase{
		orderRepo: orderRepo,
		gateway:   gateway,
		logger:    logger,
	}
}

func (uc *PayOrderUseCase) Execute(ctx context.Context, cmd PayOrderCommand) (string, error) {
	if cmd.UserID == "" {
		return "", apperrors.NewUnauthorizedError("user is required")
	}

	o, err := uc.orderRepo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return "", apperrors.NewNotFoundError("order not found")
		}
		uc.logger.Errorw("failed to get order", "order_id", cmd.OrderID, "error", err)
		return "", apperrors.NewInternalError("failed to get order")
	}

	if !o.IsOwnedBy(cmd.UserID) {
		uc.logger.Warnw("payment requested by non-owner", "order_id", cmd.OrderID, "user_id", cmd.UserID)
		return "", apperrors.NewNotFoundError("order not found")
	}

	if o.IsPaid() {
		return "", apperrors.NewConflictError("order already paid")
	}

	previous := o.Status()
	if err := o.AwaitPayment(); err != nil {
		return "", apperrors.NewConflictError("order cannot be paid", err.Error())
	}
	if o.Status() != previous {
		if err := uc.orderRepo.Update(ctx, o); err != nil {
			if errors.Is(err, order.ErrOrderAlreadyPaid) {
				return "", apperrors.NewConflictError("order already paid")
			}
			uc.logger.Errorw("failed to update order", "order_id", o.ID(), "error", err)
			return "", apperrors.NewInternalError("failed to update order")
		}
	}

	paymentURL, err := uc.gateway.CreatePaymentURL(ctx, paymentgateway.CreatePaymentRequest{
		OrderID: o.ID(),
		Amount:  o.TotalAmount().Amount(),
		Client:  cmd.Client,
	})
	if err != nil {
		uc.logger.Errorw("failed to create payment url", "order_id", o.ID(), "error", err)
		return "", apperrors.NewInternalError("failed to create payment url")
	}

	uc.logger.Infow("payment url issued", "order_id", o.ID(), "previous_status", previous)
	return paymentURL, nil
}
