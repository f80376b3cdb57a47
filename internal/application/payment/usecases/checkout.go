package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bookstore-vn/bookstore/internal/application/payment/paymentgateway"
	"github.com/bookstore-vn/bookstore/internal/domain/cart"
	"github.com/bookstore-vn/bookstore/internal/domain/order"
	vo "github.com/bookstore-vn/bookstore/internal/domain/order/valueobjects"
	apperrors "github.com/bookstore-vn/bookstore/internal/shared/errors"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

type CheckoutCommand struct {
	UserID   string
	Customer order.Customer
	Client   paymentgateway.ClientInfo
}

type CheckoutResult struct {
	OrderID     uint
	TotalAmount decimal.Decimal
	PaymentURL  string
}

// CheckoutUseCase turns the user's cart into an order awaiting VNPay payment
// and returns the signed redirect URL.
type CheckoutUseCase struct {
	orderRepo order.Repository
	cartRepo  cart.Repository
	txMgr     TransactionManager
	gateway   paymentgateway.PaymentGateway
	logger    logger.Interface
}

func NewCheckoutUseCase(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	txMgr TransactionManager,
	gateway paymentgateway.PaymentGateway,
	logger logger.Interface,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		txMgr:     txMgr,
		gateway:   gateway,
		logger:    logger,
	}
}

func (uc *CheckoutUseCase) Execute(ctx context.Context, cmd CheckoutCommand) (*CheckoutResult, error) {
	if cmd.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("user is required")
	}

	var newOrder *order.Order
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		c, err := uc.cartRepo.GetByUserID(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if c.IsEmpty() {
			return apperrors.NewValidationError("cart is empty")
		}

		items := make([]order.Item, len(c.Items))
		for i, line := range c.Items {
			items[i] = order.Item{
				BookID:    line.BookID,
				Title:     line.Title,
				Quantity:  line.Quantity,
				UnitPrice: vo.NewMoney(line.UnitPrice, vo.CurrencyVND),
			}
		}

		newOrder, err = order.NewOrder(cmd.UserID, cmd.Customer, items)
		if err != nil {
			return apperrors.NewValidationError("invalid order", err.Error())
		}
		if err := newOrder.AwaitPayment(); err != nil {
			return err
		}
		if cmd.Client.IP != "" {
			newOrder.SetMetadata("client_ip", cmd.Client.IP)
		}

		return uc.orderRepo.Create(txCtx, newOrder)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create order at checkout", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewInternalError("failed to create order")
	}

	paymentURL, err := uc.gateway.CreatePaymentURL(ctx, paymentgateway.CreatePaymentRequest{
		OrderID: newOrder.ID(),
		Amount:  newOrder.TotalAmount().Amount(),
		Client:  cmd.Client,
	})
	if err != nil {
		// The order stays AwaitingPayment and can be paid from the pay endpoint.
		uc.logger.Errorw("failed to create payment url", "order_id", newOrder.ID(), "error", err)
		return nil, apperrors.NewInternalError("failed to create payment url")
	}

	uc.logger.Infow("order created for vnpay checkout",
		"order_id", newOrder.ID(),
		"user_id", cmd.UserID,
		"total", newOrder.TotalAmount().String(),
		"items", len(newOrder.Items()))

	return &CheckoutResult{
		OrderID:     newOrder.ID(),
		TotalAmount: newOrder.TotalAmount().Amount(),
		PaymentURL:  paymentURL,
	}, nil
}
