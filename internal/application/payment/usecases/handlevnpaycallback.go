package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookstore-vn/bookstore/internal/application/payment/paymentgateway"
	"github.com/bookstore-vn/bookstore/internal/domain/cart"
	"github.com/bookstore-vn/bookstore/internal/domain/order"
	vo "github.com/bookstore-vn/bookstore/internal/domain/order/valueobjects"
	"github.com/bookstore-vn/bookstore/internal/shared/biztime"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
	"github.com/bookstore-vn/bookstore/internal/shared/utils"
)

// CallbackOutcome is the result of processing a gateway callback. Rejections
// are outcomes, not errors; errors mean the callback could not be processed.
type CallbackOutcome string

const (
	OutcomePaid             CallbackOutcome = "paid"
	OutcomeAlreadyPaid      CallbackOutcome = "already_paid"
	OutcomePaymentFailed    CallbackOutcome = "payment_failed"
	OutcomeInvalidSignature CallbackOutcome = "invalid_signature"
	OutcomeMalformed        CallbackOutcome = "malformed"
	OutcomeOrderNotFound    CallbackOutcome = "order_not_found"
	OutcomeAmountMismatch   CallbackOutcome = "amount_mismatch"
	OutcomeNotPayable       CallbackOutcome = "order_not_payable"
)

func (o CallbackOutcome) String() string {
	return string(o)
}

type HandleVNPayCallbackResult struct {
	Outcome      CallbackOutcome
	OrderID      uint
	ResponseCode string
	// Order is the order after processing; nil unless it was found.
	Order *order.Order
}

const (
	defaultLockWait  = 2 * time.Second
	lockPollInterval = 100 * time.Millisecond
)

type HandleVNPayCallbackUseCase struct {
	orderRepo order.Repository
	cartRepo  cart.Repository
	txMgr     TransactionManager
	gateway   paymentgateway.PaymentGateway
	logger    logger.Interface

	locker   OrderLocker      // Optional
	lockWait time.Duration
	notifier PaymentNotifier  // Optional
	runner   BackgroundRunner // Optional, required by notifier
}

func NewHandleVNPayCallbackUseCase(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	txMgr TransactionManager,
	gateway paymentgateway.PaymentGateway,
	logger logger.Interface,
) *HandleVNPayCallbackUseCase {
	return &HandleVNPayCallbackUseCase{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		txMgr:     txMgr,
		gateway:   gateway,
		logger:    logger,
		lockWait:  defaultLockWait,
	}
}

// SetOrderLocker sets the per-order lock (optional dependency injection).
// wait bounds how long a callback waits for a concurrent one on the same order.
func (uc *HandleVNPayCallbackUseCase) SetOrderLocker(locker OrderLocker, wait time.Duration) {
	uc.locker = locker
	if wait > 0 {
		uc.lockWait = wait
	}
}

// SetPaymentNotifier sets the confirmation sender (optional dependency injection).
func (uc *HandleVNPayCallbackUseCase) SetPaymentNotifier(notifier PaymentNotifier, runner BackgroundRunner) {
	uc.notifier = notifier
	uc.runner = runner
}

func (uc *HandleVNPayCallbackUseCase) Execute(ctx context.Context, params map[string]string) (*HandleVNPayCallbackResult, error) {
	txnRef := params["vnp_TxnRef"]

	if !uc.gateway.VerifyCallback(params) {
		uc.logger.Warnw("vnpay callback signature rejected",
			"txn_ref", txnRef,
			"response_code", params["vnp_ResponseCode"])
		return &HandleVNPayCallbackResult{Outcome: OutcomeInvalidSignature}, nil
	}

	data, err := uc.gateway.ParseCallback(params)
	if err != nil {
		if errors.Is(err, paymentgateway.ErrMissingCallbackField) {
			uc.logger.Warnw("vnpay callback missing fields", "txn_ref", txnRef, "error", err)
			return &HandleVNPayCallbackResult{Outcome: OutcomeInvalidSignature}, nil
		}
		uc.logger.Warnw("malformed vnpay callback", "txn_ref", txnRef, "error", err)
		return &HandleVNPayCallbackResult{Outcome: OutcomeMalformed}, nil
	}

	result := &HandleVNPayCallbackResult{OrderID: data.OrderID, ResponseCode: data.ResponseCode}

	release, err := uc.acquireLock(ctx, data.OrderID)
	if err != nil {
		return nil, err
	}
	defer release()

	o, err := uc.orderRepo.GetByID(ctx, data.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			uc.logger.Warnw("vnpay callback for unknown order", "order_id", data.OrderID)
			result.Outcome = OutcomeOrderNotFound
			return result, nil
		}
		return nil, fmt.Errorf("failed to get order %d: %w", data.OrderID, err)
	}
	result.Order = o

	if o.IsPaid() {
		uc.logger.Infow("vnpay callback for paid order ignored",
			"order_id", o.ID(),
			"response_code", data.ResponseCode)
		result.Outcome = OutcomeAlreadyPaid
		return result, nil
	}

	if !o.Status().CanSettle() {
		uc.logger.Warnw("vnpay callback for order that never started a payment",
			"order_id", o.ID(),
			"status", o.Status(),
			"response_code", data.ResponseCode)
		result.Outcome = OutcomeNotPayable
		return result, nil
	}

	if data.IsSuccess() {
		result.Outcome, err = uc.handleSuccess(ctx, o, data)
	} else {
		result.Outcome, err = uc.handleFailure(ctx, o, data)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *HandleVNPayCallbackUseCase) handleSuccess(ctx context.Context, o *order.Order, data *paymentgateway.CallbackData) (CallbackOutcome, error) {
	if data.HasAmount {
		if err := o.ValidateCallbackAmount(data.Amount); err != nil {
			uc.logger.Errorw("vnpay callback amount mismatch",
				"order_id", o.ID(),
				"expected_amount", o.TotalAmount().MinorUnits(),
				"callback_amount", data.Amount,
				"transaction_no", data.TransactionNo)
			return OutcomeAmountMismatch, nil
		}
	}

	info := vo.PaymentInfo{
		BankCode:      data.BankCode,
		TransactionNo: data.TransactionNo,
		PayDate:       data.PayDate,
	}

	var applied bool
	var cleared int64
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		applied, err = uc.orderRepo.MarkPaid(txCtx, o.ID(), info, biztime.NowUTC())
		if err != nil {
			return err
		}
		if !applied {
			return nil
		}
		cleared, err = uc.cartRepo.ClearByUserID(txCtx, o.UserID())
		return err
	})
	if errors.Is(err, order.ErrOrderNotPayable) {
		uc.logger.Warnw("vnpay payment refused by order state", "order_id", o.ID())
		return OutcomeNotPayable, nil
	}
	if err != nil {
		uc.logger.Errorw("failed to record vnpay payment", "order_id", o.ID(), "error", err)
		return "", fmt.Errorf("failed to record payment for order %d: %w", o.ID(), err)
	}

	if !applied {
		uc.logger.Infow("vnpay payment already recorded by a concurrent callback", "order_id", o.ID())
		return OutcomeAlreadyPaid, nil
	}

	if _, err := o.MarkAsPaid(info); err != nil {
		uc.logger.Warnw("order state diverged from stored paid state", "order_id", o.ID(), "error", err)
	}

	uc.logger.Infow("vnpay payment recorded",
		"order_id", o.ID(),
		"transaction_no", data.TransactionNo,
		"bank_code", data.BankCode,
		"cart_lines_cleared", cleared)

	uc.notifyPaid(o)
	return OutcomePaid, nil
}

func (uc *HandleVNPayCallbackUseCase) handleFailure(ctx context.Context, o *order.Order, data *paymentgateway.CallbackData) (CallbackOutcome, error) {
	applied, err := uc.orderRepo.MarkPaymentFailed(ctx, o.ID(), data.ResponseCode)
	if errors.Is(err, order.ErrOrderNotPayable) {
		uc.logger.Warnw("vnpay payment failure refused by order state", "order_id", o.ID())
		return OutcomeNotPayable, nil
	}
	if err != nil {
		uc.logger.Errorw("failed to record vnpay payment failure", "order_id", o.ID(), "error", err)
		return "", fmt.Errorf("failed to record payment failure for order %d: %w", o.ID(), err)
	}
	if !applied {
		return OutcomeAlreadyPaid, nil
	}

	if err := o.MarkPaymentFailed(data.ResponseCode); err != nil {
		uc.logger.Warnw("order state diverged from stored failed state", "order_id", o.ID(), "error", err)
	}

	uc.logger.Infow("vnpay payment failed",
		"order_id", o.ID(),
		"response_code", data.ResponseCode,
		"transaction_status", data.TransactionStatus)
	return OutcomePaymentFailed, nil
}

// acquireLock waits up to lockWait for the order lock. When the lock stays
// taken processing continues unlocked; MarkPaid alone decides the winner.
func (uc *HandleVNPayCallbackUseCase) acquireLock(ctx context.Context, orderID uint) (func(), error) {
	noop := func() {}
	if uc.locker == nil {
		return noop, nil
	}

	deadline := time.Now().Add(uc.lockWait)
	for {
		release, ok, err := uc.locker.TryLock(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("failed to lock order %d: %w", orderID, err)
		}
		if ok {
			return func() {
				if err := release(context.WithoutCancel(ctx)); err != nil {
					uc.logger.Warnw("failed to release order lock", "order_id", orderID, "error", err)
				}
			}, nil
		}
		if time.Now().After(deadline) {
			uc.logger.Warnw("order lock busy, continuing without it", "order_id", orderID)
			return noop, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockPollInterval):
		}
	}
}

func (uc *HandleVNPayCallbackUseCase) notifyPaid(o *order.Order) {
	if uc.notifier == nil || uc.runner == nil {
		return
	}
	uc.runner.Go("vnpay-payment-confirmation", func() {
		if err := uc.notifier.SendPaymentConfirmation(o); err != nil {
			uc.logger.Warnw("failed to send payment confirmation", "order_id", o.ID(), "error", err)
			return
		}
		uc.logger.Infow("payment confirmation sent", "order_id", o.ID(), "to", utils.MaskEmail(o.Customer().Email))
	})
}
