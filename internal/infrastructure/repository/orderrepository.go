package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bookstore-vn/bookstore/internal/domain/order"
	vo "github.com/bookstore-vn/bookstore/internal/domain/order/valueobjects"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/persistence/mappers"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/persistence/models"
	"github.com/bookstore-vn/bookstore/internal/shared/biztime"
	"github.com/bookstore-vn/bookstore/internal/shared/db"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

var _ order.Repository = (*OrderRepository)(nil)

type OrderRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewOrderRepository(db *gorm.DB, log logger.Interface) *OrderRepository {
	return &OrderRepository{db: db, logger: log}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	model := mappers.OrderToModel(o)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create order", "user_id", o.UserID(), "error", err)
		return fmt.Errorf("failed to create order: %w", err)
	}

	o.SetID(model.ID)
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	var model models.OrderModel

	if err := db.GetTxFromContext(ctx, r.db).
		Preload("Items").
		First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return mappers.OrderToDomain(&model)
}

func (r *OrderRepository) ListByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	var rows []models.OrderModel

	if err := db.GetTxFromContext(ctx, r.db).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*order.Order, 0, len(rows))
	for i := range rows {
		o, err := mappers.OrderToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	model := mappers.OrderToModel(o)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrderModel{}).
		Where("id = ?", model.ID).
		Scopes(db.Unpaid()).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"failure_code": model.FailureCode,
			"metadata":     model.Metadata,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update order", "order_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update order: %w", result.Error)
	}

	// MySQL reports 0 for a no-op update, so a miss is resolved by reading the row.
	if result.RowsAffected == 0 {
		if err := r.explainMiss(ctx, model.ID); !errors.Is(err, order.ErrOrderNotPayable) {
			return err
		}
	}
	return nil
}

// MarkPaid is a compare-and-set on is_paid and status. Exactly one of any
// number of concurrent callers observes true. Orders that never started a
// payment are refused with ErrOrderNotPayable.
func (r *OrderRepository) MarkPaid(ctx context.Context, id uint, info vo.PaymentInfo, paidAt time.Time) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrderModel{}).
		Where("id = ?", id).
		Scopes(db.Unpaid(), db.StatusIn(vo.SettleableStatuses()...)).
		Updates(map[string]interface{}{
			"status":         vo.OrderStatusPaid.String(),
			"is_paid":        true,
			"payment_method": vo.PaymentMethodVNPay,
			"bank_code":      info.BankCode,
			"transaction_no": info.TransactionNo,
			"pay_date":       info.PayDate,
			"failure_code":   "",
			"paid_at":        paidAt,
			"updated_at":     biztime.NowUTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to mark order paid", "order_id", id, "error", result.Error)
		return false, fmt.Errorf("failed to mark order paid: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		if err := r.explainMiss(ctx, id); err != nil && !errors.Is(err, order.ErrOrderAlreadyPaid) {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (r *OrderRepository) MarkPaymentFailed(ctx context.Context, id uint, responseCode string) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrderModel{}).
		Where("id = ?", id).
		Scopes(db.Unpaid(), db.StatusIn(vo.SettleableStatuses()...)).
		Updates(map[string]interface{}{
			"status":       vo.OrderStatusPaymentFailed.String(),
			"failure_code": responseCode,
			"updated_at":   biztime.NowUTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to mark order payment failed", "order_id", id, "error", result.Error)
		return false, fmt.Errorf("failed to mark order payment failed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		if err := r.explainMiss(ctx, id); err != nil && !errors.Is(err, order.ErrOrderAlreadyPaid) {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// explainMiss turns a conditional update that touched no row into
// ErrOrderNotFound, ErrOrderAlreadyPaid, ErrOrderNotPayable or nil.
func (r *OrderRepository) explainMiss(ctx context.Context, id uint) error {
	var model models.OrderModel
	err := db.GetTxFromContext(ctx, r.db).
		Select("id", "is_paid", "status").
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order.ErrOrderNotFound
		}
		return fmt.Errorf("failed to get order: %w", err)
	}
	if model.IsPaid {
		return order.ErrOrderAlreadyPaid
	}
	if !vo.OrderStatus(model.Status).CanSettle() {
		return order.ErrOrderNotPayable
	}
	return nil
}
