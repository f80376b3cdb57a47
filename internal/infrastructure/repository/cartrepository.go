package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bookstore-vn/bookstore/internal/domain/cart"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/persistence/mappers"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/persistence/models"
	"github.com/bookstore-vn/bookstore/internal/shared/biztime"
	"github.com/bookstore-vn/bookstore/internal/shared/db"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

var _ cart.Repository = (*CartRepository)(nil)

type CartRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCartRepository(db *gorm.DB, log logger.Interface) *CartRepository {
	return &CartRepository{db: db, logger: log}
}

func (r *CartRepository) GetByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	var rows []models.CartItemModel

	// Lines whose book was withdrawn from the catalog are not offered for checkout.
	if err := db.GetTxFromContext(ctx, r.db).
		Table("cart_items c").
		Select("c.*").
		Joins("JOIN books b ON b.id = c.book_id").
		Scopes(db.NotDeletedWithAlias("b")).
		Where("c.user_id = ?", userID).
		Order("c.id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	c := &cart.Cart{UserID: userID, Items: make([]*cart.Item, len(rows))}
	for i := range rows {
		c.Items[i] = mappers.CartItemToDomain(&rows[i])
	}
	return c, nil
}

func (r *CartRepository) AddItem(ctx context.Context, userID string, item *cart.Item) error {
	model := mappers.CartItemToModel(userID, item)

	// On conflict (user_id, book_id) add to the quantity and refresh the price.
	result := db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "book_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", item.Quantity),
			"unit_price": item.UnitPrice,
			"title":      item.Title,
			"updated_at": biztime.NowUTC(),
		}),
	}).Create(model)

	if result.Error != nil {
		r.logger.Errorw("failed to add cart item", "user_id", userID, "book_id", item.BookID, "error", result.Error)
		return fmt.Errorf("failed to add cart item: %w", result.Error)
	}
	return nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID string, bookID uint) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.CartItemModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to remove cart item", "user_id", userID, "book_id", bookID, "error", result.Error)
		return false, fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *CartRepository) ClearByUserID(ctx context.Context, userID string) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Delete(&models.CartItemModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to clear cart", "user_id", userID, "error", result.Error)
		return 0, fmt.Errorf("failed to clear cart: %w", result.Error)
	}
	return result.RowsAffected, nil
}
