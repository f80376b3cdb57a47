package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/bookstore-vn/bookstore/internal/infrastructure/persistence/models"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

// AutoMigrateModels lists every table in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.BookModel{},
		&models.CartItemModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
	}
}

// AutoMigrateStrategy derives the schema from the gorm models. It backs the
// sqlite driver used for local development and tests.
type AutoMigrateStrategy struct {
	logger logger.Interface
}

func NewAutoMigrateStrategy(log logger.Interface) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *AutoMigrateStrategy) Migrate(db *gorm.DB) error {
	s.logger.Infow("starting auto migration")

	if err := db.AutoMigrate(AutoMigrateModels()...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	s.logger.Infow("auto migration completed successfully")
	return nil
}

func (s *AutoMigrateStrategy) GetName() string {
	return "automigrate"
}
