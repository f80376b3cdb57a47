package db

import (
	"gorm.io/gorm"
)

// NotDeletedWithAlias filters out soft-deleted rows of the aliased table.
// Joined queries need it because gorm only applies soft delete to the model's own table.
//
//	db.Table("cart_items c").Joins("JOIN books b ON b.id = c.book_id").Scopes(db.NotDeletedWithAlias("b"))
func NotDeletedWithAlias(alias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias + ".deleted_at IS NULL")
	}
}

// Unpaid restricts an update or query to orders not yet marked paid.
// Combined with RowsAffected it turns an UPDATE into a compare-and-set.
func Unpaid() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_paid = ?", false)
	}
}

// StatusIn restricts a query or update to rows whose status is one of statuses.
func StatusIn(statuses ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status IN ?", statuses)
	}
}
