package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bookstore-vn/bookstore/internal/domain/book"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/persistence/mappers"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/persistence/models"
	"github.com/bookstore-vn/bookstore/internal/shared/db"
)

var _ book.Repository = (*BookRepository)(nil)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// GetByID ignores soft-deleted books.
func (r *BookRepository) GetByID(ctx context.Context, id uint) (*book.Book, error) {
	var model models.BookModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return mappers.BookToDomain(&model), nil
}
