package mappers

import (
	"github.com/bookstore-vn/bookstore/internal/domain/book"
	"github.com/bookstore-vn/bookstore/internal/domain/cart"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/persistence/models"
)

func CartItemToModel(userID string, item *cart.Item) *models.CartItemModel {
	return &models.CartItemModel{
		ID:        item.ID,
		UserID:    userID,
		BookID:    item.BookID,
		Title:     item.Title,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	}
}

func CartItemToDomain(model *models.CartItemModel) *cart.Item {
	return &cart.Item{
		ID:        model.ID,
		BookID:    model.BookID,
		Title:     model.Title,
		Quantity:  model.Quantity,
		UnitPrice: model.UnitPrice,
	}
}

func BookToDomain(model *models.BookModel) *book.Book {
	return &book.Book{
		ID:     model.ID,
		Title:  model.Title,
		Author: model.Author,
		Price:  model.Price,
	}
}
