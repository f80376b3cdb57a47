package http

import (
	"github.com/bookstore-vn/bookstore/internal/domain/book"
	"github.com/bookstore-vn/bookstore/internal/domain/cart"
	"github.com/bookstore-vn/bookstore/internal/domain/order"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/repository"
	"github.com/bookstore-vn/bookstore/internal/shared/db"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	orderRepo order.Repository
	cartRepo  cart.Repository
	bookRepo  book.Repository
	txMgr     *db.TransactionManager
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		orderRepo: repository.NewOrderRepository(c.db, c.log.Named("order-repository")),
		cartRepo:  repository.NewCartRepository(c.db, c.log.Named("cart-repository")),
		bookRepo:  repository.NewBookRepository(c.db),
		txMgr:     db.NewTransactionManager(c.db),
	}
}
