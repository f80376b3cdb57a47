package cart

import "context"

type Repository interface {
	// GetByUserID returns the user's cart; a user without lines gets an empty cart.
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	// AddItem inserts the line or increases the quantity of an existing line for the same book.
	AddItem(ctx context.Context, userID string, item *Item) error
	// RemoveItem deletes the user's line for the book and reports whether one existed.
	RemoveItem(ctx context.Context, userID string, bookID uint) (bool, error)
	// ClearByUserID removes every line and returns how many were removed.
	ClearByUserID(ctx context.Context, userID string) (int64, error)
}
