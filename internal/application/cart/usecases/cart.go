package usecases

import (
	"context"
	"errors"

	"github.com/bookstore-vn/bookstore/internal/application/cart/dto"
	"github.com/bookstore-vn/bookstore/internal/domain/book"
	"github.com/bookstore-vn/bookstore/internal/domain/cart"
	apperrors "github.com/bookstore-vn/bookstore/internal/shared/errors"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

const maxLineQuantity = 99

type AddCartItemCommand struct {
	UserID   string
	BookID   uint
	Quantity int
}

// AddCartItemUseCase adds a book to the user's cart at its current catalog price.
type AddCartItemUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
	logger   logger.Interface
}

func NewAddCartItemUseCase(cartRepo cart.Repository, bookRepo book.Repository, logger logger.Interface) *AddCartItemUseCase {
	return &AddCartItemUseCase{cartRepo: cartRepo, bookRepo: bookRepo, logger: logger}
}

func (uc *AddCartItemUseCase) Execute(ctx context.Context, cmd AddCartItemCommand) (*dto.CartDTO, error) {
	if cmd.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("user is required")
	}
	if cmd.Quantity > maxLineQuantity {
		return nil, apperrors.NewValidationError("quantity is too large")
	}

	b, err := uc.bookRepo.GetByID(ctx, cmd.BookID)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return nil, apperrors.NewNotFoundError("book not found")
		}
		uc.logger.Errorw("failed to get book", "book_id", cmd.BookID, "error", err)
		return nil, apperrors.NewInternalError("failed to get book")
	}

	item, err := cart.NewItem(b.ID, b.Title, cmd.Quantity, b.Price)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid cart item", err.Error())
	}

	if err := uc.cartRepo.AddItem(ctx, cmd.UserID, item); err != nil {
		uc.logger.Errorw("failed to add cart item", "user_id", cmd.UserID, "book_id", b.ID, "error", err)
		return nil, apperrors.NewInternalError("failed to add cart item")
	}

	c, err := uc.cartRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load cart", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewInternalError("failed to load cart")
	}

	uc.logger.Infow("cart item added", "user_id", cmd.UserID, "book_id", b.ID, "quantity", cmd.Quantity)
	return dto.ToCartDTO(c), nil
}

type RemoveCartItemCommand struct {
	UserID string
	BookID uint
}

// RemoveCartItemUseCase drops a book from the user's cart.
type RemoveCartItemUseCase struct {
	cartRepo cart.Repository
	logger   logger.Interface
}

func NewRemoveCartItemUseCase(cartRepo cart.Repository, logger logger.Interface) *RemoveCartItemUseCase {
	return &RemoveCartItemUseCase{cartRepo: cartRepo, logger: logger}
}

func (uc *RemoveCartItemUseCase) Execute(ctx context.Context, cmd RemoveCartItemCommand) (*dto.CartDTO, error) {
	if cmd.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("user is required")
	}

	removed, err := uc.cartRepo.RemoveItem(ctx, cmd.UserID, cmd.BookID)
	if err != nil {
		uc.logger.Errorw("failed to remove cart item", "user_id", cmd.UserID, "book_id", cmd.BookID, "error", err)
		return nil, apperrors.NewInternalError("failed to remove cart item")
	}
	if !removed {
		return nil, apperrors.NewNotFoundError("cart item not found")
	}

	c, err := uc.cartRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load cart", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewInternalError("failed to load cart")
	}

	uc.logger.Infow("cart item removed", "user_id", cmd.UserID, "book_id", cmd.BookID)
	return dto.ToCartDTO(c), nil
}

type GetCartUseCase struct {
	cartRepo cart.Repository
	logger   logger.Interface
}

func NewGetCartUseCase(cartRepo cart.Repository, logger logger.Interface) *GetCartUseCase {
	return &GetCartUseCase{cartRepo: cartRepo, logger: logger}
}

func (uc *GetCartUseCase) Execute(ctx context.Context, userID string) (*dto.CartDTO, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("user is required")
	}

	c, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to load cart", "user_id", userID, "error", err)
		return nil, apperrors.NewInternalError("failed to load cart")
	}
	return dto.ToCartDTO(c), nil
}
