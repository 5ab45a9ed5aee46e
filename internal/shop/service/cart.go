package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tradepost/internal/shop/domain"
	"github.com/aussiebroadwan/tradepost/internal/shop/store"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

// CartService turns a submitted cart into purchases. Checkout is all or
// nothing: every item is checked before anything is marked sold, and
// the whole batch runs in a single transaction so a failure part-way
// leaves no product in a half-sold state.
type CartService struct {
	Store store.Store
}

func (s *CartService) Checkout(ctx context.Context, buyerID string, items []domain.CartItem) ([]domain.CheckoutLine, error) {
	l := slogx.FromContext(ctx)

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	now := time.Now().UTC()
	lines := make([]domain.CheckoutLine, 0, len(items))

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, item := range items {
			product, err := tx.Products().GetProductByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			if product.OwnerID == buyerID {
				return ErrOwnProduct
			}
			if product.Sold() {
				return ErrProductSold
			}
			if product.Price != item.Price {
				return &PriceChangedError{ProductID: product.ID, CurrentPrice: product.Price}
			}

			if err := tx.Products().MarkProductSold(ctx, product.ID, buyerID, now.Unix()); err != nil {
				return err
			}
			if err := tx.Purchases().CreatePurchase(ctx, domain.Purchase{
				ProductID:   product.ID,
				BuyerID:     buyerID,
				Price:       product.Price,
				PurchasedAt: now,
			}); err != nil {
				return err
			}

			lines = append(lines, domain.CheckoutLine{
				ProductID:   product.ID,
				ProductName: product.Name,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Info("checkout completed",
		slog.String("buyer_id", buyerID),
		slog.Int("items", len(lines)))
	return lines, nil
}
