package sqlite

import (
	"context"

	"github.com/aussiebroadwan/tradepost/internal/shop/domain"
)

type purchasesRepo struct {
	db dbtx
}

func (r *purchasesRepo) CreatePurchase(ctx context.Context, p domain.Purchase) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO purchases (product_id, buyer_id, price, purchased_at)
		 VALUES (?, ?, ?, ?)`,
		p.ProductID, p.BuyerID, p.Price, p.PurchasedAt.Unix(),
	)
	return mapConstraint(err)
}
