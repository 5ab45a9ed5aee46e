package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/tradepost/internal/shop/domain"
)

type productsRepo struct {
	db dbtx
}

const productColumns = `id, owner_id, name, description, price, buyer_id, created_at, updated_at, sold_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p                  domain.Product
		buyer              sql.NullString
		createdAt, updated int64
		soldAt             sql.NullInt64
	)
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Price,
		&buyer, &createdAt, &updated, &soldAt)
	if err != nil {
		return domain.Product{}, err
	}
	p.BuyerID = mapNullString(buyer)
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	p.UpdatedAt = time.Unix(updated, 0).UTC()
	p.SoldAt = mapNullUnix(soldAt)
	return p, nil
}

func (r *productsRepo) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *productsRepo) countRow(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *productsRepo) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return p, nil
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, owner_id, name, description, price, buyer_id, created_at, updated_at, sold_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, p.Name, p.Description, p.Price,
		mapStringNull(p.BuyerID), p.CreatedAt.Unix(), p.UpdatedAt.Unix(), mapUnixNull(p.SoldAt),
	)
	return mapConstraint(err)
}

func (r *productsRepo) ReplaceProduct(ctx context.Context, p domain.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, description = ?, price = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Description, p.Price, time.Now().Unix(), p.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *productsRepo) UpdateProductFields(ctx context.Context, id string, name, description, price *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET
			name = COALESCE(?, name),
			description = COALESCE(?, description),
			price = COALESCE(?, price),
			updated_at = ?
		 WHERE id = ?`,
		mapOptionalString(name), mapOptionalString(description), mapOptionalString(price),
		time.Now().Unix(), id,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *productsRepo) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *productsRepo) MarkProductSold(ctx context.Context, id, buyerID string, soldAt int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET buyer_id = ?, sold_at = ?, updated_at = ? WHERE id = ? AND buyer_id IS NULL`,
		buyerID, soldAt, soldAt, id,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *productsRepo) ListAvailable(ctx context.Context, excludeOwnerID string, offset, limit int) ([]domain.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE buyer_id IS NULL AND (? = '' OR owner_id <> ?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		excludeOwnerID, excludeOwnerID, limit, offset,
	)
}

func (r *productsRepo) CountAvailable(ctx context.Context, excludeOwnerID string) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM products
		 WHERE buyer_id IS NULL AND (? = '' OR owner_id <> ?)`,
		excludeOwnerID, excludeOwnerID,
	)
}

func (r *productsRepo) ListForSaleBy(ctx context.Context, ownerID string, offset, limit int) ([]domain.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE owner_id = ? AND buyer_id IS NULL
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		ownerID, limit, offset,
	)
}

func (r *productsRepo) CountForSaleBy(ctx context.Context, ownerID string) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM products WHERE owner_id = ? AND buyer_id IS NULL`, ownerID)
}

func (r *productsRepo) ListSoldBy(ctx context.Context, ownerID string, offset, limit int) ([]domain.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE owner_id = ? AND buyer_id IS NOT NULL
		 ORDER BY sold_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		ownerID, limit, offset,
	)
}

func (r *productsRepo) CountSoldBy(ctx context.Context, ownerID string) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM products WHERE owner_id = ? AND buyer_id IS NOT NULL`, ownerID)
}

func (r *productsRepo) ListPurchasedBy(ctx context.Context, buyerID string, offset, limit int) ([]domain.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE buyer_id = ?
		 ORDER BY sold_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		buyerID, limit, offset,
	)
}

func (r *productsRepo) CountPurchasedBy(ctx context.Context, buyerID string) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM products WHERE buyer_id = ?`, buyerID)
}
