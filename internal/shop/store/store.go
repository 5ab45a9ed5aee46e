package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/tradepost/internal/shop/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. Sub-repositories are exposed as methods to keep
// concerns tidy and testable, and to stop callers from accidentally
// nesting transactions.
type Store interface {
	Users() Users
	AccessTokens() AccessTokens
	RefreshTokens() RefreshTokens
	Products() Products
	Purchases() Purchases

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., refresh
	// rotation, checkout). The caller MUST call Commit() or Rollback() on
	// the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used to enforce email uniqueness with a precise error.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser cascades to tokens and listings (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type AccessTokens interface {
	// CreateAccessToken records an issued access token for audit purposes.
	CreateAccessToken(ctx context.Context, t domain.AccessTokenRecord) error

	// DeleteExpiredAccessTokens is housekeeping; the audit trail only keeps
	// rows for tokens that could still be live.
	DeleteExpiredAccessTokens(ctx context.Context) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token ledger row.
	CreateRefreshToken(ctx context.Context, t domain.RefreshTokenRecord) error

	// GetRefreshTokenByFingerprint returns the ledger row for a presented
	// token. A missing row means the token was revoked or never issued.
	GetRefreshTokenByFingerprint(ctx context.Context, fingerprint string) (domain.RefreshTokenRecord, error)

	// DeleteRefreshToken revokes a single token by fingerprint.
	DeleteRefreshToken(ctx context.Context, fingerprint string) error

	// DeleteUserRefreshTokens bulk revocation for a user.
	DeleteUserRefreshTokens(ctx context.Context, userID string) error

	// DeleteExpiredRefreshTokens is housekeeping.
	DeleteExpiredRefreshTokens(ctx context.Context) error
}

type Products interface {
	// GetProductByID returns a listing by id, sold or not.
	GetProductByID(ctx context.Context, id string) (domain.Product, error)

	// CreateProduct inserts a new listing (id is ULID).
	CreateProduct(ctx context.Context, p domain.Product) error

	// ReplaceProduct overwrites name, description and price.
	ReplaceProduct(ctx context.Context, p domain.Product) error

	// UpdateProductFields patches only the provided fields (nil = keep).
	UpdateProductFields(ctx context.Context, id string, name, description, price *string) error

	// DeleteProduct removes a listing.
	DeleteProduct(ctx context.Context, id string) error

	// MarkProductSold sets the buyer and sold_at timestamp.
	MarkProductSold(ctx context.Context, id, buyerID string, soldAt int64) error

	// ListAvailable pages through unsold listings, optionally excluding
	// those owned by excludeOwnerID (empty string excludes nothing).
	ListAvailable(ctx context.Context, excludeOwnerID string, offset, limit int) ([]domain.Product, error)
	CountAvailable(ctx context.Context, excludeOwnerID string) (int, error)

	// ListForSaleBy pages through a seller's unsold listings.
	ListForSaleBy(ctx context.Context, ownerID string, offset, limit int) ([]domain.Product, error)
	CountForSaleBy(ctx context.Context, ownerID string) (int, error)

	// ListSoldBy pages through a seller's sold listings.
	ListSoldBy(ctx context.Context, ownerID string, offset, limit int) ([]domain.Product, error)
	CountSoldBy(ctx context.Context, ownerID string) (int, error)

	// ListPurchasedBy pages through listings bought by a user.
	ListPurchasedBy(ctx context.Context, buyerID string, offset, limit int) ([]domain.Product, error)
	CountPurchasedBy(ctx context.Context, buyerID string) (int, error)
}

type Purchases interface {
	// CreatePurchase records a completed checkout line. The purchased
	// history view reads from products; this table is the durable
	// receipt of what was paid and when.
	CreatePurchase(ctx context.Context, p domain.Purchase) error
}
