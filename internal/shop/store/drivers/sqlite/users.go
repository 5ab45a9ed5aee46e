package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tradepost/internal/shop/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, email, password_hash, created_at, updated_at`

func (r *usersRepo) getUser(ctx context.Context, query string, arg any) (domain.User, error) {
	var (
		u                  domain.User
		createdAt, updated int64
	)
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt, &updated)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	u.UpdatedAt = time.Unix(updated, 0).UTC()
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt.Unix(), u.UpdatedAt.Unix(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().Unix(), userID,
	)
	return err
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	return err
}
