package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
)

const uniqueViolation = "23505"

type adminUserRepository struct {
	storage *Storage
}

func (r *adminUserRepository) Create(ctx context.Context, login, passwordHash string) (*model.AdminUser, error) {
	const query = `INSERT INTO admin_users (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.AdminUser
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *adminUserRepository) GetByLogin(ctx context.Context, login string) (*model.AdminUser, error) {
	const query = `SELECT id, login, password_hash, created_at FROM admin_users WHERE login=$1`
	var u model.AdminUser
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
