package repository

import (
	"context"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// AdminUserRepository describes persistence operations for dashboard operators.
type AdminUserRepository interface {
	Create(ctx context.Context, login, passwordHash string) (*model.AdminUser, error)
	GetByLogin(ctx context.Context, login string) (*model.AdminUser, error)
}
