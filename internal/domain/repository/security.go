package repository

import (
	"context"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// SecurityEventRepository is an append-only store of upload security events.
type SecurityEventRepository interface {
	Append(ctx context.Context, event model.SecurityEvent) error
	ListRecent(ctx context.Context, limit int) ([]model.SecurityEvent, error)
}
