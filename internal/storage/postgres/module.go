package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/printshop/internal/config"
	"github.com/polkiloo/printshop/internal/domain/repository"
	"github.com/polkiloo/printshop/internal/pkg/ratelimit"
)

// Module wires PostgreSQL storage, repository adapters and the upload rate limiter.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.QuoteRepository { return s.Quotes() },
		func(s *Storage) repository.SecurityEventRepository { return s.SecurityEvents() },
		func(s *Storage) repository.AdminUserRepository { return s.AdminUsers() },
		newLimiter,
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

// newLimiter selects the counter backend configured by RATE_LIMIT_BACKEND.
func newLimiter(cfg *config.Config, s *Storage) ratelimit.Limiter {
	if cfg.RateLimitBackend == config.RateLimitPostgres {
		return s.RateLimiter()
	}
	return ratelimit.NewMemoryLimiter()
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
