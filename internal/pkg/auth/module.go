package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/printshop/internal/config"
)

// Module provides admin authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) (Strategy, error) {
	return NewStrategy(p.Config.AuthStrategy, p.Config.AuthSecret, Options{TTL: p.Config.AuthTokenTTL})
}
