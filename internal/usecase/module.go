package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/printshop/internal/config"
	"github.com/polkiloo/printshop/internal/pkg/upload"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	DefaultCatalog,
	newOrderPolicy,
	newUploadPolicy,
	upload.NewValidator,
	NewAuthUseCase,
	NewOrderUseCase,
	NewQuoteUseCase,
	NewUploadUseCase,
)

func newOrderPolicy(cfg *config.Config) OrderPolicy {
	return OrderPolicy{
		LockFinalizedPayment: cfg.PaymentLockFinalized,
		DefaultPageSize:      cfg.OrdersPageSize,
		MaxPageSize:          cfg.OrdersMaxPageSize,
	}
}

func newUploadPolicy(cfg *config.Config) UploadPolicy {
	return UploadPolicy{
		Validation: upload.Options{
			MaxSize:          cfg.UploadMaxSize,
			AllowedTypes:     cfg.UploadAllowedTypes,
			StrictValidation: cfg.UploadStrictValidation,
		},
		MaxAttempts: cfg.UploadRateLimit,
		Window:      cfg.UploadRateWindow,
	}
}
