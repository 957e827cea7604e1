package router

import (
	"fmt"
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/printshop/internal/config"
	"github.com/polkiloo/printshop/internal/server/http/handlers"
	"github.com/polkiloo/printshop/internal/server/http/middleware"
)

// multipartOverhead leaves room for part headers and boundaries on top of the file itself.
const multipartOverhead = 64 << 10

// Setup configures gin router with handlers and middleware.
// Forwarding headers are honoured only from cfg.TrustedProxies; with none
// configured the client IP is the socket peer address.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger, cfg *config.Config) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	quoteHandler := handlers.NewQuoteHandler(facade)
	uploadHandler := handlers.NewUploadHandler(facade, cfg.UploadMaxSize)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	admin := middleware.AdminRequired(facade)

	orders := api.Group("/orders")
	orders.POST("/design", orderHandler.CreateDesign)
	orders.POST("/copies", orderHandler.CreateCopies)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/payment", orderHandler.ConfirmPayment)
	orders.GET("", admin, orderHandler.List)
	orders.PATCH("/:id", admin, orderHandler.UpdateStatus)
	orders.DELETE("/:id", admin, orderHandler.Delete)

	quotes := api.Group("/quotes")
	quotes.POST("", quoteHandler.Create)
	quotes.GET("", admin, quoteHandler.List)
	quotes.GET("/:id", admin, quoteHandler.Get)
	quotes.PUT("/:id", admin, quoteHandler.Update)
	quotes.DELETE("/:id", admin, quoteHandler.Delete)

	api.POST("/uploads/secure", middleware.BodyLimit(cfg.UploadMaxSize+multipartOverhead), uploadHandler.Upload)

	adminGroup := api.Group("/admin")
	adminGroup.POST("/login", authHandler.Login)
	adminGroup.GET("/security-events", admin, uploadHandler.SecurityEvents)

	return engine, nil
}
