package main

import (
	"context"
	"net/http"
	"time"

	"github.com/flexprice/taxengine/internal/api"
	v1 "github.com/flexprice/taxengine/internal/api/v1"
	"github.com/flexprice/taxengine/internal/cache"
	"github.com/flexprice/taxengine/internal/config"
	"github.com/flexprice/taxengine/internal/logger"
	"github.com/flexprice/taxengine/internal/repository"
	"github.com/flexprice/taxengine/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Repositories
			repository.NewInMemoryInvoiceRepository,
			repository.NewAccountRepository,
			repository.NewInvoiceRepository,
			repository.NewTagRepository,
			repository.NewConfigCatalogRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewTaxService,
			service.NewInvoiceTaxCodeService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	invoiceTaxCodeService service.InvoiceTaxCodeService,
) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(logger),
		TaxCode: v1.NewTaxCodeHandler(invoiceTaxCodeService, logger),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow("starting server", "address", cfg.Server.Address)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return server.Shutdown(ctx)
		},
	})
}
