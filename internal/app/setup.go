// Package app contains the application setup for the storefront.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sugrobov/storefront/internal/catalog"
	"github.com/sugrobov/storefront/internal/config"
	"github.com/sugrobov/storefront/internal/mail"
	"github.com/sugrobov/storefront/internal/service"
	"github.com/sugrobov/storefront/internal/store"
	"github.com/sugrobov/storefront/internal/transport/rest"
	"github.com/sugrobov/storefront/pkg/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Dependencies struct {
	CatalogService service.CatalogService
	Mailer         mail.Mailer
	PageSize       int
	Logger         *slog.Logger
}

// SetupDependencies wires the catalog service over a database pool.
func SetupDependencies(dbPool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) *Dependencies {
	return newDependencies(store.NewPgStore(dbPool), cfg, logger)
}

// SetupMockDependencies wires the catalog service over the generated
// in-memory catalog; used when no database is configured.
func SetupMockDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	products, categories := catalog.GenerateMock(cfg.Catalog.MockSeed)
	logger.Info("Mock catalog generated",
		slog.Int("products", len(products)), slog.Int("categories", len(categories)))
	return newDependencies(store.NewMemoryStore(products, categories), cfg, logger)
}

func newDependencies(catalogStore store.CatalogStore, cfg *config.Config, logger *slog.Logger) *Dependencies {
	var mailer mail.Mailer
	if cfg.Mail.Enabled {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			To:       cfg.Mail.To,
		})
	} else {
		mailer = mail.NewLogMailer(logger)
	}

	return &Dependencies{
		CatalogService: service.NewService(catalogStore),
		Mailer:         mailer,
		PageSize:       cfg.Catalog.ItemsPerPage,
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the HTTP router and routes for the storefront.
// Used by tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return otelhttp.NewHandler(mux, "storefront")
}

// wireRoutes sets up the HTTP routes for the storefront.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.CatalogService, deps.Mailer, deps.PageSize, deps.Logger)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the storefront.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
