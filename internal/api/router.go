package api

import (
	"customer-service/internal/api/handler"
	mw "customer-service/internal/api/middleware"
	"customer-service/internal/config"
	"customer-service/internal/domain/customer"
	"customer-service/internal/web"
	"log/slog"
	"net/http"
	"time"

	_ "customer-service/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const defaultRequestTimeout = 30 * time.Second

// SetupRouter wires the HTTP surface. db backs the health check and may be nil.
func SetupRouter(customerService customer.CustomerService, db handler.Pinger, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupIndexRoutes(router, db, logger)
	setupAdminRoutes(router, logger)
	setupCustomerRoutes(router, customerService, logger)
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	requestTimeout := cfg.Server.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(requestTimeout))
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupIndexRoutes(router *chi.Mux, db handler.Pinger, logger *slog.Logger) {
	h := handler.NewIndexHandler(db, logger)
	router.Get("/", h.Index)
	router.Get("/health", h.Health)
}

// setupAdminRoutes serves the embedded browser admin page at /admin.
func setupAdminRoutes(router *chi.Mux, logger *slog.Logger) {
	assets := web.Static()
	logger.Info("Setting up admin page", "path", "/admin")
	router.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, assets, "index.html")
	})
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(assets)))
}

func setupCustomerRoutes(r chi.Router, svc customer.CustomerService, logger *slog.Logger) {
	customers := handler.NewCustomerHandler(svc, logger)
	addresses := handler.NewAddressHandler(svc, logger)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", customers.ListCustomers)
		r.With(mw.RequireJSON).Post("/", customers.CreateCustomer)

		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", customers.GetCustomer)
			r.With(mw.RequireJSON).Put("/", customers.UpdateCustomer)
			r.Delete("/", customers.DeleteCustomer)
			r.Put("/activate", customers.ActivateCustomer)
			r.Put("/deactivate", customers.DeactivateCustomer)

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", addresses.ListAddresses)
				r.With(mw.RequireJSON).Post("/", addresses.CreateAddress)
				r.Get("/{addressID}", addresses.GetAddress)
				r.With(mw.RequireJSON).Put("/{addressID}", addresses.UpdateAddress)
				r.Delete("/{addressID}", addresses.DeleteAddress)
			})
		})
	})
}
