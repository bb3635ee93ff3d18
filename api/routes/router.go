package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/catalog-backend/api/controllers"
	admincontrollers "github.com/angelmondragon/catalog-backend/api/controllers/admin"
	"github.com/angelmondragon/catalog-backend/api/middleware"
	"github.com/angelmondragon/catalog-backend/internal/catalog"
	"github.com/angelmondragon/catalog-backend/pkg/config"
	"github.com/angelmondragon/catalog-backend/pkg/logger"
	"github.com/angelmondragon/catalog-backend/pkg/metrics"
	"github.com/angelmondragon/catalog-backend/pkg/redis"
)

// NewRouter wires the public catalog API, health probes, metrics and, when
// enabled, the admin console. redisClient and adminService may be nil.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	catalogService catalog.Service,
	adminService admincontrollers.Service,
) http.Handler {
	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(registry)
	}

	// a typed nil client must not reach the interfaces below
	var (
		limiter middleware.WindowLimiter
		redisP  controllers.Pinger
	)
	if redisClient != nil {
		limiter = redisClient
		redisP = redisClient
	}

	r.Use(
		chimw.StripSlashes,
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	publicPolicy := middleware.NewRateLimitPolicy("public", cfg.RateLimit.Window, cfg.RateLimit.PerIP)
	adminPolicy := middleware.NewRateLimitPolicy("admin", cfg.RateLimit.Window, cfg.RateLimit.AdminPerIP)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(publicPolicy, limiter, httpMetrics, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(catalogService, logg))
			r.Get("/{slug}", controllers.GetCategory(catalogService, logg))
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Get("/{slug}", controllers.GetProduct(catalogService, logg))
		})
	})

	if cfg.Admin.Enabled && adminService != nil {
		r.Route("/admin/api", func(r chi.Router) {
			r.Use(middleware.RateLimit(adminPolicy, limiter, httpMetrics, logg))

			r.Get("/", admincontrollers.Entities(adminService))
			r.Route("/{entity}", func(r chi.Router) {
				r.Get("/", admincontrollers.List(adminService, logg))
				r.Post("/", admincontrollers.Create(adminService, logg))
				r.Get("/_slug", admincontrollers.SuggestSlug(adminService, logg))
				r.Get("/{id}", admincontrollers.Get(adminService, logg))
				r.Put("/{id}", admincontrollers.Update(adminService, logg))
				r.Delete("/{id}", admincontrollers.Delete(adminService, logg))
			})
		})
	}

	return r
}
