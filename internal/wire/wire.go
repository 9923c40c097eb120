package wire

import (
	"net/http"

	"qr-attendance/internal/adaptor"
	"qr-attendance/internal/data/repository"
	"qr-attendance/internal/usecase"
	"qr-attendance/pkg/middleware"
	"qr-attendance/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.NewSimpleTokenBucket(config.RateLimit.PerMinute, config.RateLimit.PerMinute).Middleware)

	// Apply routes
	wireAttendance(r, handler)

	// Unroutable action names are an error code, not a bare 404
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseError(w, http.StatusNotFound, "endpoint_not_found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseError(w, http.StatusNotFound, "endpoint_not_found")
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := repo.Ping(r.Context()); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseError(w, http.StatusServiceUnavailable, "storage_unavailable")
			return
		}
		utils.ResponseOK(w, map[string]string{"status": "ok"})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
