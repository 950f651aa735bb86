package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/interbanking/interbanking-api/internal/companies"
	"github.com/interbanking/interbanking-api/internal/observability"
	"github.com/interbanking/interbanking-api/internal/platform/httpx"
	"github.com/interbanking/interbanking-api/internal/transfers"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	CompaniesHandler *companies.Handler
	TransfersHandler *transfers.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with API defaults.
func NewRouter(params RouterParams) http.Handler {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	// Registered before any Route call so mounted subrouters inherit them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondStatus(w, r, logger, http.StatusNotFound, cannot(r))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondStatus(w, r, logger, http.StatusMethodNotAllowed, cannot(r))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if params.CompaniesHandler != nil {
		r.Route("/companies", params.CompaniesHandler.MountRoutes)
	}
	if params.TransfersHandler != nil {
		r.Route("/transfers", params.TransfersHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}

func cannot(r *http.Request) error {
	return httpx.NewError(httpx.ErrNotFound, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path))
}
