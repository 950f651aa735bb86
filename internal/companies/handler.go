package companies

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/interbanking/interbanking-api/internal/platform/httpx"
	"github.com/interbanking/interbanking-api/internal/shared"
)

type Middleware = func(http.Handler) http.Handler

type Handler struct {
	logger    *slog.Logger
	service   *Service
	auth      Middleware
	rateLimit Middleware
}

// NewHandler wires the company routes. auth guards the adhesion route and
// rateLimit guards both reporting routes; nil disables either.
func NewHandler(logger *slog.Logger, service *Service, auth, rateLimit Middleware) *Handler {
	return &Handler{logger: logger, service: service, auth: orPassthrough(auth), rateLimit: orPassthrough(rateLimit)}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.auth).Post("/adhesion", httpx.Handle(h.logger, h.Adhesion))
	r.With(h.rateLimit).Get("/with-transfers/last-month", httpx.Handle(h.logger, h.WithTransfersLastMonth))
	r.With(h.rateLimit).Get("/joined/last-month", httpx.Handle(h.logger, h.JoinedLastMonth))
}

func (h *Handler) Adhesion(w http.ResponseWriter, r *http.Request) error {
	var req CreateCompanyRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	resp, err := h.service.CreateCompany(r.Context(), req)
	if err != nil {
		return err
	}
	httpx.JSON(w, http.StatusCreated, resp)
	return nil
}

func (h *Handler) WithTransfersLastMonth(w http.ResponseWriter, r *http.Request) error {
	page, err := h.service.CompaniesWithTransfersLastMonth(r.Context(), shared.PageRequestFromQuery(r.URL.Query()))
	if err != nil {
		return err
	}
	httpx.JSON(w, http.StatusOK, page)
	return nil
}

func (h *Handler) JoinedLastMonth(w http.ResponseWriter, r *http.Request) error {
	page, err := h.service.CompaniesJoinedLastMonth(r.Context(), shared.PageRequestFromQuery(r.URL.Query()))
	if err != nil {
		return err
	}
	httpx.JSON(w, http.StatusOK, page)
	return nil
}

func orPassthrough(mw Middleware) Middleware {
	if mw != nil {
		return mw
	}
	return func(next http.Handler) http.Handler { return next }
}
