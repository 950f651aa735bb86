package transfers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/interbanking/interbanking-api/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", httpx.Handle(h.logger, h.Create))
	r.Get("/last-month", httpx.Handle(h.logger, h.LastMonth))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	var req CreateTransferRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	resp, err := h.service.CreateTransfer(r.Context(), req)
	if err != nil {
		return err
	}
	httpx.JSON(w, http.StatusCreated, resp)
	return nil
}

func (h *Handler) LastMonth(w http.ResponseWriter, r *http.Request) error {
	list, err := h.service.TransfersLastMonth(r.Context())
	if err != nil {
		return err
	}
	httpx.JSON(w, http.StatusOK, list)
	return nil
}
