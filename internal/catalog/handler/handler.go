// Package handler exposes the coordinate catalog over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"axisd/internal/axis"
	"axisd/internal/catalog"
	dErrors "axisd/pkg/domain-errors"
	"axisd/pkg/httputil"
	"axisd/pkg/requestcontext"
)

// Service defines the interface for catalog operations.
type Service interface {
	Save(ctx context.Context, c *axis.Coordinate) (catalog.Record, error)
	Get(ctx context.Context, hash string) (*catalog.Record, error)
	List(ctx context.Context, limit, offset int) ([]catalog.Record, int, error)
	Delete(ctx context.Context, hash string) error
}

// Handler handles catalog endpoints.
type Handler struct {
	logger  *slog.Logger
	catalog Service
}

// New creates a new catalog Handler.
func New(catalog Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		catalog: catalog,
	}
}

// Register registers the catalog routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/coordinates", h.handleSave)
	r.Get("/coordinates", h.handleList)
	r.Get("/coordinates/{hash}", h.handleGet)
	r.Delete("/coordinates/{hash}", h.handleDelete)
}

// saveRequest is the payload for POST /coordinates.
type saveRequest struct {
	Coordinate map[string]any `json:"coordinate"`
}

// Validate implements httputil.Validatable.
func (r *saveRequest) Validate() error {
	if r.Coordinate == nil {
		return dErrors.New(dErrors.CodeValidation, "coordinate is required")
	}
	return nil
}

// handleSave validates and stores a coordinate, returning the stored record.
func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req saveRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	coord, err := axis.ParseMap(req.Coordinate)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeValidation, "invalid coordinate", err))
		return
	}

	record, err := h.catalog.Save(ctx, coord)
	if err != nil {
		h.logger.WarnContext(ctx, "coordinate save rejected",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, record)
}

// handleList pages through stored coordinates.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	records, total, err := h.catalog.List(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"coordinates": records,
		"total":       total,
		"limit":       limit,
		"offset":      offset,
	})
}

// handleGet fetches one record by coordinate hash.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := h.catalog.Get(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

// handleDelete removes one record by coordinate hash.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "hash")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
