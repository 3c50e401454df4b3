// Package handler exposes the math playground over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"axisd/internal/axis"
	"axisd/internal/mathops"
	"axisd/pkg/httputil"
	"axisd/pkg/requestcontext"
)

// Engine defines the interface for playground operations.
type Engine interface {
	Execute(ctx context.Context, op mathops.Operation, c *axis.Coordinate, p mathops.Params) (*mathops.Result, error)
}

// Handler handles math playground endpoints.
type Handler struct {
	logger *slog.Logger
	engine Engine
}

// New creates a new math Handler.
func New(engine Engine, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		engine: engine,
	}
}

// Register registers the math routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/math/ops", h.handleListOps)
	r.Post("/math/play", h.handlePlay)
}

type opInfo struct {
	Operation mathops.Operation `json:"operation"`
	Summary   string            `json:"description"`
}

// handleListOps lists the supported operations with their descriptions.
func (h *Handler) handleListOps(w http.ResponseWriter, r *http.Request) {
	ops := make([]opInfo, 0, len(mathops.Operations))
	for _, op := range mathops.Operations {
		ops = append(ops, opInfo{Operation: op, Summary: mathops.Descriptions[op]})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"available_operations": ops,
		"total":                len(ops),
	})
}

// handlePlay executes one playground operation against a coordinate.
func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req playRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	coord, otherCoord, err := req.coordinates()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.engine.Execute(ctx, req.Operation, coord, mathops.Params{
		Other:     otherCoord,
		CompareTo: req.CompareTo,
		Weights:   req.Weights,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "math operation failed",
			"request_id", requestcontext.RequestID(ctx),
			"operation", req.Operation,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
