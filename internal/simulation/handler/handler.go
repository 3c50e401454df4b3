// Package handler exposes persona expansion, text translation, and crosswalk
// analysis over HTTP.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"axisd/internal/audit"
	"axisd/internal/axis"
	"axisd/internal/simulation"
	"axisd/pkg/httputil"
	"axisd/pkg/requestcontext"
)

// Engine defines the interface for simulation operations.
type Engine interface {
	ExpandPersona(ctx context.Context, roleName string, targetRoles []string) (*simulation.PersonaExpansion, error)
	TranslateText(ctx context.Context, text string, axisContext map[string]string) (*simulation.Translation, error)
	AnalyzeCrosswalk(ctx context.Context, sourceAxis axis.Key, sourceValue string, targetAxis axis.Key) (*simulation.CrosswalkAnalysis, error)
	Simulate(ctx context.Context, base *axis.Coordinate, targetRoles []string, includeCrosswalks bool) (*simulation.SimulationResult, error)
}

// AuditPublisher records translation outcomes without blocking them.
type AuditPublisher interface {
	Emit(ctx context.Context, action, subject string, success bool, detail map[string]string)
}

// Handler handles simulation endpoints.
type Handler struct {
	logger *slog.Logger
	engine Engine
	audit  AuditPublisher
}

// New creates a new simulation Handler. The audit publisher may be nil.
func New(engine Engine, logger *slog.Logger, auditor AuditPublisher) *Handler {
	return &Handler{
		logger: logger,
		engine: engine,
		audit:  auditor,
	}
}

// Register registers the simulation routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/roles", h.handleListRoles)
	r.Post("/persona/expand", h.handleExpandPersona)
	r.Post("/translate/text", h.handleTranslateText)
	r.Post("/crosswalk/analyze", h.handleAnalyzeCrosswalk)
	r.Post("/simulate", h.handleSimulate)
}

// handleListRoles lists the persona library.
func (h *Handler) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles := simulation.Roles()
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"available_roles": roles,
		"total":           len(roles),
	})
}

// handleExpandPersona expands a named role into a full coordinate.
func (h *Handler) handleExpandPersona(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req expandRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	expansion, err := h.engine.ExpandPersona(ctx, req.RoleName, req.TargetRoles)
	if err != nil {
		h.logger.WarnContext(ctx, "persona expansion failed",
			"request_id", requestcontext.RequestID(ctx),
			"role", req.RoleName,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, expansion)
}

// handleTranslateText translates natural language into a coordinate.
func (h *Handler) handleTranslateText(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req translateRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	translation, err := h.engine.TranslateText(ctx, req.Text, req.AxisContext)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	coord := translation.Coordinate
	if h.audit != nil {
		h.audit.Emit(ctx, audit.ActionTextTranslated, coord.Hash(), true, map[string]string{
			"confidence": fmt.Sprintf("%.2f", translation.Confidence),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"coordinate":       coord,
		"confidence":       translation.Confidence,
		"rationale":        translation.Rationale,
		"nuremberg_number": coord.Nuremberg(),
		"coordinate_hash":  coord.Hash(),
	})
}

// handleAnalyzeCrosswalk runs a crosswalk traversal between two axes.
func (h *Handler) handleAnalyzeCrosswalk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req crosswalkRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	analysis, err := h.engine.AnalyzeCrosswalk(ctx, axis.Key(req.SourceAxis), req.SourceValue, axis.Key(req.TargetAxis))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, analysis)
}

// handleSimulate runs a role-driven coordinate expansion.
func (h *Handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req simulateRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	base, err := req.baseCoordinate()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.engine.Simulate(ctx, base, req.TargetRoles, req.IncludeCrosswalks)
	if err != nil {
		h.logger.WarnContext(ctx, "simulation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
