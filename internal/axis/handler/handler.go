// Package handler exposes the axis registry and coordinate codec over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"axisd/internal/audit"
	"axisd/internal/axis"
	"axisd/internal/platform/metrics"
	dErrors "axisd/pkg/domain-errors"
	"axisd/pkg/httputil"
	"axisd/pkg/requestcontext"
)

// AuditPublisher records validation outcomes without blocking them.
type AuditPublisher interface {
	Emit(ctx context.Context, action, subject string, success bool, detail map[string]string)
}

// Handler handles axis metadata and coordinate codec endpoints.
type Handler struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   AuditPublisher
}

// New creates a new axis Handler. The audit publisher may be nil.
func New(logger *slog.Logger, m *metrics.Metrics, auditor AuditPublisher) *Handler {
	return &Handler{
		logger:  logger,
		metrics: m,
		audit:   auditor,
	}
}

// Register registers the axis routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/axis", h.handleListAxes)
	r.Get("/axis/keys", h.handleListKeys)
	r.Get("/axis/{key}", h.handleGetAxis)
	r.Post("/coordinate/validate", h.handleValidate)
	r.Post("/coordinate/parse", h.handleParse)
	r.Post("/coordinate/encode", h.handleEncode)
	r.Get("/examples/coordinates", h.handleExamples)
}

// handleListAxes returns the full metadata registry in canonical order.
func (h *Handler) handleListAxes(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, axis.MetadataTable())
}

// handleListKeys returns the canonical axis key order.
func (h *Handler) handleListKeys(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"keys":  axis.Keys,
		"count": axis.Count,
	})
}

// handleGetAxis returns metadata for one axis, 404 for unknown keys.
func (h *Handler) handleGetAxis(w http.ResponseWriter, r *http.Request) {
	key := axis.Key(chi.URLParam(r, "key"))
	meta, ok := axis.MetadataFor(key)
	if !ok {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "unknown axis %q", key))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, meta)
}

// handleValidate validates a coordinate and reports every violation with the
// derived identifiers. The strict query flag opts into the metadata-pattern
// tier.
func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req coordinatePayload
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	coord, err := axis.ParseMap(req.Coordinate)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeValidation, "invalid coordinate", err))
		return
	}

	report := axis.Validate(coord)
	if r.URL.Query().Get("strict") == "true" {
		report = axis.ValidateStrict(coord)
	}
	h.metrics.ObserveValidation(report.Valid)
	if h.audit != nil {
		h.audit.Emit(ctx, audit.ActionCoordinateValidated, coord.Hash(), report.Valid, map[string]string{
			"errors": strconv.Itoa(len(report.Errors)),
		})
	}

	if !report.Valid {
		h.logger.DebugContext(ctx, "coordinate failed validation",
			"request_id", requestcontext.RequestID(ctx),
			"errors", len(report.Errors),
		)
	}

	errs := report.Errors
	if errs == nil {
		errs = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"valid":  report.Valid,
		"errors": errs,
		"metrics": map[string]any{
			"nuremberg_number":   coord.Nuremberg(),
			"usi":                coord.UnifiedSystemID(),
			"coordinate_hash":    coord.Hash(),
			"completeness_ratio": coord.Completeness(),
			"filled_axes":        coord.FilledAxes(),
			"total_axes":         axis.Count,
		},
	})
}

// handleParse decodes a pipe-delimited nuremberg number back into a
// coordinate.
func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	coord, err := axis.Decode(req.Nuremberg)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"coordinate":         coord,
		"coordinate_hash":    coord.Hash(),
		"usi":                coord.UnifiedSystemID(),
		"completeness_ratio": coord.Completeness(),
		"filled_axes":        coord.FilledAxes(),
	})
}

// handleEncode derives the nuremberg number and hashes from a coordinate
// without validating it.
func (h *Handler) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req coordinatePayload
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	coord, err := axis.ParseMap(req.Coordinate)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeValidation, "invalid coordinate", err))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"nuremberg_number":   axis.Encode(coord),
		"coordinate_hash":    coord.Hash(),
		"usi":                coord.UnifiedSystemID(),
		"completeness_ratio": coord.Completeness(),
	})
}

// handleExamples returns sample coordinates for demos and client testing.
func (h *Handler) handleExamples(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, exampleCoordinates())
}

func exampleCoordinates() []*axis.Coordinate {
	return []*axis.Coordinate{
		{
			Pillar:              "PL12.2.1",
			Sector:              "5415",
			Honeycomb:           []string{"PL12↔5415"},
			Branch:              "TECH.PROFESSIONAL_SERVICES",
			Node:                "N-PL12-5415",
			Regulatory:          "GDPR",
			Compliance:          "ISO-27001",
			ComplianceLevel:     "certified",
			AuditRequirements:   "annual",
			RegulatoryFramework: "EU",
			RoleKnowledge:       "Data Scientist",
			RoleSector:          "Data Scientist - 5415",
			RoleRegulatory:      "Data Scientist - GDPR",
			RoleCompliance:      "Data Scientist - ISO-27001",
			Location:            "US",
			Temporal:            "2024-01-01T00:00:00Z",
		},
		{
			Pillar:         "PL03.2.1",
			Sector:         "Healthcare",
			Honeycomb:      []string{"PL03↔Healthcare"},
			Branch:         "HEALTH.SERVICES",
			Node:           "N-PL03-Healthcare",
			Regulatory:     "HIPAA",
			Compliance:     "HITECH",
			RoleKnowledge:  "Healthcare Analyst",
			RoleSector:     "Healthcare Analyst - Healthcare",
			RoleRegulatory: "Healthcare Analyst - HIPAA",
			RoleCompliance: "Healthcare Analyst - HITECH",
			Location:       "US",
			Temporal:       "2024-01-01T00:00:00Z",
		},
		{
			Pillar:        "PL06.1.1",
			Sector:        "52",
			Honeycomb:     []string{"PL06↔52"},
			Branch:        "FINANCE.SERVICES",
			Regulatory:    "SOX",
			Compliance:    "SOC1",
			RoleKnowledge: "Compliance Officer",
			RoleSector:    "Compliance Officer - 52",
			Location:      "US",
			Temporal:      "2024-01-01T00:00:00Z",
		},
	}
}
