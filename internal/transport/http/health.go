package httptransport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"axisd/internal/axis"
	"axisd/internal/mathops"
	"axisd/pkg/httputil"
	"axisd/pkg/requestcontext"
)

// SystemName identifies the service in health and info responses.
const (
	SystemName = "axisd coordinate system"
	Version    = "1.0.0"
)

// CheckFunc probes one dependency. A nil error means healthy.
type CheckFunc func(ctx context.Context) error

// HealthHandler serves liveness, component health, and system info.
type HealthHandler struct {
	checks map[string]CheckFunc
}

// NewHealthHandler builds a health handler over named component checks.
func NewHealthHandler(checks map[string]CheckFunc) *HealthHandler {
	if checks == nil {
		checks = map[string]CheckFunc{}
	}
	return &HealthHandler{checks: checks}
}

// Register registers the health and system routes with the chi router.
func (h *HealthHandler) Register(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Get("/health/detailed", h.handleHealthDetailed)
	r.Get("/system/info", h.handleSystemInfo)
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   SystemName,
		"timestamp": requestcontext.Now(r.Context()).UTC(),
	})
}

// handleHealthDetailed probes every registered component. Any failing
// component degrades the overall status and the response code.
func (h *HealthHandler) handleHealthDetailed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := http.StatusOK
	overall := "healthy"
	components := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			components[name] = "unhealthy: " + err.Error()
			overall = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "healthy"
	}

	httputil.WriteJSON(w, status, map[string]any{
		"status":     overall,
		"service":    SystemName,
		"version":    Version,
		"components": components,
		"timestamp":  requestcontext.Now(ctx).UTC(),
	})
}

func (h *HealthHandler) handleSystemInfo(w http.ResponseWriter, r *http.Request) {
	optional := make([]axis.Key, 0, axis.Count-2)
	for _, key := range axis.Keys {
		if key != axis.KeyPillar && key != axis.KeySector {
			optional = append(optional, key)
		}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"system_name": SystemName,
		"version":     Version,
		"axis_count":  axis.Count,
		"axis_metadata": map[string]any{
			"total_axes":    axis.Count,
			"required_axes": []axis.Key{axis.KeyPillar, axis.KeySector},
			"optional_axes": optional,
		},
		"mathematical_capabilities": map[string]any{
			"operations": mathops.Operations,
			"coordinate_functions": []string{
				"nuremberg_number",
				"unified_system_id",
				"coordinate_hash",
				"completeness_ratio",
			},
		},
		"simulation_capabilities": map[string]any{
			"role_expansion":               true,
			"crosswalk_mapping":            true,
			"persona_scoring":              true,
			"natural_language_translation": true,
		},
	})
}
