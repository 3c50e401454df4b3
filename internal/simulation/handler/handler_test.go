package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axisd/internal/simulation"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := simulation.NewEngine(logger, nil)

	r := chi.NewRouter()
	New(engine, logger, nil).Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, payload string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestListRoles(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/roles")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Roles []simulation.RoleProfile `json:"available_roles"`
		Total int                      `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, len(simulation.RoleNames()), body.Total)
	assert.Equal(t, "Data Scientist", body.Roles[0].Name)
}

func TestExpandPersona(t *testing.T) {
	srv := newTestServer(t)

	t.Run("known role", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/persona/expand", `{"role_name":"Physicist"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var expansion simulation.PersonaExpansion
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&expansion))
		assert.Equal(t, "Physicist", expansion.RoleName)
		assert.Equal(t, "PL12.2.1", expansion.Coordinate.Pillar)
	})

	t.Run("unknown role returns 404", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/persona/expand", `{"role_name":"Astronaut"}`)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "not_found", body["error"])
	})

	t.Run("missing role name", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/persona/expand", `{}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestTranslateText(t *testing.T) {
	srv := newTestServer(t)

	t.Run("translation envelope", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/translate/text", `{"text":"machine learning for hospitals under hipaa"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Coordinate      map[string]any `json:"coordinate"`
			Confidence      float64        `json:"confidence"`
			Rationale       []string       `json:"rationale"`
			NurembergNumber string         `json:"nuremberg_number"`
			CoordinateHash  string         `json:"coordinate_hash"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "PL25.6.1", body.Coordinate["pillar"])
		assert.InDelta(t, 0.75, body.Confidence, 1e-9)
		assert.NotEmpty(t, body.Rationale)
		assert.Len(t, body.CoordinateHash, 64)
		assert.Equal(t, 15, strings.Count(body.NurembergNumber, "|"))
	})

	t.Run("missing text", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/translate/text", `{}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAnalyzeCrosswalk(t *testing.T) {
	srv := newTestServer(t)

	t.Run("direct path", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/crosswalk/analyze", `{"source_axis":"pillar","source_value":"PL25.6.1","target_axis":"sector"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var analysis simulation.CrosswalkAnalysis
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&analysis))
		assert.Len(t, analysis.Mappings, 2)
		assert.False(t, analysis.AnalyzedAt.IsZero())
	})

	t.Run("unknown axis", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/crosswalk/analyze", `{"source_axis":"bogus","source_value":"x","target_axis":"sector"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/crosswalk/analyze", `{"source_axis":"pillar"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSimulate(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/simulate", `{
		"base_coordinate": {"pillar": "PL01.1.1", "location": "US"},
		"target_roles": ["Compliance Auditor"],
		"include_crosswalks": true
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result simulation.SimulationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "PL18.4.7", result.ExpandedCoordinate.Pillar)
	assert.Equal(t, "US", result.ExpandedCoordinate.Location)
	assert.Greater(t, result.PersonaActivationScore, 0.0)
	assert.NotEmpty(t, result.AxisMappingLog)
	assert.Contains(t, result.CrosswalkMappings, "regulatory_compliance")
}
