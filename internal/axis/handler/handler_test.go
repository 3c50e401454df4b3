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

	"axisd/internal/axis"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	New(logger, nil, nil).Register(r)

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

func TestAxisRegistry(t *testing.T) {
	srv := newTestServer(t)

	t.Run("list all axes", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/axis")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var table []axis.Metadata
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&table))
		require.Len(t, table, axis.Count)
		assert.Equal(t, axis.KeyPillar, table[0].Key)
		assert.Equal(t, 1, table[0].Index)
	})

	t.Run("list keys", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/axis/keys")
		require.NoError(t, err)
		defer resp.Body.Close()

		var body struct {
			Keys  []string `json:"keys"`
			Count int      `json:"count"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, axis.Count, body.Count)
		assert.Equal(t, "pillar", body.Keys[0])
		assert.Equal(t, "temporal", body.Keys[len(body.Keys)-1])
	})

	t.Run("single axis", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/axis/honeycomb")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var meta axis.Metadata
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&meta))
		assert.Equal(t, axis.KeyHoneycomb, meta.Key)
		assert.Equal(t, 3, meta.Index)
	})

	t.Run("unknown axis is 404", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/axis/bogus")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "not_found", body["error"])
	})
}

type validateResponse struct {
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors"`
	Metrics struct {
		NurembergNumber   string  `json:"nuremberg_number"`
		USI               string  `json:"usi"`
		CoordinateHash    string  `json:"coordinate_hash"`
		CompletenessRatio float64 `json:"completeness_ratio"`
		FilledAxes        int     `json:"filled_axes"`
		TotalAxes         int     `json:"total_axes"`
	} `json:"metrics"`
}

func TestValidateCoordinate(t *testing.T) {
	srv := newTestServer(t)

	t.Run("valid coordinate", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/coordinate/validate", `{"coordinate":{"pillar":"PL01.1.1","sector":5415,"temporal":"2024-01-01T00:00:00Z"}}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body validateResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Valid)
		assert.Empty(t, body.Errors)
		assert.Len(t, body.Metrics.CoordinateHash, 64)
		assert.Len(t, body.Metrics.USI, 64)
		assert.Equal(t, 15, strings.Count(body.Metrics.NurembergNumber, "|"))
		assert.InDelta(t, 3.0/16.0, body.Metrics.CompletenessRatio, 1e-9)
		assert.Equal(t, 3, body.Metrics.FilledAxes)
		assert.Equal(t, 16, body.Metrics.TotalAxes)
	})

	t.Run("invalid coordinate still returns metrics", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/coordinate/validate", `{"coordinate":{"location":"US"}}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body validateResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Valid)
		assert.Len(t, body.Errors, 2)
		assert.Equal(t, 16, body.Metrics.TotalAxes)
	})

	t.Run("unparseable temporal is rejected outright", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/coordinate/validate", `{"coordinate":{"pillar":"PL01.1.1","sector":"5415","temporal":"not-a-date"}}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("strict flag tightens pillar format", func(t *testing.T) {
		payload := `{"coordinate":{"pillar":"machine learning","sector":"5415"}}`

		resp := postJSON(t, srv.URL+"/coordinate/validate", payload)
		var loose validateResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&loose))
		assert.True(t, loose.Valid)

		resp = postJSON(t, srv.URL+"/coordinate/validate?strict=true", payload)
		var strict validateResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&strict))
		assert.False(t, strict.Valid)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/coordinate/validate", `{`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestParseAndEncodeRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	encodeResp := postJSON(t, srv.URL+"/coordinate/encode", `{"coordinate":{"pillar":"PL12.2.1","sector":"5415","honeycomb":["PL12↔5415","PL12↔GDPR"],"location":"US"}}`)
	require.Equal(t, http.StatusOK, encodeResp.StatusCode)

	var encoded struct {
		NurembergNumber   string  `json:"nuremberg_number"`
		CoordinateHash    string  `json:"coordinate_hash"`
		USI               string  `json:"usi"`
		CompletenessRatio float64 `json:"completeness_ratio"`
	}
	require.NoError(t, json.NewDecoder(encodeResp.Body).Decode(&encoded))
	assert.Contains(t, encoded.NurembergNumber, "PL12↔5415,PL12↔GDPR")

	parsePayload, err := json.Marshal(map[string]string{"nuremberg": encoded.NurembergNumber})
	require.NoError(t, err)
	parseResp := postJSON(t, srv.URL+"/coordinate/parse", string(parsePayload))
	require.Equal(t, http.StatusOK, parseResp.StatusCode)

	var parsed struct {
		Coordinate     *axis.Coordinate `json:"coordinate"`
		CoordinateHash string           `json:"coordinate_hash"`
	}
	require.NoError(t, json.NewDecoder(parseResp.Body).Decode(&parsed))
	assert.Equal(t, "PL12.2.1", parsed.Coordinate.Pillar)
	assert.Equal(t, []string{"PL12↔5415", "PL12↔GDPR"}, parsed.Coordinate.Honeycomb)
	assert.Equal(t, encoded.CoordinateHash, parsed.CoordinateHash)
}

func TestParseRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	t.Run("wrong slot count", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/coordinate/parse", `{"nuremberg":"a|b|c"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing nuremberg", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/coordinate/parse", `{}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestExampleCoordinatesAreValid(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/examples/coordinates")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var examples []*axis.Coordinate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&examples))
	require.NotEmpty(t, examples)
	for _, example := range examples {
		report := axis.Validate(example)
		assert.True(t, report.Valid, "example %s should validate: %v", example.Pillar, report.Errors)
	}
}
