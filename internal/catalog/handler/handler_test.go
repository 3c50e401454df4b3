package handler

import (
	"context"
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

	"axisd/internal/catalog"
	"axisd/internal/catalog/store"
)

type noopAudit struct{}

func (noopAudit) Emit(_ context.Context, _, _ string, _ bool, _ map[string]string) {}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := catalog.NewService(store.NewInMemoryStore(), noopAudit{}, logger, nil, false)

	r := chi.NewRouter()
	New(svc, logger).Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func saveCoordinate(t *testing.T, srv *httptest.Server, payload string) catalog.Record {
	t.Helper()

	resp, err := http.Post(srv.URL+"/coordinates", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var record catalog.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	return record
}

func TestSaveCoordinate(t *testing.T) {
	srv := newTestServer(t)

	t.Run("valid", func(t *testing.T) {
		record := saveCoordinate(t, srv, `{"coordinate":{"pillar":"PL01.1.1","sector":5415}}`)
		assert.Len(t, record.Hash, 64)
		assert.Equal(t, "PL01.1.1", record.Coordinate.Pillar)
		assert.InDelta(t, 2.0/16.0, record.Completeness, 1e-9)
	})

	t.Run("invalid coordinate", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/coordinates", "application/json", strings.NewReader(`{"coordinate":{"sector":5415}}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "validation_error", body["error"])
		assert.Contains(t, body["error_description"], "pillar")
	})

	t.Run("missing coordinate field", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/coordinates", "application/json", strings.NewReader(`{}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetCoordinate(t *testing.T) {
	srv := newTestServer(t)
	record := saveCoordinate(t, srv, `{"coordinate":{"pillar":"PL01.1.1","sector":"5415"}}`)

	t.Run("found", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/coordinates/" + record.Hash)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got catalog.Record
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, record.Nuremberg, got.Nuremberg)
	})

	t.Run("not found", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/coordinates/" + strings.Repeat("0", 64))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "not_found", body["error"])
	})
}

func TestListCoordinates(t *testing.T) {
	srv := newTestServer(t)
	saveCoordinate(t, srv, `{"coordinate":{"pillar":"PL01.1.1","sector":"5415"}}`)
	saveCoordinate(t, srv, `{"coordinate":{"pillar":"PL02.1.1","sector":"6215"}}`)

	resp, err := http.Get(srv.URL + "/coordinates?limit=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Coordinates []catalog.Record `json:"coordinates"`
		Total       int              `json:"total"`
		Limit       int              `json:"limit"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Coordinates, 1)
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 1, body.Limit)
}

func TestDeleteCoordinate(t *testing.T) {
	srv := newTestServer(t)
	record := saveCoordinate(t, srv, `{"coordinate":{"pillar":"PL01.1.1","sector":"5415"}}`)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/coordinates/"+record.Hash, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
