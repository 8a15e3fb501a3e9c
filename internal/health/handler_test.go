package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	pingFn     func(ctx context.Context) error
	pingCalled bool
	lastCtx    context.Context
}

func (db *fakeDB) Ping(ctx context.Context) error {
	db.pingCalled = true
	db.lastCtx = ctx
	if db.pingFn != nil {
		return db.pingFn(ctx)
	}
	return nil
}

func TestHandler_Health(t *testing.T) {
	handler := New(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "ok", body["status"])
	_, err := time.Parse(time.RFC3339, body["time"].(string))
	require.NoError(t, err)
}

func TestHandler_Ready(t *testing.T) {
	t.Run("db not configured", func(t *testing.T) {
		handler := New(nil)

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rec := httptest.NewRecorder()

		handler.Ready(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		body := decodeBody(t, rec)
		require.Equal(t, "not_ready", body["code"])
		require.Equal(t, "database pool not configured", body["error"])
	})

	t.Run("ping error", func(t *testing.T) {
		pingErr := errors.New("db down")
		db := &fakeDB{pingFn: func(ctx context.Context) error { return pingErr }}
		handler := New(db)

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rec := httptest.NewRecorder()

		handler.Ready(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		body := decodeBody(t, rec)
		require.Equal(t, "database is not reachable", body["error"])
		require.True(t, db.pingCalled)
		deadline, ok := db.lastCtx.Deadline()
		require.True(t, ok)
		require.True(t, time.Until(deadline) <= 2*time.Second+100*time.Millisecond)
	})

	t.Run("ready", func(t *testing.T) {
		db := &fakeDB{}
		handler := New(db)

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rec := httptest.NewRecorder()

		handler.Ready(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		require.Equal(t, "ready", body["status"])
		require.True(t, db.pingCalled)
	})
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}
