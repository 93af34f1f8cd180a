package controllers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"schoollink/internal/delivery/http/helpers"
	"schoollink/internal/domain"
	"schoollink/internal/repository/kv"
	"schoollink/internal/repository/storage"
	"schoollink/internal/services"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// envelope mirrors helpers.APIResponse with raw data so tests can decode into concrete types.
type envelope struct {
	Data  json.RawMessage   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, data any) *helpers.APIError {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	if data != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Error
}

// newMemoryStore returns a loaded event store backed by an in-memory key-value store.
func newMemoryStore(t *testing.T) domain.EventStore {
	t.Helper()
	store := services.NewEventStore(storage.NewEventRepository(kv.NewMemoryStore()), testLogger, time.Second)
	require.NoError(t, store.Load(t.Context()))
	return store
}
