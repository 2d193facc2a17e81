package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/db"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/entity"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker/schema"
)

func newTestRouter(t *testing.T) (*Router, *conn.Fleet) {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.Migrate(context.Background()))

	fleet := conn.NewFleet()
	t.Cleanup(fleet.Close)

	return NewRouter(fleet, database.Favorites(), schema.NewValidator()), fleet
}

func addOfflineSpeaker(t *testing.T, fleet *conn.Fleet, guid, name string) {
	t.Helper()

	dial := func(ctx context.Context, ip string, tokens speaker.TokenSource) (speaker.Client, error) {
		return nil, speaker.ErrNotConnected
	}
	tokens := speaker.NewStaticTokens(speaker.Token{
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	})
	fleet.Add(conn.Offline(conn.Config{GUID: guid, Name: name, IP: "10.0.0.5"},
		dial, tokens, speaker.NullDiscoverer{}, entity.NewRegistry()))
}

func doJSON(t *testing.T, router *Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.Engine().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth_EmptyFleetIsHealthy(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "healthy", decodeBody(t, w)["status"])
}

func TestHealth_DegradedWhenNoSpeakerConnected(t *testing.T) {
	router, fleet := newTestRouter(t)
	addOfflineSpeaker(t, fleet, "g1", "Living Room")

	w := doJSON(t, router, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "degraded", body["status"])
	require.Equal(t, float64(1), body["speakers"])
	require.Equal(t, float64(0), body["connected"])
}

func TestListSpeakers_ReportsConnectionState(t *testing.T) {
	router, fleet := newTestRouter(t)
	addOfflineSpeaker(t, fleet, "g1", "Living Room")

	w := doJSON(t, router, http.MethodGet, "/api/v1/speakers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	speakers := body["speakers"].([]any)
	require.Len(t, speakers, 1)

	info := speakers[0].(map[string]any)
	require.Equal(t, "g1", info["guid"])
	require.Equal(t, "Living Room", info["name"])
	require.Equal(t, false, info["connected"])
}

func TestGetSpeaker_UnknownIs404(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/speakers/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "not_found", decodeBody(t, w)["error"])
}

func TestGetState_OfflineSpeakerIs503(t *testing.T) {
	router, fleet := newTestRouter(t)
	addOfflineSpeaker(t, fleet, "g1", "Living Room")

	w := doJSON(t, router, http.MethodGet, "/api/v1/speakers/g1/state", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Equal(t, "not_connected", decodeBody(t, w)["error"])
}

func TestSetState_RejectsInvalidPayload(t *testing.T) {
	router, fleet := newTestRouter(t)
	addOfflineSpeaker(t, fleet, "g1", "Living Room")

	w := doJSON(t, router, http.MethodPost, "/api/v1/speakers/g1/state",
		map[string]any{"volume": 200})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "validation_error", decodeBody(t, w)["error"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/speakers/g1/state",
		map[string]any{"power": "STANDBY"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlayback_UnknownActionIs400(t *testing.T) {
	router, fleet := newTestRouter(t)
	addOfflineSpeaker(t, fleet, "g1", "Living Room")

	w := doJSON(t, router, http.MethodPost, "/api/v1/speakers/g1/playback/rewind", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_request", decodeBody(t, w)["error"])
}

func TestFavorites_CRUDOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)

	// Missing required fields.
	w := doJSON(t, router, http.MethodPost, "/api/v1/favorites", map[string]any{"name": "Jazz24"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	create := map[string]any{"name": "Jazz24", "source": "TUNEIN", "location": "/station/s1"}
	w = doJSON(t, router, http.MethodPost, "/api/v1/favorites", create)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)
	require.NotEmpty(t, id)

	w = doJSON(t, router, http.MethodPost, "/api/v1/favorites", create)
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/favorites", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeBody(t, w)["favorites"], 1)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/favorites/"+id, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/favorites/"+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
