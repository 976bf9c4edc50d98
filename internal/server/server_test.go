package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/travelvault/internal/config"
	"github.com/sakif/travelvault/internal/handler"
	"github.com/sakif/travelvault/internal/model"
	"github.com/sakif/travelvault/internal/repository/memory"
	"github.com/sakif/travelvault/internal/server"
)

// newTestServer stands up the full HTTP stack over the memory backend.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.Config{
		Port:           "0",
		DBPath:         "memory",
		JWTSecret:      "test-secret-at-least-16-chars!!",
		AllowedOrigins: []string{"http://localhost:5173"},
		Env:            "test",
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := server.NewWithStore(cfg, memory.New(), logger)
	require.NoError(t, err)
	return srv.Handler()
}

// do runs one request against the stack and returns the recorder.
func do(h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

type authResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func register(t *testing.T, h http.Handler, username, email, password string) authResponse {
	t.Helper()

	rr := do(h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp authResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func TestRegisterLoginMe(t *testing.T) {
	h := newTestServer(t)

	resp := register(t, h, "alice", "alice@example.com", "correct horse battery")
	assert.Equal(t, "alice", resp.User.Username)
	assert.Empty(t, resp.User.PasswordHash, "hash must never leave the server")

	// Wrong password and unknown user must be indistinguishable.
	rr := do(h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	wrongPassword := rr.Body.String()

	rr = do(h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, wrongPassword, rr.Body.String())

	rr = do(h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "correct horse battery",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var login authResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&login))

	rr = do(h, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var me model.User
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&me))
	assert.Equal(t, resp.User.ID, me.ID)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	h := newTestServer(t)

	for _, target := range []string{
		"/api/auth/me",
		"/api/personal-info",
		"/api/travel-history",
		"/api/flights",
		"/api/export/json",
		"/api/stats",
	} {
		rr := do(h, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, target)

		var errResp handler.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Equal(t, "unauthorized", errResp.Error, target)
	}

	// A garbage token gets the same generic body as no token.
	rr := do(h, http.MethodGet, "/api/stats", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTravelHistoryLifecycle(t *testing.T) {
	h := newTestServer(t)
	alice := register(t, h, "alice", "alice@example.com", "correct horse battery")

	rr := do(h, http.MethodPost, "/api/travel-history", alice.Token, map[string]string{
		"date":        "2024-11-02",
		"destination": "Tokyo, Japan",
		"notes":       "cherry blossoms",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var entry model.TravelHistory
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&entry))
	require.NotEmpty(t, entry.ID)
	assert.Equal(t, alice.User.ID, entry.UserID)

	rr = do(h, http.MethodGet, "/api/travel-history", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []model.TravelHistory
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Tokyo, Japan", list[0].Destination)

	rr = do(h, http.MethodPut, "/api/travel-history/"+entry.ID, alice.Token, map[string]string{
		"notes": "ryokan booked",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var updated model.TravelHistory
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&updated))
	assert.Equal(t, "Tokyo, Japan", updated.Destination)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "ryokan booked", *updated.Notes)

	rr = do(h, http.MethodDelete, "/api/travel-history/"+entry.ID, alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"travel entry deleted"}`, rr.Body.String())

	rr = do(h, http.MethodGet, "/api/travel-history", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String(), "empty list must be [], not null")
}

func TestCrossUserIsolation(t *testing.T) {
	h := newTestServer(t)
	alice := register(t, h, "alice", "alice@example.com", "correct horse battery")
	bob := register(t, h, "bob", "bob@example.com", "hunter2hunter2")

	rr := do(h, http.MethodPost, "/api/travel-history", alice.Token, map[string]string{
		"date": "2024-11-02", "destination": "Tokyo, Japan",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var entry model.TravelHistory
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&entry))

	// Bob cannot see, update, or delete Alice's entry. The responses
	// must not reveal that the entry exists at all.
	rr = do(h, http.MethodGet, "/api/travel-history", bob.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())

	rr = do(h, http.MethodPut, "/api/travel-history/"+entry.ID, bob.Token, map[string]string{
		"destination": "stolen",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(h, http.MethodDelete, "/api/travel-history/"+entry.ID, bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Alice's record is untouched.
	rr = do(h, http.MethodGet, "/api/travel-history", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []model.TravelHistory
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Tokyo, Japan", list[0].Destination)
}

func TestPersonalInfoSingleton(t *testing.T) {
	h := newTestServer(t)
	alice := register(t, h, "alice", "alice@example.com", "correct horse battery")

	rr := do(h, http.MethodGet, "/api/personal-info", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null\n", rr.Body.String())

	rr = do(h, http.MethodPost, "/api/personal-info", alice.Token, map[string]string{
		"full_name": "Alice Rahman",
		"dob":       "1990-04-12",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(h, http.MethodPost, "/api/personal-info", alice.Token, map[string]string{
		"full_name": "Alice Again",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(h, http.MethodGet, "/api/personal-info", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var info model.PersonalInfo
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&info))
	require.NotNil(t, info.FullName)
	assert.Equal(t, "Alice Rahman", *info.FullName)
}

func TestExportEndToEnd(t *testing.T) {
	h := newTestServer(t)
	alice := register(t, h, "alice", "alice@example.com", "correct horse battery")

	rr := do(h, http.MethodPost, "/api/travel-history", alice.Token, map[string]string{
		"date": "2024-11-02", "destination": "Tokyo, Japan", "notes": "cherry blossoms",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(h, http.MethodGet, "/api/export/csv?sections=travel", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "personal-data-export.csv")
	assert.Contains(t, rr.Body.String(), "TRAVEL\n")
	assert.Contains(t, rr.Body.String(), `"Tokyo, Japan"`)

	rr = do(h, http.MethodGet, "/api/export/json", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Contains(t, doc, "travel")
	assert.Contains(t, doc, "flights")
	assert.NotContains(t, rr.Body.String(), `"user_id"`)

	rr = do(h, http.MethodGet, "/api/export/docx", alice.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// After deleting every entry the export still succeeds, with an
	// empty travel block rather than an error.
	rr = do(h, http.MethodGet, "/api/travel-history", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var entries []model.TravelHistory
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&entries))
	for _, e := range entries {
		rr = do(h, http.MethodDelete, "/api/travel-history/"+e.ID, alice.Token, nil)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr = do(h, http.MethodGet, "/api/export/csv?sections=travel", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "TRAVEL\n")
	assert.NotContains(t, rr.Body.String(), "Tokyo")

	rr = do(h, http.MethodGet, "/api/export/pdf", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "%PDF-"))
}

func TestStatsAndAutofill(t *testing.T) {
	h := newTestServer(t)
	alice := register(t, h, "alice", "alice@example.com", "correct horse battery")

	rr := do(h, http.MethodPost, "/api/travel-history", alice.Token, map[string]string{
		"date": "2024-11-02", "destination": "Tokyo, Japan",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(h, http.MethodGet, "/api/stats", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats model.Stats
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&stats))
	assert.Equal(t, 1, stats.Travel)
	assert.Equal(t, 0, stats.Personal)

	// No aviationstack key is configured, so autofill finds nothing.
	rr = do(h, http.MethodGet, "/api/flights/autofill/EK585", alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDuplicateRegistration(t *testing.T) {
	h := newTestServer(t)
	register(t, h, "alice", "alice@example.com", "correct horse battery")

	rr := do(h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "correct horse battery",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice2", "email": "alice@example.com", "password": "correct horse battery",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
}
