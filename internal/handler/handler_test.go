package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/travelvault/internal/auth"
	"github.com/sakif/travelvault/internal/export"
	"github.com/sakif/travelvault/internal/flightinfo"
	"github.com/sakif/travelvault/internal/handler"
	"github.com/sakif/travelvault/internal/model"
	"github.com/sakif/travelvault/internal/repository"
	"github.com/sakif/travelvault/internal/repository/memory"
	"github.com/sakif/travelvault/internal/service"
)

// noLookup is a flight lookup that never finds anything.
type noLookup struct{}

func (noLookup) Lookup(ctx context.Context, flightNumber string) *flightinfo.Info { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newFixture builds a record handler over a fresh memory store with one
// user already created.
func newFixture(t *testing.T) (*handler.RecordHandler, repository.Store, string) {
	t.Helper()

	store := memory.New()
	user := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, store.Users().Create(context.Background(), user))

	records := service.NewRecordService(store, noLookup{}, testLogger())
	return handler.NewRecordHandler(records, testLogger()), store, user.ID
}

// authed builds a request carrying the user identity the way the auth
// middleware would.
func authed(method, target, userID string, body []byte) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	return r.WithContext(auth.WithUserID(r.Context(), userID))
}

func TestHandleGetPersonalInfo_AbsentIsNull(t *testing.T) {
	h, _, userID := newFixture(t)

	rr := httptest.NewRecorder()
	h.HandleGetPersonalInfo(rr, authed(http.MethodGet, "/api/personal-info", userID, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null\n", rr.Body.String())
}

func TestHandleCreatePersonalInfo(t *testing.T) {
	h, _, userID := newFixture(t)

	body := []byte(`{"full_name":"Alice Rahman","passport_number":"P1234567","dob":"1990-04-12"}`)
	rr := httptest.NewRecorder()
	h.HandleCreatePersonalInfo(rr, authed(http.MethodPost, "/api/personal-info", userID, body))
	require.Equal(t, http.StatusOK, rr.Code)

	var created model.PersonalInfo
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, userID, created.UserID)
	require.NotNil(t, created.DOB)
	assert.Equal(t, "1990-04-12", created.DOB.String())

	// A second create must conflict: the record is per-user singleton.
	rr = httptest.NewRecorder()
	h.HandleCreatePersonalInfo(rr, authed(http.MethodPost, "/api/personal-info", userID, body))
	assert.Equal(t, http.StatusConflict, rr.Code)

	var errResp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
	assert.Equal(t, "conflict", errResp.Error)
}

func TestHandleCreateTravelHistory_BadJSON(t *testing.T) {
	h, _, userID := newFixture(t)

	rr := httptest.NewRecorder()
	h.HandleCreateTravelHistory(rr, authed(http.MethodPost, "/api/travel-history", userID, []byte(`{"date":`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleCreateTravelHistory_MissingFields(t *testing.T) {
	h, _, userID := newFixture(t)

	rr := httptest.NewRecorder()
	h.HandleCreateTravelHistory(rr, authed(http.MethodPost, "/api/travel-history", userID, []byte(`{"destination":"Tokyo"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var errResp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
	assert.Equal(t, "validation_error", errResp.Error)
}

func TestHandleUpdateTravelHistory_CrossUserIsNotFound(t *testing.T) {
	h, store, alice := newFixture(t)

	bob := &model.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x"}
	require.NoError(t, store.Users().Create(context.Background(), bob))

	d, err := model.ParseDate("2024-11-02")
	require.NoError(t, err)
	entry := &model.TravelHistory{Date: d, Destination: "Tokyo"}
	require.NoError(t, store.TravelHistory().Create(context.Background(), alice, entry))

	req := authed(http.MethodPut, "/api/travel-history/"+entry.ID, bob.ID, []byte(`{"destination":"Osaka"}`))
	req.SetPathValue("id", entry.ID)
	rr := httptest.NewRecorder()
	h.HandleUpdateTravelHistory(rr, req)

	// Not 403: the response must not confirm the record exists.
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleDeleteFlight(t *testing.T) {
	h, store, userID := newFixture(t)

	flight := &model.Flight{FlightNumber: "BG002", Airline: "Biman", DepartureAirport: "DAC", ArrivalAirport: "LHR"}
	require.NoError(t, store.Flights().Create(context.Background(), userID, flight))

	req := authed(http.MethodDelete, "/api/flights/"+flight.ID, userID, nil)
	req.SetPathValue("id", flight.ID)
	rr := httptest.NewRecorder()
	h.HandleDeleteFlight(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"flight deleted"}`, rr.Body.String())

	// Deleting again is a 404.
	req = authed(http.MethodDelete, "/api/flights/"+flight.ID, userID, nil)
	req.SetPathValue("id", flight.ID)
	rr = httptest.NewRecorder()
	h.HandleDeleteFlight(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleFlightAutofill_NotFound(t *testing.T) {
	h, _, userID := newFixture(t)

	req := authed(http.MethodGet, "/api/flights/autofill/ZZ999", userID, nil)
	req.SetPathValue("flightNumber", "ZZ999")
	rr := httptest.NewRecorder()
	h.HandleFlightAutofill(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleStats(t *testing.T) {
	h, store, userID := newFixture(t)

	d, err := model.ParseDate("2024-11-02")
	require.NoError(t, err)
	entry := &model.TravelHistory{Date: d, Destination: "Tokyo"}
	require.NoError(t, store.TravelHistory().Create(context.Background(), userID, entry))

	rr := httptest.NewRecorder()
	h.HandleStats(rr, authed(http.MethodGet, "/api/stats", userID, nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var stats model.Stats
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&stats))
	assert.Equal(t, 1, stats.Travel)
	assert.Equal(t, 0, stats.Flights)
}

func TestHandleExport_UnknownFormat(t *testing.T) {
	_, store, userID := newFixture(t)

	engine := export.NewEngine(store, testLogger())
	h := handler.NewExportHandler(engine, testLogger())

	req := authed(http.MethodGet, "/api/export/docx", userID, nil)
	req.SetPathValue("format", "docx")
	rr := httptest.NewRecorder()
	h.HandleExport(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleExport_CSVDownload(t *testing.T) {
	_, store, userID := newFixture(t)

	d, err := model.ParseDate("2024-11-02")
	require.NoError(t, err)
	entry := &model.TravelHistory{Date: d, Destination: "Tokyo"}
	require.NoError(t, store.TravelHistory().Create(context.Background(), userID, entry))

	engine := export.NewEngine(store, testLogger())
	h := handler.NewExportHandler(engine, testLogger())

	req := authed(http.MethodGet, "/api/export/csv?sections=travel", userID, nil)
	req.SetPathValue("format", "csv")
	rr := httptest.NewRecorder()
	h.HandleExport(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="personal-data-export.csv"`, rr.Header().Get("Content-Disposition"))
	assert.Contains(t, rr.Body.String(), "TRAVEL\n")
	assert.Contains(t, rr.Body.String(), "2024-11-02,Tokyo,")
}

func TestUnauthenticatedRequestIs401(t *testing.T) {
	h, _, _ := newFixture(t)

	// No user ID in context at all.
	rr := httptest.NewRecorder()
	h.HandleListTravelHistory(rr, httptest.NewRequest(http.MethodGet, "/api/travel-history", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
