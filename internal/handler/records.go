package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/auth"
	"github.com/sakif/travelvault/internal/model"
	"github.com/sakif/travelvault/internal/service"
)

// RecordHandler serves the six record collections plus the flight
// autofill and stats endpoints. All of its routes sit behind the auth
// middleware; requireUser is the belt-and-braces check.
type RecordHandler struct {
	records *service.RecordService
	logger  *slog.Logger
}

func NewRecordHandler(records *service.RecordService, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{records: records, logger: logger}
}

// messageResponse is the body for successful deletes.
type messageResponse struct {
	Message string `json:"message"`
}

// requireUser pulls the authenticated user ID from the request context.
// The middleware guarantees it's there; a miss means a wiring bug, and
// the client still just sees a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return "", false
	}
	return userID, true
}

// --- personal info ---

// HandleGetPersonalInfo returns the user's identity record, or null
// when none exists yet.
//
// GET /api/personal-info
func (h *RecordHandler) HandleGetPersonalInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	info, err := h.records.GetPersonalInfo(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if info == nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null\n"))
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// HandleCreatePersonalInfo creates the singleton identity record.
//
// POST /api/personal-info
func (h *RecordHandler) HandleCreatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var info model.PersonalInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		writeBadJSON(w)
		return
	}

	created, err := h.records.CreatePersonalInfo(r.Context(), userID, &info)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// HandleUpdatePersonalInfo partially updates the identity record.
//
// PUT /api/personal-info/{id}
func (h *RecordHandler) HandleUpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var patch model.PersonalInfoPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadJSON(w)
		return
	}

	updated, err := h.records.UpdatePersonalInfo(r.Context(), r.PathValue("id"), userID, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDeletePersonalInfo removes the identity record.
//
// DELETE /api/personal-info/{id}
func (h *RecordHandler) HandleDeletePersonalInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.records.DeletePersonalInfo(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "personal info deleted"})
}

// --- travel history ---

// GET /api/travel-history
func (h *RecordHandler) HandleListTravelHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	entries, err := h.records.ListTravelHistory(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// POST /api/travel-history
func (h *RecordHandler) HandleCreateTravelHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var entry model.TravelHistory
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeBadJSON(w)
		return
	}

	created, err := h.records.CreateTravelHistory(r.Context(), userID, &entry)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// PUT /api/travel-history/{id}
func (h *RecordHandler) HandleUpdateTravelHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var patch model.TravelHistoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadJSON(w)
		return
	}

	updated, err := h.records.UpdateTravelHistory(r.Context(), r.PathValue("id"), userID, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/travel-history/{id}
func (h *RecordHandler) HandleDeleteTravelHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.records.DeleteTravelHistory(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "travel entry deleted"})
}

// --- flights ---

// GET /api/flights
func (h *RecordHandler) HandleListFlights(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	flights, err := h.records.ListFlights(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, flights)
}

// POST /api/flights
func (h *RecordHandler) HandleCreateFlight(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var flight model.Flight
	if err := json.NewDecoder(r.Body).Decode(&flight); err != nil {
		writeBadJSON(w)
		return
	}

	created, err := h.records.CreateFlight(r.Context(), userID, &flight)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// PUT /api/flights/{id}
func (h *RecordHandler) HandleUpdateFlight(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var patch model.FlightPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadJSON(w)
		return
	}

	updated, err := h.records.UpdateFlight(r.Context(), r.PathValue("id"), userID, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/flights/{id}
func (h *RecordHandler) HandleDeleteFlight(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.records.DeleteFlight(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "flight deleted"})
}

// HandleFlightAutofill looks up flight details by number without
// creating anything, for form prefill in the client.
//
// GET /api/flights/autofill/{flightNumber}
func (h *RecordHandler) HandleFlightAutofill(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	info, err := h.records.AutofillFlight(r.Context(), r.PathValue("flightNumber"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"flight_number":     info.FlightNumber,
		"airline":           info.Airline,
		"departure_airport": info.DepartureAirport,
		"arrival_airport":   info.ArrivalAirport,
		"departure_time":    info.DepartureTime,
		"arrival_time":      info.ArrivalTime,
		"gate":              info.Gate,
		"status":            info.Status,
	})
}

// --- employers ---

// GET /api/employers
func (h *RecordHandler) HandleListEmployers(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	employers, err := h.records.ListEmployers(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employers)
}

// POST /api/employers
func (h *RecordHandler) HandleCreateEmployer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var employer model.Employer
	if err := json.NewDecoder(r.Body).Decode(&employer); err != nil {
		writeBadJSON(w)
		return
	}

	created, err := h.records.CreateEmployer(r.Context(), userID, &employer)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// PUT /api/employers/{id}
func (h *RecordHandler) HandleUpdateEmployer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var patch model.EmployerPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadJSON(w)
		return
	}

	updated, err := h.records.UpdateEmployer(r.Context(), r.PathValue("id"), userID, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/employers/{id}
func (h *RecordHandler) HandleDeleteEmployer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.records.DeleteEmployer(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "employer deleted"})
}

// --- education ---

// GET /api/education
func (h *RecordHandler) HandleListEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	entries, err := h.records.ListEducation(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// POST /api/education
func (h *RecordHandler) HandleCreateEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var education model.Education
	if err := json.NewDecoder(r.Body).Decode(&education); err != nil {
		writeBadJSON(w)
		return
	}

	created, err := h.records.CreateEducation(r.Context(), userID, &education)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// PUT /api/education/{id}
func (h *RecordHandler) HandleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var patch model.EducationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadJSON(w)
		return
	}

	updated, err := h.records.UpdateEducation(r.Context(), r.PathValue("id"), userID, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/education/{id}
func (h *RecordHandler) HandleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.records.DeleteEducation(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "education record deleted"})
}

// --- addresses ---

// GET /api/addresses
func (h *RecordHandler) HandleListAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	addresses, err := h.records.ListAddresses(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, addresses)
}

// POST /api/addresses
func (h *RecordHandler) HandleCreateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var address model.Address
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		writeBadJSON(w)
		return
	}

	created, err := h.records.CreateAddress(r.Context(), userID, &address)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// PUT /api/addresses/{id}
func (h *RecordHandler) HandleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var patch model.AddressPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadJSON(w)
		return
	}

	updated, err := h.records.UpdateAddress(r.Context(), r.PathValue("id"), userID, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/addresses/{id}
func (h *RecordHandler) HandleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.records.DeleteAddress(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "address deleted"})
}

// --- stats ---

// HandleStats returns per-category record counts for the dashboard.
//
// GET /api/stats
func (h *RecordHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	stats, err := h.records.Stats(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
