package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/flightinfo"
	"github.com/sakif/travelvault/internal/model"
	"github.com/sakif/travelvault/internal/repository"
)

// FlightLookup is the flight enrichment seam. *flightinfo.Client
// satisfies it; tests substitute a stub.
type FlightLookup interface {
	Lookup(ctx context.Context, flightNumber string) *flightinfo.Info
}

// RecordService enforces the business rules around the six record
// categories: required fields on create, autofill on flight create,
// and the per-user stats rollup. Ownership scoping itself lives in the
// repositories.
type RecordService struct {
	store   repository.Store
	flights FlightLookup
	logger  *slog.Logger
}

func NewRecordService(store repository.Store, flights FlightLookup, logger *slog.Logger) *RecordService {
	return &RecordService{
		store:   store,
		flights: flights,
		logger:  logger,
	}
}

// --- personal info ---

// GetPersonalInfo returns the user's identity record, or (nil, nil)
// when they haven't created one.
func (s *RecordService) GetPersonalInfo(ctx context.Context, userID string) (*model.PersonalInfo, error) {
	return s.store.PersonalInfo().Get(ctx, userID)
}

func (s *RecordService) CreatePersonalInfo(ctx context.Context, userID string, info *model.PersonalInfo) (*model.PersonalInfo, error) {
	if err := s.store.PersonalInfo().Create(ctx, userID, info); err != nil {
		return nil, err
	}
	s.logger.Info("personal info created", slog.String("userID", userID))
	return info, nil
}

func (s *RecordService) UpdatePersonalInfo(ctx context.Context, id, userID string, patch model.PersonalInfoPatch) (*model.PersonalInfo, error) {
	return s.store.PersonalInfo().Update(ctx, id, userID, patch)
}

func (s *RecordService) DeletePersonalInfo(ctx context.Context, id, userID string) error {
	deleted, err := s.store.PersonalInfo().Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("personal info", id)
	}
	return nil
}

// --- travel history ---

func (s *RecordService) ListTravelHistory(ctx context.Context, userID string) ([]model.TravelHistory, error) {
	return s.store.TravelHistory().List(ctx, userID)
}

func (s *RecordService) CreateTravelHistory(ctx context.Context, userID string, entry *model.TravelHistory) (*model.TravelHistory, error) {
	if entry.Date.IsZero() {
		return nil, apperror.ValidationFailed("date", "date is required")
	}
	if strings.TrimSpace(entry.Destination) == "" {
		return nil, apperror.ValidationFailed("destination", "destination is required")
	}
	if err := s.store.TravelHistory().Create(ctx, userID, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *RecordService) UpdateTravelHistory(ctx context.Context, id, userID string, patch model.TravelHistoryPatch) (*model.TravelHistory, error) {
	return s.store.TravelHistory().Update(ctx, id, userID, patch)
}

func (s *RecordService) DeleteTravelHistory(ctx context.Context, id, userID string) error {
	return s.deleteOwned(ctx, "travel entry", id, func() (bool, error) {
		return s.store.TravelHistory().Delete(ctx, id, userID)
	})
}

// --- flights ---

func (s *RecordService) ListFlights(ctx context.Context, userID string) ([]model.Flight, error) {
	return s.store.Flights().List(ctx, userID)
}

// CreateFlight saves a flight, first enriching it from the lookup
// client when the user supplied only a flight number. User-entered
// fields always win over looked-up ones; the lookup fills gaps, it
// never overwrites.
func (s *RecordService) CreateFlight(ctx context.Context, userID string, flight *model.Flight) (*model.Flight, error) {
	if strings.TrimSpace(flight.FlightNumber) == "" {
		return nil, apperror.ValidationFailed("flight_number", "flight number is required")
	}

	if flight.Airline == "" {
		if info := s.flights.Lookup(ctx, flight.FlightNumber); info != nil {
			mergeFlightInfo(flight, info)
			s.logger.Info("flight autofilled",
				slog.String("userID", userID),
				slog.String("flightNumber", flight.FlightNumber),
			)
		}
	}

	if strings.TrimSpace(flight.Airline) == "" {
		return nil, apperror.ValidationFailed("airline", "airline is required")
	}
	if strings.TrimSpace(flight.DepartureAirport) == "" {
		return nil, apperror.ValidationFailed("departure_airport", "departure airport is required")
	}
	if strings.TrimSpace(flight.ArrivalAirport) == "" {
		return nil, apperror.ValidationFailed("arrival_airport", "arrival airport is required")
	}

	if err := s.store.Flights().Create(ctx, userID, flight); err != nil {
		return nil, err
	}
	return flight, nil
}

func (s *RecordService) UpdateFlight(ctx context.Context, id, userID string, patch model.FlightPatch) (*model.Flight, error) {
	return s.store.Flights().Update(ctx, id, userID, patch)
}

func (s *RecordService) DeleteFlight(ctx context.Context, id, userID string) error {
	return s.deleteOwned(ctx, "flight", id, func() (bool, error) {
		return s.store.Flights().Delete(ctx, id, userID)
	})
}

// AutofillFlight looks up flight details by number without saving
// anything. Returns NotFound when the lookup yields nothing.
func (s *RecordService) AutofillFlight(ctx context.Context, flightNumber string) (*flightinfo.Info, error) {
	if strings.TrimSpace(flightNumber) == "" {
		return nil, apperror.ValidationFailed("flight_number", "flight number is required")
	}
	info := s.flights.Lookup(ctx, flightNumber)
	if info == nil {
		return nil, apperror.NotFound("flight data", flightNumber)
	}
	return info, nil
}

// mergeFlightInfo copies looked-up details into empty flight fields.
func mergeFlightInfo(flight *model.Flight, info *flightinfo.Info) {
	if flight.Airline == "" {
		flight.Airline = info.Airline
	}
	if flight.DepartureAirport == "" {
		flight.DepartureAirport = info.DepartureAirport
	}
	if flight.ArrivalAirport == "" {
		flight.ArrivalAirport = info.ArrivalAirport
	}
	if flight.DepartureTime == nil {
		flight.DepartureTime = info.DepartureTime
	}
	if flight.ArrivalTime == nil {
		flight.ArrivalTime = info.ArrivalTime
	}
	if flight.Gate == nil {
		flight.Gate = info.Gate
	}
	if flight.Status == nil {
		flight.Status = info.Status
	}
}

// --- employers ---

func (s *RecordService) ListEmployers(ctx context.Context, userID string) ([]model.Employer, error) {
	return s.store.Employers().List(ctx, userID)
}

func (s *RecordService) CreateEmployer(ctx context.Context, userID string, employer *model.Employer) (*model.Employer, error) {
	if strings.TrimSpace(employer.CompanyName) == "" {
		return nil, apperror.ValidationFailed("company_name", "company name is required")
	}
	if strings.TrimSpace(employer.Role) == "" {
		return nil, apperror.ValidationFailed("role", "role is required")
	}
	if employer.StartDate.IsZero() {
		return nil, apperror.ValidationFailed("start_date", "start date is required")
	}
	if err := s.store.Employers().Create(ctx, userID, employer); err != nil {
		return nil, err
	}
	return employer, nil
}

func (s *RecordService) UpdateEmployer(ctx context.Context, id, userID string, patch model.EmployerPatch) (*model.Employer, error) {
	return s.store.Employers().Update(ctx, id, userID, patch)
}

func (s *RecordService) DeleteEmployer(ctx context.Context, id, userID string) error {
	return s.deleteOwned(ctx, "employer", id, func() (bool, error) {
		return s.store.Employers().Delete(ctx, id, userID)
	})
}

// --- education ---

func (s *RecordService) ListEducation(ctx context.Context, userID string) ([]model.Education, error) {
	return s.store.Education().List(ctx, userID)
}

func (s *RecordService) CreateEducation(ctx context.Context, userID string, education *model.Education) (*model.Education, error) {
	if strings.TrimSpace(education.Institution) == "" {
		return nil, apperror.ValidationFailed("institution", "institution is required")
	}
	if strings.TrimSpace(education.Degree) == "" {
		return nil, apperror.ValidationFailed("degree", "degree is required")
	}
	if education.StartDate.IsZero() {
		return nil, apperror.ValidationFailed("start_date", "start date is required")
	}
	if err := s.store.Education().Create(ctx, userID, education); err != nil {
		return nil, err
	}
	return education, nil
}

func (s *RecordService) UpdateEducation(ctx context.Context, id, userID string, patch model.EducationPatch) (*model.Education, error) {
	return s.store.Education().Update(ctx, id, userID, patch)
}

func (s *RecordService) DeleteEducation(ctx context.Context, id, userID string) error {
	return s.deleteOwned(ctx, "education record", id, func() (bool, error) {
		return s.store.Education().Delete(ctx, id, userID)
	})
}

// --- addresses ---

func (s *RecordService) ListAddresses(ctx context.Context, userID string) ([]model.Address, error) {
	return s.store.Addresses().List(ctx, userID)
}

func (s *RecordService) CreateAddress(ctx context.Context, userID string, address *model.Address) (*model.Address, error) {
	if strings.TrimSpace(address.Address) == "" {
		return nil, apperror.ValidationFailed("address", "address is required")
	}
	if strings.TrimSpace(address.City) == "" {
		return nil, apperror.ValidationFailed("city", "city is required")
	}
	if strings.TrimSpace(address.Country) == "" {
		return nil, apperror.ValidationFailed("country", "country is required")
	}
	if address.FromDate.IsZero() {
		return nil, apperror.ValidationFailed("from_date", "from date is required")
	}
	if err := s.store.Addresses().Create(ctx, userID, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *RecordService) UpdateAddress(ctx context.Context, id, userID string, patch model.AddressPatch) (*model.Address, error) {
	return s.store.Addresses().Update(ctx, id, userID, patch)
}

func (s *RecordService) DeleteAddress(ctx context.Context, id, userID string) error {
	return s.deleteOwned(ctx, "address", id, func() (bool, error) {
		return s.store.Addresses().Delete(ctx, id, userID)
	})
}

// --- stats ---

// Stats counts the user's records per category for the dashboard.
func (s *RecordService) Stats(ctx context.Context, userID string) (*model.Stats, error) {
	stats := &model.Stats{}

	info, err := s.store.PersonalInfo().Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/records: counting personal info: %w", err)
	}
	if info != nil {
		stats.Personal = 1
	}

	travel, err := s.store.TravelHistory().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/records: counting travel history: %w", err)
	}
	stats.Travel = len(travel)

	flights, err := s.store.Flights().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/records: counting flights: %w", err)
	}
	stats.Flights = len(flights)

	employers, err := s.store.Employers().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/records: counting employers: %w", err)
	}
	stats.Employers = len(employers)

	education, err := s.store.Education().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/records: counting education: %w", err)
	}
	stats.Education = len(education)

	addresses, err := s.store.Addresses().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/records: counting addresses: %w", err)
	}
	stats.Addresses = len(addresses)

	return stats, nil
}

// deleteOwned translates the repositories' "deleted or never existed"
// boolean into the NotFound error the HTTP layer expects.
func (s *RecordService) deleteOwned(_ context.Context, resource, id string, del func() (bool, error)) error {
	deleted, err := del()
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound(resource, id)
	}
	return nil
}
