// Package memory implements the repository interfaces with in-process
// maps guarded by a single RWMutex.
//
// It exists for two reasons: tests get an isolated store per run with
// no filesystem, and the server can boot without a database file
// (DB_PATH=memory). The behaviour must stay byte-identical to the
// sqlite backend: same ordering, same Conflict/NotFound semantics,
// same cascade on user delete, which the shared repository tests in
// repotest verify against both.
//
// Records are stored and returned as shallow copies. That is safe
// because patches replace pointer fields rather than writing through
// them, so a caller can never mutate a stored record via an alias.
package memory

import (
	"sync"

	"github.com/sakif/travelvault/internal/model"
	"github.com/sakif/travelvault/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store holds every collection keyed by record ID. One mutex covers
// them all; contention is irrelevant at the scale this backend serves.
type Store struct {
	mu sync.RWMutex

	users     map[string]model.User
	personal  map[string]model.PersonalInfo
	travel    map[string]model.TravelHistory
	flights   map[string]model.Flight
	employers map[string]model.Employer
	education map[string]model.Education
	addresses map[string]model.Address
}

// New creates an empty in-memory store. Each call returns a fully
// isolated instance; tests never share state.
func New() *Store {
	return &Store{
		users:     make(map[string]model.User),
		personal:  make(map[string]model.PersonalInfo),
		travel:    make(map[string]model.TravelHistory),
		flights:   make(map[string]model.Flight),
		employers: make(map[string]model.Employer),
		education: make(map[string]model.Education),
		addresses: make(map[string]model.Address),
	}
}

// Close is a no-op; it satisfies repository.Store so the composition
// root can treat both backends uniformly.
func (s *Store) Close() error {
	return nil
}

func (s *Store) Users() repository.UserRepository                  { return &userRepo{s} }
func (s *Store) PersonalInfo() repository.PersonalInfoRepository   { return &personalInfoRepo{s} }
func (s *Store) TravelHistory() repository.TravelHistoryRepository { return &travelRepo{s} }
func (s *Store) Flights() repository.FlightRepository              { return &flightRepo{s} }
func (s *Store) Employers() repository.EmployerRepository          { return &employerRepo{s} }
func (s *Store) Education() repository.EducationRepository         { return &educationRepo{s} }
func (s *Store) Addresses() repository.AddressRepository           { return &addressRepo{s} }

// deleteOwned removes every record owned by userID across all
// collections, the in-memory equivalent of ON DELETE CASCADE.
// Caller must hold the write lock.
func (s *Store) deleteOwned(userID string) {
	for id, r := range s.personal {
		if r.UserID == userID {
			delete(s.personal, id)
		}
	}
	for id, r := range s.travel {
		if r.UserID == userID {
			delete(s.travel, id)
		}
	}
	for id, r := range s.flights {
		if r.UserID == userID {
			delete(s.flights, id)
		}
	}
	for id, r := range s.employers {
		if r.UserID == userID {
			delete(s.employers, id)
		}
	}
	for id, r := range s.education {
		if r.UserID == userID {
			delete(s.education, id)
		}
	}
	for id, r := range s.addresses {
		if r.UserID == userID {
			delete(s.addresses, id)
		}
	}
}
