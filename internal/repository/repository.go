// Package repository defines the persistence gateway: the single
// data-access abstraction shared by the CRUD routes and the export
// engine.
//
// Every collection method is scoped by the owning user's ID. Ownership
// mismatch and non-existence are deliberately indistinguishable: Update
// returns NotFound and Delete returns false in both cases, so a caller
// probing another user's record IDs cannot confirm they exist.
//
// The contract is implemented twice with identical external behaviour:
// repository/sqlite (durable) and repository/memory (tests and DB-free
// development). Services and handlers only ever see these interfaces,
// which is what makes the backends substitutable.
package repository

import (
	"context"

	"github.com/sakif/travelvault/internal/model"
)

// Store bundles the per-collection repositories behind one constructor
// seam. The composition root picks a backend; everything downstream is
// wired against Store.
type Store interface {
	Users() UserRepository
	PersonalInfo() PersonalInfoRepository
	TravelHistory() TravelHistoryRepository
	Flights() FlightRepository
	Employers() EmployerRepository
	Education() EducationRepository
	Addresses() AddressRepository
	Close() error
}

// UserRepository manages user accounts. Lookup methods return
// apperror.ErrNotFound (wrapped) when no user matches.
type UserRepository interface {
	// Create persists a new user, assigning ID and CreatedAt. Returns a
	// Conflict error if the username or email is already taken.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// Delete removes the user and, via cascade, every record they own.
	Delete(ctx context.Context, id string) (bool, error)
}

// PersonalInfoRepository manages the singleton-per-user identity record.
type PersonalInfoRepository interface {
	// Get returns the user's record, or (nil, nil) if none exists yet.
	Get(ctx context.Context, userID string) (*model.PersonalInfo, error)
	// Create assigns an ID and forces UserID to the given identity.
	// Returns a Conflict error if the user already has a record.
	Create(ctx context.Context, userID string, info *model.PersonalInfo) error
	Update(ctx context.Context, id, userID string, patch model.PersonalInfoPatch) (*model.PersonalInfo, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// TravelHistoryRepository manages trip entries, listed most recent first.
type TravelHistoryRepository interface {
	List(ctx context.Context, userID string) ([]model.TravelHistory, error)
	Create(ctx context.Context, userID string, entry *model.TravelHistory) error
	Update(ctx context.Context, id, userID string, patch model.TravelHistoryPatch) (*model.TravelHistory, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// FlightRepository manages flights, listed by departure time descending
// (flights with no departure time sort last).
type FlightRepository interface {
	List(ctx context.Context, userID string) ([]model.Flight, error)
	Create(ctx context.Context, userID string, flight *model.Flight) error
	Update(ctx context.Context, id, userID string, patch model.FlightPatch) (*model.Flight, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// EmployerRepository manages employment entries, listed by start date
// descending.
type EmployerRepository interface {
	List(ctx context.Context, userID string) ([]model.Employer, error)
	Create(ctx context.Context, userID string, employer *model.Employer) error
	Update(ctx context.Context, id, userID string, patch model.EmployerPatch) (*model.Employer, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// EducationRepository manages study entries, listed by start date
// descending.
type EducationRepository interface {
	List(ctx context.Context, userID string) ([]model.Education, error)
	Create(ctx context.Context, userID string, education *model.Education) error
	Update(ctx context.Context, id, userID string, patch model.EducationPatch) (*model.Education, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// AddressRepository manages residence entries, listed by from-date
// descending.
type AddressRepository interface {
	List(ctx context.Context, userID string) ([]model.Address, error)
	Create(ctx context.Context, userID string, address *model.Address) error
	Update(ctx context.Context, id, userID string, patch model.AddressPatch) (*model.Address, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}
