// Package sqlite implements the repository interfaces with SQLite as
// the durable storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go
// translation of the SQLite sources, so it works everywhere Go works.
//
// Dates are stored as TEXT in YYYY-MM-DD form (model.Date handles the
// conversion via driver.Valuer/sql.Scanner), so ORDER BY on a date
// column is both lexicographic and chronological. Flight timestamps are
// DATETIME columns scanned back into time.Time.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: the driver registers itself with database/sql
	// under the name "sqlite".
	_ "modernc.org/sqlite"

	"github.com/sakif/travelvault/internal/repository"
)

// compile-time check that *DB implements the full gateway contract
var _ repository.Store = (*DB)(nil)

// DB wraps a sql.DB connection pool and hands out the per-collection
// repositories. All of them share this one pool.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs
// migrations.
//
// dbPath examples:
//   - "data/travelvault.db"  → file-based database (persistent)
//   - ":memory:"             → in-memory database (tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// PRAGMAs are per-connection, and every ":memory:" connection is a
	// separate empty database. Pinning the pool to one connection keeps
	// the pragmas below in force for every query.
	conn.SetMaxOpenConns(1)

	// sql.Open only creates the pool; Ping forces a real connection so a
	// bad path or permissions problem surfaces here, not on first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress;
	// needed for a web server where multiple requests hit the DB.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. They must be ON here:
	// deleting a user cascades to every record they own.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New;
// it flushes the WAL and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Users() repository.UserRepository                 { return &userRepo{db} }
func (db *DB) PersonalInfo() repository.PersonalInfoRepository  { return &personalInfoRepo{db} }
func (db *DB) TravelHistory() repository.TravelHistoryRepository { return &travelRepo{db} }
func (db *DB) Flights() repository.FlightRepository             { return &flightRepo{db} }
func (db *DB) Employers() repository.EmployerRepository         { return &employerRepo{db} }
func (db *DB) Education() repository.EducationRepository        { return &educationRepo{db} }
func (db *DB) Addresses() repository.AddressRepository          { return &addressRepo{db} }

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it safe
// to run on every startup; for this schema that is simpler than a
// migration tracker.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- user_id is UNIQUE: personal info is a singleton per user.
		CREATE TABLE IF NOT EXISTS personal_info (
			id              TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			full_name       TEXT,
			passport_number TEXT,
			dob             TEXT
		);

		CREATE TABLE IF NOT EXISTS travel_history (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			date        TEXT NOT NULL,
			destination TEXT NOT NULL,
			notes       TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_travel_history_user_id ON travel_history(user_id);

		CREATE TABLE IF NOT EXISTS flights (
			id                TEXT PRIMARY KEY,
			user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			flight_number     TEXT NOT NULL,
			airline           TEXT NOT NULL,
			departure_airport TEXT NOT NULL,
			arrival_airport   TEXT NOT NULL,
			departure_time    DATETIME,
			arrival_time      DATETIME,
			gate              TEXT,
			status            TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_flights_user_id ON flights(user_id);

		CREATE TABLE IF NOT EXISTS employers (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			company_name TEXT NOT NULL,
			role         TEXT NOT NULL,
			start_date   TEXT NOT NULL,
			end_date     TEXT,
			notes        TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_employers_user_id ON employers(user_id);

		CREATE TABLE IF NOT EXISTS education (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			institution TEXT NOT NULL,
			degree      TEXT NOT NULL,
			start_date  TEXT NOT NULL,
			end_date    TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_education_user_id ON education(user_id);

		CREATE TABLE IF NOT EXISTS addresses (
			id        TEXT PRIMARY KEY,
			user_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			address   TEXT NOT NULL,
			city      TEXT NOT NULL,
			state     TEXT,
			country   TEXT NOT NULL,
			from_date TEXT NOT NULL,
			to_date   TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_addresses_user_id ON addresses(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
