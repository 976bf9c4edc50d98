package sqlite

import (
	"testing"

	"github.com/sakif/travelvault/internal/repository"
	"github.com/sakif/travelvault/internal/repository/repotest"
)

// newTestDB opens a fresh in-memory database per test: no disk I/O,
// isolated, destroyed when the connection closes.
func newTestDB(t *testing.T) repository.Store {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteStore(t *testing.T) {
	repotest.Run(t, newTestDB)
}

func TestNew_BadPath(t *testing.T) {
	_, err := New("/no/such/dir/travelvault.db")
	if err == nil {
		t.Fatal("New() with unwritable path succeeded, want error")
	}
}
