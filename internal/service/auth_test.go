package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/auth"
	"github.com/sakif/travelvault/internal/repository"
	"github.com/sakif/travelvault/internal/repository/memory"
)

// newTestAuthService wires an AuthService against the in-memory store.
// The store is returned too, for tests that need to seed or inspect it.
func newTestAuthService(t *testing.T) (*AuthService, repository.Store) {
	t.Helper()

	store := memory.New()

	ts, err := auth.NewTokenService("test-secret-at-least-16-chars!!", 0)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	// Cost 4 is bcrypt's minimum, which keeps tests fast.
	ps := auth.NewPasswordServiceForTest(4)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthService(store.Users(), ts, ps, logger), store
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuthService(t)

	result, err := svc.Register(context.Background(), "alice", "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if result.User.ID == "" {
		t.Error("Register() did not assign a user ID")
	}
	if result.User.Username != "alice" {
		t.Errorf("username = %q, want alice", result.User.Username)
	}
	if result.Token == "" {
		t.Error("Register() did not issue a token")
	}
	if result.User.PasswordHash == "correct-horse" {
		t.Error("password stored in plaintext")
	}
}

func TestRegister_TrimsWhitespace(t *testing.T) {
	svc, _ := newTestAuthService(t)

	result, err := svc.Register(context.Background(), "  alice  ", " alice@example.com ", "correct-horse")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if result.User.Username != "alice" {
		t.Errorf("username = %q, want alice", result.User.Username)
	}
	if result.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", result.User.Email)
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "al", "alice@example.com", "correct-horse"},
		{"whitespace username", "   ", "alice@example.com", "correct-horse"},
		{"email without at sign", "alice", "not-an-email", "correct-horse"},
		{"short password", "alice", "alice@example.com", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestAuthService(t)

			_, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Register() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "alice", "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "alice", "other@example.com", "correct-horse")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Register() error = %v, want ErrConflict", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "alice", "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "bob", "alice@example.com", "correct-horse")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Register() error = %v, want ErrConflict", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)

	registered, err := svc.Register(context.Background(), "alice", "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := svc.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != registered.User.ID {
		t.Errorf("Login() user ID = %q, want %q", result.User.ID, registered.User.ID)
	}
	if result.Token == "" {
		t.Error("Login() did not issue a token")
	}

	// The username is not a login identity.
	if _, err := svc.Login(context.Background(), "alice", "correct-horse"); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("Login() by username error = %v, want ErrUnauthorized", err)
	}
}

// Wrong password and unknown email must be indistinguishable, so an
// attacker can't probe which accounts exist.
func TestLogin_FailuresAreUniform(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "alice", "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, wrongPass := svc.Login(context.Background(), "alice@example.com", "wrong-password")
	_, noUser := svc.Login(context.Background(), "mallory@example.com", "correct-horse")

	if !errors.Is(wrongPass, apperror.ErrUnauthorized) {
		t.Errorf("wrong password error = %v, want ErrUnauthorized", wrongPass)
	}
	if !errors.Is(noUser, apperror.ErrUnauthorized) {
		t.Errorf("unknown user error = %v, want ErrUnauthorized", noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Errorf("failure messages differ: %q vs %q", wrongPass, noUser)
	}
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestAuthService(t)

	registered, err := svc.Register(context.Background(), "alice", "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := svc.CurrentUser(context.Background(), registered.User.ID)
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q, want alice", user.Username)
	}

	if _, err := svc.CurrentUser(context.Background(), "no-such-id"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("CurrentUser() error = %v, want ErrNotFound", err)
	}
}
