package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// errNoBearerToken reports a request with no usable Authorization header.
var errNoBearerToken = errors.New("auth: missing bearer token")

// contextKey is an unexported type used for context keys in this package.
//
// context.WithValue uses any as the key type. A package-private key type
// means only THIS package can read or write userID values in the
// context, so no other package can collide with or shadow them.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth is the middleware that enforces authentication on every
// data route. It reads the "Authorization: Bearer <token>" header,
// validates the JWT, and stores the userID in the request context.
//
// Every failure mode (missing header, malformed scheme, expired token,
// bad signature) produces the same generic 401 body. The distinction
// is logged server-side if needed, never surfaced to the client, so a
// probing caller learns nothing about why a credential was rejected.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID stores the authenticated user's ID in the context.
// RequireAuth calls it after token validation; handler tests use it to
// simulate an authenticated request.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext retrieves the authenticated user's ID from the
// request context.
//
// Returns (id, true) on a RequireAuth-protected route, ("", false) if
// no valid credential was presented.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// extractUserID pulls the bearer token out of the Authorization header
// and validates it.
//
// Header format: "Authorization: Bearer eyJhbGciOi..."
// The scheme comparison is case-insensitive per RFC 7235.
func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errNoBearerToken
	}

	return tokens.Validate(strings.TrimSpace(token))
}
