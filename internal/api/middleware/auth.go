package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Context keys for storing user information
type contextKey string

const (
	// UserIDKey holds the verified actor identifier for the request
	UserIDKey contextKey = "user_id"
)

// AuthMiddleware verifies bearer tokens issued by the external identity
// provider. The provider owns issuance; this middleware only verifies the
// signature and trusts the subject claim as the caller's identity.
type AuthMiddleware struct {
	key []byte
}

// NewAuthMiddleware creates an auth middleware verifying HS256 tokens with
// the shared secret
func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{key: []byte(secret)}
}

// RequireAuth ensures the request carries a valid token.
// If not authenticated, returns 401. If authenticated, injects the verified
// user id into the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.verifyRequest(r)
		if err != nil {
			log.Printf("[AUTH_FAILURE] ip=%s method=%s path=%s error=%v",
				r.RemoteAddr, r.Method, r.URL.Path, err)
			writeAuthError(w, "Invalid or missing token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the user id if a valid token is present but doesn't
// require one. Used by the feed, which works for anonymous viewers.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.verifyRequest(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verifyRequest extracts and verifies the bearer token, returning the
// subject claim
func (m *AuthMiddleware) verifyRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errMissingToken
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	parsed, err := jwt.Parse([]byte(token), jwt.WithKey(jwa.HS256, m.key), jwt.WithValidate(true))
	if err != nil {
		return "", err
	}

	subject := parsed.Subject()
	if subject == "" {
		return "", errMissingSubject
	}

	return subject, nil
}

// GetUserID returns the verified user id from the request context, empty if
// the request is unauthenticated
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(UserIDKey).(string)
	return userID
}

var (
	errMissingToken   = jwtError("missing bearer token")
	errMissingSubject = jwtError("missing subject claim")
)

type jwtError string

func (e jwtError) Error() string { return string(e) }

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "AuthRequired",
		"message": message,
	}); err != nil {
		log.Printf("Failed to encode auth error response: %v", err)
	}
}
