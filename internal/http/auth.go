package httpapi

import (
	"context"
	"net/http"
	"strings"

	"studylog-backend-go/internal/services"
)

type contextKey string

const ctxClaims contextKey = "claims"

// WithAuth verifies the bearer token and attaches the decoded claims to the
// request context for the role guards and handlers downstream.
func WithAuth(tokens services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			claims, err := tokens.ParseToken(strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			ctx := context.WithValue(r.Context(), ctxClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentClaims(r *http.Request) services.TokenClaims {
	if value, ok := r.Context().Value(ctxClaims).(services.TokenClaims); ok {
		return value
	}
	return services.TokenClaims{}
}

func CurrentUserID(r *http.Request) string {
	return CurrentClaims(r).UserID
}

func CurrentRole(r *http.Request) string {
	return CurrentClaims(r).Role
}

func RequireRole(role string) func(http.Handler) http.Handler {
	return RequireAnyRole(role)
}

// RequireAnyRole is the single authorization guard: every role mismatch in
// the API produces the same 403 body.
func RequireAnyRole(roles ...string) func(http.Handler) http.Handler {
	allowed := map[string]bool{}
	for _, role := range roles {
		allowed[strings.ToLower(role)] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowed[strings.ToLower(CurrentRole(r))] {
				next.ServeHTTP(w, r)
				return
			}
			WriteError(w, http.StatusForbidden, "Not allowed")
		})
	}
}

// canAccessStudent implements the shared read rule: teachers may read any
// student, a student may only read themselves.
func canAccessStudent(r *http.Request, studentID string) bool {
	claims := CurrentClaims(r)
	return claims.Role == "teacher" || claims.UserID == studentID
}
