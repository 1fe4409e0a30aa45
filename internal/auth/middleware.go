package auth

import (
	"encoding/json"
	"net/http"
	"strings"
)

type TokenVerifier interface {
	Verify(token string) (userID uint, email string, role string, err error)
}

// RequireAuth validates the bearer token and attaches the principal to the
// request context. Requests without a valid token never reach the handler.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeUnauthorized(w, "bearer token required")
				return
			}

			userID, email, role, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := ContextWithPrincipal(r.Context(), Principal{
				UserID: userID,
				Email:  email,
				Role:   role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route behind a role. Must be mounted after
// RequireAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeUnauthorized(w, "authentication required")
				return
			}

			if principal.Role != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]string{
					"error":   "FORBIDDEN",
					"message": "insufficient permissions",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "UNAUTHORIZED",
		"message": message,
	})
}
