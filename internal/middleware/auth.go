// Package middleware provides HTTP middlewares for authentication,
// authorization and request logging.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/afigueiredo/werkstatt/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// UserLoader resolves an authenticated user id to a full user record.
type UserLoader interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	VerifyToken(token string) (int, error)
}

// Authenticate resolves the caller's identity and stores the user in
// the request context.
//
// Identity comes from either an "Authorization: Bearer" token issued at
// login, or the legacy X-User-Id header carrying a numeric user id.
// Requests with neither, or with an id that resolves to no user, are
// rejected with 401.
func Authenticate(auth UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := callerID(auth, r)
			if !ok {
				unauthorized(w, "unauthorized")
				return
			}

			user, err := auth.GetUser(r.Context(), userID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if user == nil {
				unauthorized(w, "user not found")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func callerID(auth UserLoader, r *http.Request) (int, bool) {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		id, err := auth.VerifyToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			return 0, false
		}
		return id, true
	}
	if h := r.Header.Get("X-User-Id"); h != "" {
		id, err := strconv.Atoi(h)
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

// RequireRole rejects with 403 any authenticated caller whose role is
// not in the allowed set. It must run after Authenticate.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				unauthorized(w, "unauthorized")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "forbidden"})
		})
	}
}

// UserFromContext extracts the authenticated user from the request
// context. Returns nil if not present.
func UserFromContext(ctx context.Context) *models.User {
	if u, ok := ctx.Value(userKey).(*models.User); ok {
		return u
	}
	return nil
}

// ContextWithUser returns ctx carrying user; handler tests use it to
// bypass the middleware.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
