package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afigueiredo/werkstatt/internal/models"
)

// fakeLoader implements UserLoader for testing.
type fakeLoader struct {
	users    map[int]*models.User
	tokenID  int
	tokenErr error
	loadErr  error
}

func (f *fakeLoader) GetUser(_ context.Context, id int) (*models.User, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.users[id], nil
}

func (f *fakeLoader) VerifyToken(string) (int, error) {
	if f.tokenErr != nil {
		return 0, f.tokenErr
	}
	return f.tokenID, nil
}

func echoUser(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			t.Error("expected user in context")
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	admin := &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	tests := []struct {
		name     string
		loader   *fakeLoader
		header   map[string]string
		wantCode int
	}{
		{
			name:     "valid user id header",
			loader:   &fakeLoader{users: map[int]*models.User{1: admin}},
			header:   map[string]string{"X-User-Id": "1"},
			wantCode: http.StatusOK,
		},
		{
			name:     "valid bearer token",
			loader:   &fakeLoader{users: map[int]*models.User{1: admin}, tokenID: 1},
			header:   map[string]string{"Authorization": "Bearer tok"},
			wantCode: http.StatusOK,
		},
		{
			name:     "missing identity",
			loader:   &fakeLoader{users: map[int]*models.User{1: admin}},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "non-numeric user id",
			loader:   &fakeLoader{users: map[int]*models.User{1: admin}},
			header:   map[string]string{"X-User-Id": "abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "unknown user",
			loader:   &fakeLoader{users: map[int]*models.User{}},
			header:   map[string]string{"X-User-Id": "9"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "bad token",
			loader:   &fakeLoader{tokenErr: errors.New("expired")},
			header:   map[string]string{"Authorization": "Bearer tok"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "store failure",
			loader:   &fakeLoader{loadErr: errors.New("db down")},
			header:   map[string]string{"X-User-Id": "1"},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Authenticate(tt.loader)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest("GET", "/api/clients", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}

func TestAuthenticate_PutsUserInContext(t *testing.T) {
	admin := &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	loader := &fakeLoader{users: map[int]*models.User{1: admin}}

	handler := Authenticate(loader)(echoUser(t))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-User-Id", "1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		allowed  []models.Role
		wantCode int
	}{
		{
			name:     "role allowed",
			user:     &models.User{ID: 1, Role: models.RoleAdmin},
			allowed:  []models.Role{models.RoleAdmin},
			wantCode: http.StatusOK,
		},
		{
			name:     "role forbidden",
			user:     &models.User{ID: 2, Role: models.RoleTechnician},
			allowed:  []models.Role{models.RoleAdmin},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "one of several roles",
			user:     &models.User{ID: 3, Role: models.RoleManager},
			allowed:  []models.Role{models.RoleAdmin, models.RoleManager},
			wantCode: http.StatusOK,
		},
		{
			name:     "no user in context",
			user:     nil,
			allowed:  []models.Role{models.RoleAdmin},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(tt.allowed...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest("DELETE", "/api/clients/1", nil)
			if tt.user != nil {
				req = req.WithContext(ContextWithUser(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}
