package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/afigueiredo/werkstatt/internal/models"
)

// fakeUserStore implements UserStore for testing.
type fakeUserStore struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUserStore) GetUser(_ context.Context, id int) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[username], nil
}

func storeWithUser(t *testing.T, username, password string, role models.Role) (*fakeUserStore, *models.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		ID:       1,
		Username: username,
		Password: string(hash),
		Name:     "Test User",
		Email:    "test@example.com",
		Role:     role,
	}
	return &fakeUserStore{users: map[string]*models.User{username: user}}, user
}

func TestAuthService_Login_Success(t *testing.T) {
	store, want := storeWithUser(t, "admin", "admin123", models.RoleAdmin)
	auth := NewAuthService(store, []byte("test-secret"))

	user, token, err := auth.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != want.ID {
		t.Errorf("expected user %d, got %d", want.ID, user.ID)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	store, _ := storeWithUser(t, "admin", "admin123", models.RoleAdmin)
	auth := NewAuthService(store, []byte("test-secret"))

	_, _, err := auth.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	auth := NewAuthService(&fakeUserStore{users: map[string]*models.User{}}, []byte("test-secret"))

	_, _, err := auth.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	auth := NewAuthService(&fakeUserStore{err: errors.New("db down")}, []byte("test-secret"))

	_, _, err := auth.Login(context.Background(), "admin", "admin123")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestAuthService_VerifyToken_Roundtrip(t *testing.T) {
	store, want := storeWithUser(t, "tech", "secret99", models.RoleTechnician)
	auth := NewAuthService(store, []byte("test-secret"))

	_, token, err := auth.Login(context.Background(), "tech", "secret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	id, err := auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if id != want.ID {
		t.Errorf("expected user id %d, got %d", want.ID, id)
	}
}

func TestAuthService_VerifyToken_WrongSecret(t *testing.T) {
	store, _ := storeWithUser(t, "tech", "secret99", models.RoleTechnician)
	auth := NewAuthService(store, []byte("test-secret"))

	_, token, err := auth.Login(context.Background(), "tech", "secret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	other := NewAuthService(store, []byte("different-secret"))
	if _, err := other.VerifyToken(token); err == nil {
		t.Error("expected verification to fail with the wrong secret")
	}
}

func TestAuthService_VerifyToken_Garbage(t *testing.T) {
	store, _ := storeWithUser(t, "tech", "secret99", models.RoleTechnician)
	auth := NewAuthService(store, []byte("test-secret"))

	if _, err := auth.VerifyToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter22")); err != nil {
		t.Errorf("hash does not verify: %v", err)
	}
}
