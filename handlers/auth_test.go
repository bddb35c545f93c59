package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sameersharma62616/edyucationn/handlers"
	"github.com/sameersharma62616/edyucationn/middleware"
	"github.com/sameersharma62616/edyucationn/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type mockAuthStore struct {
	userByEmailFn func(ctx context.Context, email string) (*models.User, error)
	createUserFn  func(ctx context.Context, user *models.User) (primitive.ObjectID, error)
}

func (m *mockAuthStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.userByEmailFn != nil {
		return m.userByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockAuthStore) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return primitive.NewObjectID(), nil
}

func newAuthHandler(db *mockAuthStore) *handlers.AuthHandler {
	return &handlers.AuthHandler{
		DB:        db,
		JWTSecret: "unit-test-secret",
		TokenTTL:  time.Hour,
	}
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func TestRegisterCreatesStudent(t *testing.T) {
	var created *models.User
	db := &mockAuthStore{
		createUserFn: func(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
			created = user
			return primitive.NewObjectID(), nil
		},
	}
	h := newAuthHandler(db)

	body := map[string]string{"name": "Asha", "email": "Asha@Example.com", "password": "pw123456"}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if created == nil {
		t.Fatal("no user created")
	}
	if created.Role != models.RoleStudent {
		t.Errorf("role = %q, want student", created.Role)
	}
	if created.Email != "asha@example.com" {
		t.Errorf("email = %q, want lowercased", created.Email)
	}
	if created.Password == "pw123456" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := &mockAuthStore{
		userByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: primitive.NewObjectID(), Email: email}, nil
		},
		createUserFn: func(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
			t.Fatal("CreateUser called for a duplicate email")
			return primitive.NilObjectID, nil
		},
	}
	h := newAuthHandler(db)

	body := map[string]string{"name": "Asha", "email": "asha@example.com", "password": "pw123456"}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["message"] != "Email already in use" {
		t.Fatalf("message = %q, want %q", resp["message"], "Email already in use")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	h := newAuthHandler(&mockAuthStore{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		jsonBody(t, map[string]string{"email": "asha@example.com"}))
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := &mockAuthStore{
		userByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{
				ID:       primitive.NewObjectID(),
				Email:    email,
				Password: hashPassword(t, "right-password"),
				Role:     models.RoleStudent,
			}, nil
		},
	}
	h := newAuthHandler(db)

	body := map[string]string{"email": "asha@example.com", "password": "wrong-password"}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLoginIssuesRoleClaim(t *testing.T) {
	userID := primitive.NewObjectID()
	db := &mockAuthStore{
		userByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{
				ID:       userID,
				Name:     "Ravi",
				Email:    email,
				Password: hashPassword(t, "pw123456"),
				Role:     models.RoleTeacher,
			}, nil
		},
	}
	h := newAuthHandler(db)

	body := map[string]string{"email": "ravi@example.com", "password": "pw123456"}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp handlers.LoginResponse
	decodeBody(t, rec, &resp)
	if resp.User.Role != models.RoleTeacher {
		t.Errorf("user role = %q, want teacher", resp.User.Role)
	}

	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("unit-test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != userID.Hex() {
		t.Errorf("token id claim = %q, want %q", claims.UserID, userID.Hex())
	}
	if claims.Role != models.RoleTeacher {
		t.Errorf("token role claim = %q, want teacher", claims.Role)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	h := newAuthHandler(&mockAuthStore{})
	body := map[string]string{"email": "nobody@example.com", "password": "whatever"}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

// First login with the configured bootstrap credentials creates the admin
// account on the fly.
func TestLoginSeedsBootstrapAdmin(t *testing.T) {
	var created *models.User
	db := &mockAuthStore{
		createUserFn: func(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
			created = user
			return primitive.NewObjectID(), nil
		},
	}
	h := newAuthHandler(db)
	h.AdminEmail = "admin@example.com"
	h.AdminPass = "bootstrap-pass"

	body := map[string]string{"email": "admin@example.com", "password": "bootstrap-pass"}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if created == nil {
		t.Fatal("admin account not seeded")
	}
	if created.Role != models.RoleAdmin {
		t.Errorf("seeded role = %q, want admin", created.Role)
	}
	var resp handlers.LoginResponse
	decodeBody(t, rec, &resp)
	if resp.User.Role != models.RoleAdmin {
		t.Errorf("response role = %q, want admin", resp.User.Role)
	}
}

func TestLoginWrongBootstrapPassword(t *testing.T) {
	db := &mockAuthStore{
		createUserFn: func(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
			t.Fatal("admin seeded despite wrong bootstrap password")
			return primitive.NilObjectID, nil
		},
	}
	h := newAuthHandler(db)
	h.AdminEmail = "admin@example.com"
	h.AdminPass = "bootstrap-pass"

	body := map[string]string{"email": "admin@example.com", "password": "guess"}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
