package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sameersharma62616/edyucationn/middleware"
	"github.com/sameersharma62616/edyucationn/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, userID primitive.ObjectID, role string, ttl time.Duration) string {
	t.Helper()
	claims := &middleware.Claims{
		UserID: userID.Hex(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// protectedProbe records whether the inner handler ran and what identity it saw.
type protectedProbe struct {
	called bool
	ident  middleware.Identity
}

func (p *protectedProbe) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.ident, _ = middleware.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}
}

func doAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *protectedProbe) {
	t.Helper()
	probe := &protectedProbe{}
	h := middleware.Auth(testSecret)(probe.handler())
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, probe
}

func TestAuthMissingToken(t *testing.T) {
	rec, probe := doAuth(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if probe.called {
		t.Fatal("handler ran without a token")
	}
}

func TestAuthGarbageToken(t *testing.T) {
	rec, probe := doAuth(t, "not-a-jwt")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if probe.called {
		t.Fatal("handler ran with a garbage token")
	}
}

func TestAuthWrongSecret(t *testing.T) {
	token := signToken(t, "some-other-secret", primitive.NewObjectID(), models.RoleStudent, time.Hour)
	rec, probe := doAuth(t, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if probe.called {
		t.Fatal("handler ran with a foreign-signed token")
	}
}

func TestAuthExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, primitive.NewObjectID(), models.RoleStudent, -time.Hour)
	rec, probe := doAuth(t, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if probe.called {
		t.Fatal("handler ran with an expired token")
	}
}

func TestAuthValidToken(t *testing.T) {
	userID := primitive.NewObjectID()
	token := signToken(t, testSecret, userID, models.RoleTeacher, time.Hour)
	rec, probe := doAuth(t, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !probe.called {
		t.Fatal("handler did not run")
	}
	if probe.ident.ID != userID {
		t.Errorf("identity id = %s, want %s", probe.ident.ID.Hex(), userID.Hex())
	}
	if probe.ident.Role != models.RoleTeacher {
		t.Errorf("identity role = %q, want teacher", probe.ident.Role)
	}
}

func TestAuthBearerPrefixTolerated(t *testing.T) {
	token := signToken(t, testSecret, primitive.NewObjectID(), models.RoleStudent, time.Hour)
	rec, probe := doAuth(t, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !probe.called {
		t.Fatal("handler did not run")
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		required   string
		callerRole string
		wantStatus int
	}{
		{"admin route, admin caller", models.RoleAdmin, models.RoleAdmin, http.StatusOK},
		{"admin route, teacher caller", models.RoleAdmin, models.RoleTeacher, http.StatusForbidden},
		{"admin route, student caller", models.RoleAdmin, models.RoleStudent, http.StatusForbidden},
		{"teacher route, teacher caller", models.RoleTeacher, models.RoleTeacher, http.StatusOK},
		{"teacher route, admin caller", models.RoleTeacher, models.RoleAdmin, http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			probe := &protectedProbe{}
			h := middleware.RequireRole(tc.required)(probe.handler())
			req := httptest.NewRequest(http.MethodGet, "/gated", nil)
			ident := middleware.Identity{ID: primitive.NewObjectID(), Role: tc.callerRole}
			req = req.WithContext(middleware.WithIdentity(req.Context(), ident))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK && !probe.called {
				t.Fatal("handler did not run")
			}
			if tc.wantStatus != http.StatusOK && probe.called {
				t.Fatal("handler ran despite role mismatch")
			}
		})
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	probe := &protectedProbe{}
	h := middleware.RequireRole(models.RoleAdmin)(probe.handler())
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if probe.called {
		t.Fatal("handler ran without an identity")
	}
}
