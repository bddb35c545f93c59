package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sameersharma62616/edyucationn/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller, taken verbatim from the verified
// token claims. The credential store is not consulted per request, so a
// role change only takes effect once the holder's token expires.
type Identity struct {
	ID   primitive.ObjectID
	Role string
}

type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Auth verifies the token in the Authorization header and stores the
// caller's Identity in the request context. Clients send the raw token
// value; a standard "Bearer " prefix is also accepted.
func Auth(jwtSecret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				http.Error(w, `{"message":"Access denied. No token provided."}`, http.StatusUnauthorized)
				return
			}
			raw = strings.TrimPrefix(raw, "Bearer ")
			token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, `{"message":"Invalid token"}`, http.StatusBadRequest)
				return
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				http.Error(w, `{"message":"Invalid token"}`, http.StatusBadRequest)
				return
			}
			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				http.Error(w, `{"message":"Invalid token"}`, http.StatusBadRequest)
				return
			}
			ident := Identity{ID: userID, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// RequireRole rejects callers whose role differs from role. Must be
// mounted after Auth; a missing identity is treated as forbidden.
func RequireRole(role string) func(next http.Handler) http.Handler {
	msg := `{"message":"Access denied."}`
	switch role {
	case models.RoleAdmin:
		msg = `{"message":"Access denied. Admins only."}`
	case models.RoleTeacher:
		msg = `{"message":"Access denied. Teachers only."}`
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFromContext(r.Context())
			if !ok || ident.Role != role {
				http.Error(w, msg, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok
}
