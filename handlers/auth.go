package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sameersharma62616/edyucationn/middleware"
	"github.com/sameersharma62616/edyucationn/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// AuthStore is the slice of the store the auth handler needs.
type AuthStore interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
}

type AuthHandler struct {
	DB        AuthStore
	JWTSecret string
	TokenTTL  time.Duration
	// Bootstrap admin credentials (from config); accepted on login while no
	// user exists for that email, seeding the first admin account.
	AdminEmail string
	AdminPass  string
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func userToResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// Register creates a student account. Teachers are provisioned by an admin,
// admins are seeded from config.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	existing, err := h.DB.UserByEmail(r.Context(), req.Email)
	if err != nil {
		serverError(w, "register", err)
		return
	}
	if existing != nil {
		writeMessage(w, http.StatusBadRequest, "Email already in use")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		serverError(w, "register", err)
		return
	}
	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleStudent,
	}
	id, err := h.DB.CreateUser(r.Context(), user)
	if err != nil {
		serverError(w, "register", err)
		return
	}
	user.ID = id
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    userToResponse(user),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.DB.UserByEmail(r.Context(), req.Email)
	if err != nil {
		serverError(w, "login", err)
		return
	}
	if user == nil {
		// Accept the configured bootstrap credentials and seed the admin.
		if req.Email != strings.ToLower(h.AdminEmail) || req.Password != h.AdminPass {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		user, err = h.ensureBootstrapAdmin(r.Context())
		if err != nil {
			serverError(w, "login", err)
			return
		}
	} else {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
	}

	token, err := h.createToken(user)
	if err != nil {
		serverError(w, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: userToResponse(user)})
}

func (h *AuthHandler) ensureBootstrapAdmin(ctx context.Context) (*models.User, error) {
	// Check again in case of a racing first login
	user, err := h.DB.UserByEmail(ctx, strings.ToLower(h.AdminEmail))
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(h.AdminPass), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &models.User{
		Name:     "Admin",
		Email:    strings.ToLower(h.AdminEmail),
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	id, err := h.DB.CreateUser(ctx, admin)
	if err != nil {
		return nil, err
	}
	admin.ID = id
	return admin, nil
}

func (h *AuthHandler) createToken(user *models.User) (string, error) {
	claims := &middleware.Claims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.JWTSecret))
}
