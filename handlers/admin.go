package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/sameersharma62616/edyucationn/models"
	"github.com/sameersharma62616/edyucationn/service"
	"github.com/sameersharma62616/edyucationn/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// AdminStore is the slice of the store the admin handler needs.
type AdminStore interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	GetMailSettings(ctx context.Context) (*models.MailSettings, error)
	UpsertMailSettings(ctx context.Context, settings *models.MailSettings) error
}

type AdminHandler struct {
	DB     AdminStore
	Mailer *service.Mailer // nil when notifications are disabled
	EncKey []byte          // 32 bytes for AES-256; nil means SMTP password stored in plaintext
}

type CreateTeacherRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateTeacher provisions a teacher account. Admin only (gated by the
// router). A welcome email is sent best-effort when mail is configured.
func (h *AdminHandler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req CreateTeacherRequest
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
		serverError(w, "create teacher", err)
		return
	}
	if existing != nil {
		writeMessage(w, http.StatusBadRequest, "Email already in use")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		serverError(w, "create teacher", err)
		return
	}
	teacher := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleTeacher,
	}
	id, err := h.DB.CreateUser(r.Context(), teacher)
	if err != nil {
		serverError(w, "create teacher", err)
		return
	}
	teacher.ID = id

	if h.Mailer != nil {
		body := "Hello " + teacher.Name + ",\n\nA teacher account has been created for you on EduConnect.\nSign in with this email address to start publishing lectures.\n"
		if err := h.Mailer.Send(r.Context(), teacher.Email, "Your EduConnect teacher account", body); err != nil && !errors.Is(err, service.ErrMailNotConfigured) {
			log.Printf("create teacher: welcome mail to %s: %v", teacher.Email, err)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Teacher created successfully",
		"teacher": userToResponse(teacher),
	})
}

type MailSettingsRequest struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

type MailSettingsResponse struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	From     string `json:"from"`
	// Password is never returned; HasPassword signals whether one is stored.
	HasPassword bool `json:"hasPassword"`
}

// GetMailSettings returns the deployment's SMTP settings without the password.
func (h *AdminHandler) GetMailSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.DB.GetMailSettings(r.Context())
	if err != nil {
		serverError(w, "mail settings", err)
		return
	}
	if settings == nil {
		writeJSON(w, http.StatusOK, MailSettingsResponse{})
		return
	}
	writeJSON(w, http.StatusOK, MailSettingsResponse{
		Host:        settings.Host,
		Port:        settings.Port,
		Username:    settings.Username,
		From:        settings.From,
		HasPassword: settings.Password != "",
	})
}

// SaveMailSettings creates or updates the SMTP settings. The password is
// encrypted at rest when an encryption key is configured.
func (h *AdminHandler) SaveMailSettings(w http.ResponseWriter, r *http.Request) {
	var req MailSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Host == "" || req.Port == 0 || req.From == "" {
		writeMessage(w, http.StatusBadRequest, "Host, port and from are required")
		return
	}
	passwordToStore := req.Password
	if len(h.EncKey) == 32 && passwordToStore != "" {
		enc, err := utils.Encrypt([]byte(passwordToStore), h.EncKey)
		if err != nil {
			serverError(w, "mail settings", err)
			return
		}
		passwordToStore = enc
	}
	settings := &models.MailSettings{
		Host:     req.Host,
		Port:     req.Port,
		Username: req.Username,
		Password: passwordToStore,
		From:     req.From,
	}
	if err := h.DB.UpsertMailSettings(r.Context(), settings); err != nil {
		serverError(w, "mail settings", err)
		return
	}
	writeMessage(w, http.StatusOK, "Mail settings saved")
}
