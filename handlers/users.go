package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sameersharma62616/edyucationn/middleware"
	"github.com/sameersharma62616/edyucationn/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the store the users handler needs.
type UserStore interface {
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	Teachers(ctx context.Context) ([]models.User, error)
	SearchTeachers(ctx context.Context, keyword string) ([]models.User, error)
	SetLectureSaved(ctx context.Context, userID, lectureID primitive.ObjectID, saved bool) error
	UpdateUserCredentials(ctx context.Context, id primitive.ObjectID, email *string, hashedPassword *string) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	LecturesByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Lecture, error)
	LecturesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Lecture, error)
	DeleteLecturesByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
}

type UsersHandler struct {
	DB UserStore
}

// SearchTeachers matches teachers by name or email, case-insensitive.
func (h *UsersHandler) SearchTeachers(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	teachers, err := h.DB.SearchTeachers(r.Context(), keyword)
	if err != nil {
		serverError(w, "search teachers", err)
		return
	}
	out := make([]UserResponse, 0, len(teachers))
	for i := range teachers {
		out = append(out, userToResponse(&teachers[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Teachers returns the public teacher directory.
func (h *UsersHandler) Teachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.DB.Teachers(r.Context())
	if err != nil {
		serverError(w, "list teachers", err)
		return
	}
	out := make([]UserResponse, 0, len(teachers))
	for i := range teachers {
		out = append(out, userToResponse(&teachers[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns a user's display name, for resolving references client-side.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	user, err := h.DB.UserByID(r.Context(), id)
	if err != nil {
		serverError(w, "get user", err)
		return
	}
	if user == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":   user.ID.Hex(),
		"name": user.Name,
	})
}

// ToggleSave flips the lecture's membership in the caller's saved list and
// reports the resulting direction. The membership write is a single atomic
// update.
func (h *UsersHandler) ToggleSave(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	lectureID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "lectureId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid lecture id")
		return
	}
	user, err := h.DB.UserByID(r.Context(), ident.ID)
	if err != nil {
		serverError(w, "toggle save", err)
		return
	}
	if user == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	alreadySaved := user.HasSaved(lectureID)
	if err := h.DB.SetLectureSaved(r.Context(), ident.ID, lectureID, !alreadySaved); err != nil {
		serverError(w, "toggle save", err)
		return
	}
	message := "Lecture saved"
	if alreadySaved {
		message = "Lecture unsaved"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"saved":   !alreadySaved,
	})
}

// SavedLectures returns the caller's saved lectures.
func (h *UsersHandler) SavedLectures(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	user, err := h.DB.UserByID(r.Context(), ident.ID)
	if err != nil {
		serverError(w, "saved lectures", err)
		return
	}
	if user == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	lectures, err := h.DB.LecturesByIDs(r.Context(), user.SavedLectures)
	if err != nil {
		serverError(w, "saved lectures", err)
		return
	}
	writeJSON(w, http.StatusOK, lectures)
}

// AdminDeleteTeacher deletes a teacher and cascades to their lectures.
// The cascade is two independent steps, lectures first; a failure between
// them leaves the user record intact and is surfaced to the caller.
func (h *UsersHandler) AdminDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	teacher, err := h.DB.UserByID(r.Context(), id)
	if err != nil {
		serverError(w, "delete teacher", err)
		return
	}
	if teacher == nil || teacher.Role != models.RoleTeacher {
		writeMessage(w, http.StatusNotFound, "Teacher not found")
		return
	}
	if _, err := h.DB.DeleteLecturesByOwner(r.Context(), id); err != nil {
		serverError(w, "delete teacher lectures", err)
		return
	}
	if err := h.DB.DeleteUser(r.Context(), id); err != nil {
		serverError(w, "delete teacher", err)
		return
	}
	writeMessage(w, http.StatusOK, "Teacher deleted successfully")
}

// TeacherDetails is a teacher with their lectures inlined, for the admin
// dashboard.
type TeacherDetails struct {
	UserResponse
	Lectures []models.Lecture `json:"lectures"`
}

func (h *UsersHandler) AdminTeacherDetails(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.DB.Teachers(r.Context())
	if err != nil {
		serverError(w, "teacher details", err)
		return
	}
	out := make([]TeacherDetails, 0, len(teachers))
	for i := range teachers {
		lectures, err := h.DB.LecturesByOwner(r.Context(), teachers[i].ID)
		if err != nil {
			serverError(w, "teacher details", err)
			return
		}
		out = append(out, TeacherDetails{
			UserResponse: userToResponse(&teachers[i]),
			Lectures:     lectures,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type UpdateCredentialsRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// updateCredentials applies an email/password change to the given user.
func (h *UsersHandler) updateCredentials(w http.ResponseWriter, r *http.Request, id primitive.ObjectID, req UpdateCredentialsRequest) bool {
	var newEmail *string
	if req.Email != nil {
		e := strings.TrimSpace(strings.ToLower(*req.Email))
		if e == "" {
			writeMessage(w, http.StatusBadRequest, "Email cannot be empty")
			return false
		}
		existing, err := h.DB.UserByEmail(r.Context(), e)
		if err != nil {
			serverError(w, "update credentials", err)
			return false
		}
		if existing != nil && existing.ID != id {
			writeMessage(w, http.StatusBadRequest, "Email already in use")
			return false
		}
		newEmail = &e
	}
	var newHash *string
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			serverError(w, "update credentials", err)
			return false
		}
		s := string(hash)
		newHash = &s
	}
	if err := h.DB.UpdateUserCredentials(r.Context(), id, newEmail, newHash); err != nil {
		serverError(w, "update credentials", err)
		return false
	}
	return true
}

// AdminUpdateTeacher updates a teacher's email or password.
func (h *UsersHandler) AdminUpdateTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	var req UpdateCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	teacher, err := h.DB.UserByID(r.Context(), id)
	if err != nil {
		serverError(w, "update teacher", err)
		return
	}
	if teacher == nil || teacher.Role != models.RoleTeacher {
		writeMessage(w, http.StatusNotFound, "Teacher not found")
		return
	}
	if !h.updateCredentials(w, r, id, req) {
		return
	}
	writeMessage(w, http.StatusOK, "Teacher updated successfully")
}

// AdminUpdateSelf updates the calling admin's own email or password.
func (h *UsersHandler) AdminUpdateSelf(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	var req UpdateCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.updateCredentials(w, r, ident.ID, req) {
		return
	}
	writeMessage(w, http.StatusOK, "Admin updated successfully")
}
