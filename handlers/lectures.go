package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sameersharma62616/edyucationn/middleware"
	"github.com/sameersharma62616/edyucationn/models"
	"github.com/sameersharma62616/edyucationn/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LectureStore is the slice of the store the lectures handler needs.
type LectureStore interface {
	InsertLecture(ctx context.Context, lecture *models.Lecture) (primitive.ObjectID, error)
	AllLectures(ctx context.Context) ([]models.Lecture, error)
	LecturesByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Lecture, error)
	LectureByID(ctx context.Context, id primitive.ObjectID) (*models.Lecture, error)
	UpdateLectureContent(ctx context.Context, id primitive.ObjectID, title, subject, description, videoURL string) error
	DeleteLecture(ctx context.Context, id primitive.ObjectID) (mediaKey string, err error)
	SetLectureLiked(ctx context.Context, lectureID, userID primitive.ObjectID, liked bool) error
	AppendComment(ctx context.Context, lectureID primitive.ObjectID, comment models.Comment) error
	UserNamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
}

type LecturesHandler struct {
	DB    LectureStore
	Media *service.MediaService // nil when uploads are not configured
}

type LectureRequest struct {
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
}

// NamedRef is a user reference with its display name resolved, the
// equivalent of Mongoose populate(..., "name").
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CommentView struct {
	Text        string    `json:"text"`
	CommentedBy NamedRef  `json:"commentedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

type LectureView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Subject     string        `json:"subject,omitempty"`
	Description string        `json:"description,omitempty"`
	VideoURL    string        `json:"videoUrl,omitempty"`
	CreatedBy   NamedRef      `json:"createdBy"`
	Likes       int           `json:"likes"`
	Comments    []CommentView `json:"comments"`
	CreatedAt   time.Time     `json:"createdAt"`
}

func commentViews(comments []models.Comment, names map[primitive.ObjectID]string) []CommentView {
	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentView{
			Text:        c.Text,
			CommentedBy: NamedRef{ID: c.CommentedBy.Hex(), Name: names[c.CommentedBy]},
			CreatedAt:   c.CreatedAt,
		})
	}
	return out
}

func lectureView(l *models.Lecture, names map[primitive.ObjectID]string) LectureView {
	return LectureView{
		ID:          l.ID.Hex(),
		Title:       l.Title,
		Subject:     l.Subject,
		Description: l.Description,
		VideoURL:    l.VideoURL,
		CreatedBy:   NamedRef{ID: l.CreatedBy.Hex(), Name: names[l.CreatedBy]},
		Likes:       len(l.Likes),
		Comments:    commentViews(l.Comments, names),
		CreatedAt:   l.CreatedAt,
	}
}

// resolveNames batch-fetches display names for every owner and commenter
// across the given lectures.
func (h *LecturesHandler) resolveNames(ctx context.Context, lectures []models.Lecture) (map[primitive.ObjectID]string, error) {
	seen := map[primitive.ObjectID]bool{}
	var ids []primitive.ObjectID
	for i := range lectures {
		if !seen[lectures[i].CreatedBy] {
			seen[lectures[i].CreatedBy] = true
			ids = append(ids, lectures[i].CreatedBy)
		}
		for _, c := range lectures[i].Comments {
			if !seen[c.CommentedBy] {
				seen[c.CommentedBy] = true
				ids = append(ids, c.CommentedBy)
			}
		}
	}
	return h.DB.UserNamesByIDs(ctx, ids)
}

// Create adds a lecture owned by the calling teacher. The route is gated
// by RequireRole(teacher), which guarantees the owner invariant.
func (h *LecturesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	var req LectureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeMessage(w, http.StatusBadRequest, "Title is required")
		return
	}
	now := time.Now()
	lecture := &models.Lecture{
		Title:       req.Title,
		Subject:     req.Subject,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		CreatedBy:   ident.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := h.DB.InsertLecture(r.Context(), lecture)
	if err != nil {
		serverError(w, "create lecture", err)
		return
	}
	lecture.ID = id
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Lecture created",
		"lecture": lecture,
	})
}

// List returns all lectures with owner and commenter names resolved.
// Public route.
func (h *LecturesHandler) List(w http.ResponseWriter, r *http.Request) {
	lectures, err := h.DB.AllLectures(r.Context())
	if err != nil {
		serverError(w, "list lectures", err)
		return
	}
	names, err := h.resolveNames(r.Context(), lectures)
	if err != nil {
		serverError(w, "list lectures", err)
		return
	}
	views := make([]LectureView, 0, len(lectures))
	for i := range lectures {
		views = append(views, lectureView(&lectures[i], names))
	}
	writeJSON(w, http.StatusOK, views)
}

// ByTeacher returns the lectures created by the given teacher.
func (h *LecturesHandler) ByTeacher(w http.ResponseWriter, r *http.Request) {
	ownerID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid teacher id")
		return
	}
	lectures, err := h.DB.LecturesByOwner(r.Context(), ownerID)
	if err != nil {
		serverError(w, "lectures by teacher", err)
		return
	}
	writeJSON(w, http.StatusOK, lectures)
}

// authorizeOwner fetches the lecture and checks the ownership invariant:
// the caller must be the creator or an admin. The lookup runs first so a
// missing lecture surfaces as 404 before any ownership comparison.
func (h *LecturesHandler) authorizeOwner(w http.ResponseWriter, r *http.Request) (*models.Lecture, bool) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return nil, false
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid lecture id")
		return nil, false
	}
	lecture, err := h.DB.LectureByID(r.Context(), id)
	if err != nil {
		serverError(w, "load lecture", err)
		return nil, false
	}
	if lecture == nil {
		writeMessage(w, http.StatusNotFound, "Lecture not found")
		return nil, false
	}
	if lecture.CreatedBy != ident.ID && ident.Role != models.RoleAdmin {
		writeMessage(w, http.StatusForbidden, "Not authorized")
		return nil, false
	}
	return lecture, true
}

// Update edits a lecture's content. Creator or admin only.
func (h *LecturesHandler) Update(w http.ResponseWriter, r *http.Request) {
	lecture, ok := h.authorizeOwner(w, r)
	if !ok {
		return
	}
	var req LectureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeMessage(w, http.StatusBadRequest, "Title is required")
		return
	}
	if err := h.DB.UpdateLectureContent(r.Context(), lecture.ID, req.Title, req.Subject, req.Description, req.VideoURL); err != nil {
		serverError(w, "update lecture", err)
		return
	}
	updated, err := h.DB.LectureByID(r.Context(), lecture.ID)
	if err != nil || updated == nil {
		serverError(w, "update lecture", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Lecture updated",
		"lecture": updated,
	})
}

// Delete removes a lecture and its uploaded media. Creator or admin only.
func (h *LecturesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lecture, ok := h.authorizeOwner(w, r)
	if !ok {
		return
	}
	mediaKey, err := h.DB.DeleteLecture(r.Context(), lecture.ID)
	if err != nil {
		serverError(w, "delete lecture", err)
		return
	}
	if h.Media != nil && mediaKey != "" {
		if err := h.Media.Delete(r.Context(), mediaKey); err != nil {
			log.Printf("delete lecture media %s: %v", mediaKey, err)
		}
	}
	writeMessage(w, http.StatusOK, "Lecture deleted")
}

// ToggleLike flips the caller's membership in the lecture's likes and
// reports the resulting direction and count. The membership write is a
// single atomic update.
func (h *LecturesHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid lecture id")
		return
	}
	lecture, err := h.DB.LectureByID(r.Context(), id)
	if err != nil {
		serverError(w, "toggle like", err)
		return
	}
	if lecture == nil {
		writeMessage(w, http.StatusNotFound, "Lecture not found")
		return
	}
	alreadyLiked := lecture.LikedBy(ident.ID)
	if err := h.DB.SetLectureLiked(r.Context(), id, ident.ID, !alreadyLiked); err != nil {
		serverError(w, "toggle like", err)
		return
	}
	message := "Liked"
	likes := len(lecture.Likes) + 1
	if alreadyLiked {
		message = "Unliked"
		likes = len(lecture.Likes) - 1
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"likes":   likes,
	})
}

type CommentRequest struct {
	Text string `json:"text"`
}

// AddComment appends a comment to the lecture and returns the full
// comment list with commenter names resolved.
func (h *LecturesHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid lecture id")
		return
	}
	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	lecture, err := h.DB.LectureByID(r.Context(), id)
	if err != nil {
		serverError(w, "add comment", err)
		return
	}
	if lecture == nil {
		writeMessage(w, http.StatusNotFound, "Lecture not found")
		return
	}
	comment := models.Comment{
		Text:        req.Text,
		CommentedBy: ident.ID,
		CreatedAt:   time.Now(),
	}
	if err := h.DB.AppendComment(r.Context(), id, comment); err != nil {
		serverError(w, "add comment", err)
		return
	}
	updated, err := h.DB.LectureByID(r.Context(), id)
	if err != nil || updated == nil {
		serverError(w, "add comment", err)
		return
	}
	names, err := h.resolveNames(r.Context(), []models.Lecture{*updated})
	if err != nil {
		serverError(w, "add comment", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Comment added",
		"comments": commentViews(updated.Comments, names),
	})
}

// Comments returns the lecture's comments with commenter names resolved.
func (h *LecturesHandler) Comments(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid lecture id")
		return
	}
	lecture, err := h.DB.LectureByID(r.Context(), id)
	if err != nil {
		serverError(w, "list comments", err)
		return
	}
	if lecture == nil {
		writeMessage(w, http.StatusNotFound, "Lecture not found")
		return
	}
	names, err := h.resolveNames(r.Context(), []models.Lecture{*lecture})
	if err != nil {
		serverError(w, "list comments", err)
		return
	}
	writeJSON(w, http.StatusOK, commentViews(lecture.Comments, names))
}
