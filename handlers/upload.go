package handlers

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sameersharma62616/edyucationn/middleware"
	"github.com/sameersharma62616/edyucationn/models"
	"github.com/sameersharma62616/edyucationn/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaStore is the slice of the store the media handler needs.
type MediaStore interface {
	LectureByID(ctx context.Context, id primitive.ObjectID) (*models.Lecture, error)
	UpdateLectureMedia(ctx context.Context, id primitive.ObjectID, mediaKey, videoURL string) error
}

type MediaHandler struct {
	DB       MediaStore
	Media    *service.MediaService // nil when uploads are not configured
	MaxBytes int64
}

// Upload stores a video file in S3 and attaches it to the lecture as its
// media. Creator or admin only; the route group additionally requires the
// teacher role for uploads.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
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
		serverError(w, "upload media", err)
		return
	}
	if lecture == nil {
		writeMessage(w, http.StatusNotFound, "Lecture not found")
		return
	}
	if lecture.CreatedBy != ident.ID && ident.Role != models.RoleAdmin {
		writeMessage(w, http.StatusForbidden, "Not authorized")
		return
	}
	if h.Media == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Upload not configured")
		return
	}

	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(strings.TrimSpace(filepath.Ext(header.Filename)))
	partContentType := header.Header.Get("Content-Type")
	allowedByExt := ext == ".mp4" || ext == ".webm" || ext == ".mov"
	allowedByMime := strings.HasPrefix(partContentType, "video/")
	if !allowedByExt && !allowedByMime {
		writeMessage(w, http.StatusBadRequest, "Only video files are allowed")
		return
	}
	contentType := partContentType
	if contentType == "" {
		contentType = "video/mp4"
	}

	key, err := h.Media.Upload(r.Context(), "lectures/", header.Filename, file, contentType)
	if err != nil {
		serverError(w, "upload media", err)
		return
	}
	videoURL := "/api/lectures/" + id.Hex() + "/media"
	if err := h.DB.UpdateLectureMedia(r.Context(), id, key, videoURL); err != nil {
		serverError(w, "upload media", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message":  "Media uploaded",
		"videoUrl": videoURL,
	})
}

// MediaURL returns a short-lived presigned URL for streaming the
// lecture's uploaded media.
func (h *MediaHandler) MediaURL(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid lecture id")
		return
	}
	lecture, err := h.DB.LectureByID(r.Context(), id)
	if err != nil {
		serverError(w, "lecture media", err)
		return
	}
	if lecture == nil || lecture.MediaKey == "" {
		writeMessage(w, http.StatusNotFound, "No media for this lecture")
		return
	}
	if h.Media == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Media not configured")
		return
	}
	url, err := h.Media.PresignedGetURL(r.Context(), lecture.MediaKey, 15*time.Minute)
	if err != nil {
		serverError(w, "lecture media", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
