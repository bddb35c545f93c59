package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sameersharma62616/edyucationn/middleware"
	"github.com/sameersharma62616/edyucationn/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaylistStore is the slice of the store the playlists handler needs.
// Mutations are scoped to the owner at query time; a non-owner's request
// matches nothing and is reported as not found.
type PlaylistStore interface {
	InsertPlaylist(ctx context.Context, playlist *models.Playlist) (primitive.ObjectID, error)
	PlaylistsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Playlist, error)
	UpdatePlaylistLectures(ctx context.Context, id, ownerID primitive.ObjectID, lectureIDs []primitive.ObjectID) (bool, error)
	DeletePlaylist(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error)
	LecturesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Lecture, error)
}

type PlaylistsHandler struct {
	DB PlaylistStore
}

type CreatePlaylistRequest struct {
	Title      string   `json:"title"`
	LectureIDs []string `json:"lectureIds"`
}

type UpdatePlaylistRequest struct {
	LectureIDs []string `json:"lectureIds"`
}

// PlaylistView is a playlist with its lectures inlined.
type PlaylistView struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	CreatedBy string           `json:"createdBy"`
	Lectures  []models.Lecture `json:"lectures"`
	CreatedAt time.Time        `json:"createdAt"`
}

func parseObjectIDs(hexIDs []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, h := range hexIDs {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *PlaylistsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	var req CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeMessage(w, http.StatusBadRequest, "Title is required")
		return
	}
	lectureIDs, err := parseObjectIDs(req.LectureIDs)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid lecture id")
		return
	}
	playlist := &models.Playlist{
		Title:     req.Title,
		CreatedBy: ident.ID,
		Lectures:  lectureIDs,
		CreatedAt: time.Now(),
	}
	id, err := h.DB.InsertPlaylist(r.Context(), playlist)
	if err != nil {
		serverError(w, "create playlist", err)
		return
	}
	playlist.ID = id
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Playlist created",
		"playlist": playlist,
	})
}

// ListMine returns the caller's playlists with lectures inlined.
func (h *PlaylistsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	playlists, err := h.DB.PlaylistsByOwner(r.Context(), ident.ID)
	if err != nil {
		serverError(w, "list playlists", err)
		return
	}
	views := make([]PlaylistView, 0, len(playlists))
	for i := range playlists {
		lectures, err := h.DB.LecturesByIDs(r.Context(), playlists[i].Lectures)
		if err != nil {
			serverError(w, "list playlists", err)
			return
		}
		views = append(views, PlaylistView{
			ID:        playlists[i].ID.Hex(),
			Title:     playlists[i].Title,
			CreatedBy: playlists[i].CreatedBy.Hex(),
			Lectures:  lectures,
			CreatedAt: playlists[i].CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

// Update replaces the playlist's lecture list. Owner-scoped: a non-owner
// gets 404.
func (h *PlaylistsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid playlist id")
		return
	}
	var req UpdatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	lectureIDs, err := parseObjectIDs(req.LectureIDs)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid lecture id")
		return
	}
	matched, err := h.DB.UpdatePlaylistLectures(r.Context(), id, ident.ID, lectureIDs)
	if err != nil {
		serverError(w, "update playlist", err)
		return
	}
	if !matched {
		writeMessage(w, http.StatusNotFound, "Playlist not found")
		return
	}
	writeMessage(w, http.StatusOK, "Playlist updated")
}

// Delete removes the playlist. Owner-scoped: a non-owner gets 404.
func (h *PlaylistsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid playlist id")
		return
	}
	deleted, err := h.DB.DeletePlaylist(r.Context(), id, ident.ID)
	if err != nil {
		serverError(w, "delete playlist", err)
		return
	}
	if !deleted {
		writeMessage(w, http.StatusNotFound, "Playlist not found")
		return
	}
	writeMessage(w, http.StatusOK, "Playlist deleted")
}
