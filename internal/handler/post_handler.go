package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"feedgram/internal/service"
)

// CreatePost accepts multipart form data: title and content fields plus
// an optional image file.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	req := service.CreatePostRequest{
		UserID:  userID,
		Title:   strings.TrimSpace(r.FormValue("title")),
		Content: strings.TrimSpace(r.FormValue("content")),
	}

	if req.Title == "" {
		WriteError(w, "Title is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		req.Image = file
		req.ImageName = header.Filename
		req.ImageSize = header.Size
	} else if err != http.ErrMissingFile {
		WriteError(w, "Invalid image file", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		WriteError(w, "Post id is required", http.StatusBadRequest)
		return
	}

	var req struct {
		Title   string `json:"title" validate:"required"`
		Content string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Title is required", http.StatusBadRequest)
		return
	}

	if err := h.PostService.UpdatePost(r.Context(), postID, userID, req.Title, req.Content); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Post updated"}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		WriteError(w, "Post id is required", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Post deleted"}, http.StatusOK)
}

func (h *Handlers) HomeFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	posts, err := h.PostService.HomeFeed(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		WriteError(w, "Post id is required", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.Like(r.Context(), postID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) UnlikePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		WriteError(w, "Post id is required", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.Unlike(r.Context(), postID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}
