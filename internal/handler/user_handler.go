package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"feedgram/internal/service"
)

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	profile, err := h.UserService.Profile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, profile, http.StatusOK)
}

func (h *Handlers) UserProfile(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	targetID := mux.Vars(r)["id"]
	if targetID == "" {
		WriteError(w, "User id is required", http.StatusBadRequest)
		return
	}

	profile, err := h.UserService.UserProfile(r.Context(), viewerID, targetID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, profile, http.StatusOK)
}

// UpdateProfile accepts multipart form data so the avatar can ride along
// with the text fields.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	req := service.UpdateProfileRequest{
		UserID:   userID,
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
	}

	file, header, err := r.FormFile("avatar")
	if err == nil {
		defer file.Close()
		req.Avatar = file
		req.AvatarName = header.Filename
		req.AvatarSize = header.Size
	} else if err != http.ErrMissingFile {
		WriteError(w, "Invalid avatar file", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, toUserResponse(user), http.StatusOK)
}

func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	if err := h.UserService.DeleteAccount(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Account deleted"}, http.StatusOK)
}

func (h *Handlers) SearchUsers(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		WriteError(w, "Search query is required", http.StatusBadRequest)
		return
	}

	users, err := h.UserService.Search(r.Context(), viewerID, query)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}
