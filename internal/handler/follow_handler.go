package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"feedgram/internal/service"
)

type FollowResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	targetID := mux.Vars(r)["id"]
	if targetID == "" {
		WriteError(w, "User id is required", http.StatusBadRequest)
		return
	}

	status, err := h.FollowService.Follow(r.Context(), userID, targetID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	message := "You are now following this user"
	if status == service.StatusPending {
		message = "Follow request sent"
	}

	WriteSuccess(w, FollowResponse{Status: status, Message: message}, http.StatusOK)
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	targetID := mux.Vars(r)["id"]
	if targetID == "" {
		WriteError(w, "User id is required", http.StatusBadRequest)
		return
	}

	if err := h.FollowService.Unfollow(r.Context(), userID, targetID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, FollowResponse{Status: service.StatusNotFollowing, Message: "Unfollowed"}, http.StatusOK)
}

func (h *Handlers) FollowStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	targetID := mux.Vars(r)["id"]
	if targetID == "" {
		WriteError(w, "User id is required", http.StatusBadRequest)
		return
	}

	status, err := h.FollowService.Status(r.Context(), userID, targetID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, FollowResponse{Status: status}, http.StatusOK)
}

func (h *Handlers) FollowRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	requests, err := h.FollowService.PendingRequests(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, requests, http.StatusOK)
}

func (h *Handlers) AcceptFollowRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	requesterID := mux.Vars(r)["id"]
	if requesterID == "" {
		WriteError(w, "User id is required", http.StatusBadRequest)
		return
	}

	if err := h.FollowService.AcceptRequest(r.Context(), userID, requesterID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Follow request accepted"}, http.StatusOK)
}

func (h *Handlers) RejectFollowRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	requesterID := mux.Vars(r)["id"]
	if requesterID == "" {
		WriteError(w, "User id is required", http.StatusBadRequest)
		return
	}

	if err := h.FollowService.RejectRequest(r.Context(), userID, requesterID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Follow request rejected"}, http.StatusOK)
}

func (h *Handlers) TogglePrivacy(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	isPrivate, message, err := h.FollowService.TogglePrivacy(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"isPrivate": isPrivate,
		"message":   message,
	}, http.StatusOK)
}

func (h *Handlers) Followers(w http.ResponseWriter, r *http.Request) {
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

	followers, err := h.FollowService.Followers(r.Context(), viewerID, targetID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, followers, http.StatusOK)
}

func (h *Handlers) Following(w http.ResponseWriter, r *http.Request) {
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

	following, err := h.FollowService.Following(r.Context(), viewerID, targetID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, following, http.StatusOK)
}
