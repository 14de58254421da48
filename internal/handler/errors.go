package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"feedgram/internal/repository"
	"feedgram/internal/service"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError sends a JSON error with the given status code.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess sends any payload as JSON with the given status code.
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// handleServiceError maps domain errors to HTTP status codes. Anything
// unrecognized is a 500 with a generic message so internals do not leak.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicateEmail):
		WriteError(w, "Email already exists", http.StatusConflict)
	case errors.Is(err, repository.ErrDuplicateUsername):
		WriteError(w, "Username already exists", http.StatusConflict)
	case errors.Is(err, repository.ErrAlreadyFollowing):
		WriteError(w, "Already following this user", http.StatusBadRequest)
	case errors.Is(err, repository.ErrNoSuchRequest):
		WriteError(w, "No follow request from this user", http.StatusBadRequest)
	case errors.Is(err, repository.ErrAlreadyLiked):
		WriteError(w, "Post already liked", http.StatusBadRequest)
	case errors.Is(err, repository.ErrNotLiked):
		WriteError(w, "Post not liked", http.StatusBadRequest)
	case errors.Is(err, service.ErrSelfFollow):
		WriteError(w, "You cannot follow yourself", http.StatusBadRequest)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, "Access denied", http.StatusForbidden)
	case errors.Is(err, service.ErrUnauthorized):
		WriteError(w, "Invalid email or password", http.StatusUnauthorized)
	default:
		WriteError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// userIDFromContext extracts the authenticated user set by the auth
// middleware. An empty result means the middleware did not run.
func userIDFromContext(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value("userID").(string)
	return userID, ok && userID != ""
}
