package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ChatUsers lists conversation partners with their last message and the
// viewer's unread count, most recent conversation first.
func (h *Handlers) ChatUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	partners, err := h.ChatService.Partners(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, partners, http.StatusOK)
}

func (h *Handlers) ChatHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	otherID := mux.Vars(r)["id"]
	if otherID == "" {
		WriteError(w, "User id is required", http.StatusBadRequest)
		return
	}

	messages, err := h.ChatService.History(r.Context(), userID, otherID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, messages, http.StatusOK)
}

// MarkMessagesRead flips every unread message from the given sender to
// the viewer.
func (h *Handlers) MarkMessagesRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	senderID := mux.Vars(r)["id"]
	if senderID == "" {
		WriteError(w, "User id is required", http.StatusBadRequest)
		return
	}

	updated, err := h.ChatService.MarkRead(r.Context(), senderID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]int64{"updated": updated}, http.StatusOK)
}
