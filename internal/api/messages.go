package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/causeswipe/causeswipe/pkg/core/services"
	"github.com/causeswipe/causeswipe/pkg/db"
)

type sendMessageRequest struct {
	MatchID    string `json:"matchId" validate:"required"`
	SenderID   string `json:"senderId" validate:"required"`
	SenderType string `json:"senderType" validate:"required,oneof=volunteer ngo"`
	Content    string `json:"content" validate:"required"`
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	id, err := services.SendMessage(r.Context(), h.store, h.logger, h.mailer,
		req.MatchID, req.SenderID, db.UserType(req.SenderType), req.Content)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := services.GetMessagesForMatch(r.Context(), h.store, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, messages)
}

type markMessagesReadRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func (h *Handler) handleMarkMessagesRead(w http.ResponseWriter, r *http.Request) {
	var req markMessagesReadRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	err := services.MarkMessagesAsRead(r.Context(), h.store, chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleUnreadMessageCount(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	count, err := services.GetUnreadMessageCount(r.Context(), h.store, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"count": count})
}
