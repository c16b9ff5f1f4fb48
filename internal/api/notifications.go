package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/causeswipe/causeswipe/pkg/core/services"
)

func (h *Handler) handleGetNotifications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("userId")
	if userID == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	limit := h.cfg.NotificationPageSize
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.badRequest(w, err)
			return
		}
		limit = n
	}

	notifications, err := services.GetNotifications(r.Context(), h.store, userID, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, notifications)
}

func (h *Handler) handleUnreadNotificationCount(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	count, err := services.GetUnreadNotificationCount(r.Context(), h.store, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	err := services.MarkNotificationRead(r.Context(), h.store, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type markAllNotificationsReadRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func (h *Handler) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	var req markAllNotificationsReadRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	err := services.MarkAllNotificationsRead(r.Context(), h.store, req.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
