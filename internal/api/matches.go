package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/causeswipe/causeswipe/pkg/core/services"
	"github.com/causeswipe/causeswipe/pkg/db"
)

// handleListMatches serves either an organization's pending applications
// (?ngoId=) or a volunteer's confirmed engagements (?userId=)
func (h *Handler) handleListMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if ngoID := q.Get("ngoId"); ngoID != "" {
		matches, err := services.GetPendingMatchesForNGO(r.Context(), h.store, ngoID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, matches)
		return
	}

	userID := q.Get("userId")
	if userID == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId or ngoId is required"})
		return
	}

	matches, err := services.GetMatchesForVolunteer(r.Context(), h.store, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, matches)
}

func (h *Handler) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := services.GetMatch(r.Context(), h.store, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, match)
}

type respondToMatchRequest struct {
	Accept bool `json:"accept"`
}

func (h *Handler) handleRespondToMatch(w http.ResponseWriter, r *http.Request) {
	var req respondToMatchRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	id, err := services.RespondToMatch(r.Context(), h.store, h.logger, h.mailer, chi.URLParam(r, "id"), req.Accept)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

type updateMatchStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected active completed"`
}

func (h *Handler) handleUpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	var req updateMatchStatusRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	id, err := services.UpdateMatchStatus(r.Context(), h.store, h.logger, chi.URLParam(r, "id"), db.MatchStatus(req.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}
