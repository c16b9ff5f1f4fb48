package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/causeswipe/causeswipe/pkg/core/services"
	"github.com/causeswipe/causeswipe/pkg/db"
)

type createOpportunityRequest struct {
	NGOID          string   `json:"ngoId" validate:"required"`
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	RequiredSkills []string `json:"requiredSkills"`
	TimeCommitment string   `json:"timeCommitment"`
	Location       string   `json:"location"`
	LocationType   string   `json:"locationType" validate:"omitempty,oneof=remote in-person hybrid"`
	Cause          []string `json:"cause"`
	CoverImage     string   `json:"coverImage"`
	Duration       string   `json:"duration"`
	SpotsAvailable *int     `json:"spotsAvailable" validate:"omitempty,min=1"`
	Schedule       string   `json:"schedule"`
}

func (h *Handler) handleCreateOpportunity(w http.ResponseWriter, r *http.Request) {
	var req createOpportunityRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	id, err := services.CreateOpportunity(r.Context(), h.store, h.logger, services.CreateOpportunityParams{
		NGOID:          req.NGOID,
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		TimeCommitment: req.TimeCommitment,
		Location:       req.Location,
		LocationType:   db.LocationType(req.LocationType),
		Cause:          req.Cause,
		CoverImage:     req.CoverImage,
		Duration:       req.Duration,
		SpotsAvailable: req.SpotsAvailable,
		Schedule:       req.Schedule,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handleListOpportunities serves either a volunteer's swipe deck
// (?userId=, with optional cause/skill filters) or an organization's own
// listings (?ngoId=)
func (h *Handler) handleListOpportunities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if ngoID := q.Get("ngoId"); ngoID != "" {
		opportunities, err := h.store.ListOpportunitiesByNGO(r.Context(), ngoID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, opportunities)
		return
	}

	userID := q.Get("userId")
	if userID == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId or ngoId is required"})
		return
	}

	opportunities, err := services.GetOpportunitiesForUser(r.Context(), h.store, userID, q["cause"], q["skill"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, opportunities)
}

func (h *Handler) handleGetOpportunity(w http.ResponseWriter, r *http.Request) {
	opportunity, err := services.GetOpportunity(r.Context(), h.store, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, opportunity)
}

type updateOpportunityRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	RequiredSkills []string `json:"requiredSkills"`
	TimeCommitment *string  `json:"timeCommitment"`
	Schedule       *string  `json:"schedule"`
	IsActive       *bool    `json:"isActive"`
}

func (h *Handler) handleUpdateOpportunity(w http.ResponseWriter, r *http.Request) {
	var req updateOpportunityRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	err := services.UpdateOpportunity(r.Context(), h.store, h.logger, chi.URLParam(r, "id"), db.OpportunityUpdate{
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		TimeCommitment: req.TimeCommitment,
		Schedule:       req.Schedule,
		IsActive:       req.IsActive,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleDeleteOpportunity(w http.ResponseWriter, r *http.Request) {
	err := services.DeleteOpportunity(r.Context(), h.store, h.logger, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleUpcomingSessions(w http.ResponseWriter, r *http.Request) {
	n := 5
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			h.badRequest(w, err)
			return
		}
		n = parsed
	}

	sessions, err := services.UpcomingSessions(r.Context(), h.store, chi.URLParam(r, "id"), n)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sessions)
}
