package api

import (
	"net/http"

	"github.com/causeswipe/causeswipe/pkg/core/services"
	"github.com/causeswipe/causeswipe/pkg/db"
)

type createAchievementRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	Type          string  `json:"type" validate:"required,oneof=badge medal"`
	Tier          string  `json:"tier" validate:"required,oneof=bronze silver gold"`
	Icon          string  `json:"icon"`
	Category      string  `json:"category"`
	CriteriaType  string  `json:"criteriaType" validate:"required"`
	CriteriaValue float64 `json:"criteriaValue"`
	CriteriaSkill string  `json:"criteriaSkill"`
}

func (h *Handler) handleCreateAchievement(w http.ResponseWriter, r *http.Request) {
	var req createAchievementRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	id, err := services.CreateAchievement(r.Context(), h.store, h.logger, services.CreateAchievementParams{
		Name:          req.Name,
		Description:   req.Description,
		Type:          db.AchievementType(req.Type),
		Tier:          db.Tier(req.Tier),
		Icon:          req.Icon,
		Category:      req.Category,
		CriteriaType:  req.CriteriaType,
		CriteriaValue: req.CriteriaValue,
		CriteriaSkill: req.CriteriaSkill,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

type checkAchievementsRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func (h *Handler) handleCheckAchievements(w http.ResponseWriter, r *http.Request) {
	var req checkAchievementsRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	unlocked, err := services.CheckAndAwardAchievements(r.Context(), h.store, h.logger, h.mailer, req.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, unlocked)
}

type awardCustomMedalRequest struct {
	UserID      string `json:"userId" validate:"required"`
	NGOID       string `json:"ngoId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (h *Handler) handleAwardCustomMedal(w http.ResponseWriter, r *http.Request) {
	var req awardCustomMedalRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	id, err := services.AwardCustomMedal(r.Context(), h.store, h.logger, h.mailer,
		req.UserID, req.NGOID, req.Name, req.Description, req.Icon)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handleListAchievements returns the achievements earned by ?userId=, or
// every template when no user is given
func (h *Handler) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		achievements, err := h.store.ListAchievements(r.Context())
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, achievements)
		return
	}

	earned, err := services.GetUserAchievements(r.Context(), h.store, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, earned)
}
