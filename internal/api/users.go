package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/causeswipe/causeswipe/pkg/core/services"
	"github.com/causeswipe/causeswipe/pkg/db"
)

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	UserType string `json:"userType" validate:"required,oneof=volunteer ngo"`
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	id, err := services.CreateUser(r.Context(), h.store, h.logger, req.Email, req.Name, db.UserType(req.UserType))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

// handleLookupUser finds a user by ?email=
func (h *Handler) handleLookupUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), email)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Bio               *string  `json:"bio"`
	PersonalStatement *string  `json:"personalStatement"`
	PortfolioLink     *string  `json:"portfolioLink"`
	ProfilePicture    *string  `json:"profilePicture"`
	TechnicalSkills   []string `json:"technicalSkills"`
	SoftSkills        []string `json:"softSkills"`
	Interests         []string `json:"interests"`
	HoursPerWeek      *int     `json:"hoursPerWeek" validate:"omitempty,min=0"`
	AvailableDays     []string `json:"availableDays"`
	PreferredLocation *string  `json:"preferredLocation" validate:"omitempty,oneof=remote in-person hybrid"`
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	update := db.UserProfileUpdate{
		Bio:               req.Bio,
		PersonalStatement: req.PersonalStatement,
		PortfolioLink:     req.PortfolioLink,
		ProfilePicture:    req.ProfilePicture,
		TechnicalSkills:   req.TechnicalSkills,
		SoftSkills:        req.SoftSkills,
		Interests:         req.Interests,
		HoursPerWeek:      req.HoursPerWeek,
		AvailableDays:     req.AvailableDays,
	}
	if req.PreferredLocation != nil {
		loc := db.LocationType(*req.PreferredLocation)
		update.PreferredLocation = &loc
	}

	err := services.UpdateVolunteerProfile(r.Context(), h.store, h.logger, chi.URLParam(r, "id"), update)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type updateUserStatsRequest struct {
	HoursToAdd float64 `json:"hoursToAdd" validate:"min=0"`
	TasksToAdd int     `json:"tasksToAdd" validate:"min=0"`
}

func (h *Handler) handleUpdateUserStats(w http.ResponseWriter, r *http.Request) {
	var req updateUserStatsRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	err := services.UpdateUserStats(r.Context(), h.store, h.logger, chi.URLParam(r, "id"), req.HoursToAdd, req.TasksToAdd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.LeaderboardSize
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.badRequest(w, err)
			return
		}
		limit = n
	}

	entries, err := services.GetLeaderboard(r.Context(), h.store, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}
