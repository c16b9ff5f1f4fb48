package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/causeswipe/causeswipe/pkg/core/services"
	"github.com/causeswipe/causeswipe/pkg/db"
)

type createNGORequest struct {
	UserID           string `json:"userId" validate:"required"`
	OrganizationName string `json:"organizationName" validate:"required"`
	Mission          string `json:"mission" validate:"required"`
	Description      string `json:"description" validate:"required"`
	Logo             string `json:"logo"`
	CoverImage       string `json:"coverImage"`
	Website          string `json:"website" validate:"omitempty,url"`
}

func (h *Handler) handleCreateNGO(w http.ResponseWriter, r *http.Request) {
	var req createNGORequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	id, err := services.CreateNGO(r.Context(), h.store, h.logger, services.CreateNGOParams{
		UserID:           req.UserID,
		OrganizationName: req.OrganizationName,
		Mission:          req.Mission,
		Description:      req.Description,
		Logo:             req.Logo,
		CoverImage:       req.CoverImage,
		Website:          req.Website,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handleListNGOs returns the organization owned by ?userId=, or every
// verified organization when no user is given
func (h *Handler) handleListNGOs(w http.ResponseWriter, r *http.Request) {
	if userID := r.URL.Query().Get("userId"); userID != "" {
		ngo, err := h.store.GetNGOByUserID(r.Context(), userID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, ngo)
		return
	}

	ngos, err := h.store.ListVerifiedNGOs(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ngos)
}

func (h *Handler) handleGetNGO(w http.ResponseWriter, r *http.Request) {
	ngo, err := h.store.GetNGO(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ngo)
}

type updateNGORequest struct {
	OrganizationName *string         `json:"organizationName"`
	Mission          *string         `json:"mission"`
	Vision           *string         `json:"vision"`
	Description      *string         `json:"description"`
	Logo             *string         `json:"logo"`
	CoverImage       *string         `json:"coverImage"`
	Website          *string         `json:"website" validate:"omitempty,url"`
	SocialMedia      *db.SocialMedia `json:"socialMedia"`
}

func (h *Handler) handleUpdateNGO(w http.ResponseWriter, r *http.Request) {
	var req updateNGORequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	err := services.UpdateNGO(r.Context(), h.store, h.logger, chi.URLParam(r, "id"), db.NGOUpdate{
		OrganizationName: req.OrganizationName,
		Mission:          req.Mission,
		Vision:           req.Vision,
		Description:      req.Description,
		Logo:             req.Logo,
		CoverImage:       req.CoverImage,
		Website:          req.Website,
		SocialMedia:      req.SocialMedia,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type verifyNGORequest struct {
	Verified bool `json:"verified"`
}

func (h *Handler) handleVerifyNGO(w http.ResponseWriter, r *http.Request) {
	var req verifyNGORequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	err := services.VerifyNGO(r.Context(), h.store, h.logger, chi.URLParam(r, "id"), req.Verified)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleNGOStats(w http.ResponseWriter, r *http.Request) {
	stats, err := services.GetNGOStats(r.Context(), h.store, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
