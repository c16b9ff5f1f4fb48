package api

import (
	"net/http"

	"github.com/causeswipe/causeswipe/pkg/core/services"
	"github.com/causeswipe/causeswipe/pkg/db"
)

type swipeRequest struct {
	UserID        string `json:"userId" validate:"required"`
	OpportunityID string `json:"opportunityId" validate:"required"`
	SwipeType     string `json:"swipeType" validate:"required,oneof=left right super"`
}

func (h *Handler) handleSwipe(w http.ResponseWriter, r *http.Request) {
	var req swipeRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	result, err := services.SwipeOpportunity(r.Context(), h.store, h.logger, h.mailer,
		req.UserID, req.OpportunityID, db.SwipeType(req.SwipeType))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}
