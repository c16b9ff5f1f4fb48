package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/causeswipe/causeswipe/pkg/core/services"
)

type createTaskRequest struct {
	NGOID          string     `json:"ngoId" validate:"required"`
	MatchID        string     `json:"matchId"`
	AssignedTo     string     `json:"assignedTo"`
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description" validate:"required"`
	Category       string     `json:"category" validate:"required"`
	Deadline       *time.Time `json:"deadline"`
	EstimatedHours *float64   `json:"estimatedHours" validate:"omitempty,gt=0"`
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	id, err := services.CreateTask(r.Context(), h.store, h.logger, h.mailer, services.CreateTaskParams{
		NGOID:          req.NGOID,
		MatchID:        req.MatchID,
		AssignedTo:     req.AssignedTo,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Deadline:       req.Deadline,
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handleListTasks serves the open task board by default, a volunteer's own
// tasks with ?userId=, or an organization's tasks with ?ngoId=&own=true
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if userID := q.Get("userId"); userID != "" {
		tasks, err := services.GetTasksForVolunteer(r.Context(), h.store, userID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, tasks)
		return
	}

	ngoID := q.Get("ngoId")
	if ngoID != "" && q.Get("own") == "true" {
		tasks, err := services.GetTasksForNGO(r.Context(), h.store, ngoID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, tasks)
		return
	}

	tasks, err := services.GetAvailableTasks(r.Context(), h.store, ngoID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := services.GetTask(r.Context(), h.store, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, task)
}

type claimTaskRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func (h *Handler) handleClaimTask(w http.ResponseWriter, r *http.Request) {
	var req claimTaskRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	id, err := services.ClaimTask(r.Context(), h.store, h.logger, chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) handleStartTask(w http.ResponseWriter, r *http.Request) {
	id, err := services.StartTask(r.Context(), h.store, h.logger, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

type submitTaskRequest struct {
	SubmissionText string `json:"submissionText" validate:"required"`
}

func (h *Handler) handleSubmitTask(w http.ResponseWriter, r *http.Request) {
	var req submitTaskRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	id, err := services.SubmitTask(r.Context(), h.store, h.logger, h.mailer, chi.URLParam(r, "id"), req.SubmissionText)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

type reviewTaskRequest struct {
	Approve  bool   `json:"approve"`
	Feedback string `json:"feedback"`
}

func (h *Handler) handleReviewTask(w http.ResponseWriter, r *http.Request) {
	var req reviewTaskRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	id, err := services.ReviewTask(r.Context(), h.store, h.logger, h.mailer, chi.URLParam(r, "id"), req.Approve, req.Feedback)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}
