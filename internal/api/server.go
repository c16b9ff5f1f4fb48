package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/internal/config"
	"github.com/causeswipe/causeswipe/pkg/core/services"
	"github.com/causeswipe/causeswipe/pkg/db"
)

// Handler carries the dependencies shared by every endpoint
type Handler struct {
	store    db.Store
	logger   *zap.Logger
	mailer   services.Mailer
	cfg      *config.Config
	validate *validator.Validate
}

// New creates an API handler. mailer may be nil when email delivery is
// disabled.
func New(store db.Store, logger *zap.Logger, mailer services.Mailer, cfg *config.Config) *Handler {
	return &Handler{
		store:    store,
		logger:   logger,
		mailer:   mailer,
		cfg:      cfg,
		validate: validator.New(),
	}
}

// Router builds the JSON API surface
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.CleanPath)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", h.handleCreateUser)
		r.Get("/users", h.handleLookupUser)
		r.Get("/users/{id}", h.handleGetUser)
		r.Post("/users/{id}/profile", h.handleUpdateProfile)
		r.Post("/users/{id}/stats", h.handleUpdateUserStats)
		r.Get("/leaderboard", h.handleLeaderboard)

		r.Post("/ngos", h.handleCreateNGO)
		r.Get("/ngos", h.handleListNGOs)
		r.Get("/ngos/{id}", h.handleGetNGO)
		r.Post("/ngos/{id}", h.handleUpdateNGO)
		r.Post("/ngos/{id}/verify", h.handleVerifyNGO)
		r.Get("/ngos/{id}/stats", h.handleNGOStats)

		r.Post("/opportunities", h.handleCreateOpportunity)
		r.Get("/opportunities", h.handleListOpportunities)
		r.Get("/opportunities/{id}", h.handleGetOpportunity)
		r.Post("/opportunities/{id}", h.handleUpdateOpportunity)
		r.Post("/opportunities/{id}/delete", h.handleDeleteOpportunity)
		r.Get("/opportunities/{id}/sessions", h.handleUpcomingSessions)

		r.Post("/swipes", h.handleSwipe)

		r.Get("/matches", h.handleListMatches)
		r.Get("/matches/{id}", h.handleGetMatch)
		r.Post("/matches/{id}/respond", h.handleRespondToMatch)
		r.Post("/matches/{id}/status", h.handleUpdateMatchStatus)
		r.Get("/matches/{id}/messages", h.handleGetMessages)
		r.Post("/matches/{id}/messages/read", h.handleMarkMessagesRead)

		r.Post("/tasks", h.handleCreateTask)
		r.Get("/tasks", h.handleListTasks)
		r.Get("/tasks/{id}", h.handleGetTask)
		r.Post("/tasks/{id}/claim", h.handleClaimTask)
		r.Post("/tasks/{id}/start", h.handleStartTask)
		r.Post("/tasks/{id}/submit", h.handleSubmitTask)
		r.Post("/tasks/{id}/review", h.handleReviewTask)

		r.Post("/achievements", h.handleCreateAchievement)
		r.Post("/achievements/check", h.handleCheckAchievements)
		r.Post("/achievements/custom-medal", h.handleAwardCustomMedal)
		r.Get("/achievements", h.handleListAchievements)

		r.Post("/messages", h.handleSendMessage)
		r.Get("/messages/unread-count", h.handleUnreadMessageCount)

		r.Get("/notifications", h.handleGetNotifications)
		r.Get("/notifications/unread-count", h.handleUnreadNotificationCount)
		r.Post("/notifications/{id}/read", h.handleMarkNotificationRead)
		r.Post("/notifications/read-all", h.handleMarkAllNotificationsRead)
	})

	return r
}

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests
func (h *Handler) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: h.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// decode parses and validates a JSON request body
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return h.validate.Struct(dst)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("failed to encode response", zap.Error(err))
	}
}

// writeError maps domain errors onto HTTP statuses
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, db.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, db.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, db.ErrInvalidState):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// badRequest reports a malformed or invalid request body
func (h *Handler) badRequest(w http.ResponseWriter, err error) {
	h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}
