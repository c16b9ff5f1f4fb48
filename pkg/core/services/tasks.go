package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/pkg/db"
)

// CreateTaskParams holds the arguments for posting a task
type CreateTaskParams struct {
	NGOID          string
	MatchID        string
	AssignedTo     string
	Title          string
	Description    string
	Category       string
	Deadline       *time.Time
	EstimatedHours *float64
}

// CreateTask posts a task. With an assignee it starts claimed and the
// assignee is notified; without one it lands on the open task board.
func CreateTask(ctx context.Context, store db.Store, logger *zap.Logger, mailer Mailer, p CreateTaskParams) (string, error) {
	if p.Title == "" || p.Description == "" || p.Category == "" {
		return "", fmt.Errorf("title, description and category are required: %w", db.ErrValidation)
	}

	if _, err := store.GetNGO(ctx, p.NGOID); err != nil {
		return "", fmt.Errorf("organization %s: %w", p.NGOID, err)
	}

	status := db.TaskAvailable
	if p.AssignedTo != "" {
		if _, err := store.GetUser(ctx, p.AssignedTo); err != nil {
			return "", fmt.Errorf("assignee %s: %w", p.AssignedTo, err)
		}
		status = db.TaskClaimed
	}

	task := &db.Task{
		ID:             uuid.New().String(),
		NGOID:          p.NGOID,
		MatchID:        p.MatchID,
		AssignedTo:     p.AssignedTo,
		Title:          p.Title,
		Description:    p.Description,
		Category:       p.Category,
		Deadline:       p.Deadline,
		EstimatedHours: p.EstimatedHours,
		Status:         status,
		CreatedAt:      time.Now(),
	}

	if err := store.InsertTask(ctx, task); err != nil {
		return "", fmt.Errorf("failed to insert task: %w", err)
	}

	logger.Info("Task created",
		zap.String("task_id", task.ID),
		zap.String("ngo_id", p.NGOID),
		zap.String("status", string(status)))

	if p.AssignedTo != "" {
		NotifyUser(ctx, store, logger, mailer, &db.Notification{
			UserID:    p.AssignedTo,
			Type:      db.NotifyTaskAssigned,
			Title:     "New Task Assigned!",
			Message:   fmt.Sprintf("You have been assigned a new task: %s", p.Title),
			RelatedID: task.ID,
		})
	}

	return task.ID, nil
}

// ClaimTask assigns an available task to a volunteer. The check-then-set
// runs inside a transaction with the task row locked, so two concurrent
// claims cannot both pass the availability check.
func ClaimTask(ctx context.Context, store db.Store, logger *zap.Logger, taskID, userID string) (string, error) {
	if _, err := store.GetUser(ctx, userID); err != nil {
		return "", fmt.Errorf("user %s: %w", userID, err)
	}

	err := store.InTx(ctx, func(tx db.Store) error {
		task, err := tx.GetTaskForUpdate(ctx, taskID)
		if err != nil {
			return fmt.Errorf("task %s: %w", taskID, err)
		}
		if task.Status != db.TaskAvailable {
			return fmt.Errorf("task %s is not available: %w", taskID, db.ErrInvalidState)
		}

		task.Status = db.TaskClaimed
		task.AssignedTo = userID
		if err := tx.UpdateTask(ctx, task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Info("Task claimed",
		zap.String("task_id", taskID),
		zap.String("user_id", userID))
	return taskID, nil
}

// StartTask moves a claimed task to in_progress
func StartTask(ctx context.Context, store db.Store, logger *zap.Logger, taskID string) (string, error) {
	err := store.InTx(ctx, func(tx db.Store) error {
		task, err := tx.GetTaskForUpdate(ctx, taskID)
		if err != nil {
			return fmt.Errorf("task %s: %w", taskID, err)
		}
		if task.Status != db.TaskClaimed {
			return fmt.Errorf("task %s is not claimed: %w", taskID, db.ErrInvalidState)
		}

		task.Status = db.TaskInProgress
		if err := tx.UpdateTask(ctx, task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Info("Task started", zap.String("task_id", taskID))
	return taskID, nil
}

// SubmitTask attaches the volunteer's submission and hands the task to the
// organization for review. Revision-requested tasks resubmit directly.
func SubmitTask(ctx context.Context, store db.Store, logger *zap.Logger, mailer Mailer, taskID, submissionText string) (string, error) {
	var task *db.Task

	err := store.InTx(ctx, func(tx db.Store) error {
		t, err := tx.GetTaskForUpdate(ctx, taskID)
		if err != nil {
			return fmt.Errorf("task %s: %w", taskID, err)
		}
		switch t.Status {
		case db.TaskClaimed, db.TaskInProgress, db.TaskRevisionRequested:
		default:
			return fmt.Errorf("task %s cannot be submitted from %s: %w", taskID, t.Status, db.ErrInvalidState)
		}

		now := time.Now()
		t.SubmissionText = submissionText
		t.Status = db.TaskSubmitted
		t.SubmittedAt = &now
		if err := tx.UpdateTask(ctx, t); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		task = t
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Info("Task submitted", zap.String("task_id", taskID))

	if ngo, err := store.GetNGO(ctx, task.NGOID); err == nil {
		NotifyUser(ctx, store, logger, mailer, &db.Notification{
			UserID:    ngo.UserID,
			Type:      db.NotifyTaskSubmitted,
			Title:     "Task Submitted",
			Message:   fmt.Sprintf("A volunteer has submitted: %s", task.Title),
			RelatedID: taskID,
		})
	}

	return taskID, nil
}

// ReviewTask is the organization's verdict on a submitted task. Approval
// completes the task and, in the same transaction, accumulates the
// volunteer's and the organization's counters; the submitted to completed
// edge fires at most once per task, which keeps the counters consistent.
// Rejection requests a revision and touches no counters.
func ReviewTask(ctx context.Context, store db.Store, logger *zap.Logger, mailer Mailer, taskID string, approve bool, feedback string) (string, error) {
	var task *db.Task

	err := store.InTx(ctx, func(tx db.Store) error {
		t, err := tx.GetTaskForUpdate(ctx, taskID)
		if err != nil {
			return fmt.Errorf("task %s: %w", taskID, err)
		}
		if t.Status != db.TaskSubmitted {
			return fmt.Errorf("task %s is not awaiting review: %w", taskID, db.ErrInvalidState)
		}

		t.Feedback = feedback
		if !approve {
			t.Status = db.TaskRevisionRequested
			if err := tx.UpdateTask(ctx, t); err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}
			task = t
			return nil
		}

		now := time.Now()
		t.Status = db.TaskCompleted
		t.CompletedAt = &now
		if err := tx.UpdateTask(ctx, t); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		hours := 0.0
		if t.EstimatedHours != nil {
			hours = *t.EstimatedHours
		}
		if t.AssignedTo != "" {
			if err := tx.AddUserStats(ctx, t.AssignedTo, hours, 1); err != nil {
				return fmt.Errorf("failed to update volunteer stats: %w", err)
			}
			if err := tx.AddNGOStats(ctx, t.NGOID, hours, 0); err != nil {
				return fmt.Errorf("failed to update organization stats: %w", err)
			}
		}
		task = t
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Info("Task reviewed",
		zap.String("task_id", taskID),
		zap.Bool("approved", approve))

	if approve && task.AssignedTo != "" {
		NotifyUser(ctx, store, logger, mailer, &db.Notification{
			UserID:    task.AssignedTo,
			Type:      db.NotifyTaskCompleted,
			Title:     "Task Approved!",
			Message:   fmt.Sprintf("Your task %q has been approved!", task.Title),
			RelatedID: taskID,
		})
	}

	return taskID, nil
}

// TaskWithNGO joins a task with its organization summary
type TaskWithNGO struct {
	db.Task
	NGO *NGOSummary `json:"ngo"`
}

// TaskWithVolunteer joins a task with its assignee
type TaskWithVolunteer struct {
	db.Task
	Volunteer *db.User `json:"volunteer,omitempty"`
}

// TaskDetails is one task fully joined
type TaskDetails struct {
	db.Task
	NGO       *db.NGO  `json:"ngo,omitempty"`
	Volunteer *db.User `json:"volunteer,omitempty"`
}

// GetAvailableTasks returns the open task board, optionally scoped to one
// organization
func GetAvailableTasks(ctx context.Context, store db.Store, ngoID string) ([]TaskWithNGO, error) {
	tasks, err := store.ListAvailableTasks(ctx, ngoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list available tasks: %w", err)
	}

	results := make([]TaskWithNGO, 0, len(tasks))
	for _, t := range tasks {
		entry := TaskWithNGO{Task: t}
		if ngo, err := store.GetNGO(ctx, t.NGOID); err == nil {
			entry.NGO = &NGOSummary{Name: ngo.OrganizationName, Logo: ngo.Logo}
		}
		results = append(results, entry)
	}
	return results, nil
}

// GetTasksForVolunteer lists the tasks assigned to a volunteer
func GetTasksForVolunteer(ctx context.Context, store db.Store, userID string) ([]TaskWithNGO, error) {
	tasks, err := store.ListTasksByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	results := make([]TaskWithNGO, 0, len(tasks))
	for _, t := range tasks {
		entry := TaskWithNGO{Task: t}
		if ngo, err := store.GetNGO(ctx, t.NGOID); err == nil {
			entry.NGO = &NGOSummary{Name: ngo.OrganizationName, Logo: ngo.Logo}
		}
		results = append(results, entry)
	}
	return results, nil
}

// GetTasksForNGO lists an organization's tasks with their assignees
func GetTasksForNGO(ctx context.Context, store db.Store, ngoID string) ([]TaskWithVolunteer, error) {
	tasks, err := store.ListTasksByNGO(ctx, ngoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	results := make([]TaskWithVolunteer, 0, len(tasks))
	for _, t := range tasks {
		entry := TaskWithVolunteer{Task: t}
		if t.AssignedTo != "" {
			if user, err := store.GetUser(ctx, t.AssignedTo); err == nil {
				entry.Volunteer = user
			}
		}
		results = append(results, entry)
	}
	return results, nil
}

// GetTask returns one task fully joined
func GetTask(ctx context.Context, store db.Store, taskID string) (*TaskDetails, error) {
	task, err := store.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", taskID, err)
	}

	detail := &TaskDetails{Task: *task}
	if ngo, err := store.GetNGO(ctx, task.NGOID); err == nil {
		detail.NGO = ngo
	}
	if task.AssignedTo != "" {
		if user, err := store.GetUser(ctx, task.AssignedTo); err == nil {
			detail.Volunteer = user
		}
	}
	return detail, nil
}
