package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/causeswipe/causeswipe/pkg/db"
)

const taskColumns = `id, ngo_id, match_id, assigned_to, title, description, category,
	deadline, estimated_hours, status, submission_text, submitted_at, feedback,
	completed_at, created_at`

func scanTask(row pgx.Row) (*db.Task, error) {
	var t db.Task
	err := row.Scan(&t.ID, &t.NGOID, &t.MatchID, &t.AssignedTo, &t.Title, &t.Description,
		&t.Category, &t.Deadline, &t.EstimatedHours, &t.Status, &t.SubmissionText,
		&t.SubmittedAt, &t.Feedback, &t.CompletedAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// InsertTask inserts a new task record
func (d *DB) InsertTask(ctx context.Context, task *db.Task) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO tasks (id, ngo_id, match_id, assigned_to, title, description,
			category, deadline, estimated_hours, status, submission_text,
			submitted_at, feedback, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, task.ID, task.NGOID, task.MatchID, task.AssignedTo, task.Title, task.Description,
		task.Category, task.Deadline, task.EstimatedHours, task.Status, task.SubmissionText,
		task.SubmittedAt, task.Feedback, task.CompletedAt, task.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by id
func (d *DB) GetTask(ctx context.Context, id string) (*db.Task, error) {
	task, err := scanTask(d.q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// GetTaskForUpdate retrieves a task and locks its row until the enclosing
// transaction ends
func (d *DB) GetTaskForUpdate(ctx context.Context, id string) (*db.Task, error) {
	task, err := scanTask(d.q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// UpdateTask writes a task's mutable fields
func (d *DB) UpdateTask(ctx context.Context, task *db.Task) error {
	tag, err := d.q.Exec(ctx, `
		UPDATE tasks
		SET assigned_to = $2, status = $3, submission_text = $4, submitted_at = $5,
			feedback = $6, completed_at = $7
		WHERE id = $1
	`, task.ID, task.AssignedTo, task.Status, task.SubmissionText, task.SubmittedAt,
		task.Feedback, task.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (d *DB) listTasks(ctx context.Context, query string, args ...any) ([]db.Task, error) {
	rows, err := d.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []db.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

// ListAvailableTasks retrieves the open task board, optionally scoped to one
// organization
func (d *DB) ListAvailableTasks(ctx context.Context, ngoID string) ([]db.Task, error) {
	if ngoID != "" {
		return d.listTasks(ctx, `
			SELECT `+taskColumns+` FROM tasks
			WHERE status = $1 AND ngo_id = $2
			ORDER BY created_at DESC
		`, db.TaskAvailable, ngoID)
	}
	return d.listTasks(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE status = $1
		ORDER BY created_at DESC
	`, db.TaskAvailable)
}

// ListTasksByAssignee retrieves the tasks assigned to a volunteer
func (d *DB) ListTasksByAssignee(ctx context.Context, userID string) ([]db.Task, error) {
	return d.listTasks(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE assigned_to = $1
		ORDER BY created_at DESC
	`, userID)
}

// ListTasksByNGO retrieves an organization's tasks
func (d *DB) ListTasksByNGO(ctx context.Context, ngoID string) ([]db.Task, error) {
	return d.listTasks(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE ngo_id = $1
		ORDER BY created_at DESC
	`, ngoID)
}

// CountCompletedTasksInCategory counts a volunteer's completed tasks in one
// skill category
func (d *DB) CountCompletedTasksInCategory(ctx context.Context, userID, category string) (int, error) {
	var count int
	err := d.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks
		WHERE assigned_to = $1 AND category = $2 AND status = $3
	`, userID, category, db.TaskCompleted).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// CountTasksByNGO counts an organization's tasks in one status
func (d *DB) CountTasksByNGO(ctx context.Context, ngoID string, status db.TaskStatus) (int, error) {
	var count int
	err := d.q.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE ngo_id = $1 AND status = $2`, ngoID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}
