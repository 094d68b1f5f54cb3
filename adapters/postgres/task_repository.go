package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"teampulse/domain/core"
	"teampulse/domain/record"
	"teampulse/internal/errors"
	"teampulse/ports"
)

// TaskRepositoryImpl implements the task repository for PostgreSQL
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new PostgreSQL task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

// taskRow is the scan target; nullable columns map through sql.Null types
type taskRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	TeamID      sql.NullString `db:"team_id"`
	AssignedBy  sql.NullString `db:"assigned_by"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	Priority    string         `db:"priority"`
	Category    string         `db:"category"`
	CreatedAt   time.Time      `db:"created_at"`
	CompletedAt sql.NullTime   `db:"completed_at"`
	DueDate     sql.NullTime   `db:"due_date"`
}

func (r taskRow) toDomain() record.Task {
	task := record.Task{
		ID:          core.TaskID(r.ID),
		UserID:      core.UserID(r.UserID),
		TeamID:      core.TeamID(r.TeamID.String),
		AssignedBy:  core.UserID(r.AssignedBy.String),
		Title:       r.Title,
		Description: r.Description.String,
		Status:      record.TaskStatus(r.Status),
		Priority:    record.TaskPriority(r.Priority),
		Category:    record.TaskCategory(r.Category),
		CreatedAt:   core.NewTimestamp(r.CreatedAt),
	}
	if r.CompletedAt.Valid {
		ts := core.NewTimestamp(r.CompletedAt.Time)
		task.CompletedAt = &ts
	}
	if r.DueDate.Valid {
		ts := core.NewTimestamp(r.DueDate.Time)
		task.DueDate = &ts
	}
	return task
}

// TasksForTeam returns every task assigned to the team, skipping rows that
// fail the record invariants so upstream garbage never reaches the engine.
func (r *TaskRepositoryImpl) TasksForTeam(ctx context.Context, teamID core.TeamID) ([]record.Task, error) {
	var rows []taskRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, team_id, assigned_by, title, description,
		       status, priority, category, created_at, completed_at, due_date
		FROM tasks
		WHERE team_id = $1
		ORDER BY created_at
	`, teamID.String())
	if err != nil {
		return nil, errors.Wrapf(err, "querying tasks for team %s", teamID)
	}

	tasks := make([]record.Task, 0, len(rows))
	for _, row := range rows {
		task := row.toDomain()
		if err := task.Validate(); err != nil {
			return nil, errors.Wrap(errors.NewValidation(err.Error()), "malformed task row")
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// SaveTask validates and inserts a task
func (r *TaskRepositoryImpl) SaveTask(ctx context.Context, task record.Task) error {
	if err := task.Validate(); err != nil {
		return errors.Wrap(errors.NewValidation(err.Error()), "rejecting task")
	}

	var completedAt, dueDate sql.NullTime
	if task.CompletedAt != nil {
		completedAt = sql.NullTime{Time: task.CompletedAt.Time(), Valid: true}
	}
	if task.DueDate != nil {
		dueDate = sql.NullTime{Time: task.DueDate.Time(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, team_id, assigned_by, title, description,
		                   status, priority, category, created_at, completed_at, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			priority = EXCLUDED.priority,
			completed_at = EXCLUDED.completed_at,
			due_date = EXCLUDED.due_date
	`, task.ID.String(), task.UserID.String(), task.TeamID.String(), task.AssignedBy.String(),
		task.Title, task.Description, string(task.Status), string(task.Priority),
		string(task.Category), task.CreatedAt.Time(), completedAt, dueDate)
	return errors.Wrapf(err, "saving task %s", task.ID)
}
