package record

import (
	"fmt"

	"teampulse/domain/core"
)

// TaskStatus is the lifecycle state of a task
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether s is a known status
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// TaskPriority ranks how urgent a task is
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// IsValid reports whether p is a known priority
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskCategory groups tasks by their origin
type TaskCategory string

const (
	CategoryPersonal    TaskCategory = "personal"
	CategoryTeam        TaskCategory = "team"
	CategoryDevelopment TaskCategory = "development"
)

// Task is a unit of work owned by a user, optionally assigned to a team.
// The analytics engine only ever reads tasks; all mutation happens upstream.
type Task struct {
	ID          core.TaskID     `json:"id" db:"id"`
	UserID      core.UserID     `json:"user_id" db:"user_id"`
	TeamID      core.TeamID     `json:"team_id,omitempty" db:"team_id"`
	AssignedBy  core.UserID     `json:"assigned_by,omitempty" db:"assigned_by"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description,omitempty" db:"description"`
	Status      TaskStatus      `json:"status" db:"status"`
	Priority    TaskPriority    `json:"priority" db:"priority"`
	Category    TaskCategory    `json:"category" db:"category"`
	CreatedAt   core.Timestamp  `json:"created_at" db:"created_at"`
	CompletedAt *core.Timestamp `json:"completed_at,omitempty" db:"completed_at"`
	DueDate     *core.Timestamp `json:"due_date,omitempty" db:"due_date"`
}

// IsCompleted reports whether the task reached its terminal state
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Validate enforces the record invariants at the repository boundary.
// The engine itself never re-validates; garbage stopped here stays stopped.
func (t Task) Validate() error {
	if core.ID(t.ID).IsEmpty() {
		return fmt.Errorf("task ID cannot be empty")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("task %s: unknown status %q", t.ID, t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("task %s: unknown priority %q", t.ID, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("task %s: created_at is required", t.ID)
	}
	// completedAt is set if and only if status == completed
	if t.Status == StatusCompleted && (t.CompletedAt == nil || t.CompletedAt.IsZero()) {
		return fmt.Errorf("task %s: completed task missing completed_at", t.ID)
	}
	if t.Status != StatusCompleted && t.CompletedAt != nil {
		return fmt.Errorf("task %s: completed_at set on %s task", t.ID, t.Status)
	}
	return nil
}
