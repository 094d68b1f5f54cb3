package ports

import (
	"context"

	"teampulse/domain/analytics"
	"teampulse/domain/core"
	"teampulse/domain/record"
)

// TaskRepository provides read access to task records.
// The engine filters by date range itself, so implementations return every
// task associated with the team.
type TaskRepository interface {
	TasksForTeam(ctx context.Context, teamID core.TeamID) ([]record.Task, error)
}

// CheckInRepository provides read access to emotional check-ins.
// ForUsers aggregates across a set of member identifiers so team wellbeing
// reflects the whole team, not a single reporter.
type CheckInRepository interface {
	CheckInsForUser(ctx context.Context, userID core.UserID) ([]record.CheckIn, error)
	CheckInsForUsers(ctx context.Context, userIDs []core.UserID) ([]record.CheckIn, error)
}

// TeamDirectory supplies the team roster the aggregation entry points run
// over. Team membership is owned upstream; the engine only reads it.
type TeamDirectory interface {
	Teams(ctx context.Context) ([]analytics.TeamRef, error)
}

// TaskWriter is the mutation side of task storage. The analytics engine never
// uses it; it exists for the adapters' upstream collaborators and fixtures.
type TaskWriter interface {
	SaveTask(ctx context.Context, task record.Task) error
}

// CheckInWriter is the mutation side of check-in storage.
type CheckInWriter interface {
	SaveCheckIn(ctx context.Context, checkIn record.CheckIn) error
}
