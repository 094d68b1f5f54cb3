package memory

import (
	"context"
	"sync"

	"teampulse/domain/core"
	"teampulse/domain/record"
	"teampulse/internal/errors"
)

// Repository is an in-memory record store for tests and the demo server.
// It validates records on write, the same contract the Postgres adapter
// enforces, so the engine can assume clean records from either.
type Repository struct {
	mu       sync.RWMutex
	tasks    map[core.TeamID][]record.Task
	checkIns map[core.UserID][]record.CheckIn
}

// NewRepository creates an empty in-memory store
func NewRepository() *Repository {
	return &Repository{
		tasks:    make(map[core.TeamID][]record.Task),
		checkIns: make(map[core.UserID][]record.CheckIn),
	}
}

// SaveTask validates and stores a task
func (r *Repository) SaveTask(ctx context.Context, task record.Task) error {
	if err := task.Validate(); err != nil {
		return errors.Wrap(errors.NewValidation(err.Error()), "rejecting task")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.TeamID] = append(r.tasks[task.TeamID], task)
	return nil
}

// SaveCheckIn validates and stores a check-in
func (r *Repository) SaveCheckIn(ctx context.Context, checkIn record.CheckIn) error {
	if err := checkIn.Validate(); err != nil {
		return errors.Wrap(errors.NewValidation(err.Error()), "rejecting check-in")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkIns[checkIn.UserID] = append(r.checkIns[checkIn.UserID], checkIn)
	return nil
}

// TasksForTeam returns every task associated with the team, unfiltered
func (r *Repository) TasksForTeam(ctx context.Context, teamID core.TeamID) ([]record.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tasks := make([]record.Task, len(r.tasks[teamID]))
	copy(tasks, r.tasks[teamID])
	return tasks, nil
}

// CheckInsForUser returns every check-in recorded by one user
func (r *Repository) CheckInsForUser(ctx context.Context, userID core.UserID) ([]record.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	checkIns := make([]record.CheckIn, len(r.checkIns[userID]))
	copy(checkIns, r.checkIns[userID])
	return checkIns, nil
}

// CheckInsForUsers aggregates check-ins across a set of members
func (r *Repository) CheckInsForUsers(ctx context.Context, userIDs []core.UserID) ([]record.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []record.CheckIn
	for _, id := range userIDs {
		all = append(all, r.checkIns[id]...)
	}
	return all, nil
}
