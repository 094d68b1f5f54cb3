package memory

import (
	"context"

	"teampulse/domain/analytics"
)

// StaticDirectory serves a fixed team roster
type StaticDirectory struct {
	teams []analytics.TeamRef
}

// NewStaticDirectory creates a directory over the given roster
func NewStaticDirectory(teams []analytics.TeamRef) *StaticDirectory {
	return &StaticDirectory{teams: teams}
}

// Teams returns the roster
func (d *StaticDirectory) Teams(ctx context.Context) ([]analytics.TeamRef, error) {
	teams := make([]analytics.TeamRef, len(d.teams))
	copy(teams, d.teams)
	return teams, nil
}
