package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"teampulse/domain/analytics"
	"teampulse/domain/core"
	"teampulse/internal/errors"
	"teampulse/ports"
)

// TeamDirectoryImpl reads the team roster from PostgreSQL
type TeamDirectoryImpl struct {
	db *sqlx.DB
}

// NewTeamDirectory creates a new PostgreSQL team directory
func NewTeamDirectory(db *sqlx.DB) ports.TeamDirectory {
	return &TeamDirectoryImpl{db: db}
}

type teamMemberRow struct {
	TeamID   string         `db:"team_id"`
	TeamName string         `db:"team_name"`
	UserID   sql.NullString `db:"user_id"`
}

// Teams returns every team with its member identifiers, in team order
func (d *TeamDirectoryImpl) Teams(ctx context.Context) ([]analytics.TeamRef, error) {
	var rows []teamMemberRow
	err := d.db.SelectContext(ctx, &rows, `
		SELECT t.id AS team_id, t.name AS team_name, m.user_id
		FROM teams t
		LEFT JOIN team_members m ON m.team_id = t.id
		ORDER BY t.name, m.user_id
	`)
	if err != nil {
		return nil, errors.Wrap(err, "querying team roster")
	}

	index := make(map[string]int)
	teams := make([]analytics.TeamRef, 0)
	for _, row := range rows {
		i, ok := index[row.TeamID]
		if !ok {
			i = len(teams)
			index[row.TeamID] = i
			teams = append(teams, analytics.TeamRef{
				ID:   core.TeamID(row.TeamID),
				Name: row.TeamName,
			})
		}
		if row.UserID.Valid {
			teams[i].MemberIDs = append(teams[i].MemberIDs, core.UserID(row.UserID.String))
		}
	}
	return teams, nil
}
