package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"teampulse/domain/core"
	"teampulse/domain/record"
	"teampulse/internal/errors"
	"teampulse/ports"
)

// CheckInRepositoryImpl implements the check-in repository for PostgreSQL
type CheckInRepositoryImpl struct {
	db *sqlx.DB
}

// NewCheckInRepository creates a new PostgreSQL check-in repository
func NewCheckInRepository(db *sqlx.DB) ports.CheckInRepository {
	return &CheckInRepositoryImpl{db: db}
}

type checkInRow struct {
	ID     string         `db:"id"`
	UserID string         `db:"user_id"`
	Date   time.Time      `db:"date"`
	Mood   string         `db:"mood"`
	Energy int            `db:"energy"`
	Stress int            `db:"stress"`
	Notes  sql.NullString `db:"notes"`
}

func (r checkInRow) toDomain() record.CheckIn {
	return record.CheckIn{
		ID:     core.CheckInID(r.ID),
		UserID: core.UserID(r.UserID),
		Date:   core.NewTimestamp(r.Date),
		Mood:   record.Mood(r.Mood),
		Energy: r.Energy,
		Stress: r.Stress,
		Notes:  r.Notes.String,
	}
}

// CheckInsForUser returns every check-in recorded by one user
func (r *CheckInRepositoryImpl) CheckInsForUser(ctx context.Context, userID core.UserID) ([]record.CheckIn, error) {
	return r.query(ctx, `
		SELECT id, user_id, date, mood, energy, stress, notes
		FROM check_ins
		WHERE user_id = $1
		ORDER BY date
	`, userID.String())
}

// CheckInsForUsers aggregates check-ins across a set of team members
func (r *CheckInRepositoryImpl) CheckInsForUsers(ctx context.Context, userIDs []core.UserID) ([]record.CheckIn, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}
	return r.query(ctx, `
		SELECT id, user_id, date, mood, energy, stress, notes
		FROM check_ins
		WHERE user_id = ANY($1)
		ORDER BY date
	`, pq.Array(ids))
}

func (r *CheckInRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]record.CheckIn, error) {
	var rows []checkInRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying check-ins")
	}

	checkIns := make([]record.CheckIn, 0, len(rows))
	for _, row := range rows {
		checkIn := row.toDomain()
		if err := checkIn.Validate(); err != nil {
			return nil, errors.Wrap(errors.NewValidation(err.Error()), "malformed check-in row")
		}
		checkIns = append(checkIns, checkIn)
	}
	return checkIns, nil
}

// SaveCheckIn validates and inserts a check-in
func (r *CheckInRepositoryImpl) SaveCheckIn(ctx context.Context, checkIn record.CheckIn) error {
	if err := checkIn.Validate(); err != nil {
		return errors.Wrap(errors.NewValidation(err.Error()), "rejecting check-in")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO check_ins (id, user_id, date, mood, energy, stress, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, checkIn.ID.String(), checkIn.UserID.String(), checkIn.Date.Time(),
		string(checkIn.Mood), checkIn.Energy, checkIn.Stress, checkIn.Notes)
	return errors.Wrapf(err, "saving check-in %s", checkIn.ID)
}
