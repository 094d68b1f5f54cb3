package record

import (
	"fmt"

	"teampulse/domain/core"
)

// Mood is a discrete self-reported mood on a five-point scale, best to worst.
type Mood string

const (
	MoodExcellent   Mood = "excellent"
	MoodGood        Mood = "good"
	MoodNeutral     Mood = "neutral"
	MoodStressed    Mood = "stressed"
	MoodOverwhelmed Mood = "overwhelmed"
)

// moodScores maps each label to its numeric score (5 best, 1 worst).
var moodScores = map[Mood]float64{
	MoodExcellent:   5,
	MoodGood:        4,
	MoodNeutral:     3,
	MoodStressed:    2,
	MoodOverwhelmed: 1,
}

// Score converts the mood label to its 1-5 numeric score.
// Unknown labels score neutral so a stray record cannot skew an average.
func (m Mood) Score() float64 {
	if s, ok := moodScores[m]; ok {
		return s
	}
	return 3
}

// IsStressful reports whether the label counts toward the stress index
func (m Mood) IsStressful() bool {
	return m == MoodStressed || m == MoodOverwhelmed
}

// IsValid reports whether m is a known mood label
func (m Mood) IsValid() bool {
	_, ok := moodScores[m]
	return ok
}

// CheckIn is one user's emotional self-report for one calendar day.
type CheckIn struct {
	ID     core.CheckInID `json:"id" db:"id"`
	UserID core.UserID    `json:"user_id" db:"user_id"`
	Date   core.Timestamp `json:"date" db:"date"`
	Mood   Mood           `json:"mood" db:"mood"`
	Energy int            `json:"energy" db:"energy"`
	Stress int            `json:"stress" db:"stress"`
	Notes  string         `json:"notes,omitempty" db:"notes"`
}

// Validate enforces the record invariants at the repository boundary
func (c CheckIn) Validate() error {
	if core.ID(c.ID).IsEmpty() {
		return fmt.Errorf("check-in ID cannot be empty")
	}
	if core.ID(c.UserID).IsEmpty() {
		return fmt.Errorf("check-in %s: user ID cannot be empty", c.ID)
	}
	if c.Date.IsZero() {
		return fmt.Errorf("check-in %s: date is required", c.ID)
	}
	if !c.Mood.IsValid() {
		return fmt.Errorf("check-in %s: unknown mood %q", c.ID, c.Mood)
	}
	if c.Energy < 1 || c.Energy > 5 {
		return fmt.Errorf("check-in %s: energy %d out of range 1-5", c.ID, c.Energy)
	}
	if c.Stress < 1 || c.Stress > 5 {
		return fmt.Errorf("check-in %s: stress %d out of range 1-5", c.ID, c.Stress)
	}
	return nil
}
