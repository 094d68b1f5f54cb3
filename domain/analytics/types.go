package analytics

import (
	"time"

	"teampulse/domain/core"
)

// DateRange is the window a snapshot is computed over, inclusive of both ends.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Weeks returns the range width in (fractional) weeks
func (r DateRange) Weeks() float64 {
	days := r.End.Sub(r.Start).Abs().Hours() / 24
	return days / 7
}

// TrendPoint is one calendar day's aggregated metric value.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TrendDirection classifies the slope of a short series
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// TeamRef identifies one team as input to the aggregation entry points.
// MemberIDs drives the team-wide check-in query; MemberCount defaults to
// len(MemberIDs) when zero.
type TeamRef struct {
	ID          core.TeamID   `json:"id"`
	Name        string        `json:"name"`
	MemberIDs   []core.UserID `json:"member_ids"`
	MemberCount int           `json:"member_count"`
}

// Members returns the effective member count, never less than 1.
func (t TeamRef) Members() int {
	if t.MemberCount > 0 {
		return t.MemberCount
	}
	if len(t.MemberIDs) > 0 {
		return len(t.MemberIDs)
	}
	return 1
}

// TeamAnalytics is an ephemeral snapshot of one team over one range.
// It is a pure function of the record store contents; it is recomputed on
// demand and never persisted.
type TeamAnalytics struct {
	TeamID   core.TeamID `json:"team_id"`
	TeamName string      `json:"team_name"`
	Period   DateRange   `json:"period"`

	// Productivity
	TasksAssigned     int     `json:"tasks_assigned"`
	TasksCompleted    int     `json:"tasks_completed"`
	TasksInProgress   int     `json:"tasks_in_progress"`
	TasksOverdue      int     `json:"tasks_overdue"`
	CompletionRate    float64 `json:"completion_rate"`     // percent
	AvgCompletionTime float64 `json:"avg_completion_time"` // days
	VelocityPerWeek   float64 `json:"velocity_per_week"`

	// Completed-task priority breakdown
	HighPriorityCompleted   int `json:"high_priority_completed"`
	MediumPriorityCompleted int `json:"medium_priority_completed"`
	LowPriorityCompleted    int `json:"low_priority_completed"`

	// Wellbeing
	AvgMoodScore   float64 `json:"avg_mood_score"`   // 1-5
	AvgEnergyLevel float64 `json:"avg_energy_level"` // 1-5
	StressIndex    float64 `json:"stress_index"`     // percent
	CheckInCount   int     `json:"check_in_count"`

	// Trends
	MoodTrend         []TrendPoint `json:"mood_trend"`
	ProductivityTrend []TrendPoint `json:"productivity_trend"`

	// Pearson correlation between the two trends, -1..1
	WellnessProductivityCorr float64 `json:"wellness_productivity_corr"`

	MemberCount int `json:"member_count"`
}

// InsightType classifies what kind of observation an insight is
type InsightType string

const (
	InsightWarning        InsightType = "warning"
	InsightSuccess        InsightType = "success"
	InsightInfo           InsightType = "info"
	InsightRecommendation InsightType = "recommendation"
)

// InsightPriority ranks how urgently an insight needs attention
type InsightPriority string

const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// Rank returns the numeric priority used for ordering (high first)
func (p InsightPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// InsightMetrics carries the numbers an insight was derived from
type InsightMetrics struct {
	Value     float64  `json:"value"`
	Benchmark *float64 `json:"benchmark,omitempty"`
	Unit      string   `json:"unit"`
}

// Insight is a generated, prioritized observation over one team's metrics.
type Insight struct {
	ID              string          `json:"id"`
	Type            InsightType     `json:"type"`
	Priority        InsightPriority `json:"priority"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Actionable      bool            `json:"actionable"`
	SuggestedAction string          `json:"suggested_action,omitempty"`
	Metrics         *InsightMetrics `json:"metrics,omitempty"`
}

// CompanyWideAnalytics combines every team's snapshot into one view.
// Overall rates are unweighted means across teams regardless of team size.
type CompanyWideAnalytics struct {
	OverallCompletionRate float64         `json:"overall_completion_rate"`
	OverallMoodScore      float64         `json:"overall_mood_score"`
	TotalTasksCompleted   int             `json:"total_tasks_completed"`
	TotalCheckIns         int             `json:"total_check_ins"`
	Teams                 []TeamAnalytics `json:"teams"`
	Insights              []Insight       `json:"insights"`
	TopPerformingTeam     *TeamAnalytics  `json:"top_performing_team,omitempty"`
	TeamNeedingAttention  *TeamAnalytics  `json:"team_needing_attention,omitempty"`
}

// PeriodDelta is the scalar movement between two equal-width periods
type PeriodDelta struct {
	CompletionRate float64 `json:"completion_rate"` // percentage points
	MoodScore      float64 `json:"mood_score"`      // absolute, 1-5 scale
	TasksCompleted int     `json:"tasks_completed"`
	CheckIns       int     `json:"check_ins"`
}

// PeriodComparison contrasts the current period against the immediately
// preceding window of the same width.
type PeriodComparison struct {
	Current  CompanyWideAnalytics `json:"current"`
	Previous CompanyWideAnalytics `json:"previous"`
	Delta    PeriodDelta          `json:"delta"`
}
