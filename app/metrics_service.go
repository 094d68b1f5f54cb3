package app

import (
	"context"
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"teampulse/adapters/stats/trend"
	"teampulse/domain/analytics"
	"teampulse/domain/core"
	"teampulse/domain/record"
	"teampulse/internal/errors"
	"teampulse/ports"
)

// neutralScore is the midpoint default when a team has no check-ins in range
const neutralScore = 3.0

// MetricsService derives one team's analytics snapshot from its raw records.
// Every metric degrades to a defined default rather than failing: the only
// fallible step is reading from the repositories.
type MetricsService struct {
	tasks    ports.TaskRepository
	checkIns ports.CheckInRepository
	clock    core.Clock
}

// NewMetricsService creates a metrics service over the given repositories
func NewMetricsService(tasks ports.TaskRepository, checkIns ports.CheckInRepository, clock core.Clock) *MetricsService {
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &MetricsService{tasks: tasks, checkIns: checkIns, clock: clock}
}

// ComputeTeamAnalytics builds the full snapshot for one team over one range.
// Tasks are retained when created inside the range; check-ins when dated
// inside the range, aggregated across every team member.
func (s *MetricsService) ComputeTeamAnalytics(ctx context.Context, team analytics.TeamRef, period analytics.DateRange) (analytics.TeamAnalytics, error) {
	allTasks, err := s.tasks.TasksForTeam(ctx, team.ID)
	if err != nil {
		return analytics.TeamAnalytics{}, errors.Wrapf(err, "loading tasks for team %s", team.ID)
	}
	allCheckIns, err := s.checkIns.CheckInsForUsers(ctx, team.MemberIDs)
	if err != nil {
		return analytics.TeamAnalytics{}, errors.Wrapf(err, "loading check-ins for team %s", team.ID)
	}

	tasksInPeriod := filterTasks(allTasks, period)
	checkInsInPeriod := filterCheckIns(allCheckIns, period)

	snapshot := analytics.TeamAnalytics{
		TeamID:       team.ID,
		TeamName:     team.Name,
		Period:       period,
		MemberCount:  team.Members(),
		CheckInCount: len(checkInsInPeriod),
	}

	s.fillProductivity(&snapshot, tasksInPeriod, period)
	fillWellbeing(&snapshot, checkInsInPeriod)

	snapshot.MoodTrend = moodTrend(checkInsInPeriod)
	snapshot.ProductivityTrend = productivityTrend(tasksInPeriod)
	snapshot.WellnessProductivityCorr = trend.Correlate(snapshot.MoodTrend, snapshot.ProductivityTrend)

	return snapshot, nil
}

func filterTasks(tasks []record.Task, period analytics.DateRange) []record.Task {
	kept := make([]record.Task, 0, len(tasks))
	for _, t := range tasks {
		if period.Contains(t.CreatedAt.Time()) {
			kept = append(kept, t)
		}
	}
	return kept
}

func filterCheckIns(checkIns []record.CheckIn, period analytics.DateRange) []record.CheckIn {
	kept := make([]record.CheckIn, 0, len(checkIns))
	for _, c := range checkIns {
		if period.Contains(c.Date.Time()) {
			kept = append(kept, c)
		}
	}
	return kept
}

func (s *MetricsService) fillProductivity(snapshot *analytics.TeamAnalytics, tasks []record.Task, period analytics.DateRange) {
	now := s.clock.Now()
	var completionDays []float64

	for _, t := range tasks {
		snapshot.TasksAssigned++
		switch t.Status {
		case record.StatusCompleted:
			snapshot.TasksCompleted++
			switch t.Priority {
			case record.PriorityHigh:
				snapshot.HighPriorityCompleted++
			case record.PriorityMedium:
				snapshot.MediumPriorityCompleted++
			case record.PriorityLow:
				snapshot.LowPriorityCompleted++
			}
			if t.CompletedAt != nil {
				completionDays = append(completionDays, daysBetween(t.CreatedAt.Time(), t.CompletedAt.Time()))
			}
		case record.StatusInProgress:
			snapshot.TasksInProgress++
		}

		// Overdue is judged against the wall clock, not the range end,
		// and a completed task is never overdue.
		if !t.IsCompleted() && t.DueDate != nil && t.DueDate.Time().Before(now) {
			snapshot.TasksOverdue++
		}
	}

	if snapshot.TasksAssigned > 0 {
		snapshot.CompletionRate = float64(snapshot.TasksCompleted) / float64(snapshot.TasksAssigned) * 100
	}
	if mean, err := stats.Mean(completionDays); err == nil {
		snapshot.AvgCompletionTime = mean
	}

	weeks := period.Weeks()
	if weeks > 0 {
		snapshot.VelocityPerWeek = float64(snapshot.TasksCompleted) / weeks
	} else {
		snapshot.VelocityPerWeek = float64(snapshot.TasksCompleted)
	}
}

// daysBetween returns the whole-day ceiling of the absolute distance
func daysBetween(a, b time.Time) float64 {
	return math.Ceil(b.Sub(a).Abs().Hours() / 24)
}

func fillWellbeing(snapshot *analytics.TeamAnalytics, checkIns []record.CheckIn) {
	if len(checkIns) == 0 {
		snapshot.AvgMoodScore = neutralScore
		snapshot.AvgEnergyLevel = neutralScore
		return
	}

	moods := make([]float64, len(checkIns))
	energies := make([]float64, len(checkIns))
	stressful := 0
	for i, c := range checkIns {
		moods[i] = c.Mood.Score()
		energies[i] = float64(c.Energy)
		if c.Mood.IsStressful() {
			stressful++
		}
	}

	if mean, err := stats.Mean(moods); err == nil {
		snapshot.AvgMoodScore = mean
	}
	if mean, err := stats.Mean(energies); err == nil {
		snapshot.AvgEnergyLevel = mean
	}
	snapshot.StressIndex = float64(stressful) / float64(len(checkIns)) * 100
}

func moodTrend(checkIns []record.CheckIn) []analytics.TrendPoint {
	events := make([]trend.Event, 0, len(checkIns))
	for _, c := range checkIns {
		events = append(events, trend.Event{At: c.Date.Time(), Value: c.Mood.Score()})
	}
	return trend.DailyMeans(events)
}

func productivityTrend(tasks []record.Task) []analytics.TrendPoint {
	completions := make([]time.Time, 0, len(tasks))
	for _, t := range tasks {
		if t.IsCompleted() && t.CompletedAt != nil {
			completions = append(completions, t.CompletedAt.Time())
		}
	}
	return trend.DailyCounts(completions)
}
