package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"teampulse/domain/analytics"
	"teampulse/domain/core"
	"teampulse/internal/errors"
)

// CompanyService aggregates per-team snapshots into the company-wide view
// and runs period-over-period comparisons.
type CompanyService struct {
	metrics  *MetricsService
	insights InsightGenerator
	clock    core.Clock
}

// NewCompanyService creates a company aggregation service
func NewCompanyService(metrics *MetricsService, insights InsightGenerator, clock core.Clock) *CompanyService {
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &CompanyService{metrics: metrics, insights: insights, clock: clock}
}

// ComputeCompanyAnalytics runs the metric calculator for every team and
// combines the snapshots. Teams are computed in parallel since they share no
// data; results keep the input team order. Overall rates are unweighted means
// across teams, so a team with default-valued metrics still moves the mean.
func (s *CompanyService) ComputeCompanyAnalytics(ctx context.Context, teams []analytics.TeamRef, period analytics.DateRange) (analytics.CompanyWideAnalytics, error) {
	snapshots := make([]analytics.TeamAnalytics, len(teams))

	g, gctx := errgroup.WithContext(ctx)
	for i, team := range teams {
		g.Go(func() error {
			snapshot, err := s.metrics.ComputeTeamAnalytics(gctx, team, period)
			if err != nil {
				return err
			}
			snapshots[i] = snapshot
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return analytics.CompanyWideAnalytics{}, errors.Wrap(err, "computing company analytics")
	}

	company := analytics.CompanyWideAnalytics{
		Teams:    snapshots,
		Insights: make([]analytics.Insight, 0),
	}

	var sumCompletion, sumMood float64
	for i := range snapshots {
		team := &snapshots[i]
		sumCompletion += team.CompletionRate
		sumMood += team.AvgMoodScore
		company.TotalTasksCompleted += team.TasksCompleted
		company.TotalCheckIns += team.CheckInCount

		// Per-team lists are already priority-sorted; the company list is a
		// plain concatenation in team order and is not re-sorted.
		company.Insights = append(company.Insights, s.insights.Generate(*team)...)

		if company.TopPerformingTeam == nil || team.CompletionRate > company.TopPerformingTeam.CompletionRate {
			company.TopPerformingTeam = team
		}
		if company.TeamNeedingAttention == nil || attentionScore(*team) < attentionScore(*company.TeamNeedingAttention) {
			company.TeamNeedingAttention = team
		}
	}

	if len(snapshots) > 0 {
		company.OverallCompletionRate = sumCompletion / float64(len(snapshots))
		company.OverallMoodScore = sumMood / float64(len(snapshots))
	}
	return company, nil
}

// attentionScore is the composite used to pick the team needing attention:
// low mood and low completion both pull the score down.
func attentionScore(t analytics.TeamAnalytics) float64 {
	return t.AvgMoodScore + t.CompletionRate/100
}

// ComparePeriods contrasts the current window for the given granularity with
// the immediately preceding window of the same width. The delta is a direct
// arithmetic difference, no smoothing.
func (s *CompanyService) ComparePeriods(ctx context.Context, teams []analytics.TeamRef, g analytics.Granularity) (analytics.PeriodComparison, error) {
	now := s.clock.Now()
	currentRange := analytics.ResolveRange(g, now)
	previousRange := analytics.ResolvePreviousRange(g, now)

	current, err := s.ComputeCompanyAnalytics(ctx, teams, currentRange)
	if err != nil {
		return analytics.PeriodComparison{}, err
	}
	previous, err := s.ComputeCompanyAnalytics(ctx, teams, previousRange)
	if err != nil {
		return analytics.PeriodComparison{}, err
	}

	return analytics.PeriodComparison{
		Current:  current,
		Previous: previous,
		Delta: analytics.PeriodDelta{
			CompletionRate: current.OverallCompletionRate - previous.OverallCompletionRate,
			MoodScore:      current.OverallMoodScore - previous.OverallMoodScore,
			TasksCompleted: current.TotalTasksCompleted - previous.TotalTasksCompleted,
			CheckIns:       current.TotalCheckIns - previous.TotalCheckIns,
		},
	}, nil
}
