package app

import (
	"fmt"
	"sort"

	"teampulse/domain/analytics"
)

// Fixed rule thresholds. Each rule is independent; any subset may fire.
const (
	lowCompletionThreshold  = 60.0
	highCompletionThreshold = 90.0
	completionBenchmark     = 75.0
	highStressThreshold     = 40.0
	stressBenchmark         = 30.0
	strongCorrThreshold     = 0.5
	manyOverdueThreshold    = 5
	lowMoodThreshold        = 3.0
	moodBenchmark           = 3.5
	highVelocityThreshold   = 10.0
)

// InsightGenerator turns one team's snapshot into a prioritized list of
// observations. Rules fire independently; the result is stably sorted by
// priority so ties keep rule-declaration order.
type InsightGenerator struct{}

// NewInsightGenerator creates an insight generator
func NewInsightGenerator() InsightGenerator {
	return InsightGenerator{}
}

// Generate evaluates every rule against the snapshot. An empty result is
// valid: it means no threshold was breached.
func (g InsightGenerator) Generate(a analytics.TeamAnalytics) []analytics.Insight {
	insights := make([]analytics.Insight, 0, 4)

	if a.CompletionRate < lowCompletionThreshold {
		insights = append(insights, analytics.Insight{
			ID:              insightID(a, "low-completion"),
			Type:            analytics.InsightWarning,
			Priority:        analytics.PriorityHigh,
			Title:           "Low completion rate",
			Description:     fmt.Sprintf("Team %s has a completion rate of %.1f%%, below the %.0f%% target.", a.TeamName, a.CompletionRate, completionBenchmark),
			Actionable:      true,
			SuggestedAction: "Review workload and redistribute tasks if needed",
			Metrics:         metric(a.CompletionRate, benchmark(completionBenchmark), "%"),
		})
	}

	if a.CompletionRate >= highCompletionThreshold {
		insights = append(insights, analytics.Insight{
			ID:          insightID(a, "high-completion"),
			Type:        analytics.InsightSuccess,
			Priority:    analytics.PriorityLow,
			Title:       "Excellent performance",
			Description: fmt.Sprintf("Team %s reached %.1f%% completion. Keep it up!", a.TeamName, a.CompletionRate),
			Actionable:  false,
			Metrics:     metric(a.CompletionRate, nil, "%"),
		})
	}

	if a.StressIndex > highStressThreshold {
		insights = append(insights, analytics.Insight{
			ID:              insightID(a, "high-stress"),
			Type:            analytics.InsightWarning,
			Priority:        analytics.PriorityHigh,
			Title:           "High stress level detected",
			Description:     fmt.Sprintf("%.1f%% of check-ins in %s report stress or overwhelm.", a.StressIndex, a.TeamName),
			Actionable:      true,
			SuggestedAction: "Consider 1-on-1s with team members or reducing load",
			Metrics:         metric(a.StressIndex, benchmark(stressBenchmark), "%"),
		})
	}

	if a.WellnessProductivityCorr > strongCorrThreshold {
		insights = append(insights, analytics.Insight{
			ID:              insightID(a, "positive-correlation"),
			Type:            analytics.InsightInfo,
			Priority:        analytics.PriorityMedium,
			Title:           "Strong positive correlation",
			Description:     fmt.Sprintf("Wellbeing and productivity correlate strongly (%.0f%%) in %s.", a.WellnessProductivityCorr*100, a.TeamName),
			Actionable:      true,
			SuggestedAction: "Keep investing in team wellbeing initiatives",
			Metrics:         metric(a.WellnessProductivityCorr*100, nil, "%"),
		})
	}

	if a.TasksOverdue > 0 {
		priority := analytics.PriorityMedium
		if a.TasksOverdue > manyOverdueThreshold {
			priority = analytics.PriorityHigh
		}
		insights = append(insights, analytics.Insight{
			ID:              insightID(a, "overdue"),
			Type:            analytics.InsightWarning,
			Priority:        priority,
			Title:           "Overdue tasks",
			Description:     fmt.Sprintf("%d task(s) in %s are past their due date.", a.TasksOverdue, a.TeamName),
			Actionable:      true,
			SuggestedAction: "Review deadlines and re-prioritize if needed",
			Metrics:         metric(float64(a.TasksOverdue), nil, "tasks"),
		})
	}

	if a.AvgMoodScore < lowMoodThreshold {
		insights = append(insights, analytics.Insight{
			ID:              insightID(a, "low-mood"),
			Type:            analytics.InsightWarning,
			Priority:        analytics.PriorityHigh,
			Title:           "Low team mood",
			Description:     fmt.Sprintf("Average mood in %s is %.1f/5, suggesting possible dissatisfaction.", a.TeamName, a.AvgMoodScore),
			Actionable:      true,
			SuggestedAction: "Schedule a team meeting to surface problems and solutions",
			Metrics:         metric(a.AvgMoodScore, benchmark(moodBenchmark), "/5"),
		})
	}

	if a.VelocityPerWeek > highVelocityThreshold {
		insights = append(insights, analytics.Insight{
			ID:          insightID(a, "high-velocity"),
			Type:        analytics.InsightSuccess,
			Priority:    analytics.PriorityLow,
			Title:       "High delivery velocity",
			Description: fmt.Sprintf("%s completes %.1f tasks per week, above the company average.", a.TeamName, a.VelocityPerWeek),
			Actionable:  false,
			Metrics:     metric(a.VelocityPerWeek, nil, "tasks/week"),
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority.Rank() > insights[j].Priority.Rank()
	})
	return insights
}

func insightID(a analytics.TeamAnalytics, slug string) string {
	return fmt.Sprintf("%s-%s", a.TeamID, slug)
}

func metric(value float64, benchmark *float64, unit string) *analytics.InsightMetrics {
	return &analytics.InsightMetrics{Value: value, Benchmark: benchmark, Unit: unit}
}

func benchmark(v float64) *float64 {
	return &v
}
