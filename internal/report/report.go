// Package report serializes computed analytics into a textual summary for
// the conversational assistant and the dashboard. It is a pure consumer of
// the engine's output and never alters its numeric contracts.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"teampulse/adapters/stats/trend"
	"teampulse/domain/analytics"
)

// maxReportInsights caps how many insights the summary quotes
const maxReportInsights = 8

// projectionPeriods is the dashboard convention for forward projection
const projectionPeriods = 2

// BuildCompanyContext renders the company snapshot as markdown, one section
// for overall metrics, one per team, and the top insights.
func BuildCompanyContext(company analytics.CompanyWideAnalytics, at time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Company report — %s\n\n", at.Format("2 January 2006"))
	fmt.Fprintf(&b, "## Overall metrics\n\n")
	fmt.Fprintf(&b, "- Average completion: %.1f%%\n", company.OverallCompletionRate)
	fmt.Fprintf(&b, "- Average mood: %.1f/5\n", company.OverallMoodScore)
	fmt.Fprintf(&b, "- Tasks completed: %d\n", company.TotalTasksCompleted)
	fmt.Fprintf(&b, "- Check-ins recorded: %d\n", company.TotalCheckIns)
	fmt.Fprintf(&b, "- Active teams: %d\n", len(company.Teams))
	if company.TopPerformingTeam != nil {
		fmt.Fprintf(&b, "- Top team: %s (%.1f%%)\n", company.TopPerformingTeam.TeamName, company.TopPerformingTeam.CompletionRate)
	}
	if company.TeamNeedingAttention != nil {
		fmt.Fprintf(&b, "- Needs attention: %s\n", company.TeamNeedingAttention.TeamName)
	}

	fmt.Fprintf(&b, "\n## Teams\n")
	for _, team := range company.Teams {
		writeTeamSection(&b, team)
	}

	fmt.Fprintf(&b, "\n## Insights\n\n")
	if len(company.Insights) == 0 {
		b.WriteString("No active alerts.\n")
	}
	for i, ins := range company.Insights {
		if i >= maxReportInsights {
			break
		}
		fmt.Fprintf(&b, "- [%s] %s — %s", strings.ToUpper(string(ins.Priority)), ins.Title, ins.Description)
		if ins.SuggestedAction != "" {
			fmt.Fprintf(&b, " Suggested: %s", ins.SuggestedAction)
		}
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}

func writeTeamSection(b *strings.Builder, team analytics.TeamAnalytics) {
	fmt.Fprintf(b, "\n### %s (%d members)\n\n", team.TeamName, team.MemberCount)
	fmt.Fprintf(b, "- Completion: %.1f%% | Velocity: %.1f tasks/week\n", team.CompletionRate, team.VelocityPerWeek)
	fmt.Fprintf(b, "- Tasks: %d assigned, %d completed, %d in progress, %d overdue\n",
		team.TasksAssigned, team.TasksCompleted, team.TasksInProgress, team.TasksOverdue)
	fmt.Fprintf(b, "- Avg completion time: %.1f days\n", team.AvgCompletionTime)
	fmt.Fprintf(b, "- Completed by priority: high=%d, medium=%d, low=%d\n",
		team.HighPriorityCompleted, team.MediumPriorityCompleted, team.LowPriorityCompleted)
	fmt.Fprintf(b, "- Mood: %.1f/5 | Energy: %.1f/5 | Stress index: %.1f%% | Check-ins: %d\n",
		team.AvgMoodScore, team.AvgEnergyLevel, team.StressIndex, team.CheckInCount)
	fmt.Fprintf(b, "- Wellbeing-productivity correlation: %.0f%%\n", team.WellnessProductivityCorr*100)

	mood, velocity := Projections(team)
	fmt.Fprintf(b, "- Projected (2 periods): mood %.1f/5, velocity %.1f tasks/week\n", mood, velocity)
	fmt.Fprintf(b, "- Mood trend: %s | Productivity trend: %s\n",
		trend.Classify(team.MoodTrend), trend.Classify(team.ProductivityTrend))
}

// Projections extends mood and velocity along their fitted slopes, clamped
// into each metric's valid range (mood 1-5, velocity non-negative).
func Projections(team analytics.TeamAnalytics) (mood, velocity float64) {
	moodSlope := trend.Slope(team.MoodTrend)
	productivitySlope := trend.Slope(team.ProductivityTrend)
	mood = trend.Project(team.AvgMoodScore, moodSlope, projectionPeriods, 1, 5)
	velocity = trend.Project(team.VelocityPerWeek, productivitySlope, projectionPeriods, 0, math.MaxFloat64)
	return mood, velocity
}

// KeyFindings condenses the snapshot into a short list of headline facts.
func KeyFindings(company analytics.CompanyWideAnalytics) []string {
	findings := make([]string, 0, 4)

	switch {
	case company.OverallCompletionRate >= 80:
		findings = append(findings, fmt.Sprintf("Healthy overall completion (%.1f%%)", company.OverallCompletionRate))
	case company.OverallCompletionRate < 60:
		findings = append(findings, fmt.Sprintf("Low overall completion (%.1f%%)", company.OverallCompletionRate))
	}

	switch {
	case company.OverallMoodScore >= 4:
		findings = append(findings, fmt.Sprintf("Excellent team morale (%.1f/5)", company.OverallMoodScore))
	case company.OverallMoodScore < 3:
		findings = append(findings, fmt.Sprintf("Low morale needs attention (%.1f/5)", company.OverallMoodScore))
	}

	struggling := 0
	for _, team := range company.Teams {
		if team.CompletionRate < 60 || team.AvgMoodScore < 3 {
			struggling++
		}
	}
	if struggling > 0 {
		findings = append(findings, fmt.Sprintf("%d team(s) need support", struggling))
	}

	highPriority := 0
	for _, ins := range company.Insights {
		if ins.Priority == analytics.PriorityHigh {
			highPriority++
		}
	}
	if highPriority > 0 {
		findings = append(findings, fmt.Sprintf("%d high-priority alert(s) active", highPriority))
	}

	return findings
}
