package app

import (
	"context"
	"math"
	"testing"

	"teampulse/adapters/memory"
	"teampulse/domain/analytics"
	"teampulse/domain/core"
	"teampulse/domain/record"
)

func newCompanyFixture(t *testing.T) (*memory.Repository, *CompanyService) {
	t.Helper()
	repo := memory.NewRepository()
	metrics := NewMetricsService(repo, repo, core.FixedClock{At: testNow})
	return repo, NewCompanyService(metrics, NewInsightGenerator(), core.FixedClock{At: testNow})
}

func teamRef(id, name string, members ...string) analytics.TeamRef {
	ref := analytics.TeamRef{ID: core.TeamID(id), Name: name}
	for _, m := range members {
		ref.MemberIDs = append(ref.MemberIDs, core.UserID(m))
	}
	return ref
}

func TestComputeCompanyAnalytics_ZeroTeams(t *testing.T) {
	_, svc := newCompanyFixture(t)
	period := analytics.ResolveRange(analytics.GranularityWeek, testNow)

	got, err := svc.ComputeCompanyAnalytics(context.Background(), nil, period)
	if err != nil {
		t.Fatalf("ComputeCompanyAnalytics: %v", err)
	}

	if got.OverallCompletionRate != 0 || got.OverallMoodScore != 0 {
		t.Errorf("overall rates = %v/%v, want 0/0", got.OverallCompletionRate, got.OverallMoodScore)
	}
	if got.TotalTasksCompleted != 0 || got.TotalCheckIns != 0 {
		t.Errorf("totals = %d/%d, want 0/0", got.TotalTasksCompleted, got.TotalCheckIns)
	}
	if len(got.Teams) != 0 || len(got.Insights) != 0 {
		t.Errorf("lists not empty: %d teams, %d insights", len(got.Teams), len(got.Insights))
	}
	if got.TopPerformingTeam != nil || got.TeamNeedingAttention != nil {
		t.Error("top/attention teams should be undefined with zero teams")
	}
}

func TestComputeCompanyAnalytics_Aggregation(t *testing.T) {
	repo, svc := newCompanyFixture(t)
	period := analytics.ResolveRange(analytics.GranularityWeek, testNow)

	strong := teamRef("team-strong", "Strong", "s1")
	weak := teamRef("team-weak", "Weak", "w1")

	// Strong: 4 of 4 completed; Weak: 1 of 4 completed
	for i := 0; i < 4; i++ {
		addTask(t, repo, strong, record.StatusCompleted, record.PriorityHigh, testNow.AddDate(0, 0, -3), 1, nil)
	}
	addTask(t, repo, weak, record.StatusCompleted, record.PriorityLow, testNow.AddDate(0, 0, -3), 1, nil)
	for i := 0; i < 3; i++ {
		addTask(t, repo, weak, record.StatusPending, record.PriorityLow, testNow.AddDate(0, 0, -3), 0, nil)
	}

	addCheckIn(t, repo, "s1", testNow.AddDate(0, 0, -1), record.MoodExcellent)
	addCheckIn(t, repo, "w1", testNow.AddDate(0, 0, -1), record.MoodOverwhelmed)

	got, err := svc.ComputeCompanyAnalytics(context.Background(), []analytics.TeamRef{strong, weak}, period)
	if err != nil {
		t.Fatalf("ComputeCompanyAnalytics: %v", err)
	}

	// Unweighted mean of 100 and 25
	if math.Abs(got.OverallCompletionRate-62.5) > 1e-9 {
		t.Errorf("OverallCompletionRate = %v, want 62.5", got.OverallCompletionRate)
	}
	// Unweighted mean of 5 and 1
	if math.Abs(got.OverallMoodScore-3) > 1e-9 {
		t.Errorf("OverallMoodScore = %v, want 3", got.OverallMoodScore)
	}
	if got.TotalTasksCompleted != 5 {
		t.Errorf("TotalTasksCompleted = %d, want 5", got.TotalTasksCompleted)
	}
	if got.TotalCheckIns != 2 {
		t.Errorf("TotalCheckIns = %d, want 2", got.TotalCheckIns)
	}

	if got.TopPerformingTeam == nil || got.TopPerformingTeam.TeamID != "team-strong" {
		t.Errorf("TopPerformingTeam = %+v, want team-strong", got.TopPerformingTeam)
	}
	if got.TeamNeedingAttention == nil || got.TeamNeedingAttention.TeamID != "team-weak" {
		t.Errorf("TeamNeedingAttention = %+v, want team-weak", got.TeamNeedingAttention)
	}

	// Input team order is preserved
	if got.Teams[0].TeamID != "team-strong" || got.Teams[1].TeamID != "team-weak" {
		t.Errorf("team order not preserved: %s, %s", got.Teams[0].TeamID, got.Teams[1].TeamID)
	}
}

func TestComputeCompanyAnalytics_InsightsConcatenatedInTeamOrder(t *testing.T) {
	repo, svc := newCompanyFixture(t)
	period := analytics.ResolveRange(analytics.GranularityWeek, testNow)

	// First team fires only the high-velocity success (low priority);
	// second team fires the low-completion warning (high priority).
	fast := teamRef("team-fast", "Fast", "f1")
	for i := 0; i < 12; i++ {
		addTask(t, repo, fast, record.StatusCompleted, record.PriorityMedium, testNow.AddDate(0, 0, -2), 1, nil)
	}
	slow := teamRef("team-slow", "Slow", "sl1")
	addTask(t, repo, slow, record.StatusCompleted, record.PriorityMedium, testNow.AddDate(0, 0, -2), 1, nil)
	addTask(t, repo, slow, record.StatusPending, record.PriorityMedium, testNow.AddDate(0, 0, -2), 0, nil)

	got, err := svc.ComputeCompanyAnalytics(context.Background(), []analytics.TeamRef{fast, slow}, period)
	if err != nil {
		t.Fatalf("ComputeCompanyAnalytics: %v", err)
	}

	// The company list keeps team order: Fast's low-priority insights come
	// before Slow's high-priority one. It is not globally re-sorted.
	var fastSeen bool
	for _, ins := range got.Insights {
		if ins.ID == "team-fast-high-velocity" {
			fastSeen = true
		}
		if ins.ID == "team-slow-low-completion" && !fastSeen {
			t.Fatal("company insights were re-sorted across teams")
		}
	}
}

func TestComparePeriods_DeltaSign(t *testing.T) {
	repo, svc := newCompanyFixture(t)
	team := teamRef("team-alpha", "Alpha", "a1")

	// 5 completions this week, 3 the week before
	for i := 0; i < 5; i++ {
		addTask(t, repo, team, record.StatusCompleted, record.PriorityMedium, testNow.AddDate(0, 0, -2), 1, nil)
	}
	for i := 0; i < 3; i++ {
		addTask(t, repo, team, record.StatusCompleted, record.PriorityMedium, testNow.AddDate(0, 0, -10), 1, nil)
	}
	addCheckIn(t, repo, "a1", testNow.AddDate(0, 0, -1), record.MoodGood)
	addCheckIn(t, repo, "a1", testNow.AddDate(0, 0, -9), record.MoodNeutral)
	addCheckIn(t, repo, "a1", testNow.AddDate(0, 0, -10), record.MoodNeutral)

	got, err := svc.ComparePeriods(context.Background(), []analytics.TeamRef{team}, analytics.GranularityWeek)
	if err != nil {
		t.Fatalf("ComparePeriods: %v", err)
	}

	if got.Current.TotalTasksCompleted != 5 {
		t.Errorf("current completed = %d, want 5", got.Current.TotalTasksCompleted)
	}
	if got.Previous.TotalTasksCompleted != 3 {
		t.Errorf("previous completed = %d, want 3", got.Previous.TotalTasksCompleted)
	}
	if got.Delta.TasksCompleted != 2 {
		t.Errorf("delta completed = %d, want 2", got.Delta.TasksCompleted)
	}
	if got.Delta.CheckIns != -1 {
		t.Errorf("delta check-ins = %d, want -1", got.Delta.CheckIns)
	}
	// Mood moved up from 3.0 to 4.0
	if math.Abs(got.Delta.MoodScore-1) > 1e-9 {
		t.Errorf("delta mood = %v, want 1", got.Delta.MoodScore)
	}
}

func TestResolvePreviousRange_Contiguous(t *testing.T) {
	for _, g := range []analytics.Granularity{
		analytics.GranularityWeek, analytics.GranularityMonth, analytics.GranularityQuarter,
	} {
		current := analytics.ResolveRange(g, testNow)
		previous := analytics.ResolvePreviousRange(g, testNow)
		if !previous.End.Equal(current.Start) {
			t.Errorf("%s: previous end %v != current start %v", g, previous.End, current.Start)
		}
		if previous.Start.After(previous.End) {
			t.Errorf("%s: inverted previous range", g)
		}
	}
}
