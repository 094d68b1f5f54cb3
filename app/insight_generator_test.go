package app

import (
	"testing"

	"teampulse/domain/analytics"
)

func baseSnapshot() analytics.TeamAnalytics {
	// A snapshot that fires no rules at all
	return analytics.TeamAnalytics{
		TeamID:          "team-alpha",
		TeamName:        "Alpha",
		TasksAssigned:   10,
		TasksCompleted:  8,
		CompletionRate:  80,
		AvgMoodScore:    4,
		AvgEnergyLevel:  4,
		StressIndex:     10,
		VelocityPerWeek: 8,
	}
}

func findInsight(insights []analytics.Insight, id string) *analytics.Insight {
	for i := range insights {
		if insights[i].ID == id {
			return &insights[i]
		}
	}
	return nil
}

func TestGenerate_QuietSnapshot(t *testing.T) {
	got := NewInsightGenerator().Generate(baseSnapshot())
	if len(got) != 0 {
		t.Fatalf("expected no insights, got %d: %+v", len(got), got)
	}
}

func TestGenerate_Rules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*analytics.TeamAnalytics)
		wantID   string
		wantType analytics.InsightType
		wantPrio analytics.InsightPriority
	}{
		{
			name:     "low completion",
			mutate:   func(a *analytics.TeamAnalytics) { a.CompletionRate = 45 },
			wantID:   "team-alpha-low-completion",
			wantType: analytics.InsightWarning,
			wantPrio: analytics.PriorityHigh,
		},
		{
			name:     "high completion",
			mutate:   func(a *analytics.TeamAnalytics) { a.CompletionRate = 92 },
			wantID:   "team-alpha-high-completion",
			wantType: analytics.InsightSuccess,
			wantPrio: analytics.PriorityLow,
		},
		{
			name:     "boundary completion 90 counts as success",
			mutate:   func(a *analytics.TeamAnalytics) { a.CompletionRate = 90 },
			wantID:   "team-alpha-high-completion",
			wantType: analytics.InsightSuccess,
			wantPrio: analytics.PriorityLow,
		},
		{
			name:     "high stress",
			mutate:   func(a *analytics.TeamAnalytics) { a.StressIndex = 55 },
			wantID:   "team-alpha-high-stress",
			wantType: analytics.InsightWarning,
			wantPrio: analytics.PriorityHigh,
		},
		{
			name:     "strong correlation",
			mutate:   func(a *analytics.TeamAnalytics) { a.WellnessProductivityCorr = 0.7 },
			wantID:   "team-alpha-positive-correlation",
			wantType: analytics.InsightInfo,
			wantPrio: analytics.PriorityMedium,
		},
		{
			name:     "few overdue is medium",
			mutate:   func(a *analytics.TeamAnalytics) { a.TasksOverdue = 3 },
			wantID:   "team-alpha-overdue",
			wantType: analytics.InsightWarning,
			wantPrio: analytics.PriorityMedium,
		},
		{
			name:     "many overdue is high",
			mutate:   func(a *analytics.TeamAnalytics) { a.TasksOverdue = 6 },
			wantID:   "team-alpha-overdue",
			wantType: analytics.InsightWarning,
			wantPrio: analytics.PriorityHigh,
		},
		{
			name:     "low mood",
			mutate:   func(a *analytics.TeamAnalytics) { a.AvgMoodScore = 2.4 },
			wantID:   "team-alpha-low-mood",
			wantType: analytics.InsightWarning,
			wantPrio: analytics.PriorityHigh,
		},
		{
			name:     "high velocity",
			mutate:   func(a *analytics.TeamAnalytics) { a.VelocityPerWeek = 12 },
			wantID:   "team-alpha-high-velocity",
			wantType: analytics.InsightSuccess,
			wantPrio: analytics.PriorityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := baseSnapshot()
			tt.mutate(&snapshot)
			got := NewInsightGenerator().Generate(snapshot)
			if len(got) != 1 {
				t.Fatalf("expected exactly 1 insight, got %d: %+v", len(got), got)
			}
			ins := got[0]
			if ins.ID != tt.wantID {
				t.Errorf("ID = %s, want %s", ins.ID, tt.wantID)
			}
			if ins.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", ins.Type, tt.wantType)
			}
			if ins.Priority != tt.wantPrio {
				t.Errorf("Priority = %s, want %s", ins.Priority, tt.wantPrio)
			}
		})
	}
}

func TestGenerate_SuccessRulesAreNotActionable(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.CompletionRate = 95
	snapshot.VelocityPerWeek = 15

	for _, ins := range NewInsightGenerator().Generate(snapshot) {
		if ins.Type == analytics.InsightSuccess && ins.Actionable {
			t.Errorf("success insight %s should not be actionable", ins.ID)
		}
		if ins.Type == analytics.InsightSuccess && ins.SuggestedAction != "" {
			t.Errorf("success insight %s should carry no suggested action", ins.ID)
		}
	}
}

func TestGenerate_PriorityOrdering(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.CompletionRate = 95            // success, low
	snapshot.StressIndex = 60               // warning, high
	snapshot.WellnessProductivityCorr = 0.8 // info, medium
	snapshot.TasksOverdue = 2               // warning, medium

	got := NewInsightGenerator().Generate(snapshot)
	if len(got) != 4 {
		t.Fatalf("expected 4 insights, got %d", len(got))
	}

	for i := 1; i < len(got); i++ {
		if got[i-1].Priority.Rank() < got[i].Priority.Rank() {
			t.Fatalf("insights out of priority order: %s before %s", got[i-1].ID, got[i].ID)
		}
	}
	if got[0].ID != "team-alpha-high-stress" {
		t.Errorf("expected high-priority stress insight first, got %s", got[0].ID)
	}
	// Stable sort: ties keep rule-declaration order (correlation before overdue)
	if got[1].ID != "team-alpha-positive-correlation" || got[2].ID != "team-alpha-overdue" {
		t.Errorf("medium-priority tie order wrong: %s, %s", got[1].ID, got[2].ID)
	}
	if got[3].ID != "team-alpha-high-completion" {
		t.Errorf("expected low-priority insight last, got %s", got[3].ID)
	}
}

func TestGenerate_BenchmarksAttached(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.CompletionRate = 30

	got := NewInsightGenerator().Generate(snapshot)
	ins := findInsight(got, "team-alpha-low-completion")
	if ins == nil {
		t.Fatal("missing low-completion insight")
	}
	if ins.Metrics == nil || ins.Metrics.Benchmark == nil {
		t.Fatal("expected metrics with benchmark")
	}
	if *ins.Metrics.Benchmark != 75 {
		t.Errorf("benchmark = %v, want 75", *ins.Metrics.Benchmark)
	}
	if ins.Metrics.Value != 30 {
		t.Errorf("value = %v, want 30", ins.Metrics.Value)
	}
}
