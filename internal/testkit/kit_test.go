package testkit

import (
	"context"
	"testing"
	"time"
)

func TestSeedCompany(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	kit := NewTestKit(42, now)
	ctx := context.Background()

	if err := kit.SeedCompany(ctx, 3, 5); err != nil {
		t.Fatalf("SeedCompany: %v", err)
	}
	if len(kit.Teams) != 3 {
		t.Fatalf("seeded %d teams, want 3", len(kit.Teams))
	}

	for _, team := range kit.Teams {
		if len(team.MemberIDs) != 5 {
			t.Errorf("team %s has %d members, want 5", team.ID, len(team.MemberIDs))
		}
		tasks, err := kit.Repo.TasksForTeam(ctx, team.ID)
		if err != nil {
			t.Fatalf("TasksForTeam: %v", err)
		}
		if len(tasks) == 0 {
			t.Errorf("team %s seeded with no tasks", team.ID)
		}
		checkIns, err := kit.Repo.CheckInsForUsers(ctx, team.MemberIDs)
		if err != nil {
			t.Fatalf("CheckInsForUsers: %v", err)
		}
		if len(checkIns) == 0 {
			t.Errorf("team %s seeded with no check-ins", team.ID)
		}
	}
}

func TestSeedCompany_Deterministic(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	a := NewTestKit(7, now)
	b := NewTestKit(7, now)
	if err := a.SeedCompany(ctx, 2, 3); err != nil {
		t.Fatal(err)
	}
	if err := b.SeedCompany(ctx, 2, 3); err != nil {
		t.Fatal(err)
	}

	for i := range a.Teams {
		tasksA, _ := a.Repo.TasksForTeam(ctx, a.Teams[i].ID)
		tasksB, _ := b.Repo.TasksForTeam(ctx, b.Teams[i].ID)
		if len(tasksA) != len(tasksB) {
			t.Errorf("team %d: %d vs %d tasks for the same seed", i, len(tasksA), len(tasksB))
		}
	}
}
