package memory

import (
	"context"
	"testing"
	"time"

	"teampulse/domain/core"
	"teampulse/domain/record"
)

func TestRepository_RejectsInvalidRecords(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	task := record.Task{
		ID:        "task-1",
		UserID:    "user-1",
		TeamID:    "team-1",
		Title:     "broken",
		Status:    record.StatusCompleted, // no CompletedAt
		Priority:  record.PriorityLow,
		Category:  record.CategoryTeam,
		CreatedAt: core.NewTimestamp(time.Now()),
	}
	if err := repo.SaveTask(ctx, task); err == nil {
		t.Error("invariant-breaking task accepted")
	}

	checkIn := record.CheckIn{
		ID:     "checkin-1",
		UserID: "user-1",
		Date:   core.NewTimestamp(time.Now()),
		Mood:   "sleepy",
		Energy: 3,
		Stress: 3,
	}
	if err := repo.SaveCheckIn(ctx, checkIn); err == nil {
		t.Error("unknown mood accepted")
	}
}

func TestRepository_CheckInsForUsers(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, user := range []core.UserID{"a", "b", "c"} {
		checkIn := record.CheckIn{
			ID:     core.CheckInID(core.NewID()),
			UserID: user,
			Date:   core.NewTimestamp(time.Now()),
			Mood:   record.MoodGood,
			Energy: 3,
			Stress: 2,
		}
		if err := repo.SaveCheckIn(ctx, checkIn); err != nil {
			t.Fatalf("SaveCheckIn: %v", err)
		}
	}

	got, err := repo.CheckInsForUsers(ctx, []core.UserID{"a", "c"})
	if err != nil {
		t.Fatalf("CheckInsForUsers: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d check-ins, want 2", len(got))
	}

	single, err := repo.CheckInsForUser(ctx, "b")
	if err != nil {
		t.Fatalf("CheckInsForUser: %v", err)
	}
	if len(single) != 1 {
		t.Errorf("got %d check-ins for one user, want 1", len(single))
	}
}

func TestRepository_TasksForTeamIsolated(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, team := range []core.TeamID{"team-1", "team-1", "team-2"} {
		task := record.Task{
			ID:        core.TaskID(core.NewID()),
			UserID:    "user-1",
			TeamID:    team,
			Title:     "t",
			Status:    record.StatusPending,
			Priority:  record.PriorityLow,
			Category:  record.CategoryTeam,
			CreatedAt: core.NewTimestamp(time.Now()),
		}
		if err := repo.SaveTask(ctx, task); err != nil {
			t.Fatalf("SaveTask: %v", err)
		}
	}

	got, err := repo.TasksForTeam(ctx, "team-1")
	if err != nil {
		t.Fatalf("TasksForTeam: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d tasks, want 2", len(got))
	}
}
