// Package testkit seeds believable teams, tasks, and check-ins for tests and
// the demo server. Generation is deterministic for a given seed.
package testkit

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"teampulse/adapters/memory"
	"teampulse/domain/analytics"
	"teampulse/domain/core"
	"teampulse/domain/record"
)

// TestKit owns a seeded in-memory record store and the team roster it
// generated.
type TestKit struct {
	Repo  *memory.Repository
	Teams []analytics.TeamRef

	rng *rand.Rand
	now time.Time
}

// NewTestKit creates a kit with an empty store
func NewTestKit(seed int64, now time.Time) *TestKit {
	return &TestKit{
		Repo: memory.NewRepository(),
		rng:  rand.New(rand.NewSource(seed)),
		now:  now,
	}
}

// Directory returns a team directory over the seeded roster
func (k *TestKit) Directory() *memory.StaticDirectory {
	return memory.NewStaticDirectory(k.Teams)
}

var teamNames = []string{"Alpha", "Atlas", "Beacon", "Catalyst", "Drift"}

var moods = []record.Mood{
	record.MoodExcellent, record.MoodGood, record.MoodNeutral,
	record.MoodStressed, record.MoodOverwhelmed,
}

var priorities = []record.TaskPriority{
	record.PriorityLow, record.PriorityMedium, record.PriorityHigh,
}

// SeedCompany populates the store with the given number of teams, each with
// members, a month of tasks, and daily check-ins.
func (k *TestKit) SeedCompany(ctx context.Context, teamCount, membersPerTeam int) error {
	if teamCount > len(teamNames) {
		teamCount = len(teamNames)
	}
	for i := 0; i < teamCount; i++ {
		team := analytics.TeamRef{
			ID:   core.TeamID(fmt.Sprintf("team-%02d", i+1)),
			Name: teamNames[i],
		}
		for m := 0; m < membersPerTeam; m++ {
			team.MemberIDs = append(team.MemberIDs, core.UserID(fmt.Sprintf("%s-member-%02d", team.ID, m+1)))
		}
		if err := k.seedTeam(ctx, team); err != nil {
			return err
		}
		k.Teams = append(k.Teams, team)
	}
	return nil
}

func (k *TestKit) seedTeam(ctx context.Context, team analytics.TeamRef) error {
	// Tasks spread over the last 30 days, roughly two-thirds completed
	taskCount := 15 + k.rng.Intn(20)
	for i := 0; i < taskCount; i++ {
		createdAt := k.now.AddDate(0, 0, -k.rng.Intn(30)).Add(-time.Duration(k.rng.Intn(12)) * time.Hour)
		task := record.Task{
			ID:        core.TaskID(core.NewID()),
			UserID:    team.MemberIDs[k.rng.Intn(len(team.MemberIDs))],
			TeamID:    team.ID,
			Title:     fmt.Sprintf("%s task %d", team.Name, i+1),
			Status:    record.StatusPending,
			Priority:  priorities[k.rng.Intn(len(priorities))],
			Category:  record.CategoryTeam,
			CreatedAt: core.NewTimestamp(createdAt),
		}

		switch k.rng.Intn(6) {
		case 0:
			// stays pending, sometimes with a past due date
			if k.rng.Intn(3) == 0 {
				due := core.NewTimestamp(createdAt.AddDate(0, 0, 2))
				task.DueDate = &due
			}
		case 1:
			task.Status = record.StatusInProgress
		default:
			task.Status = record.StatusCompleted
			completedAt := core.NewTimestamp(createdAt.AddDate(0, 0, 1+k.rng.Intn(3)))
			task.CompletedAt = &completedAt
		}

		if err := k.Repo.SaveTask(ctx, task); err != nil {
			return err
		}
	}

	// One check-in per member per day over the last two weeks, with gaps
	for _, member := range team.MemberIDs {
		for d := 0; d < 14; d++ {
			if k.rng.Intn(4) == 0 {
				continue
			}
			checkIn := record.CheckIn{
				ID:     core.CheckInID(core.NewID()),
				UserID: member,
				Date:   core.NewTimestamp(k.now.AddDate(0, 0, -d)),
				Mood:   moods[k.rng.Intn(len(moods))],
				Energy: 1 + k.rng.Intn(5),
				Stress: 1 + k.rng.Intn(5),
			}
			if err := k.Repo.SaveCheckIn(ctx, checkIn); err != nil {
				return err
			}
		}
	}
	return nil
}
