package services

import (
	"testing"
	"time"
)

func TestComputeStreak_Empty(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	stats := ComputeStreak(nil, now)

	if stats.CurrentStreak != 0 || stats.LongestStreak != 0 || stats.TotalWorkouts != 0 {
		t.Fatalf("expected all zeros, got %+v", stats)
	}
	if stats.LastWorkoutDate != nil {
		t.Fatalf("expected nil last workout date, got %q", *stats.LastWorkoutDate)
	}
}

func TestComputeStreak_SingleSessionToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	stats := ComputeStreak([]time.Time{
		time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC),
	}, now)

	if stats.CurrentStreak != 1 || stats.LongestStreak != 1 {
		t.Fatalf("expected current=longest=1, got current=%d longest=%d",
			stats.CurrentStreak, stats.LongestStreak)
	}
	if stats.TotalWorkouts != 1 {
		t.Fatalf("expected total=1, got %d", stats.TotalWorkouts)
	}
}

func TestComputeStreak_SameDaySessionsCollapse(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)

	// Three sessions, all today: one distinct day, raw total of three.
	sessions := []time.Time{
		time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC),
	}

	stats := ComputeStreak(sessions, now)

	if stats.CurrentStreak != 1 || stats.LongestStreak != 1 {
		t.Fatalf("expected current=longest=1, got current=%d longest=%d",
			stats.CurrentStreak, stats.LongestStreak)
	}
	if stats.TotalWorkouts != 3 {
		t.Fatalf("expected total=3, got %d", stats.TotalWorkouts)
	}
}

func TestComputeStreak_GapSplitsRuns(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

	// Run of two, a three-day gap, then a run of four ending in the past.
	sessions := []time.Time{
		time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC),
	}

	stats := ComputeStreak(sessions, now)

	if stats.LongestStreak != 4 {
		t.Fatalf("expected longest=4, got %d", stats.LongestStreak)
	}
	if stats.CurrentStreak != 0 {
		t.Fatalf("most recent day is not today, expected current=0, got %d", stats.CurrentStreak)
	}
	if stats.LastWorkoutDate == nil || *stats.LastWorkoutDate != "2025-03-09" {
		t.Fatalf("unexpected last workout date: %v", stats.LastWorkoutDate)
	}
}

func TestComputeStreak_YesterdayRunDoesNotCountAsCurrent(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	// Five consecutive days ending yesterday. Evaluated strictly at query
	// time: no session today means current is zero.
	sessions := make([]time.Time, 0, 5)
	for d := 5; d >= 1; d-- {
		sessions = append(sessions, now.AddDate(0, 0, -d))
	}

	stats := ComputeStreak(sessions, now)

	if stats.CurrentStreak != 0 {
		t.Fatalf("expected current=0, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 5 {
		t.Fatalf("expected longest=5, got %d", stats.LongestStreak)
	}
}

func TestComputeStreak_CurrentRunWalksBackFromToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)

	// Today plus the two preceding days, with an older orphan day.
	sessions := []time.Time{
		time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	stats := ComputeStreak(sessions, now)

	if stats.CurrentStreak != 3 {
		t.Fatalf("expected current=3, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 3 {
		t.Fatalf("expected longest=3, got %d", stats.LongestStreak)
	}
	if stats.TotalWorkouts != 4 {
		t.Fatalf("expected total=4, got %d", stats.TotalWorkouts)
	}
}

func TestComputeStreak_MidnightBoundaryUTC(t *testing.T) {
	now := time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC)

	// 23:59 and 00:01 around midnight are different UTC days, so they form
	// a two-day run.
	sessions := []time.Time{
		time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC),
		time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC),
	}

	stats := ComputeStreak(sessions, now)

	if stats.LongestStreak != 2 {
		t.Fatalf("expected longest=2, got %d", stats.LongestStreak)
	}
	if stats.CurrentStreak != 2 {
		t.Fatalf("expected current=2, got %d", stats.CurrentStreak)
	}
}
