package services

import "time"

type WeeklyGoalStats struct {
	Goal      int       `json:"goal"`
	Completed int       `json:"completed"`
	WeekStart time.Time `json:"week_start"`
}

// WeekStartUTC returns Monday 00:00:00 UTC of the ISO week containing now.
func WeekStartUTC(now time.Time) time.Time {
	utc := now.UTC()
	// Normalize so Monday=0 .. Sunday=6.
	offset := (int(utc.Weekday()) + 6) % 7
	day := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}

// ComputeWeeklyGoal counts sessions inside [weekStart, weekStart+7d) and
// derives the goal from the profile setting when positive, otherwise from
// the client's active-routine count.
func ComputeWeeklyGoal(goal *int, sessionDates []time.Time, routineCount int, now time.Time) WeeklyGoalStats {
	weekStart := WeekStartUTC(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	completed := 0
	for _, ts := range sessionDates {
		utc := ts.UTC()
		if !utc.Before(weekStart) && utc.Before(weekEnd) {
			completed++
		}
	}

	effective := routineCount
	if goal != nil && *goal > 0 {
		effective = *goal
	}

	return WeeklyGoalStats{
		Goal:      effective,
		Completed: completed,
		WeekStart: weekStart,
	}
}
