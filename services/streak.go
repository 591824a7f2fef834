package services

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

type StreakStats struct {
	CurrentStreak   int     `json:"current_streak"`
	LongestStreak   int     `json:"longest_streak"`
	LastWorkoutDate *string `json:"last_workout_date"`
	TotalWorkouts   int     `json:"total_workouts"`
}

// ComputeStreak reduces session instants to distinct UTC calendar dates and
// scans them for consecutive-day runs. Multiple sessions on the same day
// collapse to one day; TotalWorkouts still counts raw sessions.
//
// CurrentStreak is evaluated strictly at query time: it is non-zero only
// when the most recent distinct date equals today (UTC).
func ComputeStreak(sessionDates []time.Time, now time.Time) StreakStats {
	stats := StreakStats{TotalWorkouts: len(sessionDates)}
	if len(sessionDates) == 0 {
		return stats
	}

	seen := make(map[string]bool, len(sessionDates))
	days := make([]string, 0, len(sessionDates))
	for _, ts := range sessionDates {
		day := ts.UTC().Format(dayLayout)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Strings(days)

	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		prev, _ := time.Parse(dayLayout, days[i-1])
		cur, _ := time.Parse(dayLayout, days[i])
		if cur.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	stats.LongestStreak = longest

	last := days[len(days)-1]
	stats.LastWorkoutDate = &last

	// Walk backward from today counting unbroken presence.
	today := now.UTC().Format(dayLayout)
	if last == today {
		current := 0
		cursor := now.UTC()
		for seen[cursor.Format(dayLayout)] {
			current++
			cursor = cursor.AddDate(0, 0, -1)
		}
		stats.CurrentStreak = current
	}

	return stats
}
