package services

import (
	"sort"
	"time"

	"github.com/adilzhn/FitCoachBackend/models"
)

// AlertWindow is how far ahead upcoming sessions are scanned for health
// conflicts.
const AlertWindow = 15 * time.Minute

type HealthAlert struct {
	EventID      uint      `json:"event_id"`
	ClientID     uint      `json:"client_id"`
	ClientName   string    `json:"client_name"`
	SessionStart time.Time `json:"session_start"`
	SessionEnd   time.Time `json:"session_end"`
	IssueTitle   string    `json:"issue_title"`
	IssueStatus  string    `json:"issue_status"`
}

// CorrelateHealthAlerts joins session-type calendar events starting within
// [now, now+15m) against each linked client's health logs. A client's most
// recently logged ACUTE/LINGERING issue wins; at most one alert per event.
func CorrelateHealthAlerts(
	events []models.CalendarEvent,
	healthLogsByClient map[uint][]models.ClientHealthLog,
	clientNames map[uint]string,
	now time.Time,
) []HealthAlert {
	cutoff := now.Add(AlertWindow)

	alerts := make([]HealthAlert, 0)
	for _, event := range events {
		if event.Type != models.EventTypeSession || event.ClientID == nil {
			continue
		}
		if event.StartsAt.Before(now) || !event.StartsAt.Before(cutoff) {
			continue
		}

		issue, ok := mostRecentActiveIssue(healthLogsByClient[*event.ClientID])
		if !ok {
			continue
		}

		alerts = append(alerts, HealthAlert{
			EventID:      event.ID,
			ClientID:     *event.ClientID,
			ClientName:   clientNames[*event.ClientID],
			SessionStart: event.StartsAt,
			SessionEnd:   event.EndsAt,
			IssueTitle:   issue.Title,
			IssueStatus:  issue.Status,
		})
	}

	return alerts
}

func mostRecentActiveIssue(logs []models.ClientHealthLog) (models.ClientHealthLog, bool) {
	active := make([]models.ClientHealthLog, 0, len(logs))
	for _, log := range logs {
		if log.IsActive() {
			active = append(active, log)
		}
	}
	if len(active) == 0 {
		return models.ClientHealthLog{}, false
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].LoggedAt.After(active[j].LoggedAt)
	})
	return active[0], true
}
