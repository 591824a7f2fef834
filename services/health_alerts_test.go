package services

import (
	"testing"
	"time"

	"github.com/adilzhn/FitCoachBackend/models"
)

func sessionEvent(id, clientID uint, startsAt time.Time) models.CalendarEvent {
	cid := clientID
	return models.CalendarEvent{
		ID:       id,
		PTID:     1,
		ClientID: &cid,
		Type:     models.EventTypeSession,
		Title:    "Training",
		StartsAt: startsAt,
		EndsAt:   startsAt.Add(time.Hour),
	}
}

func TestCorrelateHealthAlerts_AcuteIssueFlagsUpcomingSession(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	events := []models.CalendarEvent{
		sessionEvent(1, 7, now.Add(10*time.Minute)),
	}
	logs := map[uint][]models.ClientHealthLog{
		7: {
			{ClientID: 7, Title: "Sprained ankle", Status: models.HealthStatusAcute,
				LoggedAt: now.Add(-24 * time.Hour)},
		},
	}
	names := map[uint]string{7: "Alex Doe"}

	alerts := CorrelateHealthAlerts(events, logs, names, now)

	if len(alerts) != 1 {
		t.Fatalf("expected exactly one alert, got %d", len(alerts))
	}
	alert := alerts[0]
	if alert.EventID != 1 || alert.ClientID != 7 {
		t.Fatalf("unexpected alert target: %+v", alert)
	}
	if alert.IssueStatus != models.HealthStatusAcute {
		t.Fatalf("expected ACUTE status, got %q", alert.IssueStatus)
	}
	if alert.IssueTitle != "Sprained ankle" {
		t.Fatalf("unexpected issue title %q", alert.IssueTitle)
	}
	if alert.ClientName != "Alex Doe" {
		t.Fatalf("unexpected client name %q", alert.ClientName)
	}
}

func TestCorrelateHealthAlerts_MostRecentActiveIssueWins(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	events := []models.CalendarEvent{
		sessionEvent(1, 7, now.Add(5*time.Minute)),
	}
	logs := map[uint][]models.ClientHealthLog{
		7: {
			{Title: "Sore back", Status: models.HealthStatusLingering,
				LoggedAt: now.Add(-72 * time.Hour)},
			{Title: "Knee pain", Status: models.HealthStatusAcute,
				LoggedAt: now.Add(-2 * time.Hour)},
			{Title: "Old wrist issue", Status: models.HealthStatusResolved,
				LoggedAt: now.Add(-1 * time.Hour)},
		},
	}

	alerts := CorrelateHealthAlerts(events, logs, nil, now)

	if len(alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(alerts))
	}
	// RESOLVED is newest but inactive; the newest active entry is chosen.
	if alerts[0].IssueTitle != "Knee pain" {
		t.Fatalf("expected newest active issue, got %q", alerts[0].IssueTitle)
	}
}

func TestCorrelateHealthAlerts_ResolvedOnlyProducesNothing(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	events := []models.CalendarEvent{
		sessionEvent(1, 7, now.Add(5*time.Minute)),
	}
	logs := map[uint][]models.ClientHealthLog{
		7: {
			{Title: "Healed", Status: models.HealthStatusResolved, LoggedAt: now.Add(-time.Hour)},
		},
	}

	if alerts := CorrelateHealthAlerts(events, logs, nil, now); len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %d", len(alerts))
	}
}

func TestCorrelateHealthAlerts_WindowIsInclusiveExclusive(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	logs := map[uint][]models.ClientHealthLog{
		7: {{Title: "Injury", Status: models.HealthStatusAcute, LoggedAt: now}},
	}

	cases := []struct {
		name     string
		startsAt time.Time
		want     int
	}{
		{"starts right now", now, 1},
		{"one second before the cutoff", now.Add(AlertWindow - time.Second), 1},
		{"exactly at the cutoff", now.Add(AlertWindow), 0},
		{"already started", now.Add(-time.Minute), 0},
	}

	for _, tc := range cases {
		events := []models.CalendarEvent{sessionEvent(1, 7, tc.startsAt)}
		got := CorrelateHealthAlerts(events, logs, nil, now)
		if len(got) != tc.want {
			t.Fatalf("%s: expected %d alerts, got %d", tc.name, tc.want, len(got))
		}
	}
}

func TestCorrelateHealthAlerts_SkipsNonSessionAndUnlinkedEvents(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	cid := uint(7)
	events := []models.CalendarEvent{
		{ID: 1, ClientID: &cid, Type: "blocked_time", StartsAt: now.Add(5 * time.Minute)},
		{ID: 2, ClientID: nil, Type: models.EventTypeSession, StartsAt: now.Add(5 * time.Minute)},
	}
	logs := map[uint][]models.ClientHealthLog{
		7: {{Title: "Injury", Status: models.HealthStatusAcute, LoggedAt: now}},
	}

	if alerts := CorrelateHealthAlerts(events, logs, nil, now); len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %d", len(alerts))
	}
}

func TestCorrelateHealthAlerts_OneAlertPerEvent(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	// Two clients with active issues, two upcoming sessions each linked to
	// one of them.
	events := []models.CalendarEvent{
		sessionEvent(1, 7, now.Add(3*time.Minute)),
		sessionEvent(2, 8, now.Add(8*time.Minute)),
	}
	logs := map[uint][]models.ClientHealthLog{
		7: {
			{Title: "Knee pain", Status: models.HealthStatusAcute, LoggedAt: now.Add(-time.Hour)},
			{Title: "Sore back", Status: models.HealthStatusLingering, LoggedAt: now.Add(-2 * time.Hour)},
		},
		8: {
			{Title: "Shoulder", Status: models.HealthStatusLingering, LoggedAt: now.Add(-time.Hour)},
		},
	}

	alerts := CorrelateHealthAlerts(events, logs, nil, now)

	if len(alerts) != 2 {
		t.Fatalf("expected one alert per event, got %d", len(alerts))
	}
	if alerts[0].EventID != 1 || alerts[1].EventID != 2 {
		t.Fatalf("unexpected event ids: %d, %d", alerts[0].EventID, alerts[1].EventID)
	}
}
