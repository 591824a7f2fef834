package services

import (
	"errors"
	"testing"
	"time"

	"github.com/adilzhn/FitCoachBackend/models"
)

func TestSessionLog_AppendsSessionWithSets(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testLogger(), NewNotificationService(db, testLogger()))

	performedAt := time.Now().UTC().Add(-time.Hour)
	sessionID, err := svc.Log(7, SessionSpec{
		PerformedAt: &performedAt,
		Notes:       "felt strong",
		Sets: []SessionSetSpec{
			{ExerciseName: "Squat", SetNumber: 1, Reps: 5, Weight: floatPtr(100)},
			{ExerciseName: "Squat", SetNumber: 2, Reps: 5, Weight: floatPtr(105)},
		},
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}

	var session models.SessionLog
	if err := db.Preload("Sets").First(&session, sessionID).Error; err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if session.ClientID != 7 || session.Notes != "felt strong" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if len(session.Sets) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(session.Sets))
	}
}

func TestSessionLog_RefreshesProfileStreakCounters(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testLogger(), NewNotificationService(db, testLogger()))

	profile := models.Profile{ID: 7, Username: "alex", FullName: "Alex Doe", Role: models.RoleClient}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	// Yesterday and today form a two-day run ending now.
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	if _, err := svc.Log(7, SessionSpec{PerformedAt: &yesterday}); err != nil {
		t.Fatalf("log yesterday: %v", err)
	}
	today := time.Now().UTC()
	if _, err := svc.Log(7, SessionSpec{PerformedAt: &today}); err != nil {
		t.Fatalf("log today: %v", err)
	}

	var updated models.Profile
	if err := db.First(&updated, 7).Error; err != nil {
		t.Fatalf("fetch profile: %v", err)
	}
	if updated.TotalWorkouts != 2 {
		t.Fatalf("expected total_workouts=2, got %d", updated.TotalWorkouts)
	}
	if updated.CurrentStreak != 2 || updated.LongestStreak != 2 {
		t.Fatalf("expected current=longest=2, got current=%d longest=%d",
			updated.CurrentStreak, updated.LongestStreak)
	}
}

func TestSessionLog_RejectsForeignRoutine(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testLogger(), NewNotificationService(db, testLogger()))

	routine := models.Routine{PTID: 1, ClientID: 8, Name: "Not Yours"}
	if err := db.Create(&routine).Error; err != nil {
		t.Fatalf("seed routine: %v", err)
	}

	_, err := svc.Log(7, SessionSpec{RoutineID: &routine.ID})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var count int64
	if err := db.Model(&models.SessionLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no session rows, got %d", count)
	}
}

func TestSessionLog_NotifiesAssignedPT(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testLogger(), NewNotificationService(db, testLogger()))

	client := models.Profile{ID: 7, Username: "alex", FullName: "Alex Doe", Role: models.RoleClient}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	assignment := models.PTClientAssignment{PTID: 3, ClientID: 7, Status: models.AssignmentActive}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	if _, err := svc.Log(7, SessionSpec{}); err != nil {
		t.Fatalf("log: %v", err)
	}

	var notifs []models.Notification
	if err := db.Where("profile_id = ?", 3).Find(&notifs).Error; err != nil {
		t.Fatalf("fetch notifications: %v", err)
	}
	if len(notifs) != 1 {
		t.Fatalf("expected 1 PT notification, got %d", len(notifs))
	}
	if notifs[0].Type != "session_logged" {
		t.Fatalf("unexpected type %q", notifs[0].Type)
	}
}

func TestSessionLog_NoAssignmentNoNotification(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testLogger(), NewNotificationService(db, testLogger()))

	if _, err := svc.Log(7, SessionSpec{}); err != nil {
		t.Fatalf("log should not fail without an assignment: %v", err)
	}

	var count int64
	if err := db.Model(&models.Notification{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no notifications, got %d", count)
	}
}

func TestSessionHistory_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testLogger(), NewNotificationService(db, testLogger()))

	base := time.Now().UTC().Add(-48 * time.Hour)
	for d := 0; d < 3; d++ {
		at := base.Add(time.Duration(d) * 24 * time.Hour)
		if _, err := svc.Log(7, SessionSpec{PerformedAt: &at}); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	history, err := svc.History(7, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].PerformedAt.After(history[i-1].PerformedAt) {
			t.Fatalf("history not sorted newest first")
		}
	}
}

func TestRefreshStreakCounters_PinnedNow(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testLogger(), NewNotificationService(db, testLogger()))

	profile := models.Profile{ID: 7, Username: "alex", Role: models.RoleClient}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []models.SessionLog{
		{ClientID: 7, PerformedAt: time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC)},
		{ClientID: 7, PerformedAt: time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC)},
		{ClientID: 7, PerformedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
	}
	for i := range sessions {
		if err := db.Create(&sessions[i]).Error; err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}

	if err := svc.RefreshStreakCounters(7, now); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	var updated models.Profile
	if err := db.First(&updated, 7).Error; err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if updated.CurrentStreak != 3 || updated.LongestStreak != 3 || updated.TotalWorkouts != 3 {
		t.Fatalf("unexpected counters: %+v", updated)
	}
}
