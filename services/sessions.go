package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/adilzhn/FitCoachBackend/cache"
	"github.com/adilzhn/FitCoachBackend/models"
	"github.com/adilzhn/FitCoachBackend/utils"
)

type SessionService struct {
	db            *gorm.DB
	logger        *zap.Logger
	notifications *NotificationService
}

func NewSessionService(db *gorm.DB, logger *zap.Logger, notifications *NotificationService) *SessionService {
	return &SessionService{db: db, logger: logger, notifications: notifications}
}

type SessionSpec struct {
	RoutineID   *uint            `json:"routine_id"`
	PerformedAt *time.Time       `json:"performed_at"`
	Notes       string           `json:"notes"`
	Sets        []SessionSetSpec `json:"sets"`
}

type SessionSetSpec struct {
	CatalogEntryID *uint    `json:"catalog_entry_id"`
	ExerciseName   string   `json:"exercise_name"`
	SetNumber      int      `json:"set_number"`
	Reps           int      `json:"reps"`
	Weight         *float64 `json:"weight"`
}

// Log appends a performed workout for the client. The session row and its
// sets land in one transaction; the record is never edited afterward.
// Streak counters on the profile are refreshed from the full session
// history, and the assigned PT gets a fire-and-forget notification.
func (s *SessionService) Log(clientID uint, spec SessionSpec) (uint, error) {
	performedAt := time.Now().UTC()
	if spec.PerformedAt != nil {
		performedAt = spec.PerformedAt.UTC()
	}

	if spec.RoutineID != nil {
		var routine models.Routine
		err := s.db.Where("id = ? AND client_id = ?", *spec.RoutineID, clientID).
			First(&routine).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		if err != nil {
			return 0, fmt.Errorf("routine check: %w", err)
		}
	}

	session := models.SessionLog{
		ClientID:    clientID,
		RoutineID:   spec.RoutineID,
		PerformedAt: performedAt,
		Notes:       spec.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("session insert: %w", err)
		}

		for _, setSpec := range spec.Sets {
			set := models.SessionLogSet{
				SessionLogID:   session.ID,
				CatalogEntryID: setSpec.CatalogEntryID,
				ExerciseName:   setSpec.ExerciseName,
				SetNumber:      setSpec.SetNumber,
				Reps:           setSpec.Reps,
				Weight:         setSpec.Weight,
			}
			if err := tx.Create(&set).Error; err != nil {
				return fmt.Errorf("session set insert: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	utils.SessionsLogged.Inc()

	if err := s.RefreshStreakCounters(clientID, time.Now().UTC()); err != nil {
		s.logger.Warn("streak_refresh_failed",
			zap.Uint("client_id", clientID),
			zap.Error(err),
		)
	}

	s.notifyAssignedPT(clientID)

	if err := cache.Delete(cache.DashboardKey(clientID)); err != nil {
		s.logger.Warn("cache_delete_failed",
			zap.String("key", cache.DashboardKey(clientID)),
			zap.Error(err),
		)
	}

	s.logger.Info("session_logged",
		zap.Uint("client_id", clientID),
		zap.Uint("session_id", session.ID),
		zap.Int("sets", len(spec.Sets)),
	)
	return session.ID, nil
}

// History returns the client's sessions newest first, with sets preloaded.
func (s *SessionService) History(clientID uint, limit int) ([]models.SessionLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var sessions []models.SessionLog
	err := s.db.Preload("Sets").
		Where("client_id = ?", clientID).
		Order("performed_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("session history: %w", err)
	}
	return sessions, nil
}

// SessionTimestamps returns every performed_at instant for the client.
func (s *SessionService) SessionTimestamps(clientID uint) ([]time.Time, error) {
	var timestamps []time.Time
	err := s.db.Model(&models.SessionLog{}).
		Where("client_id = ?", clientID).
		Order("performed_at ASC").
		Pluck("performed_at", &timestamps).Error
	if err != nil {
		return nil, fmt.Errorf("session timestamps: %w", err)
	}
	return timestamps, nil
}

// RefreshStreakCounters recomputes the denormalized streak fields on the
// profile from the full session history.
func (s *SessionService) RefreshStreakCounters(clientID uint, now time.Time) error {
	timestamps, err := s.SessionTimestamps(clientID)
	if err != nil {
		return err
	}

	stats := ComputeStreak(timestamps, now)

	return s.db.Model(&models.Profile{}).
		Where("id = ?", clientID).
		Updates(map[string]interface{}{
			"current_streak": stats.CurrentStreak,
			"longest_streak": stats.LongestStreak,
			"total_workouts": stats.TotalWorkouts,
		}).Error
}

func (s *SessionService) notifyAssignedPT(clientID uint) {
	var assignment models.PTClientAssignment
	err := s.db.Where("client_id = ? AND status = ?", clientID, models.AssignmentActive).
		First(&assignment).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("assignment_lookup_failed",
				zap.Uint("client_id", clientID),
				zap.Error(err),
			)
		}
		return
	}

	var client models.Profile
	if err := s.db.First(&client, clientID).Error; err != nil {
		s.logger.Warn("client_lookup_failed", zap.Uint("client_id", clientID), zap.Error(err))
		return
	}

	s.notifications.Record(assignment.PTID, "session_logged",
		fmt.Sprintf("%s logged a workout", client.FullName))
}
