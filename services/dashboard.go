package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/adilzhn/FitCoachBackend/cache"
	"github.com/adilzhn/FitCoachBackend/models"
)

type ClientDashboard struct {
	ClientID       uint             `json:"client_id"`
	Streak         StreakStats      `json:"streak"`
	WeeklyGoal     WeeklyGoalStats  `json:"weekly_goal"`
	ActiveRoutines []models.Routine `json:"active_routines"`
}

type DashboardService struct {
	db       *gorm.DB
	logger   *zap.Logger
	sessions *SessionService
	routines *RoutineService
}

func NewDashboardService(db *gorm.DB, logger *zap.Logger, sessions *SessionService, routines *RoutineService) *DashboardService {
	return &DashboardService{db: db, logger: logger, sessions: sessions, routines: routines}
}

// ForClient aggregates the client dashboard. The three store fetches are
// independent, so they are issued concurrently and joined before the
// streak and weekly-goal reductions run.
func (s *DashboardService) ForClient(clientID uint, now time.Time) (*ClientDashboard, error) {
	cacheKey := cache.DashboardKey(clientID)
	var cached ClientDashboard
	if err := cache.Get(cacheKey, &cached); err == nil {
		s.logger.Debug("dashboard_cache_hit", zap.Uint("client_id", clientID))
		return &cached, nil
	}

	var (
		wg         sync.WaitGroup
		profile    models.Profile
		timestamps []time.Time
		routines   []models.Routine
		errChan    = make(chan error, 3)
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		if err := s.db.First(&profile, clientID).Error; err != nil {
			errChan <- fmt.Errorf("profile fetch: %w", err)
		}
	}()
	go func() {
		defer wg.Done()
		ts, err := s.sessions.SessionTimestamps(clientID)
		if err != nil {
			errChan <- err
			return
		}
		timestamps = ts
	}()
	go func() {
		defer wg.Done()
		rs, err := s.routines.ListForClient(clientID, true)
		if err != nil {
			errChan <- err
			return
		}
		routines = rs
	}()
	wg.Wait()
	close(errChan)

	for err := range errChan {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var goal *int
	if profile.TrainingFrequencyGoal > 0 {
		g := profile.TrainingFrequencyGoal
		goal = &g
	}

	dashboard := &ClientDashboard{
		ClientID:       clientID,
		Streak:         ComputeStreak(timestamps, now),
		WeeklyGoal:     ComputeWeeklyGoal(goal, timestamps, len(routines), now),
		ActiveRoutines: routines,
	}

	if err := cache.Set(cacheKey, dashboard, 5*time.Minute); err != nil && !errors.Is(err, cache.ErrDisabled) {
		s.logger.Warn("dashboard_cache_set_failed",
			zap.Uint("client_id", clientID),
			zap.Error(err),
		)
	}

	s.logger.Info("dashboard_built",
		zap.Uint("client_id", clientID),
		zap.Int("sessions", len(timestamps)),
		zap.Int("active_routines", len(routines)),
	)
	return dashboard, nil
}
