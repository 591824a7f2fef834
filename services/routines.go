package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/adilzhn/FitCoachBackend/cache"
	"github.com/adilzhn/FitCoachBackend/models"
)

type RoutineService struct {
	db     *gorm.DB
	logger *zap.Logger
	policy FallbackPolicy
}

func NewRoutineService(db *gorm.DB, logger *zap.Logger) *RoutineService {
	return &RoutineService{db: db, logger: logger, policy: DefaultFallbackPolicy()}
}

// NewRoutineServiceWithPolicy allows overriding the prescription defaults.
func NewRoutineServiceWithPolicy(db *gorm.DB, logger *zap.Logger, policy FallbackPolicy) *RoutineService {
	return &RoutineService{db: db, logger: logger, policy: policy}
}

// GetView loads a routine with its exercise/set graph and catalog entries
// and denormalizes it into the client-facing view. Only the owning PT or the
// assigned client may read it; everyone else gets ErrNotFound. The view is
// cached per routine behind the access check; only the parent fetch failing
// fails the call.
func (s *RoutineService) GetView(viewer models.Profile, routineID uint) (RoutineView, error) {
	if err := s.checkViewAccess(viewer, routineID); err != nil {
		return RoutineView{}, err
	}

	var cached RoutineView
	if err := cache.Get(cache.RoutineViewKey(routineID), &cached); err == nil {
		return cached, nil
	}

	var routine models.Routine
	err := s.db.
		Preload("Exercises").
		Preload("Exercises.CatalogEntry").
		Preload("Exercises.Sets").
		First(&routine, routineID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return RoutineView{}, ErrNotFound
	}
	if err != nil {
		return RoutineView{}, fmt.Errorf("routine fetch: %w", err)
	}

	view := BuildRoutineView(routine, s.policy)

	if err := cache.Set(cache.RoutineViewKey(routineID), view, 10*time.Minute); err != nil && !errors.Is(err, cache.ErrDisabled) {
		s.logger.Warn("routine_view_cache_set_failed",
			zap.Uint("routine_id", routineID),
			zap.Error(err),
		)
	}

	return view, nil
}

// checkViewAccess scopes the read by the viewer's role: a PT sees only
// routines they own, a client only routines assigned to them.
func (s *RoutineService) checkViewAccess(viewer models.Profile, routineID uint) error {
	query := s.db.Model(&models.Routine{}).Where("id = ?", routineID)
	if viewer.Role == models.RolePT {
		query = query.Where("pt_id = ?", viewer.ID)
	} else {
		query = query.Where("client_id = ?", viewer.ID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("routine access check: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RoutineService) ListForPT(ptID uint) ([]models.Routine, error) {
	var routines []models.Routine
	if err := s.db.Where("pt_id = ?", ptID).Order("updated_at DESC").Find(&routines).Error; err != nil {
		return nil, fmt.Errorf("routine list: %w", err)
	}
	return routines, nil
}

func (s *RoutineService) ListForClient(clientID uint, activeOnly bool) ([]models.Routine, error) {
	query := s.db.Where("client_id = ?", clientID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var routines []models.Routine
	if err := query.Order("updated_at DESC").Find(&routines).Error; err != nil {
		return nil, fmt.Errorf("routine list: %w", err)
	}
	return routines, nil
}

func (s *RoutineService) ActiveRoutineCount(clientID uint) (int, error) {
	var count int64
	err := s.db.Model(&models.Routine{}).
		Where("client_id = ? AND is_active = ?", clientID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("routine count: %w", err)
	}
	return int(count), nil
}

// SetActive soft-activates or deactivates a routine owned by the PT.
// Routines are never hard-deleted.
func (s *RoutineService) SetActive(ptID, routineID uint, active bool) error {
	routine, err := s.ownedRoutine(s.db, ptID, routineID)
	if err != nil {
		return err
	}

	if err := s.db.Model(routine).Update("is_active", active).Error; err != nil {
		return fmt.Errorf("routine activate: %w", err)
	}

	s.invalidate(ptID, routine.ClientID, routineID)
	s.logger.Info("routine_active_changed",
		zap.Uint("routine_id", routineID),
		zap.Bool("is_active", active),
	)
	return nil
}

func (s *RoutineService) ownedRoutine(tx *gorm.DB, ptID, routineID uint) (*models.Routine, error) {
	var routine models.Routine
	err := tx.Where("id = ? AND pt_id = ?", routineID, ptID).First(&routine).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("routine ownership check: %w", err)
	}
	return &routine, nil
}

func (s *RoutineService) invalidate(ptID, clientID, routineID uint) {
	for _, key := range []string{
		cache.RoutineViewKey(routineID),
		cache.DashboardKey(clientID),
	} {
		if err := cache.Delete(key); err != nil {
			s.logger.Warn("cache_delete_failed", zap.String("key", key), zap.Error(err))
		}
	}

	// The HTTP layer caches GET responses per profile; both sides may hold a
	// pre-edit copy of the view.
	for _, profileID := range []uint{ptID, clientID} {
		if err := cache.DeletePattern(cache.ResponsePattern(profileID)); err != nil {
			s.logger.Warn("cache_pattern_delete_failed",
				zap.Uint("profile_id", profileID),
				zap.Error(err),
			)
		}
	}
}
