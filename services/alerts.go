package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/adilzhn/FitCoachBackend/models"
)

type AlertService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewAlertService(db *gorm.DB, logger *zap.Logger) *AlertService {
	return &AlertService{db: db, logger: logger}
}

// UpcomingAlerts gathers the PT's near-term session events, the assigned
// clients' health logs and their names, then runs the correlation.
func (s *AlertService) UpcomingAlerts(ptID uint, now time.Time) ([]HealthAlert, error) {
	var assignments []models.PTClientAssignment
	err := s.db.Where("pt_id = ? AND status = ?", ptID, models.AssignmentActive).
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("assignments fetch: %w", err)
	}

	clientIDs := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		clientIDs = append(clientIDs, a.ClientID)
	}
	if len(clientIDs) == 0 {
		return []HealthAlert{}, nil
	}

	var events []models.CalendarEvent
	err = s.db.Where("pt_id = ? AND starts_at >= ? AND starts_at < ?",
		ptID, now, now.Add(AlertWindow)).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("events fetch: %w", err)
	}

	var logs []models.ClientHealthLog
	err = s.db.Where("client_id IN ?", clientIDs).
		Order("logged_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("health logs fetch: %w", err)
	}

	logsByClient := make(map[uint][]models.ClientHealthLog)
	for _, log := range logs {
		logsByClient[log.ClientID] = append(logsByClient[log.ClientID], log)
	}

	var profiles []models.Profile
	if err := s.db.Where("id IN ?", clientIDs).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("profiles fetch: %w", err)
	}
	names := make(map[uint]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.FullName
	}

	alerts := CorrelateHealthAlerts(events, logsByClient, names, now)

	s.logger.Info("health_alerts_correlated",
		zap.Uint("pt_id", ptID),
		zap.Int("events", len(events)),
		zap.Int("alerts", len(alerts)),
	)
	return alerts, nil
}
