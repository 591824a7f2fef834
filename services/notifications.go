package services

import (
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/adilzhn/FitCoachBackend/models"
)

type NotificationService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewNotificationService(db *gorm.DB, logger *zap.Logger) *NotificationService {
	return &NotificationService{db: db, logger: logger}
}

// Record writes a notification row, fire-and-forget: a store failure is
// logged and never propagated to the triggering operation.
func (s *NotificationService) Record(profileID uint, notifType, message string) {
	notif := models.Notification{
		ProfileID: profileID,
		Type:      notifType,
		Message:   message,
	}

	if err := s.db.Create(&notif).Error; err != nil {
		s.logger.Warn("notification_record_failed",
			zap.Uint("profile_id", profileID),
			zap.String("type", notifType),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("notification_recorded",
		zap.Uint("profile_id", profileID),
		zap.String("type", notifType),
	)
}

type NotificationJob struct {
	ProfileID uint
	Type      string
	Message   string
}

// DispatchBatch records a batch of notifications on a bounded worker pool.
// Individual failures are counted, not surfaced.
func (s *NotificationService) DispatchBatch(jobs []NotificationJob, workerCount int) {
	if len(jobs) == 0 {
		return
	}
	if workerCount < 1 {
		workerCount = 1
	}

	jobChan := make(chan NotificationJob, len(jobs))
	resultChan := make(chan error, len(jobs))
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go s.notificationWorker(jobChan, resultChan, &wg)
	}

	for _, job := range jobs {
		jobChan <- job
	}
	close(jobChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	successCount := 0
	errorCount := 0
	for err := range resultChan {
		if err != nil {
			errorCount++
		} else {
			successCount++
		}
	}

	s.logger.Info("notifications_dispatched",
		zap.Int("success", successCount),
		zap.Int("errors", errorCount),
		zap.Int("workers", workerCount),
	)
}

func (s *NotificationService) notificationWorker(jobs <-chan NotificationJob, results chan<- error, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range jobs {
		notif := models.Notification{
			ProfileID: job.ProfileID,
			Type:      job.Type,
			Message:   job.Message,
		}
		err := s.db.Create(&notif).Error
		if err != nil {
			s.logger.Warn("notification_record_failed",
				zap.Uint("profile_id", job.ProfileID),
				zap.Error(err),
			)
		}
		results <- err
	}
}

// ListForProfile returns a profile's notifications, newest first.
func (s *NotificationService) ListForProfile(profileID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifs []models.Notification
	err := s.db.Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifs).Error
	if err != nil {
		return nil, err
	}
	return notifs, nil
}

// MarkRead stamps a notification as read if it belongs to the profile.
func (s *NotificationService) MarkRead(profileID, notifID uint) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND profile_id = ?", notifID, profileID).
		Update("read_at", gorm.Expr("CURRENT_TIMESTAMP"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
