package services

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adilzhn/FitCoachBackend/models"
	"github.com/adilzhn/FitCoachBackend/utils"
)

// CatalogRef is a free-text or id reference to an exercise, as submitted
// inside a routine payload.
type CatalogRef struct {
	CatalogID          *uint  `json:"catalog_id"`
	Name               string `json:"name"`
	Notes              string `json:"notes"`
	DefaultRestSeconds int    `json:"default_rest_seconds"`
	VideoURL           string `json:"video_url"`
}

type CatalogService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCatalogService(db *gorm.DB, logger *zap.Logger) *CatalogService {
	return &CatalogService{db: db, logger: logger}
}

// Resolve maps a reference to a canonical PT-scoped catalog entry id,
// creating the entry when absent. It is idempotent and never creates a
// case-insensitive duplicate: the (pt_id, name_key) unique index is the
// authority, and a losing insert is retried as a lookup.
func (s *CatalogService) Resolve(ptID uint, ref CatalogRef) (uint, error) {
	if ref.CatalogID != nil {
		var entry models.ExerciseCatalogEntry
		err := s.db.Where("id = ? AND pt_id = ?", *ref.CatalogID, ptID).First(&entry).Error
		if err == nil {
			utils.CatalogResolutions.WithLabelValues("by_id").Inc()
			return entry.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("catalog lookup by id: %w", err)
		}
		// Stale or foreign id: fall through to name resolution.
	}

	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return 0, invalid("name", "exercise name is required")
	}
	nameKey := strings.ToLower(name)

	if id, err := s.lookupByKey(ptID, nameKey); err == nil {
		utils.CatalogResolutions.WithLabelValues("by_name").Inc()
		return id, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("catalog lookup by name: %w", err)
	}

	entry := models.ExerciseCatalogEntry{
		PTID:               ptID,
		Name:               name,
		NameKey:            nameKey,
		Notes:              strings.TrimSpace(ref.Notes),
		DefaultRestSeconds: ref.DefaultRestSeconds,
		VideoURL:           strings.TrimSpace(ref.VideoURL),
	}

	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pt_id"}, {Name: "name_key"}},
		DoNothing: true,
	}).Create(&entry)

	if res.Error != nil && !errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return 0, fmt.Errorf("catalog insert: %w", res.Error)
	}

	if res.Error == nil && res.RowsAffected > 0 {
		utils.CatalogResolutions.WithLabelValues("created").Inc()
		s.logger.Info("catalog_entry_created",
			zap.Uint("pt_id", ptID),
			zap.Uint("catalog_id", entry.ID),
			zap.String("name", name),
		)
		return entry.ID, nil
	}

	// A concurrent insert won the race; the row exists now.
	id, err := s.lookupByKey(ptID, nameKey)
	if err != nil {
		return 0, fmt.Errorf("catalog lookup after conflict: %w", err)
	}

	utils.CatalogResolutions.WithLabelValues("race_retry").Inc()
	s.logger.Info("catalog_insert_lost_race",
		zap.Uint("pt_id", ptID),
		zap.String("name", name),
	)
	return id, nil
}

func (s *CatalogService) lookupByKey(ptID uint, nameKey string) (uint, error) {
	var entry models.ExerciseCatalogEntry
	if err := s.db.Where("pt_id = ? AND name_key = ?", ptID, nameKey).First(&entry).Error; err != nil {
		return 0, err
	}
	return entry.ID, nil
}

// List returns the PT's catalog ordered by name, optionally filtered by a
// case-insensitive substring match.
func (s *CatalogService) List(ptID uint, search string) ([]models.ExerciseCatalogEntry, error) {
	query := s.db.Where("pt_id = ?", ptID)
	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("name_key LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var entries []models.ExerciseCatalogEntry
	if err := query.Order("name_key ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("catalog list: %w", err)
	}
	return entries, nil
}
