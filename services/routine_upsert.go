package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/adilzhn/FitCoachBackend/models"
	"github.com/adilzhn/FitCoachBackend/utils"
)

// RoutineSpec is the full create-or-replace payload for a routine's nested
// exercise/set graph. RoutineID absent means CREATE, present means UPDATE.
type RoutineSpec struct {
	RoutineID *uint          `json:"routine_id"`
	ClientID  uint           `json:"client_id" validate:"required"`
	Name      string         `json:"name" validate:"required"`
	Notes     string         `json:"notes"`
	Exercises []ExerciseSpec `json:"exercises" validate:"dive"`
}

type ExerciseSpec struct {
	Exercise       CatalogRef `json:"exercise"`
	PrescribedSets int        `json:"prescribed_sets" validate:"min=0"`
	RepsMin        *int       `json:"reps_min"`
	RepsMax        *int       `json:"reps_max"`
	RepRange       string     `json:"rep_range"`
	TargetWeight   *float64   `json:"target_weight"`
	RestSeconds    *int       `json:"rest_seconds"`
	Sets           []SetSpec  `json:"sets"`
}

type SetSpec struct {
	Reps         *int     `json:"reps"`
	RepRange     string   `json:"rep_range"`
	TargetWeight *float64 `json:"target_weight"`
	RestSeconds  *int     `json:"rest_seconds"`
}

// Upsert creates or fully replaces a routine's nested graph in one
// transaction: either everything lands or nothing does. On update the
// existing exercise rows are diffed against the submission so rows whose
// position and catalog entry are unchanged keep their ids (history tables
// reference them). Positions come out contiguous 0..n-1, set numbers 1..n.
func (s *RoutineService) Upsert(ptID uint, spec RoutineSpec) (uint, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return 0, invalid("name", "routine name is required")
	}
	if spec.ClientID == 0 {
		return 0, invalid("client_id", "client is required")
	}

	var routineID uint
	mode := "create"
	if spec.RoutineID != nil {
		mode = "update"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		catalog := NewCatalogService(tx, s.logger)

		var routine *models.Routine
		if spec.RoutineID == nil {
			routine = &models.Routine{
				PTID:     ptID,
				ClientID: spec.ClientID,
				Name:     strings.TrimSpace(spec.Name),
				Notes:    spec.Notes,
				IsActive: true,
			}
			if err := tx.Create(routine).Error; err != nil {
				return fmt.Errorf("routine insert: %w", err)
			}
		} else {
			var err error
			routine, err = s.ownedRoutine(tx, ptID, *spec.RoutineID)
			if err != nil {
				return err
			}
			updates := map[string]interface{}{
				"name":      strings.TrimSpace(spec.Name),
				"notes":     spec.Notes,
				"client_id": spec.ClientID,
			}
			if err := tx.Model(routine).Updates(updates).Error; err != nil {
				return fmt.Errorf("routine update: %w", err)
			}
		}
		routineID = routine.ID

		var existing []models.RoutineExercise
		if spec.RoutineID != nil {
			if err := tx.Where("routine_id = ?", routine.ID).
				Order("position ASC").Find(&existing).Error; err != nil {
				return fmt.Errorf("existing exercises fetch: %w", err)
			}
		}

		for i, exSpec := range spec.Exercises {
			catalogID, err := catalog.Resolve(ptID, exSpec.Exercise)
			if err != nil {
				return err
			}

			if i < len(existing) && existing[i].CatalogEntryID == catalogID {
				// Same slot, same exercise: update in place, keep the id.
				kept := existing[i]
				updates := map[string]interface{}{
					"position":        i,
					"prescribed_sets": exSpec.PrescribedSets,
					"reps_min":        exSpec.RepsMin,
					"reps_max":        exSpec.RepsMax,
					"rep_range":       exSpec.RepRange,
					"target_weight":   exSpec.TargetWeight,
					"rest_seconds":    exSpec.RestSeconds,
				}
				if err := tx.Model(&models.RoutineExercise{}).
					Where("id = ?", kept.ID).Updates(updates).Error; err != nil {
					return fmt.Errorf("exercise update: %w", err)
				}
				if err := reconcileSets(tx, kept.ID, exSpec.Sets); err != nil {
					return err
				}
				continue
			}

			if i < len(existing) {
				if err := dropExercise(tx, existing[i].ID); err != nil {
					return err
				}
			}

			row := models.RoutineExercise{
				RoutineID:      routine.ID,
				CatalogEntryID: catalogID,
				Position:       i,
				PrescribedSets: exSpec.PrescribedSets,
				RepsMin:        exSpec.RepsMin,
				RepsMax:        exSpec.RepsMax,
				RepRange:       exSpec.RepRange,
				TargetWeight:   exSpec.TargetWeight,
				RestSeconds:    exSpec.RestSeconds,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("exercise insert: %w", err)
			}

			for j, setSpec := range exSpec.Sets {
				set := models.RoutineExerciseSet{
					RoutineExerciseID: row.ID,
					SetNumber:         j + 1,
					Reps:              setSpec.Reps,
					RepRange:          setSpec.RepRange,
					TargetWeight:      setSpec.TargetWeight,
					RestSeconds:       setSpec.RestSeconds,
				}
				if err := tx.Create(&set).Error; err != nil {
					return fmt.Errorf("set insert: %w", err)
				}
			}
		}

		// Submissions shorter than the existing list leave no orphans.
		for i := len(spec.Exercises); i < len(existing); i++ {
			if err := dropExercise(tx, existing[i].ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	utils.RoutineUpserts.WithLabelValues(mode).Inc()
	s.invalidate(ptID, spec.ClientID, routineID)
	s.logger.Info("routine_upserted",
		zap.Uint("routine_id", routineID),
		zap.Uint("pt_id", ptID),
		zap.String("mode", mode),
		zap.Int("exercises", len(spec.Exercises)),
	)

	return routineID, nil
}

// reconcileSets lines existing set rows up against the submitted list by
// set number: overlapping numbers are updated in place, extra submissions
// are inserted, leftover rows are deleted.
func reconcileSets(tx *gorm.DB, exerciseID uint, sets []SetSpec) error {
	var existing []models.RoutineExerciseSet
	if err := tx.Where("routine_exercise_id = ?", exerciseID).
		Order("set_number ASC").Find(&existing).Error; err != nil {
		return fmt.Errorf("existing sets fetch: %w", err)
	}

	for j, setSpec := range sets {
		if j < len(existing) {
			updates := map[string]interface{}{
				"set_number":    j + 1,
				"reps":          setSpec.Reps,
				"rep_range":     setSpec.RepRange,
				"target_weight": setSpec.TargetWeight,
				"rest_seconds":  setSpec.RestSeconds,
			}
			if err := tx.Model(&models.RoutineExerciseSet{}).
				Where("id = ?", existing[j].ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("set update: %w", err)
			}
			continue
		}

		set := models.RoutineExerciseSet{
			RoutineExerciseID: exerciseID,
			SetNumber:         j + 1,
			Reps:              setSpec.Reps,
			RepRange:          setSpec.RepRange,
			TargetWeight:      setSpec.TargetWeight,
			RestSeconds:       setSpec.RestSeconds,
		}
		if err := tx.Create(&set).Error; err != nil {
			return fmt.Errorf("set insert: %w", err)
		}
	}

	if len(existing) > len(sets) {
		if err := tx.Where("routine_exercise_id = ? AND set_number > ?", exerciseID, len(sets)).
			Delete(&models.RoutineExerciseSet{}).Error; err != nil {
			return fmt.Errorf("set trim: %w", err)
		}
	}

	return nil
}

func dropExercise(tx *gorm.DB, exerciseID uint) error {
	if err := tx.Where("routine_exercise_id = ?", exerciseID).
		Delete(&models.RoutineExerciseSet{}).Error; err != nil {
		return fmt.Errorf("set cascade delete: %w", err)
	}
	if err := tx.Delete(&models.RoutineExercise{}, exerciseID).Error; err != nil {
		return fmt.Errorf("exercise delete: %w", err)
	}
	return nil
}
