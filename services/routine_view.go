package services

import (
	"sort"
	"strconv"

	"github.com/adilzhn/FitCoachBackend/models"
)

// Client-facing denormalized routine shape. Reps and rest are display
// strings after fallback resolution; target weight stays nullable.
type SetView struct {
	SetNumber    int      `json:"set_number"`
	Reps         string   `json:"reps"`
	Rest         string   `json:"rest"`
	TargetWeight *float64 `json:"target_weight"`
}

type ExerciseView struct {
	RoutineExerciseID uint      `json:"routine_exercise_id"`
	CatalogEntryID    uint      `json:"catalog_entry_id"`
	Name              string    `json:"name"`
	Notes             string    `json:"notes"`
	VideoURL          string    `json:"video_url"`
	Position          int       `json:"position"`
	Sets              []SetView `json:"sets"`
}

type RoutineView struct {
	RoutineID uint           `json:"routine_id"`
	Name      string         `json:"name"`
	Notes     string         `json:"notes"`
	IsActive  bool           `json:"is_active"`
	Exercises []ExerciseView `json:"exercises"`
}

// BuildRoutineView turns a preloaded routine row into the nested view.
// It is pure: all store access happens before the call, and a malformed
// child row is skipped rather than failing the whole view.
func BuildRoutineView(routine models.Routine, policy FallbackPolicy) RoutineView {
	exercises := make([]models.RoutineExercise, len(routine.Exercises))
	copy(exercises, routine.Exercises)
	sort.Slice(exercises, func(i, j int) bool {
		return exercises[i].Position < exercises[j].Position
	})

	view := RoutineView{
		RoutineID: routine.ID,
		Name:      routine.Name,
		Notes:     routine.Notes,
		IsActive:  routine.IsActive,
		Exercises: make([]ExerciseView, 0, len(exercises)),
	}

	for _, ex := range exercises {
		view.Exercises = append(view.Exercises, buildExerciseView(ex, policy))
	}

	return view
}

func buildExerciseView(ex models.RoutineExercise, policy FallbackPolicy) ExerciseView {
	ev := ExerciseView{
		RoutineExerciseID: ex.ID,
		CatalogEntryID:    ex.CatalogEntryID,
		Name:              ex.CatalogEntry.Name,
		Notes:             ex.CatalogEntry.Notes,
		VideoURL:          ex.CatalogEntry.VideoURL,
		Position:          ex.Position,
	}

	fallbackReps := policy.RepsFallback(ex.RepRange, ex.RepsMin, ex.RepsMax)
	fallbackRest := policy.RestFallback(ex.RestSeconds, ex.CatalogEntry.DefaultRestSeconds)

	if len(ex.Sets) > 0 {
		sets := make([]models.RoutineExerciseSet, len(ex.Sets))
		copy(sets, ex.Sets)
		sort.Slice(sets, func(i, j int) bool {
			return sets[i].SetNumber < sets[j].SetNumber
		})

		for _, set := range sets {
			if set.SetNumber < 1 {
				continue
			}

			reps := fallbackReps
			if set.RepRange != "" {
				reps = set.RepRange
			} else if set.Reps != nil {
				reps = strconv.Itoa(*set.Reps)
			}

			rest := fallbackRest
			if set.RestSeconds != nil {
				rest = strconv.Itoa(*set.RestSeconds)
			}

			weight := ex.TargetWeight
			if set.TargetWeight != nil {
				weight = set.TargetWeight
			}

			ev.Sets = append(ev.Sets, SetView{
				SetNumber:    set.SetNumber,
				Reps:         reps,
				Rest:         rest,
				TargetWeight: weight,
			})
		}
		return ev
	}

	// No explicit set rows: synthesize from the exercise prescription.
	for i := 0; i < ex.PrescribedSets; i++ {
		ev.Sets = append(ev.Sets, SetView{
			SetNumber:    i + 1,
			Reps:         fallbackReps,
			Rest:         fallbackRest,
			TargetWeight: ex.TargetWeight,
		})
	}

	return ev
}
