package services

import (
	"testing"

	"github.com/adilzhn/FitCoachBackend/models"
)

func TestBuildRoutineView_SynthesizesSetsFromPrescription(t *testing.T) {
	routine := models.Routine{
		ID:   1,
		Name: "Push Day",
		Exercises: []models.RoutineExercise{
			{
				ID:             10,
				Position:       0,
				PrescribedSets: 3,
				RepsMin:        intPtr(8),
				RepsMax:        intPtr(12),
				CatalogEntry:   models.ExerciseCatalogEntry{Name: "Bench Press"},
			},
		},
	}

	view := BuildRoutineView(routine, DefaultFallbackPolicy())

	if len(view.Exercises) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(view.Exercises))
	}
	sets := view.Exercises[0].Sets
	if len(sets) != 3 {
		t.Fatalf("expected 3 synthesized sets, got %d", len(sets))
	}
	for i, set := range sets {
		if set.SetNumber != i+1 {
			t.Fatalf("expected set number %d, got %d", i+1, set.SetNumber)
		}
		if set.Reps != "8-12" {
			t.Fatalf("expected reps 8-12, got %q", set.Reps)
		}
	}
}

func TestBuildRoutineView_RepsFallbackChain(t *testing.T) {
	policy := DefaultFallbackPolicy()

	cases := []struct {
		name     string
		repRange string
		repsMin  *int
		repsMax  *int
		want     string
	}{
		{"explicit range wins", "6-10", intPtr(8), intPtr(12), "6-10"},
		{"computed range", "", intPtr(8), intPtr(12), "8-12"},
		{"equal min max collapses", "", intPtr(10), intPtr(10), "10"},
		{"min only", "", intPtr(5), nil, "5"},
		{"nothing falls back to default", "", nil, nil, "10"},
	}

	for _, tc := range cases {
		got := policy.RepsFallback(tc.repRange, tc.repsMin, tc.repsMax)
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestBuildRoutineView_ExplicitSetsOverridePrescription(t *testing.T) {
	routine := models.Routine{
		ID: 1,
		Exercises: []models.RoutineExercise{
			{
				ID:             10,
				Position:       0,
				PrescribedSets: 5, // ignored when explicit rows exist
				RepsMin:        intPtr(8),
				RepsMax:        intPtr(10),
				RestSeconds:    intPtr(90),
				TargetWeight:   floatPtr(60),
				CatalogEntry:   models.ExerciseCatalogEntry{Name: "Squat", DefaultRestSeconds: 120},
				Sets: []models.RoutineExerciseSet{
					// Out of order on purpose; the builder sorts by number.
					{SetNumber: 2, Reps: intPtr(5), TargetWeight: floatPtr(80)},
					{SetNumber: 1, RepRange: "3-5", RestSeconds: intPtr(180)},
				},
			},
		},
	}

	view := BuildRoutineView(routine, DefaultFallbackPolicy())
	sets := view.Exercises[0].Sets

	if len(sets) != 2 {
		t.Fatalf("expected 2 explicit sets, got %d", len(sets))
	}

	first := sets[0]
	if first.SetNumber != 1 || first.Reps != "3-5" || first.Rest != "180" {
		t.Fatalf("unexpected first set: %+v", first)
	}
	if first.TargetWeight == nil || *first.TargetWeight != 60 {
		t.Fatalf("expected exercise-level weight 60, got %v", first.TargetWeight)
	}

	second := sets[1]
	if second.Reps != "5" {
		t.Fatalf("expected numeric reps 5, got %q", second.Reps)
	}
	if second.Rest != "90" {
		t.Fatalf("expected exercise rest 90, got %q", second.Rest)
	}
	if second.TargetWeight == nil || *second.TargetWeight != 80 {
		t.Fatalf("expected set-level weight 80, got %v", second.TargetWeight)
	}
}

func TestBuildRoutineView_RestFallsBackToCatalogDefault(t *testing.T) {
	routine := models.Routine{
		Exercises: []models.RoutineExercise{
			{
				PrescribedSets: 1,
				CatalogEntry:   models.ExerciseCatalogEntry{Name: "Row", DefaultRestSeconds: 75},
			},
			{
				Position:       1,
				PrescribedSets: 1,
				CatalogEntry:   models.ExerciseCatalogEntry{Name: "Curl"},
			},
		},
	}

	view := BuildRoutineView(routine, DefaultFallbackPolicy())

	if got := view.Exercises[0].Sets[0].Rest; got != "75" {
		t.Fatalf("expected catalog default rest 75, got %q", got)
	}
	if got := view.Exercises[1].Sets[0].Rest; got != "" {
		t.Fatalf("expected empty rest fallback, got %q", got)
	}
}

func TestBuildRoutineView_ZeroPrescribedSetsYieldsNoSets(t *testing.T) {
	routine := models.Routine{
		Exercises: []models.RoutineExercise{
			{CatalogEntry: models.ExerciseCatalogEntry{Name: "Plank"}},
		},
	}

	view := BuildRoutineView(routine, DefaultFallbackPolicy())

	if len(view.Exercises[0].Sets) != 0 {
		t.Fatalf("expected no sets, got %d", len(view.Exercises[0].Sets))
	}
}

func TestBuildRoutineView_SkipsMalformedSetRows(t *testing.T) {
	routine := models.Routine{
		Exercises: []models.RoutineExercise{
			{
				CatalogEntry: models.ExerciseCatalogEntry{Name: "Deadlift"},
				Sets: []models.RoutineExerciseSet{
					{SetNumber: 0, Reps: intPtr(5)}, // malformed, skipped
					{SetNumber: 1, Reps: intPtr(5)},
				},
			},
		},
	}

	view := BuildRoutineView(routine, DefaultFallbackPolicy())

	sets := view.Exercises[0].Sets
	if len(sets) != 1 || sets[0].SetNumber != 1 {
		t.Fatalf("expected only the valid set row, got %+v", sets)
	}
}

func TestBuildRoutineView_OrdersExercisesByPosition(t *testing.T) {
	routine := models.Routine{
		Exercises: []models.RoutineExercise{
			{Position: 2, CatalogEntry: models.ExerciseCatalogEntry{Name: "C"}},
			{Position: 0, CatalogEntry: models.ExerciseCatalogEntry{Name: "A"}},
			{Position: 1, CatalogEntry: models.ExerciseCatalogEntry{Name: "B"}},
		},
	}

	view := BuildRoutineView(routine, DefaultFallbackPolicy())

	for i, want := range []string{"A", "B", "C"} {
		if view.Exercises[i].Name != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, view.Exercises[i].Name)
		}
	}
}

func TestBuildRoutineView_PolicyOverride(t *testing.T) {
	routine := models.Routine{
		Exercises: []models.RoutineExercise{
			{PrescribedSets: 1, CatalogEntry: models.ExerciseCatalogEntry{Name: "Lunge"}},
		},
	}

	policy := FallbackPolicy{DefaultReps: "12", DefaultRest: "60"}
	view := BuildRoutineView(routine, policy)

	set := view.Exercises[0].Sets[0]
	if set.Reps != "12" || set.Rest != "60" {
		t.Fatalf("expected overridden defaults, got reps=%q rest=%q", set.Reps, set.Rest)
	}
}
