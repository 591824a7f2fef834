package models

import "time"

const (
	RolePT     = "pt"
	RoleClient = "client"
)

// Health log statuses. An issue is "active" while it is ACUTE or LINGERING;
// a RESOLVED entry closes it without deleting history.
const (
	HealthStatusAcute     = "ACUTE"
	HealthStatusLingering = "LINGERING"
	HealthStatusResolved  = "RESOLVED"
)

const (
	AssignmentActive  = "active"
	AssignmentPending = "pending"
	AssignmentEnded   = "ended"
)

const EventTypeSession = "session"

type Profile struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Username              string    `gorm:"unique" json:"username"`
	PasswordHash          string    `json:"-"`
	FullName              string    `json:"full_name"`
	Role                  string    `gorm:"default:client" json:"role"`
	TrainingFrequencyGoal int       `gorm:"default:0" json:"training_frequency_goal"`
	CurrentStreak         int       `gorm:"default:0" json:"current_streak"`
	LongestStreak         int       `gorm:"default:0" json:"longest_streak"`
	TotalWorkouts         int       `gorm:"default:0" json:"total_workouts"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type PTClientAssignment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PTID      uint      `gorm:"index" json:"pt_id"`
	ClientID  uint      `gorm:"index" json:"client_id"`
	Status    string    `gorm:"default:pending" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ExerciseCatalogEntry is a PT-scoped canonical exercise definition reused
// across routines. NameKey holds the lowercased name; the composite unique
// index on (pt_id, name_key) is the authority for case-insensitive
// uniqueness per PT.
type ExerciseCatalogEntry struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	PTID               uint      `gorm:"index:idx_catalog_pt_name,unique" json:"pt_id"`
	Name               string    `json:"name"`
	NameKey            string    `gorm:"index:idx_catalog_pt_name,unique" json:"-"`
	Notes              string    `json:"notes"`
	DefaultRestSeconds int       `gorm:"default:0" json:"default_rest_seconds"`
	VideoURL           string    `json:"video_url"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Routine struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	PTID      uint              `gorm:"index" json:"pt_id"`
	ClientID  uint              `gorm:"index" json:"client_id"`
	Name      string            `json:"name"`
	Notes     string            `json:"notes"`
	IsActive  bool              `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	Exercises []RoutineExercise `gorm:"foreignKey:RoutineID" json:"exercises,omitempty"`
}

// RoutineExercise is a position-ordered child of a routine. Position is
// contiguous 0..n-1 within the routine after every successful upsert.
// The prescription fields are fallbacks applied when a set row carries no
// override of its own.
type RoutineExercise struct {
	ID             uint                 `gorm:"primaryKey" json:"id"`
	RoutineID      uint                 `gorm:"index" json:"routine_id"`
	CatalogEntryID uint                 `gorm:"index" json:"catalog_entry_id"`
	CatalogEntry   ExerciseCatalogEntry `gorm:"foreignKey:CatalogEntryID" json:"catalog_entry,omitempty"`
	Position       int                  `json:"position"`
	PrescribedSets int                  `gorm:"default:0" json:"prescribed_sets"`
	RepsMin        *int                 `json:"reps_min"`
	RepsMax        *int                 `json:"reps_max"`
	RepRange       string               `json:"rep_range"`
	TargetWeight   *float64             `json:"target_weight"`
	RestSeconds    *int                 `json:"rest_seconds"`
	Sets           []RoutineExerciseSet `gorm:"foreignKey:RoutineExerciseID" json:"sets,omitempty"`
}

// RoutineExerciseSet is an optional per-set override. SetNumber is 1-based
// and contiguous within its exercise.
type RoutineExerciseSet struct {
	ID                uint     `gorm:"primaryKey" json:"id"`
	RoutineExerciseID uint     `gorm:"index:idx_set_exercise_number,unique" json:"routine_exercise_id"`
	SetNumber         int      `gorm:"index:idx_set_exercise_number,unique" json:"set_number"`
	Reps              *int     `json:"reps"`
	RepRange          string   `json:"rep_range"`
	TargetWeight      *float64 `json:"target_weight"`
	RestSeconds       *int     `json:"rest_seconds"`
}

// SessionLog is the append-only record of a performed workout. Rows are
// created once by client action and never edited.
type SessionLog struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ClientID    uint            `gorm:"index" json:"client_id"`
	RoutineID   *uint           `gorm:"index" json:"routine_id"`
	PerformedAt time.Time       `gorm:"index" json:"performed_at"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	Sets        []SessionLogSet `gorm:"foreignKey:SessionLogID" json:"sets,omitempty"`
}

type SessionLogSet struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	SessionLogID   uint     `gorm:"index" json:"session_log_id"`
	CatalogEntryID *uint    `json:"catalog_entry_id"`
	ExerciseName   string   `json:"exercise_name"`
	SetNumber      int      `json:"set_number"`
	Reps           int      `json:"reps"`
	Weight         *float64 `json:"weight"`
}

// ClientHealthLog is an append-only injury/status fact.
type ClientHealthLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClientID    uint      `gorm:"index" json:"client_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	LoggedAt    time.Time `gorm:"index" json:"logged_at"`
}

func (l ClientHealthLog) IsActive() bool {
	return l.Status == HealthStatusAcute || l.Status == HealthStatusLingering
}

type CalendarEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PTID      uint      `gorm:"index" json:"pt_id"`
	ClientID  *uint     `gorm:"index" json:"client_id"`
	Type      string    `gorm:"default:session" json:"type"`
	Title     string    `json:"title"`
	StartsAt  time.Time `gorm:"index" json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ProfileID uint       `gorm:"index" json:"profile_id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
}
