package services

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adilzhn/FitCoachBackend/models"
)

// newTestDB opens an in-memory store with the same error translation the
// real connection uses, so unique violations surface as ErrDuplicatedKey.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// A :memory: database exists per connection; cap the pool at one so
	// every query sees the same database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("underlying db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.PTClientAssignment{},
		&models.ExerciseCatalogEntry{},
		&models.Routine{},
		&models.RoutineExercise{},
		&models.RoutineExerciseSet{},
		&models.SessionLog{},
		&models.SessionLogSet{},
		&models.ClientHealthLog{},
		&models.CalendarEvent{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func intPtr(i int) *int { return &i }

func uintPtr(u uint) *uint { return &u }

func floatPtr(f float64) *float64 { return &f }
