package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kennel-backend/config"
	"kennel-backend/models"
)

// newTestDB opens an in-memory database with the production schema.
// Foreign keys are switched on so cascade and set-null behavior matches
// the real deployment; a single connection keeps :memory: stable.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, config.Migrate(db))
	return db
}

func makeDog(t *testing.T, db *gorm.DB, name, gender, role string, active bool) *models.Dog {
	t.Helper()
	dog := &models.Dog{Name: name, Gender: gender, Role: role, IsActive: active}
	require.NoError(t, db.Create(dog).Error)
	return dog
}

func makePuppy(t *testing.T, db *gorm.DB, gender, status string, mutate func(*models.Puppy)) *models.Puppy {
	t.Helper()
	puppy := &models.Puppy{
		Gender:      gender,
		Status:      status,
		DateOfBirth: datatypes.Date(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
	}
	if mutate != nil {
		mutate(puppy)
	}
	require.NoError(t, db.Create(puppy).Error)
	return puppy
}

func makeBooking(t *testing.T, db *gorm.DB, status string, mutate func(*models.Booking)) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		CustomerName:  "Jordan Smith",
		CustomerEmail: "jordan@example.com",
		CustomerPhone: "+15551234567",
		Message:       "Interested in a puppy",
		Status:        status,
	}
	if mutate != nil {
		mutate(booking)
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}
