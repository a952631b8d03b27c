package services

import (
	"path/filepath"
	"testing"

	"github.com/BenjaminRolf85/SACADEMY-sub000/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a throwaway sqlite database for one test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "academy_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.AcademyUser{},
		&models.Group{},
		&models.ActivityEvent{},
		&models.WeeklyStanding{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) models.AcademyUser {
	t.Helper()

	user := models.AcademyUser{
		ID:    uuid.NewString(),
		Name:  name,
		Email: name + "@academy.test",
		Role:  "learner",
		Level: 1,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}
