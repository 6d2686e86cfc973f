package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ts-knowledge-base/models"
)

// newTestDB opens a private in-memory database with the same error
// translation the production config uses, so duplicate-key handling
// behaves the same under test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every session on the same in-memory DB.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Department{},
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.TroubleshootingEntry{},
		&models.EntryRevision{},
		&models.Attachment{},
		&models.Vote{},
		&models.Comment{},
		&models.CommentVote{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, tier models.UserType) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	user.SetUserType(tier)
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: name, IsActive: true}
	require.NoError(t, db.Create(category).Error)
	return category
}
