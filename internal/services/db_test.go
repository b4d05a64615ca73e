// internal/services/db_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/creativechain/creativechain-backend/internal/models"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

// newTestDB opens an in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CreativeWork{},
		&models.LicenseOffering{},
		&models.RoyaltySplit{},
		&models.Order{},
		&models.AuditLog{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func createTestCreator(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Username:      "creator_" + uuid.NewString()[:8],
		Email:         uuid.NewString()[:8] + "@example.com",
		UserType:      models.UserTypeCreator,
		Status:        models.UserStatusActive,
		WalletAddress: utils.GenerateWalletAddress(),
	}
	require.NoError(t, user.SetPassword("TestPass123!"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestWork(t *testing.T, db *gorm.DB, creatorID uuid.UUID, title, category string) *models.CreativeWork {
	t.Helper()

	work := &models.CreativeWork{
		CreatorID: creatorID,
		Title:     title,
		Category:  category,
		Status:    models.WorkStatusPublished,
	}
	require.NoError(t, db.Create(work).Error)
	return work
}
