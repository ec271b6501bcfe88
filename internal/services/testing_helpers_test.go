package services

import (
	"testing"

	"cheff-guio/internal/config"
	"cheff-guio/internal/models"
	"cheff-guio/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing (pure Go, no CGO)
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second connection to :memory: would open a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.RestaurantArea{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.WhatsappIntegration{},
		&models.WaitingEntry{},
	)
	require.NoError(t, err)

	return db
}

// setupTestStore creates a memory store with cleanup registered
func setupTestStore(t *testing.T) store.Store {
	t.Helper()
	s := store.NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// newTestConfig returns a mock config with default tunables
func newTestConfig() *config.MockConfig {
	return &config.MockConfig{
		AuthKeyValue: "test-auth-key-12345678",
	}
}

// createTestRestaurant inserts a restaurant row and returns it
func createTestRestaurant(t *testing.T, db *gorm.DB, name string) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		Name:    name,
		Address: "Rua das Flores 123",
		Phone:   "+55 11 99999-0000",
	}
	require.NoError(t, db.Create(restaurant).Error)
	return restaurant
}
