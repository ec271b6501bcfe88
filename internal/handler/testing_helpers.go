package handler

import (
	"testing"

	"cheff-guio/internal/config"
	"cheff-guio/internal/encryption"
	"cheff-guio/internal/models"
	"cheff-guio/internal/services"
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

// setupTestServer creates a test server with minimal dependencies
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	db := setupTestDB(t)

	mockConfig := &config.MockConfig{
		AuthKeyValue: "test-auth-key-12345678",
	}

	memStore := store.NewMemoryStore()
	t.Cleanup(func() { _ = memStore.Close() })

	encSvc, err := encryption.NewService("")
	require.NoError(t, err)

	return &Server{
		DB:                 db,
		config:             mockConfig,
		Store:              memStore,
		EncryptionSvc:      encSvc,
		OnboardingService:  services.NewOnboardingService(db, memStore, encSvc, mockConfig),
		WaitingListService: services.NewWaitingListService(db, memStore, mockConfig),
		RestaurantService:  services.NewRestaurantService(db, mockConfig),
	}
}
