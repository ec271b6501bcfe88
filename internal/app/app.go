// Package app provides the main application logic and lifecycle management.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	dbmigrations "cheff-guio/internal/db/migrations"
	"cheff-guio/internal/i18n"
	"cheff-guio/internal/models"
	"cheff-guio/internal/store"
	"cheff-guio/internal/types"
	"cheff-guio/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/dig"
	"gorm.io/gorm"
)

// App holds all services and manages the application lifecycle.
type App struct {
	engine        *gin.Engine
	configManager types.ConfigManager
	storage       store.Store
	db            *gorm.DB
	httpServer    *http.Server
}

// AppParams defines the dependencies for the App.
type AppParams struct {
	dig.In
	Engine        *gin.Engine
	ConfigManager types.ConfigManager
	Storage       store.Store
	DB            *gorm.DB
}

// NewApp is the constructor for App, with dependencies injected by dig.
func NewApp(params AppParams) *App {
	return &App{
		engine:        params.Engine,
		configManager: params.ConfigManager,
		storage:       params.Storage,
		db:            params.DB,
	}
}

// Start runs the application, it is a non-blocking call.
func (a *App) Start() error {
	// Initialize i18n
	if err := i18n.Init(); err != nil {
		return fmt.Errorf("failed to initialize i18n: %w", err)
	}
	logrus.Info("i18n initialized successfully.")

	// Database migration
	if err := a.db.AutoMigrate(
		&models.Restaurant{},
		&models.RestaurantArea{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.WhatsappIntegration{},
		&models.WaitingEntry{},
	); err != nil {
		return fmt.Errorf("database auto-migration failed: %w", err)
	}
	// Data migration
	if err := dbmigrations.MigrateDatabase(a.db); err != nil {
		return fmt.Errorf("database data migration failed: %w", err)
	}
	logrus.Info("Database auto-migration completed.")

	// Display configuration
	a.configManager.DisplayServerConfig()

	// Create HTTP server
	serverConfig := a.configManager.GetEffectiveServerConfig()
	a.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
		Handler:        a.engine,
		ReadTimeout:    time.Duration(serverConfig.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(serverConfig.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(serverConfig.IdleTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start HTTP server in a new goroutine
	go func() {
		logrus.Infof("Cheff Guio server started successfully on Version: %s", version.Version)
		logrus.Infof("Server address: http://%s:%d", serverConfig.Host, serverConfig.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server startup failed: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the application.
func (a *App) Stop(ctx context.Context) {
	logrus.Info("Shutting down server...")

	httpShutdownStart := time.Now()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logrus.Debug("HTTP server graceful shutdown timed out, forcing remaining connections to close.")
		if closeErr := a.httpServer.Close(); closeErr != nil {
			logrus.Errorf("Error forcing HTTP server to close: %v", closeErr)
		}
	}
	logrus.Infof("HTTP server has been shut down. (took %v)", time.Since(httpShutdownStart))

	// Close storage
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			logrus.Errorf("Error closing storage: %v", err)
		}
	}

	// Close database connection to prevent resource leaks
	closeDBConnection(a.db, "Main database")

	logrus.Info("Server exited gracefully")
}

// closeDBConnection gracefully closes a GORM database connection with timeout.
// It first closes the prepared statement cache, then forces idle connections to
// close, and finally closes the connection pool without hanging indefinitely.
func closeDBConnection(gormDB *gorm.DB, name string) {
	if gormDB == nil {
		return
	}

	if stmtManager, ok := gormDB.ConnPool.(*gorm.PreparedStmtDB); ok {
		stmtManager.Close()
		logrus.Debugf("[%s] Prepared statement cache closed.", name)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logrus.Errorf("Error getting sql.DB for %s: %v", name, err)
		return
	}

	sqlDB.SetMaxIdleConns(0)
	sqlDB.SetConnMaxIdleTime(0)
	sqlDB.SetConnMaxLifetime(0)

	done := make(chan error, 1)
	go func() {
		done <- sqlDB.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			logrus.Errorf("[%s] Error closing connection: %v", name, err)
		} else {
			logrus.Debugf("[%s] Connection closed successfully.", name)
		}
	case <-time.After(1 * time.Second):
		logrus.Warnf("[%s] Connection close timed out after 1s, proceeding anyway", name)
	}
}
