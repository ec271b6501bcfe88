// Package container wires the application dependencies with dig.
package container

import (
	"cheff-guio/internal/app"
	"cheff-guio/internal/config"
	"cheff-guio/internal/db"
	"cheff-guio/internal/encryption"
	"cheff-guio/internal/handler"
	"cheff-guio/internal/router"
	"cheff-guio/internal/services"
	"cheff-guio/internal/store"
	"cheff-guio/internal/types"

	"go.uber.org/dig"
)

// BuildContainer creates and configures the DI container.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	providers := []any{
		// Configuration
		config.NewManager,

		// Infrastructure
		db.NewDB,
		store.NewStore,
		func(cm types.ConfigManager) (encryption.Service, error) {
			return encryption.NewService(cm.GetEncryptionKey())
		},

		// Services
		services.NewOnboardingService,
		services.NewWaitingListService,
		services.NewRestaurantService,

		// HTTP layer
		handler.NewServer,
		router.NewRouter,

		// Application
		app.NewApp,
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	return container, nil
}
