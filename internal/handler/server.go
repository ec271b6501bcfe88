// Package handler contains the HTTP handlers for the API surface.
package handler

import (
	"cheff-guio/internal/encryption"
	"cheff-guio/internal/services"
	"cheff-guio/internal/store"
	"cheff-guio/internal/types"

	"gorm.io/gorm"
)

// Server aggregates the dependencies the handlers need.
type Server struct {
	DB                 *gorm.DB
	config             types.ConfigManager
	Store              store.Store
	EncryptionSvc      encryption.Service
	OnboardingService  *services.OnboardingService
	WaitingListService *services.WaitingListService
	RestaurantService  *services.RestaurantService
}

// NewServer creates a new Server instance.
func NewServer(
	db *gorm.DB,
	configManager types.ConfigManager,
	s store.Store,
	encryptionSvc encryption.Service,
	onboardingService *services.OnboardingService,
	waitingListService *services.WaitingListService,
	restaurantService *services.RestaurantService,
) *Server {
	return &Server{
		DB:                 db,
		config:             configManager,
		Store:              s,
		EncryptionSvc:      encryptionSvc,
		OnboardingService:  onboardingService,
		WaitingListService: waitingListService,
		RestaurantService:  restaurantService,
	}
}
