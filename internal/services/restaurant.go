package services

import (
	"context"
	"time"

	app_errors "cheff-guio/internal/errors"
	"cheff-guio/internal/models"
	"cheff-guio/internal/types"

	"gorm.io/gorm"
)

// RestaurantDetails bundles a restaurant row with its configured children for
// the console read endpoint.
type RestaurantDetails struct {
	Restaurant models.Restaurant       `json:"restaurant"`
	Areas      []models.RestaurantArea `json:"areas"`
	Categories []models.MenuCategory   `json:"categories"`
	Items      []models.MenuItem       `json:"items"`
}

// RestaurantService serves read access to restaurant configuration.
type RestaurantService struct {
	db        *gorm.DB
	dbTimeout time.Duration
}

// NewRestaurantService constructs a RestaurantService.
func NewRestaurantService(db *gorm.DB, configManager types.ConfigManager) *RestaurantService {
	serverCfg := configManager.GetEffectiveServerConfig()
	return &RestaurantService{
		db:        db,
		dbTimeout: time.Duration(serverCfg.DBCallTimeout) * time.Second,
	}
}

// GetDetails loads a restaurant and its configured areas and menu.
func (s *RestaurantService) GetDetails(restaurantID uint) (*RestaurantDetails, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.dbTimeout)
	defer cancel()

	var details RestaurantDetails
	if err := s.db.WithContext(ctx).First(&details.Restaurant, restaurantID).Error; err != nil {
		return nil, NewI18nError(app_errors.ParseDBError(err), "restaurant.not_found", nil)
	}

	if err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("display_order asc").Find(&details.Areas).Error; err != nil {
		return nil, NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}
	if err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("display_order asc").Find(&details.Categories).Error; err != nil {
		return nil, NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}
	if err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("id asc").Find(&details.Items).Error; err != nil {
		return nil, NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}

	return &details, nil
}
