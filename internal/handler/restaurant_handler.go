package handler

import (
	"cheff-guio/internal/response"

	"github.com/gin-gonic/gin"
)

// GetRestaurant returns a restaurant with its configured areas and menu.
// GET /api/restaurants/:restaurant_id
func (s *Server) GetRestaurant(c *gin.Context) {
	restaurantID, ok := parseRestaurantID(c)
	if !ok {
		return
	}

	details, err := s.RestaurantService.GetDetails(restaurantID)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, details)
}
