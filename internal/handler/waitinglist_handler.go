package handler

import (
	"strconv"
	"time"

	app_errors "cheff-guio/internal/errors"
	"cheff-guio/internal/models"
	"cheff-guio/internal/response"
	"cheff-guio/internal/services"

	"github.com/gin-gonic/gin"
)

// parseRestaurantID reads the restaurant id path parameter. A handled error
// response is sent for invalid values and ok is false.
func parseRestaurantID(c *gin.Context) (uint, bool) {
	raw := c.Param("restaurant_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.ErrorI18nFromAPIError(c, app_errors.NewValidationError("invalid restaurant id"), "validation.invalid_restaurant_id")
		return 0, false
	}
	return uint(id), true
}

// EnqueueRequest defines the payload for adding a party to the waiting list.
type EnqueueRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	PartySize    int    `json:"party_size" binding:"required"`
	AreaID       *uint  `json:"area_id"`
	Priority     string `json:"priority"`
	Notes        string `json:"notes"`
}

// EnqueueWaitingEntry adds a walk-in party to the restaurant's queue.
// POST /api/restaurants/:restaurant_id/waiting-list
func (s *Server) EnqueueWaitingEntry(c *gin.Context) {
	restaurantID, ok := parseRestaurantID(c)
	if !ok {
		return
	}

	var req EnqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	entry, err := s.WaitingListService.Enqueue(services.EnqueueParams{
		RestaurantID: restaurantID,
		CustomerName: req.CustomerName,
		PhoneNumber:  req.PhoneNumber,
		PartySize:    req.PartySize,
		AreaID:       req.AreaID,
		Priority:     req.Priority,
		Notes:        req.Notes,
	})
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "waiting.enqueued", entry)
}

// ChangeStatusRequest defines the payload for a status transition.
type ChangeStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

// ChangeWaitingStatus applies a lifecycle transition to an entry.
// PUT /api/waiting-list/:entry_id/status
func (s *Server) ChangeWaitingStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	status, err := models.ParseWaitingStatus(req.Status)
	if err != nil {
		response.Error(c, app_errors.NewValidationError(err.Error()))
		return
	}

	entry, svcErr := s.WaitingListService.ChangeStatus(c.Param("entry_id"), status, req.Notes)
	if HandleServiceError(c, svcErr) {
		return
	}
	response.SuccessI18n(c, "waiting.status_updated", entry)
}

// GetWaitingEntry returns a single waiting entry.
// GET /api/waiting-list/:entry_id
func (s *Server) GetWaitingEntry(c *gin.Context) {
	entry, err := s.WaitingListService.GetEntry(c.Param("entry_id"))
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, entry)
}

// GetWaitTimeEstimate returns the current wait-time estimate for new parties.
// GET /api/restaurants/:restaurant_id/waiting-list/estimate
func (s *Server) GetWaitTimeEstimate(c *gin.Context) {
	restaurantID, ok := parseRestaurantID(c)
	if !ok {
		return
	}

	estimate, err := s.WaitingListService.EstimateWaitTime(restaurantID)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, gin.H{"estimated_wait_time": estimate})
}

// GetWaitingListStats returns the derived queue statistics.
// GET /api/restaurants/:restaurant_id/waiting-list/stats
func (s *Server) GetWaitingListStats(c *gin.Context) {
	restaurantID, ok := parseRestaurantID(c)
	if !ok {
		return
	}

	stats, err := s.WaitingListService.ComputeStats(restaurantID)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, stats)
}

// ListWaitingHistory returns the filtered, paginated entry history.
// GET /api/restaurants/:restaurant_id/waiting-list/history
func (s *Server) ListWaitingHistory(c *gin.Context) {
	restaurantID, ok := parseRestaurantID(c)
	if !ok {
		return
	}

	params := services.HistoryParams{
		RestaurantID: restaurantID,
		Search:       c.Query("search"),
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			response.ErrorI18nFromAPIError(c, app_errors.NewValidationError("invalid from date"), "validation.invalid_date_range")
			return
		}
		params.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			response.ErrorI18nFromAPIError(c, app_errors.NewValidationError("invalid to date"), "validation.invalid_date_range")
			return
		}
		// Inclusive date range: push the bound to the end of the day.
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		params.To = &endOfDay
	}
	if params.From != nil && params.To != nil && params.From.After(*params.To) {
		response.ErrorI18nFromAPIError(c, app_errors.NewValidationError("date range is inverted"), "validation.invalid_date_range")
		return
	}

	var entries []models.WaitingEntry
	paginated, err := response.Paginate(c, s.WaitingListService.HistoryQuery(params), &entries)
	if err != nil {
		response.Error(c, app_errors.ParseDBError(err))
		return
	}
	response.Success(c, paginated)
}
