package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cheff-guio/internal/i18n"
	"cheff-guio/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the API routes against a test server, without the
// auth and observability middleware.
func newTestRouter(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	server := setupTestServer(t)

	engine := gin.New()
	api := engine.Group("/api", i18n.Middleware())

	onboarding := api.Group("/onboarding/sessions")
	onboarding.POST("", server.StartOnboardingSession)
	onboarding.GET("/:session_id", server.GetOnboardingSession)
	onboarding.PUT("/:session_id/draft", server.UpdateOnboardingDraft)
	onboarding.POST("/:session_id/next", server.NextOnboardingStep)
	onboarding.POST("/:session_id/previous", server.PreviousOnboardingStep)
	onboarding.POST("/:session_id/goto", server.GoToOnboardingStep)
	onboarding.POST("/:session_id/save", server.SaveOnboardingProgress)
	onboarding.POST("/:session_id/reset", server.ResetOnboarding)

	restaurants := api.Group("/restaurants/:restaurant_id")
	restaurants.GET("", server.GetRestaurant)
	restaurants.POST("/waiting-list", server.EnqueueWaitingEntry)
	restaurants.GET("/waiting-list/estimate", server.GetWaitTimeEstimate)
	restaurants.GET("/waiting-list/stats", server.GetWaitingListStats)
	restaurants.GET("/waiting-list/history", server.ListWaitingHistory)

	waiting := api.Group("/waiting-list")
	waiting.GET("/:entry_id", server.GetWaitingEntry)
	waiting.PUT("/:entry_id/status", server.ChangeWaitingStatus)

	return server, engine
}

func performJSON(t *testing.T, engine *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a success envelope into dest
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 0, envelope.Code)
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Code
}

func createRestaurantRow(t *testing.T, server *Server, name string) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		Name:    name,
		Address: "Rua das Flores 123",
		Phone:   "+55 11 99999-0000",
	}
	require.NoError(t, server.DB.Create(restaurant).Error)
	return restaurant
}

// TestEnqueueWaitingEntry tests the enqueue endpoint happy path
func TestEnqueueWaitingEntry(t *testing.T) {
	server, engine := newTestRouter(t)
	restaurant := createRestaurantRow(t, server, "Restaurante X")

	w := performJSON(t, engine, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/waiting-list", restaurant.ID),
		gin.H{"customer_name": "Ana", "phone_number": "+55 11 98888-0001", "party_size": 4})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var entry models.WaitingEntry
	decodeData(t, w, &entry)
	assert.Equal(t, 1, entry.QueueNumber)
	assert.Equal(t, models.StatusWaiting, entry.Status)
	assert.Equal(t, 15, entry.EstimatedWaitTime)
	assert.NotEmpty(t, entry.PublicID)
}

// TestEnqueueWaitingEntry_Invalid tests payload validation at the endpoint
func TestEnqueueWaitingEntry_Invalid(t *testing.T) {
	server, engine := newTestRouter(t)
	restaurant := createRestaurantRow(t, server, "Restaurante X")

	// Missing required fields fail binding
	w := performJSON(t, engine, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/waiting-list", restaurant.ID),
		gin.H{"customer_name": "Ana"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_JSON", decodeErrorCode(t, w))

	// A bad restaurant id in the path is rejected before binding
	w = performJSON(t, engine, http.MethodPost, "/api/restaurants/abc/waiting-list",
		gin.H{"customer_name": "Ana", "phone_number": "1", "party_size": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeErrorCode(t, w))
}

// TestChangeWaitingStatus tests the transition endpoint including terminal rejection
func TestChangeWaitingStatus(t *testing.T) {
	server, engine := newTestRouter(t)
	restaurant := createRestaurantRow(t, server, "Restaurante X")

	w := performJSON(t, engine, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/waiting-list", restaurant.ID),
		gin.H{"customer_name": "Ana", "phone_number": "+55 11 98888-0001", "party_size": 2})
	require.Equal(t, http.StatusOK, w.Code)
	var entry models.WaitingEntry
	decodeData(t, w, &entry)

	// waiting -> seated
	w = performJSON(t, engine, http.MethodPut,
		"/api/waiting-list/"+entry.PublicID+"/status",
		gin.H{"status": "seated"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.WaitingEntry
	decodeData(t, w, &updated)
	assert.Equal(t, models.StatusSeated, updated.Status)

	// Terminal entries reject further transitions with a conflict
	w = performJSON(t, engine, http.MethodPut,
		"/api/waiting-list/"+entry.PublicID+"/status",
		gin.H{"status": "no_show"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", decodeErrorCode(t, w))

	// Unknown status values never reach the service
	w = performJSON(t, engine, http.MethodPut,
		"/api/waiting-list/"+entry.PublicID+"/status",
		gin.H{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeErrorCode(t, w))

	// Unknown entries are a 404
	w = performJSON(t, engine, http.MethodPut,
		"/api/waiting-list/nonexistent/status",
		gin.H{"status": "seated"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeErrorCode(t, w))
}

// TestGetWaitTimeEstimate tests the estimate endpoint default
func TestGetWaitTimeEstimate(t *testing.T) {
	server, engine := newTestRouter(t)
	restaurant := createRestaurantRow(t, server, "Restaurante X")

	w := performJSON(t, engine, http.MethodGet,
		fmt.Sprintf("/api/restaurants/%d/waiting-list/estimate", restaurant.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data map[string]int
	decodeData(t, w, &data)
	assert.Equal(t, 15, data["estimated_wait_time"])
}

// TestGetWaitingListStats tests the stats endpoint
func TestGetWaitingListStats(t *testing.T) {
	server, engine := newTestRouter(t)
	restaurant := createRestaurantRow(t, server, "Restaurante X")

	w := performJSON(t, engine, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/waiting-list", restaurant.ID),
		gin.H{"customer_name": "Ana", "phone_number": "+55 11 98888-0001", "party_size": 3})
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, engine, http.MethodGet,
		fmt.Sprintf("/api/restaurants/%d/waiting-list/stats", restaurant.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats models.WaitingListStats
	decodeData(t, w, &stats)
	assert.Equal(t, 1, stats.WaitingCount)
	assert.Equal(t, 3, stats.PeopleWaiting)
	assert.Equal(t, float64(0), stats.NoShowPercentage)
}

// TestListWaitingHistory tests the paginated history endpoint and its filters
func TestListWaitingHistory(t *testing.T) {
	server, engine := newTestRouter(t)
	restaurant := createRestaurantRow(t, server, "Restaurante X")

	for _, name := range []string{"Ana Silva", "Bruno Costa"} {
		w := performJSON(t, engine, http.MethodPost,
			fmt.Sprintf("/api/restaurants/%d/waiting-list", restaurant.ID),
			gin.H{"customer_name": name, "phone_number": "+55 11 98888-0001", "party_size": 2})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := performJSON(t, engine, http.MethodGet,
		fmt.Sprintf("/api/restaurants/%d/waiting-list/history", restaurant.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Items      []models.WaitingEntry `json:"items"`
		Pagination struct {
			TotalItems int64 `json:"total_items"`
		} `json:"pagination"`
	}
	decodeData(t, w, &page)
	assert.Equal(t, int64(2), page.Pagination.TotalItems)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.Items[0].QueueNumber)
	assert.Equal(t, 2, page.Items[1].QueueNumber)

	// Case-insensitive search narrows the listing
	w = performJSON(t, engine, http.MethodGet,
		fmt.Sprintf("/api/restaurants/%d/waiting-list/history?search=bruno", restaurant.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Bruno Costa", page.Items[0].CustomerName)

	// Malformed and inverted date ranges are rejected
	w = performJSON(t, engine, http.MethodGet,
		fmt.Sprintf("/api/restaurants/%d/waiting-list/history?from=not-a-date", restaurant.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(t, engine, http.MethodGet,
		fmt.Sprintf("/api/restaurants/%d/waiting-list/history?from=2026-09-02&to=2026-09-01", restaurant.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeErrorCode(t, w))
}

// TestGetWaitingEntry tests the single-entry lookup endpoint
func TestGetWaitingEntry(t *testing.T) {
	server, engine := newTestRouter(t)
	restaurant := createRestaurantRow(t, server, "Restaurante X")

	w := performJSON(t, engine, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/waiting-list", restaurant.ID),
		gin.H{"customer_name": "Ana", "phone_number": "+55 11 98888-0001", "party_size": 2})
	require.Equal(t, http.StatusOK, w.Code)
	var entry models.WaitingEntry
	decodeData(t, w, &entry)

	w = performJSON(t, engine, http.MethodGet, "/api/waiting-list/"+entry.PublicID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var loaded models.WaitingEntry
	decodeData(t, w, &loaded)
	assert.Equal(t, entry.PublicID, loaded.PublicID)

	w = performJSON(t, engine, http.MethodGet, "/api/waiting-list/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
