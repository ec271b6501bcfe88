package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"cheff-guio/internal/i18n"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := i18n.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// newHealthContext builds a request context with the server start time set,
// the way the router does it.
func newHealthContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
	c.Set("serverStartTime", time.Now().Add(-time.Minute))
	return c, w
}

// TestHealth_OK tests the healthy path with a reachable database
func TestHealth_OK(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), DisableAutomaticPing: true})
	require.NoError(t, err)

	mock.ExpectPing()

	server := &Server{DB: gormDB}
	c, w := newHealthContext(t)
	server.Health(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ok", body["database"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEqual(t, "unknown", body["uptime"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestHealth_DatabaseDown tests the unhealthy path when the ping fails
func TestHealth_DatabaseDown(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), DisableAutomaticPing: true})
	require.NoError(t, err)

	mock.ExpectPing().WillReturnError(assert.AnError)

	server := &Server{DB: gormDB}
	c, w := newHealthContext(t)
	server.Health(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "unavailable", body["database"])
}

// TestHealth_NilDB tests that a server without a database still reports healthy
func TestHealth_NilDB(t *testing.T) {
	server := &Server{}
	c, w := newHealthContext(t)
	server.Health(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

// TestHealth_MissingStartTime tests the unknown uptime fallback
func TestHealth_MissingStartTime(t *testing.T) {
	server := &Server{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
	server.Health(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unknown", body["uptime"])
}
