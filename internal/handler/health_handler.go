package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health handles the health check endpoint. It verifies database connectivity
// and reports process uptime.
func (s *Server) Health(c *gin.Context) {
	status := "healthy"
	dbStatus := "ok"
	httpStatus := http.StatusOK

	if s.DB != nil {
		sqlDB, err := s.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = "unhealthy"
			dbStatus = "unavailable"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	uptime := "unknown"
	if startTime, exists := c.Get("serverStartTime"); exists {
		if t, ok := startTime.(time.Time); ok {
			uptime = time.Since(t).String()
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    uptime,
	})
}
