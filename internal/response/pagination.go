package response

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultPageSize  = 15
	MaxPageSize      = 200
	DataQueryTimeout = 3 * time.Second
)

// Pagination represents the pagination details in a response.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// PaginatedResponse is the standard structure for all paginated API responses.
type PaginatedResponse struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// ParsePageParams reads page and page_size from the query string, clamping to
// sane bounds.
func ParsePageParams(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Paginate runs a COUNT plus a windowed fetch over a GORM query and returns a
// standardized response. The caller supplies the destination slice.
func Paginate(c *gin.Context, query *gorm.DB, dest any) (*PaginatedResponse, error) {
	page, pageSize := ParsePageParams(c)
	offset := (page - 1) * pageSize

	ctx, cancel := context.WithTimeout(c.Request.Context(), DataQueryTimeout)
	defer cancel()

	var totalItems int64
	countQuery := query.Session(&gorm.Session{NewDB: true})
	if err := countQuery.WithContext(ctx).Count(&totalItems).Error; err != nil {
		logrus.WithError(err).Warn("Pagination COUNT query failed")
		return nil, err
	}

	dataQuery := query.Session(&gorm.Session{NewDB: true})
	if err := dataQuery.WithContext(ctx).Limit(pageSize).Offset(offset).Find(dest).Error; err != nil {
		logrus.WithError(err).Warn("Pagination data query failed")
		return nil, err
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(pageSize)))
	}

	return &PaginatedResponse{
		Items: dest,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: totalItems,
			TotalPages: totalPages,
		},
	}, nil
}
