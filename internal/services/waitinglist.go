package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	app_errors "cheff-guio/internal/errors"
	"cheff-guio/internal/models"
	"cheff-guio/internal/store"
	"cheff-guio/internal/types"
	"cheff-guio/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const queueCounterKeyPrefix = "waiting:queue_counter:"

// WaitingListService maintains the per-restaurant walk-in queue: numbered
// entries, wait-time estimates, lifecycle transitions and derived statistics.
type WaitingListService struct {
	db        *gorm.DB
	store     store.Store
	settings  types.WaitingListConfig
	dbTimeout time.Duration
}

// NewWaitingListService constructs a WaitingListService.
func NewWaitingListService(db *gorm.DB, s store.Store, configManager types.ConfigManager) *WaitingListService {
	serverCfg := configManager.GetEffectiveServerConfig()
	return &WaitingListService{
		db:        db,
		store:     s,
		settings:  configManager.GetWaitingListConfig(),
		dbTimeout: time.Duration(serverCfg.DBCallTimeout) * time.Second,
	}
}

func (s *WaitingListService) dbContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.dbTimeout)
}

// EnqueueParams captures all fields required to add a party to the queue.
type EnqueueParams struct {
	RestaurantID uint
	CustomerName string
	PhoneNumber  string
	PartySize    int
	AreaID       *uint
	Priority     string
	Notes        string
}

// EstimateWaitTime returns the moving estimate for a restaurant: the mean of
// estimated_wait_time over the most recently created entries still in waiting
// status, or the configured default when there is no such history.
func (s *WaitingListService) EstimateWaitTime(restaurantID uint) (int, error) {
	ctx, cancel := s.dbContext()
	defer cancel()

	var estimates []int
	err := s.db.WithContext(ctx).
		Model(&models.WaitingEntry{}).
		Where("restaurant_id = ? AND status = ?", restaurantID, models.StatusWaiting).
		Order("created_at desc").
		Limit(s.settings.EstimateSampleSize).
		Pluck("estimated_wait_time", &estimates).Error
	if err != nil {
		return 0, NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}

	if len(estimates) == 0 {
		return s.settings.DefaultEstimateMinutes, nil
	}

	sum := 0
	for _, estimate := range estimates {
		sum += estimate
	}
	return int(math.Round(float64(sum) / float64(len(estimates)))), nil
}

// Enqueue validates the party, allocates the next queue number atomically and
// inserts the entry in waiting status. Queue numbers are unique and strictly
// increasing per restaurant: allocation goes through the store counter, and the
// unique (restaurant_id, queue_number) index backstops it. On a duplicate the
// counter is reseeded from the table and the insert retried.
func (s *WaitingListService) Enqueue(params EnqueueParams) (*models.WaitingEntry, error) {
	if err := s.validateEnqueue(&params); err != nil {
		return nil, err
	}

	priority, perr := models.ParseWaitingPriority(params.Priority)
	if perr != nil {
		return nil, NewI18nError(app_errors.NewValidationError(perr.Error()), "bad_request", nil)
	}

	estimate, err := s.EstimateWaitTime(params.RestaurantID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.dbContext()
	defer cancel()

	attempts := s.settings.EnqueueMaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		queueNumber, err := s.nextQueueNumber(ctx, params.RestaurantID)
		if err != nil {
			return nil, err
		}

		entry := &models.WaitingEntry{
			PublicID:          uuid.NewString(),
			RestaurantID:      params.RestaurantID,
			QueueNumber:       queueNumber,
			CustomerName:      params.CustomerName,
			PhoneNumber:       params.PhoneNumber,
			PartySize:         params.PartySize,
			AreaID:            params.AreaID,
			Status:            models.StatusWaiting,
			Priority:          priority,
			EstimatedWaitTime: estimate,
			Notes:             params.Notes,
		}

		err = s.db.WithContext(ctx).Create(entry).Error
		if err == nil {
			return entry, nil
		}
		lastErr = err

		if app_errors.IsDuplicate(err) {
			// Another writer took this number; reseed from the table and retry.
			logrus.WithFields(logrus.Fields{
				"restaurant_id": params.RestaurantID,
				"queue_number":  queueNumber,
			}).Warn("Queue number collision, reseeding counter")
			if derr := s.store.Delete(s.counterKey(params.RestaurantID)); derr != nil {
				logrus.WithError(derr).Warn("Failed to reset queue counter")
			}
			continue
		}

		if utils.IsTransientDBError(err) {
			logrus.WithError(err).Warn("Transient database error on enqueue, retrying")
			continue
		}

		return nil, NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}

	return nil, NewI18nError(app_errors.ParseDBError(lastErr), "error", nil)
}

func (s *WaitingListService) validateEnqueue(params *EnqueueParams) error {
	params.CustomerName = strings.TrimSpace(params.CustomerName)
	params.PhoneNumber = strings.TrimSpace(params.PhoneNumber)

	if params.RestaurantID == 0 {
		return NewI18nError(app_errors.NewValidationError("restaurant id is required"), "validation.invalid_restaurant_id", nil)
	}
	if params.CustomerName == "" {
		return NewI18nError(app_errors.NewValidationError("customer name is required"), "bad_request", nil)
	}
	if params.PhoneNumber == "" {
		return NewI18nError(app_errors.NewValidationError("phone number is required"), "bad_request", nil)
	}
	if params.PartySize < 1 {
		return NewI18nError(app_errors.NewValidationError("party size must be at least 1"), "bad_request", nil)
	}

	if params.AreaID != nil {
		ctx, cancel := s.dbContext()
		defer cancel()
		var count int64
		err := s.db.WithContext(ctx).Model(&models.RestaurantArea{}).
			Where("id = ? AND restaurant_id = ?", *params.AreaID, params.RestaurantID).
			Count(&count).Error
		if err != nil {
			return NewI18nError(app_errors.ParseDBError(err), "error", nil)
		}
		if count == 0 {
			return NewI18nError(app_errors.NewValidationError("area does not belong to this restaurant"), "bad_request", nil)
		}
	}

	return nil
}

func (s *WaitingListService) counterKey(restaurantID uint) string {
	return queueCounterKeyPrefix + strconv.FormatUint(uint64(restaurantID), 10)
}

// nextQueueNumber allocates the next number through the store counter, seeding
// it from MAX(queue_number) on first use. SetNX keeps concurrent seeders from
// clobbering each other; Incr makes the allocation itself atomic.
func (s *WaitingListService) nextQueueNumber(ctx context.Context, restaurantID uint) (int, error) {
	key := s.counterKey(restaurantID)

	exists, err := s.store.Exists(key)
	if err != nil {
		return 0, NewI18nError(app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to access queue counter"), "error", nil)
	}
	if !exists {
		var maxNumber int64
		err := s.db.WithContext(ctx).Model(&models.WaitingEntry{}).
			Where("restaurant_id = ?", restaurantID).
			Select("COALESCE(MAX(queue_number), 0)").
			Scan(&maxNumber).Error
		if err != nil {
			return 0, NewI18nError(app_errors.ParseDBError(err), "error", nil)
		}
		if _, err := s.store.SetNX(key, []byte(strconv.FormatInt(maxNumber, 10)), 0); err != nil {
			return 0, NewI18nError(app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to seed queue counter"), "error", nil)
		}
	}

	next, err := s.store.Incr(key)
	if err != nil {
		return 0, NewI18nError(app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to allocate queue number"), "error", nil)
	}
	return int(next), nil
}

// ChangeStatus applies a lifecycle transition to an entry identified by its
// public id. Same-status calls are idempotent no-ops; transitions out of a
// terminal state are rejected. The update carries an optimistic status guard so
// a concurrent transition cannot be silently overwritten.
func (s *WaitingListService) ChangeStatus(publicID string, newStatus models.WaitingStatus, notes *string) (*models.WaitingEntry, error) {
	if publicID == "" {
		return nil, NewI18nError(app_errors.NewValidationError("entry id is required"), "validation.invalid_entry_id", nil)
	}

	ctx, cancel := s.dbContext()
	defer cancel()

	var entry models.WaitingEntry
	if err := s.db.WithContext(ctx).Where("public_id = ?", publicID).First(&entry).Error; err != nil {
		return nil, NewI18nError(app_errors.ParseDBError(err), "waiting.entry_not_found", nil)
	}

	if entry.Status == newStatus {
		return &entry, nil
	}

	if !entry.Status.CanTransitionTo(newStatus) {
		return nil, NewI18nError(
			app_errors.NewInvalidTransitionError(fmt.Sprintf("cannot change status from %s to %s", entry.Status, newStatus)),
			"waiting.invalid_transition", nil)
	}

	now := time.Now()
	updates := map[string]any{
		"status":     newStatus,
		"updated_at": now,
	}
	if newStatus == models.StatusNotified {
		updates["notified_at"] = now
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	result := s.db.WithContext(ctx).Model(&models.WaitingEntry{}).
		Where("id = ? AND status = ?", entry.ID, entry.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, NewI18nError(app_errors.ParseDBError(result.Error), "error", nil)
	}
	if result.RowsAffected == 0 {
		// Lost the race to a concurrent transition.
		return nil, NewI18nError(
			app_errors.NewInvalidTransitionError("entry status changed concurrently"),
			"waiting.invalid_transition", nil)
	}

	if err := s.db.WithContext(ctx).First(&entry, entry.ID).Error; err != nil {
		return nil, NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}
	return &entry, nil
}

// ComputeStats scans the restaurant's entry history and derives the aggregate
// snapshot as of now.
func (s *WaitingListService) ComputeStats(restaurantID uint) (*models.WaitingListStats, error) {
	ctx, cancel := s.dbContext()
	defer cancel()

	var entries []models.WaitingEntry
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Find(&entries).Error
	if err != nil {
		return nil, NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}

	stats := computeStats(entries, time.Now())
	return &stats, nil
}

// computeStats is a pure function over the entry collection. Statistics are
// never cached: entries mutate in place on status transitions, so every read
// recomputes from raw history.
func computeStats(entries []models.WaitingEntry, now time.Time) models.WaitingListStats {
	var stats models.WaitingListStats

	year, month, day := now.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	var totalWait float64
	var totalWaitCount int
	var todayWait float64
	var todayWaitCount int

	for _, entry := range entries {
		switch entry.Status {
		case models.StatusWaiting:
			stats.WaitingCount++
			stats.PeopleWaiting += entry.PartySize
		case models.StatusNotified:
			stats.NotifiedCount++
			stats.PeopleWaiting += entry.PartySize
		case models.StatusSeated:
			if !entry.UpdatedAt.Before(dayStart) {
				stats.SeatedTodayCount++
				stats.SeatedTodayPeople += entry.PartySize
			}
		case models.StatusNoShow:
			if !entry.UpdatedAt.Before(dayStart) {
				stats.NoShowTodayCount++
			}
		}

		// Terminal entries waited updated_at-created_at; active ones are still
		// accruing, so their elapsed time is measured against now.
		var waited time.Duration
		if entry.Status.IsTerminal() {
			waited = entry.UpdatedAt.Sub(entry.CreatedAt)
		} else {
			waited = now.Sub(entry.CreatedAt)
		}
		if waited < 0 {
			waited = 0
		}

		minutes := waited.Minutes()
		totalWait += minutes
		totalWaitCount++
		if !entry.CreatedAt.Before(dayStart) {
			todayWait += minutes
			todayWaitCount++
		}
	}

	if totalWaitCount > 0 {
		stats.AvgWaitMinutes = totalWait / float64(totalWaitCount)
	}
	if todayWaitCount > 0 {
		stats.AvgWaitMinutesToday = todayWait / float64(todayWaitCount)
	}

	terminalToday := stats.SeatedTodayCount + stats.NoShowTodayCount
	if terminalToday > 0 {
		stats.NoShowPercentage = float64(stats.NoShowTodayCount) / float64(terminalToday) * 100
	}

	return stats
}

// HistoryParams filters the waiting-list history listing. From/To bound
// created_at inclusively; Search matches name or phone case-insensitively.
type HistoryParams struct {
	RestaurantID uint
	From         *time.Time
	To           *time.Time
	Search       string
}

// HistoryQuery builds the filtered, ordered history query. Entries are grouped
// by creation date descending and ordered by queue number ascending within a
// date, matching the natural walk-in order.
func (s *WaitingListService) HistoryQuery(params HistoryParams) *gorm.DB {
	query := s.db.Model(&models.WaitingEntry{}).
		Where("restaurant_id = ?", params.RestaurantID)

	if params.From != nil {
		query = query.Where("created_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("created_at <= ?", *params.To)
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(customer_name) LIKE ? OR LOWER(phone_number) LIKE ?", pattern, pattern)
	}

	return query.Order("date(created_at) DESC, queue_number ASC")
}

// ListHistory fetches one page of the filtered history.
func (s *WaitingListService) ListHistory(params HistoryParams, page, pageSize int) ([]models.WaitingEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 15
	}

	ctx, cancel := s.dbContext()
	defer cancel()

	query := s.HistoryQuery(params)

	var total int64
	if err := query.Session(&gorm.Session{NewDB: true}).WithContext(ctx).Count(&total).Error; err != nil {
		return nil, 0, NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}

	var entries []models.WaitingEntry
	err := query.WithContext(ctx).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}

	return entries, total, nil
}

// GetEntry loads a single entry by public id.
func (s *WaitingListService) GetEntry(publicID string) (*models.WaitingEntry, error) {
	if publicID == "" {
		return nil, NewI18nError(app_errors.NewValidationError("entry id is required"), "validation.invalid_entry_id", nil)
	}

	ctx, cancel := s.dbContext()
	defer cancel()

	var entry models.WaitingEntry
	if err := s.db.WithContext(ctx).Where("public_id = ?", publicID).First(&entry).Error; err != nil {
		return nil, NewI18nError(app_errors.ParseDBError(err), "waiting.entry_not_found", nil)
	}
	return &entry, nil
}
