package db

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// V1_0_2_AddWaitingStatusIndex adds a composite (restaurant_id, status) index on
// waiting_entries. The estimator and the stats aggregation both filter on this
// pair for every read.
func V1_0_2_AddWaitingStatusIndex(db *gorm.DB) error {
	logrus.Info("Running migration v1.0.2: restaurant/status index on waiting_entries")
	return createIndexIfNotExists(db, "waiting_entries", "idx_waiting_restaurant_status", "restaurant_id, status", false)
}
