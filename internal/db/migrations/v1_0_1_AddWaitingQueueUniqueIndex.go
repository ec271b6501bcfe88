package db

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// V1_0_1_AddWaitingQueueUniqueIndex adds the unique (restaurant_id, queue_number)
// index on waiting_entries. This index is the serializing constraint behind queue
// number allocation: two concurrent enqueues that raced to the same number make
// the second insert fail with a duplicate error, which the service retries with
// a fresh number.
func V1_0_1_AddWaitingQueueUniqueIndex(db *gorm.DB) error {
	logrus.Info("Running migration v1.0.1: unique queue number index on waiting_entries")
	return createIndexIfNotExists(db, "waiting_entries", "idx_waiting_restaurant_queue", "restaurant_id, queue_number", true)
}
