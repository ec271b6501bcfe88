// Package db contains versioned data migrations run after AutoMigrate.
package db

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MigrateDatabase runs all versioned migrations in order. Each migration is
// idempotent and safe to re-run on startup.
func MigrateDatabase(db *gorm.DB) error {
	migrations := []struct {
		name string
		fn   func(*gorm.DB) error
	}{
		{"v1.0.1 unique queue number per restaurant", V1_0_1_AddWaitingQueueUniqueIndex},
		{"v1.0.2 waiting list status index", V1_0_2_AddWaitingStatusIndex},
	}

	for _, migration := range migrations {
		if err := migration.fn(db); err != nil {
			logrus.WithError(err).Errorf("Migration failed: %s", migration.name)
			return err
		}
	}

	return nil
}
