package store

import (
	"cheff-guio/internal/types"

	"github.com/sirupsen/logrus"
)

// NewStore creates a Store based on configuration: Redis when REDIS_DSN is set,
// otherwise the in-memory store.
func NewStore(configManager types.ConfigManager) (Store, error) {
	redisDSN := configManager.GetRedisDSN()

	if redisDSN == "" {
		logrus.Info("No REDIS_DSN configured, using in-memory store")
		return NewMemoryStore(), nil
	}

	logrus.Info("Redis configured, connecting...")
	redisStore, err := NewRedisStore(redisDSN)
	if err != nil {
		return nil, err
	}

	logrus.Info("Connected to Redis successfully")
	return redisStore, nil
}
