// Package config provides environment-backed configuration management.
package config

import (
	"fmt"
	"os"

	"cheff-guio/internal/types"
	"cheff-guio/internal/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Constraints defines validation bounds for configuration values.
type Constraints struct {
	MinPort                  int
	MaxPort                  int
	MinTimeout               int
	MinAuthKeyLength         int
	MinConcurrentRequests    int
	MinSessionTTLHours       int
	MinEstimateSampleEntries int
}

// DefaultConstraints are the production validation bounds.
var DefaultConstraints = Constraints{
	MinPort:                  1,
	MaxPort:                  65535,
	MinTimeout:               1,
	MinAuthKeyLength:         16,
	MinConcurrentRequests:    1,
	MinSessionTTLHours:       1,
	MinEstimateSampleEntries: 1,
}

// Manager implements types.ConfigManager on top of process environment variables.
type Manager struct {
	serverConfig      types.ServerConfig
	authConfig        types.AuthConfig
	corsConfig        types.CORSConfig
	performanceConfig types.PerformanceConfig
	logConfig         types.LogConfig
	databaseConfig    types.DatabaseConfig
	waitingListConfig types.WaitingListConfig
	onboardingConfig  types.OnboardingConfig
	redisDSN          string
	encryptionKey     string
	debugMode         bool
}

// NewManager creates a configuration manager, loading .env if present.
func NewManager() (types.ConfigManager, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Debug("No .env file loaded")
	}

	manager := &Manager{}
	manager.ReloadConfig()

	if err := manager.Validate(); err != nil {
		return nil, err
	}

	return manager, nil
}

// ReloadConfig re-reads all configuration from the environment.
func (m *Manager) ReloadConfig() error {
	m.serverConfig = types.ServerConfig{
		Host:                    utils.GetEnvOrDefault("HOST", "0.0.0.0"),
		Port:                    utils.ParseInteger(os.Getenv("PORT"), 3001),
		ReadTimeout:             utils.ParseInteger(os.Getenv("SERVER_READ_TIMEOUT"), 60),
		WriteTimeout:            utils.ParseInteger(os.Getenv("SERVER_WRITE_TIMEOUT"), 60),
		IdleTimeout:             utils.ParseInteger(os.Getenv("SERVER_IDLE_TIMEOUT"), 120),
		GracefulShutdownTimeout: utils.ParseInteger(os.Getenv("SERVER_GRACEFUL_SHUTDOWN_TIMEOUT"), 10),
		DBCallTimeout:           utils.ParseInteger(os.Getenv("DB_CALL_TIMEOUT"), 10),
	}
	m.authConfig = types.AuthConfig{
		Key: os.Getenv("AUTH_KEY"),
	}
	m.corsConfig = types.CORSConfig{
		Enabled:          utils.ParseBoolean(os.Getenv("ENABLE_CORS"), true),
		AllowedOrigins:   utils.ParseArray(utils.GetEnvOrDefault("ALLOWED_ORIGINS", "*")),
		AllowedMethods:   utils.ParseArray(utils.GetEnvOrDefault("ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS")),
		AllowedHeaders:   utils.ParseArray(utils.GetEnvOrDefault("ALLOWED_HEADERS", "*")),
		AllowCredentials: utils.ParseBoolean(os.Getenv("ALLOW_CREDENTIALS"), false),
	}
	m.performanceConfig = types.PerformanceConfig{
		MaxConcurrentRequests: utils.ParseInteger(os.Getenv("MAX_CONCURRENT_REQUESTS"), 100),
	}
	m.logConfig = types.LogConfig{
		Level:      utils.GetEnvOrDefault("LOG_LEVEL", "info"),
		Format:     utils.GetEnvOrDefault("LOG_FORMAT", "text"),
		EnableFile: utils.ParseBoolean(os.Getenv("LOG_ENABLE_FILE"), false),
		FilePath:   utils.GetEnvOrDefault("LOG_FILE_PATH", "./data/logs/app.log"),
	}
	m.databaseConfig = types.DatabaseConfig{
		DSN: utils.GetEnvOrDefault("DATABASE_DSN", "./data/cheff-guio.db"),
	}
	m.waitingListConfig = types.WaitingListConfig{
		DefaultEstimateMinutes: utils.ParseInteger(os.Getenv("WAITING_DEFAULT_ESTIMATE_MINUTES"), 15),
		EstimateSampleSize:     utils.ParseInteger(os.Getenv("WAITING_ESTIMATE_SAMPLE_SIZE"), 5),
		EnqueueMaxRetries:      utils.ParseInteger(os.Getenv("WAITING_ENQUEUE_MAX_RETRIES"), 3),
	}
	m.onboardingConfig = types.OnboardingConfig{
		SessionTTLHours: utils.ParseInteger(os.Getenv("ONBOARDING_SESSION_TTL_HOURS"), 72),
	}
	m.redisDSN = os.Getenv("REDIS_DSN")
	m.encryptionKey = os.Getenv("ENCRYPTION_KEY")
	m.debugMode = utils.ParseBoolean(os.Getenv("DEBUG_MODE"), false)

	return nil
}

// Validate checks the configuration against the default constraints.
func (m *Manager) Validate() error {
	c := DefaultConstraints

	if m.serverConfig.Port < c.MinPort || m.serverConfig.Port > c.MaxPort {
		return fmt.Errorf("invalid PORT: %d (must be in [%d, %d])", m.serverConfig.Port, c.MinPort, c.MaxPort)
	}
	if m.authConfig.Key == "" {
		return fmt.Errorf("AUTH_KEY is required")
	}
	if len(m.authConfig.Key) < c.MinAuthKeyLength {
		return fmt.Errorf("AUTH_KEY must be at least %d characters", c.MinAuthKeyLength)
	}
	if m.databaseConfig.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if m.serverConfig.DBCallTimeout < c.MinTimeout {
		return fmt.Errorf("DB_CALL_TIMEOUT must be at least %d second", c.MinTimeout)
	}
	if m.performanceConfig.MaxConcurrentRequests < c.MinConcurrentRequests {
		return fmt.Errorf("MAX_CONCURRENT_REQUESTS must be at least %d", c.MinConcurrentRequests)
	}
	if m.waitingListConfig.EstimateSampleSize < c.MinEstimateSampleEntries {
		return fmt.Errorf("WAITING_ESTIMATE_SAMPLE_SIZE must be at least %d", c.MinEstimateSampleEntries)
	}
	if m.waitingListConfig.DefaultEstimateMinutes < 0 {
		return fmt.Errorf("WAITING_DEFAULT_ESTIMATE_MINUTES must not be negative")
	}
	if m.onboardingConfig.SessionTTLHours < c.MinSessionTTLHours {
		return fmt.Errorf("ONBOARDING_SESSION_TTL_HOURS must be at least %d", c.MinSessionTTLHours)
	}

	return nil
}

// GetAuthConfig returns authentication configuration.
func (m *Manager) GetAuthConfig() types.AuthConfig {
	return m.authConfig
}

// GetCORSConfig returns CORS configuration.
func (m *Manager) GetCORSConfig() types.CORSConfig {
	return m.corsConfig
}

// GetPerformanceConfig returns performance configuration.
func (m *Manager) GetPerformanceConfig() types.PerformanceConfig {
	return m.performanceConfig
}

// GetLogConfig returns logging configuration.
func (m *Manager) GetLogConfig() types.LogConfig {
	return m.logConfig
}

// GetDatabaseConfig returns database configuration.
func (m *Manager) GetDatabaseConfig() types.DatabaseConfig {
	return m.databaseConfig
}

// GetRedisDSN returns the Redis DSN, empty when the memory store should be used.
func (m *Manager) GetRedisDSN() string {
	return m.redisDSN
}

// GetEncryptionKey returns the at-rest encryption key.
func (m *Manager) GetEncryptionKey() string {
	return m.encryptionKey
}

// GetEffectiveServerConfig returns server configuration.
func (m *Manager) GetEffectiveServerConfig() types.ServerConfig {
	return m.serverConfig
}

// GetWaitingListConfig returns waiting-list tunables.
func (m *Manager) GetWaitingListConfig() types.WaitingListConfig {
	return m.waitingListConfig
}

// GetOnboardingConfig returns onboarding tunables.
func (m *Manager) GetOnboardingConfig() types.OnboardingConfig {
	return m.onboardingConfig
}

// IsDebugMode reports whether debug-only behavior is enabled.
func (m *Manager) IsDebugMode() bool {
	return m.debugMode
}

// DisplayServerConfig logs the effective server configuration at startup.
func (m *Manager) DisplayServerConfig() {
	logrus.Info("")
	logrus.Info("======= Server Configuration =======")
	logrus.Infof("  Listen address: %s:%d", m.serverConfig.Host, m.serverConfig.Port)
	logrus.Infof("  Database DSN: %s", m.databaseConfig.DSN)
	if m.redisDSN != "" {
		logrus.Info("  Store: redis")
	} else {
		logrus.Info("  Store: memory")
	}
	logrus.Infof("  CORS enabled: %t", m.corsConfig.Enabled)
	logrus.Infof("  Log level: %s", m.logConfig.Level)
	logrus.Infof("  Waiting-list estimate: last %d entries, default %d min",
		m.waitingListConfig.EstimateSampleSize, m.waitingListConfig.DefaultEstimateMinutes)
	logrus.Info("====================================")
	logrus.Info("")
}
