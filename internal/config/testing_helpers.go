package config

import (
	"cheff-guio/internal/types"
)

// MockConfig implements types.ConfigManager for testing
type MockConfig struct {
	AuthKeyValue       string
	EncryptionKeyValue string
	RedisDSNValue      string
	WaitingList        *types.WaitingListConfig
}

// GetAuthConfig returns mock auth configuration
func (m *MockConfig) GetAuthConfig() types.AuthConfig {
	return types.AuthConfig{
		Key: m.AuthKeyValue,
	}
}

// GetCORSConfig returns mock CORS configuration
func (m *MockConfig) GetCORSConfig() types.CORSConfig {
	return types.CORSConfig{
		Enabled:          false,
		AllowedOrigins:   []string{},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}
}

// GetPerformanceConfig returns mock performance configuration
func (m *MockConfig) GetPerformanceConfig() types.PerformanceConfig {
	return types.PerformanceConfig{
		MaxConcurrentRequests: 100,
	}
}

// GetLogConfig returns mock log configuration
func (m *MockConfig) GetLogConfig() types.LogConfig {
	return types.LogConfig{
		Level:      "info",
		Format:     "text",
		EnableFile: false,
		FilePath:   "./data/logs/app.log",
	}
}

// GetDatabaseConfig returns mock database configuration
func (m *MockConfig) GetDatabaseConfig() types.DatabaseConfig {
	return types.DatabaseConfig{
		DSN: ":memory:",
	}
}

// GetRedisDSN returns mock Redis DSN
func (m *MockConfig) GetRedisDSN() string {
	return m.RedisDSNValue
}

// GetEncryptionKey returns mock encryption key
func (m *MockConfig) GetEncryptionKey() string {
	return m.EncryptionKeyValue
}

// GetEffectiveServerConfig returns mock server configuration
func (m *MockConfig) GetEffectiveServerConfig() types.ServerConfig {
	return types.ServerConfig{
		Port:                    3001,
		Host:                    "0.0.0.0",
		ReadTimeout:             60,
		WriteTimeout:            60,
		IdleTimeout:             120,
		GracefulShutdownTimeout: 10,
		DBCallTimeout:           10,
	}
}

// GetWaitingListConfig returns mock waiting-list tunables
func (m *MockConfig) GetWaitingListConfig() types.WaitingListConfig {
	if m.WaitingList != nil {
		return *m.WaitingList
	}
	return types.WaitingListConfig{
		DefaultEstimateMinutes: 15,
		EstimateSampleSize:     5,
		EnqueueMaxRetries:      3,
	}
}

// GetOnboardingConfig returns mock onboarding tunables
func (m *MockConfig) GetOnboardingConfig() types.OnboardingConfig {
	return types.OnboardingConfig{
		SessionTTLHours: 72,
	}
}

// IsDebugMode returns mock debug mode
func (m *MockConfig) IsDebugMode() bool {
	return false
}

// Validate validates the configuration
func (m *MockConfig) Validate() error {
	return nil
}

// DisplayServerConfig displays server configuration (no-op for mock)
func (m *MockConfig) DisplayServerConfig() {
	// No-op for testing
}

// ReloadConfig reloads configuration (no-op for mock)
func (m *MockConfig) ReloadConfig() error {
	return nil
}
