package types

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetAuthConfig() AuthConfig
	GetCORSConfig() CORSConfig
	GetPerformanceConfig() PerformanceConfig
	GetLogConfig() LogConfig
	GetDatabaseConfig() DatabaseConfig
	GetRedisDSN() string
	GetEncryptionKey() string
	GetEffectiveServerConfig() ServerConfig
	GetWaitingListConfig() WaitingListConfig
	GetOnboardingConfig() OnboardingConfig
	IsDebugMode() bool
	Validate() error
	DisplayServerConfig()
	ReloadConfig() error
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port                    int    `json:"port"`
	Host                    string `json:"host"`
	ReadTimeout             int    `json:"read_timeout"`
	WriteTimeout            int    `json:"write_timeout"`
	IdleTimeout             int    `json:"idle_timeout"`
	GracefulShutdownTimeout int    `json:"graceful_shutdown_timeout"`
	DBCallTimeout           int    `json:"db_call_timeout"`
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Key string `json:"key"`
}

// CORSConfig represents CORS configuration
type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
}

// PerformanceConfig represents performance configuration
type PerformanceConfig struct {
	MaxConcurrentRequests int `json:"max_concurrent_requests"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `json:"level"`
	Format     string `json:"format"`
	EnableFile bool   `json:"enable_file"`
	FilePath   string `json:"file_path"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	DSN string `json:"dsn"`
}

// WaitingListConfig carries tunables for the waiting-list queue manager.
type WaitingListConfig struct {
	// DefaultEstimateMinutes is returned when a restaurant has no waiting history.
	DefaultEstimateMinutes int `json:"default_estimate_minutes"`
	// EstimateSampleSize is how many recent waiting entries feed the estimator.
	EstimateSampleSize int `json:"estimate_sample_size"`
	// EnqueueMaxRetries bounds the reseed-and-retry loop on queue number collisions.
	EnqueueMaxRetries int `json:"enqueue_max_retries"`
}

// OnboardingConfig carries tunables for the onboarding workflow.
type OnboardingConfig struct {
	// SessionTTLHours is how long an idle draft session survives in the store.
	SessionTTLHours int `json:"session_ttl_hours"`
}
