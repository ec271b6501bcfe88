package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_KEY", "test-auth-key-minimum-16-chars")
	t.Setenv("DATABASE_DSN", ":memory:")
}

// TestNewManager_Defaults tests the default configuration values
func TestNewManager_Defaults(t *testing.T) {
	setValidEnv(t)

	manager, err := NewManager()
	require.NoError(t, err)

	serverConfig := manager.GetEffectiveServerConfig()
	assert.Equal(t, "0.0.0.0", serverConfig.Host)
	assert.Equal(t, 3001, serverConfig.Port)
	assert.Equal(t, 10, serverConfig.DBCallTimeout)

	waitingConfig := manager.GetWaitingListConfig()
	assert.Equal(t, 15, waitingConfig.DefaultEstimateMinutes)
	assert.Equal(t, 5, waitingConfig.EstimateSampleSize)
	assert.Equal(t, 3, waitingConfig.EnqueueMaxRetries)

	assert.Equal(t, 72, manager.GetOnboardingConfig().SessionTTLHours)
	assert.Equal(t, "info", manager.GetLogConfig().Level)
	assert.False(t, manager.IsDebugMode())
	assert.Empty(t, manager.GetRedisDSN())
}

// TestNewManager_EnvOverrides tests environment variable overrides
func TestNewManager_EnvOverrides(t *testing.T) {
	setValidEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEBUG_MODE", "true")
	t.Setenv("REDIS_DSN", "redis://localhost:6379")
	t.Setenv("WAITING_ENQUEUE_MAX_RETRIES", "5")
	t.Setenv("ONBOARDING_SESSION_TTL_HOURS", "24")

	manager, err := NewManager()
	require.NoError(t, err)

	serverConfig := manager.GetEffectiveServerConfig()
	assert.Equal(t, 8080, serverConfig.Port)
	assert.Equal(t, "127.0.0.1", serverConfig.Host)
	assert.Equal(t, "debug", manager.GetLogConfig().Level)
	assert.True(t, manager.IsDebugMode())
	assert.Equal(t, "redis://localhost:6379", manager.GetRedisDSN())
	assert.Equal(t, 5, manager.GetWaitingListConfig().EnqueueMaxRetries)
	assert.Equal(t, 24, manager.GetOnboardingConfig().SessionTTLHours)
}

// TestNewManager_Validation tests the validation failure paths
func TestNewManager_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing auth key", map[string]string{
			"DATABASE_DSN": ":memory:",
		}},
		{"short auth key", map[string]string{
			"AUTH_KEY":     "too-short",
			"DATABASE_DSN": ":memory:",
		}},
		{"invalid port", map[string]string{
			"AUTH_KEY":     "test-auth-key-minimum-16-chars",
			"DATABASE_DSN": ":memory:",
			"PORT":         "70000",
		}},
		{"zero sample size", map[string]string{
			"AUTH_KEY":                     "test-auth-key-minimum-16-chars",
			"DATABASE_DSN":                 ":memory:",
			"WAITING_ESTIMATE_SAMPLE_SIZE": "0",
		}},
		{"zero session ttl", map[string]string{
			"AUTH_KEY":                     "test-auth-key-minimum-16-chars",
			"DATABASE_DSN":                 ":memory:",
			"ONBOARDING_SESSION_TTL_HOURS": "0",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTH_KEY", "")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := NewManager()
			assert.Error(t, err)
		})
	}
}

// TestManager_ReloadConfig tests that reload picks up environment changes
func TestManager_ReloadConfig(t *testing.T) {
	setValidEnv(t)

	manager, err := NewManager()
	require.NoError(t, err)
	assert.Equal(t, 3001, manager.GetEffectiveServerConfig().Port)

	t.Setenv("PORT", "4000")
	require.NoError(t, manager.ReloadConfig())
	assert.Equal(t, 4000, manager.GetEffectiveServerConfig().Port)
}
