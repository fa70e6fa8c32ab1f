package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadFromArgs_Defaults проверяет значения по умолчанию
func TestLoadFromArgs_Defaults(t *testing.T) {
	// Act
	cfg, err := LoadFromArgs(nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", cfg.ServerAddress.String())
	assert.Equal(t, 60*time.Second, cfg.Resolver.TombstoneTTL)
	assert.Equal(t, 3*time.Second, cfg.Resolver.LockTTL)
	assert.Equal(t, 80*time.Millisecond, cfg.Resolver.WaitInterval)
	assert.Equal(t, 2, cfg.Resolver.WaitRounds)
	assert.False(t, cfg.Resolver.WaitFallbackToStore)
	assert.Equal(t, 100, cfg.Queue.BatchSize)
	assert.Equal(t, 5*time.Minute, cfg.Queue.VisibilityTimeout)
	assert.Equal(t, 5, cfg.Queue.MaxAttempts)
	assert.Equal(t, time.Hour, cfg.Queue.BackoffCap)
	assert.Equal(t, "localhost", cfg.Policy.ShortDomain)
}

// TestLoadFromArgs_EnvOverridesFlags проверяет приоритет переменных окружения над флагами
func TestLoadFromArgs_EnvOverridesFlags(t *testing.T) {
	// Arrange
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:9000")
	t.Setenv("RESOLVER_TOMBSTONE_TTL", "30s")
	t.Setenv("QUEUE_WORKER_ID", "worker-test")
	t.Setenv("USAGE_SINK", "kafka")
	t.Setenv("USAGE_KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	// Act
	cfg, err := LoadFromArgs([]string{"-a", "127.0.0.1:7000", "-b", "https://sho.rt/", "-d", "postgres://flag"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.ServerAddress.String())
	assert.Equal(t, "https://sho.rt", cfg.BaseURL.String())
	assert.Equal(t, "sho.rt", cfg.Policy.ShortDomain)
	assert.Equal(t, "postgres://flag", cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Second, cfg.Resolver.TombstoneTTL)
	assert.Equal(t, "worker-test", cfg.Queue.WorkerID)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Usage.KafkaBrokers)
}

// TestLoadFromArgs_Invalid проверяет отказ на некорректной конфигурации
func TestLoadFromArgs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{
			name: "Invalid address flag",
			args: []string{"-a", "localhost"},
		},
		{
			name: "Invalid base URL",
			args: []string{"-b", "ftp://example.com"},
		},
		{
			name: "Unknown usage sink",
			env:  map[string]string{"USAGE_SINK": "stdout"},
		},
		{
			name: "Kafka sink without brokers",
			env:  map[string]string{"USAGE_SINK": "kafka"},
		},
		{
			name: "Backoff cap below base",
			env:  map[string]string{"QUEUE_BACKOFF_BASE": "10m", "QUEUE_BACKOFF_CAP": "1m"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			// Act
			cfg, err := LoadFromArgs(tt.args)

			// Assert
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestNetworkAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "Host and port", value: "localhost:8080", want: "localhost:8080"},
		{name: "All interfaces", value: ":8080", want: ":8080"},
		{name: "IPv6", value: "[::1]:8080", want: "[::1]:8080"},
		{name: "Missing port", value: "localhost", wantErr: true},
		{name: "Non numeric port", value: "localhost:http", wantErr: true},
		{name: "Port out of range", value: "localhost:70000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetworkAddress

			err := addr.Set(tt.value)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr.String())
		})
	}
}
