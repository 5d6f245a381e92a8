package config

import (
	"testing"
	"time"

	"tiemnuoc/pkg/kvstore"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHEETS_URL", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.Sheets.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.Sheets.RefreshInterval)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SHEETS_URL", "https://script.example.com/exec")
	t.Setenv("ORDER_POLL_INTERVAL", "3s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("STORE_DRIVER", "redis")

	cfg := Load()

	assert.Equal(t, "https://script.example.com/exec", cfg.Sheets.URL)
	assert.Equal(t, 3*time.Second, cfg.Sheets.PollInterval)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.True(t, cfg.KafkaEnabled())
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("ORDER_POLL_INTERVAL", "soon")
	t.Setenv("REDIS_DB", "two")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.Sheets.PollInterval)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoad_NonPositiveDurationsFallBack(t *testing.T) {
	tests := []struct {
		key   string
		value string
		get   func(*Config) time.Duration
		want  time.Duration
	}{
		{"ORDER_POLL_INTERVAL", "0s", func(c *Config) time.Duration { return c.Sheets.PollInterval }, 10 * time.Second},
		{"MENU_REFRESH_INTERVAL", "-5s", func(c *Config) time.Duration { return c.Sheets.RefreshInterval }, 30 * time.Second},
		{"SHEETS_TIMEOUT", "0", func(c *Config) time.Duration { return c.Sheets.Timeout }, 15 * time.Second},
	}

	for _, testCase := range tests {
		t.Run(testCase.key, func(t *testing.T) {
			t.Setenv(testCase.key, testCase.value)
			assert.Equal(t, testCase.want, testCase.get(Load()))
		})
	}
}

func TestMustOpenStore_Memory(t *testing.T) {
	for _, driver := range []string{"memory", "bogus"} {
		store := MustOpenStore(&Config{Store: StoreConfig{Driver: driver}})
		assert.IsType(t, &kvstore.MemoryStore{}, store)
	}
}
