package config_test

import (
	"testing"
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "postgres")
	t.Setenv("POSTGRES_PASSWORD", "secret")
}

func TestNew_Defaults(t *testing.T) {
	setRequiredEnv(t)

	conf := config.New()
	require.NoError(t, conf.Validate())

	assert.Equal(t, "orders", conf.Kafka.Topic)
	assert.Equal(t, "orders-dlq", conf.Kafka.DLQTopic)
	assert.Equal(t, 5*time.Second, conf.Worker.ProcessingDelay)
	assert.Equal(t, 1, conf.Worker.Concurrency)
	assert.Equal(t, 5, conf.Worker.MaxDeliveries)
	assert.True(t, conf.Republish.Enabled)
}

func TestNew_FromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("KAFKA_TOPIC", "order-events")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("WORKER_PROCESSING_DELAY", "250ms")
	t.Setenv("WORKER_CONCURRENCY", "4")
	t.Setenv("REPUBLISH_ENABLED", "false")

	conf := config.New()
	require.NoError(t, conf.Validate())

	assert.Equal(t, "order-events-dlq", conf.Kafka.DLQTopic)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, conf.Kafka.Brokers)
	assert.Equal(t, 250*time.Millisecond, conf.Worker.ProcessingDelay)
	assert.Equal(t, 4, conf.Worker.Concurrency)
	assert.False(t, conf.Republish.Enabled)
}

func TestValidate_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(c *config.Config)
	}{
		{name: "unknown env", modify: func(c *config.Config) { c.Env = "dev" }},
		{name: "no brokers", modify: func(c *config.Config) { c.Kafka.Brokers = nil }},
		{name: "dlq equals topic", modify: func(c *config.Config) { c.Kafka.DLQTopic = c.Kafka.Topic }},
		{name: "zero concurrency", modify: func(c *config.Config) { c.Worker.Concurrency = 0 }},
		{name: "zero max deliveries", modify: func(c *config.Config) { c.Worker.MaxDeliveries = 0 }},
		{name: "max backoff below backoff", modify: func(c *config.Config) { c.Worker.MaxBackoff = time.Millisecond }},
		{name: "empty schedule", modify: func(c *config.Config) { c.Republish.Schedule = "" }},
		{name: "bad cors origin", modify: func(c *config.Config) { c.Cors.AllowedOrigins = []string{"not a url"} }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			conf := config.New()
			tc.modify(&conf)
			assert.Error(t, conf.Validate())
		})
	}
}
