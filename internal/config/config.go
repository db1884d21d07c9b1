package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Kafka Kafka `validate:"required"`

	Postgres Postgres `validate:"required"`

	Worker Worker `validate:"required"`

	Cache Cache `validate:"required"`

	Republish Republish `validate:"required"`
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,numeric"`
}

type Kafka struct {
	GroupID  string   `validate:"required"`
	Brokers  []string `validate:"required,min=1,dive,hostname_port"`
	Topic    string   `validate:"required"`
	DLQTopic string   `validate:"required,nefield=Topic"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
	WriteTimeout  time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
}

// Worker настраивает обработку событий OrderCreated.
type Worker struct {
	// Имитация полезной работы между Processing и Completed
	ProcessingDelay time.Duration `validate:"gte=0"`
	Concurrency     int           `validate:"gte=1,lte=64"`
	// После стольких доставок сообщение уходит в DLQ
	MaxDeliveries int           `validate:"gte=1"`
	RetryBackoff  time.Duration `validate:"gte=0"`
	MaxBackoff    time.Duration `validate:"gtefield=RetryBackoff"`
}

type Cache struct {
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
}

// Republish - повторная публикация событий заказов, которые не ушли в брокер.
type Republish struct {
	Enabled     bool
	Schedule    string        `validate:"required_if=Enabled true"`
	GracePeriod time.Duration `validate:"gte=0"`
	BatchSize   int           `validate:"gte=1"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

func New() Config {
	topic := env("KAFKA_TOPIC", "orders")

	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:5173"), ","),
		},

		Kafka: Kafka{
			GroupID:  env("KAFKA_GROUP_ID", "order-pipeline"),
			Topic:    topic,
			DLQTopic: env("KAFKA_DLQ_TOPIC", topic+"-dlq"),
			Brokers:  strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
			WriteTimeout:  envDuration("KAFKA_WRITE_TIMEOUT", 10*time.Second),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "orders"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Worker: Worker{
			ProcessingDelay: envDuration("WORKER_PROCESSING_DELAY", 5*time.Second),
			Concurrency:     envInt("WORKER_CONCURRENCY", 1),
			MaxDeliveries:   envInt("WORKER_MAX_DELIVERIES", 5),
			RetryBackoff:    envDuration("WORKER_RETRY_BACKOFF", time.Second),
			MaxBackoff:      envDuration("WORKER_MAX_BACKOFF", 30*time.Second),
		},

		Cache: Cache{
			Capacity: envInt("CACHE_CAPACITY", 1000),
			TTL:      envDuration("CACHE_TTL", time.Minute),
		},

		Republish: Republish{
			Enabled:     envBool("REPUBLISH_ENABLED", true),
			Schedule:    env("REPUBLISH_SCHEDULE", "@every 30s"),
			GracePeriod: envDuration("REPUBLISH_GRACE_PERIOD", time.Minute),
			BatchSize:   envInt("REPUBLISH_BATCH_SIZE", 100),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
