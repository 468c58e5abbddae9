package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Refresh RefreshConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string
	Port           string
	RequestTimeout time.Duration
}

// MongoConfig holds the snapshot and prediction store configuration. Both
// databases usually live in one deployment but the prediction store came
// from a separate one historically, so the URIs stay independent.
type MongoConfig struct {
	URI        string
	PredictURI string
	SnapshotDB string
	PredictDB  string
}

// RedisConfig holds cache configuration. The cache is advisory: with
// Enabled false the service runs in always-miss mode.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// KafkaConfig holds the refresh-event producer configuration.
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// RefreshConfig holds the scheduled full-refresh configuration. Hour is
// the Korean wall-clock hour the job fires at.
type RefreshConfig struct {
	Enabled bool
	Hour    int
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", "6000"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			PredictURI: getEnv("MONGO_URI2", ""),
			SnapshotDB: getEnv("MONGO_SNAPSHOT_DB", "oil_info"),
			PredictDB:  getEnv("MONGO_PREDICT_DB", "oil_predict"),
		},
		Redis: RedisConfig{
			Enabled:  getEnv("ENABLE_REDIS", "1") == "1",
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Enabled: getEnv("ENABLE_KAFKA", "0") == "1",
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "dashboard-events"),
		},
		Refresh: RefreshConfig{
			Enabled: getEnv("ENABLE_REFRESH", "1") == "1",
			Hour:    getEnvAsInt("REFRESH_HOUR", 5),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
