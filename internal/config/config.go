// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ServiceConfig identifies the process and its API port.
type ServiceConfig struct {
	Name string
	Port string
}

// InferenceConfig selects and points at the model services.
type InferenceConfig struct {
	Provider      string // "mock" or "http"
	TranscribeURL string
	DiarizeURL    string
	SummarizeURL  string
	SentimentURL  string
	Timeout       time.Duration
}

// KafkaConfig configures lifecycle event publishing.
type KafkaConfig struct {
	Enabled        bool
	Brokers        []string
	TopicCompleted string
	TopicFailed    string
	Principal      string
}

// ArchiveConfig configures JSON snapshots of completed analyses.
type ArchiveConfig struct {
	Enabled bool
	Dir     string
}

// ObservabilityConfig configures logging and the metrics server.
type ObservabilityConfig struct {
	LogLevel    string
	LogFormat   string
	MetricsPort string
}

// Configuration is the full service configuration.
type Configuration struct {
	Service       ServiceConfig
	Inference     InferenceConfig
	Kafka         KafkaConfig
	Archive       ArchiveConfig
	Observability ObservabilityConfig
}

// Load reads configuration from the environment. Unset or invalid values fall
// back to the defaults, so the service always starts with a usable config.
func Load() *Configuration {
	name := envOrDefault("SERVICE_NAME", "meeting-analysis-service")

	return &Configuration{
		Service: ServiceConfig{
			Name: name,
			Port: envOrDefault("HTTP_PORT", "8080"),
		},
		Inference: InferenceConfig{
			Provider:      envOrDefault("INFERENCE_PROVIDER", "mock"),
			TranscribeURL: envOrDefault("TRANSCRIBE_URL", "http://localhost:8001"),
			DiarizeURL:    envOrDefault("DIARIZE_URL", "http://localhost:8002"),
			SummarizeURL:  envOrDefault("SUMMARIZE_URL", "http://localhost:8003"),
			SentimentURL:  envOrDefault("SENTIMENT_URL", "http://localhost:8004"),
			Timeout:       envOrDefaultDuration("INFERENCE_TIMEOUT", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Enabled:        envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:        envOrDefaultList("KAFKA_BROKERS", nil),
			TopicCompleted: envOrDefault("KAFKA_TOPIC_COMPLETED", "meeting.job.completed"),
			TopicFailed:    envOrDefault("KAFKA_TOPIC_FAILED", "meeting.job.failed"),
			Principal:      envOrDefault("KAFKA_PRINCIPAL", name),
		},
		Archive: ArchiveConfig{
			Enabled: envOrDefaultBool("ARCHIVE_ENABLED", true),
			Dir:     envOrDefault("ARCHIVE_DIR", "meeting_analyses"),
		},
		Observability: ObservabilityConfig{
			LogLevel:    envOrDefault("LOG_LEVEL", "info"),
			LogFormat:   envOrDefault("LOG_FORMAT", "json"),
			MetricsPort: envOrDefault("METRICS_PORT", "9090"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return parsed
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return parsed
}

// envOrDefaultList parses a comma-separated value.
func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
