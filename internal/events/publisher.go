// Package events publishes job lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"meeting-analysis-service/internal/observability/metrics"
)

// Publisher announces terminal job transitions on separate Kafka topics for
// completions and failures. When Kafka is disabled it degrades to log-only
// mode, so the pipeline behaves identically with and without a broker.
type Publisher struct {
	writerCompleted *kafka.Writer
	writerFailed    *kafka.Writer
	principal       string
	topicCompleted  string
	topicFailed     string
	enabled         bool
	metrics         *metrics.Metrics
}

// Config holds Kafka publisher configuration.
type Config struct {
	Brokers        []string
	TopicCompleted string
	TopicFailed    string
	Principal      string
	Enabled        bool
}

// New creates a publisher. A nil config, a disabled flag, or an empty broker
// list all produce a log-only publisher.
func New(cfg *Config) *Publisher {
	m := metrics.DefaultMetrics

	if cfg == nil {
		log.Info().Msg("Kafka disabled (nil config), using log-only mode")
		return &Publisher{enabled: false, metrics: m}
	}

	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, using log-only mode")
		return &Publisher{
			principal:      cfg.Principal,
			topicCompleted: cfg.TopicCompleted,
			topicFailed:    cfg.TopicFailed,
			enabled:        false,
			metrics:        m,
		}
	}

	// Longer dial timeouts cover slow DNS inside Kubernetes.
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	transport := &kafka.Transport{Dial: dialer.DialFunc}

	writerCompleted := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicCompleted,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}
	writerFailed := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicFailed,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topicCompleted", cfg.TopicCompleted).
		Str("topicFailed", cfg.TopicFailed).
		Str("principal", cfg.Principal).
		Msg("Kafka publisher initialized")

	return &Publisher{
		writerCompleted: writerCompleted,
		writerFailed:    writerFailed,
		principal:       cfg.Principal,
		topicCompleted:  cfg.TopicCompleted,
		topicFailed:     cfg.TopicFailed,
		enabled:         true,
		metrics:         m,
	}
}

// PublishCompleted publishes a job completion event keyed by job id.
func (p *Publisher) PublishCompleted(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerCompleted, p.topicCompleted, "completed", key, event)
}

// PublishFailed publishes a job failure event keyed by job id.
func (p *Publisher) PublishFailed(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerFailed, p.topicFailed, "failed", key, event)
}

func (p *Publisher) publish(ctx context.Context, writer *kafka.Writer, topic, eventType, key string, event any) error {
	start := time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal event")
		return err
	}

	log.Debug().
		Str("principal", p.principal).
		Str("topic", topic).
		Str("key", key).
		RawJSON("payload", payload).
		Msg("Publishing event")

	if !p.enabled || writer == nil {
		p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(topic)},
			{Key: "principal", Value: []byte(p.principal)},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Failed to write to Kafka")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return err
	}

	p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
	return nil
}

// Close closes both Kafka writers.
func (p *Publisher) Close() error {
	var err error
	if p.writerCompleted != nil {
		if e := p.writerCompleted.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing completed writer")
			err = e
		}
	}
	if p.writerFailed != nil {
		if e := p.writerFailed.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing failed writer")
			err = e
		}
	}
	return err
}
