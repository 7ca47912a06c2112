package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"guiche/pkg/logger"
)

// Producer publishes order confirmations to Kafka.
type Producer interface {
	PublishOrderConfirmation(ctx context.Context, confirmation *OrderConfirmation) error
	Close() error
	HealthCheck(ctx context.Context) error
}

type ProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "order-confirmations",
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000,
	}
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
	logger   *logger.Logger
}

func NewKafkaProducer(config *ProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaProducer{
		producer: producer,
		config:   config,
		logger:   logger.GetDefault(),
	}, nil
}

func (kp *kafkaProducer) PublishOrderConfirmation(ctx context.Context, confirmation *OrderConfirmation) error {
	confirmation.Status = StatusQueued
	confirmation.UpdatedAt = time.Now()

	payload, err := confirmation.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal order confirmation: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kp.config.Topic,
		Key:       sarama.StringEncoder(confirmation.PartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Headers:   kp.createHeaders(confirmation),
		Timestamp: confirmation.CreatedAt,
	}

	partition, offset, err := kp.producer.SendMessage(message)
	if err != nil {
		confirmation.MarkFailed(err)
		return fmt.Errorf("failed to send order confirmation to Kafka: %w", err)
	}

	kp.logger.Info("order confirmation published",
		slog.String("topic", kp.config.Topic),
		slog.Int64("partition", int64(partition)),
		slog.Int64("offset", offset),
		slog.String("order_code", confirmation.OrderCode),
	)
	return nil
}

func (kp *kafkaProducer) createHeaders(confirmation *OrderConfirmation) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("confirmation_id"), Value: []byte(confirmation.ID.String())},
		{Key: []byte("order_code"), Value: []byte(confirmation.OrderCode)},
		{Key: []byte("recipient_email"), Value: []byte(confirmation.RecipientEmail)},
		{Key: []byte("producer"), Value: []byte("guiche-notifications")},
		{Key: []byte("created_at"), Value: []byte(confirmation.CreatedAt.Format(time.RFC3339))},
	}
}

func (kp *kafkaProducer) Close() error {
	if kp.producer != nil {
		if err := kp.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		kp.logger.Info("kafka producer closed")
	}
	return nil
}

func (kp *kafkaProducer) HealthCheck(ctx context.Context) error {
	if kp.producer == nil {
		return fmt.Errorf("health check failed: producer is nil")
	}
	if kp.config.Topic == "" {
		return fmt.Errorf("health check failed: topic not configured")
	}
	return nil
}
