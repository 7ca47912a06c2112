package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"guiche/pkg/logger"
)

// Consumer drains the order-confirmation topic and hands each message to
// the email sender.
type Consumer interface {
	Start(ctx context.Context, numWorkers int) error
	Stop() error
}

type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topics           []string
	SessionTimeoutMs int
	HeartbeatMs      int
	MaxRetries       int
	RetryBackoff     time.Duration
	OffsetOldest     bool
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "guiche-ticket-mailers",
		Topics:           []string{"order-confirmations"},
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		MaxRetries:       3,
		RetryBackoff:     time.Second,
		OffsetOldest:     false,
	}
}

type kafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	sender        EmailSender
	logger        *logger.Logger
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func NewKafkaConsumer(config *ConsumerConfig, sender EmailSender) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second
	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		sender:        sender,
		logger:        logger.GetDefault(),
	}, nil
}

func (kc *kafkaConsumer) Start(ctx context.Context, numWorkers int) error {
	ctx, kc.cancel = context.WithCancel(ctx)

	go kc.handleErrors()

	for i := 0; i < numWorkers; i++ {
		kc.wg.Add(1)
		go func(workerID int) {
			defer kc.wg.Done()
			kc.runWorker(ctx, workerID)
		}(i)
	}

	kc.logger.Info("ticket mailer workers started", slog.Int("workers", numWorkers))
	return nil
}

func (kc *kafkaConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &confirmationHandler{consumer: kc, workerID: workerID}
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := kc.consumerGroup.Consume(ctx, kc.config.Topics, handler); err != nil {
				kc.logger.Warn("consume loop error",
					slog.Int("worker", workerID),
					slog.Any("error", err),
				)
				time.Sleep(time.Second)
			}
		}
	}
}

func (kc *kafkaConsumer) handleErrors() {
	for err := range kc.consumerGroup.Errors() {
		kc.logger.Warn("consumer group error", slog.Any("error", err))
	}
}

func (kc *kafkaConsumer) Stop() error {
	if kc.cancel != nil {
		kc.cancel()
	}
	if err := kc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	kc.wg.Wait()
	kc.logger.Info("ticket mailer stopped")
	return nil
}

type confirmationHandler struct {
	consumer *kafkaConsumer
	workerID int
}

func (h *confirmationHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *confirmationHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *confirmationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				h.consumer.logger.Warn("failed to process order confirmation",
					slog.Int("worker", h.workerID),
					slog.Any("error", err),
				)
			} else {
				session.MarkMessage(message, "")
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *confirmationHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var confirmation OrderConfirmation
	if err := json.Unmarshal(message.Value, &confirmation); err != nil {
		return fmt.Errorf("failed to unmarshal order confirmation: %w", err)
	}

	confirmation.Status = StatusSending
	if err := h.sendWithRetry(ctx, &confirmation); err != nil {
		confirmation.MarkFailed(err)
		return err
	}

	confirmation.MarkSent()
	h.consumer.logger.Info("ticket email delivered",
		slog.String("order_code", confirmation.OrderCode),
		slog.String("to", confirmation.RecipientEmail),
	)
	return nil
}

func (h *confirmationHandler) sendWithRetry(ctx context.Context, confirmation *OrderConfirmation) error {
	maxRetries := h.consumer.config.MaxRetries
	backoff := h.consumer.config.RetryBackoff

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = h.consumer.sender.SendOrderConfirmation(ctx, confirmation)
		if lastErr == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		delay := backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
