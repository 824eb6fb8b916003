// Package kafka contains Kafka repository implementations
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/makarov13/gastrobot/config"
	"github.com/makarov13/gastrobot/internal/domain/shop/consts"
	"github.com/makarov13/gastrobot/internal/domain/shop/deps"
	"github.com/makarov13/gastrobot/internal/domain/shop/entities"
)

// Producer implements deps.OrderEventProducer
type Producer struct {
	producer sarama.SyncProducer
	logger   zerolog.Logger
}

// NewProducer creates a new Kafka producer that implements deps.OrderEventProducer
func NewProducer(cfg *config.KafkaConfig, logger zerolog.Logger) (deps.OrderEventProducer, error) {
	brokers := cfg.Brokers
	if len(brokers) == 0 {
		brokers = []string{"localhost:9093"}
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info().Strs("brokers", brokers).Msg("Kafka producer initialized successfully")

	return &Producer{
		producer: producer,
		logger:   logger,
	}, nil
}

// SendOrderCreated sends order created event to Kafka
func (p *Producer) SendOrderCreated(ctx context.Context, order *entities.Order) error {
	event := map[string]interface{}{
		"order_id":       order.ID,
		"user_id":        order.UserID,
		"total_price":    order.TotalPrice.String(),
		"payment_method": order.PaymentMethod,
		"created_at":     time.Now().UTC().Format(time.RFC3339),
	}
	return p.sendEvent(ctx, consts.TopicOrderCreated, event)
}

// SendOrderStatusChanged sends order status change event to Kafka
func (p *Producer) SendOrderStatusChanged(ctx context.Context, order *entities.Order, oldStatus string) error {
	event := map[string]interface{}{
		"order_id":   order.ID,
		"user_id":    order.UserID,
		"old_status": oldStatus,
		"new_status": order.Status,
		"changed_at": time.Now().UTC().Format(time.RFC3339),
	}
	return p.sendEvent(ctx, consts.TopicOrderStatusChanged, event)
}

// SendSubscriptionPurchased sends subscription purchase event to Kafka
func (p *Producer) SendSubscriptionPurchased(ctx context.Context, sub *entities.Subscription) error {
	event := map[string]interface{}{
		"user_id":      sub.UserID,
		"expires_at":   sub.ExpiresAt.UTC().Format(time.RFC3339),
		"stars_spent":  sub.StarsSpent,
		"purchased_at": time.Now().UTC().Format(time.RFC3339),
	}
	return p.sendEvent(ctx, consts.TopicSubscriptionPurchased, event)
}

// sendEvent sends an event to specified Kafka topic
func (p *Producer) sendEvent(ctx context.Context, topic string, event interface{}) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(jsonData),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.logger.Error().Err(err).Str("topic", topic).Msg("Failed to send Kafka message")
		return err
	}

	p.logger.Info().
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Kafka message sent successfully")

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		p.logger.Error().Err(err).Msg("Failed to close Kafka producer")
		return err
	}
	p.logger.Info().Msg("Kafka producer closed successfully")
	return nil
}
