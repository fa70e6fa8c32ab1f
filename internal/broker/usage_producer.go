// Package broker публикует события использования ссылок в Kafka
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/avc-dev/link-resolver/internal/model"
)

// UsageProducer отправляет события журнала использования в топик Kafka
type UsageProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewProducerConfig настройки производителя: подтверждение лидером и ограниченное число повторов
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	return cfg
}

// Dial подключается к брокерам и создает UsageProducer
func Dial(brokers []string, topic string, logger *zap.Logger) (*UsageProducer, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return NewUsageProducer(producer, topic, logger), nil
}

// NewUsageProducer оборачивает готовый производитель
func NewUsageProducer(producer sarama.SyncProducer, topic string, logger *zap.Logger) *UsageProducer {
	return &UsageProducer{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// WriteUsage публикует событие, ключ сообщения id ссылки или путь запроса
func (p *UsageProducer) WriteUsage(ctx context.Context, event model.UsageEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal usage event: %w", err)
	}

	key := event.Meta.Path
	if event.LinkID != nil {
		key = strconv.FormatInt(*event.LinkID, 10)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("failed to publish usage event: %w", err)
	}

	p.logger.Debug("usage event published",
		zap.String("topic", p.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

// Close закрывает производитель
func (p *UsageProducer) Close() error {
	return p.producer.Close()
}
