package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/IBM/sarama"
)

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// Producer publishes JSON records to a single topic
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer connects a synchronous producer that waits for all in-sync replicas
func NewProducer(config ProducerConfig) (*Producer, error) {
	if len(config.Brokers) == 0 || config.Topic == "" {
		return nil, fmt.Errorf("kafka producer needs brokers and topic")
	}

	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 3

	sp, err := sarama.NewSyncProducer(config.Brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create producer for %s: %w", config.Topic, err)
	}
	return NewProducerWith(sp, config.Topic), nil
}

// NewProducerWith wraps an existing sarama.SyncProducer
func NewProducerWith(sp sarama.SyncProducer, topic string) *Producer {
	return &Producer{producer: sp, topic: topic}
}

// Topic is the destination topic
func (p *Producer) Topic() string {
	return p.topic
}

// PublishJSON encodes v and sends it keyed by key. The send itself cannot be
// interrupted; ctx is only checked before it starts.
func (p *Producer) PublishJSON(ctx context.Context, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	log.Printf("📤 Published Kafka message: topic=%s, partition=%d, offset=%d, key=%s", p.topic, partition, offset, key)
	return nil
}

// Close flushes and closes the producer
func (p *Producer) Close() error {
	return p.producer.Close()
}
