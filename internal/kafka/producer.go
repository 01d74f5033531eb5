package kafka

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

type Producer interface {
	SendMessage(ctx context.Context, topic string, key []byte, value []byte) error
	Close() error
}

// KafkaProducer writes through a shared kafka-go Writer; the topic is set per
// message so one producer serves both the outbox and the emitter.
type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	log.Printf("Initialized Kafka producer for brokers %v", brokers)
	return &KafkaProducer{writer: writer}
}

func (p *KafkaProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}
	return nil
}

func (p *KafkaProducer) Close() error {
	log.Println("Closing Kafka producer")
	return p.writer.Close()
}

// ConsoleProducer prints messages instead of sending them; used for local
// runs without a broker.
type ConsoleProducer struct{}

func NewConsoleProducer() Producer {
	log.Println("Initialized console Kafka producer")
	return &ConsoleProducer{}
}

func (p *ConsoleProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	select {
	case <-time.After(50 * time.Millisecond):
		fmt.Printf("\n--- KAFKA_PRODUCER (CONSOLE) ---\n")
		fmt.Printf("Topic: %s\n", topic)
		fmt.Printf("Key: %s\n", string(key))
		fmt.Printf("Value: %s\n", string(value))
		fmt.Printf("--- END KAFKA ---")
		return nil
	case <-ctx.Done():
		log.Printf("KAFKA_PRODUCER (CANCELLED): Topic=[%s], Key=[%s]", topic, string(key))
		return ctx.Err()
	}
}

func (p *ConsoleProducer) Close() error {
	log.Println("Closing console Kafka producer")
	return nil
}
