package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/errandly/errand-service/internal/repository"
)

const (
	defaultBrokers = "localhost:9092"
	lifecycleTopic = "errand_lifecycle_events"
	groupID        = "errand-lifecycle-consumer-group"
)

// Reads the durable lifecycle stream and prints each transition. Useful as a
// smoke consumer while developing downstream services.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = defaultBrokers
	}

	log.Println("Starting lifecycle consumer...")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        strings.Split(brokers, ","),
		GroupID:        groupID,
		Topic:          lifecycleTopic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		log.Println("Closing Kafka reader...")
		if err := r.Close(); err != nil {
			log.Printf("Error closing Kafka reader: %v", err)
		}
	}()

	log.Printf("Consumer connected to topic '%s' on brokers %s", lifecycleTopic, brokers)

	for {
		select {
		case <-ctx.Done():
			log.Println("Shutdown signal received, stopping consumer.")
			return
		default:
			m, err := r.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					log.Println("Context cancelled, exiting message loop.")
					return
				}
				log.Printf("Error reading message: %v", err)
				time.Sleep(5 * time.Second)
				continue
			}

			var event repository.LifecycleEvent
			if err := json.Unmarshal(m.Value, &event); err != nil {
				log.Printf("Skipping malformed message at offset %d: %v", m.Offset, err)
				continue
			}

			log.Printf("errand=%s status=%s actor=%s at=%s (partition=%d offset=%d)",
				event.ErrandID, event.Status, event.ActorID,
				event.Timestamp.Format(time.RFC3339), m.Partition, m.Offset)
		}
	}
}
