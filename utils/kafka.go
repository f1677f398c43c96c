package utils

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var kafkaWriter *kafka.Writer

// ApprovalMessage is the payload published whenever an event moves through
// the approval pipeline. The notification consumer turns these into in-app
// notifications and push messages.
type ApprovalMessage struct {
	EventID    uint   `json:"event_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	ActorID    uint   `json:"actor_id"`
	ActorRole  string `json:"actor_role"`
	ProposedBy uint   `json:"proposed_by"`
	OccurredAt int64  `json:"occurred_at"`
}

// InitializeKafka sets up the shared writer. Missing KAFKA_BROKERS leaves the
// writer nil and publishing becomes a logged no-op.
func InitializeKafka(brokers, topic string) {
	if brokers == "" {
		log.Println("⚠️ Kafka not configured, approval fan-out disabled")
		return
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	log.Println("✅ Kafka writer initialized for topic:", topic)
}

// PublishApprovalUpdate sends an approval transition to the topic. Failures
// are logged, never propagated; the status change itself has already been
// committed by the caller.
func PublishApprovalUpdate(msg ApprovalMessage) {
	if kafkaWriter == nil {
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("❌ Failed to marshal approval message: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := kafkaWriter.WriteMessages(ctx, kafka.Message{Value: payload}); err != nil {
		log.Printf("❌ Failed to publish approval update for event %d: %v", msg.EventID, err)
	}
}

// CloseKafka flushes and closes the writer on shutdown.
func CloseKafka() {
	if kafkaWriter != nil {
		_ = kafkaWriter.Close()
	}
}
