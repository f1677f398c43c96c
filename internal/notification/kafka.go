package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/mintevents/event-portal-backend/internal/auth"
	"github.com/mintevents/event-portal-backend/utils"
)

// StartKafkaConsumer reads approval updates and fans them out as in-app and
// push notifications. Runs until ctx is cancelled.
func StartKafkaConsumer(ctx context.Context, svc Service, brokers []string, topic string) {
	if len(brokers) == 0 {
		log.Println("⚠️ Kafka consumer disabled (no brokers configured)")
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: "event-portal-notifications",
	})
	defer reader.Close()

	log.Printf("✅ Kafka consumer started on topic %s", topic)

	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("❌ Kafka read failed: %v", err)
			continue
		}

		var msg utils.ApprovalMessage
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			log.Printf("⚠️ Skipping malformed approval message: %v", err)
			continue
		}
		dispatchApprovalUpdate(ctx, svc, msg)
	}
}

func dispatchApprovalUpdate(ctx context.Context, svc Service, msg utils.ApprovalMessage) {
	switch msg.Status {
	case "pending_head":
		title := "New event awaiting review"
		body := fmt.Sprintf("\"%s\" was submitted and needs head approval.", msg.Title)
		if err := svc.NotifyRole(ctx, auth.RoleHead, title, body, "approval"); err != nil {
			log.Printf("⚠️ Notify heads failed: %v", err)
		}

	case "pending_admin":
		title := "Event awaiting final approval"
		body := fmt.Sprintf("\"%s\" passed head review and needs admin approval.", msg.Title)
		if err := svc.NotifyRole(ctx, auth.RoleAdmin, title, body, "approval"); err != nil {
			log.Printf("⚠️ Notify admins failed: %v", err)
		}
		notifySubmitter(ctx, svc, msg,
			"Event moved forward",
			fmt.Sprintf("\"%s\" was approved by the head and sent for admin review.", msg.Title))

	case "approved":
		notifySubmitter(ctx, svc, msg,
			"Event approved",
			fmt.Sprintf("\"%s\" has been approved and is now public.", msg.Title))

	case "rejected", "rejected_by_head":
		notifySubmitter(ctx, svc, msg,
			"Event rejected",
			fmt.Sprintf("\"%s\" was not approved.", msg.Title))

	default:
		log.Printf("⚠️ Unknown approval status %q for event %d", msg.Status, msg.EventID)
	}
}

// notifySubmitter skips the case where the actor is the submitter, e.g. a
// head submitting straight into the admin stage.
func notifySubmitter(ctx context.Context, svc Service, msg utils.ApprovalMessage, title, body string) {
	if msg.ProposedBy == 0 || msg.ProposedBy == msg.ActorID {
		return
	}
	if err := svc.NotifyUsers(ctx, []uint{msg.ProposedBy}, title, body, "approval"); err != nil {
		log.Printf("⚠️ Notify submitter failed: %v", err)
	}
}
