package notification

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"

	"github.com/mintevents/event-portal-backend/utils"
)

// FCMChannel implements Channel for Firebase Cloud Messaging. Recipients are
// device tokens; subject becomes the notification title.
type FCMChannel struct {
	client *messaging.Client
	ctx    context.Context
}

func NewFCMChannel() Channel {
	return &FCMChannel{
		client: utils.FCMClient(),
		ctx:    context.Background(),
	}
}

func (f *FCMChannel) Send(recipients []string, subject, body string) error {
	if f.client == nil {
		return fmt.Errorf("FCM client not initialized")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no FCM tokens provided")
	}

	if len(recipients) == 1 {
		return f.sendSingle(recipients[0], subject, body)
	}
	return f.sendMulticast(recipients, subject, body)
}

func (f *FCMChannel) sendSingle(token, title, body string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: "mint_events",
			},
		},
	}

	_, err := f.client.Send(f.ctx, message)
	if err != nil {
		return fmt.Errorf("FCM send failed: %w", err)
	}
	return nil
}

func (f *FCMChannel) sendMulticast(tokens []string, title, body string) error {
	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}

	resp, err := f.client.SendEachForMulticast(f.ctx, message)
	if err != nil {
		return fmt.Errorf("FCM multicast failed: %w", err)
	}
	if resp.FailureCount > 0 {
		log.Printf("⚠️ FCM multicast: %d/%d deliveries failed", resp.FailureCount, len(tokens))
	}
	return nil
}
