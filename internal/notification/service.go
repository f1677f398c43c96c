package notification

import (
	"context"
	"log"

	"github.com/mintevents/event-portal-backend/config"
	"github.com/mintevents/event-portal-backend/internal/auth"
)

// Channel is a delivery mechanism: email addresses for SMTP, device tokens
// for FCM.
type Channel interface {
	Send(recipients []string, subject, body string) error
}

type Service interface {
	// NotifyUsers creates an in-app notification per user and pushes to
	// their registered devices. Per-user failures are logged and skipped.
	NotifyUsers(ctx context.Context, userIDs []uint, title, message, category string) error
	NotifyRole(ctx context.Context, role auth.Role, title, message, category string) error

	ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error)
	MarkInAppRead(ctx context.Context, id uint, userID uint) error

	RegisterDeviceToken(ctx context.Context, userID uint, deviceToken, deviceType string) error
	RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error

	// EmailChannel exposes the SMTP channel for collaborators that deliver
	// straight to addresses (reminder job, contact replies).
	EmailChannel() Channel
}

type service struct {
	repo     Repository
	authRepo auth.Repository
	email    Channel
	fcm      Channel
}

func NewService(repo Repository, authRepo auth.Repository, cfg *config.Config) Service {
	return &service{
		repo:     repo,
		authRepo: authRepo,
		email:    NewEmailSender(cfg),
		fcm:      NewFCMChannel(),
	}
}

func (s *service) NotifyUsers(ctx context.Context, userIDs []uint, title, message, category string) error {
	for _, userID := range userIDs {
		n := &InAppNotification{
			UserID:   userID,
			Title:    title,
			Message:  message,
			Category: category,
		}
		if err := s.repo.CreateInApp(ctx, n); err != nil {
			log.Printf("⚠️ In-app notification for user %d failed: %v", userID, err)
			continue
		}

		tokens, err := s.repo.GetDeviceTokens(ctx, userID)
		if err != nil || len(tokens) == 0 {
			continue
		}
		if err := s.fcm.Send(tokens, title, message); err != nil {
			log.Printf("⚠️ Push to user %d failed: %v", userID, err)
		}
	}
	return nil
}

func (s *service) NotifyRole(ctx context.Context, role auth.Role, title, message, category string) error {
	userIDs, err := s.authRepo.GetUserIDsByRole(role.String())
	if err != nil {
		return err
	}
	return s.NotifyUsers(ctx, userIDs, title, message, category)
}

func (s *service) ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error) {
	return s.repo.ListInAppByUser(ctx, userID, limit)
}

func (s *service) MarkInAppRead(ctx context.Context, id uint, userID uint) error {
	return s.repo.MarkInAppRead(ctx, id, userID)
}

func (s *service) RegisterDeviceToken(ctx context.Context, userID uint, deviceToken, deviceType string) error {
	return s.repo.UpsertDeviceToken(ctx, &FCMDeviceToken{
		UserID:      userID,
		DeviceToken: deviceToken,
		DeviceType:  deviceType,
	})
}

func (s *service) RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error {
	return s.repo.DeleteDeviceToken(ctx, userID, deviceToken)
}

func (s *service) EmailChannel() Channel {
	return s.email
}
