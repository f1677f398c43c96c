package contact

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/mintevents/event-portal-backend/internal/auditlog"
	"github.com/mintevents/event-portal-backend/internal/auth"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrEmptyMessage = errors.New("message text is required")
)

// Mailer is the outbound email channel used for reply delivery.
type Mailer interface {
	Send(to []string, subject, body string) error
}

type Service struct {
	Repo     Repository
	Mailer   Mailer
	AuditSvc auditlog.Service
}

func NewService(r Repository, mailer Mailer, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, Mailer: mailer, AuditSvc: auditSvc}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubmitMessage is the public contact-form intake.
func (s *Service) SubmitMessage(name, email, text string) (*Message, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	m := &Message{
		Name:  strings.TrimSpace(name),
		Email: email,
		Text:  strings.TrimSpace(text),
	}

	if err := s.Repo.CreateMessage(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListMessages(actor auth.Profile, limit, offset int, unreadOnly bool) ([]Message, int64, error) {
	if !actor.Role.IsAdmin() {
		return nil, 0, errors.New("only admins can read contact messages")
	}
	return s.Repo.ListMessages(limit, offset, unreadOnly)
}

func (s *Service) MarkMessageRead(actor auth.Profile, id uint) error {
	if !actor.Role.IsAdmin() {
		return errors.New("only admins can manage contact messages")
	}
	return s.Repo.MarkMessageRead(id)
}

// Reply persists the admin's answer and sends it to the recipient's inbox.
// The email is best-effort: the portal copy of the reply stands even when
// SMTP delivery fails.
func (s *Service) Reply(actor auth.Profile, messageID uint, replyText, ip string) (*Reply, error) {
	if !actor.Role.IsAdmin() {
		return nil, errors.New("only admins can reply to contact messages")
	}
	if strings.TrimSpace(replyText) == "" {
		return nil, ErrEmptyMessage
	}

	original, err := s.Repo.GetMessageByID(messageID)
	if err != nil {
		return nil, err
	}

	reply := &Reply{
		MessageID:      original.ID,
		RecipientEmail: original.Email,
		ReplyText:      strings.TrimSpace(replyText),
		SentBy:         actor.UserID,
	}

	if err := s.Repo.CreateReply(reply); err != nil {
		return nil, err
	}

	if err := s.Repo.MarkMessageRead(original.ID); err != nil {
		log.Printf("⚠️ Failed to mark contact message %d read: %v", original.ID, err)
	}

	if s.Mailer != nil {
		subject := "Re: your message to MInT Events"
		if err := s.Mailer.Send([]string{original.Email}, subject, reply.ReplyText); err != nil {
			log.Printf("⚠️ Reply email to %s failed: %v", original.Email, err)
		}
	}

	if s.AuditSvc != nil {
		_ = s.AuditSvc.LogAction(context.Background(), &actor.UserID, nil, "CONTACT_REPLY_SENT",
			map[string]interface{}{
				"message_id": original.ID,
				"recipient":  original.Email,
			}, ip, "success")
	}

	return reply, nil
}

// ListMyReplies returns replies addressed to the caller's email.
func (s *Service) ListMyReplies(actor auth.Profile) ([]Reply, error) {
	email := strings.ToLower(strings.TrimSpace(actor.Email))
	if email == "" {
		return nil, ErrInvalidEmail
	}
	return s.Repo.ListRepliesByEmail(email)
}

func (s *Service) MarkReplyRead(actor auth.Profile, replyID uint) error {
	return s.Repo.MarkReplyRead(replyID, strings.ToLower(strings.TrimSpace(actor.Email)))
}
