package contact

import (
	"errors"
	"strings"
	"testing"

	"github.com/mintevents/event-portal-backend/internal/auth"
)

type fakeRepo struct {
	messages map[uint]*Message
	replies  map[uint]*Reply
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{messages: map[uint]*Message{}, replies: map[uint]*Reply{}, nextID: 1}
}

func (f *fakeRepo) CreateMessage(m *Message) error {
	m.ID = f.nextID
	f.nextID++
	cp := *m
	f.messages[m.ID] = &cp
	return nil
}

func (f *fakeRepo) GetMessageByID(id uint) (*Message, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, ErrMessageNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) ListMessages(limit, offset int, unreadOnly bool) ([]Message, int64, error) {
	var out []Message
	for _, m := range f.messages {
		if unreadOnly && m.Read {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) MarkMessageRead(id uint) error {
	m, ok := f.messages[id]
	if !ok {
		return ErrMessageNotFound
	}
	m.Read = true
	return nil
}

func (f *fakeRepo) CreateReply(r *Reply) error {
	r.ID = f.nextID
	f.nextID++
	cp := *r
	f.replies[r.ID] = &cp
	return nil
}

func (f *fakeRepo) ListRepliesByEmail(email string) ([]Reply, error) {
	var out []Reply
	for _, r := range f.replies {
		if r.RecipientEmail == email {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkReplyRead(id uint, email string) error {
	r, ok := f.replies[id]
	if !ok || r.RecipientEmail != email {
		return ErrReplyNotFound
	}
	r.Read = true
	return nil
}

type fakeMailer struct {
	sent []string
	fail bool
}

func (f *fakeMailer) Send(to []string, subject, body string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, to...)
	return nil
}

var (
	adminActor   = auth.Profile{UserID: 1, Email: "admin@example.com", Role: auth.RoleAdmin, IsAdmin: true}
	visitorActor = auth.Profile{UserID: 9, Email: "visitor@example.com", Role: auth.RoleUser}
)

func TestSubmitMessageValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)

	tests := []struct {
		name    string
		email   string
		text    string
		wantErr error
	}{
		{"valid", "a@b.co", "hello", nil},
		{"uppercase email normalized", "A@B.CO", "hello", nil},
		{"missing at sign", "not-an-email", "hello", ErrInvalidEmail},
		{"missing domain dot", "a@b", "hello", ErrInvalidEmail},
		{"empty email", "", "hello", ErrInvalidEmail},
		{"empty text", "a@b.co", "   ", ErrEmptyMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := svc.SubmitMessage("Visitor", tt.email, tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SubmitMessage() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && m.Email != strings.ToLower(strings.TrimSpace(tt.email)) {
				t.Errorf("stored email = %q, not normalized", m.Email)
			}
		})
	}
}

func TestListMessagesAdminOnly(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)

	if _, _, err := svc.ListMessages(visitorActor, 10, 0, false); err == nil {
		t.Fatal("non-admin could list contact messages")
	}
	if _, _, err := svc.ListMessages(adminActor, 10, 0, false); err != nil {
		t.Fatalf("admin ListMessages() error = %v", err)
	}
}

func TestReplyPersistsAndEmails(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{}
	svc := NewService(repo, mailer, nil)

	m, _ := svc.SubmitMessage("Visitor", "visitor@example.com", "when is the expo?")

	reply, err := svc.Reply(adminActor, m.ID, "Next Friday at 18:00.", "127.0.0.1")
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if reply.RecipientEmail != "visitor@example.com" {
		t.Errorf("reply recipient = %q", reply.RecipientEmail)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "visitor@example.com" {
		t.Errorf("email delivery = %v", mailer.sent)
	}

	// The original message is marked read.
	stored, _ := repo.GetMessageByID(m.ID)
	if !stored.Read {
		t.Error("original message not marked read after reply")
	}

	// The recipient sees the reply via their portal account.
	replies, err := svc.ListMyReplies(visitorActor)
	if err != nil {
		t.Fatalf("ListMyReplies() error = %v", err)
	}
	if len(replies) != 1 {
		t.Fatalf("replies = %d, want 1", len(replies))
	}
}

func TestReplySurvivesEmailFailure(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{fail: true}
	svc := NewService(repo, mailer, nil)

	m, _ := svc.SubmitMessage("Visitor", "visitor@example.com", "hi")
	if _, err := svc.Reply(adminActor, m.ID, "hello back", ""); err != nil {
		t.Fatalf("Reply() error = %v, want nil despite SMTP failure", err)
	}

	replies, _ := svc.ListMyReplies(visitorActor)
	if len(replies) != 1 {
		t.Fatalf("portal reply copy missing after SMTP failure")
	}
}

func TestReplyRequiresAdmin(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)
	if _, err := svc.Reply(visitorActor, 1, "text", ""); err == nil {
		t.Fatal("non-admin could reply to contact messages")
	}
}

func TestMarkReplyReadScopedToRecipient(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)

	m, _ := svc.SubmitMessage("Visitor", "visitor@example.com", "hi")
	reply, _ := svc.Reply(adminActor, m.ID, "hello", "")

	other := auth.Profile{UserID: 2, Email: "other@example.com", Role: auth.RoleUser}
	if err := svc.MarkReplyRead(other, reply.ID); !errors.Is(err, ErrReplyNotFound) {
		t.Fatalf("foreign MarkReplyRead() error = %v, want ErrReplyNotFound", err)
	}
	if err := svc.MarkReplyRead(visitorActor, reply.ID); err != nil {
		t.Fatalf("recipient MarkReplyRead() error = %v", err)
	}
}
