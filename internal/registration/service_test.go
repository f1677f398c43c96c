package registration

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/mintevents/event-portal-backend/internal/auth"
	"github.com/mintevents/event-portal-backend/internal/event"
)

type fakeRepo struct {
	regs   []Registration
	nextID uint
}

func (f *fakeRepo) Create(reg *Registration) error {
	for _, r := range f.regs {
		if r.EventID == reg.EventID && r.Email == reg.Email {
			return ErrAlreadyRegistered
		}
	}
	f.nextID++
	reg.ID = f.nextID
	f.regs = append(f.regs, *reg)
	return nil
}

func (f *fakeRepo) ListByEvent(eventID uint) ([]Registration, error) {
	var out []Registration
	for _, r := range f.regs {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountByEvent(eventID uint) (int64, error) {
	regs, _ := f.ListByEvent(eventID)
	return int64(len(regs)), nil
}

func (f *fakeRepo) Delete(eventID uint, userID uint) error {
	kept := f.regs[:0]
	for _, r := range f.regs {
		if !(r.EventID == eventID && r.UserID != nil && *r.UserID == userID) {
			kept = append(kept, r)
		}
	}
	f.regs = kept
	return nil
}

type fakeEvents map[uint]*event.Event

func (f fakeEvents) GetByID(id uint) (*event.Event, error) {
	e, ok := f[id]
	if !ok {
		return nil, event.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func eventWithStatus(id uint, status event.Status, proposedByID uint) *event.Event {
	return &event.Event{ID: id, Title: "Expo", Status: status.String(), ProposedByID: proposedByID}
}

var attendee = auth.Profile{UserID: 5, Email: "Visitor@Example.com", Role: auth.RoleUser}

func TestRegisterOnlyApprovedEvents(t *testing.T) {
	tests := []struct {
		name    string
		status  event.Status
		wantErr error
	}{
		{"approved accepts registrations", event.StatusApproved, nil},
		{"pending_head rejects", event.StatusPendingHead, event.ErrValidation},
		{"pending_admin rejects", event.StatusPendingAdmin, event.ErrValidation},
		{"rejected rejects", event.StatusRejected, event.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeRepo{}, fakeEvents{1: eventWithStatus(1, tt.status, 10)})
			reg, err := svc.Register(attendee, 1, "Visitor")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && reg.Email != "visitor@example.com" {
				t.Errorf("stored email = %q, not normalized", reg.Email)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := NewService(&fakeRepo{}, fakeEvents{1: eventWithStatus(1, event.StatusApproved, 10)})

	if _, err := svc.Register(attendee, 1, "Visitor"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if _, err := svc.Register(attendee, 1, "Visitor"); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("second Register() error = %v, want ErrAlreadyRegistered", err)
	}
}

func TestTranslateCreateErr(t *testing.T) {
	if err := translateCreateErr(gorm.ErrDuplicatedKey); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("translateCreateErr(duplicated key) = %v, want ErrAlreadyRegistered", err)
	}

	other := errors.New("connection reset")
	if err := translateCreateErr(other); !errors.Is(err, other) {
		t.Fatalf("translateCreateErr(%v) = %v, want the original error", other, err)
	}

	if err := translateCreateErr(nil); err != nil {
		t.Fatalf("translateCreateErr(nil) = %v, want nil", err)
	}
}

func TestListByEventAccess(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, fakeEvents{1: eventWithStatus(1, event.StatusApproved, 10)})
	_, _ = svc.Register(attendee, 1, "Visitor")

	submitter := auth.Profile{UserID: 10, Role: auth.RoleOfficer}
	admin := auth.Profile{UserID: 1, Role: auth.RoleAdmin}
	stranger := auth.Profile{UserID: 99, Role: auth.RoleUser}

	for _, actor := range []auth.Profile{submitter, admin} {
		if _, err := svc.ListByEvent(actor, 1); err != nil {
			t.Errorf("ListByEvent as %s error = %v", actor.Role, err)
		}
	}
	if _, err := svc.ListByEvent(stranger, 1); !errors.Is(err, event.ErrUnauthorized) {
		t.Errorf("stranger ListByEvent error = %v, want ErrUnauthorized", err)
	}
}

func TestUnregister(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, fakeEvents{1: eventWithStatus(1, event.StatusApproved, 10)})
	_, _ = svc.Register(attendee, 1, "Visitor")

	if err := svc.Unregister(attendee, 1); err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}
	if n, _ := repo.CountByEvent(1); n != 0 {
		t.Errorf("registrations after unregister = %d, want 0", n)
	}
}
