package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/mintevents/event-portal-backend/internal/auth"
	"github.com/mintevents/event-portal-backend/internal/event"
)

type fakeRepo struct {
	entries map[uint]*Entry
	nextID  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: map[uint]*Entry{}, nextID: 1}
}

func (f *fakeRepo) Create(entry *Entry) error {
	entry.ID = f.nextID
	f.nextID++
	cp := *entry
	f.entries[entry.ID] = &cp
	return nil
}

func (f *fakeRepo) ListByUser(userID uint) ([]Entry, error) {
	var out []Entry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByUserAndSource(userID, sourceEventID uint) (*Entry, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.SourceEventID == sourceEventID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, ErrEntryNotFound
}

func (f *fakeRepo) Delete(userID, entryID uint) error {
	e, ok := f.entries[entryID]
	if !ok || e.UserID != userID {
		return ErrEntryNotFound
	}
	delete(f.entries, entryID)
	return nil
}

// fakeEvents drops events on demand to simulate source deletion.
type fakeEvents struct {
	events map[uint]*event.Event
}

func (f *fakeEvents) GetByID(id uint) (*event.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, event.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func approvedEvent(id uint) *event.Event {
	return &event.Event{
		ID:        id,
		Title:     "Tech Day",
		EventName: "Tech Day 2026",
		Location:  "Main hall",
		EventType: "workshop",
		EventDate: "2026-10-01",
		EventTime: "18:00",
		FullDate:  time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
		Status:    event.StatusApproved.String(),
	}
}

var viewer = auth.Profile{UserID: 5, Email: "viewer@example.com", Role: auth.RoleUser}

func TestSaveSnapshotsEvent(t *testing.T) {
	events := &fakeEvents{events: map[uint]*event.Event{1: approvedEvent(1)}}
	svc := NewService(newFakeRepo(), events)

	entry, err := svc.Save(viewer, 1)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if entry.Title != "Tech Day" || entry.StatusAtSave != event.StatusApproved.String() {
		t.Errorf("snapshot fields = %q/%q", entry.Title, entry.StatusAtSave)
	}
	if entry.SourceEventID != 1 || entry.UserID != viewer.UserID {
		t.Errorf("snapshot keys = event %d, user %d", entry.SourceEventID, entry.UserID)
	}
}

func TestSaveDuplicateRejected(t *testing.T) {
	events := &fakeEvents{events: map[uint]*event.Event{1: approvedEvent(1)}}
	svc := NewService(newFakeRepo(), events)

	if _, err := svc.Save(viewer, 1); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	if _, err := svc.Save(viewer, 1); !errors.Is(err, ErrAlreadySaved) {
		t.Fatalf("second Save() error = %v, want ErrAlreadySaved", err)
	}

	entries, _ := svc.List(viewer)
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1", len(entries))
	}
}

func TestSnapshotSurvivesSourceDeletion(t *testing.T) {
	events := &fakeEvents{events: map[uint]*event.Event{1: approvedEvent(1)}}
	svc := NewService(newFakeRepo(), events)

	if _, err := svc.Save(viewer, 1); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Source event disappears; the saved entry is untouched.
	delete(events.events, 1)

	entries, err := svc.List(viewer)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Tech Day" {
		t.Fatalf("snapshot lost after source deletion: %v", entries)
	}
}

func TestSaveMissingEvent(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeEvents{events: map[uint]*event.Event{}})
	if _, err := svc.Save(viewer, 404); !errors.Is(err, event.ErrNotFound) {
		t.Fatalf("Save(missing) error = %v, want ErrNotFound", err)
	}
}

func TestRemoveScopedToOwner(t *testing.T) {
	events := &fakeEvents{events: map[uint]*event.Event{1: approvedEvent(1)}}
	svc := NewService(newFakeRepo(), events)

	entry, _ := svc.Save(viewer, 1)

	other := auth.Profile{UserID: 6, Role: auth.RoleUser}
	if err := svc.Remove(other, entry.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("foreign Remove() error = %v, want ErrEntryNotFound", err)
	}
	if err := svc.Remove(viewer, entry.ID); err != nil {
		t.Fatalf("owner Remove() error = %v", err)
	}
}
