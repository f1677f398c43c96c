package dashboard

import (
	"errors"

	"github.com/mintevents/event-portal-backend/internal/auth"
	"github.com/mintevents/event-portal-backend/internal/event"
)

var ErrAlreadySaved = errors.New("event already saved to dashboard")

// EventSource is the read-only view of the event store the dashboard needs.
type EventSource interface {
	GetByID(id uint) (*event.Event, error)
}

type Service struct {
	Repo   Repository
	Events EventSource
}

func NewService(r Repository, events EventSource) *Service {
	return &Service{Repo: r, Events: events}
}

// Save copies the event's current fields into the user's dashboard. The
// entry is a point-in-time snapshot, deliberately detached from the source
// event's later lifecycle.
func (s *Service) Save(actor auth.Profile, eventID uint) (*Entry, error) {
	if _, err := s.Repo.GetByUserAndSource(actor.UserID, eventID); err == nil {
		return nil, ErrAlreadySaved
	}

	e, err := s.Events.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		UserID:        actor.UserID,
		SourceEventID: e.ID,
		Title:         e.Title,
		EventName:     e.EventName,
		Description:   e.Description,
		Location:      e.Location,
		EventType:     e.EventType,
		EventDate:     e.EventDate,
		EventTime:     e.EventTime,
		FullDate:      e.FullDate,
		ImageURL:      e.ImageURL,
		StatusAtSave:  e.Status,
	}

	if err := s.Repo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) List(actor auth.Profile) ([]Entry, error) {
	return s.Repo.ListByUser(actor.UserID)
}

func (s *Service) Remove(actor auth.Profile, entryID uint) error {
	return s.Repo.Delete(actor.UserID, entryID)
}
