package registration

import (
	"strings"

	"github.com/mintevents/event-portal-backend/internal/auth"
	"github.com/mintevents/event-portal-backend/internal/event"
)

// EventSource is the read-only event lookup the registration flow needs.
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

// Register signs the caller up for an approved event. Only publicly listed
// events accept registrations.
func (s *Service) Register(actor auth.Profile, eventID uint, fullName string) (*Registration, error) {
	e, err := s.Events.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if e.CurrentStatus() != event.StatusApproved {
		return nil, event.ErrValidation
	}

	userID := actor.UserID
	reg := &Registration{
		EventID:  eventID,
		FullName: strings.TrimSpace(fullName),
		Email:    strings.ToLower(strings.TrimSpace(actor.Email)),
		UserID:   &userID,
	}

	if err := s.Repo.Create(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// ListByEvent returns the registrant list; restricted to the event's
// submitter, heads and admins.
func (s *Service) ListByEvent(actor auth.Profile, eventID uint) ([]Registration, error) {
	e, err := s.Events.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	if !actor.Role.IsAdmin() && !actor.Role.IsHead() && actor.UserID != e.ProposedByID {
		return nil, event.ErrUnauthorized
	}

	return s.Repo.ListByEvent(eventID)
}

// Unregister removes the caller's own registration.
func (s *Service) Unregister(actor auth.Profile, eventID uint) error {
	return s.Repo.Delete(eventID, actor.UserID)
}
