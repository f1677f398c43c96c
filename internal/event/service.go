package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mintevents/event-portal-backend/internal/auditlog"
	"github.com/mintevents/event-portal-backend/internal/auth"
	"github.com/mintevents/event-portal-backend/utils"
)

// Service owns the approval pipeline. Every status change in the portal
// goes through Approve/Reject here; handlers and panels never write the
// status column themselves.
type Service struct {
	Repo     Repository
	AuditSvc auditlog.Service
}

func NewService(r Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
	}
}

// ===========================
// Submit
// ===========================

func (s *Service) Submit(req *SubmitEventRequest, actor auth.Profile, ip string) (*Event, error) {
	status, err := SubmitStatus(actor.Role)
	if err != nil {
		s.audit(&actor.UserID, nil, "EVENT_SUBMITTED", map[string]interface{}{
			"title": req.Title,
			"error": "role not permitted",
			"role":  actor.Role.String(),
		}, ip, "failure")
		return nil, err
	}

	fullDate, err := combineDateTime(req.EventDate, req.EventTime)
	if err != nil {
		return nil, err
	}
	if fullDate.Before(time.Now()) {
		return nil, fmt.Errorf("%w: event date is in the past", ErrValidation)
	}

	e := &Event{
		Title:        strings.TrimSpace(req.Title),
		EventName:    strings.TrimSpace(req.EventName),
		Description:  strings.TrimSpace(req.Description),
		Location:     strings.TrimSpace(req.Location),
		EventType:    strings.TrimSpace(req.EventType),
		EventDate:    req.EventDate,
		EventTime:    req.EventTime,
		FullDate:     fullDate,
		ImageURL:     req.ImageURL,
		ProposedBy:   actor.Email,
		ProposedByID: actor.UserID,
		Status:       status.String(),
	}

	if err := s.Repo.Create(e); err != nil {
		s.audit(&actor.UserID, nil, "EVENT_SUBMITTED", map[string]interface{}{
			"title": e.Title,
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.audit(&actor.UserID, &e.ID, "EVENT_SUBMITTED", map[string]interface{}{
		"title":  e.Title,
		"status": e.Status,
	}, ip, "success")

	utils.PublishApprovalUpdate(utils.ApprovalMessage{
		EventID:    e.ID,
		Title:      e.Title,
		Status:     e.Status,
		ActorID:    actor.UserID,
		ActorRole:  actor.Role.String(),
		ProposedBy: e.ProposedByID,
		OccurredAt: time.Now().Unix(),
	})

	return e, nil
}

// ===========================
// Approve / Reject
// ===========================

func (s *Service) Approve(id uint, actor auth.Profile, ip string) (*Event, error) {
	return s.transition(id, ActionApprove, actor, "", ip)
}

func (s *Service) Reject(id uint, actor auth.Profile, reason string, ip string) (*Event, error) {
	return s.transition(id, ActionReject, actor, reason, ip)
}

// transition is the single check-and-apply path. The role and source-state
// checks run against a snapshot, but the write itself is conditional on the
// snapshot status, so a lost race surfaces as a failed transition instead
// of a silent overwrite.
func (s *Service) transition(id uint, action Action, actor auth.Profile, reason, ip string) (*Event, error) {
	auditAction := "EVENT_APPROVED"
	if action == ActionReject {
		auditAction = "EVENT_REJECTED"
	}

	e, err := s.Repo.GetByID(id)
	if err != nil {
		s.audit(&actor.UserID, &id, auditAction, map[string]interface{}{
			"error": "event not found",
		}, ip, "failure")
		return nil, err
	}

	current := e.CurrentStatus()
	next, err := NextStatus(current, action, actor.Role)
	if err != nil {
		s.audit(&actor.UserID, &id, auditAction, map[string]interface{}{
			"title": e.Title,
			"from":  current.String(),
			"role":  actor.Role.String(),
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	now := time.Now()
	applied, err := s.Repo.UpdateStatusIf(id, current, next, now, reason)
	if err != nil {
		return nil, err
	}
	if !applied {
		// The guarded update matched nothing: either the event vanished or a
		// concurrent transition won. Re-resolve to tell the two apart.
		if _, err := s.Repo.GetByID(id); err != nil {
			return nil, err
		}
		s.audit(&actor.UserID, &id, auditAction, map[string]interface{}{
			"title": e.Title,
			"from":  current.String(),
			"error": "concurrent status change",
		}, ip, "failure")
		return nil, ErrInvalidTransition
	}

	e.Status = next.String()
	switch next {
	case StatusApproved:
		e.ApprovedAt = &now
	case StatusRejected, StatusRejectedByHead:
		e.RejectedAt = &now
		e.RejectionReason = reason
	}

	s.audit(&actor.UserID, &id, auditAction, map[string]interface{}{
		"title": e.Title,
		"from":  current.String(),
		"to":    next.String(),
	}, ip, "success")

	utils.PublishApprovalUpdate(utils.ApprovalMessage{
		EventID:    e.ID,
		Title:      e.Title,
		Status:     next.String(),
		ActorID:    actor.UserID,
		ActorRole:  actor.Role.String(),
		ProposedBy: e.ProposedByID,
		OccurredAt: now.Unix(),
	})

	return e, nil
}

// ===========================
// Edit
// ===========================

func (s *Service) Update(id uint, req *UpdateEventRequest, actor auth.Profile, ip string) (*Event, error) {
	e, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	current := e.CurrentStatus()
	if !CanEdit(current, actor.UserID, e.ProposedByID) {
		s.audit(&actor.UserID, &id, "EVENT_UPDATED", map[string]interface{}{
			"title": e.Title,
			"error": "not the submitter or event already finalized",
		}, ip, "failure")
		return nil, ErrUnauthorized
	}

	fullDate, err := combineDateTime(req.EventDate, req.EventTime)
	if err != nil {
		return nil, err
	}

	e.Title = strings.TrimSpace(req.Title)
	e.EventName = strings.TrimSpace(req.EventName)
	e.Description = strings.TrimSpace(req.Description)
	e.Location = strings.TrimSpace(req.Location)
	e.EventType = strings.TrimSpace(req.EventType)
	e.EventDate = req.EventDate
	e.EventTime = req.EventTime
	e.FullDate = fullDate
	if req.ImageURL != "" {
		e.ImageURL = req.ImageURL
	}

	// The write is guarded on the status the edit was validated against, so
	// an approve/reject committed since the read cannot be reverted.
	applied, err := s.Repo.UpdateDetailsIf(e, current)
	if err != nil {
		s.audit(&actor.UserID, &id, "EVENT_UPDATED", map[string]interface{}{
			"title": e.Title,
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}
	if !applied {
		if _, err := s.Repo.GetByID(id); err != nil {
			return nil, err
		}
		s.audit(&actor.UserID, &id, "EVENT_UPDATED", map[string]interface{}{
			"title": e.Title,
			"from":  current.String(),
			"error": "concurrent status change",
		}, ip, "failure")
		return nil, ErrInvalidTransition
	}

	s.audit(&actor.UserID, &id, "EVENT_UPDATED", map[string]interface{}{
		"title": e.Title,
	}, ip, "success")

	return e, nil
}

// ===========================
// Delete
// ===========================

func (s *Service) Delete(id uint, actor auth.Profile, ip string) error {
	e, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}

	if !CanDelete(e.CurrentStatus(), actor, e.ProposedByID) {
		s.audit(&actor.UserID, &id, "EVENT_DELETED", map[string]interface{}{
			"title":  e.Title,
			"status": e.Status,
			"error":  "delete not permitted",
		}, ip, "failure")
		return ErrUnauthorized
	}

	if err := s.Repo.Delete(id); err != nil {
		s.audit(&actor.UserID, &id, "EVENT_DELETED", map[string]interface{}{
			"title": e.Title,
			"error": err.Error(),
		}, ip, "failure")
		return err
	}

	s.audit(&actor.UserID, &id, "EVENT_DELETED", map[string]interface{}{
		"title": e.Title,
	}, ip, "success")

	return nil
}

// ===========================
// Reads
// ===========================

func (s *Service) GetByID(id uint) (*Event, error) {
	return s.Repo.GetByID(id)
}

// ListApproved is the public listing.
func (s *Service) ListApproved() ([]Event, error) {
	return s.Repo.ListByStatus(StatusApproved)
}

// ListPendingForRole returns the actor's approval queue: heads see the
// head stage, admins the admin stage.
func (s *Service) ListPendingForRole(actor auth.Profile) ([]Event, error) {
	switch {
	case actor.Role.IsHead():
		return s.Repo.ListByStatus(StatusPendingHead)
	case actor.Role.IsAdmin():
		return s.Repo.ListByStatus(StatusPendingAdmin)
	default:
		return nil, ErrUnauthorized
	}
}

func (s *Service) ListMine(actor auth.Profile) ([]Event, error) {
	return s.Repo.ListByProposer(actor.UserID)
}

func (s *Service) ListAll(actor auth.Profile, limit, offset int, search string) ([]Event, int64, error) {
	if !actor.Role.IsAdmin() {
		return nil, 0, ErrUnauthorized
	}
	return s.Repo.ListAll(limit, offset, search)
}

// ===========================
// Helpers
// ===========================

func (s *Service) audit(userID *uint, eventID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.AuditSvc == nil {
		return
	}
	_ = s.AuditSvc.LogAction(context.Background(), userID, eventID, action, details, ip, status)
}

// combineDateTime derives the full timestamp stored alongside the separate
// date and time strings the panels submit.
func combineDateTime(date, clock string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrValidation)
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid time format, use HH:MM", ErrValidation)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
