package event

import (
	"errors"

	"github.com/mintevents/event-portal-backend/internal/auth"
)

var (
	ErrUnauthorized      = errors.New("actor role does not permit this operation")
	ErrInvalidTransition = errors.New("status change does not follow a legal transition")
	ErrNotFound          = errors.New("event not found")
	ErrValidation        = errors.New("invalid event data")
)

// Status is the governed field of an event. Every status write in the
// codebase goes through NextStatus or SubmitStatus; no call site sets the
// column directly.
type Status string

const (
	StatusPendingHead    Status = "pending_head"
	StatusPendingAdmin   Status = "pending_admin"
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
	StatusRejectedByHead Status = "rejected_by_head"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPendingHead, StatusPendingAdmin, StatusApproved, StatusRejected, StatusRejectedByHead:
		return true
	}
	return false
}

// Terminal statuses accept no further edges.
func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusRejectedByHead:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// edge describes one legal transition of the approval pipeline.
type edge struct {
	to    Status
	actor auth.Role
}

// transitions is the full approval table. Each (current status, action)
// pair has exactly one edge; there is no way to skip a stage, an admin
// cannot act on pending_head and a head cannot act on pending_admin.
var transitions = map[Status]map[Action]edge{
	StatusPendingHead: {
		ActionApprove: {to: StatusPendingAdmin, actor: auth.RoleHead},
		ActionReject:  {to: StatusRejectedByHead, actor: auth.RoleHead},
	},
	StatusPendingAdmin: {
		ActionApprove: {to: StatusApproved, actor: auth.RoleAdmin},
		ActionReject:  {to: StatusRejected, actor: auth.RoleAdmin},
	},
}

// SubmitStatus returns the initial status for a submission by the given
// role. Officers enter the pipeline at the head stage; heads (and admins,
// who outrank them) go straight to the admin stage.
func SubmitStatus(actor auth.Role) (Status, error) {
	switch actor {
	case auth.RoleOfficer:
		return StatusPendingHead, nil
	case auth.RoleHead, auth.RoleAdmin:
		return StatusPendingAdmin, nil
	default:
		return "", ErrUnauthorized
	}
}

// NextStatus resolves the target status for (current, action, actor).
// A current status with no outgoing edge for the action yields
// ErrInvalidTransition; an existing edge whose required role does not match
// the actor yields ErrUnauthorized.
func NextStatus(current Status, action Action, actor auth.Role) (Status, error) {
	edges, ok := transitions[current]
	if !ok {
		return "", ErrInvalidTransition
	}
	e, ok := edges[action]
	if !ok {
		return "", ErrInvalidTransition
	}
	if actor != e.actor {
		return "", ErrUnauthorized
	}
	return e.to, nil
}

// CanEdit reports whether the actor may update an event's fields: only the
// original submitter, and only while the event is still in the pipeline.
func CanEdit(current Status, actorID, proposedByID uint) bool {
	return actorID == proposedByID && !current.Terminal()
}

// CanDelete reports whether the actor may remove the event. Admins always
// can; the submitter can only while the event has not yet been through
// admin approval.
func CanDelete(current Status, actor auth.Profile, proposedByID uint) bool {
	if actor.Role.IsAdmin() {
		return true
	}
	if actor.UserID != proposedByID {
		return false
	}
	return current == StatusPendingHead || current == StatusPendingAdmin
}
