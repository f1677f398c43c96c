package event

import (
	"errors"
	"testing"

	"github.com/mintevents/event-portal-backend/internal/auth"
)

func TestSubmitStatus(t *testing.T) {
	tests := []struct {
		name    string
		actor   auth.Role
		want    Status
		wantErr error
	}{
		{"officer enters at head stage", auth.RoleOfficer, StatusPendingHead, nil},
		{"head skips own stage", auth.RoleHead, StatusPendingAdmin, nil},
		{"admin enters at admin stage", auth.RoleAdmin, StatusPendingAdmin, nil},
		{"plain user cannot submit", auth.RoleUser, "", ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SubmitStatus(tt.actor)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SubmitStatus(%s) error = %v, want %v", tt.actor, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SubmitStatus(%s) = %s, want %s", tt.actor, got, tt.want)
			}
		})
	}
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		action  Action
		actor   auth.Role
		want    Status
		wantErr error
	}{
		{"head approves pending_head", StatusPendingHead, ActionApprove, auth.RoleHead, StatusPendingAdmin, nil},
		{"head rejects pending_head", StatusPendingHead, ActionReject, auth.RoleHead, StatusRejectedByHead, nil},
		{"admin approves pending_admin", StatusPendingAdmin, ActionApprove, auth.RoleAdmin, StatusApproved, nil},
		{"admin rejects pending_admin", StatusPendingAdmin, ActionReject, auth.RoleAdmin, StatusRejected, nil},

		// Stage skipping: the edge exists but requires a different role.
		{"admin cannot act on pending_head", StatusPendingHead, ActionApprove, auth.RoleAdmin, "", ErrUnauthorized},
		{"head cannot act on pending_admin", StatusPendingAdmin, ActionApprove, auth.RoleHead, "", ErrUnauthorized},
		{"officer cannot approve anything", StatusPendingHead, ActionApprove, auth.RoleOfficer, "", ErrUnauthorized},
		{"user cannot reject anything", StatusPendingAdmin, ActionReject, auth.RoleUser, "", ErrUnauthorized},

		// Terminal statuses have no outgoing edges at all.
		{"approved is terminal", StatusApproved, ActionApprove, auth.RoleAdmin, "", ErrInvalidTransition},
		{"rejected is terminal", StatusRejected, ActionApprove, auth.RoleAdmin, "", ErrInvalidTransition},
		{"rejected_by_head is terminal", StatusRejectedByHead, ActionReject, auth.RoleHead, "", ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStatus(tt.current, tt.action, tt.actor)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NextStatus(%s, %s, %s) error = %v, want %v", tt.current, tt.action, tt.actor, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NextStatus(%s, %s, %s) = %s, want %s", tt.current, tt.action, tt.actor, got, tt.want)
			}
		})
	}
}

func TestNextStatusNeverSkipsAdminStage(t *testing.T) {
	// From pending_head, no actor and no action may land on approved
	// directly.
	for _, actor := range []auth.Role{auth.RoleUser, auth.RoleOfficer, auth.RoleHead, auth.RoleAdmin} {
		for _, action := range []Action{ActionApprove, ActionReject} {
			got, err := NextStatus(StatusPendingHead, action, actor)
			if err == nil && got == StatusApproved {
				t.Errorf("NextStatus(pending_head, %s, %s) reached approved without admin review", action, actor)
			}
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := map[Status]bool{
		StatusPendingHead:    false,
		StatusPendingAdmin:   false,
		StatusApproved:       true,
		StatusRejected:       true,
		StatusRejectedByHead: true,
	}
	for s, want := range terminal {
		if got := s.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", s, got, want)
		}
	}
}

func TestCanEdit(t *testing.T) {
	if !CanEdit(StatusPendingHead, 7, 7) {
		t.Error("submitter should edit while pending")
	}
	if CanEdit(StatusPendingHead, 8, 7) {
		t.Error("non-submitter must not edit")
	}
	if CanEdit(StatusApproved, 7, 7) {
		t.Error("terminal events must not be editable")
	}
}

func TestCanDelete(t *testing.T) {
	admin := auth.Profile{UserID: 1, Role: auth.RoleAdmin}
	officer := auth.Profile{UserID: 7, Role: auth.RoleOfficer}

	if !CanDelete(StatusApproved, admin, 99) {
		t.Error("admin should delete any event")
	}
	if !CanDelete(StatusPendingHead, officer, 7) {
		t.Error("submitter should delete their own pending event")
	}
	if CanDelete(StatusApproved, officer, 7) {
		t.Error("submitter must not delete an approved event")
	}
	if CanDelete(StatusPendingHead, officer, 8) {
		t.Error("non-submitter must not delete")
	}
}
