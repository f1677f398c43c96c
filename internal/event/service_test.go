package event

import (
	"errors"
	"testing"
	"time"

	"github.com/mintevents/event-portal-backend/internal/auth"
)

// fakeRepo is an in-memory Repository. UpdateStatusIf mirrors the conditional
// UPDATE: it only applies when the stored status still matches the expected
// one.
type fakeRepo struct {
	events map[uint]*Event
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{events: map[uint]*Event{}, nextID: 1}
}

func (f *fakeRepo) Create(e *Event) error {
	e.ID = f.nextID
	f.nextID++
	cp := *e
	f.events[e.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(id uint) (*Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) ListByStatus(status Status) ([]Event, error) {
	var out []Event
	for _, e := range f.events {
		if e.Status == status.String() {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByProposer(proposedByID uint) ([]Event, error) {
	var out []Event
	for _, e := range f.events {
		if e.ProposedByID == proposedByID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(limit, offset int, search string) ([]Event, int64, error) {
	var out []Event
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) UpdateDetailsIf(e *Event, from Status) (bool, error) {
	stored, ok := f.events[e.ID]
	if !ok || stored.Status != from.String() {
		return false, nil
	}
	stored.Title = e.Title
	stored.EventName = e.EventName
	stored.Description = e.Description
	stored.Location = e.Location
	stored.EventType = e.EventType
	stored.EventDate = e.EventDate
	stored.EventTime = e.EventTime
	stored.FullDate = e.FullDate
	stored.ImageURL = e.ImageURL
	return true, nil
}

func (f *fakeRepo) Delete(id uint) error {
	delete(f.events, id)
	return nil
}

func (f *fakeRepo) UpdateStatusIf(id uint, from, to Status, at time.Time, rejectionReason string) (bool, error) {
	e, ok := f.events[id]
	if !ok || e.Status != from.String() {
		return false, nil
	}
	e.Status = to.String()
	switch to {
	case StatusApproved:
		e.ApprovedAt = &at
	case StatusRejected, StatusRejectedByHead:
		e.RejectedAt = &at
		e.RejectionReason = rejectionReason
	}
	return true, nil
}

func (f *fakeRepo) ListDueReminders(fromT, toT time.Time) ([]Event, error) {
	var out []Event
	for _, e := range f.events {
		if e.Status == StatusApproved.String() && !e.ReminderSent &&
			!e.FullDate.Before(fromT) && !e.FullDate.After(toT) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkReminderSent(id uint) (bool, error) {
	e, ok := f.events[id]
	if !ok || e.ReminderSent {
		return false, nil
	}
	e.ReminderSent = true
	return true, nil
}

var (
	officerActor = auth.Profile{UserID: 10, Email: "officer@example.com", Role: auth.RoleOfficer, IsOfficer: true}
	headActor    = auth.Profile{UserID: 20, Email: "head@example.com", Role: auth.RoleHead, IsHead: true}
	adminActor   = auth.Profile{UserID: 30, Email: "admin@example.com", Role: auth.RoleAdmin, IsAdmin: true}
	userActor    = auth.Profile{UserID: 40, Email: "user@example.com", Role: auth.RoleUser}
)

func submitReq(title string) *SubmitEventRequest {
	future := time.Now().AddDate(0, 1, 0)
	return &SubmitEventRequest{
		Title:     title,
		EventName: title,
		EventDate: future.Format("2006-01-02"),
		EventTime: "18:00",
		Location:  "Main hall",
		EventType: "workshop",
	}
}

func TestSubmitInitialStatusByRole(t *testing.T) {
	tests := []struct {
		name  string
		actor auth.Profile
		want  Status
	}{
		{"officer submission awaits head", officerActor, StatusPendingHead},
		{"head submission awaits admin", headActor, StatusPendingAdmin},
		{"admin submission awaits admin", adminActor, StatusPendingAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeRepo(), nil)
			e, err := svc.Submit(submitReq("Tech Day"), tt.actor, "127.0.0.1")
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			if e.Status != tt.want.String() {
				t.Errorf("initial status = %s, want %s", e.Status, tt.want)
			}
			if e.ProposedByID != tt.actor.UserID {
				t.Errorf("ProposedByID = %d, want %d", e.ProposedByID, tt.actor.UserID)
			}
		})
	}
}

func TestSubmitRejectsPlainUser(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	if _, err := svc.Submit(submitReq("Tech Day"), userActor, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Submit() error = %v, want ErrUnauthorized", err)
	}
}

func TestSubmitRejectsPastDate(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	req := submitReq("Tech Day")
	req.EventDate = "2020-01-01"
	if _, err := svc.Submit(req, officerActor, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("Submit() error = %v, want ErrValidation", err)
	}
}

func TestFullApprovalChain(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	e, err := svc.Submit(submitReq("Hackathon"), officerActor, "")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	e, err = svc.Approve(e.ID, headActor, "")
	if err != nil {
		t.Fatalf("head Approve() error = %v", err)
	}
	if e.Status != StatusPendingAdmin.String() {
		t.Fatalf("after head approval status = %s, want pending_admin", e.Status)
	}

	e, err = svc.Approve(e.ID, adminActor, "")
	if err != nil {
		t.Fatalf("admin Approve() error = %v", err)
	}
	if e.Status != StatusApproved.String() {
		t.Fatalf("after admin approval status = %s, want approved", e.Status)
	}
	if e.ApprovedAt == nil {
		t.Error("ApprovedAt not stamped on approval")
	}
}

func TestHeadRejectionIsTerminal(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	e, _ := svc.Submit(submitReq("Hackathon"), officerActor, "")
	e, err := svc.Reject(e.ID, headActor, "venue conflict", "")
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if e.Status != StatusRejectedByHead.String() {
		t.Fatalf("status = %s, want rejected_by_head", e.Status)
	}
	if e.RejectionReason != "venue conflict" {
		t.Errorf("RejectionReason = %q, want %q", e.RejectionReason, "venue conflict")
	}

	// No further action may touch the event.
	if _, err := svc.Approve(e.ID, adminActor, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Approve after terminal rejection error = %v, want ErrInvalidTransition", err)
	}
}

func TestAdminCannotSkipHeadStage(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	e, _ := svc.Submit(submitReq("Hackathon"), officerActor, "")
	if _, err := svc.Approve(e.ID, adminActor, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("admin acting on pending_head error = %v, want ErrUnauthorized", err)
	}

	stored, _ := repo.GetByID(e.ID)
	if stored.Status != StatusPendingHead.String() {
		t.Errorf("status changed to %s despite rejected action", stored.Status)
	}
}

func TestConcurrentApprovalLosesRace(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	e, _ := svc.Submit(submitReq("Hackathon"), headActor, "")

	// First admin decision wins.
	if _, err := svc.Approve(e.ID, adminActor, ""); err != nil {
		t.Fatalf("first Approve() error = %v", err)
	}

	// The second decision raced on a stale snapshot; the guarded update
	// must refuse it rather than overwrite the terminal status.
	if _, err := svc.Reject(e.ID, adminActor, "late objection", ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second decision error = %v, want ErrInvalidTransition", err)
	}

	stored, _ := repo.GetByID(e.ID)
	if stored.Status != StatusApproved.String() {
		t.Errorf("final status = %s, want approved", stored.Status)
	}
}

func TestApproveMissingEvent(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	if _, err := svc.Approve(999, adminActor, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Approve(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDeletePolicy(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	e, _ := svc.Submit(submitReq("Hackathon"), officerActor, "")

	// A different officer may not delete it.
	other := auth.Profile{UserID: 11, Role: auth.RoleOfficer}
	if err := svc.Delete(e.ID, other, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("foreign delete error = %v, want ErrUnauthorized", err)
	}

	// The submitter may, while still pending.
	if err := svc.Delete(e.ID, officerActor, ""); err != nil {
		t.Fatalf("submitter delete error = %v", err)
	}

	// Once approved, only the admin may remove it.
	e2, _ := svc.Submit(submitReq("Expo"), headActor, "")
	if _, err := svc.Approve(e2.ID, adminActor, ""); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if err := svc.Delete(e2.ID, headActor, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("submitter delete of approved event error = %v, want ErrUnauthorized", err)
	}
	if err := svc.Delete(e2.ID, adminActor, ""); err != nil {
		t.Fatalf("admin delete error = %v", err)
	}
}

func TestListPendingForRole(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	a, _ := svc.Submit(submitReq("Officer event"), officerActor, "")
	b, _ := svc.Submit(submitReq("Head event"), headActor, "")

	headQueue, err := svc.ListPendingForRole(headActor)
	if err != nil {
		t.Fatalf("head queue error = %v", err)
	}
	if len(headQueue) != 1 || headQueue[0].ID != a.ID {
		t.Errorf("head queue = %v, want only event %d", headQueue, a.ID)
	}

	adminQueue, err := svc.ListPendingForRole(adminActor)
	if err != nil {
		t.Fatalf("admin queue error = %v", err)
	}
	if len(adminQueue) != 1 || adminQueue[0].ID != b.ID {
		t.Errorf("admin queue = %v, want only event %d", adminQueue, b.ID)
	}

	if _, err := svc.ListPendingForRole(officerActor); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("officer queue error = %v, want ErrUnauthorized", err)
	}
}

// approvingRepo commits a head approval right after a read, so a caller
// holding the snapshot writes against a fresher status.
type approvingRepo struct {
	*fakeRepo
	approveAfterRead uint
}

func (r *approvingRepo) GetByID(id uint) (*Event, error) {
	e, err := r.fakeRepo.GetByID(id)
	if err == nil && id == r.approveAfterRead {
		r.approveAfterRead = 0
		_, _ = r.fakeRepo.UpdateStatusIf(id, StatusPendingHead, StatusPendingAdmin, time.Now(), "")
	}
	return e, err
}

func TestUpdateCannotRevertConcurrentApproval(t *testing.T) {
	base := newFakeRepo()
	repo := &approvingRepo{fakeRepo: base}
	svc := NewService(repo, nil)

	e, err := svc.Submit(submitReq("Hackathon"), officerActor, "")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// The head's decision lands between the edit's read and its write.
	repo.approveAfterRead = e.ID

	upd := &UpdateEventRequest{
		Title:       "Renamed",
		EventName:   "Renamed",
		Description: "new agenda",
		EventDate:   time.Now().AddDate(0, 2, 0).Format("2006-01-02"),
		EventTime:   "10:00",
		Location:    "Hall B",
		EventType:   "workshop",
	}
	if _, err := svc.Update(e.ID, upd, officerActor, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("racing Update() error = %v, want ErrInvalidTransition", err)
	}

	stored, _ := base.GetByID(e.ID)
	if stored.Status != StatusPendingAdmin.String() {
		t.Errorf("status = %s, want pending_admin preserved", stored.Status)
	}
	if stored.Title != "Hackathon" {
		t.Errorf("fields written despite refused edit: title = %q", stored.Title)
	}
}

func TestUpdateLockedAfterFinalDecision(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	e, _ := svc.Submit(submitReq("Hackathon"), headActor, "")
	if _, err := svc.Approve(e.ID, adminActor, ""); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	upd := &UpdateEventRequest{
		Title:     "Renamed",
		EventName: "Renamed",
		EventDate: time.Now().AddDate(0, 2, 0).Format("2006-01-02"),
		EventTime: "10:00",
		Location:  "Hall B",
		EventType: "workshop",
	}
	if _, err := svc.Update(e.ID, upd, headActor, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Update after approval error = %v, want ErrUnauthorized", err)
	}
}
