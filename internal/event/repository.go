package event

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository is the persistence surface of the approval pipeline. It is an
// interface so the state machine's service can be tested against a fake.
type Repository interface {
	Create(e *Event) error
	GetByID(id uint) (*Event, error)
	ListByStatus(status Status) ([]Event, error)
	ListByProposer(proposedByID uint) ([]Event, error)
	ListAll(limit, offset int, search string) ([]Event, int64, error)

	// UpdateDetailsIf writes the submitter-editable fields, guarded on the
	// status snapshot the edit was validated against. The status and
	// decision columns are never touched here; it reports whether the row
	// was actually written.
	UpdateDetailsIf(e *Event, from Status) (bool, error)
	Delete(id uint) error

	// UpdateStatusIf is the atomic check-and-apply: a single conditional
	// UPDATE guarded on the expected current status. It reports whether the
	// row was actually transitioned.
	UpdateStatusIf(id uint, from, to Status, at time.Time, rejectionReason string) (bool, error)

	// Reminder job support.
	ListDueReminders(from, to time.Time) ([]Event, error)
	MarkReminderSent(id uint) (bool, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(e *Event) error {
	return r.db.Create(e).Error
}

func (r *repository) GetByID(id uint) (*Event, error) {
	var e Event
	err := r.db.First(&e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) ListByStatus(status Status) ([]Event, error) {
	var events []Event
	err := r.db.
		Where("status = ?", status.String()).
		Order("full_date ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) ListByProposer(proposedByID uint) ([]Event, error) {
	var events []Event
	err := r.db.
		Where("proposed_by_id = ?", proposedByID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *repository) ListAll(limit, offset int, search string) ([]Event, int64, error) {
	var events []Event
	var total int64

	query := r.db.Model(&Event{})
	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", ilike, ilike)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("full_date ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error

	return events, total, err
}

func (r *repository) UpdateDetailsIf(e *Event, from Status) (bool, error) {
	res := r.db.Model(&Event{}).
		Where("id = ? AND status = ?", e.ID, from.String()).
		Updates(map[string]interface{}{
			"title":       e.Title,
			"event_name":  e.EventName,
			"description": e.Description,
			"location":    e.Location,
			"event_type":  e.EventType,
			"event_date":  e.EventDate,
			"event_time":  e.EventTime,
			"full_date":   e.FullDate,
			"image_url":   e.ImageURL,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) Delete(id uint) error {
	return r.db.Delete(&Event{}, id).Error
}

// UpdateStatusIf performs the conditional status write. Concurrent
// approve/reject calls on the same row race here; the store's per-row
// atomicity guarantees exactly one of them matches the WHERE clause.
func (r *repository) UpdateStatusIf(id uint, from, to Status, at time.Time, rejectionReason string) (bool, error) {
	updates := map[string]interface{}{
		"status":     to.String(),
		"updated_at": at,
	}
	switch to {
	case StatusApproved:
		updates["approved_at"] = at
	case StatusRejected, StatusRejectedByHead:
		updates["rejected_at"] = at
		updates["rejection_reason"] = rejectionReason
	}

	res := r.db.Model(&Event{}).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ListDueReminders(from, to time.Time) ([]Event, error) {
	var events []Event
	err := r.db.
		Where("status = ? AND reminder_sent = ? AND full_date >= ? AND full_date < ?",
			StatusApproved.String(), false, from, to).
		Order("full_date ASC").
		Find(&events).Error
	return events, err
}

// MarkReminderSent flips the idempotency flag, guarded so an overlapping
// job run cannot claim the same event twice.
func (r *repository) MarkReminderSent(id uint) (bool, error) {
	res := r.db.Model(&Event{}).
		Where("id = ? AND reminder_sent = ?", id, false).
		Update("reminder_sent", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
