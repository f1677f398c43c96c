package registration

import (
	"errors"

	"gorm.io/gorm"
)

var ErrAlreadyRegistered = errors.New("already registered for this event")

type Repository interface {
	Create(reg *Registration) error
	ListByEvent(eventID uint) ([]Registration, error)
	CountByEvent(eventID uint) (int64, error)
	Delete(eventID uint, userID uint) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create relies on the (event_id, email) unique index; a concurrent
// duplicate surfaces as a key violation rather than slipping past a
// read-then-insert check.
func (r *repository) Create(reg *Registration) error {
	return translateCreateErr(r.db.Create(reg).Error)
}

func translateCreateErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyRegistered
	}
	return err
}

func (r *repository) ListByEvent(eventID uint) ([]Registration, error) {
	var regs []Registration
	err := r.db.
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&regs).Error
	return regs, err
}

func (r *repository) CountByEvent(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *repository) Delete(eventID uint, userID uint) error {
	return r.db.
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&Registration{}).Error
}
