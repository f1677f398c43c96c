package dashboard

import (
	"errors"

	"gorm.io/gorm"
)

var ErrEntryNotFound = errors.New("dashboard entry not found")

type Repository interface {
	Create(entry *Entry) error
	ListByUser(userID uint) ([]Entry, error)
	GetByUserAndSource(userID, sourceEventID uint) (*Entry, error)
	Delete(userID, entryID uint) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(entry *Entry) error {
	return r.db.Create(entry).Error
}

func (r *repository) ListByUser(userID uint) ([]Entry, error) {
	var entries []Entry
	err := r.db.
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) GetByUserAndSource(userID, sourceEventID uint) (*Entry, error) {
	var entry Entry
	err := r.db.
		Where("user_id = ? AND source_event_id = ?", userID, sourceEventID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Delete is scoped to the owner so one user cannot remove another's entry.
func (r *repository) Delete(userID, entryID uint) error {
	res := r.db.
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}
