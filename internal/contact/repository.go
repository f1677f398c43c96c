package contact

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrMessageNotFound = errors.New("contact message not found")
	ErrReplyNotFound   = errors.New("reply not found")
)

type Repository interface {
	CreateMessage(m *Message) error
	GetMessageByID(id uint) (*Message, error)
	ListMessages(limit, offset int, unreadOnly bool) ([]Message, int64, error)
	MarkMessageRead(id uint) error

	CreateReply(r *Reply) error
	ListRepliesByEmail(email string) ([]Reply, error)
	MarkReplyRead(id uint, email string) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) CreateMessage(m *Message) error {
	return r.db.Create(m).Error
}

func (r *repository) GetMessageByID(id uint) (*Message, error) {
	var m Message
	err := r.db.First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) ListMessages(limit, offset int, unreadOnly bool) ([]Message, int64, error) {
	var messages []Message
	var total int64

	query := r.db.Model(&Message{})
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error

	return messages, total, err
}

func (r *repository) MarkMessageRead(id uint) error {
	res := r.db.Model(&Message{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *repository) CreateReply(reply *Reply) error {
	return r.db.Create(reply).Error
}

func (r *repository) ListRepliesByEmail(email string) ([]Reply, error) {
	var replies []Reply
	err := r.db.
		Where("recipient_email = ?", email).
		Order("sent_at DESC").
		Find(&replies).Error
	return replies, err
}

// MarkReplyRead is scoped to the recipient so users can only acknowledge
// replies addressed to them.
func (r *repository) MarkReplyRead(id uint, email string) error {
	res := r.db.Model(&Reply{}).
		Where("id = ? AND recipient_email = ?", id, email).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReplyNotFound
	}
	return nil
}
