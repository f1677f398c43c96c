package contact

import (
	"time"
)

// Message is a contact-form submission. Correlation with users is purely by
// email address; no account is required to write in.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Message) TableName() string {
	return "contact_messages"
}

// Reply is an admin's answer to a contact message, delivered both in-portal
// (keyed by recipient email) and over email.
type Reply struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	MessageID      uint      `gorm:"not null;index" json:"original_message_id"`
	RecipientEmail string    `gorm:"size:255;not null;index" json:"recipient_email"`
	ReplyText      string    `gorm:"type:text;not null" json:"reply_text"`
	SentBy         uint      `gorm:"not null" json:"sent_by"`
	Read           bool      `gorm:"default:false" json:"read"`
	SentAt         time.Time `gorm:"autoCreateTime" json:"sent_at"`
}

func (Reply) TableName() string {
	return "admin_replies"
}
