package registration

import (
	"time"
)

// Registration is one registrant on an approved event; the reminder job
// iterates these when notifying.
type Registration struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;index:idx_event_email,unique" json:"event_id"`
	FullName  string    `gorm:"size:150" json:"full_name"`
	Email     string    `gorm:"size:255;not null;index:idx_event_email,unique" json:"email"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"` // nil for guest registrations
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Registration) TableName() string {
	return "registrations"
}
