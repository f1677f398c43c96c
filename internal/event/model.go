package event

import (
	"time"
)

// Event is a proposed activity moving through the approval pipeline before
// public listing.
type Event struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	EventName   string `gorm:"size:255" json:"event_name"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `gorm:"type:text" json:"location"`
	EventType   string `gorm:"size:100;not null" json:"event_type"`

	EventDate string    `gorm:"size:10;not null" json:"date"` // "2006-01-02"
	EventTime string    `gorm:"size:5" json:"time"`           // "15:04"
	FullDate  time.Time `gorm:"not null;index" json:"full_date"`

	ImageURL string `json:"image_url,omitempty"`

	ProposedBy   string `gorm:"size:255;not null" json:"proposed_by"` // submitter email
	ProposedByID uint   `gorm:"not null;index" json:"proposed_by_id"`

	Status          string     `gorm:"size:20;not null;index" json:"status"`
	ReminderSent    bool       `gorm:"default:false;index" json:"reminder_sent"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// CurrentStatus returns the typed status.
func (e *Event) CurrentStatus() Status {
	return Status(e.Status)
}

// SubmitEventRequest carries a new event proposal.
type SubmitEventRequest struct {
	Title       string `json:"title" binding:"required"`
	EventName   string `json:"event_name"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	EventType   string `json:"event_type" binding:"required"`
	EventDate   string `json:"date" binding:"required"` // "2006-01-02"
	EventTime   string `json:"time" binding:"required"` // "15:04"
	ImageURL    string `json:"image_url"`
}

// UpdateEventRequest carries a submitter's edit; the status is untouched.
type UpdateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	EventName   string `json:"event_name"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	EventType   string `json:"event_type" binding:"required"`
	EventDate   string `json:"date" binding:"required"`
	EventTime   string `json:"time" binding:"required"`
	ImageURL    string `json:"image_url"`
}
