package dashboard

import (
	"time"
)

// Entry is a per-user saved copy of an event. The fields are frozen at save
// time: later edits, status changes or even deletion of the source event do
// not touch the entry.
type Entry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index:idx_user_source,unique" json:"user_id"`
	SourceEventID uint      `gorm:"not null;index:idx_user_source,unique" json:"source_event_id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	EventName     string    `gorm:"size:255" json:"event_name"`
	Description   string    `gorm:"type:text" json:"description"`
	Location      string    `gorm:"type:text" json:"location"`
	EventType     string    `gorm:"size:100" json:"event_type"`
	EventDate     string    `gorm:"size:10" json:"date"`
	EventTime     string    `gorm:"size:5" json:"time"`
	FullDate      time.Time `json:"full_date"`
	ImageURL      string    `json:"image_url,omitempty"`
	StatusAtSave  string    `gorm:"size:20" json:"status_at_save"`
	SavedAt       time.Time `gorm:"autoCreateTime" json:"saved_at"`
}

func (Entry) TableName() string {
	return "dashboard_entries"
}
