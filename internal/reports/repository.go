package reports

import (
	"time"

	"gorm.io/gorm"
)

// ReportRepository collects the rows each report needs. Reads cut across
// feature tables, so queries live here instead of the feature repositories.
type ReportRepository interface {
	GetEvents(start, end time.Time, status string) ([]EventReportRow, error)
	GetRegistrations(start, end time.Time, eventID uint) ([]RegistrationReportRow, error)
	GetUsers(start, end time.Time, role string) ([]UserReportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ReportRepository {
	return &repository{db: db}
}

func (r *repository) GetEvents(start, end time.Time, status string) ([]EventReportRow, error) {
	var rows []EventReportRow
	q := r.db.Table("events").
		Select(`events.id, events.title, events.event_type, events.location,
			events.event_date, events.event_time, events.proposed_by,
			events.status, events.approved_at, events.rejected_at, events.created_at`).
		Where("events.created_at BETWEEN ? AND ?", start, end)

	if status != "" {
		q = q.Where("events.status = ?", status)
	}

	err := q.Order("events.created_at DESC").Scan(&rows).Error
	return rows, err
}

func (r *repository) GetRegistrations(start, end time.Time, eventID uint) ([]RegistrationReportRow, error) {
	var rows []RegistrationReportRow
	q := r.db.Table("registrations").
		Select(`registrations.id, registrations.event_id, events.title AS event_title,
			registrations.full_name, registrations.email,
			registrations.created_at AS registered_at`).
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("registrations.created_at BETWEEN ? AND ?", start, end)

	if eventID != 0 {
		q = q.Where("registrations.event_id = ?", eventID)
	}

	err := q.Order("registrations.created_at DESC").Scan(&rows).Error
	return rows, err
}

func (r *repository) GetUsers(start, end time.Time, role string) ([]UserReportRow, error) {
	var rows []UserReportRow
	q := r.db.Table("users").
		Select("users.id, users.full_name, users.email, users.role, users.created_at").
		Where("users.created_at BETWEEN ? AND ?", start, end)

	if role != "" {
		q = q.Where("users.role = ?", role)
	}

	err := q.Order("users.created_at DESC").Scan(&rows).Error
	return rows, err
}
