package reports

import (
	"errors"
	"time"

	"github.com/mintevents/event-portal-backend/internal/auth"
	"github.com/mintevents/event-portal-backend/internal/event"
)

// Filters narrows a report to a window and optional dimensions.
type Filters struct {
	Start   time.Time
	End     time.Time
	Status  string
	Role    string
	EventID uint
}

type Service interface {
	// Generate builds the requested report as a downloadable document.
	// Admin only.
	Generate(actor auth.Profile, reportType, format string, filters Filters) ([]byte, string, string, error)
}

type service struct {
	repo     ReportRepository
	exporter ReportExporter
}

func NewService(repo ReportRepository, exporter ReportExporter) Service {
	return &service{repo: repo, exporter: exporter}
}

func (s *service) Generate(actor auth.Profile, reportType, format string, filters Filters) ([]byte, string, string, error) {
	if !actor.Role.IsAdmin() {
		return nil, "", "", event.ErrUnauthorized
	}

	// Default window: everything up to now.
	if filters.Start.IsZero() {
		filters.Start = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if filters.End.IsZero() {
		filters.End = time.Now()
	}

	var data ReportData
	switch reportType {
	case ReportTypeEvents:
		rows, err := s.repo.GetEvents(filters.Start, filters.End, filters.Status)
		if err != nil {
			return nil, "", "", err
		}
		data.Events = rows

	case ReportTypeRegistrations:
		rows, err := s.repo.GetRegistrations(filters.Start, filters.End, filters.EventID)
		if err != nil {
			return nil, "", "", err
		}
		data.Registrations = rows

	case ReportTypeUsers:
		rows, err := s.repo.GetUsers(filters.Start, filters.End, filters.Role)
		if err != nil {
			return nil, "", "", err
		}
		data.Users = rows

	default:
		return nil, "", "", errors.New("unsupported report type: " + reportType)
	}

	return s.exporter.Export(reportType, format, data)
}
