package reports

import "time"

const (
	ReportTypeEvents        = "events"
	ReportTypeRegistrations = "registrations"
	ReportTypeUsers         = "users"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// EventReportRow is one event with its approval outcome.
type EventReportRow struct {
	ID         uint
	Title      string
	EventType  string
	Location   string
	EventDate  string
	EventTime  string
	ProposedBy string
	Status     string
	ApprovedAt *time.Time
	RejectedAt *time.Time
	CreatedAt  time.Time
}

// RegistrationReportRow is one registrant joined with its event.
type RegistrationReportRow struct {
	ID           uint
	EventID      uint
	EventTitle   string
	FullName     string
	Email        string
	RegisteredAt time.Time
}

// UserReportRow is one portal account.
type UserReportRow struct {
	ID        uint
	FullName  string
	Email     string
	Role      string
	CreatedAt time.Time
}

// ReportData carries the rows for whichever report was requested.
type ReportData struct {
	Events        []EventReportRow
	Registrations []RegistrationReportRow
	Users         []UserReportRow
}
