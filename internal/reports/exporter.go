package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportExporter renders a report into a downloadable document. It returns
// the raw bytes, a suggested filename and the content type.
type ReportExporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

func (e *reportExporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeEvents:
		return e.exportEventsByFormat(format, timestamp, data.Events)
	case ReportTypeRegistrations:
		return e.exportRegistrationsByFormat(format, timestamp, data.Registrations)
	case ReportTypeUsers:
		return e.exportUsersByFormat(format, timestamp, data.Users)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

//// ============================
/// EVENTS EXPORTS
//// ============================

func (e *reportExporter) exportEventsByFormat(format, timestamp string, rows []EventReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportEventsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("events_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportEventsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("events_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportEventsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("events_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for events: %s", format)
	}
}

func (e *reportExporter) exportEventsCSV(rows []EventReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Type", "Location", "Date", "Time", "Proposed By", "Status", "Approved At", "Rejected At", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		approvedAt := ""
		if r.ApprovedAt != nil {
			approvedAt = r.ApprovedAt.Format("2006-01-02 15:04:05")
		}
		rejectedAt := ""
		if r.RejectedAt != nil {
			rejectedAt = r.RejectedAt.Format("2006-01-02 15:04:05")
		}

		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Title,
			r.EventType,
			r.Location,
			r.EventDate,
			r.EventTime,
			r.ProposedBy,
			r.Status,
			approvedAt,
			rejectedAt,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportEventsExcel(rows []EventReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Events"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Title", "Type", "Location", "Date", "Time", "Proposed By", "Status", "Approved At", "Rejected At", "Created At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		approvedAt := ""
		if r.ApprovedAt != nil {
			approvedAt = r.ApprovedAt.Format("2006-01-02 15:04:05")
		}
		rejectedAt := ""
		if r.RejectedAt != nil {
			rejectedAt = r.RejectedAt.Format("2006-01-02 15:04:05")
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.EventType)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Location)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.EventDate)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.EventTime)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.ProposedBy)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), r.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), approvedAt)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), rejectedAt)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportEventsPDF(rows []EventReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Events Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{12, 50, 25, 35, 22, 15, 50, 28, 30}
	headers := []string{"ID", "Title", "Type", "Location", "Date", "Time", "Proposed By", "Status", "Created At"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		title := r.Title
		if len(title) > 35 {
			title = title[:32] + "..."
		}

		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(r.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.EventType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.Location, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.EventDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.EventTime, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.ProposedBy, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[7], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[8], 6, r.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// REGISTRATIONS EXPORTS
//// ============================

func (e *reportExporter) exportRegistrationsByFormat(format, timestamp string, rows []RegistrationReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportRegistrationsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("registrations_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportRegistrationsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("registrations_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportRegistrationsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("registrations_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for registrations: %s", format)
	}
}

func (e *reportExporter) exportRegistrationsCSV(rows []RegistrationReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Event ID", "Event Title", "Full Name", "Email", "Registered At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			strconv.FormatUint(uint64(r.EventID), 10),
			r.EventTitle,
			r.FullName,
			r.Email,
			r.RegisteredAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportRegistrationsExcel(rows []RegistrationReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Registrations"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Event ID", "Event Title", "Full Name", "Email", "Registered At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.EventID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.EventTitle)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.FullName)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.RegisteredAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportRegistrationsPDF(rows []RegistrationReportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Registrations Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{15, 20, 55, 40, 50, 15}
	headers := []string{"ID", "Event", "Event Title", "Full Name", "Email", "Date"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		title := r.EventTitle
		if len(title) > 40 {
			title = title[:37] + "..."
		}

		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(r.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, strconv.FormatUint(uint64(r.EventID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.FullName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.RegisteredAt.Format("01-02"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// USERS EXPORTS
//// ============================

func (e *reportExporter) exportUsersByFormat(format, timestamp string, rows []UserReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportUsersExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("users_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportUsersCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("users_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportUsersPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("users_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for users: %s", format)
	}
}

func (e *reportExporter) exportUsersCSV(rows []UserReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Full Name", "Email", "Role", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.FullName,
			r.Email,
			r.Role,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportUsersExcel(rows []UserReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Users"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Full Name", "Email", "Role", "Created At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.FullName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Role)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportUsersPDF(rows []UserReportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Users Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{15, 50, 60, 25, 40}
	headers := []string{"ID", "Full Name", "Email", "Role", "Created At"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(r.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.FullName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.Role, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.CreatedAt.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
