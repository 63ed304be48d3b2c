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

// ReportExporter renders report rows into a downloadable format.
type ReportExporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

// Export returns the file bytes, a filename and the content type.
func (e *reportExporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeListings:
		return e.exportListingsByFormat(format, timestamp, data.Listings)
	case ReportTypeInvites:
		return e.exportInvitesByFormat(format, timestamp, data.Invites)
	case ReportTypeAuditLogs:
		return e.exportAuditLogsByFormat(format, timestamp, data.AuditLogs)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

//// ============================
/// LISTINGS EXPORTS
//// ============================

func (e *reportExporter) exportListingsByFormat(format, timestamp string, rows []ListingReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportListingsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("listings_report_%s.xlsx", timestamp), contentTypeExcel, nil
	case FormatCSV:
		data, err := e.exportListingsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("listings_report_%s.csv", timestamp), contentTypeCSV, nil
	case FormatPDF:
		data, err := e.exportListingsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("listings_report_%s.pdf", timestamp), contentTypePDF, nil
	default:
		return nil, "", "", fmt.Errorf("unsupported format for listings: %s", format)
	}
}

const (
	contentTypeCSV   = "text/csv"
	contentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF   = "application/pdf"
)

var listingHeaders = []string{"ID", "Owner Email", "Owner Role", "City", "State", "Bedrooms", "Price", "Active", "Featured", "Created At"}

func (e *reportExporter) exportListingsCSV(rows []ListingReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(listingHeaders); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.OwnerEmail,
			r.OwnerRole,
			r.City,
			r.State,
			strconv.Itoa(r.Bedrooms),
			strconv.FormatFloat(r.Price, 'f', 2, 64),
			strconv.FormatBool(r.IsActive),
			strconv.FormatBool(r.IsFeatured),
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

func (e *reportExporter) exportListingsExcel(rows []ListingReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Listings"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range listingHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.OwnerEmail)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.OwnerRole)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.City)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.State)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Bedrooms)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Price)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.IsActive)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.IsFeatured)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportListingsPDF(rows []ListingReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Listings Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{12, 55, 22, 30, 20, 20, 25, 18, 20, 35}
	for i, h := range listingHeaders {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		cells := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.OwnerEmail,
			r.OwnerRole,
			r.City,
			r.State,
			strconv.Itoa(r.Bedrooms),
			strconv.FormatFloat(r.Price, 'f', 2, 64),
			strconv.FormatBool(r.IsActive),
			strconv.FormatBool(r.IsFeatured),
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// INVITES EXPORTS
//// ============================

var inviteHeaders = []string{"ID", "Sender Email", "Tenant Email", "Listing ID", "Status", "Created At"}

func (e *reportExporter) exportInvitesByFormat(format, timestamp string, rows []InviteReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportInvitesExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("invites_report_%s.xlsx", timestamp), contentTypeExcel, nil
	case FormatCSV:
		data, err := e.exportInvitesCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("invites_report_%s.csv", timestamp), contentTypeCSV, nil
	case FormatPDF:
		data, err := e.exportInvitesPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("invites_report_%s.pdf", timestamp), contentTypePDF, nil
	default:
		return nil, "", "", fmt.Errorf("unsupported format for invites: %s", format)
	}
}

func (e *reportExporter) exportInvitesCSV(rows []InviteReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(inviteHeaders); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.SenderEmail,
			r.TenantEmail,
			strconv.FormatUint(uint64(r.ListingID), 10),
			r.Status,
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

func (e *reportExporter) exportInvitesExcel(rows []InviteReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Invites"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range inviteHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.SenderEmail)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.TenantEmail)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.ListingID)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportInvitesPDF(rows []InviteReportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Invites Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{12, 50, 50, 22, 25, 32}
	for i, h := range inviteHeaders {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		cells := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.SenderEmail,
			r.TenantEmail,
			strconv.FormatUint(uint64(r.ListingID), 10),
			r.Status,
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// AUDIT LOGS EXPORTS
//// ============================

var auditLogHeaders = []string{"ID", "User ID", "User Email", "Action", "Status", "IP Address", "Timestamp", "Details"}

func (e *reportExporter) exportAuditLogsByFormat(format, timestamp string, rows []AuditLogReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportAuditLogsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("audit_logs_report_%s.xlsx", timestamp), contentTypeExcel, nil
	case FormatCSV:
		data, err := e.exportAuditLogsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("audit_logs_report_%s.csv", timestamp), contentTypeCSV, nil
	case FormatPDF:
		data, err := e.exportAuditLogsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("audit_logs_report_%s.pdf", timestamp), contentTypePDF, nil
	default:
		return nil, "", "", fmt.Errorf("unsupported format for audit logs: %s", format)
	}
}

func (e *reportExporter) exportAuditLogsCSV(rows []AuditLogReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(auditLogHeaders); err != nil {
		return nil, err
	}

	for _, r := range rows {
		userID := ""
		if r.UserID != nil {
			userID = strconv.FormatUint(uint64(*r.UserID), 10)
		}

		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			userID,
			r.UserEmail,
			r.Action,
			r.Status,
			r.IPAddress,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Details,
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

func (e *reportExporter) exportAuditLogsExcel(rows []AuditLogReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Audit Logs"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range auditLogHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		if r.UserID != nil {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), *r.UserID)
		}
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.UserEmail)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Action)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.IPAddress)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.Details)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportAuditLogsPDF(rows []AuditLogReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Audit Logs Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{12, 18, 55, 35, 20, 30, 32, 70}
	for i, h := range auditLogHeaders {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		userID := ""
		if r.UserID != nil {
			userID = strconv.FormatUint(uint64(*r.UserID), 10)
		}
		details := r.Details
		if len(details) > 60 {
			details = details[:57] + "..."
		}
		cells := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			userID,
			r.UserEmail,
			r.Action,
			r.Status,
			r.IPAddress,
			r.CreatedAt.Format("2006-01-02 15:04"),
			details,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
