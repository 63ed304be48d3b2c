package reports

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleListingRows() []ListingReportRow {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []ListingReportRow{
		{ID: 1, OwnerEmail: "landlord@example.com", OwnerRole: "landlord", City: "Springfield", State: "IL", Bedrooms: 2, Price: 1400, IsActive: true, IsFeatured: false, CreatedAt: created},
		{ID: 2, OwnerEmail: "agent@example.com", OwnerRole: "agent", City: "Shelbyville", State: "IL", Bedrooms: 3, Price: 1900, IsActive: true, IsFeatured: true, CreatedAt: created},
	}
}

func TestExportListingsCSV(t *testing.T) {
	exporter := NewReportExporter()

	data, filename, contentType, err := exporter.Export(ReportTypeListings, FormatCSV, ReportData{Listings: sampleListingRows()})
	require.NoError(t, err)
	assert.Equal(t, contentTypeCSV, contentType)
	assert.True(t, strings.HasPrefix(filename, "listings_report_"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, listingHeaders, records[0])
	assert.Equal(t, "landlord@example.com", records[1][1])
	assert.Equal(t, "Shelbyville", records[2][3])
}

func TestExportInvitesCSV(t *testing.T) {
	exporter := NewReportExporter()

	rows := []InviteReportRow{
		{ID: 1, SenderEmail: "agent@example.com", TenantEmail: "tenant@example.com", ListingID: 4, Status: "pending", CreatedAt: time.Now()},
	}
	data, _, _, err := exporter.Export(ReportTypeInvites, FormatCSV, ReportData{Invites: rows})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "pending", records[1][4])
}

func TestExportEmptyReportStillHasHeaders(t *testing.T) {
	exporter := NewReportExporter()

	data, _, _, err := exporter.Export(ReportTypeAuditLogs, FormatCSV, ReportData{})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestExportUnknownTypeAndFormat(t *testing.T) {
	exporter := NewReportExporter()

	_, _, _, err := exporter.Export("payments", FormatCSV, ReportData{})
	assert.Error(t, err)

	_, _, _, err = exporter.Export(ReportTypeListings, "xml", ReportData{})
	assert.Error(t, err)
}

func TestExportPDFAndExcelProduceBytes(t *testing.T) {
	exporter := NewReportExporter()
	input := ReportData{Listings: sampleListingRows()}

	pdfBytes, _, contentType, err := exporter.Export(ReportTypeListings, FormatPDF, input)
	require.NoError(t, err)
	assert.Equal(t, contentTypePDF, contentType)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))

	xlsxBytes, _, contentType, err := exporter.Export(ReportTypeListings, FormatExcel, input)
	require.NoError(t, err)
	assert.Equal(t, contentTypeExcel, contentType)
	assert.NotEmpty(t, xlsxBytes)
}

func TestGetDateRange(t *testing.T) {
	tests := []struct {
		name    string
		preset  string
		start   string
		end     string
		wantErr bool
	}{
		{"weekly", DateRangeWeekly, "", "", false},
		{"monthly", DateRangeMonthly, "", "", false},
		{"custom ok", DateRangeCustom, "2026-08-01", "2026-08-15", false},
		{"custom reversed", DateRangeCustom, "2026-08-15", "2026-08-01", true},
		{"custom malformed", DateRangeCustom, "08/01/2026", "2026-08-15", true},
		{"unknown preset", "yearly", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := GetDateRange(tt.preset, tt.start, tt.end)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("GetDateRange(%q) expected error, got none", tt.preset)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetDateRange(%q) unexpected error: %v", tt.preset, err)
			}
			if !end.After(start) {
				t.Errorf("GetDateRange(%q) window not positive: %v .. %v", tt.preset, start, end)
			}
		})
	}
}

func TestCustomRangeIncludesWholeEndDay(t *testing.T) {
	start, end, err := GetDateRange(DateRangeCustom, "2026-08-01", "2026-08-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC), end)
}
