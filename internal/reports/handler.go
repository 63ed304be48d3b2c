package reports

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/middleware"
)

type Handler struct {
	service ReportService
}

func NewHandler(service ReportService) *Handler {
	return &Handler{service: service}
}

// Get godoc
// @Summary Run a report; add format=csv|excel|pdf to download
// @Tags reports
// @Security BearerAuth
// @Router /reports/{type} [get]
func (h *Handler) Get(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	req, err := parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// no format means JSON back to the dashboard
	if req.Format == "" {
		data, err := h.service.Get(req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to run report"})
			return
		}
		switch req.Type {
		case ReportTypeListings:
			c.JSON(http.StatusOK, gin.H{"rows": data.Listings})
		case ReportTypeInvites:
			c.JSON(http.StatusOK, gin.H{"rows": data.Invites})
		case ReportTypeAuditLogs:
			c.JSON(http.StatusOK, gin.H{"rows": data.AuditLogs})
		}
		return
	}

	fileBytes, filename, contentType, err := h.service.Export(c.Request.Context(), req, &ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, fileBytes)
}

func parseRequest(c *gin.Context) (ReportRequest, error) {
	reportType := c.Param("type")
	switch reportType {
	case ReportTypeListings, ReportTypeInvites, ReportTypeAuditLogs:
	default:
		return ReportRequest{}, fmt.Errorf("unknown report type: %s", reportType)
	}

	format := c.Query("format")
	switch format {
	case "", FormatCSV, FormatExcel, FormatPDF:
	default:
		return ReportRequest{}, fmt.Errorf("unknown format: %s", format)
	}

	dateRange := c.DefaultQuery("date_range", DateRangeWeekly)
	start, end, err := GetDateRange(dateRange, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return ReportRequest{}, err
	}

	return ReportRequest{
		Type:      reportType,
		Format:    format,
		DateRange: dateRange,
		Start:     start,
		End:       end,
	}, nil
}
