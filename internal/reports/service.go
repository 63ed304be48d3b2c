package reports

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/auditlog"
)

// ReportService coordinates repo + exporter and audits every export.
type ReportService interface {
	Get(req ReportRequest) (ReportData, error)
	Export(ctx context.Context, req ReportRequest, userID *uint, ip string) ([]byte, string, string, error)
}

type reportService struct {
	repo     ReportRepository
	exporter ReportExporter
	auditSvc auditlog.Service
}

func NewReportService(repo ReportRepository, exporter ReportExporter, auditSvc auditlog.Service) ReportService {
	return &reportService{
		repo:     repo,
		exporter: exporter,
		auditSvc: auditSvc,
	}
}

func (s *reportService) Get(req ReportRequest) (ReportData, error) {
	var data ReportData
	var err error

	switch req.Type {
	case ReportTypeListings:
		data.Listings, err = s.repo.ListingRows(req.Start, req.End)
	case ReportTypeInvites:
		data.Invites, err = s.repo.InviteRows(req.Start, req.End)
	case ReportTypeAuditLogs:
		data.AuditLogs, err = s.repo.AuditLogRows(req.Start, req.End)
	default:
		return data, fmt.Errorf("unsupported report type: %s", req.Type)
	}

	return data, err
}

func (s *reportService) Export(ctx context.Context, req ReportRequest, userID *uint, ip string) ([]byte, string, string, error) {
	data, err := s.Get(req)
	if err != nil {
		return nil, "", "", err
	}

	fileBytes, filename, contentType, err := s.exporter.Export(req.Type, req.Format, data)
	if err != nil {
		return nil, "", "", err
	}

	if s.auditSvc != nil {
		auditErr := s.auditSvc.LogAction(ctx, userID, "REPORT_EXPORTED", map[string]interface{}{
			"report_type": req.Type,
			"format":      req.Format,
			"filename":    filename,
		}, ip, "success")
		if auditErr != nil {
			log.WithError(auditErr).Warn("audit log write failed")
		}
	}

	return fileBytes, filename, contentType, nil
}
