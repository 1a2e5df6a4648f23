package curation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cyberguardng/cyberguard/internal/reports"
	"github.com/cyberguardng/cyberguard/pkg/logger"
)

var (
	// ErrDuplicate is returned when a code is already curated
	ErrDuplicate = errors.New("code already exists in database")
	// ErrNotFound is returned when a code is not in the database
	ErrNotFound = errors.New("code not found in database")
	// ErrNotUSSDReport is returned when approving a non-USSD report
	ErrNotUSSDReport = errors.New("not a USSD report")
)

// SafeList receives curated codes so scoring sees them immediately
type SafeList interface {
	AddSafe(code string) error
}

// ReportModeration is the slice of the reports service curation needs
type ReportModeration interface {
	PendingUSSD(ctx context.Context) []reports.Report
	Get(ctx context.Context, id uuid.UUID) (*reports.Report, bool)
	MarkVerified(ctx context.Context, id uuid.UUID) (*reports.Report, error)
	MarkRejected(ctx context.Context, id uuid.UUID) (*reports.Report, error)
}

// Service implements manual curation of the trusted code database
type Service struct {
	repo    *Repository
	lists   SafeList
	reports ReportModeration
	now     func() time.Time
}

// NewService creates a curation service
func NewService(repo *Repository, lists SafeList, moderation ReportModeration) *Service {
	return &Service{repo: repo, lists: lists, reports: moderation, now: time.Now}
}

// Stats summarizes the curated database and pending workload
func (s *Service) Stats(ctx context.Context) *Stats {
	codes := s.repo.List()

	bankCodes := 0
	for _, c := range codes {
		if c.Type == "bank" {
			bankCodes++
		}
	}

	return &Stats{
		TotalCodes:     len(codes),
		VerifiedCodes:  len(codes),
		BankCodes:      bankCodes,
		PendingReports: len(s.reports.PendingUSSD(ctx)),
	}
}

// List returns every curated code
func (s *Service) List(_ context.Context) []CuratedCode {
	return s.repo.List()
}

// PendingReports returns the USSD reports awaiting moderation
func (s *Service) PendingReports(ctx context.Context) []reports.Report {
	return s.reports.PendingUSSD(ctx)
}

// Add curates a single code and mirrors it onto the safe list
func (s *Service) Add(_ context.Context, req *AddRequest, addedBy string) (*CuratedCode, error) {
	if s.repo.Contains(req.Code) {
		return nil, ErrDuplicate
	}

	code := CuratedCode{
		Code:        req.Code,
		Type:        req.Type,
		Provider:    req.Provider,
		Description: req.Description,
		Reference:   req.Reference,
		AddedBy:     addedBy,
		Timestamp:   s.now(),
		Verified:    true,
	}
	if err := s.repo.Append(code); err != nil {
		return nil, err
	}
	if err := s.lists.AddSafe(req.Code); err != nil {
		return nil, err
	}

	logger.Info("Added curated code", zap.String("code", req.Code))
	return &code, nil
}

// BulkAdd curates multiple codes, skipping duplicates. Returns the number added.
func (s *Service) BulkAdd(_ context.Context, req *BulkAddRequest, addedBy string) (int, error) {
	added := 0
	for _, entry := range req.Codes {
		if s.repo.Contains(entry.Code) {
			continue
		}

		codeType := entry.Type
		if codeType == "" {
			codeType = "other"
		}
		provider := entry.Provider
		if provider == "" {
			provider = "Unknown"
		}

		code := CuratedCode{
			Code:        entry.Code,
			Type:        codeType,
			Provider:    provider,
			Description: entry.Description,
			Reference:   "bulk_import",
			AddedBy:     addedBy,
			Timestamp:   s.now(),
			Verified:    true,
		}
		if err := s.repo.Append(code); err != nil {
			return added, err
		}
		if err := s.lists.AddSafe(entry.Code); err != nil {
			return added, err
		}
		added++
	}

	logger.Info("Bulk added curated codes", zap.Int("count", added))
	return added, nil
}

// ApproveReport promotes a pending USSD report into the curated database
// and marks it Verified
func (s *Service) ApproveReport(ctx context.Context, id uuid.UUID) error {
	report, ok := s.reports.Get(ctx, id)
	if !ok {
		return reports.ErrNotFound
	}
	if report.Type != "ussd" {
		return ErrNotUSSDReport
	}

	if !s.repo.Contains(report.Content) {
		code := CuratedCode{
			Code:        report.Content,
			Type:        "community_verified",
			Provider:    "Community Verified",
			Description: fmt.Sprintf("Verified from community report by %s", report.Username),
			Reference:   "community_report",
			AddedBy:     report.Username,
			Timestamp:   s.now(),
			Verified:    true,
		}
		if err := s.repo.Append(code); err != nil {
			return err
		}
		if err := s.lists.AddSafe(report.Content); err != nil {
			return err
		}
	}

	if _, err := s.reports.MarkVerified(ctx, id); err != nil {
		return err
	}

	logger.Info("Approved community report", zap.String("content", report.Content))
	return nil
}

// RejectReport marks a pending report Rejected
func (s *Service) RejectReport(ctx context.Context, id uuid.UUID) error {
	_, err := s.reports.MarkRejected(ctx, id)
	return err
}

// Delete removes a curated code by exact normalized match
func (s *Service) Delete(_ context.Context, code string) error {
	all := s.repo.List()
	norm := normalizeCode(code)

	filtered := make([]CuratedCode, 0, len(all))
	for _, c := range all {
		if normalizeCode(c.Code) != norm {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == len(all) {
		return ErrNotFound
	}

	if err := s.repo.Replace(filtered); err != nil {
		return err
	}
	logger.Info("Deleted curated code", zap.String("code", code))
	return nil
}

// Export renders the curated database as json, csv or txt
func (s *Service) Export(_ context.Context, format string) ([]byte, string, error) {
	codes := s.repo.List()

	switch format {
	case "json":
		raw, err := json.MarshalIndent(codes, "", "  ")
		return raw, "application/json", err

	case "csv":
		var b strings.Builder
		b.WriteString("code,type,provider,description,reference,added_by,timestamp\n")
		for _, c := range codes {
			row := []string{
				c.Code,
				c.Type,
				csvField(c.Provider),
				csvField(strings.ReplaceAll(c.Description, "\n", " ")),
				csvField(c.Reference),
				csvField(c.AddedBy),
				c.Timestamp.Format(time.RFC3339),
			}
			for i, f := range row {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString(`"` + f + `"`)
			}
			b.WriteByte('\n')
		}
		return []byte(b.String()), "text/csv", nil

	case "txt":
		var b strings.Builder
		for _, c := range codes {
			fmt.Fprintf(&b, "%s - %s (%s)\n", c.Code, c.Provider, c.Type)
		}
		return []byte(b.String()), "text/plain", nil
	}

	return nil, "", fmt.Errorf("unsupported format: %s", format)
}

func csvField(s string) string {
	return strings.ReplaceAll(s, ",", ";")
}
