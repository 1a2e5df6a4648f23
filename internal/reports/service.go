package reports

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cyberguardng/cyberguard/pkg/logger"
)

// ErrNotFound is returned for unknown report ids
var ErrNotFound = errors.New("report not found")

// ErrInvalidTransition is returned when moderation targets a non-pending report
var ErrInvalidTransition = errors.New("only pending reports can be moderated")

// CodeLists promotes moderated codes onto the safe or blacklist
type CodeLists interface {
	AddSafe(code string) error
	AddBlacklist(code string) error
}

// Service implements community report submission and moderation
type Service struct {
	repo  *Repository
	lists CodeLists
	now   func() time.Time
}

// NewService creates a report service
func NewService(repo *Repository, lists CodeLists) *Service {
	return &Service{repo: repo, lists: lists, now: time.Now}
}

// Submit records a new community report in Pending state
func (s *Service) Submit(_ context.Context, req *SubmitRequest) (*Report, error) {
	location := req.Location
	if location == "" {
		location = "Unknown"
	}
	username := req.Username
	if username == "" {
		username = "Anonymous"
	}

	lat, lon := geocode(location)
	report := Report{
		ID:        uuid.New(),
		Type:      req.Type,
		Content:   req.Content,
		Location:  location,
		Username:  username,
		Timestamp: s.now(),
		Status:    StatusPending,
		Lat:       lat,
		Lon:       lon,
	}

	if err := s.repo.Append(report); err != nil {
		return nil, err
	}

	logger.Info("New report",
		zap.String("type", report.Type),
		zap.String("location", report.Location),
	)
	return &report, nil
}

// ListByStatus returns reports, optionally filtered by status (case-insensitive)
func (s *Service) ListByStatus(_ context.Context, status string) []Report {
	all := s.repo.List()
	if status == "" {
		return all
	}

	filtered := make([]Report, 0, len(all))
	for _, r := range all {
		if strings.EqualFold(string(r.Status), status) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// PendingUSSD returns pending reports of type "ussd" awaiting curation
func (s *Service) PendingUSSD(_ context.Context) []Report {
	var pending []Report
	for _, r := range s.repo.List() {
		if r.Status == StatusPending && r.Type == "ussd" {
			pending = append(pending, r)
		}
	}
	return pending
}

// Moderate transitions a pending report to Verified or Rejected, optionally
// promoting its content onto the safe or blacklist
func (s *Service) Moderate(_ context.Context, req *ModerateRequest) (*Report, error) {
	report, ok := s.repo.Get(req.ID)
	if !ok {
		return nil, ErrNotFound
	}
	if report.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	switch req.Action {
	case ActionAddSafe:
		if err := s.lists.AddSafe(report.Content); err != nil {
			return nil, err
		}
	case ActionAddBlacklist:
		if err := s.lists.AddBlacklist(report.Content); err != nil {
			return nil, err
		}
	}

	report.Status = req.Status
	if err := s.repo.Update(*report); err != nil {
		return nil, err
	}
	return report, nil
}

// MarkVerified transitions a pending report to Verified (curation approval path)
func (s *Service) MarkVerified(ctx context.Context, id uuid.UUID) (*Report, error) {
	return s.Moderate(ctx, &ModerateRequest{ID: id, Status: StatusVerified})
}

// MarkRejected transitions a pending report to Rejected
func (s *Service) MarkRejected(ctx context.Context, id uuid.UUID) (*Report, error) {
	return s.Moderate(ctx, &ModerateRequest{ID: id, Status: StatusRejected})
}

// Get returns a report by id
func (s *Service) Get(_ context.Context, id uuid.UUID) (*Report, bool) {
	return s.repo.Get(id)
}

// Count returns the number of community reports
func (s *Service) Count() int {
	return s.repo.Count()
}

// SubmitMobile appends a lightweight mobile report to the JSONL log
func (s *Service) SubmitMobile(_ context.Context, req *MobileSubmitRequest) (*MobileReport, error) {
	content := req.Code
	if content == "" {
		content = req.Message
	}
	if content == "" {
		content = "unknown"
	}
	reportType := req.Type
	if reportType == "" {
		reportType = "unknown"
	}

	ts := s.now().Unix()
	h := fnv.New32a()
	h.Write([]byte(content))
	report := MobileReport{
		ID:        (int64(h.Sum32()) + ts) % 1000000,
		Type:      reportType,
		Content:   content,
		Timestamp: ts,
		Source:    "mobile_app",
	}

	if err := s.repo.AppendMobile(report); err != nil {
		return nil, err
	}
	return &report, nil
}

// MobileReports returns the most recent mobile reports, up to limit
func (s *Service) MobileReports(_ context.Context, limit int) []MobileReport {
	all := s.repo.ListMobile()
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all
}
