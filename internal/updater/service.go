package updater

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cyberguardng/cyberguard/internal/curation"
	"github.com/cyberguardng/cyberguard/internal/ussd"
	"github.com/cyberguardng/cyberguard/pkg/config"
	"github.com/cyberguardng/cyberguard/pkg/filestore"
	"github.com/cyberguardng/cyberguard/pkg/logger"
	"github.com/cyberguardng/cyberguard/pkg/validation"
)

// Flat files owned by the updater
const (
	manualSourcesFile = "manual_sources.txt"
	statsFile         = "update_stats.json"
	lastUpdateFile    = "last_update.txt"
)

const maxCodeLength = 50

// ErrTooSoon is returned when an unforced update runs inside the interval gate
var ErrTooSoon = errors.New("updater: last update ran recently")

// CuratedLister exposes the curated database to the updater
type CuratedLister interface {
	List() []curation.CuratedCode
}

// SafeList is the safe-code list the updater maintains
type SafeList interface {
	SafeSet() map[string]struct{}
	ReplaceSafe(codes map[string]struct{}) error
}

// Service merges safe codes from the curated database, manual sources and
// remote URLs into the safe list
type Service struct {
	store    *filestore.Store
	curated  CuratedLister
	lists    SafeList
	interval time.Duration
	urls     []string
	agent    string
	client   *http.Client
	now      func() time.Time
}

// NewService creates an updater service
func NewService(store *filestore.Store, curated CuratedLister, lists SafeList, cfg *config.UpdaterConfig) *Service {
	return &Service{
		store:    store,
		curated:  curated,
		lists:    lists,
		interval: time.Duration(cfg.IntervalHours) * time.Hour,
		urls:     cfg.SourceURLs,
		agent:    cfg.UserAgent,
		client:   &http.Client{Timeout: 10 * time.Second},
		now:      time.Now,
	}
}

// ValidCode reports whether a candidate code may enter the safe list
func ValidCode(code string) bool {
	return len(code) <= maxCodeLength && validation.IsUSSDCode(code)
}

// Update merges every source into the safe list. Unforced runs inside the
// interval gate return ErrTooSoon without touching any file.
func (s *Service) Update(ctx context.Context, force bool) (*UpdateStats, error) {
	if !force && !s.due() {
		return nil, ErrTooSoon
	}

	existing := s.lists.SafeSet()
	merged := make(map[string]struct{}, len(existing))
	for c := range existing {
		merged[c] = struct{}{}
	}

	stats := &UpdateStats{}
	s.mergeCurated(merged)
	stats.SourcesChecked++

	for _, url := range append(s.urls, s.ManualSources()...) {
		stats.SourcesChecked++
		codes, err := s.fetchSource(ctx, url)
		if err != nil {
			logger.Warn("Source fetch failed", zap.String("url", url), zap.Error(err))
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", url, err))
			continue
		}
		mergeValid(merged, codes)
	}

	return s.finish(stats, existing, merged)
}

// UpdateFromCurated merges only the curated database into the safe list
func (s *Service) UpdateFromCurated(ctx context.Context) (*UpdateStats, error) {
	existing := s.lists.SafeSet()
	merged := make(map[string]struct{}, len(existing))
	for c := range existing {
		merged[c] = struct{}{}
	}

	stats := &UpdateStats{SourcesChecked: 1}
	s.mergeCurated(merged)
	return s.finish(stats, existing, merged)
}

func (s *Service) finish(stats *UpdateStats, existing, merged map[string]struct{}) (*UpdateStats, error) {
	if err := s.lists.ReplaceSafe(merged); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	stats.LastUpdate = now.Format(time.RFC3339)
	stats.TotalCodes = len(merged)
	stats.NewCodes = len(merged) - len(existing)

	if err := s.store.WriteJSON(statsFile, stats); err != nil {
		return nil, err
	}
	if err := s.store.WriteString(lastUpdateFile, stats.LastUpdate); err != nil {
		return nil, err
	}

	logger.Info("Safe list updated",
		zap.Int("total_codes", stats.TotalCodes),
		zap.Int("new_codes", stats.NewCodes),
		zap.Int("sources_checked", stats.SourcesChecked),
	)
	return stats, nil
}

func (s *Service) mergeCurated(merged map[string]struct{}) {
	for _, c := range s.curated.List() {
		norm := ussd.Normalize(c.Code)
		if ValidCode(norm) {
			merged[norm] = struct{}{}
		}
	}
}

func mergeValid(merged map[string]struct{}, codes []string) {
	for _, c := range codes {
		norm := ussd.Normalize(c)
		if ValidCode(norm) {
			merged[norm] = struct{}{}
		}
	}
}

// fetchSource downloads a source URL and parses it as either a JSON string
// array or one-code-per-line text
func (s *Service) fetchSource(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.agent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var codes []string
	if err := json.Unmarshal(body, &codes); err == nil {
		return codes, nil
	}
	for _, line := range strings.Split(string(body), "\n") {
		if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
			codes = append(codes, line)
		}
	}
	return codes, nil
}

// due reports whether the interval gate has elapsed since the last update
func (s *Service) due() bool {
	raw := s.store.ReadString(lastUpdateFile)
	if raw == "" {
		return true
	}
	last, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return true
	}
	return s.now().Sub(last) >= s.interval
}

// Stats returns the persisted stats of the last update run
func (s *Service) Stats() *UpdateStats {
	var stats UpdateStats
	s.store.ReadJSON(statsFile, &stats)
	if stats.LastUpdate == "" {
		stats.LastUpdate = "never"
	}
	return &stats
}

// ManualSources returns the manually registered source URLs
func (s *Service) ManualSources() []string {
	var urls []string
	for _, line := range s.store.ReadLines(manualSourcesFile) {
		if !strings.HasPrefix(line, "#") {
			urls = append(urls, line)
		}
	}
	return urls
}

// manualSource is validated before a URL enters the sources file
type manualSource struct {
	URL string `validate:"required,url"`
}

// AddManualSource registers a new source URL, ignoring duplicates
func (s *Service) AddManualSource(url string) error {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("updater: invalid source URL %q", url)
	}
	if err := validation.ValidateStruct(manualSource{URL: url}); err != nil {
		return fmt.Errorf("updater: invalid source URL %q: %w", url, err)
	}
	for _, existing := range s.ManualSources() {
		if existing == url {
			return nil
		}
	}
	return s.store.AppendLine(manualSourcesFile, url)
}
