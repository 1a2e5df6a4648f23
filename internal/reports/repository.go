package reports

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/cyberguardng/cyberguard/pkg/filestore"
)

const (
	reportsFile       = "community_reports.json"
	mobileReportsFile = "mobile_reports.jsonl"
)

// Repository persists reports to the flat-file store. The collection is
// read and rewritten whole on every mutation.
type Repository struct {
	store *filestore.Store
}

// NewRepository creates a report repository
func NewRepository(store *filestore.Store) *Repository {
	return &Repository{store: store}
}

// List returns every community report
func (r *Repository) List() []Report {
	var all []Report
	r.store.ReadJSON(reportsFile, &all)
	return all
}

// Append adds a report to the collection
func (r *Repository) Append(report Report) error {
	all := append(r.List(), report)
	return r.store.WriteJSON(reportsFile, all)
}

// Get returns a report by id
func (r *Repository) Get(id uuid.UUID) (*Report, bool) {
	for _, report := range r.List() {
		if report.ID == id {
			return &report, true
		}
	}
	return nil, false
}

// Update replaces a report by id
func (r *Repository) Update(report Report) error {
	all := r.List()
	for i := range all {
		if all[i].ID == report.ID {
			all[i] = report
			return r.store.WriteJSON(reportsFile, all)
		}
	}
	return ErrNotFound
}

// Count returns the number of community reports
func (r *Repository) Count() int {
	return len(r.List())
}

// AppendMobile appends a mobile report to the JSONL log
func (r *Repository) AppendMobile(report MobileReport) error {
	return r.store.AppendJSONL(mobileReportsFile, report)
}

// ListMobile returns the parseable mobile reports
func (r *Repository) ListMobile() []MobileReport {
	var out []MobileReport
	for _, raw := range r.store.ReadJSONL(mobileReportsFile) {
		var report MobileReport
		if err := json.Unmarshal(raw, &report); err == nil {
			out = append(out, report)
		}
	}
	return out
}
