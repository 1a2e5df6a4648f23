package curation

import (
	"strings"

	"github.com/cyberguardng/cyberguard/pkg/filestore"
)

const curatedFile = "curated_codes.json"

// Repository persists curated codes as a whole-file JSON array
type Repository struct {
	store *filestore.Store
}

// NewRepository creates a curated-code repository
func NewRepository(store *filestore.Store) *Repository {
	return &Repository{store: store}
}

// normalizeCode uppercases and strips spacing for duplicate detection
func normalizeCode(code string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(code), " ", ""))
}

// List returns every curated code
func (r *Repository) List() []CuratedCode {
	var codes []CuratedCode
	r.store.ReadJSON(curatedFile, &codes)
	return codes
}

// Contains reports whether a code is already curated
func (r *Repository) Contains(code string) bool {
	norm := normalizeCode(code)
	for _, c := range r.List() {
		if normalizeCode(c.Code) == norm {
			return true
		}
	}
	return false
}

// Append adds a curated code
func (r *Repository) Append(code CuratedCode) error {
	return r.store.WriteJSON(curatedFile, append(r.List(), code))
}

// Replace rewrites the whole collection
func (r *Repository) Replace(codes []CuratedCode) error {
	return r.store.WriteJSON(curatedFile, codes)
}
