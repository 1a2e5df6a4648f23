package ussd

import (
	"sort"

	"github.com/cyberguardng/cyberguard/pkg/filestore"
)

// Flat files backing the code lists
const (
	safeCodesFile = "safe_ussd_codes.txt"
	blacklistFile = "blacklist_ussd.txt"
)

// Lists manages the curatable safe and blacklisted code lists
type Lists struct {
	store *filestore.Store
}

// NewLists creates a list repository over the flat-file store
func NewLists(store *filestore.Store) *Lists {
	return &Lists{store: store}
}

func (l *Lists) loadSet(name string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range l.store.ReadLines(name) {
		set[Normalize(line)] = struct{}{}
	}
	return set
}

// SafeSet returns the normalized safe-code set
func (l *Lists) SafeSet() map[string]struct{} {
	return l.loadSet(safeCodesFile)
}

// BlacklistSet returns the normalized blacklist set
func (l *Lists) BlacklistSet() map[string]struct{} {
	return l.loadSet(blacklistFile)
}

// AddSafe appends a code to the safe list if absent
func (l *Lists) AddSafe(code string) error {
	norm := Normalize(code)
	if _, ok := l.SafeSet()[norm]; ok {
		return nil
	}
	return l.store.AppendLine(safeCodesFile, norm)
}

// AddBlacklist appends a code to the blacklist if absent
func (l *Lists) AddBlacklist(code string) error {
	norm := Normalize(code)
	if _, ok := l.BlacklistSet()[norm]; ok {
		return nil
	}
	return l.store.AppendLine(blacklistFile, norm)
}

// ReplaceSafe rewrites the safe list with the given codes, sorted
func (l *Lists) ReplaceSafe(codes map[string]struct{}) error {
	sorted := make([]string, 0, len(codes))
	for c := range codes {
		sorted = append(sorted, c)
	}
	sort.Strings(sorted)
	return l.store.WriteLines(safeCodesFile, sorted)
}
