// Package bankverify checks USSD codes against the CBN and NIBSS registries.
// The registries are fixed lookup tables pending real API access; results
// are cached to a flat file so repeat checks skip the lookup.
package bankverify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cyberguardng/cyberguard/pkg/filestore"
	"github.com/cyberguardng/cyberguard/pkg/logger"
)

const cacheFile = "bank_verification_cache.json"

// Result describes a registry verification outcome
type Result struct {
	Verified  bool      `json:"verified"`
	Source    string    `json:"source"`
	Bank      string    `json:"bank"`
	Timestamp time.Time `json:"timestamp"`
}

// cbnRegistry mirrors the Central Bank of Nigeria shared-code registry
var cbnRegistry = map[string]struct{}{
	"*901#": {}, "*902#": {}, "*909#": {}, "*911#": {}, "*826#": {},
	"*989#": {}, "*945#": {}, "*322#": {}, "*326#": {}, "*329#": {},
	"*737#": {}, "*779#": {}, "*894#": {},
}

// nibssRegistry mirrors the NIBSS settlement-system listing
var nibssRegistry = map[string]struct{}{
	"*901#": {}, "*902#": {}, "*909#": {}, "*826#": {}, "*989#": {}, "*737#": {},
}

var bankNames = map[string]string{
	"*901#": "First Bank", "*902#": "Union Bank", "*909#": "Zenith Bank",
	"*911#": "Fidelity Bank", "*826#": "Sterling Bank", "*989#": "Ecobank",
	"*945#": "GTBank", "*322#": "Access Bank", "*737#": "GTBank USSD",
	"*779#": "QuickBank", "*894#": "VBank",
}

// Service verifies codes against the registries with a file-backed cache
type Service struct {
	store *filestore.Store
	now   func() time.Time
}

// NewService creates a bank verification service
func NewService(store *filestore.Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) readCache() map[string]Result {
	cache := make(map[string]Result)
	s.store.ReadJSON(cacheFile, &cache)
	return cache
}

// Verify checks a code against both registries, consulting the cache first
func (s *Service) Verify(_ context.Context, code string) Result {
	cache := s.readCache()
	if cached, ok := cache[code]; ok {
		return cached
	}

	result := Result{Source: "none", Bank: "unknown", Timestamp: s.now()}

	if _, ok := cbnRegistry[code]; ok {
		result.Verified = true
		result.Source = "cbn"
		result.Bank = BankFor(code)
	} else if _, ok := nibssRegistry[code]; ok {
		result.Verified = true
		result.Source = "nibss"
		result.Bank = BankFor(code)
	}

	cache[code] = result
	if err := s.store.WriteJSON(cacheFile, cache); err != nil {
		logger.Warn("Failed to persist verification cache", zap.Error(err))
	}

	return result
}

// BankFor maps a shared code to its issuing bank
func BankFor(code string) string {
	if name, ok := bankNames[code]; ok {
		return name
	}
	return "Unknown Bank"
}
