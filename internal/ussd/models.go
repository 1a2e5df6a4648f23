package ussd

import "time"

// Label classifies a scored code
type Label string

const (
	LabelSafe       Label = "SAFE"
	LabelSuspicious Label = "SUSPICIOUS"
	LabelScam       Label = "SCAM"
	LabelUnknown    Label = "UNKNOWN"
)

// CheckResult is the outcome of scoring a USSD code
type CheckResult struct {
	Code           string   `json:"code"`
	Safe           bool     `json:"safe"`
	Score          int      `json:"score"`
	Label          Label    `json:"label"`
	Reasons        []string `json:"reasons"`
	VerifiedOnline bool     `json:"verified_online"`
	Source         string   `json:"source,omitempty"`
	Cached         bool     `json:"cached"`
}

// EnhancedResult augments a CheckResult with registry verification
type EnhancedResult struct {
	CheckResult
	BankVerified  bool   `json:"bank_verified"`
	BankSource    string `json:"bank_source"`
	BankName      string `json:"bank_name"`
	EnhancedScore int    `json:"enhanced_score"`
}

// CacheEntry is a previously computed verdict keyed by normalized code.
// Entries are only invalidated by deleting the cache file (or Redis key).
type CacheEntry struct {
	Safe           bool      `json:"safe"`
	Score          int       `json:"score"`
	Reasons        []string  `json:"reasons"`
	VerifiedOnline bool      `json:"verified_online"`
	Source         string    `json:"source,omitempty"`
	CheckedAt      time.Time `json:"checked_at"`
}

// MobileCheckResult is the trimmed verdict returned to the mobile app
type MobileCheckResult struct {
	Safe       bool     `json:"safe"`
	Score      int      `json:"score"`
	Reason     string   `json:"reason,omitempty"`
	Reasons    []string `json:"reasons,omitempty"`
	Confidence int      `json:"confidence"`
}
