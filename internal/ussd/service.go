package ussd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cyberguardng/cyberguard/internal/bankverify"
	"github.com/cyberguardng/cyberguard/pkg/logger"
)

// bankVerifiedCredit is subtracted from the heuristic score when a registry
// confirms the code
const bankVerifiedCredit = 3

// BankVerifier confirms codes against banking registries
type BankVerifier interface {
	Verify(ctx context.Context, code string) bankverify.Result
}

// Service runs the full USSD check flow: blacklist, cache, safe list,
// pattern scoring and optional online verification
type Service struct {
	lists    *Lists
	cache    ScoreCache
	verifier SourceVerifier
	bank     BankVerifier
}

// NewService creates a USSD check service. verifier and bank may be nil when
// the corresponding feature is disabled.
func NewService(lists *Lists, cache ScoreCache, verifier SourceVerifier, bank BankVerifier) *Service {
	return &Service{lists: lists, cache: cache, verifier: verifier, bank: bank}
}

// Check scores a code. With fullMode the verdict is additionally checked
// against trusted online sources and cached on success.
func (s *Service) Check(ctx context.Context, code string, fullMode bool) *CheckResult {
	norm := Normalize(code)

	if _, blacklisted := s.lists.BlacklistSet()[norm]; blacklisted {
		return &CheckResult{
			Code:    norm,
			Safe:    false,
			Score:   MaxScore,
			Label:   LabelScam,
			Reasons: []string{"Blacklisted"},
		}
	}

	if entry, ok := s.cache.Get(ctx, norm); ok {
		return &CheckResult{
			Code:           norm,
			Safe:           entry.Safe,
			Score:          entry.Score,
			Label:          LabelFor(norm, entry.Score),
			Reasons:        entry.Reasons,
			VerifiedOnline: entry.VerifiedOnline,
			Source:         entry.Source,
			Cached:         true,
		}
	}

	score, reasons := PatternScore(norm)

	if _, inSafeList := s.lists.SafeSet()[norm]; inSafeList {
		result := &CheckResult{
			Code:    norm,
			Safe:    true,
			Score:   score,
			Label:   LabelFor(norm, score),
			Reasons: append(reasons, "In safe list"),
		}
		if fullMode {
			s.verifyAndCache(ctx, norm, result)
		}
		return result
	}

	result := &CheckResult{
		Code:    norm,
		Safe:    score < SafeThreshold,
		Score:   score,
		Label:   LabelFor(norm, score),
		Reasons: reasons,
	}
	if fullMode {
		if verified := s.verifyAndCache(ctx, norm, result); verified {
			result.Safe = true
			result.Reasons = append(result.Reasons, fmt.Sprintf("Verified by %s", result.Source))
		}
	}
	return result
}

func (s *Service) verifyAndCache(ctx context.Context, norm string, result *CheckResult) bool {
	if s.verifier == nil {
		return false
	}
	verified, source := s.verifier.Verify(ctx, norm)
	if !verified {
		return false
	}

	result.VerifiedOnline = true
	result.Source = source

	entry := &CacheEntry{
		Safe:           true,
		Score:          result.Score,
		Reasons:        result.Reasons,
		VerifiedOnline: true,
		Source:         source,
		CheckedAt:      time.Now(),
	}
	if err := s.cache.Set(ctx, norm, entry); err != nil {
		logger.Warn("Failed to cache verdict", zap.String("code", norm), zap.Error(err))
	}
	return true
}

// CheckEnhanced combines the heuristic verdict with registry verification
func (s *Service) CheckEnhanced(ctx context.Context, code string, fullMode bool) (*EnhancedResult, error) {
	if s.bank == nil {
		return nil, ErrEnhancedDisabled
	}

	basic := s.Check(ctx, code, fullMode)
	verification := s.bank.Verify(ctx, basic.Code)

	enhanced := basic.Score
	if verification.Verified {
		enhanced -= bankVerifiedCredit
		if enhanced < 0 {
			enhanced = 0
		}
	}

	return &EnhancedResult{
		CheckResult:   *basic,
		BankVerified:  verification.Verified,
		BankSource:    verification.Source,
		BankName:      verification.Bank,
		EnhancedScore: enhanced,
	}, nil
}

// MobileCheck is the fast path for the mobile app: safe list, then pattern
// score with a trimmed reason list
func (s *Service) MobileCheck(ctx context.Context, code string) *MobileCheckResult {
	norm := Normalize(code)

	if _, ok := s.lists.SafeSet()[norm]; ok {
		return &MobileCheckResult{Safe: true, Reason: "known_safe", Confidence: 95}
	}

	score, reasons := PatternScore(norm)
	if len(reasons) > 3 {
		reasons = reasons[:3]
	}

	confidence := 100 - score*10
	if confidence < 0 {
		confidence = 0
	}

	return &MobileCheckResult{
		Safe:       score < 6,
		Score:      score,
		Reasons:    reasons,
		Confidence: confidence,
	}
}
