package ussd

import (
	"fmt"
	"regexp"
	"strings"
)

// Scoring thresholds. The weights below were tuned against field samples;
// they are intentionally kept as literal constants rather than derived.
const (
	MaxScore      = 10
	SafeThreshold = 5 // safe = score < SafeThreshold
)

var (
	formatPattern = regexp.MustCompile(`^\*[\d*#A-Za-z]+#?$`)
	nonDigit      = regexp.MustCompile(`\D`)
	letterPattern = regexp.MustCompile(`[A-Za-z]`)
)

// knownSafeCodes short-circuit scoring entirely: verified Nigerian telco
// and bank service codes.
var knownSafeCodes = map[string]struct{}{
	"*123#": {}, "*123*1#": {}, "*123*1*1#": {}, "*123*2#": {}, "*123*4#": {},
	"*310#": {}, "*311#": {}, "*312#": {}, "*321#": {}, "*131#": {}, "*121#": {},
	"*124#": {}, "*228#": {}, "*901#": {}, "*902#": {}, "*909#": {}, "*911#": {},
	"*826#": {}, "*989#": {}, "*737#": {}, "*199#": {}, "*#21#": {}, "*#61#": {},
	"*#62#": {}, "*#67#": {}, "*#06#": {}, "*244*1#": {}, "*24542#": {},
	"*232#": {}, "*233#": {}, "*322#": {}, "*326#": {}, "*329#": {}, "*565#": {},
	"*126#": {},
}

// safePrefixes cover service menus whose sub-codes vary (e.g. *737*...#)
var safePrefixes = []string{
	"*123", "*310", "*311", "*312", "*323", "*321", "*131", "*404", "*606",
	"*244", "*556", "*121", "*140", "*124", "*126", "*137", "*127", "*129",
	"*130", "*132", "*133", "*228", "*232", "*233", "*229", "*901", "*902",
	"*909", "*911", "*826", "*989", "*737", "*779", "*135", "*136", "*138",
	"*139", "*144", "*#21", "*#61", "*#62", "*#67", "*#06", "*199", "*770",
	"*894", "*329", "*565", "*326", "*24542",
}

var (
	highRiskKeywords   = []string{"bvn", "pin", "password", "passcode", "verif", "auth"}
	mediumRiskKeywords = []string{"account", "confirm", "secure", "update", "validate"}
)

const (
	weightInvalidFormat  = 4
	weightLongDigits     = 6
	weightModerateDigits = 2
	weightHighRisk       = 8
	weightMediumRisk     = 4
	weightManySegments   = 3
	weightRepeating      = 4
	weightLetters        = 2
	weightUnknownPrefix  = 1
	safePrefixCredit     = 2
)

// Normalize strips whitespace from a dialed code
func Normalize(code string) string {
	return strings.ReplaceAll(strings.TrimSpace(code), " ", "")
}

// hasSafePrefix reports whether the code starts with a known service prefix
func hasSafePrefix(code string) bool {
	for _, p := range safePrefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

// PatternScore scores a USSD code against the structural and keyword rule
// table. The returned score is clamped to [0,MaxScore]; reasons are appended
// in rule order. Scoring is a pure function of the input.
func PatternScore(code string) (int, []string) {
	c := Normalize(code)
	if c == "" {
		return MaxScore, []string{"Empty code"}
	}

	if _, ok := knownSafeCodes[c]; ok {
		return 0, []string{"Known safe telco/bank code"}
	}

	score := 0
	var reasons []string

	if !formatPattern.MatchString(c) {
		score += weightInvalidFormat
		reasons = append(reasons, "Invalid USSD format")
	}

	knownSafe := hasSafePrefix(c)
	if knownSafe {
		score -= safePrefixCredit
		if score < 0 {
			score = 0
		}
		reasons = append(reasons, "Known safe prefix")
	}

	digits := nonDigit.ReplaceAllString(c, "")
	switch {
	case len(digits) >= 9:
		score += weightLongDigits
		reasons = append(reasons, fmt.Sprintf("Long numeric sequence (%d digits)", len(digits)))
	case len(digits) >= 6:
		score += weightModerateDigits
		reasons = append(reasons, "Moderate numeric sequence")
	}

	low := strings.ToLower(c)
	for _, k := range highRiskKeywords {
		if strings.Contains(low, k) {
			score += weightHighRisk
			reasons = append(reasons, fmt.Sprintf("High-risk keyword: '%s'", k))
		}
	}
	for _, k := range mediumRiskKeywords {
		if strings.Contains(low, k) {
			score += weightMediumRisk
			reasons = append(reasons, fmt.Sprintf("Medium-risk keyword: '%s'", k))
		}
	}

	segments := strings.Split(strings.TrimSuffix(strings.TrimPrefix(c, "*"), "#"), "*")
	if len(segments) > 3 {
		score += weightManySegments
		reasons = append(reasons, fmt.Sprintf("Many segments (%d)", len(segments)))
	}
	if len(segments) > 1 && allIdentical(segments) {
		score += weightRepeating
		reasons = append(reasons, "Repeating segments")
	}

	if letterPattern.MatchString(c) && !knownSafe {
		score += weightLetters
		reasons = append(reasons, "Contains letters")
	}

	if !knownSafe {
		score += weightUnknownPrefix
		reasons = append(reasons, "Unknown prefix")
	}

	if score > MaxScore {
		score = MaxScore
	}
	if score < 0 {
		score = 0
	}

	return score, reasons
}

func allIdentical(segments []string) bool {
	for _, s := range segments[1:] {
		if s != segments[0] {
			return false
		}
	}
	return true
}

// LabelFor maps a verdict to its label
func LabelFor(code string, score int) Label {
	switch {
	case Normalize(code) == "":
		return LabelUnknown
	case score == 0:
		return LabelSafe
	case score < SafeThreshold:
		return LabelSuspicious
	default:
		return LabelScam
	}
}
