// Package sms implements keyword and phrase scoring for SMS scam detection.
package sms

import (
	"regexp"
	"strings"
)

// ScamThreshold is the raw score at which a message is flagged; confidence
// is the same score clamped to MaxConfidence.
const (
	ScamThreshold = 6
	MaxConfidence = 10
)

// Result is the outcome of scoring a message
type Result struct {
	Content    string   `json:"content"`
	Scam       bool     `json:"scam"`
	Confidence int      `json:"confidence"`
	Score      int      `json:"score"`
	Reasons    []string `json:"reasons"`
}

var ussdShape = regexp.MustCompile(`^\*[\d*#A-Za-z]+#?$`)

// legitimatePatterns whitelist common transactional and conversational
// messages; a match short-circuits scoring entirely.
var legitimatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`your otp is \d{4,6}`),
	regexp.MustCompile(`verification code:?\s*\d+`),
	regexp.MustCompile(`meeting at \d`),
	regexp.MustCompile(`delivery (arriving|scheduled)`),
	regexp.MustCompile(`hello,? how are you`),
}

// scamIndicators weight individual words. Values were tuned against field
// samples and are kept as literal constants.
var scamIndicators = map[string]int{
	"won": 4, "win": 4, "prize": 4, "lottery": 5, "million": 4, "cash": 3,
	"award": 3, "claim": 3, "urgent": 3, "immediately": 3, "verification": 2,
	"bvn": 6, "password": 5, "pin": 5, "transfer": 3, "free": 3,
	"gift": 3, "congratulations": 2, "congrats": 2, "account": 3, "bank": 2,
}

// otpContextWords soften the otp penalty when the word appears in a
// transactional sentence
var otpContextWords = []string{"your", "code", "is", "verification"}

type phrasePattern struct {
	re     *regexp.Regexp
	points int
	reason string
}

var phrasePatterns = []phrasePattern{
	{regexp.MustCompile(`you.*won.*\d+`), 6, "Winning announcement"},
	{regexp.MustCompile(`call.*\d{8,}`), 5, "Unknown number request"},
	{regexp.MustCompile(`click.*http`), 5, "Suspicious link"},
	{regexp.MustCompile(`account.*verif`), 4, "Account verification"},
	{regexp.MustCompile(`free.*gift`), 4, "Free gift offer"},
	{regexp.MustCompile(`your.*bvn`), 6, "BVN request"},
}

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func normalize(content string) string {
	lowered := strings.ToLower(content)
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, lowered)
}

// Score classifies a message. Scoring is a pure function of the input:
// whitelist templates first, then per-word keyword weights plus phrase
// bonuses, with the raw sum compared against ScamThreshold.
func Score(content string) *Result {
	if content == "" {
		return &Result{Scam: false, Confidence: 0, Reasons: []string{}}
	}

	if ussdShape.MatchString(strings.TrimSpace(content)) {
		return &Result{Content: content, Scam: false, Confidence: 0, Reasons: []string{"USSD code detected"}}
	}

	normalized := normalize(content)
	words := strings.Fields(normalized)

	for _, re := range legitimatePatterns {
		if re.MatchString(normalized) {
			return &Result{Content: content, Scam: false, Confidence: 0, Reasons: []string{"Legitimate communication pattern"}}
		}
	}

	otpWeight := 3
	if strings.Contains(normalized, "otp") {
		for _, ctx := range otpContextWords {
			if strings.Contains(normalized, ctx) {
				otpWeight = 1
				break
			}
		}
	}

	score := 0
	var reasons, triggered []string
	for _, word := range words {
		if word == "otp" {
			score += otpWeight
			triggered = append(triggered, word)
			continue
		}
		if points, ok := scamIndicators[word]; ok {
			score += points
			triggered = append(triggered, word)
		}
	}
	if len(triggered) > 0 {
		reasons = append(reasons, "Suspicious words: "+strings.Join(triggered, ", "))
	}

	for _, p := range phrasePatterns {
		if p.re.MatchString(normalized) {
			score += p.points
			reasons = append(reasons, p.reason)
		}
	}

	// A bare "congratulations" is not enough signal on its own
	if len(words) == 1 && (words[0] == "congratulations" || words[0] == "congrats") {
		score -= 3
		if score < 0 {
			score = 0
		}
		reasons = []string{"Single word - needs context"}
	}

	confidence := score
	if confidence > MaxConfidence {
		confidence = MaxConfidence
	}

	return &Result{
		Content:    content,
		Scam:       score >= ScamThreshold,
		Confidence: confidence,
		Score:      score,
		Reasons:    reasons,
	}
}
