package ussd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternScoreKnownSafeCodes(t *testing.T) {
	for _, code := range []string{"*901#", "*123#", "*737#", "*#06#", "*311#"} {
		score, reasons := PatternScore(code)
		assert.Equal(t, 0, score, code)
		assert.Equal(t, []string{"Known safe telco/bank code"}, reasons, code)
		assert.Equal(t, LabelSafe, LabelFor(code, score))
	}
}

func TestPatternScoreEmptyCode(t *testing.T) {
	score, reasons := PatternScore("")
	assert.Equal(t, MaxScore, score)
	assert.Equal(t, []string{"Empty code"}, reasons)
	assert.Equal(t, LabelUnknown, LabelFor("", score))

	score, _ = PatternScore("   ")
	assert.Equal(t, MaxScore, score)
}

func TestPatternScoreHighRiskKeywords(t *testing.T) {
	score, reasons := PatternScore("*123*password*#")
	assert.Equal(t, 8, score)
	assert.Contains(t, reasons, "Known safe prefix")
	assert.Contains(t, reasons, "High-risk keyword: 'password'")
	assert.False(t, score < SafeThreshold)
	assert.Equal(t, LabelScam, LabelFor("*123*password*#", score))
}

func TestPatternScoreClampsAtMax(t *testing.T) {
	score, reasons := PatternScore("*948*bvn*pin#")
	assert.Equal(t, MaxScore, score)
	assert.Contains(t, reasons, "High-risk keyword: 'bvn'")
	assert.Contains(t, reasons, "High-risk keyword: 'pin'")
	assert.Contains(t, reasons, "Contains letters")
	assert.Contains(t, reasons, "Unknown prefix")
}

func TestPatternScoreInvalidFormatAndLongDigits(t *testing.T) {
	score, reasons := PatternScore("12345678901")
	assert.Equal(t, MaxScore, score)
	assert.Contains(t, reasons, "Invalid USSD format")
	assert.Contains(t, reasons, "Long numeric sequence (11 digits)")
}

func TestPatternScoreModerateDigitsWithSafePrefix(t *testing.T) {
	score, reasons := PatternScore("*123456#")
	assert.Equal(t, 2, score)
	assert.Contains(t, reasons, "Known safe prefix")
	assert.Contains(t, reasons, "Moderate numeric sequence")
	assert.Equal(t, LabelSuspicious, LabelFor("*123456#", score))
}

func TestPatternScoreRepeatingSegments(t *testing.T) {
	score, reasons := PatternScore("*555*555*555#")
	assert.Equal(t, MaxScore, score)
	assert.Contains(t, reasons, "Repeating segments")
}

func TestPatternScoreIsDeterministic(t *testing.T) {
	for _, code := range []string{"*901#", "*948*bvn#", "", "random text", "*555*555*555#"} {
		s1, r1 := PatternScore(code)
		s2, r2 := PatternScore(code)
		require.Equal(t, s1, s2, code)
		require.Equal(t, r1, r2, code)
	}
}

func TestPatternScoreRange(t *testing.T) {
	inputs := []string{
		"", "*901#", "*948*bvn*pin*password#", "12345678901", "hello world",
		"*1*2*3*4*5#", "*accountupdate#", "*#06#", "*737*1*1000#",
	}
	for _, code := range inputs {
		score, _ := PatternScore(code)
		assert.GreaterOrEqual(t, score, 0, code)
		assert.LessOrEqual(t, score, MaxScore, code)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "*901#", Normalize("  *901#  "))
	assert.Equal(t, "*123*1#", Normalize("*123 *1#"))
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, LabelUnknown, LabelFor("", 10))
	assert.Equal(t, LabelSafe, LabelFor("*901#", 0))
	assert.Equal(t, LabelSuspicious, LabelFor("*999#", 3))
	assert.Equal(t, LabelScam, LabelFor("*999*bvn#", 5))
}
