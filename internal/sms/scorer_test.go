package sms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreLotteryScam(t *testing.T) {
	result := Score("Congratulations! You won $1,000,000 lottery! Call now.")

	assert.True(t, result.Scam)
	assert.Equal(t, MaxConfidence, result.Confidence)
	assert.Equal(t, 17, result.Score)
	assert.Contains(t, result.Reasons, "Suspicious words: congratulations, won, lottery")
	assert.Contains(t, result.Reasons, "Winning announcement")
}

func TestScoreLegitimateOTP(t *testing.T) {
	result := Score("Your OTP is 1234")

	assert.False(t, result.Scam)
	assert.Equal(t, 0, result.Confidence)
	assert.Equal(t, []string{"Legitimate communication pattern"}, result.Reasons)
}

func TestScoreLegitimatePatterns(t *testing.T) {
	for _, msg := range []string{
		"Verification code: 482913",
		"Meeting at 3pm tomorrow",
		"Delivery arriving today",
		"Hello, how are you",
	} {
		result := Score(msg)
		assert.False(t, result.Scam, msg)
		assert.Equal(t, 0, result.Confidence, msg)
	}
}

func TestScoreUSSDShapedInput(t *testing.T) {
	result := Score("*901#")

	assert.False(t, result.Scam)
	assert.Equal(t, []string{"USSD code detected"}, result.Reasons)
}

func TestScoreSingleCongratulations(t *testing.T) {
	for _, word := range []string{"Congratulations!", "congrats"} {
		result := Score(word)
		assert.False(t, result.Scam, word)
		assert.Equal(t, 0, result.Score, word)
		assert.Equal(t, []string{"Single word - needs context"}, result.Reasons, word)
	}
}

func TestScoreBVNPhishing(t *testing.T) {
	result := Score("Please verify your BVN immediately")

	assert.True(t, result.Scam)
	assert.Equal(t, 15, result.Score)
	assert.Contains(t, result.Reasons, "BVN request")
}

func TestScoreContextlessOTP(t *testing.T) {
	result := Score("otp 99887766")

	assert.False(t, result.Scam)
	assert.Equal(t, 3, result.Score)
	assert.Contains(t, result.Reasons, "Suspicious words: otp")
}

func TestScoreEmptyMessage(t *testing.T) {
	result := Score("")

	assert.False(t, result.Scam)
	assert.Equal(t, 0, result.Confidence)
	assert.Empty(t, result.Reasons)
}

func TestScoreRepeatedWordsCountEachOccurrence(t *testing.T) {
	result := Score("cash cash cash")

	assert.True(t, result.Scam)
	assert.Equal(t, 9, result.Score)
	assert.Contains(t, result.Reasons, "Suspicious words: cash, cash, cash")
}

func TestScoreSuspiciousLink(t *testing.T) {
	result := Score("Click here http://bit.ly/win to claim your prize")

	assert.True(t, result.Scam)
	assert.Contains(t, result.Reasons, "Suspicious link")
}
