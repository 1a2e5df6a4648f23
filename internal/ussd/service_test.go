package ussd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cyberguardng/cyberguard/internal/bankverify"
	"github.com/cyberguardng/cyberguard/pkg/filestore"
)

type mockSourceVerifier struct {
	mock.Mock
}

func (m *mockSourceVerifier) Verify(ctx context.Context, code string) (bool, string) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.String(1)
}

func newTestService(t *testing.T) (*Service, *Lists, *filestore.Store) {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	lists := NewLists(store)
	service := NewService(lists, NewFileCache(store), nil, nil)
	return service, lists, store
}

func TestCheckBlacklistedCode(t *testing.T) {
	service, lists, _ := newTestService(t)
	require.NoError(t, lists.AddBlacklist("*666#"))

	result := service.Check(context.Background(), "*666#", false)

	assert.False(t, result.Safe)
	assert.Equal(t, MaxScore, result.Score)
	assert.Equal(t, LabelScam, result.Label)
	assert.Equal(t, []string{"Blacklisted"}, result.Reasons)
}

func TestCheckSafeListedCode(t *testing.T) {
	service, lists, _ := newTestService(t)
	require.NoError(t, lists.AddSafe("*444*5#"))

	result := service.Check(context.Background(), "*444*5#", false)

	assert.True(t, result.Safe)
	assert.Contains(t, result.Reasons, "In safe list")
}

func TestCheckScoresUnknownCode(t *testing.T) {
	service, _, _ := newTestService(t)

	result := service.Check(context.Background(), "*948*bvn*pin#", false)

	assert.False(t, result.Safe)
	assert.Equal(t, MaxScore, result.Score)
	assert.Equal(t, LabelScam, result.Label)
	assert.False(t, result.Cached)
}

func TestCheckReturnsCachedVerdict(t *testing.T) {
	service, _, store := newTestService(t)
	cache := NewFileCache(store)
	require.NoError(t, cache.Set(context.Background(), "*555#", &CacheEntry{
		Safe:           true,
		Score:          1,
		Reasons:        []string{"Unknown prefix"},
		VerifiedOnline: true,
		Source:         "https://trusted.example",
		CheckedAt:      time.Now(),
	}))

	result := service.Check(context.Background(), "*555#", false)

	assert.True(t, result.Cached)
	assert.True(t, result.Safe)
	assert.True(t, result.VerifiedOnline)
	assert.Equal(t, "https://trusted.example", result.Source)
}

func TestCheckFullModeVerifiesAndCaches(t *testing.T) {
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	verifier := new(mockSourceVerifier)
	verifier.On("Verify", mock.Anything, "*779*2#").Return(true, "https://trusted.example")

	cache := NewFileCache(store)
	service := NewService(NewLists(store), cache, verifier, nil)

	result := service.Check(context.Background(), "*779*2#", true)

	assert.True(t, result.Safe)
	assert.True(t, result.VerifiedOnline)
	assert.Contains(t, result.Reasons, "Verified by https://trusted.example")

	entry, ok := cache.Get(context.Background(), "*779*2#")
	require.True(t, ok)
	assert.True(t, entry.Safe)
	assert.Equal(t, "https://trusted.example", entry.Source)
	verifier.AssertExpectations(t)
}

func TestCheckWithoutFullModeSkipsVerifier(t *testing.T) {
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	verifier := new(mockSourceVerifier)
	service := NewService(NewLists(store), NewFileCache(store), verifier, nil)

	service.Check(context.Background(), "*999#", false)

	verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestCheckEnhancedDisabledWithoutBankVerifier(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.CheckEnhanced(context.Background(), "*901#", false)
	assert.ErrorIs(t, err, ErrEnhancedDisabled)
}

func TestCheckEnhancedAppliesBankCredit(t *testing.T) {
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	bank := bankverify.NewService(store)
	service := NewService(NewLists(store), NewFileCache(store), nil, bank)

	result, err := service.CheckEnhanced(context.Background(), "*901#", false)
	require.NoError(t, err)

	assert.True(t, result.BankVerified)
	assert.Equal(t, "cbn", result.BankSource)
	assert.Equal(t, "First Bank", result.BankName)
	assert.Equal(t, 0, result.EnhancedScore)
}

func TestMobileCheckSafeListed(t *testing.T) {
	service, lists, _ := newTestService(t)
	require.NoError(t, lists.AddSafe("*901#"))

	result := service.MobileCheck(context.Background(), "*901#")

	assert.True(t, result.Safe)
	assert.Equal(t, "known_safe", result.Reason)
	assert.Equal(t, 95, result.Confidence)
}

func TestMobileCheckTrimsReasons(t *testing.T) {
	service, _, _ := newTestService(t)

	result := service.MobileCheck(context.Background(), "*948*bvn*pin*password#")

	assert.False(t, result.Safe)
	assert.LessOrEqual(t, len(result.Reasons), 3)
	assert.Equal(t, 0, result.Confidence)
}
