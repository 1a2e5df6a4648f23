package bankverify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberguardng/cyberguard/pkg/filestore"
)

func newTestService(t *testing.T) (*Service, *filestore.Store) {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	return NewService(store), store
}

func TestVerifyCBNCode(t *testing.T) {
	service, _ := newTestService(t)

	result := service.Verify(context.Background(), "*901#")

	assert.True(t, result.Verified)
	assert.Equal(t, "cbn", result.Source)
	assert.Equal(t, "First Bank", result.Bank)
}

func TestVerifyUnknownCode(t *testing.T) {
	service, _ := newTestService(t)

	result := service.Verify(context.Background(), "*999999#")

	assert.False(t, result.Verified)
	assert.Equal(t, "none", result.Source)
	assert.Equal(t, "unknown", result.Bank)
}

func TestVerifyWritesCache(t *testing.T) {
	service, store := newTestService(t)

	first := service.Verify(context.Background(), "*737#")
	require.True(t, first.Verified)
	assert.True(t, store.Exists("bank_verification_cache.json"))

	second := service.Verify(context.Background(), "*737#")
	assert.Equal(t, first.Timestamp.Unix(), second.Timestamp.Unix())
	assert.Equal(t, first.Bank, second.Bank)
}

func TestBankFor(t *testing.T) {
	assert.Equal(t, "Zenith Bank", BankFor("*909#"))
	assert.Equal(t, "Unknown Bank", BankFor("*000#"))
}
