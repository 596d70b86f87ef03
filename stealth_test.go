package discard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStealthAddressRoundTrip(t *testing.T) {
	assert := assert.New(t)

	recipient := NewKeyPair()
	address, _, err := GenerateStealthAddress(recipient.PublicKey)
	require.Nil(t, err)

	derived, err := DeriveStealthKey(recipient.PrivateKey, address.EphemeralPublicKey)
	require.Nil(t, err)
	assert.Equal(address.Address, derived.Address, "recipient re-derives the published one-time address")
	assert.Equal(pointHex(PublicKey(derived.PrivateKey)), pointHex(derived.PublicKey))

	assert.True(IsOwnStealthAddress(address, recipient.PrivateKey))
	assert.False(IsOwnStealthAddress(address, NewKeyPair().PrivateKey), "only the matching recipient key owns it")
}

func TestStealthAddressUnlinkability(t *testing.T) {
	assert := assert.New(t)

	recipient := NewKeyPair()
	a, _, err := GenerateStealthAddress(recipient.PublicKey)
	require.Nil(t, err)
	b, _, err := GenerateStealthAddress(recipient.PublicKey)
	require.Nil(t, err)

	assert.NotEqual(a.Address, b.Address, "repeated transfers to the same recipient are unlinkable")
	assert.NotEqual(a.EphemeralPublicKey, b.EphemeralPublicKey)
	assert.NotEqual(a.SharedSecretDigest, b.SharedSecretDigest)
}

func TestStealthBatchScan(t *testing.T) {
	assert := assert.New(t)

	recipient := NewKeyPair()
	stranger := NewKeyPair()

	mine, err := GenerateStealthAddresses(recipient.PublicKey, 3)
	require.Nil(t, err)
	theirs, err := GenerateStealthAddresses(stranger.PublicKey, 2)
	require.Nil(t, err)

	all := []*StealthAddress{theirs[0], mine[0], mine[1], theirs[1], mine[2]}
	assert.Equal([]int{1, 2, 4}, ScanStealthAddresses(all, recipient.PrivateKey))
	assert.Equal([]int{0, 3}, ScanStealthAddresses(all, stranger.PrivateKey))
}
