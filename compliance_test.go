package discard

import (
	"testing"
	"time"

	"github.com/ChainSafe/go-schnorrkel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplianceTokenSignature(t *testing.T) {
	assert := assert.New(t)

	secret, public, err := schnorrkel.GenerateKeypair()
	require.Nil(t, err)
	authority := public.Encode()

	token := &ComplianceToken{
		Type:      "sanctions-screen",
		Hash:      "b1946ac92492d2347c6235b4d2611184",
		Nullifier: "8f14e45fceea167a",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}
	require.Nil(t, SignComplianceToken(token, secret))

	now := time.Now()
	assert.True(VerifyComplianceToken(token, &authority, now))

	// any signed field change invalidates the signature
	tampered := *token
	tampered.Nullifier = "0000000000000000"
	assert.False(VerifyComplianceToken(&tampered, &authority, now))

	tampered = *token
	tampered.ExpiresAt = token.ExpiresAt + 1
	assert.False(VerifyComplianceToken(&tampered, &authority, now))

	// wrong authority key
	_, otherPublic, err := schnorrkel.GenerateKeypair()
	require.Nil(t, err)
	other := otherPublic.Encode()
	assert.False(VerifyComplianceToken(token, &other, now))

	// without a configured authority only expiry is checked
	assert.True(VerifyComplianceToken(&tampered, nil, now))
}

func TestComplianceTokenExpiry(t *testing.T) {
	assert := assert.New(t)

	secret, public, err := schnorrkel.GenerateKeypair()
	require.Nil(t, err)
	authority := public.Encode()

	token := &ComplianceToken{
		Type:      "kyc-attestation",
		ExpiresAt: time.Now().Add(time.Minute).Unix(),
	}
	require.Nil(t, SignComplianceToken(token, secret))

	assert.True(VerifyComplianceToken(token, &authority, time.Now()))
	assert.False(VerifyComplianceToken(token, &authority, time.Now().Add(2*time.Minute)))
	assert.False(VerifyComplianceToken(nil, &authority, time.Now()))
	assert.False(VerifyComplianceToken(&ComplianceToken{ExpiresAt: time.Now().Add(time.Minute).Unix(), Signature: "zz"}, &authority, time.Now()))
}
