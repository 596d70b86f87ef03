package discard

import (
	"testing"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRing(size, signerIndex int) (*KeyPair, []*ristretto.Point) {
	signer := NewKeyPair()
	ring := make([]*ristretto.Point, size)
	for i := range ring {
		if i == signerIndex {
			ring[i] = signer.PublicKey
			continue
		}
		var p ristretto.Point
		ring[i] = p.Rand()
	}
	return signer, ring
}

func TestRingSignature(t *testing.T) {
	assert := assert.New(t)

	message := []byte("ring closure")
	signer, ring := buildRing(11, 4)

	sig, err := SignRing(message, signer.PrivateKey, 4, ring)
	require.Nil(t, err)
	assert.Len(sig.PublicKeys, 11)
	assert.Len(sig.Challenges, 11)
	assert.Len(sig.Responses, 11)
	assert.True(VerifyRing(sig, message))
	assert.True(VerifyRingDigest(sig))

	assert.False(VerifyRing(sig, []byte("other message")))

	_, err = SignRing(message, signer.PrivateKey, 11, ring)
	assert.Equal(ErrInvalidIndex, err)
	_, err = SignRing(message, signer.PrivateKey, -1, ring)
	assert.Equal(ErrInvalidIndex, err)
	_, err = SignRing(message, signer.PrivateKey, 0, ring[:1])
	assert.Equal(ErrInvalidRingSize, err)
}

func TestRingSignatureTamper(t *testing.T) {
	assert := assert.New(t)

	message := []byte("tamper")
	signer, ring := buildRing(5, 0)
	sig, err := SignRing(message, signer.PrivateKey, 0, ring)
	require.Nil(t, err)

	mutated := *sig
	mutated.Responses = append([]string{}, sig.Responses...)
	mutated.Responses[3] = sig.Responses[2]
	assert.False(VerifyRing(&mutated, message), "mutated response breaks closure")

	mutated = *sig
	mutated.Challenges = append([]string{}, sig.Challenges...)
	mutated.Challenges[1] = sig.Challenges[4]
	assert.False(VerifyRing(&mutated, message), "mutated challenge breaks closure")

	mutated = *sig
	mutated.KeyImage = pointHex(new(ristretto.Point).Rand())
	assert.False(VerifyRing(&mutated, message))

	assert.False(VerifyRing(nil, message))
}

func TestKeyImageLinkability(t *testing.T) {
	assert := assert.New(t)

	signer, ringA := buildRing(4, 1)
	ringB := append([]*ristretto.Point{signer.PublicKey}, ringA[2:]...)

	sigA, err := SignRing([]byte("first"), signer.PrivateKey, 1, ringA)
	require.Nil(t, err)
	sigB, err := SignRing([]byte("second"), signer.PrivateKey, 0, ringB)
	require.Nil(t, err)
	assert.Equal(sigA.KeyImage, sigB.KeyImage, "same key always yields the same key image")

	other, otherRing := buildRing(4, 2)
	sigC, err := SignRing([]byte("third"), other.PrivateKey, 2, otherRing)
	require.Nil(t, err)
	assert.NotEqual(sigA.KeyImage, sigC.KeyImage)

	result := CheckLinkability([]*RingSignature{sigC, sigA, sigB})
	assert.True(result.Linkable)
	assert.Equal(1, result.First)
	assert.Equal(2, result.Second)
	assert.Equal(sigA.KeyImage, result.KeyImage)

	result = CheckLinkability([]*RingSignature{sigA, sigC})
	assert.False(result.Linkable)
	assert.Equal(-1, result.First)
}

func TestKeyImageUsedSet(t *testing.T) {
	assert := assert.New(t)

	used := NewMemoryUsedSet()
	signer, ring := buildRing(3, 2)
	sig, err := SignRing([]byte("spend"), signer.PrivateKey, 2, ring)
	require.Nil(t, err)

	assert.False(IsKeyImageUsed(sig.KeyImage, used))
	assert.True(used.Add(sig.KeyImage))
	assert.True(IsKeyImageUsed(sig.KeyImage, used))
	assert.False(used.Add(sig.KeyImage), "insertion is idempotent")
}
