package discard

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuxBindingProof(t *testing.T) {
	assert := assert.New(t)

	amount := uint64(4096)
	blinding := NewBlinding()
	commitment, err := Commit(amount, blinding)
	require.Nil(t, err)
	commitmentHex := pointHex(commitment)

	aux := &AuxCiphertext{
		Ciphertext:      hex.EncodeToString(append(uint64LE(amount), blinding...)),
		SenderPublicKey: EncodeAccountKey(NewKeyPair().PublicKey),
		Nonce:           hex.EncodeToString(make([]byte, 12)),
	}
	timestamp := time.Now().Unix()

	proof, err := NewAuxBindingProof(aux, commitmentHex, timestamp, amount, blinding)
	require.Nil(t, err)
	assert.True(VerifyAuxBindingProof(proof, aux, commitmentHex, timestamp))

	// digest is bound to ciphertext, commitment and timestamp
	assert.False(VerifyAuxBindingProof(proof, aux, commitmentHex, timestamp+1))
	other := *aux
	other.Ciphertext = hex.EncodeToString(uint64LE(amount + 1))
	assert.False(VerifyAuxBindingProof(proof, &other, commitmentHex, timestamp))

	otherCommitment, err := Commit(amount+1, NewBlinding())
	require.Nil(t, err)
	assert.False(VerifyAuxBindingProof(proof, aux, pointHex(otherCommitment), timestamp))
}

func TestAuxBindingProofTamper(t *testing.T) {
	assert := assert.New(t)

	amount := uint64(77)
	blinding := NewBlinding()
	commitment, err := Commit(amount, blinding)
	require.Nil(t, err)
	commitmentHex := pointHex(commitment)

	aux := &AuxCiphertext{Ciphertext: "deadbeef"}
	timestamp := time.Now().Unix()
	proof, err := NewAuxBindingProof(aux, commitmentHex, timestamp, amount, blinding)
	require.Nil(t, err)
	require.True(t, VerifyAuxBindingProof(proof, aux, commitmentHex, timestamp))

	tampered := *proof
	tampered.SValue = scalarHex(randomScalar())
	assert.False(VerifyAuxBindingProof(&tampered, aux, commitmentHex, timestamp))

	tampered = *proof
	tampered.SBlind = scalarHex(randomScalar())
	assert.False(VerifyAuxBindingProof(&tampered, aux, commitmentHex, timestamp))

	tampered = *proof
	tampered.E = scalarHex(randomScalar())
	assert.False(VerifyAuxBindingProof(&tampered, aux, commitmentHex, timestamp))

	var point ristretto.Point
	tampered = *proof
	tampered.T = pointHex(point.Rand())
	assert.False(VerifyAuxBindingProof(&tampered, aux, commitmentHex, timestamp))

	assert.False(VerifyAuxBindingProof(nil, aux, commitmentHex, timestamp))
	assert.False(VerifyAuxBindingProof(proof, nil, commitmentHex, timestamp))
}

// a prover who does not know the opening of the commitment cannot produce
// an accepted proof by proving a different opening
func TestAuxBindingProofWrongOpening(t *testing.T) {
	assert := assert.New(t)

	blinding := NewBlinding()
	commitment, err := Commit(500, blinding)
	require.Nil(t, err)

	aux := &AuxCiphertext{Ciphertext: "deadbeef"}
	timestamp := time.Now().Unix()
	proof, err := NewAuxBindingProof(aux, pointHex(commitment), timestamp, 501, blinding)
	require.Nil(t, err)
	assert.False(VerifyAuxBindingProof(proof, aux, pointHex(commitment), timestamp))
}
