package discard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteRoundTrip(t *testing.T) {
	assert := assert.New(t)

	recipient := NewKeyPair()
	address, shared, err := GenerateStealthAddress(recipient.PublicKey)
	require.Nil(t, err)

	ciphertext, err := EncryptNote(&Note{Amount: 42, Memo: "coffee"}, shared)
	require.Nil(t, err)

	secret, err := RecoverNoteSecret(recipient.PrivateKey, address.EphemeralPublicKey)
	require.Nil(t, err)
	note, err := DecryptNote(ciphertext, secret)
	require.Nil(t, err)
	assert.Equal(uint64(42), note.Amount)
	assert.Equal("coffee", note.Memo)
}

func TestNoteAuthenticity(t *testing.T) {
	assert := assert.New(t)

	recipient := NewKeyPair()
	address, shared, err := GenerateStealthAddress(recipient.PublicKey)
	require.Nil(t, err)
	ciphertext, err := EncryptNote(&Note{Amount: 7}, shared)
	require.Nil(t, err)

	secret, err := RecoverNoteSecret(recipient.PrivateKey, address.EphemeralPublicKey)
	require.Nil(t, err)

	// flip one hex digit of the ciphertext
	tampered := []byte(ciphertext)
	if tampered[0] == '0' {
		tampered[0] = '1'
	} else {
		tampered[0] = '0'
	}
	_, err = DecryptNote(string(tampered), secret)
	assert.NotNil(err, "AEAD must reject a tampered note")

	wrongSecret, err := RecoverNoteSecret(NewKeyPair().PrivateKey, address.EphemeralPublicKey)
	require.Nil(t, err)
	_, err = DecryptNote(ciphertext, wrongSecret)
	assert.NotNil(err, "wrong recipient key must not decrypt")
}
