package discard

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha512"
	"encoding/json"
	"io"

	"github.com/bwesterb/go-ristretto"
	"golang.org/x/crypto/hkdf"
)

// Note is the private payload the recipient can decrypt: the transfer
// amount and a free-form memo.
type Note struct {
	Amount uint64 `json:"amount"`
	Memo   string `json:"memo"`
}

func noteKeyAndNonce(secret *ristretto.Point) ([]byte, []byte, error) {
	kdf := hkdf.New(sha512.New, secret.Bytes(), []byte(NOTE_KDF_SALT), nil)
	okm := make([]byte, 44)
	if _, err := io.ReadFull(kdf, okm); err != nil {
		return nil, nil, err
	}
	return okm[:32], okm[32:], nil
}

// EncryptNote seals the note with AES-GCM under a key derived from the same
// Diffie-Hellman shared value as the stealth address. The shared value is
// unique per transfer, so the derived nonce is too.
func EncryptNote(note *Note, secret *ristretto.Point) (string, error) {
	key, nonce, err := noteKeyAndNonce(secret)
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	plain, err := json.Marshal(note)
	if err != nil {
		return "", err
	}
	return hexEncode(aead.Seal(nil, nonce, plain, nil)), nil
}

// DecryptNote is the recipient side: re-derive the shared value via
// DeriveStealthKey's agreement and open the note.
func DecryptNote(ciphertext string, secret *ristretto.Point) (*Note, error) {
	data, err := hexDecode(ciphertext)
	if err != nil {
		return nil, err
	}
	if len(data) < 16 {
		return nil, ErrNoteTooShort
	}
	key, nonce, err := noteKeyAndNonce(secret)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	plain, err := aead.Open(nil, nonce, data, nil)
	if err != nil {
		return nil, err
	}
	var note Note
	if err := json.Unmarshal(plain, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// RecoverNoteSecret recomputes the note key material from the recipient
// private key and the bundle's ephemeral public key.
func RecoverNoteSecret(recipientPrivate *ristretto.Scalar, ephemeralPublicKey string) (*ristretto.Point, error) {
	ephemeral, err := parsePoint(ephemeralPublicKey)
	if err != nil {
		return nil, err
	}
	return createSharedSecret(ephemeral, recipientPrivate), nil
}
