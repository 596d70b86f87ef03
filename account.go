package discard

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/bwesterb/go-ristretto"
)

// KeyPair is a sender or recipient account key.
type KeyPair struct {
	PrivateKey *ristretto.Scalar
	PublicKey  *ristretto.Point
}

func NewKeyPair() *KeyPair {
	var private ristretto.Scalar
	private.Rand()
	return &KeyPair{
		PrivateKey: &private,
		PublicKey:  PublicKey(&private),
	}
}

// EncodeAccountKey renders a public key in the ledger's base58 form.
func EncodeAccountKey(public *ristretto.Point) string {
	return base58.Encode(public.Bytes())
}

func DecodeAccountKey(account string) (*ristretto.Point, error) {
	data := base58.Decode(account)
	if len(data) != 32 {
		return nil, ErrInvalidPoint
	}
	var buf32 [32]byte
	copy(buf32[:], data)
	var p ristretto.Point
	if !p.SetBytes(&buf32) {
		return nil, ErrInvalidPoint
	}
	return &p, nil
}
