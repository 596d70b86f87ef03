package discard

import (
	"bytes"
	"crypto/rand"

	"github.com/bwesterb/go-ristretto"
)

var gens = NewPedersenGens()

// NewBlinding draws a fresh 32-byte blinding factor whose scalar reduction
// is nonzero.
func NewBlinding() []byte {
	for {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}
		if _, err := blindingToScalar(buf); err == nil {
			return buf
		}
	}
}

func blindingToScalar(blinding []byte) (*ristretto.Scalar, error) {
	if len(blinding) != 32 {
		return nil, ErrInvalidBlindingSize
	}
	var buf32 [32]byte
	copy(buf32[:], blinding)
	var s, zero ristretto.Scalar
	s.SetBytes(&buf32)
	if bytes.Equal(s.Bytes(), zero.SetZero().Bytes()) {
		return nil, ErrZeroBlinding
	}
	return &s, nil
}

// Commit computes the Pedersen commitment value*G + blinding*H.
func Commit(value uint64, blinding []byte) (*ristretto.Point, error) {
	r, err := blindingToScalar(blinding)
	if err != nil {
		return nil, err
	}
	return gens.Commit(uint64ToScalar(value), r), nil
}

// AddCommitments exploits the homomorphism
// Commit(a,r1) + Commit(b,r2) == Commit(a+b, r1+r2).
func AddCommitments(a, b *ristretto.Point) *ristretto.Point {
	var r ristretto.Point
	return r.Add(a, b)
}

func SubtractCommitments(a, b *ristretto.Point) *ristretto.Point {
	var r ristretto.Point
	return r.Sub(a, b)
}

func CommitBatch(values []uint64, blindings [][]byte) ([]*ristretto.Point, error) {
	if len(values) != len(blindings) {
		return nil, ErrInvalidBlindingSize
	}
	out := make([]*ristretto.Point, len(values))
	for i := range values {
		c, err := Commit(values[i], blindings[i])
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
