package discard

import (
	"github.com/bwesterb/go-ristretto"
	"golang.org/x/crypto/sha3"
)

// PedersenGens holds the commitment generator pair. B is the ristretto base
// point and carries the value; BBlinding carries the blinding factor and is
// derived by hashing B, so no discrete-log relation between the two is known.
type PedersenGens struct {
	B         *ristretto.Point
	BBlinding *ristretto.Point
}

func NewPedersenGens() *PedersenGens {
	var base ristretto.Point
	base.SetBase()

	h := sha3.New512()
	h.Write(base.Bytes())

	return &PedersenGens{
		B:         &base,
		BBlinding: pointFromUniformBytes(h.Sum(nil)),
	}
}

// Commit computes value*B + blinding*BBlinding.
func (pg *PedersenGens) Commit(value, blinding *ristretto.Scalar) *ristretto.Point {
	return multiscalarMul([]*ristretto.Scalar{value, blinding}, []*ristretto.Point{pg.B, pg.BBlinding})
}

// CommitBit weights the bit by its power of two before committing.
func (pg *PedersenGens) CommitBit(bit uint64, position uint, blinding *ristretto.Scalar) *ristretto.Point {
	return pg.Commit(uint64ToScalar(bit<<position), blinding)
}
