package discard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommitment(t *testing.T) {
	assert := assert.New(t)

	blinding := NewBlinding()
	c1, err := Commit(100, blinding)
	assert.Nil(err)
	c2, err := Commit(100, blinding)
	assert.Nil(err)
	assert.Equal(pointHex(c1), pointHex(c2), "commit must be deterministic for fixed inputs")

	other, err := Commit(100, NewBlinding())
	assert.Nil(err)
	assert.NotEqual(pointHex(c1), pointHex(other), "independent blindings must hide the value")

	_, err = Commit(100, make([]byte, 31))
	assert.Equal(ErrInvalidBlindingSize, err)
	_, err = Commit(100, make([]byte, 33))
	assert.Equal(ErrInvalidBlindingSize, err)
	_, err = Commit(100, make([]byte, 32))
	assert.Equal(ErrZeroBlinding, err)
}

func TestCommitmentHomomorphism(t *testing.T) {
	assert := assert.New(t)

	r1, err := blindingToScalar(NewBlinding())
	assert.Nil(err)
	r2, err := blindingToScalar(NewBlinding())
	assert.Nil(err)

	a := gens.Commit(uint64ToScalar(30), r1)
	b := gens.Commit(uint64ToScalar(12), r2)

	var sum = AddCommitments(a, b)
	var combined = func() string {
		var r3 = *r1
		r3.Add(&r3, r2)
		return pointHex(gens.Commit(uint64ToScalar(42), &r3))
	}()
	assert.Equal(combined, pointHex(sum))

	diff := SubtractCommitments(sum, b)
	assert.Equal(pointHex(a), pointHex(diff))
}

func TestCommitBatch(t *testing.T) {
	assert := assert.New(t)

	values := []uint64{0, 1, 255}
	blindings := [][]byte{NewBlinding(), NewBlinding(), NewBlinding()}
	commitments, err := CommitBatch(values, blindings)
	assert.Nil(err)
	assert.Len(commitments, 3)

	_, err = CommitBatch(values, blindings[:2])
	assert.NotNil(err)
}
