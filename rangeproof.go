package discard

import (
	"bytes"
	"encoding/hex"

	"github.com/bwesterb/go-ristretto"
)

// BitProof carries one Sigma-OR bit of a range proof in wire form. Every
// field is a fixed-width hex-encoded scalar or group element so that
// verification needs no format inference.
type BitProof struct {
	Commitment string `json:"commitment"`
	E0         string `json:"e0"`
	E1         string `json:"e1"`
	S0         string `json:"s0"`
	S1         string `json:"s1"`
}

// AggregationProof binds the per-bit commitments to the main commitment: a
// Schnorr proof of knowledge, with respect to H, for the difference between
// the adjusted main commitment and the sum of bit commitments.
type AggregationProof struct {
	E string `json:"e"`
	S string `json:"s"`
}

// RangeProof proves the committed value lies in
// [MinValue, MinValue + 2^Bits), additionally capped by MaxValue when set.
type RangeProof struct {
	Commitment  string            `json:"commitment"`
	BitProofs   []*BitProof       `json:"bit_proofs"`
	Aggregation *AggregationProof `json:"aggregation"`
	Bits        int               `json:"bits"`
	MinValue    uint64            `json:"min_value"`
	MaxValue    uint64            `json:"max_value"`
}

// GenerateRangeProof decomposes value - minValue into bits bits, least
// significant first, and proves each one with a Sigma-OR proof. The last
// per-bit blinding is forced so all per-bit blindings sum to the main
// blinding, which makes the bit commitments sum to the main commitment.
func GenerateRangeProof(value uint64, blinding []byte, bits int, minValue, maxValue uint64) (*RangeProof, error) {
	if !validBitLength(bits) {
		return nil, ErrInvalidBitLength
	}
	r, err := blindingToScalar(blinding)
	if err != nil {
		return nil, err
	}
	if value < minValue {
		return nil, ErrOutOfRange
	}
	if maxValue > 0 && value > maxValue {
		return nil, ErrOutOfRange
	}
	shifted := value - minValue
	if bits < 64 && shifted >= uint64(1)<<uint(bits) {
		return nil, ErrOutOfRange
	}

	commitment := gens.Commit(uint64ToScalar(value), r)

	t := InitialTranscript(RANGE_PROOF_DOMAIN_TAG)
	RangeproofDomainSep(bits, minValue, maxValue, t)
	AppendPoint("V", commitment, t)

	blindings := make([]*ristretto.Scalar, bits)
	var sum ristretto.Scalar
	sum.SetZero()
	for i := 0; i < bits-1; i++ {
		blindings[i] = randomScalar()
		sum.Add(&sum, blindings[i])
	}
	var last ristretto.Scalar
	blindings[bits-1] = last.Sub(r, &sum)

	proofs := make([]*BitProof, bits)
	var commitmentSum ristretto.Point
	commitmentSum.SetZero()
	for i := 0; i < bits; i++ {
		bit := (shifted >> uint(i)) & 1
		bp := bitProve(t, bit, uint(i), blindings[i])
		commitmentSum.Add(&commitmentSum, bp.commitment)
		proofs[i] = &BitProof{
			Commitment: pointHex(bp.commitment),
			E0:         scalarHex(bp.e0),
			E1:         scalarHex(bp.e1),
			S0:         scalarHex(bp.s0),
			S1:         scalarHex(bp.s1),
		}
	}

	// witness for the aggregation statement, zero by construction of the
	// forced last blinding
	var witness, blindingSum ristretto.Scalar
	blindingSum.Add(&sum, blindings[bits-1])
	witness.Sub(r, &blindingSum)
	e, s := schnorrProve(t, &witness)

	return &RangeProof{
		Commitment: pointHex(commitment),
		BitProofs:  proofs,
		Aggregation: &AggregationProof{
			E: scalarHex(e),
			S: scalarHex(s),
		},
		Bits:     bits,
		MinValue: minValue,
		MaxValue: maxValue,
	}, nil
}

// VerifyRangeProof replays the transcript from public data only. It returns
// false, never an error, on any structural or cryptographic mismatch so it
// is safe to run on adversarial input.
func VerifyRangeProof(proof *RangeProof, commitment string) bool {
	if proof == nil || proof.Aggregation == nil {
		return false
	}
	if !validBitLength(proof.Bits) || len(proof.BitProofs) != proof.Bits {
		return false
	}
	if proof.Commitment != commitment {
		return false
	}
	mainCommitment, err := parsePoint(commitment)
	if err != nil {
		return false
	}

	// adjusted = C - minValue*G, the commitment to the shifted value
	var adjusted, minTerm ristretto.Point
	minTerm.ScalarMult(gens.B, uint64ToScalar(proof.MinValue))
	adjusted.Sub(mainCommitment, &minTerm)

	t := InitialTranscript(RANGE_PROOF_DOMAIN_TAG)
	RangeproofDomainSep(proof.Bits, proof.MinValue, proof.MaxValue, t)
	AppendPoint("V", mainCommitment, t)

	var commitmentSum ristretto.Point
	commitmentSum.SetZero()
	for i, wire := range proof.BitProofs {
		bp, err := parseBitProof(wire)
		if err != nil {
			return false
		}
		if !bitVerify(t, bp, uint(i)) {
			return false
		}
		commitmentSum.Add(&commitmentSum, bp.commitment)
	}

	if !bytes.Equal(commitmentSum.Bytes(), adjusted.Bytes()) {
		return false
	}

	e, err := parseScalar(proof.Aggregation.E)
	if err != nil {
		return false
	}
	s, err := parseScalar(proof.Aggregation.S)
	if err != nil {
		return false
	}
	var delta ristretto.Point
	delta.Sub(&adjusted, &commitmentSum)
	return schnorrVerify(t, &delta, e, s)
}

func parseBitProof(wire *BitProof) (*bitProof, error) {
	if wire == nil {
		return nil, ErrInvalidPoint
	}
	commitment, err := parsePoint(wire.Commitment)
	if err != nil {
		return nil, err
	}
	e0, err := parseScalar(wire.E0)
	if err != nil {
		return nil, err
	}
	e1, err := parseScalar(wire.E1)
	if err != nil {
		return nil, err
	}
	s0, err := parseScalar(wire.S0)
	if err != nil {
		return nil, err
	}
	s1, err := parseScalar(wire.S1)
	if err != nil {
		return nil, err
	}
	return &bitProof{commitment: commitment, e0: e0, e1: e1, s0: s0, s1: s1}, nil
}

// ToBytes flattens the proof into its fixed wire layout:
// 32 + Bits*160 + 64 bytes.
func (p *RangeProof) ToBytes() []byte {
	var buf []byte
	buf = appendHex(buf, p.Commitment)
	for _, bp := range p.BitProofs {
		buf = appendHex(buf, bp.Commitment)
		buf = appendHex(buf, bp.E0)
		buf = appendHex(buf, bp.E1)
		buf = appendHex(buf, bp.S0)
		buf = appendHex(buf, bp.S1)
	}
	buf = appendHex(buf, p.Aggregation.E)
	buf = appendHex(buf, p.Aggregation.S)
	return buf
}

func appendHex(buf []byte, h string) []byte {
	data, err := hex.DecodeString(h)
	if err != nil {
		panic(err)
	}
	return append(buf, data...)
}

// GenerateRangeProofs is the batch variant; any single failure fails the
// batch.
func GenerateRangeProofs(values []uint64, blindings [][]byte, bits int, minValue, maxValue uint64) ([]*RangeProof, error) {
	if len(values) != len(blindings) {
		return nil, ErrOutOfRange
	}
	out := make([]*RangeProof, len(values))
	for i := range values {
		proof, err := GenerateRangeProof(values[i], blindings[i], bits, minValue, maxValue)
		if err != nil {
			return nil, err
		}
		out[i] = proof
	}
	return out, nil
}

func VerifyRangeProofs(proofs []*RangeProof, commitments []string) bool {
	if len(proofs) != len(commitments) {
		return false
	}
	for i := range proofs {
		if !VerifyRangeProof(proofs[i], commitments[i]) {
			return false
		}
	}
	return true
}
