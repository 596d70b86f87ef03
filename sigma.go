package discard

import (
	"bytes"

	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"
)

// bitProof is a Sigma-OR proof that a weighted bit commitment opens to
// either 0 or 2^position. The commitment terms T0/T1 are not stored; the
// verifier reconstructs them from the challenge/response pairs and checks
// e0 + e1 against the transcript challenge.
type bitProof struct {
	commitment *ristretto.Point
	e0, e1     *ristretto.Scalar
	s0, s1     *ristretto.Scalar
}

// bitProve proves commitment = bit*2^position*G + blinding*H with
// bit in {0,1}. The true branch is proven honestly; the other branch is
// simulated by drawing its challenge and response at random and solving the
// matching commitment term backward. Both paths run through the same code so
// the two cases cannot drift apart.
func bitProve(t *merlin.Transcript, bit uint64, position uint, blinding *ristretto.Scalar) *bitProof {
	commitment := gens.CommitBit(bit, position, blinding)

	// branch statements: A0 = C, A1 = C - 2^position*G
	branches := bitBranches(commitment, position)

	var w ristretto.Scalar
	w.Rand()
	eSim := randomScalar()
	sSim := randomScalar()

	var tTrue, tSim ristretto.Point
	tTrue.ScalarMult(gens.BBlinding, &w)
	simulateCommitmentTerm(&tSim, branches[1-bit], eSim, sSim)

	terms := make([]*ristretto.Point, 2)
	terms[bit] = &tTrue
	terms[1-bit] = &tSim

	AppendPoint("bit-commitment", commitment, t)
	AppendPoint("T0", terms[0], t)
	AppendPoint("T1", terms[1], t)
	e := ChallengeScalar("bit-e", t)

	var eTrue, sTrue, tmp ristretto.Scalar
	eTrue.Sub(e, eSim)
	sTrue.Add(&w, tmp.Mul(&eTrue, blinding))

	proof := &bitProof{commitment: commitment}
	es := make([]*ristretto.Scalar, 2)
	ss := make([]*ristretto.Scalar, 2)
	es[bit] = &eTrue
	ss[bit] = &sTrue
	es[1-bit] = eSim
	ss[1-bit] = sSim
	proof.e0, proof.e1 = es[0], es[1]
	proof.s0, proof.s1 = ss[0], ss[1]
	return proof
}

// bitVerify reconstructs both commitment terms from public data and checks
// the stored challenge pair sums to the recomputed transcript challenge.
func bitVerify(t *merlin.Transcript, proof *bitProof, position uint) bool {
	if proof == nil || proof.commitment == nil ||
		proof.e0 == nil || proof.e1 == nil || proof.s0 == nil || proof.s1 == nil {
		return false
	}

	branches := bitBranches(proof.commitment, position)

	var t0, t1 ristretto.Point
	simulateCommitmentTerm(&t0, branches[0], proof.e0, proof.s0)
	simulateCommitmentTerm(&t1, branches[1], proof.e1, proof.s1)

	AppendPoint("bit-commitment", proof.commitment, t)
	AppendPoint("T0", &t0, t)
	AppendPoint("T1", &t1, t)
	e := ChallengeScalar("bit-e", t)

	var sum ristretto.Scalar
	sum.Add(proof.e0, proof.e1)
	return bytes.Equal(sum.Bytes(), e.Bytes())
}

func bitBranches(commitment *ristretto.Point, position uint) [2]*ristretto.Point {
	var weighted, shifted ristretto.Point
	weighted.ScalarMult(gens.B, uint64ToScalar(uint64(1)<<position))
	shifted.Sub(commitment, &weighted)
	return [2]*ristretto.Point{commitment, &shifted}
}

// simulateCommitmentTerm solves T = s*H - e*A, the commitment term that makes
// the branch (A, e, s) accept.
func simulateCommitmentTerm(dst *ristretto.Point, statement *ristretto.Point, e, s *ristretto.Scalar) {
	var lhs, rhs ristretto.Point
	lhs.ScalarMult(gens.BBlinding, s)
	rhs.ScalarMult(statement, e)
	dst.Sub(&lhs, &rhs)
}

// schnorrProve is a Schnorr proof of knowledge of the discrete log of
// statement with respect to H, bound to the running transcript.
func schnorrProve(t *merlin.Transcript, witness *ristretto.Scalar) (e, s *ristretto.Scalar) {
	var w ristretto.Scalar
	w.Rand()
	var commit ristretto.Point
	commit.ScalarMult(gens.BBlinding, &w)

	AppendPoint("agg-T", &commit, t)
	e = ChallengeScalar("agg-e", t)

	var resp, tmp ristretto.Scalar
	resp.Add(&w, tmp.Mul(e, witness))
	return e, &resp
}

func schnorrVerify(t *merlin.Transcript, statement *ristretto.Point, e, s *ristretto.Scalar) bool {
	if statement == nil || e == nil || s == nil {
		return false
	}
	var commit ristretto.Point
	simulateCommitmentTerm(&commit, statement, e, s)

	AppendPoint("agg-T", &commit, t)
	expected := ChallengeScalar("agg-e", t)
	return bytes.Equal(expected.Bytes(), e.Bytes())
}
