package discard

import (
	"context"
	"encoding/hex"

	"github.com/bwesterb/go-ristretto"
	"github.com/dchest/blake2b"
)

// AuxCiphertext is the auxiliary encrypted-amount channel produced by the
// external MPC collaborator.
type AuxCiphertext struct {
	Ciphertext      string `json:"ciphertext"`
	SenderPublicKey string `json:"sender_public_key"`
	Nonce           string `json:"nonce"`
}

// AuxEncryptor encrypts the amount and blinding scalar for the auxiliary
// channel.
type AuxEncryptor interface {
	EncryptValues(ctx context.Context, amount uint64, blinding []byte, senderKey string) (*AuxCiphertext, error)
}

// AuxBindingProof lets a verifier check the auxiliary ciphertext is
// consistent with the Pedersen commitment without decrypting either: a
// digest tying ciphertext, commitment and timestamp together, plus a proof
// of knowledge of the commitment opening bound to that digest.
type AuxBindingProof struct {
	Digest string `json:"digest"`
	T      string `json:"t"`
	E      string `json:"e"`
	SValue string `json:"s_value"`
	SBlind string `json:"s_blind"`
}

func auxBindingDigest(ciphertext, commitment string, timestamp int64) []byte {
	hash := blake2b.New256()
	hash.Write([]byte(AUX_BINDING_DOMAIN_TAG))
	hash.Write([]byte(ciphertext))
	hash.Write([]byte(commitment))
	hash.Write(uint64LE(uint64(timestamp)))
	return hash.Sum(nil)
}

func auxBindingChallenge(digest []byte, t *ristretto.Point) *ristretto.Scalar {
	return hashToScalar(AUX_BINDING_DOMAIN_TAG, digest, t.Bytes())
}

// NewAuxBindingProof proves knowledge of the opening (value, blinding) of
// commitment, with the challenge bound to the auxiliary ciphertext digest.
func NewAuxBindingProof(aux *AuxCiphertext, commitment string, timestamp int64, value uint64, blinding []byte) (*AuxBindingProof, error) {
	r, err := blindingToScalar(blinding)
	if err != nil {
		return nil, err
	}
	digest := auxBindingDigest(aux.Ciphertext, commitment, timestamp)

	var wv, wr ristretto.Scalar
	wv.Rand()
	wr.Rand()
	t := gens.Commit(&wv, &wr)
	e := auxBindingChallenge(digest, t)

	var sv, sr, tmp ristretto.Scalar
	sv.Add(&wv, tmp.Mul(e, uint64ToScalar(value)))
	sr.Add(&wr, tmp.Mul(e, r))

	return &AuxBindingProof{
		Digest: hex.EncodeToString(digest),
		T:      pointHex(t),
		E:      scalarHex(e),
		SValue: scalarHex(&sv),
		SBlind: scalarHex(&sr),
	}, nil
}

// VerifyAuxBindingProof returns false, never an error, on any mismatch.
func VerifyAuxBindingProof(proof *AuxBindingProof, aux *AuxCiphertext, commitment string, timestamp int64) bool {
	if proof == nil || aux == nil {
		return false
	}
	digest := auxBindingDigest(aux.Ciphertext, commitment, timestamp)
	if hex.EncodeToString(digest) != proof.Digest {
		return false
	}

	c, err := parsePoint(commitment)
	if err != nil {
		return false
	}
	t, err := parsePoint(proof.T)
	if err != nil {
		return false
	}
	e, err := parseScalar(proof.E)
	if err != nil {
		return false
	}
	sv, err := parseScalar(proof.SValue)
	if err != nil {
		return false
	}
	sr, err := parseScalar(proof.SBlind)
	if err != nil {
		return false
	}

	if scalarHex(auxBindingChallenge(digest, t)) != proof.E {
		return false
	}

	// sv*G + sr*H == T + e*C
	lhs := gens.Commit(sv, sr)
	var ec, rhs ristretto.Point
	ec.ScalarMult(c, e)
	rhs.Add(t, &ec)
	return pointHex(lhs) == pointHex(&rhs)
}
