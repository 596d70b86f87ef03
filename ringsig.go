package discard

import (
	"encoding/hex"

	"github.com/bwesterb/go-ristretto"
	"github.com/dchest/blake2b"
)

// RingSignature is a linkable ring signature: the signer is one of
// PublicKeys, which one is hidden, and KeyImage is identical across every
// signature produced by the same private key.
type RingSignature struct {
	PublicKeys    []string `json:"public_keys"`
	KeyImage      string   `json:"key_image"`
	Challenges    []string `json:"challenges"`
	Responses     []string `json:"responses"`
	MessageDigest string   `json:"message_digest"`
}

func keyImageFromPrivate(private *ristretto.Scalar) *ristretto.Point {
	var p ristretto.Point
	p.ScalarMultBase(private)

	hp := hashToPoint(&p)
	var point ristretto.Point
	return point.ScalarMult(hp, private)
}

func ringMessageDigest(message []byte) []byte {
	hash := blake2b.New256()
	hash.Write([]byte(RING_MESSAGE_DOMAIN_TAG))
	hash.Write(message)
	return hash.Sum(nil)
}

func ringChallenge(digest []byte, keyImage, l, r *ristretto.Point) *ristretto.Scalar {
	hash := blake2b.New512()
	hash.Write([]byte(RING_CHALLENGE_DOMAIN_TAG))
	hash.Write(digest)
	hash.Write(keyImage.Bytes())
	hash.Write(l.Bytes())
	hash.Write(r.Bytes())

	var key [64]byte
	copy(key[:], hash.Sum(nil))

	var s ristretto.Scalar
	return s.SetReduced(&key)
}

// SignRing signs message with the private key at signerIndex of ring. The
// walk starts at the signer with a random nonce, derives each following
// member's challenge by hashing forward, and closes the ring by solving the
// signer's own response algebraically.
func SignRing(message []byte, private *ristretto.Scalar, signerIndex int, ring []*ristretto.Point) (*RingSignature, error) {
	size := len(ring)
	if size < 2 {
		return nil, ErrInvalidRingSize
	}
	if signerIndex < 0 || signerIndex >= size {
		return nil, ErrInvalidIndex
	}

	digest := ringMessageDigest(message)
	keyImage := keyImageFromPrivate(private)

	c := make([]*ristretto.Scalar, size)
	r := make([]*ristretto.Scalar, size)

	var alpha ristretto.Scalar
	alpha.Rand()

	var l0, r0 ristretto.Point
	l0.ScalarMultBase(&alpha)
	r0.ScalarMult(hashToPoint(ring[signerIndex]), &alpha)
	c[(signerIndex+1)%size] = ringChallenge(digest, keyImage, &l0, &r0)

	for n := 1; n < size; n++ {
		i := (signerIndex + n) % size
		r[i] = randomScalar()

		var l, l1, l2 ristretto.Point
		l.Add(l1.ScalarMultBase(r[i]), l2.ScalarMult(ring[i], c[i]))
		var rp, rp1, rp2 ristretto.Point
		rp.Add(rp1.ScalarMult(hashToPoint(ring[i]), r[i]), rp2.ScalarMult(keyImage, c[i]))
		c[(i+1)%size] = ringChallenge(digest, keyImage, &l, &rp)
	}

	// only step that touches the private key
	var s0, s1 ristretto.Scalar
	r[signerIndex] = s0.Sub(&alpha, s1.Mul(c[signerIndex], private))

	keys := make([]string, size)
	challenges := make([]string, size)
	responses := make([]string, size)
	for i := 0; i < size; i++ {
		keys[i] = pointHex(ring[i])
		challenges[i] = scalarHex(c[i])
		responses[i] = scalarHex(r[i])
	}
	return &RingSignature{
		PublicKeys:    keys,
		KeyImage:      pointHex(keyImage),
		Challenges:    challenges,
		Responses:     responses,
		MessageDigest: hex.EncodeToString(digest),
	}, nil
}

// VerifyRing recomputes every member's commitment points from public data
// and checks the challenge cycle closes. It returns false on any mismatch or
// malformed field, never an error.
func VerifyRing(sig *RingSignature, message []byte) bool {
	if sig == nil {
		return false
	}
	if hex.EncodeToString(ringMessageDigest(message)) != sig.MessageDigest {
		return false
	}
	return VerifyRingDigest(sig)
}

// VerifyRingDigest verifies the challenge cycle against the stored message
// digest. Bundle verification uses this form because the signed message
// binds the secret amount, which the verifier does not know.
func VerifyRingDigest(sig *RingSignature) bool {
	if sig == nil {
		return false
	}
	size := len(sig.PublicKeys)
	if size < 2 || len(sig.Challenges) != size || len(sig.Responses) != size {
		return false
	}

	digest, err := hex.DecodeString(sig.MessageDigest)
	if err != nil || len(digest) != 32 {
		return false
	}
	keyImage, err := parsePoint(sig.KeyImage)
	if err != nil {
		return false
	}

	ring := make([]*ristretto.Point, size)
	c := make([]*ristretto.Scalar, size)
	r := make([]*ristretto.Scalar, size)
	for i := 0; i < size; i++ {
		if ring[i], err = parsePoint(sig.PublicKeys[i]); err != nil {
			return false
		}
		if c[i], err = parseScalar(sig.Challenges[i]); err != nil {
			return false
		}
		if r[i], err = parseScalar(sig.Responses[i]); err != nil {
			return false
		}
	}

	for i := 0; i < size; i++ {
		var l, l1, l2 ristretto.Point
		l.Add(l1.ScalarMultBase(r[i]), l2.ScalarMult(ring[i], c[i]))
		var rp, rp1, rp2 ristretto.Point
		rp.Add(rp1.ScalarMult(hashToPoint(ring[i]), r[i]), rp2.ScalarMult(keyImage, c[i]))

		next := ringChallenge(digest, keyImage, &l, &rp)
		if scalarHex(next) != sig.Challenges[(i+1)%size] {
			return false
		}
	}
	return true
}

// IsKeyImageUsed reports whether the signature's key image is already in the
// used set, the anonymous double-sign signal.
func IsKeyImageUsed(keyImage string, used UsedSet) bool {
	return used.Contains(keyImage)
}

// LinkabilityResult reports the first pair of signatures sharing a key
// image within a batch.
type LinkabilityResult struct {
	Linkable bool   `json:"linkable"`
	First    int    `json:"first"`
	Second   int    `json:"second"`
	KeyImage string `json:"key_image"`
}

// CheckLinkability scans a batch for a repeated key image. It runs on the
// stored key images only, independent of whether the signatures verify.
func CheckLinkability(sigs []*RingSignature) *LinkabilityResult {
	seen := make(map[string]int, len(sigs))
	for i, sig := range sigs {
		if sig == nil {
			continue
		}
		if j, ok := seen[sig.KeyImage]; ok {
			return &LinkabilityResult{Linkable: true, First: j, Second: i, KeyImage: sig.KeyImage}
		}
		seen[sig.KeyImage] = i
	}
	return &LinkabilityResult{First: -1, Second: -1}
}
