package discard

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/bwesterb/go-ristretto"
	"github.com/dchest/blake2b"
)

func hashToPoint(public *ristretto.Point) *ristretto.Point {
	hash := blake2b.New512()
	hash.Write([]byte(HASH_TO_POINT_DOMAIN_TAG))
	hash.Write(public.Bytes())
	var key [64]byte
	copy(key[:], hash.Sum(nil))

	return pointFromUniformBytes(key[:])
}

func pointFromUniformBytes(key []byte) *ristretto.Point {
	var r1Bytes, r2Bytes [32]byte
	copy(r1Bytes[:], key[:32])
	copy(r2Bytes[:], key[32:])
	var r, r1, r2 ristretto.Point
	return r.Add(r1.SetElligator(&r1Bytes), r2.SetElligator(&r2Bytes))
}

func hashToScalar(tag string, data ...[]byte) *ristretto.Scalar {
	hash := blake2b.New512()
	hash.Write([]byte(tag))
	for _, d := range data {
		hash.Write(d)
	}
	var key [64]byte
	copy(key[:], hash.Sum(nil))

	var hs ristretto.Scalar
	return hs.SetReduced(&key)
}

func fromBytesModOrderWide(data []byte) *ristretto.Scalar {
	var data64 [64]byte
	copy(data64[:], data)
	var hs ristretto.Scalar
	return hs.SetReduced(&data64)
}

func uint64ToScalar(i uint64) *ristretto.Scalar {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:], i)
	var s ristretto.Scalar
	return s.SetBytes(&buf)
}

func uint64LE(i uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, i)
	return buf
}

func randomScalar() *ristretto.Scalar {
	var s ristretto.Scalar
	return s.Rand()
}

// parseScalar decodes a hex-encoded 32-byte scalar. Unlike the prover-side
// helpers it never panics, so it is safe on untrusted input.
func parseScalar(h string) (*ristretto.Scalar, error) {
	buf, err := hex.DecodeString(h)
	if err != nil || len(buf) != 32 {
		return nil, ErrInvalidScalar
	}
	var buf32 [32]byte
	copy(buf32[:], buf)
	var s ristretto.Scalar
	return s.SetBytes(&buf32), nil
}

func parsePoint(h string) (*ristretto.Point, error) {
	buf, err := hex.DecodeString(h)
	if err != nil || len(buf) != 32 {
		return nil, ErrInvalidPoint
	}
	var buf32 [32]byte
	copy(buf32[:], buf)
	var p ristretto.Point
	if !p.SetBytes(&buf32) {
		return nil, ErrInvalidPoint
	}
	return &p, nil
}

func hexEncode(b []byte) string {
	return hex.EncodeToString(b)
}

func hexDecode(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

func pointHex(p *ristretto.Point) string {
	return hex.EncodeToString(p.Bytes())
}

func scalarHex(s *ristretto.Scalar) string {
	return hex.EncodeToString(s.Bytes())
}

func multiscalarMul(scalars []*ristretto.Scalar, points []*ristretto.Point) *ristretto.Point {
	var p ristretto.Point
	p.SetZero()
	for i := range scalars {
		var t ristretto.Point
		t.ScalarMult(points[i], scalars[i])
		p.Add(&p, &t)
	}
	return &p
}

// PublicKey returns the base-point multiple of a private scalar.
func PublicKey(private *ristretto.Scalar) *ristretto.Point {
	var point ristretto.Point
	return point.ScalarMultBase(private)
}

func createSharedSecret(public *ristretto.Point, private *ristretto.Scalar) *ristretto.Point {
	var r ristretto.Point
	return r.ScalarMult(public, private)
}
