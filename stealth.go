package discard

import (
	"encoding/hex"
	"time"

	"github.com/bwesterb/go-ristretto"
	"github.com/dchest/blake2b"
)

// StealthAddress is a one-time recipient address. Only the derived address
// and the ephemeral public key are published; the recipient re-derives the
// matching private key from its own private key and the ephemeral key.
type StealthAddress struct {
	Address            string `json:"address"`
	EphemeralPublicKey string `json:"ephemeral_public_key"`
	SharedSecretDigest string `json:"shared_secret_digest"`
	CreatedAt          int64  `json:"created_at"`
}

// DerivedStealthKey is the recipient-side view of a stealth address: the
// one-time private key that can spend funds sent to it.
type DerivedStealthKey struct {
	PrivateKey *ristretto.Scalar
	PublicKey  *ristretto.Point
	Address    string
}

func stealthSharedDigest(shared *ristretto.Point) []byte {
	hash := blake2b.New256()
	hash.Write([]byte(STEALTH_SHARED_DOMAIN_TAG))
	hash.Write(shared.Bytes())
	return hash.Sum(nil)
}

func onetimeKeyFromDigest(digest []byte) (*ristretto.Scalar, *ristretto.Point) {
	private := hashToScalar(HASH_TO_SCALAR_DOMAIN_TAG, digest)
	return private, PublicKey(private)
}

// GenerateStealthAddress performs a Diffie-Hellman agreement between a fresh
// ephemeral key and the recipient's public key and derives a one-time
// keypair from the hashed shared value. The raw shared point is returned so
// the caller can key the recipient note with the same agreement.
func GenerateStealthAddress(recipientPublic *ristretto.Point) (*StealthAddress, *ristretto.Point, error) {
	if recipientPublic == nil {
		return nil, nil, ErrInvalidPoint
	}
	var ephemeral ristretto.Scalar
	ephemeral.Rand()

	shared := createSharedSecret(recipientPublic, &ephemeral)
	digest := stealthSharedDigest(shared)
	_, onetimePublic := onetimeKeyFromDigest(digest)

	return &StealthAddress{
		Address:            EncodeAccountKey(onetimePublic),
		EphemeralPublicKey: pointHex(PublicKey(&ephemeral)),
		SharedSecretDigest: hex.EncodeToString(digest),
		CreatedAt:          time.Now().Unix(),
	}, shared, nil
}

// DeriveStealthKey recomputes the shared value from the recipient side and
// returns the one-time private key. This is how funds sent to a stealth
// address are spent.
func DeriveStealthKey(recipientPrivate *ristretto.Scalar, ephemeralPublicKey string) (*DerivedStealthKey, error) {
	ephemeral, err := parsePoint(ephemeralPublicKey)
	if err != nil {
		return nil, err
	}
	shared := createSharedSecret(ephemeral, recipientPrivate)
	digest := stealthSharedDigest(shared)
	private, public := onetimeKeyFromDigest(digest)

	return &DerivedStealthKey{
		PrivateKey: private,
		PublicKey:  public,
		Address:    EncodeAccountKey(public),
	}, nil
}

// IsOwnStealthAddress re-derives and compares; used for wallet scanning.
func IsOwnStealthAddress(address *StealthAddress, recipientPrivate *ristretto.Scalar) bool {
	if address == nil {
		return false
	}
	derived, err := DeriveStealthKey(recipientPrivate, address.EphemeralPublicKey)
	if err != nil {
		return false
	}
	return derived.Address == address.Address
}

// GenerateStealthAddresses generates count independent one-time addresses
// for the same recipient; no state is shared between iterations.
func GenerateStealthAddresses(recipientPublic *ristretto.Point, count int) ([]*StealthAddress, error) {
	out := make([]*StealthAddress, count)
	for i := 0; i < count; i++ {
		address, _, err := GenerateStealthAddress(recipientPublic)
		if err != nil {
			return nil, err
		}
		out[i] = address
	}
	return out, nil
}

// ScanStealthAddresses returns the indexes of the addresses owned by the
// recipient key.
func ScanStealthAddresses(addresses []*StealthAddress, recipientPrivate *ristretto.Scalar) []int {
	var owned []int
	for i, address := range addresses {
		if IsOwnStealthAddress(address, recipientPrivate) {
			owned = append(owned, i)
		}
	}
	return owned
}
