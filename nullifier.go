package discard

import (
	"encoding/hex"

	"github.com/bwesterb/go-ristretto"
	"github.com/dchest/blake2b"
)

// NewNullifier derives the single-use spend token from stable,
// spend-identifying data only. Wall-clock time is deliberately excluded so
// a retried transfer for the same logical spend maps to the same nullifier;
// replay freshness is a separate bundle-age check.
func NewNullifier(senderPublic *ristretto.Point, amount uint64, onetimeAddress, outputID string) string {
	hash := blake2b.New256()
	hash.Write([]byte(NULLIFIER_DOMAIN_TAG))
	hash.Write(senderPublic.Bytes())
	hash.Write(uint64LE(amount))
	hash.Write([]byte(onetimeAddress))
	hash.Write([]byte(outputID))
	return hex.EncodeToString(hash.Sum(nil))
}
