package discard

import (
	"encoding/hex"

	"github.com/dchest/blake2b"
)

// TransferBundle is the single-use record of a private transfer: one-time
// recipient address, amount commitment with its range proof, ring signature
// over the anonymity set, spend nullifier, optional compliance token and
// auxiliary channel, all bound by an integrity digest.
type TransferBundle struct {
	Stealth         *StealthAddress  `json:"stealth_address"`
	Commitment      string           `json:"commitment"`
	RangeProof      *RangeProof      `json:"range_proof"`
	RingSignature   *RingSignature   `json:"ring_signature"`
	Nullifier       string           `json:"nullifier"`
	ComplianceToken *ComplianceToken `json:"compliance_token,omitempty"`
	EncryptedNote   string           `json:"encrypted_note,omitempty"`
	AuxCiphertext   *AuxCiphertext   `json:"aux_ciphertext,omitempty"`
	AuxBinding      *AuxBindingProof `json:"aux_binding,omitempty"`
	CreatedAt       int64            `json:"created_at"`
	IntegrityHash   string           `json:"integrity_hash"`
}

// Digest binds the bundle fields that identify the transfer. Changing any
// of them invalidates the stored IntegrityHash.
func (b *TransferBundle) Digest() string {
	hash := blake2b.New256()
	hash.Write([]byte(BUNDLE_DIGEST_DOMAIN_TAG))
	if b.Stealth != nil {
		hash.Write([]byte(b.Stealth.Address))
		hash.Write([]byte(b.Stealth.EphemeralPublicKey))
	}
	hash.Write([]byte(b.Commitment))
	hash.Write([]byte(b.Nullifier))
	hash.Write(uint64LE(uint64(b.CreatedAt)))
	return hex.EncodeToString(hash.Sum(nil))
}

// BundleSigningMessage is what the ring signature commits to: the amount,
// the one-time address, and the creation time.
func BundleSigningMessage(amount uint64, onetimeAddress string, createdAt int64) []byte {
	var message []byte
	message = append(message, uint64LE(amount)...)
	message = append(message, []byte(onetimeAddress)...)
	message = append(message, uint64LE(uint64(createdAt))...)
	return message
}
