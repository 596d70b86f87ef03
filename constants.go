package discard

import "time"

const (
	HASH_TO_POINT_DOMAIN_TAG   = "dc_key_image_hash_to_point"
	HASH_TO_SCALAR_DOMAIN_TAG  = "dc_stealth_hash_to_scalar"
	RANGE_PROOF_DOMAIN_TAG     = "dc_range_proof_transcript"
	RING_CHALLENGE_DOMAIN_TAG  = "dc_ring_signature_challenge"
	RING_MESSAGE_DOMAIN_TAG    = "dc_ring_signature_message"
	STEALTH_SHARED_DOMAIN_TAG  = "dc_stealth_shared_secret"
	NULLIFIER_DOMAIN_TAG       = "dc_spend_nullifier"
	BUNDLE_DIGEST_DOMAIN_TAG   = "dc_bundle_integrity"
	AUX_BINDING_DOMAIN_TAG     = "dc_aux_binding"
	COMPLIANCE_SIGNING_CONTEXT = "dc_compliance_token"

	NOTE_KDF_SALT = "dc-note-okm"
)

const (
	// DefaultRingSize is the anonymity set used when the caller does not
	// choose one. Larger rings cost linearly more in signature size and
	// decoy-selection effort.
	DefaultRingSize = 11

	// BundleFreshnessWindow bounds the accepted age of a bundle at
	// verification time.
	BundleFreshnessWindow = time.Hour
)

// ValidBitLengths is the set of accepted range-proof bit lengths.
var ValidBitLengths = []int{8, 16, 32, 64}

func validBitLength(bits int) bool {
	for _, n := range ValidBitLengths {
		if n == bits {
			return true
		}
	}
	return false
}

// RangeProofSize returns the serialized proof size in bytes for capacity
// planning: the main commitment, five 32-byte fields per bit, and the
// aggregation proof.
func RangeProofSize(bits int) int {
	return 32 + bits*160 + 64
}
