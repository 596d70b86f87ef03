package discard

import (
	"encoding/hex"
	"time"
)

// CheckResults itemizes the seven independent bundle checks. Every check
// runs even when an earlier one fails, so audit logging can report all
// failures without revealing the amount, blinding, or true signer.
type CheckResults struct {
	StealthAddress  bool `json:"stealth_address"`
	Commitment      bool `json:"commitment"`
	RangeProof      bool `json:"range_proof"`
	RingSignature   bool `json:"ring_signature"`
	NullifierUnused bool `json:"nullifier_unused"`
	Compliance      bool `json:"compliance"`
	Freshness       bool `json:"freshness"`
}

type VerifyResult struct {
	Valid  bool         `json:"valid"`
	Checks CheckResults `json:"checks"`
	Errors []string     `json:"errors,omitempty"`
}

func (r *VerifyResult) fail(check *bool, message string) {
	*check = false
	r.Valid = false
	r.Errors = append(r.Errors, message)
}

// VerifyBundle runs the seven checks plus the integrity-digest gate. It
// holds the protocol lock so a concurrent ConsumeBundle for the same key
// image or nullifier cannot interleave with the used-set reads.
func (p *Protocol) VerifyBundle(bundle *TransferBundle, expectedAmount *uint64) *VerifyResult {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.verifyBundleLocked(bundle, expectedAmount, time.Now())
}

func (p *Protocol) verifyBundleLocked(bundle *TransferBundle, expectedAmount *uint64, now time.Time) *VerifyResult {
	result := &VerifyResult{
		Valid: true,
		Checks: CheckResults{
			StealthAddress:  true,
			Commitment:      true,
			RangeProof:      true,
			RingSignature:   true,
			NullifierUnused: true,
			Compliance:      true,
			Freshness:       true,
		},
	}
	if bundle == nil {
		result.Valid = false
		result.Checks = CheckResults{}
		result.Errors = append(result.Errors, "bundle is nil")
		return result
	}

	if bundle.Digest() != bundle.IntegrityHash {
		result.Valid = false
		result.Errors = append(result.Errors, "integrity digest mismatch")
	}

	// 1. stealth address well-formedness
	if bundle.Stealth == nil {
		result.fail(&result.Checks.StealthAddress, "stealth address missing")
	} else {
		if _, err := DecodeAccountKey(bundle.Stealth.Address); err != nil {
			result.fail(&result.Checks.StealthAddress, "stealth address not a valid account key")
		}
		if _, err := parsePoint(bundle.Stealth.EphemeralPublicKey); err != nil {
			result.fail(&result.Checks.StealthAddress, "ephemeral public key malformed")
		}
	}

	// 2. commitment encoding
	if _, err := parsePoint(bundle.Commitment); err != nil {
		result.fail(&result.Checks.Commitment, "commitment malformed")
	}

	// 3. range proof
	if !VerifyRangeProof(bundle.RangeProof, bundle.Commitment) {
		result.fail(&result.Checks.RangeProof, "range proof invalid")
	}

	// 4. ring signature and key image
	if !VerifyRingDigest(bundle.RingSignature) {
		result.fail(&result.Checks.RingSignature, "ring signature invalid")
	} else {
		if expectedAmount != nil && bundle.Stealth != nil {
			expected := ringMessageDigest(BundleSigningMessage(*expectedAmount, bundle.Stealth.Address, bundle.CreatedAt))
			if hex.EncodeToString(expected) != bundle.RingSignature.MessageDigest {
				result.fail(&result.Checks.RingSignature, "ring signature does not bind the expected amount")
			}
		}
		if IsKeyImageUsed(bundle.RingSignature.KeyImage, p.keyImages) {
			result.fail(&result.Checks.RingSignature, "key image already used")
		}
	}

	// 5. nullifier
	if bundle.Nullifier == "" || p.nullifiers.Contains(bundle.Nullifier) {
		result.fail(&result.Checks.NullifierUnused, "nullifier already used")
	}

	// 6. compliance
	if bundle.ComplianceToken == nil {
		if p.config.ComplianceMandatory {
			result.fail(&result.Checks.Compliance, "compliance token required but absent")
		}
	} else if !VerifyComplianceToken(bundle.ComplianceToken, p.config.ComplianceAuthority, now) {
		result.fail(&result.Checks.Compliance, "compliance token invalid or expired")
	}

	// 7. freshness
	age := now.Unix() - bundle.CreatedAt
	if age < 0 || time.Duration(age)*time.Second > p.config.FreshnessWindow {
		result.fail(&result.Checks.Freshness, "bundle outside freshness window")
	}

	// optional auxiliary channel consistency
	if bundle.AuxCiphertext != nil || bundle.AuxBinding != nil {
		if !VerifyAuxBindingProof(bundle.AuxBinding, bundle.AuxCiphertext, bundle.Commitment, bundle.CreatedAt) {
			result.Valid = false
			result.Errors = append(result.Errors, "auxiliary binding proof invalid")
		}
	}

	return result
}

// ConsumeBundle marks the bundle's nullifier and key image as spent. It
// must be called only after settlement of a bundle whose verification was
// valid; calling it twice is idempotent.
func (p *Protocol) ConsumeBundle(bundle *TransferBundle) error {
	if bundle == nil || bundle.RingSignature == nil {
		return ErrBundleIntegrity
	}
	if bundle.Digest() != bundle.IntegrityHash {
		return ErrBundleIntegrity
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.nullifiers.Add(bundle.Nullifier)
	p.keyImages.Add(bundle.RingSignature.KeyImage)
	p.logger.Info().Str("nullifier", bundle.Nullifier).Msg("transfer bundle consumed")
	return nil
}
