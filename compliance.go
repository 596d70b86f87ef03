package discard

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/ChainSafe/go-schnorrkel"
)

// ComplianceToken is the optional attestation supplied by the external
// compliance collaborator, signed by its sr25519 authority key.
type ComplianceToken struct {
	Type      string `json:"type"`
	Hash      string `json:"hash"`
	Nullifier string `json:"nullifier"`
	ExpiresAt int64  `json:"expires_at"`
	Signature string `json:"signature"`
}

type ComplianceResult struct {
	Allowed bool             `json:"allowed"`
	Proof   *ComplianceToken `json:"proof,omitempty"`
}

// ComplianceClient is consumed once per bundle creation. Its absence is
// non-fatal unless compliance is configured mandatory.
type ComplianceClient interface {
	CheckPrivateTransfer(ctx context.Context, userID string) (*ComplianceResult, error)
}

func (t *ComplianceToken) signingPayload() []byte {
	var payload []byte
	payload = append(payload, []byte(t.Type)...)
	payload = append(payload, []byte(t.Hash)...)
	payload = append(payload, []byte(t.Nullifier)...)
	payload = append(payload, uint64LE(uint64(t.ExpiresAt))...)
	return payload
}

// VerifyComplianceToken checks expiry and, when an authority key is
// configured, the token's sr25519 signature. It returns false on malformed
// input, never an error.
func VerifyComplianceToken(token *ComplianceToken, authority *[32]byte, now time.Time) bool {
	if token == nil {
		return false
	}
	if token.ExpiresAt <= now.Unix() {
		return false
	}
	if authority == nil {
		return true
	}

	sig, err := hex.DecodeString(token.Signature)
	if err != nil || len(sig) != 64 {
		return false
	}
	var sig64 [64]byte
	copy(sig64[:], sig)
	signature := schnorrkel.Signature{}
	if err := signature.Decode(sig64); err != nil {
		return false
	}

	public := schnorrkel.NewPublicKey(*authority)
	transcript := schnorrkel.NewSigningContext([]byte(COMPLIANCE_SIGNING_CONTEXT), token.signingPayload())
	return public.Verify(&signature, transcript)
}

// SignComplianceToken is used by tests and by an in-process attestation
// service to produce a token the verifier accepts.
func SignComplianceToken(token *ComplianceToken, authority *schnorrkel.SecretKey) error {
	transcript := schnorrkel.NewSigningContext([]byte(COMPLIANCE_SIGNING_CONTEXT), token.signingPayload())
	signature, err := authority.Sign(transcript)
	if err != nil {
		return err
	}
	encoded := signature.Encode()
	token.Signature = hex.EncodeToString(encoded[:])
	return nil
}
