package discard

import "errors"

var (
	ErrInvalidBlindingSize = errors.New("blinding factor must be 32 bytes")
	ErrZeroBlinding        = errors.New("blinding factor reduces to zero")
	ErrOutOfRange          = errors.New("value out of range for bit length")
	ErrInvalidBitLength    = errors.New("bit length must be one of 8, 16, 32, 64")
	ErrInvalidIndex        = errors.New("signer index out of ring bounds")
	ErrInvalidRingSize     = errors.New("ring must contain at least two members")
	ErrInvalidPoint        = errors.New("invalid group element encoding")
	ErrInvalidScalar       = errors.New("invalid scalar encoding")
	ErrComplianceRequired  = errors.New("compliance token required but unavailable")
	ErrNoteTooShort        = errors.New("encrypted note shorter than its authentication tag")
	ErrBundleIntegrity     = errors.New("bundle integrity digest mismatch")
)
