package discard

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/bwesterb/go-ristretto"
	"github.com/rs/zerolog"
)

// ProtocolConfig carries the caller-tunable knobs of the bundle protocol.
type ProtocolConfig struct {
	RingSize            int
	RangeBits           int
	FreshnessWindow     time.Duration
	ComplianceMandatory bool
	// ComplianceAuthority, when set, is the sr25519 key compliance tokens
	// must be signed with.
	ComplianceAuthority *[32]byte
}

func DefaultProtocolConfig() ProtocolConfig {
	return ProtocolConfig{
		RingSize:        DefaultRingSize,
		RangeBits:       64,
		FreshnessWindow: BundleFreshnessWindow,
	}
}

// ProtocolOptions wires the external collaborators. Every field is
// optional: missing used-sets default to in-memory ones, a missing decoy
// selector degrades to random decoys, missing compliance and aux channels
// are simply absent from the bundles.
type ProtocolOptions struct {
	Config     ProtocolConfig
	Decoys     *DecoySelector
	Compliance ComplianceClient
	Aux        AuxEncryptor
	KeyImages  UsedSet
	Nullifiers UsedSet
	Logger     zerolog.Logger
}

// Protocol composes the stealth, commitment and ring signature engines into
// the transfer bundle lifecycle: create, verify, consume.
type Protocol struct {
	config     ProtocolConfig
	decoys     *DecoySelector
	compliance ComplianceClient
	aux        AuxEncryptor
	keyImages  UsedSet
	nullifiers UsedSet
	logger     zerolog.Logger

	// verification reads the used-sets and consumption writes them; a
	// check-then-spend interleaving between two bundles sharing a key image
	// is the double-spend the protocol exists to prevent, so both run under
	// this lock.
	mutex sync.Mutex
}

func NewProtocol(opts ProtocolOptions) *Protocol {
	config := opts.Config
	if config.RingSize == 0 {
		config.RingSize = DefaultRingSize
	}
	if config.RangeBits == 0 {
		config.RangeBits = 64
	}
	if config.FreshnessWindow == 0 {
		config.FreshnessWindow = BundleFreshnessWindow
	}
	keyImages := opts.KeyImages
	if keyImages == nil {
		keyImages = NewMemoryUsedSet()
	}
	nullifiers := opts.Nullifiers
	if nullifiers == nil {
		nullifiers = NewMemoryUsedSet()
	}
	return &Protocol{
		config:     config,
		decoys:     opts.Decoys,
		compliance: opts.Compliance,
		aux:        opts.Aux,
		keyImages:  keyImages,
		nullifiers: nullifiers,
		logger:     opts.Logger,
	}
}

// TransferParams describes one private transfer.
type TransferParams struct {
	Sender             *KeyPair
	RecipientPublicKey *ristretto.Point
	Amount             uint64
	Memo               string
	// UserID keys the compliance check.
	UserID string
	// OutputID is a stable identifier of the spent output; retries of the
	// same logical spend must pass the same value so they map to the same
	// nullifier. Defaults to the ephemeral public key of the fresh stealth
	// address.
	OutputID  string
	RingSize  int
	RangeBits int
}

// CreateBundle builds a complete transfer bundle. Decoy selection is the
// only step allowed to block; everything else is pure computation.
func (p *Protocol) CreateBundle(ctx context.Context, params *TransferParams) (*TransferBundle, error) {
	if params == nil || params.Sender == nil || params.Sender.PrivateKey == nil {
		return nil, fmt.Errorf("transfer params missing sender key")
	}
	if params.RecipientPublicKey == nil {
		return nil, fmt.Errorf("transfer params missing recipient key")
	}
	ringSize := params.RingSize
	if ringSize == 0 {
		ringSize = p.config.RingSize
	}
	if ringSize < 2 {
		return nil, ErrInvalidRingSize
	}
	rangeBits := params.RangeBits
	if rangeBits == 0 {
		rangeBits = p.config.RangeBits
	}

	stealth, shared, err := GenerateStealthAddress(params.RecipientPublicKey)
	if err != nil {
		return nil, err
	}

	blinding := NewBlinding()
	commitment, err := Commit(params.Amount, blinding)
	if err != nil {
		return nil, err
	}
	rangeProof, err := GenerateRangeProof(params.Amount, blinding, rangeBits, 0, 0)
	if err != nil {
		return nil, err
	}

	senderKey := EncodeAccountKey(params.Sender.PublicKey)
	ring, signerIndex, err := p.assembleRing(ctx, params.Sender.PublicKey, senderKey, ringSize)
	if err != nil {
		return nil, err
	}

	createdAt := stealth.CreatedAt
	message := BundleSigningMessage(params.Amount, stealth.Address, createdAt)
	ringSignature, err := SignRing(message, params.Sender.PrivateKey, signerIndex, ring)
	if err != nil {
		return nil, err
	}

	token, err := p.requestComplianceToken(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	note, err := EncryptNote(&Note{Amount: params.Amount, Memo: params.Memo}, shared)
	if err != nil {
		return nil, err
	}

	outputID := params.OutputID
	if outputID == "" {
		outputID = stealth.EphemeralPublicKey
	}
	nullifier := NewNullifier(params.Sender.PublicKey, params.Amount, stealth.Address, outputID)

	bundle := &TransferBundle{
		Stealth:         stealth,
		Commitment:      pointHex(commitment),
		RangeProof:      rangeProof,
		RingSignature:   ringSignature,
		Nullifier:       nullifier,
		ComplianceToken: token,
		EncryptedNote:   note,
		CreatedAt:       createdAt,
	}

	if p.aux != nil {
		aux, err := p.aux.EncryptValues(ctx, params.Amount, blinding, senderKey)
		if err != nil {
			p.logger.Warn().Err(err).Msg("auxiliary encryption unavailable, continuing without")
		} else {
			binding, err := NewAuxBindingProof(aux, bundle.Commitment, createdAt, params.Amount, blinding)
			if err != nil {
				return nil, err
			}
			bundle.AuxCiphertext = aux
			bundle.AuxBinding = binding
		}
	}

	bundle.IntegrityHash = bundle.Digest()
	p.logger.Info().
		Str("nullifier", bundle.Nullifier).
		Int("ring_size", ringSize).
		Int("range_bits", rangeBits).
		Msg("transfer bundle created")
	return bundle, nil
}

// assembleRing places the signer at a uniformly random position among the
// decoys.
func (p *Protocol) assembleRing(ctx context.Context, signer *ristretto.Point, signerKey string, ringSize int) ([]*ristretto.Point, int, error) {
	var decoys []*ristretto.Point
	if p.decoys != nil {
		decoys = p.decoys.Select(ctx, signerKey, ringSize-1)
	} else {
		for i := 0; i < ringSize-1; i++ {
			var r ristretto.Point
			decoys = append(decoys, r.Rand())
		}
	}

	position, err := rand.Int(rand.Reader, big.NewInt(int64(ringSize)))
	if err != nil {
		return nil, 0, err
	}
	signerIndex := int(position.Int64())

	ring := make([]*ristretto.Point, 0, ringSize)
	ring = append(ring, decoys[:signerIndex]...)
	ring = append(ring, signer)
	ring = append(ring, decoys[signerIndex:]...)
	return ring, signerIndex, nil
}

func (p *Protocol) requestComplianceToken(ctx context.Context, userID string) (*ComplianceToken, error) {
	if p.compliance == nil {
		if p.config.ComplianceMandatory {
			return nil, ErrComplianceRequired
		}
		return nil, nil
	}
	result, err := p.compliance.CheckPrivateTransfer(ctx, userID)
	if err != nil || result == nil {
		if p.config.ComplianceMandatory {
			return nil, ErrComplianceRequired
		}
		p.logger.Warn().Err(err).Msg("compliance collaborator unavailable, continuing without token")
		return nil, nil
	}
	if !result.Allowed {
		return nil, fmt.Errorf("compliance denied transfer for user %s", userID)
	}
	return result.Proof, nil
}
