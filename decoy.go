package discard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwesterb/go-ristretto"
	"github.com/rs/zerolog"
)

// DecoySelector picks ring members for a signer. It prefers real account
// keys observed on the ledger and pads with freshly generated random keys
// when the ledger is slow, down, or short on candidates, so bundle creation
// never fails on decoys.
type DecoySelector struct {
	client  LedgerClient
	timeout time.Duration
	logger  zerolog.Logger

	mutex sync.RWMutex
	cache map[string][]*ristretto.Point
}

func NewDecoySelector(client LedgerClient, timeout time.Duration, logger zerolog.Logger) *DecoySelector {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &DecoySelector{
		client:  client,
		timeout: timeout,
		logger:  logger,
		cache:   make(map[string][]*ristretto.Point),
	}
}

// Select returns count decoy public keys, excluding the signer's own key.
// Ledger I/O is the only blocking step in bundle creation and runs under its
// own timeout.
func (s *DecoySelector) Select(ctx context.Context, exclude string, count int) []*ristretto.Point {
	if count <= 0 {
		return nil
	}

	candidates := s.cached(exclude, count)
	if candidates == nil {
		candidates = s.fetch(ctx, exclude, count)
		if len(candidates) > 0 {
			s.store(exclude, count, candidates)
		}
	}

	decoys := make([]*ristretto.Point, 0, count)
	for _, p := range candidates {
		if len(decoys) == count {
			break
		}
		decoys = append(decoys, p)
	}
	for len(decoys) < count {
		var p ristretto.Point
		decoys = append(decoys, p.Rand())
	}
	return decoys
}

func (s *DecoySelector) cached(exclude string, count int) []*ristretto.Point {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.cache[cacheKey(exclude, count)]
}

func (s *DecoySelector) store(exclude string, count int, candidates []*ristretto.Point) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.cache[cacheKey(exclude, count)] = candidates
}

func cacheKey(exclude string, count int) string {
	return fmt.Sprintf("%s/%d", exclude, count)
}

func (s *DecoySelector) fetch(ctx context.Context, exclude string, count int) []*ristretto.Point {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	signatures, err := s.client.GetRecentTransactionSignatures(ctx, exclude, count*4)
	if err != nil {
		s.logger.Warn().Err(err).Msg("decoy fetch failed, padding with random keys")
		return nil
	}

	seen := map[string]bool{exclude: true}
	var candidates []*ristretto.Point
	for _, signature := range signatures {
		if len(candidates) >= count {
			break
		}
		tx, err := s.client.GetParsedTransaction(ctx, signature)
		if err != nil {
			s.logger.Warn().Err(err).Str("signature", signature).Msg("skipping undecodable transaction")
			continue
		}
		for _, key := range tx.AccountKeys {
			if seen[key] {
				continue
			}
			seen[key] = true
			point, err := DecodeAccountKey(key)
			if err != nil {
				continue
			}
			candidates = append(candidates, point)
			if len(candidates) >= count {
				break
			}
		}
	}
	s.logger.Debug().Int("requested", count).Int("found", len(candidates)).Msg("decoy candidates fetched")
	return candidates
}
