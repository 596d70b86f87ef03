package discard

import (
	"context"

	"github.com/ethereum/go-ethereum/rpc"
)

// ParsedTransaction is the slice of a ledger transaction the decoy selector
// cares about: the account keys that took part in it.
type ParsedTransaction struct {
	Signature   string   `json:"signature"`
	AccountKeys []string `json:"account_keys"`
}

// LedgerClient is the external account/ledger collaborator. It is consumed
// only by decoy selection; an unavailable client degrades to random decoys.
type LedgerClient interface {
	GetRecentTransactionSignatures(ctx context.Context, accountKey string, limit int) ([]string, error)
	GetParsedTransaction(ctx context.Context, signature string) (*ParsedTransaction, error)
}

// RPCLedgerClient talks JSON-RPC to a ledger node.
type RPCLedgerClient struct {
	client *rpc.Client
}

func DialLedger(ctx context.Context, url string) (*RPCLedgerClient, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return &RPCLedgerClient{client: client}, nil
}

func (c *RPCLedgerClient) Close() {
	c.client.Close()
}

func (c *RPCLedgerClient) GetRecentTransactionSignatures(ctx context.Context, accountKey string, limit int) ([]string, error) {
	var result []struct {
		Signature string `json:"signature"`
	}
	err := c.client.CallContext(
		ctx, &result, "getSignaturesForAddress",
		accountKey,
		map[string]any{"limit": limit},
	)
	if err != nil {
		return nil, err
	}
	signatures := make([]string, 0, len(result))
	for _, r := range result {
		signatures = append(signatures, r.Signature)
	}
	return signatures, nil
}

func (c *RPCLedgerClient) GetParsedTransaction(ctx context.Context, signature string) (*ParsedTransaction, error) {
	var result struct {
		Transaction struct {
			Message struct {
				AccountKeys []struct {
					Pubkey string `json:"pubkey"`
				} `json:"accountKeys"`
			} `json:"message"`
		} `json:"transaction"`
	}
	err := c.client.CallContext(
		ctx, &result, "getTransaction",
		signature,
		map[string]any{"encoding": "jsonParsed"},
	)
	if err != nil {
		return nil, err
	}
	parsed := &ParsedTransaction{Signature: signature}
	for _, key := range result.Transaction.Message.AccountKeys {
		parsed.AccountKeys = append(parsed.AccountKeys, key.Pubkey)
	}
	return parsed, nil
}
