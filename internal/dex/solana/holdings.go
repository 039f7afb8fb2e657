package solana

import (
	"context"
	"fmt"
	"math/big"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/test-bot-solana/solana-sniper-bot/internal/metrics"
)

// TokenAccountLister is the slice of the RPC client the enricher needs.
type TokenAccountLister interface {
	GetTokenAccountsByOwner(ctx context.Context, owner solana.PublicKey, conf *rpc.GetTokenAccountsConfig, opts *rpc.GetTokenAccountsOpts) (*rpc.GetTokenAccountsResult, error)
}

// PriceOracle resolves a USD unit price for a mint. Implementations report
// failures through the error; the enricher owns the zero-price policy.
type PriceOracle interface {
	GetUsdPrice(ctx context.Context, network string, mint solana.PublicKey) (decimal.Decimal, error)
}

// TokenHolding is one SPL token account balance, optionally priced.
type TokenHolding struct {
	Owner   solana.PublicKey
	Account solana.PublicKey
	Mint    solana.PublicKey
	Amount  *big.Int
	// PriceUSD is nil when the oracle failed or reported a non-positive
	// price; when set it is strictly positive.
	PriceUSD *decimal.Decimal
}

// HoldingsEnricher lists a wallet's token accounts and attaches best-effort
// USD prices, one awaited oracle call per holding.
type HoldingsEnricher struct {
	rpc     TokenAccountLister
	oracle  PriceOracle
	network string
	log     zerolog.Logger
}

// NewHoldingsEnricher wires the ledger and oracle clients together.
func NewHoldingsEnricher(lister TokenAccountLister, oracle PriceOracle, network string, log zerolog.Logger) *HoldingsEnricher {
	return &HoldingsEnricher{rpc: lister, oracle: oracle, network: network, log: log}
}

// Enrich returns one TokenHolding per token account the ledger reports for
// owner, in ledger order. A failed listing fails the call; a failed or
// unusable price lookup only leaves that one holding unpriced.
func (e *HoldingsEnricher) Enrich(ctx context.Context, owner solana.PublicKey, commitment rpc.CommitmentType) ([]TokenHolding, error) {
	out, err := e.rpc.GetTokenAccountsByOwner(ctx, owner,
		&rpc.GetTokenAccountsConfig{ProgramId: token.ProgramID.ToPointer()},
		&rpc.GetTokenAccountsOpts{Commitment: commitment, Encoding: solana.EncodingBase64},
	)
	if err != nil {
		return nil, fmt.Errorf("list token accounts: %w", err)
	}

	holdings := make([]TokenHolding, 0, len(out.Value))
	for _, record := range out.Value {
		var account token.Account
		if err := bin.NewBinDecoder(record.Account.Data.GetBinary()).Decode(&account); err != nil {
			return nil, fmt.Errorf("decode token account %s: %w", record.Pubkey, err)
		}

		holdings = append(holdings, TokenHolding{
			Owner:    owner,
			Account:  record.Pubkey,
			Mint:     account.Mint,
			Amount:   new(big.Int).SetUint64(account.Amount),
			PriceUSD: e.lookupPrice(ctx, account.Mint),
		})
		metrics.HoldingsEnrichedTotal.Inc()
	}
	return holdings, nil
}

// lookupPrice performs the single oracle attempt for mint. A zero reading is
// indistinguishable from "could not resolve" at the oracle's precision
// floor, so it degrades to nil exactly like an error does.
func (e *HoldingsEnricher) lookupPrice(ctx context.Context, mint solana.PublicKey) *decimal.Decimal {
	e.log.Debug().Str("mint", mint.String()).Msg("price lookup")
	price, err := e.oracle.GetUsdPrice(ctx, e.network, mint)
	if err != nil {
		metrics.PriceLookupsTotal.WithLabelValues("error").Inc()
		e.log.Error().Err(err).Str("mint", mint.String()).Msg("price lookup failed")
		return nil
	}
	if price.Sign() <= 0 {
		metrics.PriceLookupsTotal.WithLabelValues("zero").Inc()
		e.log.Warn().Str("mint", mint.String()).Msg("oracle returned no usable price")
		return nil
	}
	metrics.PriceLookupsTotal.WithLabelValues("ok").Inc()
	return &price
}
