// Package watch observes the Raydium AMM program for freshly opened pools.
package watch

import (
	"context"
	"fmt"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/rs/zerolog"

	"github.com/test-bot-solana/solana-sniper-bot/internal/dex/raydium"
	"github.com/test-bot-solana/solana-sniper-bot/internal/metrics"
)

// PoolEvent is one observed update of a Raydium AMM v4 pool account.
type PoolEvent struct {
	Pool  solana.PublicKey
	State *raydium.LiquidityStateV4
}

// PoolFeed subscribes to Raydium program account changes filtered down to
// pools quoted in a single mint.
type PoolFeed struct {
	wsURL      string
	quoteMint  solana.PublicKey
	commitment rpc.CommitmentType
	log        zerolog.Logger
}

// NewPoolFeed constructs a feed over the given websocket endpoint.
func NewPoolFeed(wsURL string, quoteMint solana.PublicKey, commitment rpc.CommitmentType, log zerolog.Logger) *PoolFeed {
	return &PoolFeed{wsURL: wsURL, quoteMint: quoteMint, commitment: commitment, log: log}
}

// Run pushes pool events onto out until the context is canceled or the
// subscription dies. Accounts that fail the fixed-layout decode are logged
// and skipped rather than killing the stream.
func (f *PoolFeed) Run(ctx context.Context, out chan<- PoolEvent) error {
	client, err := ws.Connect(ctx, f.wsURL)
	if err != nil {
		return fmt.Errorf("ws connect: %w", err)
	}
	defer client.Close()

	sub, err := client.ProgramSubscribeWithOpts(
		raydium.AmmV4ProgramID,
		f.commitment,
		solana.EncodingBase64,
		f.filters(),
	)
	if err != nil {
		return fmt.Errorf("program subscribe: %w", err)
	}
	defer sub.Unsubscribe()

	f.log.Info().Str("quote_mint", f.quoteMint.String()).Msg("watching for new pools")
	for {
		got, err := sub.Recv(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("subscription recv: %w", err)
		}

		if err := f.handleAccount(ctx, out, got.Value.Pubkey, got.Value.Account.Data.GetBinary()); err != nil {
			return err
		}
	}
}

// handleAccount decodes one program notification and forwards it. Accounts
// that fail the fixed-layout decode are logged and skipped.
func (f *PoolFeed) handleAccount(ctx context.Context, out chan<- PoolEvent, pubkey solana.PublicKey, data []byte) error {
	state, err := raydium.DecodeLiquidityStateV4(data)
	if err != nil {
		f.log.Warn().Err(err).Str("account", pubkey.String()).Msg("skipping undecodable pool account")
		return nil
	}
	metrics.PoolsSeenTotal.WithLabelValues(state.QuoteMint.String()).Inc()

	select {
	case out <- PoolEvent{Pool: pubkey, State: state}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// filters narrows the subscription server-side to v4 pool accounts quoted in
// the configured mint and listed on the OpenBook market program.
func (f *PoolFeed) filters() []rpc.RPCFilter {
	return []rpc.RPCFilter{
		{DataSize: raydium.LiquidityStateV4Size},
		{Memcmp: &rpc.RPCFilterMemcmp{Offset: raydium.QuoteMintOffset, Bytes: solana.Base58(f.quoteMint.Bytes())}},
		{Memcmp: &rpc.RPCFilterMemcmp{Offset: raydium.MarketProgramOffset, Bytes: solana.Base58(raydium.OpenBookMarketProgram.Bytes())}},
	}
}
