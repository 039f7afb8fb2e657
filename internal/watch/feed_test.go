package watch

import (
	"bytes"
	"context"
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"github.com/test-bot-solana/solana-sniper-bot/internal/dex/raydium"
)

func TestFilters(t *testing.T) {
	quoteMint := solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	feed := NewPoolFeed("wss://rpc.test", quoteMint, rpc.CommitmentConfirmed, zerolog.Nop())

	filters := feed.filters()
	if len(filters) != 3 {
		t.Fatalf("expected 3 filters, got %d", len(filters))
	}
	if filters[0].DataSize != raydium.LiquidityStateV4Size {
		t.Fatalf("expected data size filter %d, got %d", raydium.LiquidityStateV4Size, filters[0].DataSize)
	}
	if filters[1].Memcmp == nil || filters[1].Memcmp.Offset != raydium.QuoteMintOffset {
		t.Fatalf("expected quote mint memcmp at offset %d", raydium.QuoteMintOffset)
	}
	if !bytes.Equal(filters[1].Memcmp.Bytes, quoteMint.Bytes()) {
		t.Fatalf("quote mint filter bytes mismatch")
	}
	if filters[2].Memcmp == nil || filters[2].Memcmp.Offset != raydium.MarketProgramOffset {
		t.Fatalf("expected market program memcmp at offset %d", raydium.MarketProgramOffset)
	}
	if !bytes.Equal(filters[2].Memcmp.Bytes, raydium.OpenBookMarketProgram.Bytes()) {
		t.Fatalf("market program filter bytes mismatch")
	}
}

func TestHandleAccountSkipsUndecodable(t *testing.T) {
	quoteMint := solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	feed := NewPoolFeed("wss://rpc.test", quoteMint, rpc.CommitmentConfirmed, zerolog.Nop())
	out := make(chan PoolEvent, 1)

	err := feed.handleAccount(context.Background(), out, solana.NewWallet().PublicKey(), make([]byte, 100))
	if err != nil {
		t.Fatalf("truncated account should be skipped, got error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("truncated account must not produce an event")
	}
}

func TestHandleAccountEmitsDecodedPool(t *testing.T) {
	quoteMint := solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	feed := NewPoolFeed("wss://rpc.test", quoteMint, rpc.CommitmentConfirmed, zerolog.Nop())
	out := make(chan PoolEvent, 1)

	pool := solana.NewWallet().PublicKey()
	data := make([]byte, raydium.LiquidityStateV4Size)
	copy(data[raydium.QuoteMintOffset:raydium.QuoteMintOffset+32], quoteMint[:])

	if err := feed.handleAccount(context.Background(), out, pool, data); err != nil {
		t.Fatalf("handleAccount returned error: %v", err)
	}
	select {
	case event := <-out:
		if !event.Pool.Equals(pool) {
			t.Fatalf("expected pool %s, got %s", pool, event.Pool)
		}
		if !event.State.QuoteMint.Equals(quoteMint) {
			t.Fatalf("expected quote mint %s, got %s", quoteMint, event.State.QuoteMint)
		}
	default:
		t.Fatalf("expected one pool event")
	}
}

func TestHandleAccountStopsOnCanceledContext(t *testing.T) {
	quoteMint := solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	feed := NewPoolFeed("wss://rpc.test", quoteMint, rpc.CommitmentConfirmed, zerolog.Nop())
	out := make(chan PoolEvent) // unbuffered, no reader

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := feed.handleAccount(ctx, out, solana.NewWallet().PublicKey(), make([]byte, raydium.LiquidityStateV4Size))
	if err == nil {
		t.Fatalf("expected context error when nothing drains the channel")
	}
}
