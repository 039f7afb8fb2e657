package raydium

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"
)

func TestAssociatedAuthority(t *testing.T) {
	authority, err := AssociatedAuthority(AmmV4ProgramID)
	if err != nil {
		t.Fatalf("derivation returned error: %v", err)
	}
	want := solana.MustPublicKeyFromBase58("5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1")
	if !authority.Equals(want) {
		t.Fatalf("expected amm authority %s, got %s", want, authority)
	}
}

func TestMarketAssociatedAuthorityDeterministic(t *testing.T) {
	market := solana.NewWallet().PublicKey()

	first, err := MarketAssociatedAuthority(OpenBookMarketProgram, market)
	if err != nil {
		t.Fatalf("derivation returned error: %v", err)
	}
	if first.IsZero() {
		t.Fatalf("expected non-zero market authority")
	}
	second, err := MarketAssociatedAuthority(OpenBookMarketProgram, market)
	if err != nil {
		t.Fatalf("second derivation returned error: %v", err)
	}
	if !first.Equals(second) {
		t.Fatalf("derivation not deterministic: %s vs %s", first, second)
	}
}

func TestAssemblePoolKeys(t *testing.T) {
	poolID := solana.NewWallet().PublicKey()
	state := &LiquidityStateV4{
		BaseDecimal:     9,
		QuoteDecimal:    6,
		BaseVault:       solana.NewWallet().PublicKey(),
		QuoteVault:      solana.NewWallet().PublicKey(),
		BaseMint:        solana.NewWallet().PublicKey(),
		QuoteMint:       solana.NewWallet().PublicKey(),
		LpMint:          solana.NewWallet().PublicKey(),
		OpenOrders:      solana.NewWallet().PublicKey(),
		MarketID:        solana.NewWallet().PublicKey(),
		MarketProgramID: OpenBookMarketProgram,
		TargetOrders:    solana.NewWallet().PublicKey(),
		WithdrawQueue:   solana.NewWallet().PublicKey(),
		LpVault:         solana.NewWallet().PublicKey(),
	}
	market := &MinimalMarketState{
		EventQueue: solana.NewWallet().PublicKey(),
		Bids:       solana.NewWallet().PublicKey(),
		Asks:       solana.NewWallet().PublicKey(),
	}

	keys, err := AssemblePoolKeys(poolID, state, market)
	if err != nil {
		t.Fatalf("assembly returned error: %v", err)
	}

	if !keys.ID.Equals(poolID) {
		t.Fatalf("pool id not copied")
	}
	if keys.Version != 4 || keys.MarketVersion != 3 {
		t.Fatalf("unexpected versions: %d/%d", keys.Version, keys.MarketVersion)
	}
	if keys.BaseDecimals != 9 || keys.QuoteDecimals != 6 || keys.LpDecimals != 5 {
		t.Fatalf("unexpected decimals: %d/%d/%d", keys.BaseDecimals, keys.QuoteDecimals, keys.LpDecimals)
	}
	if !keys.ProgramID.Equals(AmmV4ProgramID) {
		t.Fatalf("unexpected program id: %s", keys.ProgramID)
	}
	wantAuthority := solana.MustPublicKeyFromBase58("5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1")
	if !keys.Authority.Equals(wantAuthority) {
		t.Fatalf("unexpected amm authority: %s", keys.Authority)
	}
	if !keys.BaseMint.Equals(state.BaseMint) || !keys.QuoteMint.Equals(state.QuoteMint) || !keys.LpMint.Equals(state.LpMint) {
		t.Fatalf("mints not copied from pool state")
	}
	if !keys.OpenOrders.Equals(state.OpenOrders) || !keys.TargetOrders.Equals(state.TargetOrders) {
		t.Fatalf("order accounts not copied from pool state")
	}
	if !keys.WithdrawQueue.Equals(state.WithdrawQueue) || !keys.LpVault.Equals(state.LpVault) {
		t.Fatalf("queue accounts not copied from pool state")
	}
	if !keys.MarketID.Equals(state.MarketID) || !keys.MarketProgramID.Equals(state.MarketProgramID) {
		t.Fatalf("market identity not copied from pool state")
	}
	if keys.MarketAuthority.IsZero() {
		t.Fatalf("market authority not derived")
	}
	if !keys.MarketBaseVault.Equals(state.BaseVault) || !keys.MarketQuoteVault.Equals(state.QuoteVault) {
		t.Fatalf("market vaults must mirror the pool vaults")
	}
	if !keys.MarketBids.Equals(market.Bids) || !keys.MarketAsks.Equals(market.Asks) || !keys.MarketEventQueue.Equals(market.EventQueue) {
		t.Fatalf("book accounts not copied from market state")
	}
	if !keys.LookupTableAccount.IsZero() {
		t.Fatalf("expected zero lookup table account")
	}
}
