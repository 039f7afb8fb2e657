package raydium

import (
	"fmt"

	solana "github.com/gagliardetto/solana-go"
)

// PoolKeys is the full set of addresses needed to interact with one Raydium
// pool and its associated market.
type PoolKeys struct {
	ID                 solana.PublicKey
	BaseMint           solana.PublicKey
	QuoteMint          solana.PublicKey
	LpMint             solana.PublicKey
	BaseDecimals       int
	QuoteDecimals      int
	LpDecimals         int
	Version            int
	ProgramID          solana.PublicKey
	Authority          solana.PublicKey
	OpenOrders         solana.PublicKey
	TargetOrders       solana.PublicKey
	BaseVault          solana.PublicKey
	QuoteVault         solana.PublicKey
	WithdrawQueue      solana.PublicKey
	LpVault            solana.PublicKey
	MarketVersion      int
	MarketProgramID    solana.PublicKey
	MarketID           solana.PublicKey
	MarketAuthority    solana.PublicKey
	MarketBaseVault    solana.PublicKey
	MarketQuoteVault   solana.PublicKey
	MarketBids         solana.PublicKey
	MarketAsks         solana.PublicKey
	MarketEventQueue   solana.PublicKey
	LookupTableAccount solana.PublicKey
}

// AssociatedAuthority derives the AMM authority PDA for program.
func AssociatedAuthority(program solana.PublicKey) (solana.PublicKey, error) {
	authority, _, err := solana.FindProgramAddress([][]byte{[]byte("amm authority")}, program)
	return authority, err
}

// MarketAssociatedAuthority derives the market vault authority by scanning
// nonces the way the market program does at listing time.
func MarketAssociatedAuthority(program, market solana.PublicKey) (solana.PublicKey, error) {
	for nonce := uint8(0); nonce < 100; nonce++ {
		seeds := [][]byte{market.Bytes(), {nonce}, make([]byte, 7)}
		authority, err := solana.CreateProgramAddress(seeds, program)
		if err == nil {
			return authority, nil
		}
	}
	return solana.PublicKey{}, fmt.Errorf("no valid authority nonce for market %s", market)
}

// AssemblePoolKeys builds the bundle for one pool from its decoded state and
// the minimal market accounts. Market vault fields mirror the pool vaults,
// which is what the swap path expects for v4 pools.
func AssemblePoolKeys(poolID solana.PublicKey, state *LiquidityStateV4, market *MinimalMarketState) (PoolKeys, error) {
	authority, err := AssociatedAuthority(AmmV4ProgramID)
	if err != nil {
		return PoolKeys{}, fmt.Errorf("derive amm authority: %w", err)
	}
	marketAuthority, err := MarketAssociatedAuthority(state.MarketProgramID, state.MarketID)
	if err != nil {
		return PoolKeys{}, fmt.Errorf("derive market authority: %w", err)
	}

	return PoolKeys{
		ID:                 poolID,
		BaseMint:           state.BaseMint,
		QuoteMint:          state.QuoteMint,
		LpMint:             state.LpMint,
		BaseDecimals:       int(state.BaseDecimal),
		QuoteDecimals:      int(state.QuoteDecimal),
		LpDecimals:         5,
		Version:            4,
		ProgramID:          AmmV4ProgramID,
		Authority:          authority,
		OpenOrders:         state.OpenOrders,
		TargetOrders:       state.TargetOrders,
		BaseVault:          state.BaseVault,
		QuoteVault:         state.QuoteVault,
		WithdrawQueue:      state.WithdrawQueue,
		LpVault:            state.LpVault,
		MarketVersion:      3,
		MarketProgramID:    state.MarketProgramID,
		MarketID:           state.MarketID,
		MarketAuthority:    marketAuthority,
		MarketBaseVault:    state.BaseVault,
		MarketQuoteVault:   state.QuoteVault,
		MarketBids:         market.Bids,
		MarketAsks:         market.Asks,
		MarketEventQueue:   market.EventQueue,
		LookupTableAccount: solana.PublicKey{},
	}, nil
}
