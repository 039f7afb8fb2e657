// Package raydium decodes Raydium AMM v4 pool accounts and assembles the
// address bundle needed to trade against one pool.
package raydium

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Mainnet program IDs for the Raydium AMM v4 and the OpenBook market program
// its pools list on.
var (
	AmmV4ProgramID        = solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
	OpenBookMarketProgram = solana.MustPublicKeyFromBase58("srmqPvymJeFKQ4zGQed1GFppgkRHL9kaELCbyksJtPX")
)

// LiquidityStateV4Size is the serialized size of an AMM v4 pool account.
const LiquidityStateV4Size = 752

// Byte offsets into the serialized LiquidityStateV4, used for server-side
// memcmp subscription filters.
const (
	QuoteMintOffset     = 432
	MarketProgramOffset = 560
)

// LiquidityStateV4 mirrors the fixed little-endian layout of a Raydium AMM
// v4 pool account. The layout is owned by the Raydium program; this struct
// only reads it.
type LiquidityStateV4 struct {
	Status                 uint64
	Nonce                  uint64
	MaxOrder               uint64
	Depth                  uint64
	BaseDecimal            uint64
	QuoteDecimal           uint64
	State                  uint64
	ResetFlag              uint64
	MinSize                uint64
	VolMaxCutRatio         uint64
	AmountWaveRatio        uint64
	BaseLotSize            uint64
	QuoteLotSize           uint64
	MinPriceMultiplier     uint64
	MaxPriceMultiplier     uint64
	SystemDecimalValue     uint64
	MinSeparateNumerator   uint64
	MinSeparateDenominator uint64
	TradeFeeNumerator      uint64
	TradeFeeDenominator    uint64
	PnlNumerator           uint64
	PnlDenominator         uint64
	SwapFeeNumerator       uint64
	SwapFeeDenominator     uint64
	BaseNeedTakePnl        uint64
	QuoteNeedTakePnl       uint64
	QuoteTotalPnl          uint64
	BaseTotalPnl           uint64
	PoolOpenTime           uint64
	PunishPcAmount         uint64
	PunishCoinAmount       uint64
	OrderbookToInitTime    uint64
	SwapBaseInAmount       bin.Uint128
	SwapQuoteOutAmount     bin.Uint128
	SwapBase2QuoteFee      uint64
	SwapQuoteInAmount      bin.Uint128
	SwapBaseOutAmount      bin.Uint128
	SwapQuote2BaseFee      uint64
	BaseVault              solana.PublicKey
	QuoteVault             solana.PublicKey
	BaseMint               solana.PublicKey
	QuoteMint              solana.PublicKey
	LpMint                 solana.PublicKey
	OpenOrders             solana.PublicKey
	MarketID               solana.PublicKey
	MarketProgramID        solana.PublicKey
	TargetOrders           solana.PublicKey
	WithdrawQueue          solana.PublicKey
	LpVault                solana.PublicKey
	Owner                  solana.PublicKey
	LpReserve              uint64
	Padding                [3]uint64
}

// DecodeLiquidityStateV4 decodes a raw pool account.
func DecodeLiquidityStateV4(data []byte) (*LiquidityStateV4, error) {
	if len(data) < LiquidityStateV4Size {
		return nil, fmt.Errorf("pool account data is %d bytes, want %d", len(data), LiquidityStateV4Size)
	}
	var state LiquidityStateV4
	if err := bin.NewBinDecoder(data).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode pool state: %w", err)
	}
	return &state, nil
}

// MinimalMarketState carries the three market-side accounts a swap needs
// beyond what the pool state already stores.
type MinimalMarketState struct {
	EventQueue solana.PublicKey
	Bids       solana.PublicKey
	Asks       solana.PublicKey
}

// marketV3EventQueueOffset is where the eventQueue/bids/asks pubkey run
// starts inside a market v3 account.
const marketV3EventQueueOffset = 253

// FetchMinimalMarket reads only the event queue, bids, and asks pubkeys of a
// market account, using a data slice to keep the RPC payload small.
func FetchMinimalMarket(ctx context.Context, client *rpc.Client, market solana.PublicKey, commitment rpc.CommitmentType) (*MinimalMarketState, error) {
	offset := uint64(marketV3EventQueueOffset)
	length := uint64(96)
	res, err := client.GetAccountInfoWithOpts(ctx, market, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: commitment,
		DataSlice:  &rpc.DataSlice{Offset: &offset, Length: &length},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch market %s: %w", market, err)
	}
	if res.Value == nil {
		return nil, fmt.Errorf("market %s not found", market)
	}

	var state MinimalMarketState
	if err := bin.NewBinDecoder(res.Value.Data.GetBinary()).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode market %s: %w", market, err)
	}
	return &state, nil
}
