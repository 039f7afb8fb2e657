// Binary holdings lists a wallet's SPL token balances with best-effort USD
// prices attached.
package main

import (
	"context"
	"log"
	"time"

	"github.com/gagliardetto/solana-go/rpc"

	"github.com/test-bot-solana/solana-sniper-bot/internal/config"
	dex "github.com/test-bot-solana/solana-sniper-bot/internal/dex/solana"
	"github.com/test-bot-solana/solana-sniper-bot/internal/pricing"
	"github.com/test-bot-solana/solana-sniper-bot/internal/util"
)

func main() {
	cfg, err := config.Load("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := util.NewConsoleLogger(cfg.App.LogLevel)

	owner, err := dex.ResolveOwner()
	if err != nil {
		log.Fatalf("wallet: %v", err)
	}

	oracle := pricing.NewMoralisClient(cfg.Oracle.BaseURL, cfg.Oracle.APIKey)
	enricher := dex.NewHoldingsEnricher(rpc.New(cfg.Rpc.Endpoint), oracle, cfg.Oracle.Network, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	holdings, err := enricher.Enrich(ctx, owner, cfg.CommitmentType())
	if err != nil {
		log.Fatalf("enrich: %v", err)
	}

	logger.Info().Str("owner", owner.String()).Int("count", len(holdings)).Msg("wallet holdings")
	for _, holding := range holdings {
		event := logger.Info().
			Str("mint", holding.Mint.String()).
			Str("account", holding.Account.String()).
			Str("amount", holding.Amount.String())
		if holding.PriceUSD != nil {
			event = event.Str("price_usd", holding.PriceUSD.String())
		}
		event.Msg("holding")
	}
}
