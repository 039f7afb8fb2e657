// Binary poolwatch logs the pool key bundle of every Raydium pool the
// watcher sees for the configured quote mint.
package main

import (
	"context"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/test-bot-solana/solana-sniper-bot/internal/config"
	"github.com/test-bot-solana/solana-sniper-bot/internal/dex/raydium"
	"github.com/test-bot-solana/solana-sniper-bot/internal/metrics"
	"github.com/test-bot-solana/solana-sniper-bot/internal/util"
	"github.com/test-bot-solana/solana-sniper-bot/internal/watch"
)

func main() {
	cfg, err := config.Load("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := util.NewLogger(cfg.App.LogLevel)

	quoteMint, err := solana.PublicKeyFromBase58(cfg.Watch.QuoteMint)
	if err != nil {
		log.Fatalf("quote mint: %v", err)
	}

	_ = metrics.Serve(cfg.App.MetricsAddr)
	logger.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := rpc.New(cfg.Rpc.Endpoint)
	feed := watch.NewPoolFeed(cfg.Rpc.WsEndpoint, quoteMint, cfg.CommitmentType(), logger)
	events := make(chan watch.PoolEvent, 64)

	go func() {
		if err := feed.Run(ctx, events); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("pool feed stopped")
			cancel()
		}
	}()

	logger.Info().Msg("pool watcher started")
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
			return
		case event := <-events:
			market, err := raydium.FetchMinimalMarket(ctx, client, event.State.MarketID, cfg.CommitmentType())
			if err != nil {
				logger.Error().Err(err).Str("pool", event.Pool.String()).Msg("market fetch failed")
				continue
			}
			keys, err := raydium.AssemblePoolKeys(event.Pool, event.State, market)
			if err != nil {
				logger.Error().Err(err).Str("pool", event.Pool.String()).Msg("pool key assembly failed")
				continue
			}
			logger.Info().
				Str("pool", keys.ID.String()).
				Str("base_mint", keys.BaseMint.String()).
				Str("quote_mint", keys.QuoteMint.String()).
				Str("market", keys.MarketID.String()).
				Str("authority", keys.Authority.String()).
				Str("market_authority", keys.MarketAuthority.String()).
				Msg("new pool")
		}
	}
}
