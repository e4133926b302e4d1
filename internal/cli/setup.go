package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dyike/MarketMindGo/config"
	"github.com/dyike/MarketMindGo/internal/dataflows"
	"github.com/dyike/MarketMindGo/internal/market"
	"github.com/dyike/MarketMindGo/internal/models"
	"github.com/dyike/MarketMindGo/internal/oracle"
	"github.com/dyike/MarketMindGo/internal/sim"
)

// buildSimulator wires the oracle, optional live market inputs, and the
// simulator together from config. Live-input failures degrade to configured
// defaults; only a broken roster is fatal.
func buildSimulator(ctx context.Context, cfg *config.Config) (*sim.Simulator, error) {
	if cfg.SeedSymbol != "" {
		seedInitialPrice(ctx, cfg)
	}

	var marketOpts []market.Option
	if cfg.AugmentHeadlines {
		if opt := headlineOption(cfg); opt != nil {
			marketOpts = append(marketOpts, opt)
		}
	}

	return sim.New(cfg, buildOracle(ctx, cfg), marketOpts...)
}

func buildOracle(ctx context.Context, cfg *config.Config) oracle.Oracle {
	seed := cfg.FallbackSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fallback := oracle.NewFallback(seed)

	var primary oracle.Oracle
	if !cfg.OfflineOracle {
		chatOracle, err := oracle.NewChatOracle(ctx, cfg)
		if err != nil {
			fmt.Printf("⚠️  LLM oracle unavailable, falling back to offline responses: %v\n", err)
		} else {
			primary = chatOracle
		}
	}

	timeout := time.Duration(cfg.OracleTimeout) * time.Second
	return oracle.NewGuarded(primary, fallback, timeout, cfg.Debug)
}

func seedInitialPrice(ctx context.Context, cfg *config.Config) {
	provider, err := dataflows.NewQuoteProvider(cfg)
	if err != nil {
		fmt.Printf("⚠️  Quote provider unavailable, keeping initial price %.2f: %v\n", cfg.InitialPrice, err)
		return
	}

	price, err := provider.LatestPrice(ctx, cfg.SeedSymbol)
	if err != nil {
		fmt.Printf("⚠️  Could not fetch quote for %s, keeping initial price %.2f: %v\n",
			cfg.SeedSymbol, cfg.InitialPrice, err)
		return
	}

	fmt.Printf("📡 Seeded initial price from %s: %.2f\n", cfg.SeedSymbol, price)
	cfg.InitialPrice = price
}

func headlineOption(cfg *config.Config) market.Option {
	query := cfg.SeedSymbol
	if query == "" {
		query = "stock market"
	}

	scraper := dataflows.NewHeadlineScraper()
	headlines, err := scraper.FetchHeadlines(query, 10)
	if err != nil || len(headlines) == 0 {
		fmt.Printf("⚠️  Headline augmentation skipped: %v\n", err)
		return nil
	}

	fmt.Printf("📡 Added %d live headlines to the neutral news pool\n", len(headlines))
	return market.WithHeadlines(models.SentimentNeutral, headlines)
}
