// Package dataflows supplies optional construction-time inputs from the
// outside world: a real quote to seed the initial price and real headlines
// to enrich the news template pools. Everything here is best-effort; a
// failure falls back to configured defaults and never blocks a run.
package dataflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/piquette/finance-go/quote"

	"github.com/dyike/MarketMindGo/config"
)

// QuoteProvider fetches the latest traded price for a symbol.
type QuoteProvider interface {
	LatestPrice(ctx context.Context, symbol string) (float64, error)
}

// NewQuoteProvider selects the configured provider.
func NewQuoteProvider(cfg *config.Config) (QuoteProvider, error) {
	switch cfg.QuoteProvider {
	case "yahoo", "":
		return &YahooClient{}, nil
	case "longport":
		return NewLongportClient(cfg)
	default:
		return nil, fmt.Errorf("unknown quote provider %q", cfg.QuoteProvider)
	}
}

// YahooClient fetches quotes through the Yahoo Finance API.
type YahooClient struct{}

func (c *YahooClient) LatestPrice(_ context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, fmt.Errorf("symbol cannot be empty")
	}

	q, err := quote.Get(symbol)
	if err != nil {
		return 0, fmt.Errorf("get quote for %s: %w", symbol, err)
	}
	if q == nil || q.RegularMarketPrice <= 0 {
		return 0, fmt.Errorf("no usable quote for %s", symbol)
	}
	return q.RegularMarketPrice, nil
}
