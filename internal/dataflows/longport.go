package dataflows

import (
	"context"
	"fmt"

	lpconfig "github.com/longportapp/openapi-go/config"
	lpquote "github.com/longportapp/openapi-go/quote"

	"github.com/dyike/MarketMindGo/config"
)

// LongportClient fetches quotes through the LongPort OpenAPI.
type LongportClient struct {
	quoteCtx *lpquote.QuoteContext
}

func NewLongportClient(cfg *config.Config) (*LongportClient, error) {
	if cfg.LongportAppKey == "" || cfg.LongportAppSecret == "" || cfg.LongportAccessToken == "" {
		return nil, fmt.Errorf("longport credentials are not configured")
	}

	conf, err := lpconfig.New(lpconfig.WithConfigKey(
		cfg.LongportAppKey, cfg.LongportAppSecret, cfg.LongportAccessToken))
	if err != nil {
		return nil, fmt.Errorf("longport config: %w", err)
	}

	quoteCtx, err := lpquote.NewFromCfg(conf)
	if err != nil {
		return nil, fmt.Errorf("longport quote context: %w", err)
	}

	return &LongportClient{quoteCtx: quoteCtx}, nil
}

func (c *LongportClient) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	quotes, err := c.quoteCtx.Quote(ctx, []string{symbol})
	if err != nil {
		return 0, fmt.Errorf("longport quote for %s: %w", symbol, err)
	}
	if len(quotes) == 0 || quotes[0].LastDone == nil {
		return 0, fmt.Errorf("no usable longport quote for %s", symbol)
	}
	return quotes[0].LastDone.InexactFloat64(), nil
}

func (c *LongportClient) Close() error {
	if c.quoteCtx != nil {
		c.quoteCtx.Close()
	}
	return nil
}
