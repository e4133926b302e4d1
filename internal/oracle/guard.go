package oracle

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
)

// Guarded imposes a deadline on a primary oracle and degrades to a fallback
// on error, timeout, or an empty response. Its Generate never returns a
// non-nil error: an oracle failure must not escape into simulation state.
type Guarded struct {
	primary  Oracle
	fallback Oracle
	timeout  time.Duration
	debug    bool
}

func NewGuarded(primary, fallback Oracle, timeout time.Duration, debug bool) *Guarded {
	return &Guarded{primary: primary, fallback: fallback, timeout: timeout, debug: debug}
}

func (g *Guarded) Generate(ctx context.Context, messages []*schema.Message, temperature float32) (string, error) {
	if g.primary != nil {
		callCtx := ctx
		if g.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		response, err := g.primary.Generate(callCtx, messages, temperature)
		if err == nil && strings.TrimSpace(response) != "" {
			return response, nil
		}
		if err != nil && g.debug {
			log.Printf("[oracle] primary failed, using fallback: %v", err)
		}
	}

	response, _ := g.fallback.Generate(ctx, messages, temperature)
	return response, nil
}
