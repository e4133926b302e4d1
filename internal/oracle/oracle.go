// Package oracle is the boundary to the text generator that nudges agent
// decisions. The simulation core only depends on the Oracle interface; the
// live chat-model implementation, the offline fallback, and the guard that
// arbitrates between them all live here so nothing LLM-shaped leaks into
// market, agent, or simulator code.
package oracle

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Oracle produces a free-text response to an ordered sequence of role-tagged
// messages. Temperature is in [0, 1]. No output schema is enforced; callers
// must parse defensively.
type Oracle interface {
	Generate(ctx context.Context, messages []*schema.Message, temperature float32) (string, error)
}
