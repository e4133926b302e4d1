package oracle

import (
	"context"
	"math/rand"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// Fallback is an offline oracle that fabricates plausible responses from the
// prompt alone. It emits the same action:/quantity:/reason: shape the live
// oracle is asked for, so the downstream parser contract is always met. A
// fixed seed makes whole runs reproducible.
type Fallback struct {
	rng *rand.Rand
}

func NewFallback(seed int64) *Fallback {
	return &Fallback{rng: rand.New(rand.NewSource(seed))}
}

func (f *Fallback) Generate(_ context.Context, messages []*schema.Message, _ float32) (string, error) {
	prompt := ""
	if len(messages) > 0 {
		prompt = messages[len(messages)-1].Content
	}
	lower := strings.ToLower(prompt)

	if strings.Contains(lower, "action:") || strings.Contains(lower, "decide your investment action") {
		return f.intentionResponse(prompt, lower), nil
	}
	return f.beliefResponse(lower), nil
}

func (f *Fallback) intentionResponse(prompt, lower string) string {
	hasShares := !strings.Contains(prompt, "shares: 0") && !strings.Contains(prompt, "shares:0")

	switch {
	case strings.Contains(lower, "optimistic"):
		if f.rng.Float64() < 0.7 {
			return "action: buy\nquantity: 50\nreason: I am optimistic about the market and believe the price will rise."
		}
		return "action: hold\nquantity: 0\nreason: I will wait for a better entry point."
	case strings.Contains(lower, "pessimistic"):
		if !hasShares {
			return "action: hold\nquantity: 0\nreason: I am cautious about the market but have no shares to sell."
		}
		if f.rng.Float64() < 0.6 {
			return "action: sell\nquantity: 30\nreason: I am pessimistic about the market and want to reduce risk."
		}
		return "action: hold\nquantity: 0\nreason: I will wait and see."
	default:
		if f.rng.Float64() < 0.5 {
			return "action: buy\nquantity: 30\nreason: Based on analysis, this seems like a reasonable entry point."
		}
		if hasShares && f.rng.Float64() < 0.3 {
			return "action: sell\nquantity: 20\nreason: Taking some profits based on current valuation."
		}
		return "action: hold\nquantity: 0\nreason: Waiting for more clarity before making a decision."
	}
}

func (f *Fallback) beliefResponse(lower string) string {
	switch {
	case strings.Contains(lower, "optimistic"):
		return "Based on current information, I think this is a good time to buy. The market outlook is positive."
	case strings.Contains(lower, "pessimistic"):
		return "Based on current information, I think you should be cautious and consider selling. The market outlook is negative."
	default:
		return "I need more information to make a decision. The market outlook is neutral."
	}
}
