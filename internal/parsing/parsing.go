// Package parsing turns free-form oracle text into structured decisions.
// The oracle enforces no schema, so every extractor here must tolerate
// partial, malformed, or empty responses and resolve ambiguity with
// documented defaults instead of errors.
package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dyike/MarketMindGo/internal/models"
)

// Cue is the directional signal extracted from a belief-update response.
type Cue int

const (
	CueNone Cue = iota
	CueUp
	CueDown
)

var (
	upCues   = []string{"up", "positive", "optimistic"}
	downCues = []string{"down", "negative", "pessimistic"}

	quantityLineRe = regexp.MustCompile(`(?i)quantity:([^\n]*)`)
	actionLineRe   = regexp.MustCompile(`(?i)action:([^\n]*)`)
	reasonLineRe   = regexp.MustCompile(`(?i)reason:([^\n]*)`)
	digitsRe       = regexp.MustCompile(`\d+`)
)

// ParseBeliefCue scans a response for directional keywords. Matching is
// case-insensitive substring matching; the up branch is checked first, so a
// response containing both classes of cue reads as up.
func ParseBeliefCue(response string) Cue {
	lower := strings.ToLower(response)
	for _, cue := range upCues {
		if strings.Contains(lower, cue) {
			return CueUp
		}
	}
	for _, cue := range downCues {
		if strings.Contains(lower, cue) {
			return CueDown
		}
	}
	return CueNone
}

// Per-type fractions applied when the oracle names an action but no usable
// quantity: buys as a fraction of the maximum affordable, sells as a
// fraction of current holdings.
var (
	buyFractions = map[string]float64{
		models.TypeOptimistic:  0.8,
		models.TypePessimistic: 0.3,
		models.TypeCalm:        0.5,
	}
	sellFractions = map[string]float64{
		models.TypeOptimistic:  0.2,
		models.TypePessimistic: 0.7,
		models.TypeCalm:        0.4,
	}
)

// ParseIntention extracts a trade intention from an oracle response.
//
// Resolution order: an explicit positive quantity on a "quantity:" line wins;
// the action comes from the "action:" line (buy checked before sell, hold
// otherwise), falling back to scanning the whole response; a still-missing
// quantity is derived from the action, the agent type, and the ledger. The
// "reason:" line is taken verbatim when present, else the first 100
// characters of the raw response stand in. Never fails.
func ParseIntention(response, agentType string, price float64, cash decimal.Decimal, shares int64) models.Intention {
	intention := models.Intention{
		Action:   models.ActionHold,
		Response: response,
	}

	if m := quantityLineRe.FindStringSubmatch(response); m != nil {
		if digits := digitsRe.FindString(m[1]); digits != "" {
			if qty, err := strconv.ParseInt(digits, 10, 64); err == nil && qty > 0 {
				intention.Quantity = qty
			}
		}
	}

	if m := actionLineRe.FindStringSubmatch(response); m != nil {
		intention.Action = actionFromText(m[1])
	} else {
		intention.Action = actionFromText(response)
	}

	if intention.Quantity == 0 {
		intention.Quantity = defaultQuantity(intention.Action, agentType, price, cash, shares)
	}

	if m := reasonLineRe.FindStringSubmatch(response); m != nil {
		intention.Reason = strings.TrimSpace(m[1])
	} else {
		intention.Reason = truncate(response, 100)
	}

	return intention
}

func actionFromText(text string) string {
	lower := strings.ToLower(text)
	if strings.Contains(lower, models.ActionBuy) {
		return models.ActionBuy
	}
	if strings.Contains(lower, models.ActionSell) {
		return models.ActionSell
	}
	return models.ActionHold
}

func defaultQuantity(action, agentType string, price float64, cash decimal.Decimal, shares int64) int64 {
	switch action {
	case models.ActionBuy:
		if price <= 0 {
			return 0
		}
		maxAffordable := cash.Div(decimal.NewFromFloat(price)).IntPart()
		if maxAffordable <= 0 {
			return 0
		}
		qty := int64(math.Floor(float64(maxAffordable) * buyFractions[agentType]))
		return clamp(qty, 1, maxAffordable)
	case models.ActionSell:
		if shares <= 0 {
			return 0
		}
		qty := int64(math.Floor(float64(shares) * sellFractions[agentType]))
		return clamp(qty, 1, shares)
	default:
		return 0
	}
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
