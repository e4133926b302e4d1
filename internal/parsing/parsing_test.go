package parsing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dyike/MarketMindGo/internal/models"
)

func TestParseBeliefCue(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     Cue
	}{
		{"up keyword", "I think the price will go UP tomorrow", CueUp},
		{"positive keyword", "the outlook is Positive", CueUp},
		{"optimistic keyword", "I remain optimistic here", CueUp},
		{"down keyword", "expecting a move down", CueDown},
		{"negative keyword", "sentiment turned NEGATIVE", CueDown},
		{"pessimistic keyword", "I am pessimistic now", CueDown},
		{"both cues reads up", "positive news but a negative undertone", CueUp},
		{"no cue", "the market is flat and boring", CueNone},
		{"empty response", "", CueNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBeliefCue(tt.response))
		})
	}
}

func TestParseIntentionExplicitQuantity(t *testing.T) {
	cash := decimal.NewFromFloat(10000)

	intention := ParseIntention("action: buy\nquantity: 20\nreason: test",
		models.TypeOptimistic, 100.0, cash, 0)

	assert.Equal(t, models.ActionBuy, intention.Action)
	assert.Equal(t, int64(20), intention.Quantity)
	assert.Equal(t, "test", intention.Reason)
}

func TestParseIntentionSellQuantityKept(t *testing.T) {
	// The parser keeps the stated quantity even when it exceeds holdings;
	// the constraint is enforced at execution time.
	intention := ParseIntention("action: sell\nquantity: 100\nreason: test",
		models.TypeOptimistic, 100.0, decimal.NewFromFloat(8000), 20)

	assert.Equal(t, models.ActionSell, intention.Action)
	assert.Equal(t, int64(100), intention.Quantity)
}

func TestParseIntentionEmptyResponse(t *testing.T) {
	intention := ParseIntention("", models.TypeCalm, 100.0, decimal.NewFromFloat(1000), 5)

	assert.Equal(t, models.ActionHold, intention.Action)
	assert.Equal(t, int64(0), intention.Quantity)
	assert.Equal(t, "", intention.Reason)
}

func TestParseIntentionActionLinePrecedence(t *testing.T) {
	// "buy" on the action line wins even when "sell" appears elsewhere.
	intention := ParseIntention("thinking about whether to sell\naction: buy\nquantity: 3",
		models.TypeCalm, 10.0, decimal.NewFromFloat(1000), 0)

	assert.Equal(t, models.ActionBuy, intention.Action)
	assert.Equal(t, int64(3), intention.Quantity)
}

func TestParseIntentionFreeTextFallback(t *testing.T) {
	cash := decimal.NewFromFloat(1000)

	buy := ParseIntention("I would buy at this level", models.TypeCalm, 100.0, cash, 0)
	assert.Equal(t, models.ActionBuy, buy.Action)

	sell := ParseIntention("time to sell some", models.TypeCalm, 100.0, cash, 10)
	assert.Equal(t, models.ActionSell, sell.Action)

	hold := ParseIntention("nothing to do here", models.TypeCalm, 100.0, cash, 10)
	assert.Equal(t, models.ActionHold, hold.Action)
	assert.Equal(t, int64(0), hold.Quantity)
}

func TestParseIntentionDefaultBuyQuantities(t *testing.T) {
	// cash 1000 at price 100 affords 10 shares.
	cash := decimal.NewFromFloat(1000)

	tests := []struct {
		agentType string
		want      int64
	}{
		{models.TypeOptimistic, 8},
		{models.TypePessimistic, 3},
		{models.TypeCalm, 5},
	}

	for _, tt := range tests {
		t.Run(tt.agentType, func(t *testing.T) {
			intention := ParseIntention("action: buy", tt.agentType, 100.0, cash, 0)
			assert.Equal(t, tt.want, intention.Quantity)
		})
	}
}

func TestParseIntentionDefaultBuyMinimumOne(t *testing.T) {
	// One affordable share still buys one regardless of fraction.
	intention := ParseIntention("action: buy", models.TypePessimistic, 100.0,
		decimal.NewFromFloat(150), 0)
	assert.Equal(t, int64(1), intention.Quantity)
}

func TestParseIntentionDefaultBuyUnaffordable(t *testing.T) {
	intention := ParseIntention("action: buy", models.TypeOptimistic, 100.0,
		decimal.NewFromFloat(50), 0)
	assert.Equal(t, int64(0), intention.Quantity)
}

func TestParseIntentionDefaultSellQuantities(t *testing.T) {
	tests := []struct {
		agentType string
		shares    int64
		want      int64
	}{
		{models.TypePessimistic, 10, 7},
		{models.TypeOptimistic, 10, 2},
		{models.TypeCalm, 10, 4},
		{models.TypeCalm, 1, 1},  // minimum one
		{models.TypeCalm, 0, 0},  // nothing to sell
		{models.TypeOptimistic, 2, 1}, // floor(0.4) clamped up to one
	}

	for _, tt := range tests {
		intention := ParseIntention("action: sell", tt.agentType, 100.0,
			decimal.NewFromFloat(0), tt.shares)
		assert.Equal(t, tt.want, intention.Quantity, "type=%s shares=%d", tt.agentType, tt.shares)
	}
}

func TestParseIntentionReasonFallback(t *testing.T) {
	long := strings.Repeat("x", 150)
	intention := ParseIntention(long, models.TypeCalm, 100.0, decimal.NewFromFloat(0), 0)

	assert.Len(t, intention.Reason, 100)
	assert.Equal(t, long, intention.Response)
}

func TestParseIntentionQuantityIgnoresZero(t *testing.T) {
	// An explicit zero falls through to the type-derived default.
	intention := ParseIntention("action: buy\nquantity: 0", models.TypeCalm, 100.0,
		decimal.NewFromFloat(1000), 0)
	assert.Equal(t, int64(5), intention.Quantity)
}
