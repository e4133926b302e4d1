// Package agent implements one synthetic investor on the BDI cycle: beliefs
// updated from news via the oracle, intentions formed from beliefs and the
// ledger, trades executed against the agent's own cash and shares. Each step
// is one pass through those three phases; nothing here carries state between
// phases other than the agent's own fields.
package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/shopspring/decimal"

	"github.com/dyike/MarketMindGo/internal/models"
	"github.com/dyike/MarketMindGo/internal/oracle"
	"github.com/dyike/MarketMindGo/internal/parsing"
)

// Belief keys.
const (
	BeliefMarketOutlook = "market_outlook"
	BeliefRiskTolerance = "risk_tolerance"
)

const (
	beliefTemperature    = 0.7
	intentionTemperature = 0.6
)

// Agent is a single investor. Cash and shares are mutated only by
// ExecuteTrade, beliefs only by UpdateBeliefs; the logs are append-only.
type Agent struct {
	name      string
	agentType string

	cash   decimal.Decimal
	shares int64

	beliefs      map[string]string
	targetReturn float64

	opinions   []models.Opinion
	intentions []models.Intention
	trades     []models.Trade

	oracle oracle.Oracle
}

// New creates an agent of the given type. An unknown type is a configuration
// bug, not a runtime condition, and is rejected.
func New(name, agentType string, initialCash float64, orc oracle.Oracle) (*Agent, error) {
	a := &Agent{
		name:      name,
		agentType: agentType,
		cash:      decimal.NewFromFloat(initialCash),
		beliefs:   make(map[string]string),
		oracle:    orc,
	}

	switch agentType {
	case models.TypeOptimistic:
		a.beliefs[BeliefMarketOutlook] = models.OutlookPositive
		a.beliefs[BeliefRiskTolerance] = "high"
		a.targetReturn = 0.15
	case models.TypePessimistic:
		a.beliefs[BeliefMarketOutlook] = models.OutlookNegative
		a.beliefs[BeliefRiskTolerance] = "low"
		a.targetReturn = 0.05
	case models.TypeCalm:
		a.beliefs[BeliefMarketOutlook] = models.OutlookNeutral
		a.beliefs[BeliefRiskTolerance] = "medium"
		a.targetReturn = 0.08
	default:
		return nil, fmt.Errorf("unknown agent type %q", agentType)
	}

	return a, nil
}

// UpdateBeliefs consults the oracle about the news and applies the outlook
// update table. The reaction is asymmetric on purpose: an optimistic agent
// jumps to very_positive on an up cue but only concedes slightly_negative on
// a down cue, the pessimistic agent mirrors that, and a calm agent's outlook
// never moves. A response without a recognizable cue changes nothing.
// This call never fails.
func (a *Agent) UpdateBeliefs(ctx context.Context, news models.News, currentPrice float64, sentiment models.SentimentDistribution) {
	prompt := a.beliefPrompt(news, currentPrice, sentiment)
	response, _ := a.oracle.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)}, beliefTemperature)

	switch parsing.ParseBeliefCue(response) {
	case parsing.CueUp:
		switch a.agentType {
		case models.TypeOptimistic:
			a.beliefs[BeliefMarketOutlook] = models.OutlookVeryPositive
		case models.TypePessimistic:
			a.beliefs[BeliefMarketOutlook] = models.OutlookSlightlyPositive
		}
	case parsing.CueDown:
		switch a.agentType {
		case models.TypePessimistic:
			a.beliefs[BeliefMarketOutlook] = models.OutlookVeryNegative
		case models.TypeOptimistic:
			a.beliefs[BeliefMarketOutlook] = models.OutlookSlightlyNegative
		}
	}

	a.opinions = append(a.opinions, models.Opinion{
		News:      news.Content,
		Response:  response,
		Timestamp: len(a.opinions),
	})
}

// FormIntention consults the oracle for a trade decision at the given price
// and parses the reply. The intention is logged but the ledger stays
// untouched; execution is a separate phase. Never fails.
func (a *Agent) FormIntention(ctx context.Context, currentPrice float64) models.Intention {
	prompt := a.intentionPrompt(currentPrice)
	response, _ := a.oracle.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)}, intentionTemperature)

	intention := parsing.ParseIntention(response, a.agentType, currentPrice, a.cash, a.shares)
	a.intentions = append(a.intentions, intention)
	return intention
}

// ExecuteTrade applies an intention to the ledger. A buy needs the full cost
// in cash, a sell needs the full quantity in shares; anything else, including
// hold, is a silent no-op returning nil. Cash and shares move in exactly
// matching pairs.
func (a *Agent) ExecuteTrade(intention models.Intention, currentPrice float64) *models.Trade {
	qty := intention.Quantity
	if qty <= 0 {
		return nil
	}
	price := decimal.NewFromFloat(currentPrice)

	switch intention.Action {
	case models.ActionBuy:
		cost := price.Mul(decimal.NewFromInt(qty))
		if cost.GreaterThan(a.cash) {
			return nil
		}
		a.cash = a.cash.Sub(cost)
		a.shares += qty
		trade := models.Trade{
			Action:   models.ActionBuy,
			Quantity: qty,
			Price:    currentPrice,
			Cost:     cost.String(),
		}
		a.trades = append(a.trades, trade)
		return &trade

	case models.ActionSell:
		if qty > a.shares {
			return nil
		}
		revenue := price.Mul(decimal.NewFromInt(qty))
		a.cash = a.cash.Add(revenue)
		a.shares -= qty
		trade := models.Trade{
			Action:   models.ActionSell,
			Quantity: qty,
			Price:    currentPrice,
			Revenue:  revenue.String(),
		}
		a.trades = append(a.trades, trade)
		return &trade
	}

	return nil
}

// PortfolioValue is cash plus shares marked at the given price.
func (a *Agent) PortfolioValue(currentPrice float64) float64 {
	value := a.cash.Add(decimal.NewFromFloat(currentPrice).Mul(decimal.NewFromInt(a.shares)))
	return value.InexactFloat64()
}

// SentimentScore projects the agent's current outlook onto [-1, 1].
func (a *Agent) SentimentScore() float64 {
	return models.SentimentScore(a.beliefs[BeliefMarketOutlook])
}

// Snapshot dumps the agent state for a step record.
func (a *Agent) Snapshot(currentPrice float64) models.AgentSnapshot {
	return models.AgentSnapshot{
		Name:           a.name,
		Type:           a.agentType,
		Cash:           a.cash.InexactFloat64(),
		Shares:         a.shares,
		PortfolioValue: a.PortfolioValue(currentPrice),
		SentimentScore: a.SentimentScore(),
		MarketOutlook:  a.beliefs[BeliefMarketOutlook],
	}
}

func (a *Agent) Name() string { return a.name }

func (a *Agent) Type() string { return a.agentType }

// Cash returns the exact cash balance.
func (a *Agent) Cash() decimal.Decimal { return a.cash }

func (a *Agent) Shares() int64 { return a.shares }

// Outlook returns the current market outlook belief.
func (a *Agent) Outlook() string { return a.beliefs[BeliefMarketOutlook] }

// TargetReturn is the fixed desire set at creation.
func (a *Agent) TargetReturn() float64 { return a.targetReturn }

// LastIntention returns the most recently formed intention, if any.
func (a *Agent) LastIntention() (models.Intention, bool) {
	if len(a.intentions) == 0 {
		return models.Intention{}, false
	}
	return a.intentions[len(a.intentions)-1], true
}

// Opinions returns a copy of the opinion log.
func (a *Agent) Opinions() []models.Opinion {
	return append([]models.Opinion(nil), a.opinions...)
}

// Trades returns a copy of the executed-trade log.
func (a *Agent) Trades() []models.Trade {
	return append([]models.Trade(nil), a.trades...)
}

// TradeCount reports how many trades this agent has executed.
func (a *Agent) TradeCount() int { return len(a.trades) }
