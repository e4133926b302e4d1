package agent

import (
	"fmt"

	"github.com/dyike/MarketMindGo/internal/models"
)

var typeDescriptions = map[string]string{
	models.TypeOptimistic:  "optimistic, tends to see the positive side, high risk tolerance",
	models.TypePessimistic: "pessimistic, tends to see the risk, low risk tolerance",
	models.TypeCalm:        "calm, makes decisions based on data analysis",
}

func (a *Agent) beliefPrompt(news models.News, currentPrice float64, sentiment models.SentimentDistribution) string {
	return fmt.Sprintf(`You are a %s investor, named %s.

The current market situation:
- price: %.2f
- news: %s
- news sentiment: %s
- market sentiment distribution: optimistic %.2f, pessimistic %.2f, calm %.2f

Your current beliefs:
- market outlook: %s
- risk tolerance: %s

Please analyze the current situation and briefly state:
1. your opinion on this news (1-2 sentences)
2. your opinion on the price change (up/down/flat)
3. whether your market outlook changed (positive/negative/neutral)`,
		typeDescriptions[a.agentType], a.name,
		currentPrice, news.Content, news.Sentiment,
		sentiment.Optimistic, sentiment.Pessimistic, sentiment.Calm,
		a.beliefs[BeliefMarketOutlook], a.beliefs[BeliefRiskTolerance])
}

func (a *Agent) intentionPrompt(currentPrice float64) string {
	return fmt.Sprintf(`You are %s, a %s investor.

The current situation:
- price: %.2f
- your cash: %s
- your shares: %d
- your market outlook: %s

Please decide your investment action. You can only choose one of the following:
1. buy (if you think the price will go up)
2. sell (if you think the price will go down or need to sell)
3. hold (if you prefer to wait and see)

Please answer in the following format:
action: [buy/sell/hold]
quantity: [number of shares; write 0 if you hold]
reason: [briefly explain the reason, 1-2 sentences]`,
		a.name, typeDescriptions[a.agentType],
		currentPrice, a.cash.StringFixed(2), a.shares,
		a.beliefs[BeliefMarketOutlook])
}
