package models

// Agent personality types. The roster is fixed at construction; an unknown
// type is a configuration bug and rejected up front.
const (
	TypeOptimistic  = "optimistic"
	TypePessimistic = "pessimistic"
	TypeCalm        = "calm"
)

// News sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Trade actions.
const (
	ActionBuy  = "buy"
	ActionSell = "sell"
	ActionHold = "hold"
)

// News is a single generated news item. Timestamp is the market timestep at
// which the item was generated, not wall-clock time.
type News struct {
	Content   string `json:"content"`
	Sentiment string `json:"sentiment"`
	Timestamp int    `json:"timestamp"`
}

// Intention is a proposed, not yet executed trade decision. Response holds
// the raw oracle text it was parsed from.
type Intention struct {
	Action   string `json:"action"`
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
	Response string `json:"response"`
}

// Trade is a successfully executed trade. Cost is set for buys, Revenue for
// sells; both are exact decimal products of price and quantity rendered as
// strings for the audit trail.
type Trade struct {
	AgentName string  `json:"agent_name,omitempty"`
	AgentType string  `json:"agent_type,omitempty"`
	Action    string  `json:"action"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	Cost      string  `json:"cost,omitempty"`
	Revenue   string  `json:"revenue,omitempty"`
}

// Opinion is one entry of an agent's append-only opinion log.
type Opinion struct {
	News      string `json:"news"`
	Response  string `json:"response"`
	Timestamp int    `json:"timestamp"`
}

// SentimentDistribution is the per-type average sentiment of the agent
// population, each value in [-1, 1].
type SentimentDistribution struct {
	Optimistic  float64 `json:"optimistic"`
	Pessimistic float64 `json:"pessimistic"`
	Calm        float64 `json:"calm"`
}

// TradeBatch records all trades of one market update together with the net
// order flow they produced.
type TradeBatch struct {
	Trades       []Trade `json:"trades"`
	NetOrderFlow int64   `json:"net_order_flow"`
	Timestamp    int     `json:"timestamp"`
}

// AgentIntention pairs an intention with the agent that formed it, for the
// step record.
type AgentIntention struct {
	AgentName string    `json:"agent_name"`
	AgentType string    `json:"agent_type"`
	Intention Intention `json:"intention"`
}

// AgentSnapshot is a read-only dump of one agent's state at the end of a step.
type AgentSnapshot struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Cash           float64 `json:"cash"`
	Shares         int64   `json:"shares"`
	PortfolioValue float64 `json:"portfolio_value"`
	SentimentScore float64 `json:"sentiment_score"`
	MarketOutlook  string  `json:"market_outlook"`
}

// StepRecord is the immutable snapshot appended to the simulation history
// after every completed step. It is the canonical audit trail and the only
// outward-facing per-step contract.
type StepRecord struct {
	Timestep        int                   `json:"timestep"`
	Price           float64               `json:"price"`
	News            News                  `json:"news"`
	MarketSentiment SentimentDistribution `json:"market_sentiment"`
	Intentions      []AgentIntention      `json:"intentions"`
	Trades          []Trade               `json:"trades"`
	AgentStates     []AgentSnapshot       `json:"agent_states"`
}

// MarketStatistics summarizes the price history. Empty (zero) when fewer
// than two price points exist.
type MarketStatistics struct {
	CurrentPrice   float64 `json:"current_price"`
	PriceChange    float64 `json:"price_change"`
	PriceChangePct float64 `json:"price_change_pct"`
	Volatility     float64 `json:"volatility"`
	MaxPrice       float64 `json:"max_price"`
	MinPrice       float64 `json:"min_price"`
}

// SimulationStatistics merges market statistics with simulation-level counts.
type SimulationStatistics struct {
	MarketStatistics
	TotalTrades int `json:"total_trades"`
	NumAgents   int `json:"num_agents"`
}
