// Package sim orchestrates one discrete time step across all agents and the
// market. The phase order is fixed: news, aggregate sentiment, belief updates
// for every agent, intention formation for every agent, trade execution for
// every agent, market update, snapshot. All agents trade at the pre-update
// price, so trades within a step are simultaneous and blind to each other.
package sim

import (
	"context"
	"math/rand"
	"time"

	"github.com/dyike/MarketMindGo/config"
	"github.com/dyike/MarketMindGo/internal/agent"
	"github.com/dyike/MarketMindGo/internal/market"
	"github.com/dyike/MarketMindGo/internal/models"
	"github.com/dyike/MarketMindGo/internal/oracle"
)

// agentTypeOrder fixes the roster order so runs with the same seeds are
// reproducible regardless of map iteration.
var agentTypeOrder = []string{models.TypeOptimistic, models.TypePessimistic, models.TypeCalm}

// Simulator exclusively owns one market and the agent roster. The simulation
// history is append-only and never mutated once a record lands.
type Simulator struct {
	cfg    *config.Config
	oracle oracle.Oracle

	market     *market.Market
	marketOpts []market.Option
	agents     []*agent.Agent

	history []models.StepRecord
}

// New builds a simulator from construction-time inputs. Agent creation fails
// only on an unknown type in the roster, which is a configuration bug.
func New(cfg *config.Config, orc oracle.Oracle, marketOpts ...market.Option) (*Simulator, error) {
	s := &Simulator{
		cfg:        cfg,
		oracle:     orc,
		marketOpts: marketOpts,
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulator) build() error {
	s.market = market.New(s.cfg.InitialPrice, s.newRand(), s.marketOpts...)

	s.agents = nil
	for _, agentType := range agentTypeOrder {
		for _, name := range s.cfg.AgentNames[agentType] {
			a, err := agent.New(name, agentType, s.cfg.InitialCash, s.oracle)
			if err != nil {
				return err
			}
			s.agents = append(s.agents, a)
		}
	}
	return nil
}

func (s *Simulator) newRand() *rand.Rand {
	seed := s.cfg.MarketSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Step executes one complete simulation step and appends its snapshot to the
// history. Oracle failures are absorbed upstream, so a step always completes
// and always produces a record.
func (s *Simulator) Step(ctx context.Context) models.StepRecord {
	news := s.market.GenerateNews()
	sentiment := s.MarketSentiment()
	price := s.market.CurrentPrice()

	for _, a := range s.agents {
		a.UpdateBeliefs(ctx, news, price, sentiment)
	}

	intentions := make([]models.AgentIntention, 0, len(s.agents))
	for _, a := range s.agents {
		intentions = append(intentions, models.AgentIntention{
			AgentName: a.Name(),
			AgentType: a.Type(),
			Intention: a.FormIntention(ctx, price),
		})
	}

	var trades []models.Trade
	for _, a := range s.agents {
		intention, ok := a.LastIntention()
		if !ok {
			continue
		}
		if trade := a.ExecuteTrade(intention, price); trade != nil {
			trade.AgentName = a.Name()
			trade.AgentType = a.Type()
			trades = append(trades, *trade)
		}
	}

	s.market.Update(trades, news)

	record := models.StepRecord{
		Timestep:        s.market.Timestep(),
		Price:           s.market.CurrentPrice(),
		News:            news,
		MarketSentiment: sentiment,
		Intentions:      intentions,
		Trades:          trades,
		AgentStates:     s.agentStates(),
	}
	s.history = append(s.history, record)
	return record
}

// MarketSentiment averages the sentiment scores per agent type; a type with
// no agents reads 0. The reading is also recorded into the market's
// sentiment history.
func (s *Simulator) MarketSentiment() models.SentimentDistribution {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, a := range s.agents {
		sums[a.Type()] += a.SentimentScore()
		counts[a.Type()]++
	}

	mean := func(agentType string) float64 {
		if counts[agentType] == 0 {
			return 0.0
		}
		return sums[agentType] / float64(counts[agentType])
	}

	sentiment := models.SentimentDistribution{
		Optimistic:  mean(models.TypeOptimistic),
		Pessimistic: mean(models.TypePessimistic),
		Calm:        mean(models.TypeCalm),
	}
	s.market.RecordSentiment(sentiment)
	return sentiment
}

func (s *Simulator) agentStates() []models.AgentSnapshot {
	price := s.market.CurrentPrice()
	states := make([]models.AgentSnapshot, 0, len(s.agents))
	for _, a := range s.agents {
		states = append(states, a.Snapshot(price))
	}
	return states
}

// Reset discards the market and all agents and rebuilds both from the
// original configuration. Full replacement, not a rollback.
func (s *Simulator) Reset() {
	// build only fails on an unknown agent type, which the initial
	// construction already validated.
	_ = s.build()
	s.history = nil
}

// Statistics merges market statistics with the trade count and roster size.
// Trades are counted two ways, from the step records and from the per-agent
// logs, and the larger of the two is reported.
func (s *Simulator) Statistics() models.SimulationStatistics {
	totalFromSteps := 0
	for _, record := range s.history {
		totalFromSteps += len(record.Trades)
	}
	totalFromAgents := 0
	for _, a := range s.agents {
		totalFromAgents += a.TradeCount()
	}

	return models.SimulationStatistics{
		MarketStatistics: s.market.Statistics(),
		TotalTrades:      max(totalFromSteps, totalFromAgents),
		NumAgents:        len(s.agents),
	}
}

// Market exposes the owned market for read access.
func (s *Simulator) Market() *market.Market { return s.market }

// Agents returns the roster in its fixed order.
func (s *Simulator) Agents() []*agent.Agent { return s.agents }

// History returns a copy of the simulation history.
func (s *Simulator) History() []models.StepRecord {
	return append([]models.StepRecord(nil), s.history...)
}
