// Package market owns price state, news generation, and the price-formation
// model. Price moves through a single composition rule: gaussian random walk
// plus order-flow impact plus news impact, with a hard floor at 30% of the
// initial price.
package market

import (
	"math"
	"math/rand"

	"github.com/dyike/MarketMindGo/internal/models"
)

const (
	priceFloorRatio    = 0.3
	walkStdDev         = 0.01
	orderFlowCoeff     = 0.1
	newsImpactCoeff    = 0.05
	newsProbability    = 0.7
	positiveNewsWeight = 0.4
	negativeNewsWeight = 0.4
)

// Market is the single-asset market. All mutation goes through Update,
// except GenerateNews which only appends to the news log.
type Market struct {
	initialPrice float64
	currentPrice float64

	priceHistory     []float64
	newsHistory      []models.News
	sentimentHistory []models.SentimentDistribution
	tradesHistory    []models.TradeBatch
	timestep         int

	positive []string
	negative []string
	neutral  []string

	rng   *rand.Rand
	noise func() float64
}

// Option adjusts market construction.
type Option func(*Market)

// WithHeadlines appends extra headlines to one of the template pools before
// the market starts running.
func WithHeadlines(sentiment string, headlines []string) Option {
	return func(m *Market) {
		switch sentiment {
		case models.SentimentPositive:
			m.positive = append(m.positive, headlines...)
		case models.SentimentNegative:
			m.negative = append(m.negative, headlines...)
		case models.SentimentNeutral:
			m.neutral = append(m.neutral, headlines...)
		}
	}
}

// WithNoise replaces the gaussian random-walk draw. Tests use it to pin the
// walk at zero.
func WithNoise(noise func() float64) Option {
	return func(m *Market) {
		m.noise = noise
	}
}

// New creates a market at the given initial price. The rand source is
// injected so tests and reproducible runs can pin the walk.
func New(initialPrice float64, rng *rand.Rand, opts ...Option) *Market {
	m := &Market{
		initialPrice: initialPrice,
		currentPrice: initialPrice,
		priceHistory: []float64{initialPrice},
		positive:     append([]string(nil), positiveNewsTemplates...),
		negative:     append([]string(nil), negativeNewsTemplates...),
		neutral:      append([]string(nil), neutralNewsTemplates...),
		rng:          rng,
	}
	m.noise = rng.NormFloat64
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GenerateNews emits one news item for the current timestep: with probability
// 0.7 a templated item (sentiment split 0.4/0.4/0.2 positive/negative/
// neutral), otherwise a fixed calm-market item. Appends to the news history;
// no effect on price.
func (m *Market) GenerateNews() models.News {
	news := models.News{Sentiment: models.SentimentNeutral, Timestamp: m.timestep}

	if m.rng.Float64() < newsProbability {
		r := m.rng.Float64()
		switch {
		case r < positiveNewsWeight:
			news.Sentiment = models.SentimentPositive
			news.Content = m.positive[m.rng.Intn(len(m.positive))]
		case r < positiveNewsWeight+negativeNewsWeight:
			news.Sentiment = models.SentimentNegative
			news.Content = m.negative[m.rng.Intn(len(m.negative))]
		default:
			news.Content = m.neutral[m.rng.Intn(len(m.neutral))]
		}
	} else {
		news.Content = calmMarketNews
	}

	m.newsHistory = append(m.newsHistory, news)
	return news
}

// NewsImpactScore maps a news sentiment to its price impact in [-1, 1].
func NewsImpactScore(news models.News) float64 {
	switch news.Sentiment {
	case models.SentimentPositive:
		return 0.7
	case models.SentimentNegative:
		return -0.7
	default:
		return 0.0
	}
}

// CalculatePrice commits a new price from the net order flow and news
// impact:
//
//	new = current + N(0, 0.01)*current + flow*0.1 + impact*current*0.05
//
// floored at 30% of the initial price.
func (m *Market) CalculatePrice(netOrderFlow, newsImpact float64) float64 {
	randomWalk := m.noise() * walkStdDev * m.currentPrice
	orderImpact := netOrderFlow * orderFlowCoeff
	newsEffect := newsImpact * m.currentPrice * newsImpactCoeff

	newPrice := m.currentPrice + randomWalk + orderImpact + newsEffect
	newPrice = math.Max(newPrice, m.initialPrice*priceFloorRatio)

	m.currentPrice = newPrice
	m.priceHistory = append(m.priceHistory, newPrice)
	return newPrice
}

// Update is the single state-transition entry point per simulation step:
// it folds the executed trades into net order flow, moves the price, records
// the trade batch, and advances the timestep.
func (m *Market) Update(trades []models.Trade, news models.News) {
	var netOrderFlow int64
	for _, trade := range trades {
		switch trade.Action {
		case models.ActionBuy:
			netOrderFlow += trade.Quantity
		case models.ActionSell:
			netOrderFlow -= trade.Quantity
		}
	}

	m.CalculatePrice(float64(netOrderFlow), NewsImpactScore(news))

	m.tradesHistory = append(m.tradesHistory, models.TradeBatch{
		Trades:       trades,
		NetOrderFlow: netOrderFlow,
		Timestamp:    m.timestep,
	})
	m.timestep++
}

// RecordSentiment appends one aggregate sentiment reading, index-aligned to
// the timestep it was computed at.
func (m *Market) RecordSentiment(s models.SentimentDistribution) {
	m.sentimentHistory = append(m.sentimentHistory, s)
}

// Statistics summarizes the price history. With fewer than two price points
// there is nothing to report and the zero value is returned.
func (m *Market) Statistics() models.MarketStatistics {
	if len(m.priceHistory) < 2 {
		return models.MarketStatistics{}
	}

	maxPrice, minPrice := m.priceHistory[0], m.priceHistory[0]
	for _, p := range m.priceHistory[1:] {
		maxPrice = math.Max(maxPrice, p)
		minPrice = math.Min(minPrice, p)
	}

	returns := make([]float64, 0, len(m.priceHistory)-1)
	for i := 1; i < len(m.priceHistory); i++ {
		returns = append(returns, (m.priceHistory[i]-m.priceHistory[i-1])/m.priceHistory[i-1])
	}

	return models.MarketStatistics{
		CurrentPrice:   m.currentPrice,
		PriceChange:    m.currentPrice - m.initialPrice,
		PriceChangePct: (m.currentPrice - m.initialPrice) / m.initialPrice * 100,
		Volatility:     stdDev(returns),
		MaxPrice:       maxPrice,
		MinPrice:       minPrice,
	}
}

func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sumSq float64
	for _, v := range values {
		sumSq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// CurrentPrice returns the last committed price.
func (m *Market) CurrentPrice() float64 { return m.currentPrice }

// InitialPrice returns the construction-time price.
func (m *Market) InitialPrice() float64 { return m.initialPrice }

// Timestep returns the number of completed updates.
func (m *Market) Timestep() int { return m.timestep }

// PriceHistory returns a copy of the full price series, starting with the
// initial price.
func (m *Market) PriceHistory() []float64 {
	return append([]float64(nil), m.priceHistory...)
}

// NewsHistory returns a copy of all generated news.
func (m *Market) NewsHistory() []models.News {
	return append([]models.News(nil), m.newsHistory...)
}

// SentimentHistory returns a copy of the recorded sentiment series.
func (m *Market) SentimentHistory() []models.SentimentDistribution {
	return append([]models.SentimentDistribution(nil), m.sentimentHistory...)
}

// TradesHistory returns a copy of the per-step trade batches.
func (m *Market) TradesHistory() []models.TradeBatch {
	return append([]models.TradeBatch(nil), m.tradesHistory...)
}
