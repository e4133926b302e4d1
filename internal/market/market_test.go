package market

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyike/MarketMindGo/internal/models"
)

func newTestMarket(opts ...Option) *Market {
	return New(100.0, rand.New(rand.NewSource(42)), opts...)
}

func zeroNoise() Option {
	return WithNoise(func() float64 { return 0 })
}

func TestCalculatePriceNoDriftWithoutInputs(t *testing.T) {
	m := newTestMarket(zeroNoise())

	for i := 0; i < 50; i++ {
		price := m.CalculatePrice(0, 0)
		assert.Equal(t, 100.0, price)
	}
	assert.Equal(t, 100.0, m.CurrentPrice())
}

func TestCalculatePriceOrderFlowImpact(t *testing.T) {
	m := newTestMarket(zeroNoise())

	price := m.CalculatePrice(50, 0)
	assert.InDelta(t, 105.0, price, 1e-9) // 50 * 0.1 on top of 100
}

func TestCalculatePriceNewsImpact(t *testing.T) {
	m := newTestMarket(zeroNoise())

	price := m.CalculatePrice(0, 0.7)
	assert.InDelta(t, 103.5, price, 1e-9) // 0.7 * 100 * 0.05
}

func TestCalculatePriceFloor(t *testing.T) {
	m := newTestMarket(zeroNoise())

	price := m.CalculatePrice(-100000, -1)
	assert.Equal(t, 30.0, price)

	// The floor holds under any further selling pressure.
	for i := 0; i < 10; i++ {
		assert.GreaterOrEqual(t, m.CalculatePrice(-100000, -1), 30.0)
	}
}

func TestPriceFloorUnderRandomWalk(t *testing.T) {
	m := newTestMarket()

	for i := 0; i < 500; i++ {
		m.CalculatePrice(-1000, -1)
	}
	for _, p := range m.PriceHistory() {
		assert.GreaterOrEqual(t, p, 30.0)
	}
}

func TestNewsImpactScore(t *testing.T) {
	assert.Equal(t, 0.7, NewsImpactScore(models.News{Sentiment: models.SentimentPositive}))
	assert.Equal(t, -0.7, NewsImpactScore(models.News{Sentiment: models.SentimentNegative}))
	assert.Equal(t, 0.0, NewsImpactScore(models.News{Sentiment: models.SentimentNeutral}))
	assert.Equal(t, 0.0, NewsImpactScore(models.News{Sentiment: "unknown"}))
}

func TestGenerateNews(t *testing.T) {
	m := newTestMarket()

	for i := 0; i < 100; i++ {
		news := m.GenerateNews()
		assert.NotEmpty(t, news.Content)
		assert.Contains(t, []string{
			models.SentimentPositive,
			models.SentimentNegative,
			models.SentimentNeutral,
		}, news.Sentiment)
		assert.Equal(t, 0, news.Timestamp) // timestep only advances on Update
	}
	assert.Len(t, m.NewsHistory(), 100)
}

func TestUpdateNetOrderFlowAndAlignment(t *testing.T) {
	m := newTestMarket(zeroNoise())

	trades := []models.Trade{
		{Action: models.ActionBuy, Quantity: 30},
		{Action: models.ActionSell, Quantity: 10},
		{Action: models.ActionBuy, Quantity: 5},
	}
	news := models.News{Content: "x", Sentiment: models.SentimentNeutral}

	m.Update(trades, news)

	require.Len(t, m.TradesHistory(), 1)
	batch := m.TradesHistory()[0]
	assert.Equal(t, int64(25), batch.NetOrderFlow)
	assert.Equal(t, 0, batch.Timestamp)

	assert.Equal(t, 1, m.Timestep())
	assert.Len(t, m.PriceHistory(), 2)
	assert.InDelta(t, 102.5, m.CurrentPrice(), 1e-9)
}

func TestHistoryAlignmentOverManySteps(t *testing.T) {
	m := newTestMarket()

	const steps = 25
	for i := 0; i < steps; i++ {
		news := m.GenerateNews()
		m.Update(nil, news)
	}

	assert.Equal(t, steps, m.Timestep())
	assert.Len(t, m.PriceHistory(), steps+1)
	assert.Len(t, m.TradesHistory(), steps)
}

func TestStatisticsEmptyBelowTwoPoints(t *testing.T) {
	m := newTestMarket()
	assert.Equal(t, models.MarketStatistics{}, m.Statistics())
}

func TestStatistics(t *testing.T) {
	m := newTestMarket(zeroNoise())

	m.CalculatePrice(100, 0) // 110
	m.CalculatePrice(-50, 0) // 105

	stats := m.Statistics()
	assert.InDelta(t, 105.0, stats.CurrentPrice, 1e-9)
	assert.InDelta(t, 5.0, stats.PriceChange, 1e-9)
	assert.InDelta(t, 5.0, stats.PriceChangePct, 1e-9)
	assert.InDelta(t, 110.0, stats.MaxPrice, 1e-9)
	assert.InDelta(t, 100.0, stats.MinPrice, 1e-9)

	// Returns are 0.1 and -5/110; volatility is their population stddev.
	r1, r2 := 0.1, -5.0/110.0
	mean := (r1 + r2) / 2
	want := math.Sqrt(((r1-mean)*(r1-mean) + (r2-mean)*(r2-mean)) / 2)
	assert.InDelta(t, want, stats.Volatility, 1e-12)
}

func TestWithHeadlines(t *testing.T) {
	m := newTestMarket(WithHeadlines(models.SentimentNeutral, []string{"extra headline"}))
	assert.Contains(t, m.neutral, "extra headline")
	assert.Len(t, m.neutral, len(neutralNewsTemplates)+1)
}
