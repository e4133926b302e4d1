// Package display renders step records and statistics for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dyike/MarketMindGo/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	upStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	downStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	neutralStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	newsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))
)

func sentimentStyle(sentiment string) lipgloss.Style {
	switch sentiment {
	case models.SentimentPositive:
		return upStyle
	case models.SentimentNegative:
		return downStyle
	default:
		return neutralStyle
	}
}

// RenderStep prints one completed step.
func RenderStep(record models.StepRecord, previousPrice float64) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("── Step %d ──", record.Timestep)))

	arrow := "→"
	style := neutralStyle
	if record.Price > previousPrice {
		arrow, style = "↑", upStyle
	} else if record.Price < previousPrice {
		arrow, style = "↓", downStyle
	}
	fmt.Printf("💰 Price: %s\n", style.Render(fmt.Sprintf("%.2f %s %.2f", previousPrice, arrow, record.Price)))

	fmt.Printf("📰 News [%s]: %s\n",
		sentimentStyle(record.News.Sentiment).Render(record.News.Sentiment),
		newsStyle.Render(record.News.Content))

	fmt.Printf("🌡️  Sentiment: optimistic %.2f | pessimistic %.2f | calm %.2f\n",
		record.MarketSentiment.Optimistic,
		record.MarketSentiment.Pessimistic,
		record.MarketSentiment.Calm)

	if len(record.Trades) == 0 {
		fmt.Println("🤝 Trades: none")
	} else {
		fmt.Printf("🤝 Trades: %d\n", len(record.Trades))
		for _, trade := range record.Trades {
			style := upStyle
			if trade.Action == models.ActionSell {
				style = downStyle
			}
			fmt.Printf("   %s %s %d @ %.2f (%s)\n",
				style.Render(strings.ToUpper(trade.Action)),
				trade.AgentName, trade.Quantity, trade.Price, trade.AgentType)
		}
	}
	fmt.Println()
}

// RenderAgents prints the per-agent state table of a step record.
func RenderAgents(states []models.AgentSnapshot) {
	fmt.Println(headerStyle.Render("AGENTS"))
	for _, state := range states {
		fmt.Printf("  %-24s %-12s cash %10.2f | shares %5d | value %10.2f | outlook %s (%.1f)\n",
			state.Name, state.Type, state.Cash, state.Shares,
			state.PortfolioValue, state.MarketOutlook, state.SentimentScore)
	}
	fmt.Println()
}

// RenderStatistics prints the final simulation summary.
func RenderStatistics(stats models.SimulationStatistics) {
	fmt.Println(headerStyle.Render("SIMULATION STATISTICS"))
	if stats.CurrentPrice == 0 {
		fmt.Println("  (not enough price points yet)")
		return
	}

	changeStyle := upStyle
	if stats.PriceChange < 0 {
		changeStyle = downStyle
	}

	fmt.Printf("  Current price:  %.2f\n", stats.CurrentPrice)
	fmt.Printf("  Price change:   %s\n",
		changeStyle.Render(fmt.Sprintf("%+.2f (%+.2f%%)", stats.PriceChange, stats.PriceChangePct)))
	fmt.Printf("  Volatility:     %.4f\n", stats.Volatility)
	fmt.Printf("  Price range:    %.2f - %.2f\n", stats.MinPrice, stats.MaxPrice)
	fmt.Printf("  Total trades:   %d\n", stats.TotalTrades)
	fmt.Printf("  Agents:         %d\n", stats.NumAgents)
	fmt.Println()
}
