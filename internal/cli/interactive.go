package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/dyike/MarketMindGo/config"
	"github.com/dyike/MarketMindGo/internal/display"
)

// runInteractiveMode drives the simulation one command at a time.
func runInteractiveMode(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	showWelcome(cfg)

	simulator, err := buildSimulator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build simulator: %w", err)
	}

	for {
		var choice string
		prompt := &survey.Select{
			Message: "What next?",
			Options: []string{
				"step - advance the simulation by one step",
				"run - advance the simulation by ten steps",
				"agents - show agent states",
				"stats - show simulation statistics",
				"reset - discard state and start over",
				"quit",
			},
		}
		if err := survey.AskOne(prompt, &choice); err != nil {
			// Ctrl+C inside the prompt ends the session.
			return nil
		}

		switch {
		case strings.HasPrefix(choice, "step"):
			previousPrice := simulator.Market().CurrentPrice()
			record := simulator.Step(ctx)
			display.RenderStep(record, previousPrice)
		case strings.HasPrefix(choice, "run"):
			for i := 0; i < 10; i++ {
				previousPrice := simulator.Market().CurrentPrice()
				record := simulator.Step(ctx)
				display.RenderStep(record, previousPrice)
			}
		case strings.HasPrefix(choice, "agents"):
			if history := simulator.History(); len(history) > 0 {
				display.RenderAgents(history[len(history)-1].AgentStates)
			} else {
				fmt.Println("No steps yet - agents are at their initial state.")
			}
		case strings.HasPrefix(choice, "stats"):
			display.RenderStatistics(simulator.Statistics())
		case strings.HasPrefix(choice, "reset"):
			confirm := false
			if err := survey.AskOne(&survey.Confirm{
				Message: "Discard the market, agents, and history?",
			}, &confirm); err != nil || !confirm {
				continue
			}
			simulator.Reset()
			fmt.Println("🔄 Simulation reset.")
		default:
			fmt.Println("👋 Thank you for using MarketMindGo!")
			return nil
		}
	}
}

func showWelcome(cfg *config.Config) {
	fmt.Println("╔════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                    🚀 MarketMindGo v" + version + "                      ║")
	fmt.Println("║            LLM-Driven Agent-Based Market Simulation            ║")
	fmt.Println("╚════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Println("🤖 Agent roster:")
	for _, agentType := range []string{"optimistic", "pessimistic", "calm"} {
		for _, name := range cfg.AgentNames[agentType] {
			fmt.Printf("   • %s (%s)\n", name, agentType)
		}
	}
	fmt.Printf("\n💰 Initial price: %.2f | initial cash per agent: %.2f\n\n",
		cfg.InitialPrice, cfg.InitialCash)
}
