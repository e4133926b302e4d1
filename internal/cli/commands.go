package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dyike/MarketMindGo/config"
	"github.com/dyike/MarketMindGo/internal/debug"
	"github.com/dyike/MarketMindGo/internal/display"
	"github.com/dyike/MarketMindGo/internal/storage/sqlite"
)

const version = "1.0.0"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "marketmind",
		Short: "MarketMindGo - LLM-driven market simulation",
		Long: `MarketMindGo simulates a small market of synthetic investors with distinct
behavioral dispositions. Agents observe generated news, update beliefs through an
LLM oracle, and their aggregated order flow drives a stochastic price process.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return debug.NewEinoDebugger(cfg).Initialize()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveMode(cmd.Context(), cfg)
		},
	}

	rootCmd.AddCommand(newRunCmd(cfg))
	rootCmd.AddCommand(newInteractiveCmd(cfg))
	rootCmd.AddCommand(newHistoryCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug output")
	rootCmd.PersistentFlags().BoolVar(&cfg.OfflineOracle, "offline", cfg.OfflineOracle, "Use the offline oracle instead of a live LLM")

	return rootCmd
}

// newRunCmd creates the run command.
func newRunCmd(cfg *config.Config) *cobra.Command {
	var (
		steps     int
		noJournal bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a fixed number of simulation steps",
		Long: `Run the market simulation for a fixed number of steps and print each step.
Example: marketmind run --steps=20 --price=100 --offline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			simulator, err := buildSimulator(ctx, cfg)
			if err != nil {
				return fmt.Errorf("build simulator: %w", err)
			}

			var store *sqlite.Store
			var runID string
			if !noJournal {
				store, err = sqlite.Open(cfg.DBPath)
				if err != nil {
					fmt.Printf("⚠️  Journal disabled: %v\n", err)
				} else {
					defer store.Close()
					runID, err = store.CreateRun(ctx, cfg.InitialPrice, len(simulator.Agents()))
					if err != nil {
						fmt.Printf("⚠️  Journal disabled: %v\n", err)
						store = nil
					}
				}
			}

			fmt.Printf("🚀 Simulating %d steps from price %.2f with %d agents\n\n",
				steps, cfg.InitialPrice, len(simulator.Agents()))

			for i := 0; i < steps; i++ {
				previousPrice := simulator.Market().CurrentPrice()
				record := simulator.Step(ctx)
				display.RenderStep(record, previousPrice)

				if store != nil {
					if err := store.AppendStep(ctx, runID, record); err != nil {
						fmt.Printf("⚠️  Journal write failed: %v\n", err)
					}
				}
			}

			if history := simulator.History(); len(history) > 0 {
				display.RenderAgents(history[len(history)-1].AgentStates)
			}

			stats := simulator.Statistics()
			display.RenderStatistics(stats)

			if store != nil {
				if err := store.FinishRun(ctx, runID, stats); err != nil {
					fmt.Printf("⚠️  Journal finalize failed: %v\n", err)
				} else {
					fmt.Printf("📄 Run journaled as %s\n", runID)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 10, "Number of simulation steps")
	cmd.Flags().Float64Var(&cfg.InitialPrice, "price", cfg.InitialPrice, "Initial stock price")
	cmd.Flags().Float64Var(&cfg.InitialCash, "cash", cfg.InitialCash, "Initial cash per agent")
	cmd.Flags().Int64Var(&cfg.MarketSeed, "seed", cfg.MarketSeed, "Market random seed (0 = time-based)")
	cmd.Flags().StringVar(&cfg.SeedSymbol, "symbol", cfg.SeedSymbol, "Seed the initial price from a real symbol")
	cmd.Flags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite journal path")
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "Disable the SQLite journal")
	cmd.Flags().BoolVar(&cfg.AugmentHeadlines, "headlines", cfg.AugmentHeadlines, "Augment the neutral news pool with live headlines")

	return cmd
}

func newInteractiveCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive simulation session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveMode(cmd.Context(), cfg)
		},
	}
}

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	var (
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled simulation runs, or replay one with --run",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			if runID != "" {
				return replayRun(cmd.Context(), store, runID)
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No journaled runs yet.")
				return nil
			}

			for _, run := range runs {
				fmt.Printf("%s  price %.2f  agents %d  steps %d  (%s)\n",
					run.ID, run.InitialPrice, run.NumAgents, run.Steps, run.CreatedAt)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	cmd.Flags().StringVar(&runID, "run", "", "Replay the journaled steps of one run")
	return cmd
}

func replayRun(ctx context.Context, store *sqlite.Store, runID string) error {
	run, err := store.Run(ctx, runID)
	if err != nil {
		return err
	}
	records, err := store.Steps(ctx, runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("No journaled steps for run %s.\n", runID)
		return nil
	}

	previousPrice := run.InitialPrice
	for _, record := range records {
		display.RenderStep(record, previousPrice)
		previousPrice = record.Price
	}
	if last := records[len(records)-1]; len(last.AgentStates) > 0 {
		display.RenderAgents(last.AgentStates)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("MarketMindGo v%s\n", version)
		},
	}
}
