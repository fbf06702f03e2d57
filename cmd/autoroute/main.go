package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stratai-labs/autoroute/pkg/adapter"
	"github.com/stratai-labs/autoroute/pkg/config"
	"github.com/stratai-labs/autoroute/pkg/engine"
	"github.com/stratai-labs/autoroute/pkg/history"
	"github.com/stratai-labs/autoroute/pkg/recorder"
)

var (
	configFile string
	debugFlag  bool
	catalog    *config.ModelCatalog
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "autoroute",
		Short: "Rule-based LLM routing with conversation-aware coherence",
		Long: `Autoroute scores each chat turn for complexity, maps the score to a
	capability tier, and selects the backing model for that tier. An explicit
	model lock bypasses scoring, and a coherence guard keeps an ongoing
	conversation from silently dropping to a weaker model.`,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to engine config file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	rootCmd.AddCommand(routeCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(signalsCmd())
	rootCmd.AddCommand(tiersCmd())
	rootCmd.AddCommand(modelsCmd())
	rootCmd.AddCommand(historyCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type routeFlags struct {
	conversation string
	turn         int
	category     string
	lock         string
	planning     bool
	noHistory    bool
	jsonOut      bool
}

func (f *routeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.conversation, "conversation", "", "conversation ID (new one generated if empty)")
	cmd.Flags().IntVar(&f.turn, "turn", 0, "conversation turn (derived from history if 0)")
	cmd.Flags().StringVar(&f.category, "category", "", "workspace category hint (coding, writing, research, general)")
	cmd.Flags().StringVar(&f.lock, "lock", "", "explicit model lock, bypasses scoring")
	cmd.Flags().BoolVar(&f.planning, "planning", false, "planning mode, biases toward reasoning tiers")
	cmd.Flags().BoolVar(&f.noHistory, "no-history", false, "skip the conversation history store")
}

func routeCmd() *cobra.Command {
	flags := &routeFlags{}

	cmd := &cobra.Command{
		Use:   "route [query]",
		Short: "Show the routing decision for a query without calling a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decision, _, err := routeQuery(args[0], flags)
			if err != nil {
				return err
			}

			if flags.jsonOut {
				data, err := json.MarshalIndent(decision, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			printDecision(decision)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "print the decision as JSON")

	return cmd
}

func askCmd() *cobra.Command {
	flags := &routeFlags{}

	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Route a prompt and send it to the selected model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := args[0]

			decision, cfg, err := routeQuery(prompt, flags)
			if err != nil {
				return err
			}

			adapters, err := createAdapters(cfg)
			if err != nil {
				return fmt.Errorf("failed to create adapters: %w", err)
			}

			adapterName := decision.Adapter
			if adapterName == "" {
				adapterName = catalog.Provider(decision.Model)
			}
			a, ok := adapters[adapterName]
			if !ok {
				return fmt.Errorf("adapter %q not available (missing API key?)", adapterName)
			}

			fmt.Fprintf(os.Stderr, "Routing to %s/%s (%s, confidence %.2f)\n",
				adapterName, decision.Model, decision.Tier, decision.Confidence)

			ctx := context.Background()
			completion, err := a.Generate(ctx, decision.Model, prompt)
			if err != nil && adapter.IsTransient(err) {
				completion, err = a.Generate(ctx, decision.Model, prompt)
			}
			if err != nil {
				return err
			}

			fmt.Println(completion.Content)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

// routeQuery runs the full routing flow: history lookup, engine decision,
// score recording, and fire-and-forget decision logging.
func routeQuery(query string, flags *routeFlags) (*engine.Decision, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	eng, err := engine.New(cfg.Engine, engine.WithDebug(debugFlag))
	if err != nil {
		return nil, nil, err
	}

	conversationID := flags.conversation
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	turn := flags.turn
	var recent []float64
	var store *history.Store

	if !flags.noHistory {
		store, err = history.Open("")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()

		if turn == 0 {
			turn, err = store.NextTurn(conversationID)
			if err != nil {
				return nil, nil, err
			}
		}
		if turn > 1 {
			window := time.Duration(cfg.Engine.HistoryWindowMinutes) * time.Minute
			recent, err = store.RecentScores(conversationID, window, history.MaxWindowScores)
			if err != nil {
				return nil, nil, err
			}
		}
	}
	if turn == 0 {
		turn = 1
	}

	decision, err := eng.Route(engine.Request{
		Query:        query,
		Turn:         turn,
		Category:     engine.Category(flags.category),
		LockedModel:  catalog.Resolve(flags.lock),
		PlanningMode: flags.planning,
		RecentScores: recent,
	})
	if err != nil {
		return nil, nil, err
	}

	if store != nil && decision.RoutingPath != engine.PathContextOverride {
		if err := store.RecordScore(conversationID, turn, decision.Score); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record score: %v\n", err)
		}
	}

	if sink, err := recorder.NewStore(""); err == nil {
		recorder.Emit(sink, recorder.NewRecord(conversationID, turn, decision))
	}

	return decision, cfg, nil
}

func printDecision(d *engine.Decision) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "MODEL\t%s\n", d.Model)
	fmt.Fprintf(w, "TIER\t%s\n", d.Tier)
	fmt.Fprintf(w, "SCORE\t%.1f\n", d.Score)
	fmt.Fprintf(w, "CONFIDENCE\t%.2f\n", d.Confidence)
	fmt.Fprintf(w, "PATH\t%s\n", d.RoutingPath)
	if len(d.DetectedPatterns) > 0 {
		fmt.Fprintf(w, "PATTERNS\t%s\n", strings.Join(d.DetectedPatterns, ", "))
	}
	if len(d.OverridesApplied) > 0 {
		fmt.Fprintf(w, "OVERRIDES\t%s\n", strings.Join(d.OverridesApplied, ", "))
	}
	fmt.Fprintf(w, "REASONING\t%s\n", d.Reasoning)
	w.Flush()
}

func signalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signals",
		Short: "Show the complexity signal catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SIGNAL\tWEIGHT")

			for _, sig := range engine.SignalCatalog() {
				fmt.Fprintf(w, "%s\t%+.0f\n", sig.Tag, sig.Weight)
			}

			return w.Flush()
		},
	}
}

func tiersCmd() *cobra.Command {
	var validateFlag bool

	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "Show the tier-to-model mapping",
		Long: `Lists each capability tier and its configured adapter and model.

	Use --validate to check that every tier target resolves to a known
	provider model.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if validateFlag {
				return validateTiers(cfg)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIER\tADAPTER\tMODEL\tRESOLVED")

			for _, tier := range config.TierNames {
				target, _ := cfg.Engine.Target(tier)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tier, target.Adapter, target.Model, catalog.Resolve(target.Model))
			}

			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&validateFlag, "validate", false, "check tier targets against the model catalog")

	return cmd
}

func validateTiers(cfg *config.Config) error {
	if err := cfg.Engine.Validate(); err != nil {
		return err
	}

	errs := catalog.ValidateEngineConfig(cfg.Engine)
	if len(errs) == 0 {
		fmt.Println("All tier targets are valid.")
		return nil
	}

	fmt.Fprintf(os.Stderr, "Found %d validation errors:\n", len(errs))
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "  - %s\n", err)
	}
	return fmt.Errorf("validation failed")
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List providers, models, and key status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tMODELS\tSTATUS")

			providers := catalog.ListProviders()
			if len(providers) == 0 {
				providers = []string{"anthropic", "deepseek", "google", "openai", "mock"}
			}

			for _, provider := range providers {
				models := strings.Join(catalog.Models(provider), ", ")
				status := "no key"
				if cfg.HasAdapter(provider) || provider == "mock" {
					status = "ready"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", provider, models, status)
			}

			return w.Flush()
		},
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [conversation]",
		Short: "Show recent complexity scores for a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			store, err := history.Open("")
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer store.Close()

			window := time.Duration(cfg.Engine.HistoryWindowMinutes) * time.Minute
			scores, err := store.RecentScores(args[0], window, history.MaxWindowScores)
			if err != nil {
				return err
			}

			if len(scores) == 0 {
				fmt.Println("No recent scores for this conversation.")
				return nil
			}

			parts := make([]string, len(scores))
			for i, s := range scores {
				parts[i] = fmt.Sprintf("%.1f", s)
			}
			fmt.Printf("Recent scores (newest first): %s\n", strings.Join(parts, ", "))
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configFile != "" {
		cfg, err = config.LoadWithEngineFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	catalog, _ = config.LoadCatalogWithFallback("configs/models.yaml")

	return cfg, nil
}

func createAdapters(cfg *config.Config) (map[string]adapter.Adapter, error) {
	adapters := make(map[string]adapter.Adapter)

	if cfg.AnthropicAPIKey != "" {
		a, err := adapter.NewAnthropicAdapter(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create anthropic adapter: %w", err)
		}
		adapters["anthropic"] = a
	}

	if cfg.OpenAIAPIKey != "" {
		a, err := adapter.NewOpenAIAdapter(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai adapter: %w", err)
		}
		adapters["openai"] = a
	}

	if cfg.GoogleAPIKey != "" {
		a, err := adapter.NewGoogleAdapter(cfg.GoogleAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create google adapter: %w", err)
		}
		adapters["google"] = a
	}

	if cfg.DeepSeekAPIKey != "" {
		a, err := adapter.NewDeepSeekAdapter(cfg.DeepSeekAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create deepseek adapter: %w", err)
		}
		adapters["deepseek"] = a
	}

	adapters["mock"] = adapter.NewMockAdapter()

	return adapters, nil
}
