package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JeyrellT/pl300/internal/app"
	"github.com/JeyrellT/pl300/internal/coach"
	"github.com/JeyrellT/pl300/internal/llm"
	"github.com/JeyrellT/pl300/internal/mastery"
	"github.com/JeyrellT/pl300/internal/progress"
	"github.com/JeyrellT/pl300/internal/store"
	"github.com/JeyrellT/pl300/internal/tracker"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	trk, err := tracker.New(ctx, cat, st.KV(), st.Events(), mastery.DefaultConfig())
	if err != nil {
		return fmt.Errorf("load tracking state: %w", err)
	}
	prog, err := progress.NewService(ctx, st.KV(), st.Events())
	if err != nil {
		return fmt.Errorf("load progress state: %w", err)
	}

	deps := app.Deps{
		Catalog:  cat,
		Tracker:  trk,
		Progress: prog,
	}

	provider, err := newProviderFromEnv(cmd, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI explanations will be unavailable.")
	} else {
		deps.Coach = coach.New(provider, coach.DefaultConfig())
	}

	return app.Run(deps)
}

// newProviderFromEnv builds the configured provider with event logging, or
// discovers one from generic API key variables.
func newProviderFromEnv(cmd *cobra.Command, st *store.Store) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return llm.NewProvider(cmd.Context(), cfg, st.Events())
}
