// Package cmd defines the CLI surface.
package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "pl300",
	Short: "Entrenador para el examen PL-300",
	Long:  "pl300 — entrenador de terminal para la certificación Microsoft Power BI Data Analyst (PL-300), con seguimiento de dominio por pregunta y tutor con IA.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	// A missing .env is fine; environment variables still apply.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PL300_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Path to an external question bank JSON file (defaults to the embedded bank)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PL300_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadCatalog returns the --bank file when given, the embedded bank otherwise.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cat, err := catalog.LoadFile(p)
		if err != nil {
			return nil, fmt.Errorf("load question bank %s: %w", p, err)
		}
		return cat, nil
	}
	return catalog.Embedded()
}
