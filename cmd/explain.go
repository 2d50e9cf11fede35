package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JeyrellT/pl300/internal/coach"
	"github.com/JeyrellT/pl300/internal/store"
)

var explainCmd = &cobra.Command{
	Use:   "explain <question-id>",
	Short: "Ask the AI tutor to explain a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		q, ok := cat.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown question id %q", args[0])
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

		provider, err := newProviderFromEnv(cmd, st)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		tutor := coach.New(provider, coach.DefaultConfig())
		exp, err := tutor.Explain(ctx, q, -1)
		if err != nil {
			return err
		}

		fmt.Printf("%s · %s\n\n%s\n\n", q.Domain.DisplayName(), q.Level.DisplayName(), q.Prompt)
		fmt.Println(exp.Summary)
		fmt.Println()
		fmt.Println(exp.WhyCorrect)
		if len(exp.WhyOthersWrong) > 0 {
			fmt.Println()
			for _, w := range exp.WhyOthersWrong {
				fmt.Println("  -", w)
			}
		}
		if len(exp.KeyConcepts) > 0 {
			fmt.Println("\nConceptos:", strings.Join(exp.KeyConcepts, ", "))
		}
		if exp.StudyTip != "" {
			fmt.Println("Consejo:", exp.StudyTip)
		}
		return nil
	},
}
