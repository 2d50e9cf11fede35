package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/mastery"
	"github.com/JeyrellT/pl300/internal/progress"
	"github.com/JeyrellT/pl300/internal/store"
	"github.com/JeyrellT/pl300/internal/tracker"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		tracking := trk.Snapshot()
		lvl := prog.Level()

		fmt.Printf("%s Nivel %d · %s (%d XP, %d puntos)\n",
			lvl.Icon, lvl.Number, lvl.Name, prog.TotalXP(), prog.TotalPoints())
		fmt.Printf("Quizzes completados: %d    Racha: %d días (mejor: %d)\n",
			prog.QuizzesCompleted(), prog.Streak().Current, prog.Streak().Longest)
		fmt.Printf("Preguntas dominadas: %d / %d    Precisión global: %.0f%%\n\n",
			progress.MasteredCount(tracking), cat.Len(),
			progress.ComputeOverallAccuracy(tracking)*100)

		domainStats := progress.ComputeDomainStats(tracking)
		for _, d := range catalog.AllDomains() {
			ds := domainStats[d]
			fmt.Printf("%-26s %3d intentadas  %3d dominadas  %3.0f%% precisión\n",
				d.DisplayName(), ds.Attempted, ds.Mastered, ds.Accuracy*100)
		}

		if unlocked := prog.Unlocked(); len(unlocked) > 0 {
			fmt.Println("\nLogros:")
			for _, a := range unlocked {
				fmt.Printf("  %s %s — %s\n", a.Icon, a.Name, a.Description)
			}
		}

		return nil
	},
}
