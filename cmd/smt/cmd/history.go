package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/smt/internal/tui/views"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded evaluations",
	Long: `Show the most recent evaluations from the history database.

History is recorded when history.path is set in the config file or the
SMT_HISTORY_PATH environment variable.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openHistory(cfg.History.Path)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("history is disabled; set history.path in %s", getConfigFile())
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, views.RenderHistory(entries))
	return nil
}
