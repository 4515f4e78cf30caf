package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/smt/internal/batch"
)

var batchCmd = &cobra.Command{
	Use:   "batch [cases.yaml]",
	Short: "Run a batch of translate-and-evaluate cases",
	Long: `Translate and score each case, then print a report table.

The cases file has a top-level "cases" list:

  cases:
    - name: English to Spanish
      source_text: Hello world
      source_lang: en
      target_lang: es
      references: ["Hola mundo"]

Without a file a built-in set of cases is used. With --combined each case
goes through the single translate_and_evaluate endpoint.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().Bool("combined", false, "use the combined translate_and_evaluate endpoint")
	batchCmd.Flags().String("db", "", "record evaluations in this history database (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	cases := batch.DefaultCases()
	if len(args) == 1 {
		cases, err = batch.LoadCases(args[0])
		if err != nil {
			return err
		}
	}

	client, err := newServiceClient(cfg)
	if err != nil {
		return err
	}

	var opts []batch.Option
	if combined, _ := cmd.Flags().GetBool("combined"); combined {
		opts = append(opts, batch.WithCombined(client))
	}

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.History.Path
	}
	store, err := openHistory(dbPath)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		opts = append(opts, batch.WithRecorder(store))
	}

	fmt.Fprintf(stdout, "Running %d cases against %s\n\n", len(cases), cfg.Service.URL)
	report := batch.NewRunner(client, opts...).Run(cmd.Context(), cases)
	return report.Write(stdout)
}
