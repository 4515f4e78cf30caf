package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/smt/internal/pipeline"
)

var translateCmd = &cobra.Command{
	Use:   "translate <text>...",
	Short: "Translate text once and print the result",
	Long: `Translate text with the service and print the translation.

Examples:
  smt translate "Hello world" --from en --to es
  smt translate --to fr Good morning`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().String("from", "", "source language code (default from config)")
	translateCmd.Flags().String("to", "", "target language code (default from config)")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	from, to := languagePair(cmd, cfg.Defaults.SourceLang, cfg.Defaults.TargetLang)

	client, err := newServiceClient(cfg)
	if err != nil {
		return err
	}

	p := pipeline.New(client)
	if err := p.Translate(cmd.Context(), strings.Join(args, " "), from, to); err != nil {
		return err
	}

	fmt.Fprintln(stdout, p.State().TranslatedText())
	return nil
}

// languagePair returns the --from and --to flags, falling back to the
// configured defaults.
func languagePair(cmd *cobra.Command, defFrom, defTo string) (string, string) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	if from == "" {
		from = defFrom
	}
	if to == "" {
		to = defTo
	}
	return from, to
}
