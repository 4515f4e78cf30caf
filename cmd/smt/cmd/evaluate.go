package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/f3rmion/smt/internal/pipeline"
	"github.com/f3rmion/smt/internal/references"
	"github.com/f3rmion/smt/internal/render"
	"github.com/f3rmion/smt/internal/smt"
	"github.com/f3rmion/smt/internal/tui/views"
)

var evaluateCmd = &cobra.Command{
	Use:     "evaluate [source text]",
	Aliases: []string{"eval"},
	Short:   "Score a translation against references with BLEU",
	Long: `Score a translation with BLEU and print the result.

Without --candidate the source text is translated first and the
translation is scored. References come from --ref flags or a .txt file
with one reference per line.

Examples:
  smt evaluate "Hello world" --to es --ref "Hola mundo"
  smt evaluate --candidate "Hola mundo" --refs-file refs.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().String("from", "", "source language code (default from config)")
	evaluateCmd.Flags().String("to", "", "target language code (default from config)")
	evaluateCmd.Flags().String("candidate", "", "translation to score instead of translating")
	evaluateCmd.Flags().StringArray("ref", nil, "reference translation (repeatable)")
	evaluateCmd.Flags().String("refs-file", "", "file with one reference per line")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	candidate, _ := cmd.Flags().GetString("candidate")
	if candidate == "" && len(args) == 0 {
		return fmt.Errorf("either source text or --candidate is required")
	}

	refs, err := referenceSet(cmd)
	if err != nil {
		return err
	}

	client, err := newServiceClient(cfg)
	if err != nil {
		return err
	}

	opts := []pipeline.Option{pipeline.WithReferences(refs)}
	store, err := openHistory(cfg.History.Path)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		opts = append(opts, pipeline.WithRecorder(store))
	}
	p := pipeline.New(client, opts...)

	from, to := languagePair(cmd, cfg.Defaults.SourceLang, cfg.Defaults.TargetLang)
	source := ""
	if len(args) == 1 {
		source = args[0]
	}

	if candidate != "" {
		p.SetCandidate(smt.TranslationRequest{SourceText: source, SourceLang: from, TargetLang: to}, candidate)
	} else if err := p.Translate(cmd.Context(), source, from, to); err != nil {
		return err
	}

	if err := p.Evaluate(cmd.Context()); err != nil {
		return err
	}

	res, _ := p.LastEvaluation()
	if candidate == "" {
		fmt.Fprintf(stdout, "Translation: %s\n\n", p.State().TranslatedText())
	}
	fmt.Fprint(stdout, views.RenderEvaluation(render.Evaluation(res)))
	return nil
}

// referenceSet builds the reference set from --refs-file and --ref. File
// lines come first.
func referenceSet(cmd *cobra.Command) (*references.Set, error) {
	var entries []string

	if path, _ := cmd.Flags().GetString("refs-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading references: %w", err)
		}
		entries = append(entries, references.ParseLines(string(data))...)
	}
	flagRefs, _ := cmd.Flags().GetStringArray("ref")
	entries = append(entries, flagRefs...)

	return references.FromEntries(entries), nil
}
