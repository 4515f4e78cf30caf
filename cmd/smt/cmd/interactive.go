package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/f3rmion/smt/internal/logger"
	"github.com/f3rmion/smt/internal/notify"
	"github.com/f3rmion/smt/internal/pipeline"
	"github.com/f3rmion/smt/internal/tui"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch the interactive translation and evaluation UI.

Controls:
  Ctrl+T      Translate
  Ctrl+E      Evaluate BLEU
  Ctrl+N      Add reference
  F1 / F2     Manual entry / file upload
  F5 / F6     Cycle source / target language
  Ctrl+Y      Copy translation
  Tab         Next pane
  Ctrl+C      Quit`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := newServiceClient(cfg)
	if err != nil {
		return err
	}

	opts := []pipeline.Option{pipeline.WithNotifier(notify.NewChannel(cfg.Notify.SuccessDelay))}
	store, err := openHistory(cfg.History.Path)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		opts = append(opts, pipeline.WithRecorder(store))
	}

	startDir, _ := os.Getwd()
	app := tui.NewApp(pipeline.New(client, opts...), tui.Options{
		Languages:  cfg.Languages,
		SourceLang: cfg.Defaults.SourceLang,
		TargetLang: cfg.Defaults.TargetLang,
		StartDir:   startDir,
		Context:    cmd.Context(),
	})

	logger.Info("starting TUI", "service", cfg.Service.URL)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
