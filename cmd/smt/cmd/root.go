// Package cmd contains all CLI commands for the SMT client.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/smt/internal/config"
	"github.com/f3rmion/smt/internal/history"
	"github.com/f3rmion/smt/internal/logger"
	"github.com/f3rmion/smt/internal/service"
)

// breakerCooldown is how long an open circuit rejects requests.
const breakerCooldown = 30 * time.Second

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smt",
	Short: "SMT - translate text and score it with BLEU",
	Long: `SMT is a terminal client for a statistical machine translation service.

It sends text to the service for translation, then scores the translation
against one or more reference translations with BLEU:
  - Translate between any configured language pair
  - Enter references by hand or load them from a .txt file
  - See the BLEU score, n-gram precisions and brevity penalty
  - Run batches of cases and keep an evaluation history

Running 'smt' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// SIGINT cancels in-flight requests.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/smt/config.yaml)")
	pf.String("service-url", "", "translation service base URL")
	pf.Duration("timeout", 0, "per-request timeout (0 disables)")
	pf.String("log-file", "", "write JSON logs to this file")
	pf.Bool("verbose", false, "verbose output")

	viper.BindPFlag("service.url", pf.Lookup("service-url"))
	viper.BindPFlag("service.timeout", pf.Lookup("timeout"))
	viper.BindPFlag("log.file", pf.Lookup("log-file"))
	viper.BindPFlag("verbose", pf.Lookup("verbose"))
}

// initConfig resolves the config file and enables SMT_* environment
// overrides such as SMT_SERVICE_URL.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_file", cfgFile)
	} else {
		path, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_file", path)
	}

	viper.SetEnvPrefix("SMT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// getConfigFile returns the configuration file path.
func getConfigFile() string {
	return viper.GetString("config_file")
}

// loadConfig loads the config file, applies flag and environment overrides
// and validates the result. A missing default file is not an error.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadOrDefault(getConfigFile())
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyOverrides(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupLogging initializes the global logger. When the TUI owns the
// terminal, console output is disabled and only the log file is written.
// The returned function closes the log file.
func setupLogging(cfg *config.Config, console bool) (func(), error) {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if viper.GetBool("verbose") {
		level = logger.LevelDebug
	}

	opts := logger.Options{Level: level}
	if console {
		opts.Console = os.Stderr
	}

	closeFn := func() {}
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		opts.File = f
		closeFn = func() { f.Close() }
	}

	logger.Init(opts)
	return closeFn, nil
}

// newServiceClient builds the HTTP client from the service settings.
func newServiceClient(cfg *config.Config) (*service.Client, error) {
	return service.NewClient(cfg.Service.URL,
		service.WithTimeout(cfg.Service.Timeout),
		service.WithBreaker(cfg.Service.BreakerThreshold, breakerCooldown),
	)
}

// openHistory opens the history database at path, or returns nil when path
// is empty.
func openHistory(path string) (*history.Store, error) {
	if path == "" {
		return nil, nil
	}
	return history.Open(path)
}

// stdout is where command output goes; tests replace it.
var stdout io.Writer = os.Stdout
