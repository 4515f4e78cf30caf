package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/f3rmion/smt/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to your config directory.

The file sets the service URL and timeout, the language list, the default
language pair, logging and the optional evaluation history database.
Edit it afterwards to point at your translation service.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := getConfigFile()

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Created %s\n\n", path)
	fmt.Fprintln(stdout, "Next steps:")
	fmt.Fprintln(stdout, "  1. Set service.url to your translation service")
	fmt.Fprintln(stdout, "  2. Run 'smt translate \"Hello world\" --to es' to check the connection")
	fmt.Fprintln(stdout, "  3. Run 'smt' to start the interactive UI")
	return nil
}
