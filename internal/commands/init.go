package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/demobank/internal/config"
)

func newInitCommand() *cobra.Command {
	var backend string
	var postgresURL string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a demobank directory with a config file and data dir",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default()
			cfg.Storage.Backend = backend
			cfg.Storage.PostgresURL = postgresURL
			return runInit(cmd.OutOrStdout(), absDir, cfg)
		},
	}

	cmd.Flags().StringVar(&backend, "backend", config.BackendFile, "storage backend (file, postgres)")
	cmd.Flags().StringVar(&postgresURL, "postgres-url", "", "connection string for the postgres backend")

	return cmd
}

func runInit(out io.Writer, dir string, cfg *config.Config) error {
	if err := validateForCLI(cfg); err != nil {
		return err
	}

	cfgPath := filepath.Join(dir, defaultConfigFile)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	if err := os.MkdirAll(filepath.Join(dir, cfg.Storage.Dir), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(out, "Initialized demobank at %s\n", dir)
	return nil
}
