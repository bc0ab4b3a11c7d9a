// Command dlite is a CLI front-end over the dlite-go data model: inspecting
// entity files, loading and saving instances against a storage backend, and
// listing registered storage plugins.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sintef/dlite-go/internal/config"
	_ "github.com/sintef/dlite-go/internal/storage/jsonbackend"
	"github.com/sintef/dlite-go/pkg/logger"
)

var (
	configPath string
	appLogger  logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dlite",
	Short: "Inspect and manipulate dlite instances and entities",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if configPath != "" {
			loader := config.NewYAMLLoader(configPath)
			if err := loader.LoadFromFile(configPath, cfg); err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		l, err := logger.NewZapLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		appLogger = l
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a dlite config file")
	rootCmd.AddCommand(entityCmd, instanceCmd, pluginCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
