// Command foilworks generates NACA airfoils and serves them over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chazu/foilworks/internal/config"
	"github.com/chazu/foilworks/internal/logging"
	"github.com/chazu/foilworks/pkg/naca6"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "foilworks",
	Short: "NACA airfoil generator and API server",
	Long: `foilworks generates NACA 4-digit, 5-digit and symmetric 6-series
airfoil coordinates, computes chord Reynolds numbers, evaluates wing
design scripts and serves all of it over an HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "foilworks.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd, genCmd, reynoldsCmd, scriptCmd, versionCmd)
}

// loadLibrary reads the 6-series base shapes named by the config.
func loadLibrary() (*naca6.Library, error) {
	lib, err := naca6.Load(cfg.NACA6.Dir, cfg.NACA6.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load 6-series base shapes: %w", err)
	}
	if lib.Len() == 0 {
		logger.Warn("no 6-series base shapes loaded; naca6 requests will fail",
			zap.String("dir", cfg.NACA6.Dir),
			zap.String("file", cfg.NACA6.File),
		)
	} else {
		logger.Debug("loaded 6-series base shapes", zap.Strings("keys", lib.Keys()))
	}
	return lib, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
