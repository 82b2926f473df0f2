package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/godim/internal/config"
	"github.com/philipparndt/godim/internal/logger"
	"github.com/philipparndt/godim/version"
)

var (
	configPath string
	logLevel   string

	cfg config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "godim",
	Short: "Annotate 3D models with measurement dimensions",
	Long: `godim places linear, aligned, angle and leader dimensions on STL models.
Dimensions snap to vertices, edge midpoints, face centroids and edges, or fall
back to a construction plane. Scripts describe the clicks; the result is
rendered to PNG and listed as a report.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		log = logger.New(cmd.ErrOrStderr(), level, "godim")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./godim.toml or user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
