package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/godim/internal/app"
	"github.com/philipparndt/godim/internal/config"
	"github.com/philipparndt/godim/internal/logger"
	"github.com/philipparndt/godim/version"
)

var (
	configPath string
	watch      bool
)

var rootCmd = &cobra.Command{
	Use:     "godim-viewer <file.stl>",
	Short:   "Interactive 3D dimensioning viewer",
	Long:    `godim-viewer shows an STL model and lets you place linear, aligned, angle and leader dimensions with snapping.`,
	Version: version.GetFullVersion(),
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		return app.Run(app.Options{
			ModelPath: args[0],
			Config:    cfg,
			Logger:    logger.New(os.Stderr, level, "godim"),
			Watch:     watch,
		})
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default ./godim.toml or user config dir)")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", true, "reload the model when the file changes")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
