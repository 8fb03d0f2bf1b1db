package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diegok/blobvolley/internal/app"
	"github.com/diegok/blobvolley/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "blobvolley",
		Short: "Two blobs, one ball and a net, in your terminal",
		Long: `Blob volley: keep the ball off your half of the court.

Left blob:  W jump, A/D move
Right blob: arrow keys
Either side can be played by the computer.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, configPath)
			if err != nil {
				return err
			}
			logger, closeLog, err := fileLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			return app.NewApp(cfg, logger).Run()
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	config.RegisterFlags(root.PersistentFlags())
	root.AddCommand(newSimulateCmd(&configPath))

	return root
}

// loadConfig reads the config file or environment, then the flags the user set
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fileLogger logs to the configured file. The terminal belongs to the game,
// so without a file nothing is logged.
func fileLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	lvl, err := cfg.Level()
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	if cfg.LogFile == "" {
		return zerolog.Nop(), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, eris.Wrapf(err, "open log file %s", cfg.LogFile)
	}
	return newLogger(f, lvl), func() { _ = f.Close() }, nil
}

func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
