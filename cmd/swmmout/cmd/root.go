/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ssargent/swmmout/pkg/config"
	"github.com/ssargent/swmmout/pkg/di"
	"github.com/ssargent/swmmout/pkg/logging"
	"github.com/ssargent/swmmout/pkg/output"
)

type ctxKey int

const (
	configKey ctxKey = iota
	loggerKey
)

var container *di.Container

// SetContainer injects the dependency container
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "swmmout",
	Short: "swmmout - SWMM binary results reader",
	Long: `swmmout reads the binary results file written by the SWMM engine.

It prints metadata and time series, serves them over HTTP and copies series
into a local snapshot store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logCfg := logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
		logging.ApplyEnv(&logCfg)
		if cmd.Flags().Changed("log-level") {
			logCfg.Level, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("log-format") {
			logCfg.Format, _ = cmd.Flags().GetString("log-format")
		}
		if _, ok := logging.ParseLevel(logCfg.Level); !ok {
			return fmt.Errorf("unknown log level %q", logCfg.Level)
		}
		logger := logging.Init(logCfg, "swmmout")

		// Store in command context
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = context.WithValue(ctx, configKey, cfg)
		ctx = context.WithValue(ctx, loggerKey, logger)
		cmd.SetContext(ctx)
		return nil
	},
}

// loadConfig reads --config when given, the default path when it exists,
// and falls back to defaults otherwise
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	if def := config.GetDefaultConfigPath(); config.ConfigExists(def) {
		cfg, err := config.LoadConfig(def)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey).(*config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}

func loggerFrom(cmd *cobra.Command) zerolog.Logger {
	if l, ok := cmd.Context().Value(loggerKey).(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}

// openResults opens path, falling back to the configured results file when
// path is empty. A warned file opens normally; the warning is logged.
func openResults(cmd *cobra.Command, path string) (*output.Session, error) {
	if path == "" {
		path = configFrom(cmd).Results
	}
	if path == "" {
		return nil, fmt.Errorf("no results file given and none configured")
	}

	opts := []output.Option{output.WithLogger(loggerFrom(cmd))}
	if container != nil {
		opts = append(opts, output.WithOpener(container.GetOpener()))
	}

	sess := output.New(opts...)
	if _, err := sess.Open(path); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return sess, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default ~/.config/swmmout/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error, off)")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format (console or json)")
}
