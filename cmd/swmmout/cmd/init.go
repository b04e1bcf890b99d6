/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/swmmout/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file with a generated API key for the HTTP server.

The file is written to --config, or to ~/.config/swmmout/config.yaml when
--config is not given. An existing file is left alone unless --force is set.

Examples:
  swmmout init
  swmmout init --config ./swmmout.yaml --data-dir ./data --results model.out`,
	// init writes the file the root pre-run would otherwise try to load
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		results, _ := cmd.Flags().GetString("results")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists at %s. Use --force to overwrite.\n", configPath)
			return nil
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return err
		}
		if results != "" {
			cfg.Results = results
			if err := config.SaveConfig(cfg, configPath); err != nil {
				return err
			}
		}

		cmd.Printf("Wrote configuration to %s\n", configPath)
		cmd.Printf("API key: %s\n", cfg.Server.APIKey)
		cmd.Printf("Data directory: %s\n", cfg.Storage.DataDir)
		cmd.Printf("\nStart the server with:\n")
		cmd.Printf("  swmmout serve --config %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("data-dir", "./data", "Data directory for snapshots")
	initCmd.Flags().String("results", "", "Default results file")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}
