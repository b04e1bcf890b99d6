package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/swmmout/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Serve a results file over HTTP",
	Long: `Start the REST API server for one results file.

Flags override the config file. When an API key is set every /api/v1 route
requires it in the X-API-Key header. Snapshots are kept under the data
directory.

Examples:
  swmmout serve model.out
  swmmout serve model.out --port 9000 --api-key mysecretkey
  swmmout serve --config ./swmmout.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}
		cfg := configFrom(cmd)
		logger := loggerFrom(cmd)

		serverCfg := api.ServerConfig{
			Port:        cfg.Server.Port,
			Bind:        cfg.Server.Bind,
			APIKey:      cfg.Server.APIKey,
			CORSOrigins: cfg.Server.CORSOrigins,
		}
		if cmd.Flags().Changed("port") {
			serverCfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			serverCfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			serverCfg.APIKey, _ = cmd.Flags().GetString("api-key")
		}
		if serverCfg.APIKey == "" {
			logger.Warn().Msg("no API key configured, authentication disabled")
		}

		var path string
		if len(args) == 1 {
			path = args[0]
		}
		sess, err := openResults(cmd, path)
		if err != nil {
			return err
		}
		defer sess.Close()

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		starter := container.GetServerFactory().CreateServerStarter()
		if err := starter.StartServer(ctx, sess, store, serverCfg, logger); err != nil {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key for authentication")
	serveCmd.Flags().String("data-dir", "./data", "Data directory for snapshots")
}
