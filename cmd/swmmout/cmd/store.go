package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ssargent/swmmout/pkg/storage"
)

// openStore opens the snapshot store under --data-dir, or the configured
// data directory when the flag is unset
func openStore(cmd *cobra.Command) (*storage.DefaultStorage, error) {
	dataDir := configFrom(cmd).Storage.DataDir
	if cmd.Flags().Changed("data-dir") {
		dataDir, _ = cmd.Flags().GetString("data-dir")
	}
	if dataDir == "" {
		dataDir = "./data"
	}

	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return storage.NewDefaultStorage(filepath.Join(dataDir, "snapshots"))
}
