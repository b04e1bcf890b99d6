package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/swmmout/pkg/output"
	"github.com/ssargent/swmmout/pkg/storage"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file> <type> <attribute>",
	Short: "Copy one attribute of every element into the snapshot store",
	Long: `Copy the full time series of one attribute, for every element of a type,
into the snapshot store. Prints the id of the new snapshot.

Example:
  swmmout export model.out link flow_rate --data-dir ./data`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseType(args[1])
		if err != nil {
			return err
		}
		attr, err := output.ParseAttribute(t, args[2])
		if err != nil {
			return err
		}

		sess, err := openResults(cmd, args[0])
		if err != nil {
			return err
		}
		defer sess.Close()

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		id, n, err := store.Snapshot(sess, storage.SnapshotRequest{Type: t, Attr: attr})
		if err != nil {
			return err
		}
		logger := loggerFrom(cmd)
		logger.Info().
			Str("id", id.String()).
			Str("type", t.String()).
			Int("series", n).
			Msg("snapshot stored")
		cmd.Printf("%s\t%d series\n", id, n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("data-dir", "./data", "Data directory for snapshots")
}
