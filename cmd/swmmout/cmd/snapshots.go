package cmd

import (
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/swmmout/pkg/output"
)

// snapshotsCmd represents the snapshots command
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots [id]",
	Short: "List stored snapshots",
	Long: `Without an id, list every stored snapshot oldest first. With an id, print
the series of that snapshot one element per line.

Examples:
  swmmout snapshots
  swmmout snapshots 2Fv6Sd1l3gZ7ZB9fQW4Yb4j1t0Q`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 0 {
			runs, err := store.Runs()
			if err != nil {
				return err
			}
			for _, run := range runs {
				cmd.Printf("%s\t%s\t%s\t%d series\t%s\n",
					run.ID, run.Type, output.AttributeName(run.Type, run.Attr),
					run.Series, run.Created.Format(time.RFC3339))
			}
			return nil
		}

		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid snapshot id %q: %w", args[0], err)
		}
		series, err := store.List(id)
		if err != nil {
			return err
		}
		for _, s := range series {
			cmd.Printf("%s", s.Element)
			for _, v := range s.Values {
				cmd.Printf("\t%g", v)
			}
			cmd.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotsCmd)
	snapshotsCmd.Flags().String("data-dir", "./data", "Data directory for snapshots")
}
