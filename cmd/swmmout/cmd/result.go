package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/swmmout/pkg/output"
)

// resultCmd represents the result command
var resultCmd = &cobra.Command{
	Use:   "result <file> <type> <period> <element>",
	Short: "Print every attribute of one element at a period",
	Long: `Print all result variables of one element at one reporting period.

Example:
  swmmout result model.out link 12 C1`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseType(args[1])
		if err != nil {
			return err
		}
		period, err := parseInt("period", args[2])
		if err != nil {
			return err
		}

		sess, err := openResults(cmd, args[0])
		if err != nil {
			return err
		}
		defer sess.Close()

		idx, err := parseIndex(sess, t, args[3])
		if err != nil {
			return err
		}
		values, err := sess.Result(t, period, idx)
		if err != nil {
			return err
		}

		for attr, v := range values {
			cmd.Printf("%s\t%g\n", output.AttributeName(t, attr), v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resultCmd)
}
