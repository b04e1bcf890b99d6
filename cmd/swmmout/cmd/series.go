package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/swmmout/pkg/output"
)

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:   "series <file> <type> <element> <attribute> [start end]",
	Short: "Print one attribute of one element over time",
	Long: `Print a time series. The element may be given by index or by name and the
attribute by ordinal or by name (see 'swmmout attrs'). Without a range the
whole run is printed; end is exclusive.

Examples:
  swmmout series model.out link C1 flow_rate
  swmmout series model.out node 3 total_inflow 10 20
  swmmout series model.out system 0 rainfall`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 4 && len(args) != 6 {
			return cobra.ExactArgs(4)(cmd, args)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseType(args[1])
		if err != nil {
			return err
		}
		attr, err := output.ParseAttribute(t, args[3])
		if err != nil {
			return err
		}

		sess, err := openResults(cmd, args[0])
		if err != nil {
			return err
		}
		defer sess.Close()

		idx, err := parseIndex(sess, t, args[2])
		if err != nil {
			return err
		}

		start, end := 0, 0
		if len(args) == 6 {
			if start, err = parseInt("start", args[4]); err != nil {
				return err
			}
			if end, err = parseInt("end", args[5]); err != nil {
				return err
			}
		} else if end, err = sess.Times(output.NumPeriods); err != nil {
			return err
		}

		values, err := sess.Series(t, idx, attr, start, end)
		if err != nil {
			return err
		}
		defer output.Free(&values)

		for k, v := range values {
			date, err := sess.PeriodDate(start + k)
			if err != nil {
				return err
			}
			cmd.Printf("%s\t%g\n", output.DateTime(date).Format(time.RFC3339), v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seriesCmd)
}
