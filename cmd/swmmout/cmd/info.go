package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/swmmout/pkg/errmgr"
	"github.com/ssargent/swmmout/pkg/output"
)

var unitSystemNames = []string{"US", "SI"}
var flowUnitNames = []string{"CFS", "GPM", "MGD", "CMS", "LPS", "MLD"}
var concUnitNames = []string{"MG", "UG", "COUNT", "NONE"}

func unitName(names []string, v int) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return "?"
}

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Print the header of a results file",
	Long: `Print version, element counts, units and reporting times of a results file.

Example:
  swmmout info model.out`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		sess, err := openResults(cmd, path)
		if err != nil {
			return err
		}
		defer sess.Close()

		version, err := sess.Version()
		if err != nil {
			return err
		}
		size, err := sess.ProjectSize()
		if err != nil {
			return err
		}
		units, err := sess.Units()
		if err != nil {
			return err
		}
		start, err := sess.StartDate()
		if err != nil {
			return err
		}
		step, err := sess.Times(output.ReportStep)
		if err != nil {
			return err
		}
		periods, err := sess.Times(output.NumPeriods)
		if err != nil {
			return err
		}

		cmd.Printf("File:          %s\n", sess.Path())
		cmd.Printf("Version:       %d\n", version)
		cmd.Printf("Subcatchments: %d\n", size[0])
		cmd.Printf("Nodes:         %d\n", size[1])
		cmd.Printf("Links:         %d\n", size[2])
		cmd.Printf("Pollutants:    %d\n", size[4])
		cmd.Printf("Unit system:   %s\n", unitName(unitSystemNames, units[0]))
		cmd.Printf("Flow units:    %s\n", unitName(flowUnitNames, units[1]))
		for i, c := range units[2:] {
			if size[4] == 0 {
				break
			}
			name, err := sess.ElementName(output.Pollutant, i)
			if err != nil {
				return err
			}
			cmd.Printf("  %-11s  %s\n", name, unitName(concUnitNames, c))
		}
		cmd.Printf("Start:         %s\n", output.DateTime(start).Format(time.RFC3339))
		cmd.Printf("Report step:   %ds\n", step)
		cmd.Printf("Periods:       %d\n", periods)

		if msg, ok := sess.CheckError(); ok && errmgr.IsWarning(sess.ErrorCode()) {
			cmd.Printf("Status:        %s\n", msg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
