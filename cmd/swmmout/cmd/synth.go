package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/swmmout/pkg/codec"
	"github.com/ssargent/swmmout/pkg/output"
)

// synthCmd represents the synth command
var synthCmd = &cobra.Command{
	Use:   "synth <out>",
	Short: "Write a synthetic results file",
	Long: `Write a well-formed results file with generated element names and values.
Every value encodes its own coordinate as
period*10000 + category*1000 + element*10 + variable, which makes the file
useful for checking readers by hand.

Examples:
  swmmout synth test.out
  swmmout synth test.out --nodes 20 --links 19 --pollutants 2 --periods 288`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		nSub, _ := flags.GetInt("subcatchments")
		nNode, _ := flags.GetInt("nodes")
		nLink, _ := flags.GetInt("links")
		nPoll, _ := flags.GetInt("pollutants")
		periods, _ := flags.GetInt("periods")
		step, _ := flags.GetInt32("step")
		flowUnits, _ := flags.GetInt32("flow-units")
		runStatus, _ := flags.GetInt32("run-status")
		startRaw, _ := flags.GetString("start")

		for name, n := range map[string]int{
			"subcatchments": nSub, "nodes": nNode, "links": nLink,
			"pollutants": nPoll, "periods": periods,
		} {
			if n < 0 {
				return fmt.Errorf("--%s must not be negative", name)
			}
		}
		if step <= 0 {
			return fmt.Errorf("--step must be positive")
		}
		if flowUnits < int32(output.CFS) || flowUnits > int32(output.MLD) {
			return fmt.Errorf("--flow-units must be between %d and %d", output.CFS, output.MLD)
		}
		start, err := time.Parse(time.RFC3339, startRaw)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}

		b := &codec.Builder{
			Version:       51000,
			FlowUnits:     flowUnits,
			Subcatchments: elementNames("S", nSub),
			Nodes:         elementNames("J", nNode),
			Links:         elementNames("C", nLink),
			Pollutants:    elementNames("P", nPoll),
			SubcatchVars:  int(output.SubcatchPollutantConc) + nPoll,
			NodeVars:      int(output.NodePollutantConc) + nPoll,
			LinkVars:      int(output.LinkPollutantConc) + nPoll,
			SysVars:       int(output.SysEvapRate) + 1,
			StartDate:     output.DayCount(start),
			ReportStep:    step,
			Periods:       periods,
			RunStatus:     runStatus,
		}
		if err := b.WriteFile(args[0]); err != nil {
			return err
		}

		l := b.Layout()
		logger := loggerFrom(cmd)
		logger.Debug().
			Int64("results_offset", l.ResultsOffset).
			Int64("bytes_per_period", l.BytesPerPeriod).
			Msg("synthetic file layout")
		cmd.Printf("wrote %s (%d bytes, %d periods)\n", args[0], l.Size, periods)
		return nil
	},
}

func elementNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return names
}

func init() {
	rootCmd.AddCommand(synthCmd)
	synthCmd.Flags().Int("subcatchments", 2, "Number of subcatchments")
	synthCmd.Flags().Int("nodes", 3, "Number of nodes")
	synthCmd.Flags().Int("links", 2, "Number of links")
	synthCmd.Flags().Int("pollutants", 1, "Number of pollutants")
	synthCmd.Flags().Int("periods", 24, "Number of reporting periods")
	synthCmd.Flags().Int32("step", 300, "Reporting step in seconds")
	synthCmd.Flags().Int32("flow-units", int32(output.CFS), "Flow units code (0=CFS .. 5=MLD)")
	synthCmd.Flags().Int32("run-status", 0, "Run status stored in the trailer")
	synthCmd.Flags().String("start", "2020-01-01T00:00:00Z", "Start time (RFC3339)")
}
