package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/swmmout/pkg/output"
)

var fixedAttrs = map[output.ElementType]int{
	output.Subcatch: int(output.SubcatchPollutantConc),
	output.Node:     int(output.NodePollutantConc),
	output.Link:     int(output.LinkPollutantConc),
	output.System:   int(output.SysEvapRate) + 1,
}

// attrsCmd represents the attrs command
var attrsCmd = &cobra.Command{
	Use:   "attrs <type>",
	Short: "List attribute names of an element type",
	Long: `List the attribute ordinals and names accepted by series, attribute and
export. Pollutant concentrations follow the fixed attributes as pollutant_0,
pollutant_1 and so on.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseType(args[0])
		if err != nil {
			return err
		}
		for attr := 0; attr < fixedAttrs[t]; attr++ {
			cmd.Printf("%d\t%s\n", attr, output.AttributeName(t, attr))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(attrsCmd)
}
