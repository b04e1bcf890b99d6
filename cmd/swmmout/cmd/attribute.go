package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/swmmout/pkg/output"
)

// attributeCmd represents the attribute command
var attributeCmd = &cobra.Command{
	Use:   "attribute <file> <type> <period> <attribute>",
	Short: "Print one attribute of every element at a period",
	Long: `Print one attribute for every element of a type at one reporting period.

Example:
  swmmout attribute model.out node 12 hydraulic_head`,
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
		attr, err := output.ParseAttribute(t, args[3])
		if err != nil {
			return err
		}

		sess, err := openResults(cmd, args[0])
		if err != nil {
			return err
		}
		defer sess.Close()

		values, err := sess.Attribute(t, period, attr)
		if err != nil {
			return err
		}

		for i, v := range values {
			name := "system"
			if t != output.System {
				if name, err = sess.ElementName(t, i); err != nil {
					return err
				}
			}
			cmd.Printf("%s\t%g\n", name, v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(attributeCmd)
}
