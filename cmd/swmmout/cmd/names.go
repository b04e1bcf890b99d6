package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/swmmout/pkg/output"
)

// namesCmd represents the names command
var namesCmd = &cobra.Command{
	Use:   "names <file> <type>",
	Short: "List element names",
	Long: `List the names of every element of one type.

Types are subcatch, node, link and pollutant.

Example:
  swmmout names model.out node`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseType(args[1])
		if err != nil {
			return err
		}

		sess, err := openResults(cmd, args[0])
		if err != nil {
			return err
		}
		defer sess.Close()

		size, err := sess.ProjectSize()
		if err != nil {
			return err
		}
		if t == output.System {
			cmd.Println("0\tsystem")
			return nil
		}

		for i := 0; i < size[t]; i++ {
			name, err := sess.ElementName(t, i)
			if err != nil {
				return err
			}
			cmd.Printf("%d\t%s\n", i, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(namesCmd)
}
