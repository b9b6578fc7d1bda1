package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghettovoice/urlref/pathseg"
)

var relativeCmd = &cobra.Command{
	Use:   "relative TARGET FROM",
	Short: "Compute the relative path from one location to another",
	Long: `Relative prints the shortest relative path leading from the file
location FROM to TARGET, climbing with ".." segments where needed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), pathseg.Relative(args[0], args[1]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(relativeCmd)
}
