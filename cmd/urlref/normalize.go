package main

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/urlref"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize URL",
	Short: "Remove dot-segments from a reference's path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := urlref.Parse(args[0])
		if err != nil {
			return errtrace.Wrap(err)
		}
		switch ref := ref.(type) {
		case *urlref.Absolute:
			fmt.Fprintln(cmd.OutOrStdout(), ref.Normalize().Render(nil))
		case *urlref.Relative:
			fmt.Fprintln(cmd.OutOrStdout(), ref.Normalize().Render(nil))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
