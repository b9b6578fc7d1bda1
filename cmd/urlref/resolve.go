package main

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/urlref"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve BASE REF...",
	Short: "Resolve references against a base URI",
	Long: `Resolve combines each REF with BASE per RFC 3986 section 5, applying
them left to right, and prints the final reference.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := urlref.Parse(args[0])
		if err != nil {
			return errtrace.Wrap(err)
		}
		for _, arg := range args[1:] {
			next, err := base.Resolve(arg)
			if err != nil {
				return errtrace.Wrap(err)
			}
			log.Debug("resolved", "base", base, "ref", arg, "result", next)
			base = next
		}
		fmt.Fprintln(cmd.OutOrStdout(), base.Render(nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
