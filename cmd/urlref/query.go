package main

import (
	"encoding/json"
	"fmt"
	"io"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/urlref/query"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Encode and decode structured query strings",
}

var maxDepth *int

var queryDecodeCmd = &cobra.Command{
	Use:   "decode QUERY",
	Short: "Decode a bracket-key query string into a JSON tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := query.Decode(args[0], *maxDepth)
		if err != nil {
			return errtrace.Wrap(err)
		}
		log.Debug("decoded query", "input", args[0], "keys", len(params))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return errtrace.Wrap(enc.Encode(params))
	},
}

var queryEncodeCmd = &cobra.Command{
	Use:   "encode [JSON]",
	Short: "Encode a JSON tree as a bracket-key query string",
	Long: `Encode renders a JSON object as a percent-encoded query string using
the bracket-key convention. The tree is read from the argument, or from
standard input when no argument is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var src []byte
		if len(args) == 1 {
			src = []byte(args[0])
		} else {
			var err error
			if src, err = io.ReadAll(cmd.InOrStdin()); err != nil {
				return errtrace.Wrap(err)
			}
		}

		var tree map[string]any
		if err := json.Unmarshal(src, &tree); err != nil {
			return errtrace.Wrap(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), query.Encode(tree))
		return nil
	},
}

func init() {
	maxDepth = queryDecodeCmd.Flags().Int("max-depth", query.DefaultMaxDepth, "key path depth limit")
	queryCmd.AddCommand(queryDecodeCmd, queryEncodeCmd)
	rootCmd.AddCommand(queryCmd)
}
