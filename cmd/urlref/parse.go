package main

import (
	"encoding/json"
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/urlref"
)

var parseCmd = &cobra.Command{
	Use:   "parse URL",
	Short: "Parse a URI reference into its components",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := urlref.Parse(args[0])
		if err != nil {
			return errtrace.Wrap(err)
		}
		log.Debug("parsed reference", "input", args[0], "ref", ref)

		type components struct {
			Kind      string `json:"kind"`
			Scheme    string `json:"scheme,omitempty"`
			Authority string `json:"authority,omitempty"`
			Path      string `json:"path"`
			Query     string `json:"query,omitempty"`
			Fragment  string `json:"fragment,omitempty"`
		}

		var c components
		switch ref := ref.(type) {
		case *urlref.Absolute:
			c = components{
				Kind:      "absolute",
				Scheme:    ref.Scheme,
				Authority: ref.Authority,
				Path:      ref.Path,
				Query:     ref.Query.Val(),
				Fragment:  ref.Fragment.Val(),
			}
		case *urlref.Relative:
			c = components{
				Kind:     "relative",
				Path:     ref.Path,
				Query:    ref.Query.Val(),
				Fragment: ref.Fragment.Val(),
			}
		}

		if *output == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return errtrace.Wrap(enc.Encode(c))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "kind: %s\n", c.Kind)
		if c.Scheme != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "scheme: %s\n", c.Scheme)
		}
		if c.Authority != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "authority: %s\n", c.Authority)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "path: %s\n", c.Path)
		if c.Query != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "query: %s\n", c.Query)
		}
		if c.Fragment != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "fragment: %s\n", c.Fragment)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
