package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	intlog "github.com/ghettovoice/urlref/internal/log"
)

var (
	rootCmd = &cobra.Command{
		Use:           "urlref",
		Short:         "URI reference tool: parse, resolve, normalize, query",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	log = intlog.Noop

	// Global flags
	verbose *bool
	output  *string
)

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	output = rootCmd.PersistentFlags().StringP("output", "o", "text", "output format: text or json")

	cobra.OnInitialize(func() {
		if *verbose {
			log = intlog.Dev
		} else {
			log = intlog.Def
		}
		slog.SetDefault(log)
	})
}
