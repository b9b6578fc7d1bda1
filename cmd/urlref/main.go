// urlref is a command line tool around the urlref library: parsing URI
// references, resolving them against a base, normalizing paths and working
// with structured query strings.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
