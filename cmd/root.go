package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "feedlens",
	Short: "Fetch, normalise and discover RSS/Atom feeds",
	Long: `Feedlens turns remote RSS 2.0 and Atom 1.0 feeds into one canonical
article list, and finds candidate feed endpoints on arbitrary HTML pages.

When a feed URL turns out to be an HTML page, discovery runs once and the
first discovered feed is followed automatically.`,
}

func init() {
	rootCmd.Version = "0.1.0"
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
