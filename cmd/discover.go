package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/julienpequegnot/feedlens/internal/config"
	"github.com/julienpequegnot/feedlens/internal/feed"
	"github.com/julienpequegnot/feedlens/internal/logger"
)

var discoverCmd = &cobra.Command{
	Use:   "discover <url>",
	Short: "Discover feed endpoints on an HTML page",
	Long: `Scans a page for declared alternate-feed links. When the page declares
none, conventional feed paths on its origin are probed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

var discoverJSON bool

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "Print the raw JSON payload")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	pageURL, err := feed.ValidateURL(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Init()
	fetcher := feed.NewFetcher(cfg.Timeout(), cfg.Fetch.UserAgent)
	pipeline := feed.NewPipeline(fetcher, log)

	result, err := pipeline.Discover(context.Background(), pageURL)
	if err != nil {
		return err
	}

	if discoverJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(result.Feeds) == 0 {
		fmt.Printf("No feeds found on %s\n", result.URL)
		return nil
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sourceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	urlStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	fmt.Println(headerStyle.Render(fmt.Sprintf(" %-9s  %-22s  %s", "SOURCE", "TYPE", "URL")))
	fmt.Println(strings.Repeat("─", 90))

	for _, f := range result.Feeds {
		fmt.Printf(" %s  %-22s  %s\n",
			sourceStyle.Render(fmt.Sprintf("%-9s", f.Source)),
			f.Type,
			urlStyle.Render(f.URL))
	}

	return nil
}
