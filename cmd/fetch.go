package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/julienpequegnot/feedlens/internal/config"
	"github.com/julienpequegnot/feedlens/internal/feed"
	"github.com/julienpequegnot/feedlens/internal/logger"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a feed and print its articles",
	Long: `Fetches a feed URL and prints the normalised article list. If the URL
serves an HTML page instead, discovery runs once and the first discovered
feed is followed.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

var fetchJSON bool

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "Print the raw JSON payload")
}

func runFetch(cmd *cobra.Command, args []string) error {
	feedURL, err := feed.ValidateURL(args[0])
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

	result, err := pipeline.Fetch(context.Background(), feedURL)
	if err != nil {
		return err
	}

	if fetchJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(result.Articles) == 0 {
		fmt.Printf("%s: no articles\n", result.FeedTitle)
		return nil
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	linkStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	fmt.Println(headerStyle.Render(result.FeedTitle))
	fmt.Println(strings.Repeat("─", 100))

	for _, a := range result.Articles {
		title := a.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Printf(" %s  %-60s  %s\n",
			dateStyle.Render(a.PubDate[:10]),
			title,
			linkStyle.Render(a.Link))
	}

	fmt.Fprintf(os.Stderr, "\n%d articles\n", len(result.Articles))
	return nil
}
