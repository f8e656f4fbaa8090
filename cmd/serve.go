package cmd

import (
	"github.com/spf13/cobra"

	"github.com/julienpequegnot/feedlens/internal/config"
	"github.com/julienpequegnot/feedlens/internal/feed"
	"github.com/julienpequegnot/feedlens/internal/logger"
	"github.com/julienpequegnot/feedlens/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  `Serves /v1/feed, /v1/discover and /v1/health as a stateless JSON API.`,
	RunE:  runServe,
}

var (
	serveAddr    string
	serveTimeout int
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().IntVar(&serveTimeout, "timeout", 0, "Upstream timeout in milliseconds (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveTimeout > 0 {
		cfg.Fetch.TimeoutMillis = serveTimeout
	}

	log := logger.Init()
	fetcher := feed.NewFetcher(cfg.Timeout(), cfg.Fetch.UserAgent)
	pipeline := feed.NewPipeline(fetcher, log)

	e := server.New(pipeline, log).Router(cfg.Server.AllowedOrigins)
	log.Info("feedlens listening", "addr", cfg.Server.Addr, "timeout", cfg.Timeout())
	return e.Start(cfg.Server.Addr)
}
