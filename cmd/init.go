package cmd

import (
	"fmt"

	"github.com/julienpequegnot/feedlens/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize feedlens configuration",
	Long:  `Creates the ~/.feedlens directory with a default config.yaml.`,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("Created config at %s/config.yaml\n", config.Dir())

	fmt.Println("\nFeedlens initialized! Next steps:")
	fmt.Println("  feedlens serve              Run the HTTP API")
	fmt.Println("  feedlens fetch <feed-url>   Fetch and normalise a feed")

	return nil
}
