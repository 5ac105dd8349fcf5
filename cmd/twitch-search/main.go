package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/twitch/internal/app"
	"github.com/aussiebroadwan/twitch/pkg/helix"
)

var (
	limit    int
	first    int
	liveOnly bool
)

var rootCmd = &cobra.Command{
	Use:   "twitch-search",
	Short: "Search Twitch channels and categories",
	Long: `Search Twitch channels and categories through the Helix API.

Credentials are read from TWITCH_CLIENT_ID plus either TWITCH_ACCESS_TOKEN or
TWITCH_CLIENT_SECRET. Results are printed to stdout as JSON.

Examples:
  twitch-search channels dgby714
  twitch-search categories "just chatting" --limit 100`,
}

var channelsCmd = &cobra.Command{
	Use:   "channels [query]",
	Short: "Search channels (default query: dgby714)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI(cmd.Context())
		if err != nil {
			return err
		}
		channels, err := api.Search.AllChannels(cmd.Context(), searchRequest(args), limit)
		if err != nil {
			return err
		}
		return printJSON(channels)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories [query]",
	Short: "Search categories (default query: dgby714)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI(cmd.Context())
		if err != nil {
			return err
		}
		categories, err := api.Search.AllCategories(cmd.Context(), searchRequest(args), limit)
		if err != nil {
			return err
		}
		return printJSON(categories)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&limit, "limit", 50, "Stop paging once more than this many results are collected (0 for all)")
	rootCmd.PersistentFlags().IntVar(&first, "first", 20, "Page size requested from Twitch")
	channelsCmd.Flags().BoolVar(&liveOnly, "live-only", false, "Only return live channels")

	rootCmd.AddCommand(channelsCmd, categoriesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}

func newAPI(ctx context.Context) (*helix.API, error) {
	cfg := app.LoadConfig()
	logger := app.NewLogger("twitch-search", cfg)

	client, err := app.NewClient(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return helix.New(client), nil
}

func searchRequest(args []string) helix.SearchRequest {
	query := "dgby714"
	if len(args) > 0 {
		query = args[0]
	}
	return helix.SearchRequest{Query: query, First: first, LiveOnly: liveOnly}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
