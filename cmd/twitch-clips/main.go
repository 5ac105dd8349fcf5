package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/twitch/internal/app"
	"github.com/aussiebroadwan/twitch/pkg/helix"
)

var (
	broadcasterID string
	gameID        string
	since         time.Duration
	limit         int
)

var rootCmd = &cobra.Command{
	Use:   "twitch-clips [clip-id...]",
	Short: "Fetch Twitch clips by ID, broadcaster or game",
	Long: `Fetch Twitch clips through the Helix API and print them as JSON.

Pass clip IDs as arguments, or select clips with --broadcaster or --game.

Examples:
  twitch-clips AwkwardHelplessSalamander SpicyTenderMonkey
  twitch-clips --broadcaster 141981764 --since 168h --limit 100`,
	RunE: runClips,
}

func init() {
	rootCmd.Flags().StringVar(&broadcasterID, "broadcaster", "", "Broadcaster ID to fetch clips for")
	rootCmd.Flags().StringVar(&gameID, "game", "", "Game ID to fetch clips for")
	rootCmd.Flags().DurationVar(&since, "since", 0, "Only clips created within this window")
	rootCmd.Flags().IntVar(&limit, "limit", 20, "Stop paging once more than this many clips are collected (0 for all)")
	rootCmd.MarkFlagsMutuallyExclusive("broadcaster", "game")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}

func runClips(cmd *cobra.Command, args []string) error {
	req := helix.GetClipsRequest{
		BroadcasterID: broadcasterID,
		GameID:        gameID,
		IDs:           args,
	}

	switch {
	case len(args) > 0 && (broadcasterID != "" || gameID != ""):
		return errors.New("clip IDs cannot be combined with --broadcaster or --game")
	case len(args) == 0 && broadcasterID == "" && gameID == "":
		return errors.New("pass clip IDs, --broadcaster or --game")
	}

	if since > 0 {
		started := time.Now().Add(-since).UTC()
		req.StartedAt = &started
	}

	cfg := app.LoadConfig()
	logger := app.NewLogger("twitch-clips", cfg)

	client, err := app.NewClient(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	api := helix.New(client)

	var clips []helix.Clip
	if len(args) > 0 {
		page, err := api.Clips.Get(cmd.Context(), req)
		if err != nil {
			return err
		}
		clips = page.Data
	} else {
		clips, err = api.Clips.GetAll(cmd.Context(), req, limit)
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(clips)
}
