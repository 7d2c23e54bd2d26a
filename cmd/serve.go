package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/leighmacdonald/steamtech/bot"
	"github.com/leighmacdonald/steamtech/config"
	"github.com/leighmacdonald/steamtech/steam"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// serveCmd connects to Discord and answers queries until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to Discord and answer Steam queries",
	Run: func(cmd *cobra.Command, args []string) {
		if config.General.SteamKey == "" {
			log.Fatalf("A Steam web API key must be set (general.steam_key)")
		}
		if config.Discord.Token == "" {
			log.Fatalf("A Discord bot token must be set (discord.token)")
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		queries := steam.NewQueryService(steam.NewClient(config.General.SteamKey))
		if err := bot.New(queries).Start(ctx, config.Discord.Token); err != nil {
			log.Fatalf("Bot exited: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
