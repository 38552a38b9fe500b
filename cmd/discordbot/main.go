// Package main is the entry point for the Discord bot binary.
package main

import (
	"context"

	"github.com/callegarimattia/starfleet/internal/config"
	"github.com/callegarimattia/starfleet/internal/controller"
	"github.com/callegarimattia/starfleet/internal/discordbot"
	"github.com/callegarimattia/starfleet/internal/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load bot config")
	}

	notifier := service.NewNotificationService()
	identity := service.NewMemoryIdentityService(cfg.JWTSecret)
	memory := service.NewMemoryService(notifier)
	ctrl := controller.NewAppController(identity, memory, memory, notifier)

	bot, err := discordbot.New(cfg.DiscordToken, cfg.DiscordAppID, ctrl, notifier)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create discord bot")
	}

	log.Info().Msg("starting starfleet discord bot")
	if err := bot.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("discord bot error")
	}
}
