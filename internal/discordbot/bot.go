// Package discordbot provides Discord integration for the Starfleet engine.
package discordbot

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/callegarimattia/starfleet/internal/controller"
	"github.com/rs/zerolog/log"
)

// Bot is the Discord bot instance driving the engine through the AppController.
type Bot struct {
	session  *discordgo.Session
	appID    string
	ctrl     *controller.AppController
	notifier controller.NotificationService

	matchMu       sync.RWMutex
	activeMatches map[string]string // discord user ID -> match ID

	discordMu       sync.RWMutex
	playerToDiscord map[string]string // player ID -> discord user ID

	channelMu      sync.RWMutex
	matchToChannel map[string]string // match ID -> channel ID
}

// New creates a Discord bot instance, opening no connection yet.
func New(
	token, appID string,
	ctrl *controller.AppController,
	notifier controller.NotificationService,
) (*Bot, error) {
	if appID == "" {
		return nil, fmt.Errorf("discordbot: app ID is required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discordbot: creating session: %w", err)
	}

	b := &Bot{
		session:         session,
		appID:           appID,
		ctrl:            ctrl,
		notifier:        notifier,
		activeMatches:   make(map[string]string),
		playerToDiscord: make(map[string]string),
		matchToChannel:  make(map[string]string),
	}

	session.AddHandler(b.handleInteraction)

	return b, nil
}

// Start opens the Discord connection, registers slash commands and blocks until a
// shutdown signal or ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discordbot: opening connection: %w", err)
	}
	log.Info().Msg("discord bot connected")

	b.subscribeToEvents()

	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("discordbot: registering commands: %w", err)
	}
	log.Info().Int("count", len(commands)).Msg("slash commands registered")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("received shutdown signal")
	case <-ctx.Done():
		log.Info().Msg("context cancelled")
	}

	return b.Shutdown()
}

// Shutdown closes the Discord connection.
func (b *Bot) Shutdown() error {
	log.Info().Msg("shutting down discord bot")
	return b.session.Close()
}

func (b *Bot) trackPlayer(playerID, discordUserID string) {
	b.discordMu.Lock()
	b.playerToDiscord[playerID] = discordUserID
	b.discordMu.Unlock()
}

func (b *Bot) trackMatch(discordUserID, matchID string) {
	b.matchMu.Lock()
	b.activeMatches[discordUserID] = matchID
	b.matchMu.Unlock()
}

func (b *Bot) trackChannel(matchID, channelID string) {
	b.channelMu.Lock()
	b.matchToChannel[matchID] = channelID
	b.channelMu.Unlock()
}

func (b *Bot) getActiveMatch(discordUserID string) (string, bool) {
	b.matchMu.RLock()
	defer b.matchMu.RUnlock()
	matchID, ok := b.activeMatches[discordUserID]
	return matchID, ok
}

func (b *Bot) registerMatch(playerID, discordUserID, matchID, channelID string) {
	b.trackPlayer(playerID, discordUserID)
	b.trackMatch(discordUserID, matchID)
	b.trackChannel(matchID, channelID)
}
