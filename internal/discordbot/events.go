package discordbot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/callegarimattia/starfleet/internal/dto"
	"github.com/rs/zerolog/log"
)

// subscribeToEvents wires the bot to every match's events via the NotificationService
// wildcard subscription, so it can nudge a channel without the caller polling.
func (b *Bot) subscribeToEvents() {
	_, ch := b.notifier.Subscribe("*")
	go func() {
		for event := range ch {
			b.handleGameEvent(event)
		}
	}()
}

func (b *Bot) handleGameEvent(event *dto.GameEvent) {
	b.channelMu.RLock()
	channelID, ok := b.matchToChannel[event.MatchID]
	b.channelMu.RUnlock()
	if !ok || channelID == "" {
		return
	}

	embed := b.formatEventEmbed(event)
	if embed == nil {
		return
	}

	if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Warn().Err(err).Str("channel_id", channelID).Msg("failed to send channel message")
	}
}

func (b *Bot) formatEventEmbed(event *dto.GameEvent) *discordgo.MessageEmbed {
	switch event.Kind {
	case dto.EventPlayerJoined:
		return &discordgo.MessageEmbed{
			Title:       "Player joined",
			Description: "A second player has joined your match.",
			Color:       0x00ff00,
			Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Match %s", event.MatchID)},
		}
	case dto.EventEntityPlaced:
		return &discordgo.MessageEmbed{
			Title:       "Entity placed",
			Description: "Your opponent placed an entity.",
			Color:       0x0099ff,
		}
	case dto.EventGameStarted:
		return &discordgo.MessageEmbed{
			Title:       "Match started",
			Description: "Both fleets are in position. The battle begins.",
			Color:       0x00ff00,
		}
	case dto.EventShotFired:
		shot, ok := event.Data.(dto.ShotView)
		if !ok {
			return nil
		}
		return &discordgo.MessageEmbed{
			Title:       "Shot fired",
			Description: fmt.Sprintf("%s fired at %s.", shot.Shooter, shot.Target),
			Color:       0xff9900,
		}
	case dto.EventGameOver:
		shot, ok := event.Data.(dto.ShotView)
		if !ok {
			return nil
		}
		return &discordgo.MessageEmbed{
			Title:       "Match over",
			Description: fmt.Sprintf("The battle is decided — %s's last shot at %s ended it.", shot.Shooter, shot.Target),
			Color:       0xffd700,
		}
	default:
		return nil
	}
}
