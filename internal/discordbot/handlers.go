package discordbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// handleInteraction is the entry point for every Discord interaction.
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	if data.Name != "starfleet" {
		return
	}
	if len(data.Options) == 0 {
		respondError(s, i, "No subcommand provided")
		return
	}

	subcommand := data.Options[0]
	ctx := context.Background()

	userID := i.Member.User.ID
	username := i.Member.User.Username

	auth, err := b.ctrl.Login(ctx, username, "discord", userID)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to authenticate: %v", err))
		return
	}
	playerID := auth.User.ID

	switch subcommand.Name {
	case "host":
		b.handleHost(ctx, s, i, playerID)
	case "join":
		b.handleJoin(ctx, s, i, playerID, subcommand.Options)
	case "list":
		b.handleList(ctx, s, i)
	case "field":
		b.handleField(ctx, s, i, playerID, subcommand.Options)
	case "fleet":
		b.handleFleet(ctx, s, i, playerID, subcommand.Options)
	case "place":
		b.handlePlace(ctx, s, i, playerID, subcommand.Options)
	case "autoplace":
		b.handleAutoplace(ctx, s, i, playerID)
	case "ready":
		b.handleReady(ctx, s, i, playerID)
	case "start":
		b.handleStart(ctx, s, i, playerID)
	case "shoot":
		b.handleShoot(ctx, s, i, playerID, subcommand.Options)
	case "status":
		b.handleStatus(ctx, s, i, playerID)
	default:
		respondError(s, i, "Unknown subcommand")
	}
}

func optionMap(
	opts []*discordgo.ApplicationCommandInteractionDataOption,
) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func (b *Bot) handleHost(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, playerID string) {
	matchID, err := b.ctrl.HostGameAction(ctx, playerID)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to create match: %v", err))
		return
	}

	b.registerMatch(playerID, i.Member.User.ID, matchID, i.ChannelID)

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title: "Match created",
		Description: fmt.Sprintf(
			"Match ID: `%s`\n\nShare this with your opponent so they can join.", matchID,
		),
		Color:  0x00ff00,
		Footer: &discordgo.MessageEmbedFooter{Text: "Use /starfleet field, /starfleet fleet, /starfleet ready, then /starfleet place or /starfleet autoplace"},
	}, false)
}

func (b *Bot) handleJoin(
	ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate,
	playerID string, opts []*discordgo.ApplicationCommandInteractionDataOption,
) {
	matchID := opts[0].StringValue()

	view, err := b.ctrl.JoinGameAction(ctx, matchID, playerID)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to join match: %v", err))
		return
	}

	b.trackPlayer(playerID, i.Member.User.ID)
	b.trackMatch(i.Member.User.ID, matchID)

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Joined match",
		Description: fmt.Sprintf("Match ID: `%s`\n\nState: %s", matchID, view.State),
		Color:       0x00ff00,
	}, true)
}

func (b *Bot) handleList(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	matches, err := b.ctrl.ListGamesAction(ctx)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to list matches: %v", err))
		return
	}

	if len(matches) == 0 {
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Open matches",
			Description: "No matches available. Use `/starfleet host` to create one.",
			Color:       0xffaa00,
		}, true)
		return
	}

	var sb strings.Builder
	for _, m := range matches {
		fmt.Fprintf(&sb, "**%s** - host: %s (%d/2 players)\n", m.ID, m.HostName, m.PlayerCount)
	}

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Open matches",
		Description: sb.String(),
		Color:       0x0099ff,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Use /starfleet join <match_id>"},
	}, true)
}

func (b *Bot) handleField(
	ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate,
	playerID string, opts []*discordgo.ApplicationCommandInteractionDataOption,
) {
	m := optionMap(opts)
	shape := m["shape"].StringValue()

	var params []int
	for _, raw := range strings.Split(m["params"].StringValue(), ",") {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			respondError(s, i, fmt.Sprintf("Invalid parameter %q: %v", raw, err))
			return
		}
		params = append(params, n)
	}

	matchID, ok := b.requireActiveMatch(s, i)
	if !ok {
		return
	}

	view, err := b.ctrl.ConfigureFieldAction(ctx, matchID, playerID, shape, params)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to configure field: %v", err))
		return
	}
	respondEmbed(s, i, FormatGameView(&view), true)
}

func (b *Bot) handleFleet(
	ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate,
	playerID string, opts []*discordgo.ApplicationCommandInteractionDataOption,
) {
	m := optionMap(opts)

	matchID, ok := b.requireActiveMatch(s, i)
	if !ok {
		return
	}

	counts := map[string]int{m["entity_type"].StringValue(): int(m["count"].IntValue())}
	view, err := b.ctrl.ConfigureFleetAction(ctx, matchID, playerID, counts)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to configure fleet: %v", err))
		return
	}
	respondEmbed(s, i, FormatGameView(&view), true)
}

func (b *Bot) handlePlace(
	ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate,
	playerID string, opts []*discordgo.ApplicationCommandInteractionDataOption,
) {
	m := optionMap(opts)

	matchID, ok := b.requireActiveMatch(s, i)
	if !ok {
		return
	}

	rotation := 0
	if r, ok := m["rotation"]; ok {
		rotation = int(r.IntValue())
	}

	view, err := b.ctrl.PlaceEntityAction(
		ctx, matchID, playerID, m["entity_type"].StringValue(), m["coordinate"].StringValue(), rotation,
	)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to place entity: %v", err))
		return
	}
	respondEmbed(s, i, FormatGameView(&view), true)
}

func (b *Bot) handleAutoplace(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, playerID string) {
	matchID, ok := b.requireActiveMatch(s, i)
	if !ok {
		return
	}

	view, err := b.ctrl.AutoplaceAction(ctx, matchID, playerID)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to autoplace: %v", err))
		return
	}
	respondEmbed(s, i, FormatGameView(&view), true)
}

func (b *Bot) handleReady(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, playerID string) {
	matchID, ok := b.requireActiveMatch(s, i)
	if !ok {
		return
	}

	view, err := b.ctrl.ReadyAction(ctx, matchID, playerID)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to ready up: %v", err))
		return
	}
	respondEmbed(s, i, FormatGameView(&view), true)
}

func (b *Bot) handleStart(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, playerID string) {
	matchID, ok := b.requireActiveMatch(s, i)
	if !ok {
		return
	}

	view, err := b.ctrl.StartAction(ctx, matchID, playerID)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to start match: %v", err))
		return
	}
	respondEmbed(s, i, FormatGameView(&view), false)
}

func (b *Bot) handleShoot(
	ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate,
	playerID string, opts []*discordgo.ApplicationCommandInteractionDataOption,
) {
	matchID, ok := b.requireActiveMatch(s, i)
	if !ok {
		return
	}

	coordinate := opts[0].StringValue()
	_, view, err := b.ctrl.ShootAction(ctx, matchID, playerID, coordinate)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to fire: %v", err))
		return
	}

	embed := FormatGameView(&view)
	embed.Title = fmt.Sprintf("Fired at %s", coordinate)
	respondEmbed(s, i, embed, true)
}

func (b *Bot) handleStatus(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, playerID string) {
	matchID, ok := b.requireActiveMatch(s, i)
	if !ok {
		return
	}

	view, err := b.ctrl.GetGameStateAction(ctx, matchID, playerID)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to get match state: %v", err))
		return
	}
	respondEmbed(s, i, FormatGameView(&view), true)
}

func (b *Bot) requireActiveMatch(s *discordgo.Session, i *discordgo.InteractionCreate) (string, bool) {
	matchID, ok := b.getActiveMatch(i.Member.User.ID)
	if !ok {
		respondError(s, i, "You are not in an active match. Use `/starfleet host` or `/starfleet join` first.")
		return "", false
	}
	return matchID, true
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  flags,
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to respond to interaction")
	}
}

func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Error",
		Description: message,
		Color:       0xff0000,
	}, true)
}
