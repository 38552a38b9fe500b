package discordbot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "starfleet",
		Description: "Play Starfleet!",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "host",
				Description: "Create a new match",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "join",
				Description: "Join an existing match",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "match_id",
						Description: "The match ID to join",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					},
				},
			},
			{
				Name:        "list",
				Description: "List matches waiting for a second player",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "field",
				Description: "Set your field's shape and dimensions",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "shape",
						Description: "rectangle, circle or hexagon",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "rectangle", Value: "rectangle"},
							{Name: "circle", Value: "circle"},
							{Name: "hexagon", Value: "hexagon"},
						},
					},
					{
						Name:        "params",
						Description: "Comma-separated shape parameters, e.g. 10,10",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					},
				},
			},
			{
				Name:        "fleet",
				Description: "Set how many of each entity you intend to place",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "entity_type",
						Description: "Corvette, Frigate, Destroyer, Cruiser, Relay or Planet",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					},
					{
						Name:        "count",
						Description: "How many to place",
						Type:        discordgo.ApplicationCommandOptionInteger,
						Required:    true,
						MinValue:    floatPtr(0),
					},
				},
			},
			{
				Name:        "place",
				Description: "Place one entity on your field",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "entity_type",
						Description: "Corvette, Frigate, Destroyer, Cruiser, Relay or Planet",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					},
					{
						Name:        "coordinate",
						Description: "e.g. A1",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					},
					{
						Name:        "rotation",
						Description: "0-3",
						Type:        discordgo.ApplicationCommandOptionInteger,
						Required:    false,
						MinValue:    floatPtr(0),
						MaxValue:    3,
					},
				},
			},
			{
				Name:        "autoplace",
				Description: "Place every remaining entity at random",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "ready",
				Description: "Lock in your setup choices",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "start",
				Description: "Start the match once both players are ready",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "shoot",
				Description: "Fire at a coordinate on the opponent's field",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "coordinate",
						Description: "e.g. A1",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					},
				},
			},
			{
				Name:        "status",
				Description: "View your current match state",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
		},
	},
}

func floatPtr(f float64) *float64 {
	return &f
}

// registerCommands registers every slash command with Discord.
func (b *Bot) registerCommands() error {
	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.appID, "", cmd); err != nil {
			return err
		}
		log.Debug().Str("command", cmd.Name).Msg("registered slash command")
	}
	return nil
}
