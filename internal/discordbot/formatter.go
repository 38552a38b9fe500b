package discordbot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/callegarimattia/starfleet/internal/dto"
	"github.com/callegarimattia/starfleet/internal/engine"
)

// FormatGameView renders a dto.GameView as a Discord embed.
func FormatGameView(view *dto.GameView) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Starfleet",
		Color: colorForState(view.State),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "State", Value: string(view.State), Inline: true},
		},
	}

	if view.Turn != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Turn", Value: view.Turn, Inline: true,
		})
	}
	if view.Winner != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Winner", Value: view.Winner, Inline: false,
		})
	}

	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "Your field", Value: formatBoard(view.Me.Board), Inline: false},
		&discordgo.MessageEmbedField{Name: "Enemy field", Value: formatBoard(view.Enemy.Board), Inline: false},
		&discordgo.MessageEmbedField{Name: "Your fleet", Value: formatFleet(view.Me.Fleet), Inline: true},
		&discordgo.MessageEmbedField{Name: "Enemy fleet", Value: formatFleet(view.Enemy.Fleet), Inline: true},
	)

	return embed
}

// formatBoard renders a rectangular slice of a BoardView as a fixed-width grid.
// Non-rectangular fields (circle/hex) still line up by column/row; cells the field
// geometry doesn't cover are simply blank, matching BoardView's sparse map.
func formatBoard(board dto.BoardView) string {
	if board.Width == 0 || board.Height == 0 {
		return "```\n(not configured yet)\n```"
	}

	var sb strings.Builder
	sb.WriteString("```\n  ")
	for x := 0; x < board.Width; x++ {
		fmt.Fprintf(&sb, "%c ", 'A'+x)
	}
	sb.WriteString("\n")

	for y := 0; y < board.Height; y++ {
		fmt.Fprintf(&sb, "%2d ", y+1)
		for x := 0; x < board.Width; x++ {
			coord := engine.FormatCoordinate(engine.Coordinate{X: x, Y: y})
			cell, ok := board.Cells[coord]
			if !ok {
				sb.WriteString("  ")
				continue
			}
			sb.WriteString(cellGlyph(cell))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("```")
	return sb.String()
}

func cellGlyph(cell dto.CellView) string {
	switch cell {
	case dto.CellFree:
		return "."
	case dto.CellEntity:
		return "#"
	case dto.CellHit:
		return "X"
	case dto.CellMiss:
		return "o"
	case dto.CellRelay:
		return "@"
	case dto.CellPlanet:
		return "*"
	default:
		return " "
	}
}

func formatFleet(fleet dto.FleetView) string {
	if len(fleet.Pending) == 0 {
		return "nothing pending"
	}

	var sb strings.Builder
	for entityType, count := range fleet.Pending {
		if count == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s: %d\n", entityType, count)
	}
	if sb.Len() == 0 {
		return "all placed"
	}
	return sb.String()
}

func colorForState(state dto.GameState) int {
	switch state {
	case dto.StateLobby:
		return 0x808080
	case dto.StateSetup:
		return 0xffaa00
	case dto.StateActive:
		return 0x0099ff
	case dto.StateOver:
		return 0x00ff00
	default:
		return 0x808080
	}
}
