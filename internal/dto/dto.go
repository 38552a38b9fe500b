// Package dto contains the wire-level data transfer objects handed to every
// transport (HTTP, Discord, CLI) by the controller layer.
package dto

import (
	"time"

	"github.com/callegarimattia/starfleet/internal/engine"
)

// CellView is what a renderer sees for a single coordinate: an opponent's field
// exposes only Void/Hit/Miss/Relay/Planet, never the underlying entity shape.
type CellView string

// Possible CellView values.
const (
	CellFree   CellView = "FREE"
	CellVoid   CellView = "VOID"
	CellEntity CellView = "ENTITY"
	CellHit    CellView = "HIT"
	CellMiss   CellView = "MISS"
	CellRelay  CellView = "RELAY"
	CellPlanet CellView = "PLANET"
)

func cellViewOf(s engine.CellStatus) CellView {
	switch s {
	case engine.CellStatusFree:
		return CellFree
	case engine.CellStatusVoid:
		return CellVoid
	case engine.CellStatusEntity:
		return CellEntity
	case engine.CellStatusHit:
		return CellHit
	case engine.CellStatusMiss:
		return CellMiss
	case engine.CellStatusRelay:
		return CellRelay
	case engine.CellStatusPlanet:
		return CellPlanet
	default:
		return CellVoid
	}
}

// GameState mirrors engine.GameState as a JSON-friendly string.
type GameState string

// Possible GameState values.
const (
	StateLobby  GameState = "LOBBY"
	StateSetup  GameState = "SETUP"
	StateActive GameState = "ACTIVE"
	StateOver   GameState = "OVER"
)

func gameStateOf(s engine.GameState) GameState {
	return GameState(s.String())
}

// BoardView is a coordinate-keyed snapshot of a field. Cells the field geometry
// doesn't contain (the corners of a circular or n-gon field) are reported as Void;
// a shadow view leaves out every cell the viewer may not see.
type BoardView struct {
	Height int                 `json:"height"`
	Width  int                 `json:"width"`
	Cells  map[string]CellView `json:"cells"`
}

// NewOwnBoardView builds the board an owner sees of their own field: every real
// cell, labelled Entity/Planet/Hit/Miss/Relay/Free by what currently occupies it,
// plus every Void cell present in occupied.
func NewOwnBoardView(meta engine.PlayerMeta, occupied map[engine.Coordinate]engine.CellStatus) BoardView {
	cells := make(map[string]CellView, len(meta.RealCells))
	for _, c := range meta.RealCells {
		cells[engine.FormatCoordinate(c)] = CellFree
	}
	for c, status := range occupied {
		cells[engine.FormatCoordinate(c)] = cellViewOf(status)
	}
	return BoardView{Height: meta.Height, Width: meta.Width, Cells: cells}
}

// NewShadowBoardView builds the board an opponent sees: Void cells, planet orbit
// cells, and cells a shot has already revealed (Hit/Miss/Relay). Free cells and
// un-shot entity cells are left out of the map.
func NewShadowBoardView(meta engine.PlayerMeta, revealed map[engine.Coordinate]engine.CellStatus) BoardView {
	cells := make(map[string]CellView, len(revealed))
	for c, status := range revealed {
		if status == engine.CellStatusEntity || status == engine.CellStatusFree {
			continue
		}
		cells[engine.FormatCoordinate(c)] = cellViewOf(status)
	}
	return BoardView{Height: meta.Height, Width: meta.Width, Cells: cells}
}

// FleetView summarizes what a fleet has left to place, by entity type name.
type FleetView struct {
	Pending map[string]int `json:"pending"`
}

func newFleetView(pending map[engine.EntityType]int) FleetView {
	out := make(map[string]int, len(pending))
	for t, n := range pending {
		out[t.String()] = n
	}
	return FleetView{Pending: out}
}

// PlayerView is a player's public state as seen over the wire.
type PlayerView struct {
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Board BoardView `json:"board"`
	Fleet FleetView `json:"fleet"`
}

// GameView is the full packet sent to a subscriber after every state change.
type GameView struct {
	MatchID string     `json:"match_id"`
	State   GameState  `json:"state"`
	Turn    string     `json:"turn,omitempty"`
	Winner  string     `json:"winner,omitempty"`
	Me      PlayerView `json:"me"`
	Enemy   PlayerView `json:"enemy"`
}

// NewGameView assembles a GameView, re-stating engine.GameState and the viewer's
// own entity/pending maps in wire form.
func NewGameView(
	matchID string,
	state engine.GameState,
	turn, winner string,
	me, enemy engine.PlayerMeta,
	meOccupied map[engine.Coordinate]engine.CellStatus,
	enemyRevealed map[engine.Coordinate]engine.CellStatus,
) GameView {
	return GameView{
		MatchID: matchID,
		State:   gameStateOf(state),
		Turn:    turn,
		Winner:  winner,
		Me: PlayerView{
			Name:  me.Name,
			Color: me.Color,
			Board: NewOwnBoardView(me, meOccupied),
			Fleet: newFleetView(me.Pending),
		},
		Enemy: PlayerView{
			Name:  enemy.Name,
			Color: enemy.Color,
			Board: NewShadowBoardView(enemy, enemyRevealed),
			Fleet: newFleetView(enemy.Pending),
		},
	}
}

// ShotResult is a single coordinate's outcome in a ShotView.
type ShotResult struct {
	Coordinate string   `json:"coordinate"`
	Status     CellView `json:"status"`
}

// ShotView reports the outcome of one Shoot call on a single field, mirroring the
// engine's two-event-per-shot shape (once for the shooter's own field, once for the
// target's).
type ShotView struct {
	Shooter        string       `json:"shooter"`
	Target         string       `json:"target"`
	Results        []ShotResult `json:"results"`
	DestroyedCells []string     `json:"destroyed_cells,omitempty"`
}

// NewShotView converts an engine.ShotEvent into its wire form.
func NewShotView(e *engine.ShotEvent) ShotView {
	results := make([]ShotResult, 0, len(e.ShotResults))
	for c, status := range e.ShotResults {
		results = append(results, ShotResult{Coordinate: engine.FormatCoordinate(c), Status: cellViewOf(status)})
	}
	destroyed := make([]string, 0, len(e.DestroyedCells))
	for _, c := range e.DestroyedCells {
		destroyed = append(destroyed, engine.FormatCoordinate(c))
	}
	return ShotView{
		Shooter:        e.Shooter,
		Target:         e.Target,
		Results:        results,
		DestroyedCells: destroyed,
	}
}

// User represents a registered identity, regardless of which transport it logged in
// through.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AuthResponse serves the signed token along with the user it was issued to.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// MatchSummary is a single row of the lobby list.
type MatchSummary struct {
	ID          string    `json:"match_id"`
	HostName    string    `json:"host_name"`
	PlayerCount int       `json:"player_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// GameEventKind names the reason a GameEvent was published.
type GameEventKind string

// Possible GameEventKind values.
const (
	EventPlayerJoined GameEventKind = "player_joined"
	EventEntityPlaced GameEventKind = "entity_placed"
	EventGameStarted  GameEventKind = "game_started"
	EventShotFired    GameEventKind = "shot_fired"
	EventGameOver     GameEventKind = "game_over"
)

// GameEvent is what NotificationService fans out to subscribers of a match. Data
// carries the kind-specific payload (a GameView, a ShotView, ...); transports that
// only care "something changed, refetch" can ignore it entirely.
type GameEvent struct {
	MatchID   string        `json:"match_id"`
	Kind      GameEventKind `json:"kind"`
	Data      any           `json:"data,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// WSEvent envelopes a push sent down the match event stream: either a fresh
// GameView ("game_update") or an error the stream can't recover from ("error").
type WSEvent struct {
	Type    string    `json:"type"`
	Payload *GameView `json:"payload,omitempty"`
	Error   string    `json:"error,omitempty"`
}
