// Package controller contains the main application controller orchestrating the flow
// between transports (HTTP, Discord, CLI) and the in-memory lobby/game services.
package controller

import (
	"context"

	"github.com/callegarimattia/starfleet/internal/dto"
)

// NotificationService handles event publishing and subscription for a match.
type NotificationService interface {
	Subscribe(matchID string) (Subscription, <-chan *dto.GameEvent)
	Publish(event *dto.GameEvent)
}

// Subscription represents a subscription to a match's events.
type Subscription interface {
	Unsubscribe()
}

// IdentityService handles user registration and login across every transport.
type IdentityService interface {
	// LoginOrRegister finds an existing user or creates a new one.
	// source: "web", "discord", "cli"
	// extID: the unique ID from the platform (a Discord user ID, or the username for web/CLI)
	LoginOrRegister(ctx context.Context, username, source, extID string) (dto.AuthResponse, error)
}

// LobbyService handles finding and creating matches.
type LobbyService interface {
	// CreateMatch starts a new game in LOBBY state with the host joined.
	CreateMatch(ctx context.Context, hostID string) (string, error)
	// ListMatches returns a summary of every match still accepting players.
	ListMatches(ctx context.Context) ([]dto.MatchSummary, error)
	// JoinMatch seats a second player; the match stays in LOBBY until Ready.
	JoinMatch(ctx context.Context, matchID, playerID string) (dto.GameView, error)
}

// GameService drives a match through SETUP, ACTIVE and OVER.
type GameService interface {
	// ConfigureField sets the shape and dimensions of a player's field during LOBBY.
	ConfigureField(ctx context.Context, matchID, playerID, shape string, params []int) (dto.GameView, error)
	// ConfigureFleet sets how many of each entity type a player intends to place.
	ConfigureFleet(ctx context.Context, matchID, playerID string, counts map[string]int) (dto.GameView, error)
	// PlaceEntity places a single entity at a coordinate, with an optional rotation.
	PlaceEntity(
		ctx context.Context,
		matchID, playerID, entityType, coordinate string,
		rotation int,
	) (dto.GameView, error)
	// Autoplace places every one of a player's pending entities at random.
	Autoplace(ctx context.Context, matchID, playerID string) (dto.GameView, error)
	// Ready moves the match from LOBBY to SETUP once both players have a field and
	// a fleet; a single call by either player makes the transition.
	Ready(ctx context.Context, matchID, playerID string) (dto.GameView, error)
	// Start transitions a fully-placed match from SETUP to ACTIVE.
	Start(ctx context.Context, matchID, playerID string) (dto.GameView, error)
	// Shoot fires at a coordinate on the opponent's field during ACTIVE play.
	Shoot(ctx context.Context, matchID, playerID, coordinate string) (dto.ShotView, dto.GameView, error)
	// GetState returns a fresh snapshot, used both for polling and to seed a stream.
	GetState(ctx context.Context, matchID, playerID string) (dto.GameView, error)
}

// AppController is the main controller orchestrating the application flow.
type AppController struct {
	auth     IdentityService
	lobby    LobbyService
	game     GameService
	notifier NotificationService
}

// NewAppController wires everything together.
func NewAppController(
	a IdentityService,
	l LobbyService,
	g GameService,
	n NotificationService,
) *AppController {
	return &AppController{auth: a, lobby: l, game: g, notifier: n}
}

// Login handles user authentication and registration.
func (c *AppController) Login(
	ctx context.Context,
	username, source, platformID string,
) (dto.AuthResponse, error) {
	return c.auth.LoginOrRegister(ctx, username, source, platformID)
}

// HostGameAction handles a player's request to host a new match.
func (c *AppController) HostGameAction(ctx context.Context, playerID string) (string, error) {
	return c.lobby.CreateMatch(ctx, playerID)
}

// ListGamesAction retrieves the list of matches still accepting players.
func (c *AppController) ListGamesAction(ctx context.Context) ([]dto.MatchSummary, error) {
	return c.lobby.ListMatches(ctx)
}

// JoinGameAction handles a player's request to join an existing match.
func (c *AppController) JoinGameAction(
	ctx context.Context,
	matchID, playerID string,
) (dto.GameView, error) {
	return c.lobby.JoinMatch(ctx, matchID, playerID)
}

// ConfigureFieldAction sets a player's field shape and dimensions.
func (c *AppController) ConfigureFieldAction(
	ctx context.Context,
	matchID, playerID, shape string,
	params []int,
) (dto.GameView, error) {
	return c.game.ConfigureField(ctx, matchID, playerID, shape, params)
}

// ConfigureFleetAction sets a player's intended fleet composition.
func (c *AppController) ConfigureFleetAction(
	ctx context.Context,
	matchID, playerID string,
	counts map[string]int,
) (dto.GameView, error) {
	return c.game.ConfigureFleet(ctx, matchID, playerID, counts)
}

// PlaceEntityAction handles a single entity placement.
func (c *AppController) PlaceEntityAction(
	ctx context.Context,
	matchID, playerID, entityType, coordinate string,
	rotation int,
) (dto.GameView, error) {
	return c.game.PlaceEntity(ctx, matchID, playerID, entityType, coordinate, rotation)
}

// AutoplaceAction asks the engine to place every pending entity for a player.
func (c *AppController) AutoplaceAction(
	ctx context.Context,
	matchID, playerID string,
) (dto.GameView, error) {
	return c.game.Autoplace(ctx, matchID, playerID)
}

// ReadyAction locks in a player's setup choices.
func (c *AppController) ReadyAction(
	ctx context.Context,
	matchID, playerID string,
) (dto.GameView, error) {
	return c.game.Ready(ctx, matchID, playerID)
}

// StartAction moves a match from SETUP into ACTIVE play.
func (c *AppController) StartAction(
	ctx context.Context,
	matchID, playerID string,
) (dto.GameView, error) {
	return c.game.Start(ctx, matchID, playerID)
}

// ShootAction fires at a coordinate on the opponent's field.
func (c *AppController) ShootAction(
	ctx context.Context,
	matchID, playerID, coordinate string,
) (dto.ShotView, dto.GameView, error) {
	return c.game.Shoot(ctx, matchID, playerID, coordinate)
}

// GetGameStateAction retrieves the current state of the match for a player.
func (c *AppController) GetGameStateAction(
	ctx context.Context,
	matchID, playerID string,
) (dto.GameView, error) {
	return c.game.GetState(ctx, matchID, playerID)
}

// SubscribeToMatch allows a transport to subscribe to a match's events.
func (c *AppController) SubscribeToMatch(
	matchID string,
) (sub Subscription, eventChan <-chan *dto.GameEvent) {
	return c.notifier.Subscribe(matchID)
}
