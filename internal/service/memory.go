// Package service provides in-memory implementations of the controller's
// Lobby/Game/Identity/Notification interfaces, each wrapping an internal/engine.Game.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/callegarimattia/starfleet/internal/controller"
	"github.com/callegarimattia/starfleet/internal/dto"
	"github.com/callegarimattia/starfleet/internal/engine"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// maxActiveGamesPerHost caps how many matches a single player can have outstanding
// at once, so a misbehaving client can't flood the in-memory store.
const maxActiveGamesPerHost = 1

// ErrAlreadyInActiveGame is returned by CreateMatch/JoinMatch when the player is
// already the host or a seated player of a match that hasn't finished.
var ErrAlreadyInActiveGame = errors.New("service: player is already in an active game")

// ErrMatchNotFound is returned when matchID does not name a tracked match.
var ErrMatchNotFound = errors.New("service: match not found")

var (
	_ controller.LobbyService = (*MemoryService)(nil)
	_ controller.GameService  = (*MemoryService)(nil)
)

// MemoryService is an in-memory implementation of the lobby and game services,
// fanning out every state change through a NotificationService.
type MemoryService struct {
	games    map[string]*safeGame
	gamesMu  sync.RWMutex
	notifier controller.NotificationService
}

type safeGame struct {
	id        string
	game      *engine.Game
	host      string
	guest     string
	createdAt time.Time
	updatedAt time.Time
	mu        sync.Mutex
}

// NewMemoryService creates a new in-memory lobby and game service, publishing
// through notifier.
func NewMemoryService(notifier controller.NotificationService) *MemoryService {
	s := &MemoryService{
		games:    make(map[string]*safeGame),
		notifier: notifier,
	}
	go s.cleanupLoop()
	return s
}

func (s *MemoryService) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		s.gc()
	}
}

func (s *MemoryService) gc() {
	s.gamesMu.Lock()
	defer s.gamesMu.Unlock()

	now := time.Now()
	for id, g := range s.games {
		g.mu.Lock()
		over := g.game.WhosWinner() != ""
		lastUpdate := g.updatedAt
		g.mu.Unlock()

		switch {
		case over && now.Sub(lastUpdate) > 10*time.Minute:
			delete(s.games, id)
		case now.Sub(lastUpdate) > 24*time.Hour:
			delete(s.games, id)
		}
	}
	log.Debug().Int("remaining", len(s.games)).Msg("match store garbage collected")
}

// CreateMatch starts a new match in LOBBY state with hostID seated.
func (s *MemoryService) CreateMatch(_ context.Context, hostID string) (string, error) {
	if s.countActiveGamesByHost(hostID) >= maxActiveGamesPerHost {
		return "", ErrAlreadyInActiveGame
	}

	matchID := fmt.Sprintf("match-%s", uuid.NewString())
	game := engine.NewGame(matchID, time.Now().UnixNano())
	if _, err := game.SetPlayer(hostID, ""); err != nil {
		return "", err
	}

	sg := &safeGame{
		id:        matchID,
		game:      game,
		host:      hostID,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}

	s.gamesMu.Lock()
	s.games[matchID] = sg
	s.gamesMu.Unlock()

	return matchID, nil
}

// ListMatches returns a summary of every match still waiting for a second player.
func (s *MemoryService) ListMatches(_ context.Context) ([]dto.MatchSummary, error) {
	s.gamesMu.RLock()
	defer s.gamesMu.RUnlock()

	matches := make([]dto.MatchSummary, 0, len(s.games))
	for matchID, sg := range s.games {
		sg.mu.Lock()
		if sg.guest == "" {
			matches = append(matches, dto.MatchSummary{
				ID:          matchID,
				CreatedAt:   sg.createdAt,
				HostName:    sg.host,
				PlayerCount: playerCountUnsafe(sg),
			})
		}
		sg.mu.Unlock()
	}
	return matches, nil
}

// JoinMatch seats playerID as the match's second player, moving it toward SETUP.
func (s *MemoryService) JoinMatch(_ context.Context, matchID, playerID string) (dto.GameView, error) {
	if s.countActiveGamesByHost(playerID) >= maxActiveGamesPerHost {
		return dto.GameView{}, ErrAlreadyInActiveGame
	}

	sg, err := s.getSafeGame(matchID)
	if err != nil {
		return dto.GameView{}, err
	}

	sg.mu.Lock()
	defer sg.mu.Unlock()

	if _, err := sg.game.SetPlayer(playerID, ""); err != nil {
		return dto.GameView{}, err
	}
	sg.guest = playerID
	sg.updatedAt = time.Now()

	s.publish(matchID, dto.EventPlayerJoined, nil)
	return s.viewLocked(sg, playerID)
}

// ConfigureField sets a player's field shape and dimensions during LOBBY.
func (s *MemoryService) ConfigureField(
	_ context.Context,
	matchID, playerID, shape string,
	params []int,
) (dto.GameView, error) {
	sg, err := s.getSafeGame(matchID)
	if err != nil {
		return dto.GameView{}, err
	}

	sg.mu.Lock()
	defer sg.mu.Unlock()

	if _, err := sg.game.ChangePlayerField(playerID, engine.Shape(shape), params...); err != nil {
		return dto.GameView{}, err
	}
	sg.updatedAt = time.Now()
	return s.viewLocked(sg, playerID)
}

// ConfigureFleet sets how many of each entity type a player intends to place.
func (s *MemoryService) ConfigureFleet(
	_ context.Context,
	matchID, playerID string,
	counts map[string]int,
) (dto.GameView, error) {
	sg, err := s.getSafeGame(matchID)
	if err != nil {
		return dto.GameView{}, err
	}

	parsed, err := parseEntityCounts(counts)
	if err != nil {
		return dto.GameView{}, err
	}

	sg.mu.Lock()
	defer sg.mu.Unlock()

	if _, err := sg.game.ChangeEntityList(playerID, parsed); err != nil {
		return dto.GameView{}, err
	}
	sg.updatedAt = time.Now()
	return s.viewLocked(sg, playerID)
}

// PlaceEntity places a single entity at a coordinate during SETUP.
func (s *MemoryService) PlaceEntity(
	_ context.Context,
	matchID, playerID, entityType, coordinate string,
	rotation int,
) (dto.GameView, error) {
	sg, err := s.getSafeGame(matchID)
	if err != nil {
		return dto.GameView{}, err
	}

	t, err := parseEntityType(entityType)
	if err != nil {
		return dto.GameView{}, err
	}
	coords, err := engine.ParseCoordinate(coordinate)
	if err != nil {
		return dto.GameView{}, err
	}

	sg.mu.Lock()
	defer sg.mu.Unlock()

	if _, err := sg.game.PlaceEntity(playerID, t, coords, rotation); err != nil {
		return dto.GameView{}, err
	}
	sg.updatedAt = time.Now()

	s.publish(matchID, dto.EventEntityPlaced, nil)
	return s.viewLocked(sg, playerID)
}

// Autoplace places every one of a player's pending entities at random.
func (s *MemoryService) Autoplace(_ context.Context, matchID, playerID string) (dto.GameView, error) {
	sg, err := s.getSafeGame(matchID)
	if err != nil {
		return dto.GameView{}, err
	}

	sg.mu.Lock()
	defer sg.mu.Unlock()

	if _, _, err := sg.game.Autoplace(playerID); err != nil {
		return dto.GameView{}, err
	}
	sg.updatedAt = time.Now()

	s.publish(matchID, dto.EventEntityPlaced, nil)
	return s.viewLocked(sg, playerID)
}

// Ready locks in a player's field/fleet choice.
func (s *MemoryService) Ready(_ context.Context, matchID, playerID string) (dto.GameView, error) {
	sg, err := s.getSafeGame(matchID)
	if err != nil {
		return dto.GameView{}, err
	}

	sg.mu.Lock()
	defer sg.mu.Unlock()

	if _, err := sg.game.Ready(); err != nil {
		return dto.GameView{}, err
	}
	sg.updatedAt = time.Now()
	return s.viewLocked(sg, playerID)
}

// Start transitions a fully-placed match from SETUP to ACTIVE.
func (s *MemoryService) Start(_ context.Context, matchID, playerID string) (dto.GameView, error) {
	sg, err := s.getSafeGame(matchID)
	if err != nil {
		return dto.GameView{}, err
	}

	sg.mu.Lock()
	defer sg.mu.Unlock()

	if _, err := sg.game.Start(); err != nil {
		return dto.GameView{}, err
	}
	sg.updatedAt = time.Now()

	s.publish(matchID, dto.EventGameStarted, nil)
	return s.viewLocked(sg, playerID)
}

// Shoot fires at a coordinate on the opponent's field.
func (s *MemoryService) Shoot(
	_ context.Context,
	matchID, playerID, coordinate string,
) (dto.ShotView, dto.GameView, error) {
	sg, err := s.getSafeGame(matchID)
	if err != nil {
		return dto.ShotView{}, dto.GameView{}, err
	}

	coords, err := engine.ParseCoordinate(coordinate)
	if err != nil {
		return dto.ShotView{}, dto.GameView{}, err
	}

	sg.mu.Lock()
	defer sg.mu.Unlock()

	_, targetEvent, err := sg.game.Shoot(playerID, coords)
	if err != nil {
		return dto.ShotView{}, dto.GameView{}, err
	}
	sg.updatedAt = time.Now()

	shotView := dto.NewShotView(targetEvent)
	view, err := s.viewLocked(sg, playerID)
	if err != nil {
		return dto.ShotView{}, dto.GameView{}, err
	}

	kind := dto.EventShotFired
	if winner := sg.game.WhosWinner(); winner != "" {
		kind = dto.EventGameOver
	}
	s.publish(matchID, kind, shotView)

	return shotView, view, nil
}

// GetState returns a fresh snapshot for a player.
func (s *MemoryService) GetState(_ context.Context, matchID, playerID string) (dto.GameView, error) {
	sg, err := s.getSafeGame(matchID)
	if err != nil {
		return dto.GameView{}, err
	}

	sg.mu.Lock()
	defer sg.mu.Unlock()

	return s.viewLocked(sg, playerID)
}

// viewLocked assembles a GameView for playerID. Caller must hold sg.mu.
func (s *MemoryService) viewLocked(sg *safeGame, playerID string) (dto.GameView, error) {
	names, err := sg.game.GetPlayerNames()
	if err != nil {
		return dto.GameView{}, err
	}

	var enemyName string
	for _, n := range names {
		if n != playerID {
			enemyName = n
		}
	}

	me, err := sg.game.PlayerMeta(playerID)
	if err != nil {
		return dto.GameView{}, err
	}
	meSnapshot, err := sg.game.FieldSnapshot(playerID)
	if err != nil {
		return dto.GameView{}, err
	}

	var enemy engine.PlayerMeta
	var enemySnapshot map[engine.Coordinate]engine.CellStatus
	if enemyName != "" {
		enemy, err = sg.game.PlayerMeta(enemyName)
		if err != nil {
			return dto.GameView{}, err
		}
		enemySnapshot, err = sg.game.FieldSnapshot(enemyName)
		if err != nil {
			return dto.GameView{}, err
		}
	}

	turn, _ := sg.game.WhosTurn()

	return dto.NewGameView(
		sg.id,
		sg.game.State(),
		turn,
		sg.game.WhosWinner(),
		me, enemy,
		meSnapshot, enemySnapshot,
	), nil
}

func (s *MemoryService) publish(matchID string, kind dto.GameEventKind, data any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(&dto.GameEvent{
		MatchID:   matchID,
		Kind:      kind,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func (s *MemoryService) getSafeGame(matchID string) (*safeGame, error) {
	s.gamesMu.RLock()
	defer s.gamesMu.RUnlock()

	sg, exists := s.games[matchID]
	if !exists {
		return nil, ErrMatchNotFound
	}
	return sg, nil
}

func playerCountUnsafe(sg *safeGame) (count int) {
	if sg.host != "" {
		count++
	}
	if sg.guest != "" {
		count++
	}
	return count
}

func (s *MemoryService) countActiveGamesByHost(playerID string) int {
	s.gamesMu.RLock()
	defer s.gamesMu.RUnlock()

	count := 0
	for _, g := range s.games {
		g.mu.Lock()
		involved := g.host == playerID || g.guest == playerID
		over := g.game.WhosWinner() != ""
		g.mu.Unlock()

		if involved && !over {
			count++
		}
	}
	return count
}

func parseEntityType(name string) (engine.EntityType, error) {
	switch name {
	case "Corvette":
		return engine.Corvette, nil
	case "Frigate":
		return engine.Frigate, nil
	case "Destroyer":
		return engine.Destroyer, nil
	case "Cruiser":
		return engine.Cruiser, nil
	case "Relay":
		return engine.Relay, nil
	case "Planet":
		return engine.Planet, nil
	default:
		return 0, fmt.Errorf("service: unknown entity type %q", name)
	}
}

func parseEntityCounts(counts map[string]int) (map[engine.EntityType]int, error) {
	out := make(map[engine.EntityType]int, len(counts))
	for name, n := range counts {
		t, err := parseEntityType(name)
		if err != nil {
			return nil, err
		}
		out[t] = n
	}
	return out, nil
}
