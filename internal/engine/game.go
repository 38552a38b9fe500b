package engine

import "math/rand"

// sizeByType is used by the ready capacity heuristic.
var sizeByType = map[EntityType]int{
	Corvette:  1,
	Frigate:   2,
	Destroyer: 3,
	Cruiser:   4,
	Relay:     1,
	Planet:    1,
}

const autoplaceAttemptLimit = 50000

// Game is the referee between two players: the lifecycle state machine, turn order,
// and orchestrator of placement and shooting. A Game is a value advanced step by step
// by its caller; it never blocks and never mutates itself outside a call.
type Game struct {
	ID      string
	players map[string]*Player
	order   []string
	turn    int
	state   GameState
	winner  string
	events  []Event

	rng          *rand.Rand
	nextEntityID int

	// MaxPending, if non-zero, clamps any pending count set via ChangeEntityList.
	// The reference implementation does not clamp; a configuration knob is exposed
	// per the spec's open question rather than hardcoding either behavior.
	MaxPending int
}

// NewGame creates a Game with the given identifier, seeded for reproducible
// randomness (autoplace draws, planet rotation direction and initial orbit index).
func NewGame(id string, seed int64) *Game {
	return &Game{
		ID:      id,
		players: map[string]*Player{},
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (g *Game) checkState(want GameState) error {
	if g.state != want {
		return ErrWrongState
	}
	return nil
}

func (g *Game) getPlayer(name string) (*Player, error) {
	if len(g.players) == 0 {
		return nil, ErrNoPlayers
	}
	p, ok := g.players[name]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	return p, nil
}

func (g *Game) appendEvent(e Event) Event {
	g.events = append(g.events, e)
	return e
}

// Events returns the full append-only event log.
func (g *Game) Events() []Event {
	return g.events
}

// GetPlayerNames returns the names of every player currently in the game.
func (g *Game) GetPlayerNames() ([]string, error) {
	if len(g.players) == 0 {
		return nil, ErrNoPlayers
	}
	names := make([]string, 0, len(g.players))
	for _, name := range g.order {
		if _, ok := g.players[name]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// PlayerMeta returns a read-only projection of a player's state.
func (g *Game) PlayerMeta(name string) (PlayerMeta, error) {
	p, err := g.getPlayer(name)
	if err != nil {
		return PlayerMeta{}, err
	}

	order := -1
	for i, n := range g.order {
		if n == name {
			order = i
			break
		}
	}

	pending := make(map[EntityType]int, len(p.Pending))
	for t, c := range p.Pending {
		pending[t] = c
	}

	return PlayerMeta{
		Name:           p.Name,
		Color:          p.Color,
		Order:          order,
		Pending:        pending,
		DestroyedCells: p.DestroyedCells(),
		Shape:          p.Field.Shape,
		Height:         p.Field.Height,
		Width:          p.Field.Width,
		RealCells:      p.Field.UsefulCells(),
	}, nil
}

// FieldSnapshot returns the current per-cell status of name's own field, for
// building an owner's board view or seeding a bot's shadow field.
func (g *Game) FieldSnapshot(name string) (map[Coordinate]CellStatus, error) {
	p, err := g.getPlayer(name)
	if err != nil {
		return nil, err
	}
	return p.Field.Snapshot(), nil
}

func (g *Game) addLobbyEvent(subkind LobbySubkind, payload map[string]any) *LobbyEvent {
	event := &LobbyEvent{
		GameState: g.state,
		Subkind:   subkind,
		TurnOrder: append([]string(nil), g.order...),
		Winner:    g.winner,
		Payload:   payload,
	}
	g.appendEvent(*event)
	return event
}

func (g *Game) playerMetaPayload(name string) map[string]any {
	meta, err := g.PlayerMeta(name)
	if err != nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":           meta.Name,
		"color":          meta.Color,
		"order":          meta.Order,
		"pending":        meta.Pending,
		"destroyedCells": meta.DestroyedCells,
		"shape":          meta.Shape,
		"height":         meta.Height,
		"width":          meta.Width,
		"realCells":      meta.RealCells,
	}
}

// SetPlayer adds a player to a LOBBY game. Names must be unique and at most two
// players may join.
func (g *Game) SetPlayer(name, color string) (*LobbyEvent, error) {
	if err := g.checkState(StateLobby); err != nil {
		return nil, err
	}
	if len(g.players) >= 2 {
		return nil, ErrTooManyPlayers
	}
	if _, exists := g.players[name]; exists {
		return nil, ErrDuplicatePlayerName
	}

	p := NewPlayer(name, color)
	g.players[name] = p
	g.order = append(g.order, name)

	return g.addLobbyEvent(SubkindPlayerAdded, g.playerMetaPayload(name)), nil
}

// DelPlayer removes a player from a LOBBY game, re-ordering turn order so any
// remaining player moves into the first slot.
func (g *Game) DelPlayer(name string) (*LobbyEvent, error) {
	if err := g.checkState(StateLobby); err != nil {
		return nil, err
	}
	if _, err := g.getPlayer(name); err != nil {
		return nil, err
	}

	payload := g.playerMetaPayload(name)

	for i, n := range g.order {
		if n == name {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	delete(g.players, name)

	return g.addLobbyEvent(SubkindPlayerDeleted, payload), nil
}

// ChangePlayerColor recolors a player at any point in the game.
func (g *Game) ChangePlayerColor(name, color string) (*LobbyEvent, error) {
	p, err := g.getPlayer(name)
	if err != nil {
		return nil, err
	}
	p.Color = Colorize(color)
	return g.addLobbyEvent(SubkindPlayerChanged, g.playerMetaPayload(name)), nil
}

// ChangeEntityList sets the pending counts for the named entity types. Only valid in
// LOBBY. Negative amounts clamp to zero; if MaxPending is set, counts clamp to it too.
func (g *Game) ChangeEntityList(name string, counts map[EntityType]int) (*LobbyEvent, error) {
	p, err := g.getPlayer(name)
	if err != nil {
		return nil, err
	}
	if err := g.checkState(StateLobby); err != nil {
		return nil, err
	}

	for t, amount := range counts {
		if amount < 0 {
			amount = 0
		}
		if g.MaxPending > 0 && amount > g.MaxPending {
			amount = g.MaxPending
		}
		p.Pending[t] = amount
	}

	return g.addLobbyEvent(SubkindPlayerChanged, g.playerMetaPayload(name)), nil
}

// ChangePlayerField (re)generates a player's field. Only valid in LOBBY.
func (g *Game) ChangePlayerField(name string, shape Shape, params ...int) (*LobbyEvent, error) {
	if err := g.checkState(StateLobby); err != nil {
		return nil, err
	}
	p, err := g.getPlayer(name)
	if err != nil {
		return nil, err
	}

	if err := p.Field.Generate(shape, params...); err != nil {
		return nil, err
	}

	return g.addLobbyEvent(SubkindPlayerChanged, g.playerMetaPayload(name)), nil
}

// Ready transitions LOBBY to SETUP once exactly two players are present, each with a
// non-empty field and a fleet the capacity heuristic judges plausible:
// 3.4 · Σ(amount·size) < count(non-void cells).
func (g *Game) Ready() (*LobbyEvent, error) {
	if err := g.checkState(StateLobby); err != nil {
		return nil, err
	}
	if len(g.players) != 2 {
		return nil, ErrNotEnoughPlayers
	}

	for _, p := range g.players {
		usefulCells := len(p.Field.UsefulCells())
		if usefulCells == 0 {
			return nil, ErrEmptyField
		}

		estimated := 0.0
		total := 0
		for t, amount := range p.Pending {
			estimated += 3.4 * float64(amount) * float64(sizeByType[t])
			total += amount
		}
		if total == 0 {
			return nil, ErrNoPendingEntities
		}
		if estimated >= float64(usefulCells) {
			return nil, ErrFleetTooLarge
		}
	}

	g.state = StateSetup

	names, _ := g.GetPlayerNames()
	payload := map[string]any{}
	for _, n := range names {
		payload[n] = g.playerMetaPayload(n)
	}
	return g.addLobbyEvent(SubkindStateChanged, payload), nil
}

// PlaceEntity places one unit of the given entity type during SETUP. For ships and
// relays, r is the rotation (0..3); for planets, r is the orbit radius and coords is
// the orbit center. Planets must be placed before any other entity type.
func (g *Game) PlaceEntity(name string, t EntityType, coords Coordinate, r int) (*PlaceEvent, error) {
	if err := g.checkState(StateSetup); err != nil {
		return nil, err
	}
	p, err := g.getPlayer(name)
	if err != nil {
		return nil, err
	}

	if p.HasPendingPlanets() && t != Planet {
		return nil, ErrMustPlacePlanetsFirst
	}

	var e *Entity
	if t == Planet {
		e, err = p.PlacePlanet(g.nextEntityID, PlacePlanetParams{Center: coords, Radius: r}, g.rng)
	} else {
		e, err = p.PlaceShip(g.nextEntityID, t, PlaceShipParams{Anchor: coords, Rotation: r})
	}
	if err != nil {
		return nil, err
	}
	g.nextEntityID++

	event := &PlaceEvent{
		GameState:     g.state,
		PlayerName:    name,
		EntityID:      e.ID,
		EntityType:    e.Type,
		Anchor:        e.Anchor,
		Rotation:      e.Rotation,
		CellsOccupied: e.CellsOccupied,
	}
	if t == Planet {
		radius := e.OrbitRadius
		center := e.OrbitCenter
		event.Radius = &radius
		event.OrbitCells = e.OrbitCells
		event.OrbitCenter = &center
	}

	g.appendEvent(*event)
	return event, nil
}

// Autoplace fills every remaining pending slot of the named player with randomly
// drawn anchors/rotations (planets first, largest ships next), retrying on
// FieldError up to 50,000 attempts per entity. Only valid in SETUP. Returns the
// events for entities that were placed and a human-readable summary.
func (g *Game) Autoplace(name string) ([]*PlaceEvent, string, error) {
	p, err := g.getPlayer(name)
	if err != nil {
		return nil, "", err
	}
	if err := g.checkState(StateSetup); err != nil {
		return nil, "", err
	}

	order := autoplaceOrder(p.Pending)

	var placed []*PlaceEvent
	totalAttempts := 0

	for _, t := range order {
		amount := p.Pending[t]
		for i := 0; i < amount; i++ {
			attempts := 0
			for {
				if attempts >= autoplaceAttemptLimit {
					return placed, "autoplacement stopped: attempt limit reached for " + t.String(), nil
				}
				attempts++
				totalAttempts++

				y := g.rng.Intn(p.Field.Height)
				x := g.rng.Intn(p.Field.Width)

				var r int
				if t == Planet {
					maxDim := max(p.Field.Height, p.Field.Width)
					r = 3 + g.rng.Intn(maxDim/2-2)
				} else {
					r = g.rng.Intn(4)
				}

				event, err := g.PlaceEntity(name, t, Coordinate{Y: y, X: x}, r)
				if err == nil {
					placed = append(placed, event)
					break
				}
			}
		}
	}

	return placed, "autoplacement successful", nil
}

// autoplaceOrder returns entity types with a pending count: planets first, then
// ships from largest to smallest, and relays last.
func autoplaceOrder(pending map[EntityType]int) []EntityType {
	candidates := []EntityType{Planet, Cruiser, Destroyer, Frigate, Corvette, Relay}
	out := make([]EntityType, 0, len(candidates))
	for _, t := range candidates {
		if pending[t] > 0 {
			out = append(out, t)
		}
	}
	return out
}

// Start transitions SETUP to ACTIVE once every player has placed at least one
// entity and has no pending entities left.
func (g *Game) Start() (*LobbyEvent, error) {
	if err := g.checkState(StateSetup); err != nil {
		return nil, err
	}

	for _, p := range g.players {
		if len(p.Entities) == 0 {
			return nil, ErrNoEntitiesPlaced
		}
		if !p.HasPlacedEverything() {
			return nil, ErrPendingEntitiesLeft
		}
	}

	g.state = StateActive

	names, _ := g.GetPlayerNames()
	payload := map[string]any{}
	for _, n := range names {
		payload[n] = g.playerMetaPayload(n)
	}
	return g.addLobbyEvent(SubkindStateChanged, payload), nil
}

// WhosTurn returns the name of the player whose turn it currently is.
func (g *Game) WhosTurn() (string, error) {
	if len(g.order) == 0 {
		return "", ErrNoPlayers
	}
	return g.order[g.turn%len(g.order)], nil
}

// State returns the game's current lifecycle phase.
func (g *Game) State() GameState {
	return g.state
}

// WhosWinner returns the winner's name, or "" if the game is not OVER.
func (g *Game) WhosWinner() string {
	if g.state != StateOver {
		return ""
	}
	return g.winner
}

// Shoot resolves a shot by shooter at coords against the opposing player. It returns
// a pair of events: the shooter-side event first (relay reflection, planet motion on
// the shooter's own field), then the target-side event.
func (g *Game) Shoot(shooterName string, coords Coordinate) (*ShotEvent, *ShotEvent, error) {
	if err := g.checkState(StateActive); err != nil {
		return nil, nil, err
	}

	shooter, err := g.getPlayer(shooterName)
	if err != nil {
		return nil, nil, err
	}

	current, err := g.WhosTurn()
	if err != nil {
		return nil, nil, err
	}
	if current != shooterName {
		return nil, nil, ErrNotYourTurn
	}

	names, _ := g.GetPlayerNames()
	var targetName string
	for _, n := range names {
		if n != shooterName {
			targetName = n
		}
	}
	target, err := g.getPlayer(targetName)
	if err != nil {
		return nil, nil, err
	}

	result, err := target.Field.TakeShot(coords)
	if err != nil {
		return nil, nil, err
	}

	targetUpdates := map[Coordinate]CellStatus{}
	shooterUpdates := map[Coordinate]CellStatus{}

	switch result {
	case Miss:
		targetUpdates[coords] = CellStatusMiss

	case Hit:
		targetUpdates[coords] = CellStatusHit
		reverseOrder(g.order)

	case ReflectedByRelay:
		targetUpdates[coords] = CellStatusHit

		reflected, err := shooter.Field.TakeShot(coords)
		if err == nil {
			switch reflected {
			case Miss:
				shooterUpdates[coords] = CellStatusMiss
			case Hit:
				shooterUpdates[coords] = CellStatusHit
			case ReflectedByRelay:
				shooterUpdates[coords] = CellStatusRelay
				g.state = StateOver
				g.winner = "Black Hole"
			}
		}
	}

	g.turn++

	targetPlanetAnchors := []Coordinate{}
	shooterPlanetAnchors := []Coordinate{}

	for _, n := range names {
		p, _ := g.getPlayer(n)
		moved := p.MovePlanets(1)

		dest := &shooterUpdates
		anchors := &shooterPlanetAnchors
		if p == target {
			dest = &targetUpdates
			anchors = &targetPlanetAnchors
		}

		for coord, status := range moved {
			if status == CellStatusHit {
				(*dest)[coord] = status
			} else {
				*anchors = append(*anchors, coord)
			}
		}
	}

	if g.winner == "" {
		shooterDone := shooter.NonPlanetEntitiesDestroyed()
		targetDone := target.NonPlanetEntitiesDestroyed()
		switch {
		case shooterDone && targetDone:
			g.state = StateOver
			g.winner = "Draw"
		case shooterDone:
			g.state = StateOver
			g.winner = target.Name
		case targetDone:
			g.state = StateOver
			g.winner = shooter.Name
		}
	}

	shooterEvent := &ShotEvent{
		GameState:      g.state,
		Turn:           g.turn,
		Shooter:        "reflection and orbit resolution",
		Target:         shooter.Name,
		Coords:         coords,
		ShotResults:    shooterUpdates,
		PlanetsAnchors: shooterPlanetAnchors,
		DestroyedCells: shooter.DestroyedCells(),
	}
	targetEvent := &ShotEvent{
		GameState:      g.state,
		Turn:           g.turn,
		Shooter:        shooter.Name,
		Target:         target.Name,
		Coords:         coords,
		ShotResults:    targetUpdates,
		PlanetsAnchors: targetPlanetAnchors,
		DestroyedCells: target.DestroyedCells(),
	}

	g.appendEvent(*shooterEvent)
	g.appendEvent(*targetEvent)

	return shooterEvent, targetEvent, nil
}

func reverseOrder(order []string) {
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
}
