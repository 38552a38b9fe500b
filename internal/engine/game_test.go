package engine_test

import (
	"errors"
	"testing"

	. "github.com/callegarimattia/starfleet/internal/engine"
)

func mustReadyGame(t *testing.T) *Game {
	t.Helper()

	g := NewGame("match-1", 42)
	if _, err := g.SetPlayer("Alice", "blue"); err != nil {
		t.Fatalf("SetPlayer(Alice) failed: %v", err)
	}
	if _, err := g.SetPlayer("Bob", "red"); err != nil {
		t.Fatalf("SetPlayer(Bob) failed: %v", err)
	}
	for _, name := range []string{"Alice", "Bob"} {
		if _, err := g.ChangePlayerField(name, ShapeRectangle, 10, 10); err != nil {
			t.Fatalf("ChangePlayerField(%s) failed: %v", name, err)
		}
		if _, err := g.ChangeEntityList(name, map[EntityType]int{Corvette: 2}); err != nil {
			t.Fatalf("ChangeEntityList(%s) failed: %v", name, err)
		}
	}
	if _, err := g.Ready(); err != nil {
		t.Fatalf("Ready() failed: %v", err)
	}
	return g
}

func mustStartedGame(t *testing.T) *Game {
	t.Helper()

	g := mustReadyGame(t)
	for _, name := range []string{"Alice", "Bob"} {
		if _, _, err := g.Autoplace(name); err != nil {
			t.Fatalf("Autoplace(%s) failed: %v", name, err)
		}
	}
	if _, err := g.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return g
}

func TestGameSetPlayerLimitsAndDuplicates(t *testing.T) {
	t.Parallel()

	g := NewGame("g", 1)
	if _, err := g.SetPlayer("Alice", "blue"); err != nil {
		t.Fatalf("first SetPlayer failed: %v", err)
	}
	if _, err := g.SetPlayer("Alice", "red"); !errors.Is(err, ErrDuplicatePlayerName) {
		t.Errorf("duplicate name error = %v, want %v", err, ErrDuplicatePlayerName)
	}
	if _, err := g.SetPlayer("Bob", "red"); err != nil {
		t.Fatalf("second SetPlayer failed: %v", err)
	}
	if _, err := g.SetPlayer("Carol", "green"); !errors.Is(err, ErrTooManyPlayers) {
		t.Errorf("third player error = %v, want %v", err, ErrTooManyPlayers)
	}
}

func TestGameDelPlayerReordersTurns(t *testing.T) {
	t.Parallel()

	g := NewGame("g", 1)
	if _, err := g.SetPlayer("Alice", "blue"); err != nil {
		t.Fatalf("SetPlayer(Alice) failed: %v", err)
	}
	if _, err := g.SetPlayer("Bob", "red"); err != nil {
		t.Fatalf("SetPlayer(Bob) failed: %v", err)
	}
	if _, err := g.DelPlayer("Alice"); err != nil {
		t.Fatalf("DelPlayer(Alice) failed: %v", err)
	}
	names, err := g.GetPlayerNames()
	if err != nil {
		t.Fatalf("GetPlayerNames failed: %v", err)
	}
	if len(names) != 1 || names[0] != "Bob" {
		t.Errorf("remaining players = %v, want [Bob]", names)
	}
}

func TestGameReadyRequiresTwoPlayersAndFleetThatFits(t *testing.T) {
	t.Parallel()

	g := NewGame("g", 1)
	if _, err := g.SetPlayer("Alice", "blue"); err != nil {
		t.Fatalf("SetPlayer failed: %v", err)
	}
	if _, err := g.Ready(); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Errorf("Ready() with one player error = %v, want %v", err, ErrNotEnoughPlayers)
	}

	if _, err := g.SetPlayer("Bob", "red"); err != nil {
		t.Fatalf("SetPlayer failed: %v", err)
	}
	if _, err := g.Ready(); !errors.Is(err, ErrEmptyField) {
		t.Errorf("Ready() with no fields error = %v, want %v", err, ErrEmptyField)
	}

	for _, name := range []string{"Alice", "Bob"} {
		if _, err := g.ChangePlayerField(name, ShapeRectangle, 3, 3); err != nil {
			t.Fatalf("ChangePlayerField(%s) failed: %v", name, err)
		}
		if _, err := g.ChangeEntityList(name, map[EntityType]int{Cruiser: 5}); err != nil {
			t.Fatalf("ChangeEntityList(%s) failed: %v", name, err)
		}
	}
	if _, err := g.Ready(); !errors.Is(err, ErrFleetTooLarge) {
		t.Errorf("Ready() with an oversized fleet error = %v, want %v", err, ErrFleetTooLarge)
	}
}

func TestGamePlaceEntityRequiresPlanetsFirst(t *testing.T) {
	t.Parallel()

	g := NewGame("g", 7)
	if _, err := g.SetPlayer("Alice", "blue"); err != nil {
		t.Fatalf("SetPlayer(Alice) failed: %v", err)
	}
	if _, err := g.SetPlayer("Bob", "red"); err != nil {
		t.Fatalf("SetPlayer(Bob) failed: %v", err)
	}
	for _, name := range []string{"Alice", "Bob"} {
		if _, err := g.ChangePlayerField(name, ShapeRectangle, 21, 21); err != nil {
			t.Fatalf("ChangePlayerField(%s) failed: %v", name, err)
		}
		if _, err := g.ChangeEntityList(name, map[EntityType]int{Corvette: 1, Planet: 1}); err != nil {
			t.Fatalf("ChangeEntityList(%s) failed: %v", name, err)
		}
	}
	if _, err := g.Ready(); err != nil {
		t.Fatalf("Ready() failed: %v", err)
	}

	if _, err := g.PlaceEntity("Alice", Corvette, Coordinate{Y: 0, X: 0}, 0); !errors.Is(err, ErrMustPlacePlanetsFirst) {
		t.Errorf("placing a ship before the pending planet error = %v, want %v", err, ErrMustPlacePlanetsFirst)
	}

	if _, err := g.PlaceEntity("Alice", Planet, Coordinate{Y: 5, X: 5}, 2); err != nil {
		t.Fatalf("PlaceEntity(planet) failed: %v", err)
	}
	if _, err := g.PlaceEntity("Alice", Corvette, Coordinate{Y: 0, X: 0}, 0); err != nil {
		t.Errorf("placing a ship after the planet failed: %v", err)
	}
}

func TestGameStartRequiresEveryPendingEntityPlaced(t *testing.T) {
	t.Parallel()

	g := mustReadyGame(t)
	if _, err := g.Start(); !errors.Is(err, ErrNoEntitiesPlaced) {
		t.Errorf("Start() before placing anything error = %v, want %v", err, ErrNoEntitiesPlaced)
	}

	if _, err := g.PlaceEntity("Alice", Corvette, Coordinate{Y: 0, X: 0}, 0); err != nil {
		t.Fatalf("PlaceEntity failed: %v", err)
	}
	if _, err := g.PlaceEntity("Bob", Corvette, Coordinate{Y: 0, X: 0}, 0); err != nil {
		t.Fatalf("PlaceEntity failed: %v", err)
	}
	if _, err := g.Start(); !errors.Is(err, ErrPendingEntitiesLeft) {
		t.Errorf("Start() with pending entities left error = %v, want %v", err, ErrPendingEntitiesLeft)
	}
}

func TestGameAutoplacePlacesEveryPendingEntity(t *testing.T) {
	t.Parallel()

	g := mustReadyGame(t)

	events, summary, err := g.Autoplace("Alice")
	if err != nil {
		t.Fatalf("Autoplace failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("Autoplace placed %d entities, want 2", len(events))
	}
	if summary != "autoplacement successful" {
		t.Errorf("summary = %q, want %q", summary, "autoplacement successful")
	}
}

func TestGameShootOutOfTurnRejected(t *testing.T) {
	t.Parallel()

	g := mustStartedGame(t)

	turn, err := g.WhosTurn()
	if err != nil {
		t.Fatalf("WhosTurn failed: %v", err)
	}
	other := "Bob"
	if turn == "Bob" {
		other = "Alice"
	}

	if _, _, err := g.Shoot(other, Coordinate{Y: 0, X: 0}); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("Shoot out of turn error = %v, want %v", err, ErrNotYourTurn)
	}
}

func TestGameShootAdvancesTurnAndEmitsEvents(t *testing.T) {
	t.Parallel()

	// Built by hand rather than via Autoplace so the targeted cell is
	// guaranteed to be a miss and the turn-order assertion is deterministic.
	g := NewGame("g", 1)
	if _, err := g.SetPlayer("Alice", "blue"); err != nil {
		t.Fatalf("SetPlayer(Alice) failed: %v", err)
	}
	if _, err := g.SetPlayer("Bob", "red"); err != nil {
		t.Fatalf("SetPlayer(Bob) failed: %v", err)
	}
	for _, name := range []string{"Alice", "Bob"} {
		if _, err := g.ChangePlayerField(name, ShapeRectangle, 10, 10); err != nil {
			t.Fatalf("ChangePlayerField(%s) failed: %v", name, err)
		}
		if _, err := g.ChangeEntityList(name, map[EntityType]int{Corvette: 1}); err != nil {
			t.Fatalf("ChangeEntityList(%s) failed: %v", name, err)
		}
	}
	if _, err := g.Ready(); err != nil {
		t.Fatalf("Ready() failed: %v", err)
	}
	for _, name := range []string{"Alice", "Bob"} {
		if _, err := g.PlaceEntity(name, Corvette, Coordinate{Y: 0, X: 0}, 0); err != nil {
			t.Fatalf("PlaceEntity(%s) failed: %v", name, err)
		}
	}
	if _, err := g.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	turn, err := g.WhosTurn()
	if err != nil {
		t.Fatalf("WhosTurn failed: %v", err)
	}

	var target string
	for _, n := range mustNames(t, g) {
		if n != turn {
			target = n
		}
	}

	shooterEvent, targetEvent, err := g.Shoot(turn, Coordinate{Y: 9, X: 9})
	if err != nil {
		t.Fatalf("Shoot failed: %v", err)
	}
	if shooterEvent.Target != turn {
		t.Errorf("shooterEvent.Target = %q, want %q", shooterEvent.Target, turn)
	}
	if targetEvent.Shooter != turn || targetEvent.Target != target {
		t.Errorf("targetEvent = (%q -> %q), want (%q -> %q)", targetEvent.Shooter, targetEvent.Target, turn, target)
	}
	if status := targetEvent.ShotResults[Coordinate{Y: 9, X: 9}]; status != CellStatusMiss {
		t.Fatalf("shot at (9,9) resolved to %v, want CellStatusMiss; turn-order assertion below depends on a miss", status)
	}

	nextTurn, err := g.WhosTurn()
	if err != nil {
		t.Fatalf("WhosTurn failed: %v", err)
	}
	if nextTurn != target {
		t.Errorf("turn after a miss = %q, want %q", nextTurn, target)
	}
}

func mustNames(t *testing.T, g *Game) []string {
	t.Helper()
	names, err := g.GetPlayerNames()
	if err != nil {
		t.Fatalf("GetPlayerNames failed: %v", err)
	}
	return names
}

func TestGameShootWrongStateRejected(t *testing.T) {
	t.Parallel()

	g := mustReadyGame(t)
	if _, _, err := g.Shoot("Alice", Coordinate{Y: 0, X: 0}); !errors.Is(err, ErrWrongState) {
		t.Errorf("Shoot during SETUP error = %v, want %v", err, ErrWrongState)
	}
}

// TestGameShootRelayDoubleReflectionEndsInBlackHole covers scenario S4: a relay at the
// same coordinate on both fields reflects a shot back and forth, and the second
// reflection ends the match outright regardless of remaining fleet state.
func TestGameShootRelayDoubleReflectionEndsInBlackHole(t *testing.T) {
	t.Parallel()

	g := NewGame("g", 1)
	if _, err := g.SetPlayer("Alice", "blue"); err != nil {
		t.Fatalf("SetPlayer(Alice) failed: %v", err)
	}
	if _, err := g.SetPlayer("Bob", "red"); err != nil {
		t.Fatalf("SetPlayer(Bob) failed: %v", err)
	}
	for _, name := range []string{"Alice", "Bob"} {
		if _, err := g.ChangePlayerField(name, ShapeRectangle, 10, 10); err != nil {
			t.Fatalf("ChangePlayerField(%s) failed: %v", name, err)
		}
		if _, err := g.ChangeEntityList(name, map[EntityType]int{Relay: 1}); err != nil {
			t.Fatalf("ChangeEntityList(%s) failed: %v", name, err)
		}
	}
	if _, err := g.Ready(); err != nil {
		t.Fatalf("Ready failed: %v", err)
	}
	for _, name := range []string{"Alice", "Bob"} {
		if _, err := g.PlaceEntity(name, Relay, Coordinate{Y: 0, X: 0}, 0); err != nil {
			t.Fatalf("PlaceEntity(%s) failed: %v", name, err)
		}
	}
	if _, err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	turn, err := g.WhosTurn()
	if err != nil {
		t.Fatalf("WhosTurn failed: %v", err)
	}

	if _, _, err := g.Shoot(turn, Coordinate{Y: 0, X: 0}); err != nil {
		t.Fatalf("Shoot failed: %v", err)
	}

	if got := g.WhosWinner(); got != "Black Hole" {
		t.Errorf("WhosWinner() = %q, want %q", got, "Black Hole")
	}
	if got := g.State(); got != StateOver {
		t.Errorf("State() = %v, want %v", got, StateOver)
	}
}

// TestGameShootDestroysFleetAndDeclaresWinner drives a single-ship fleet to
// destruction through Shoot and confirms the shooter (whose own ship survives) is
// declared the winner.
func TestGameShootDestroysFleetAndDeclaresWinner(t *testing.T) {
	t.Parallel()

	g := NewGame("g", 1)
	if _, err := g.SetPlayer("Alice", "blue"); err != nil {
		t.Fatalf("SetPlayer(Alice) failed: %v", err)
	}
	if _, err := g.SetPlayer("Bob", "red"); err != nil {
		t.Fatalf("SetPlayer(Bob) failed: %v", err)
	}
	for _, name := range []string{"Alice", "Bob"} {
		if _, err := g.ChangePlayerField(name, ShapeRectangle, 10, 10); err != nil {
			t.Fatalf("ChangePlayerField(%s) failed: %v", name, err)
		}
		if _, err := g.ChangeEntityList(name, map[EntityType]int{Corvette: 1}); err != nil {
			t.Fatalf("ChangeEntityList(%s) failed: %v", name, err)
		}
	}
	if _, err := g.Ready(); err != nil {
		t.Fatalf("Ready failed: %v", err)
	}
	for _, name := range []string{"Alice", "Bob"} {
		if _, err := g.PlaceEntity(name, Corvette, Coordinate{Y: 0, X: 0}, 0); err != nil {
			t.Fatalf("PlaceEntity(%s) failed: %v", name, err)
		}
	}
	if _, err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	shooter, err := g.WhosTurn()
	if err != nil {
		t.Fatalf("WhosTurn failed: %v", err)
	}

	shooterEvent, targetEvent, err := g.Shoot(shooter, Coordinate{Y: 0, X: 0})
	if err != nil {
		t.Fatalf("Shoot failed: %v", err)
	}
	if status := targetEvent.ShotResults[Coordinate{Y: 0, X: 0}]; status != CellStatusHit {
		t.Fatalf("shot at (0,0) resolved to %v, want CellStatusHit", status)
	}
	if len(shooterEvent.ShotResults) != 0 {
		t.Errorf("shooterEvent.ShotResults = %v, want empty (no reflection on a plain hit)", shooterEvent.ShotResults)
	}

	if got := g.WhosWinner(); got != shooter {
		t.Errorf("WhosWinner() = %q, want %q", got, shooter)
	}
	if got := g.State(); got != StateOver {
		t.Errorf("State() = %v, want %v", got, StateOver)
	}
}

// TestGameShootDrawWhenShooterHasOnlyPlanets covers the vacuous-destruction path: a
// shooter with no non-planet entities is trivially "destroyed", so sinking the
// target's sole ship ends the match in a Draw rather than a win.
func TestGameShootDrawWhenShooterHasOnlyPlanets(t *testing.T) {
	t.Parallel()

	g := NewGame("g", 1)
	if _, err := g.SetPlayer("Alice", "blue"); err != nil {
		t.Fatalf("SetPlayer(Alice) failed: %v", err)
	}
	if _, err := g.SetPlayer("Bob", "red"); err != nil {
		t.Fatalf("SetPlayer(Bob) failed: %v", err)
	}
	for _, name := range []string{"Alice", "Bob"} {
		if _, err := g.ChangePlayerField(name, ShapeRectangle, 10, 10); err != nil {
			t.Fatalf("ChangePlayerField(%s) failed: %v", name, err)
		}
	}
	if _, err := g.ChangeEntityList("Alice", map[EntityType]int{Planet: 1}); err != nil {
		t.Fatalf("ChangeEntityList(Alice) failed: %v", err)
	}
	if _, err := g.ChangeEntityList("Bob", map[EntityType]int{Corvette: 1}); err != nil {
		t.Fatalf("ChangeEntityList(Bob) failed: %v", err)
	}
	if _, err := g.Ready(); err != nil {
		t.Fatalf("Ready failed: %v", err)
	}
	if _, err := g.PlaceEntity("Alice", Planet, Coordinate{Y: 5, X: 5}, 0); err != nil {
		t.Fatalf("PlaceEntity(Alice, Planet) failed: %v", err)
	}
	if _, err := g.PlaceEntity("Bob", Corvette, Coordinate{Y: 0, X: 0}, 0); err != nil {
		t.Fatalf("PlaceEntity(Bob, Corvette) failed: %v", err)
	}
	if _, err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	turn, err := g.WhosTurn()
	if err != nil {
		t.Fatalf("WhosTurn failed: %v", err)
	}
	if turn != "Alice" {
		t.Fatalf("first turn = %q, want %q (test assumes Alice shoots first)", turn, "Alice")
	}

	if _, _, err := g.Shoot("Alice", Coordinate{Y: 0, X: 0}); err != nil {
		t.Fatalf("Shoot failed: %v", err)
	}

	if got := g.WhosWinner(); got != "Draw" {
		t.Errorf("WhosWinner() = %q, want %q", got, "Draw")
	}
	if got := g.State(); got != StateOver {
		t.Errorf("State() = %v, want %v", got, StateOver)
	}
}
