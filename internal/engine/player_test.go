package engine_test

import (
	"errors"
	"math/rand"
	"testing"

	. "github.com/callegarimattia/starfleet/internal/engine"
)

func TestColorize(t *testing.T) {
	t.Parallel()

	if got := Colorize("red"); got != "red" {
		t.Errorf("Colorize(red) = %q, want red", got)
	}
	if got := Colorize("ultraviolet"); got != "white" {
		t.Errorf("Colorize(unknown) = %q, want white", got)
	}
}

func TestPlayerPlaceShipDepletesInventory(t *testing.T) {
	t.Parallel()

	p := NewPlayer("Ahab", "blue")
	if err := p.Field.Generate(ShapeRectangle, 10, 10); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	p.Pending[Corvette] = 1

	if _, err := p.PlaceShip(1, Corvette, PlaceShipParams{Anchor: Coordinate{Y: 0, X: 0}}); err != nil {
		t.Fatalf("PlaceShip failed: %v", err)
	}
	if p.Pending[Corvette] != 0 {
		t.Errorf("Pending[Corvette] = %d, want 0", p.Pending[Corvette])
	}

	if _, err := p.PlaceShip(2, Corvette, PlaceShipParams{Anchor: Coordinate{Y: 5, X: 5}}); !errors.Is(err, ErrNoEntitiesAvailable) {
		t.Errorf("second PlaceShip error = %v, want %v", err, ErrNoEntitiesAvailable)
	}
}

func TestPlayerHasPendingPlanetsAndPlacedEverything(t *testing.T) {
	t.Parallel()

	p := NewPlayer("Ahab", "blue")
	if err := p.Field.Generate(ShapeRectangle, 20, 20); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	p.Pending[Planet] = 1
	p.Pending[Corvette] = 1

	if !p.HasPendingPlanets() {
		t.Error("HasPendingPlanets() = false, want true")
	}
	if p.HasPlacedEverything() {
		t.Error("HasPlacedEverything() = true, want false")
	}

	rng := rand.New(rand.NewSource(1))
	if _, err := p.PlacePlanet(1, PlacePlanetParams{Center: Coordinate{Y: 10, X: 10}, Radius: 3}, rng); err != nil {
		t.Fatalf("PlacePlanet failed: %v", err)
	}
	if p.HasPendingPlanets() {
		t.Error("HasPendingPlanets() after placing = true, want false")
	}

	if _, err := p.PlaceShip(2, Corvette, PlaceShipParams{Anchor: Coordinate{Y: 0, X: 0}}); err != nil {
		t.Fatalf("PlaceShip failed: %v", err)
	}
	if !p.HasPlacedEverything() {
		t.Error("HasPlacedEverything() = false, want true")
	}
}

func TestPlayerNonPlanetEntitiesDestroyed(t *testing.T) {
	t.Parallel()

	p := NewPlayer("Ahab", "blue")
	if err := p.Field.Generate(ShapeRectangle, 10, 10); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	p.Pending[Corvette] = 1

	if !p.NonPlanetEntitiesDestroyed() {
		t.Error("NonPlanetEntitiesDestroyed() on empty fleet = false, want true")
	}

	e, err := p.PlaceShip(1, Corvette, PlaceShipParams{Anchor: Coordinate{Y: 0, X: 0}})
	if err != nil {
		t.Fatalf("PlaceShip failed: %v", err)
	}
	if p.NonPlanetEntitiesDestroyed() {
		t.Error("NonPlanetEntitiesDestroyed() before any hit = true, want false")
	}

	if err := e.Damage(Coordinate{Y: 0, X: 0}); err != nil {
		t.Fatalf("Damage failed: %v", err)
	}
	if !p.NonPlanetEntitiesDestroyed() {
		t.Error("NonPlanetEntitiesDestroyed() after destroying only ship = false, want true")
	}
}

func TestPlayerMovePlanetsCollisionDestroysBoth(t *testing.T) {
	t.Parallel()

	p := NewPlayer("Ahab", "blue")
	if err := p.Field.Generate(ShapeRectangle, 21, 21); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	p.Pending[Planet] = 2

	rng := rand.New(rand.NewSource(1))

	a, err := p.PlacePlanet(1, PlacePlanetParams{Center: Coordinate{Y: 10, X: 10}, Radius: 3}, rng)
	if err != nil {
		t.Fatalf("PlacePlanet(a) failed: %v", err)
	}
	b, err := p.PlacePlanet(2, PlacePlanetParams{Center: Coordinate{Y: 10, X: 10}, Radius: 3}, rng)
	if err != nil {
		t.Fatalf("PlacePlanet(b) failed: %v", err)
	}

	// Force both planets onto the same cell to simulate an anchor collision.
	collideAt := a.Anchor
	for i, c := range b.OrbitCells {
		if c == collideAt {
			b.Position = i
			b.Anchor = c
			break
		}
	}
	if b.Anchor != collideAt {
		b.Anchor = collideAt
	}

	updates := p.MovePlanets(0)

	if a.Status != Destroyed || b.Status != Destroyed {
		t.Errorf("planet statuses = (%v, %v), want both Destroyed", a.Status, b.Status)
	}
	if status, ok := updates[collideAt]; !ok || status != CellStatusHit {
		t.Errorf("updates[%+v] = (%v, %v), want (CellStatusHit, true)", collideAt, status, ok)
	}
}
