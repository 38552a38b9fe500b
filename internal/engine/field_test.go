package engine_test

import (
	"errors"
	"math/rand"
	"testing"

	. "github.com/callegarimattia/starfleet/internal/engine"
)

func TestFieldGenerateRectangle(t *testing.T) {
	t.Parallel()

	f := NewField()
	if err := f.Generate(ShapeRectangle, 5, 7); err != nil {
		t.Fatalf("Generate(rectangle) failed: %v", err)
	}
	if f.Height != 5 || f.Width != 7 {
		t.Errorf("dimensions = (%d, %d), want (5, 7)", f.Height, f.Width)
	}
	if got := len(f.UsefulCells()); got != 35 {
		t.Errorf("UsefulCells count = %d, want 35", got)
	}
}

func TestFieldGenerateRectangleInvalidDimensions(t *testing.T) {
	t.Parallel()

	f := NewField()
	if err := f.Generate(ShapeRectangle, 0, 5); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Generate(0, 5) error = %v, want %v", err, ErrInvalidDimensions)
	}
	if err := f.Generate(ShapeRectangle); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Generate() with no params error = %v, want %v", err, ErrInvalidDimensions)
	}
}

func TestFieldGenerateCircleVoidsCorners(t *testing.T) {
	t.Parallel()

	f := NewField()
	if err := f.Generate(ShapeCircle, 4); err != nil {
		t.Fatalf("Generate(circle) failed: %v", err)
	}

	corner, err := f.GetCell(Coordinate{Y: 0, X: 0})
	if err != nil {
		t.Fatalf("GetCell(corner) failed: %v", err)
	}
	if !corner.IsVoid {
		t.Error("corner of a circular field should be void")
	}

	center, err := f.GetCell(Coordinate{Y: 4, X: 4})
	if err != nil {
		t.Fatalf("GetCell(center) failed: %v", err)
	}
	if center.IsVoid {
		t.Error("center of a circular field should not be void")
	}
}

func TestFieldGenerateUnsupportedShape(t *testing.T) {
	t.Parallel()

	f := NewField()
	if err := f.Generate(Shape("trapezoid"), 3); !errors.Is(err, ErrUnsupportedShape) {
		t.Errorf("Generate(trapezoid) error = %v, want %v", err, ErrUnsupportedShape)
	}
}

func TestFieldGetCellEmptyAndMissing(t *testing.T) {
	t.Parallel()

	f := NewField()
	if _, err := f.GetCell(Coordinate{}); !errors.Is(err, ErrFieldEmpty) {
		t.Errorf("GetCell on empty field error = %v, want %v", err, ErrFieldEmpty)
	}

	if err := f.Generate(ShapeRectangle, 3, 3); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := f.GetCell(Coordinate{Y: 99, X: 99}); !errors.Is(err, ErrMissingCell) {
		t.Errorf("GetCell(out of range) error = %v, want %v", err, ErrMissingCell)
	}
}

func TestFieldOccupyCellsRejectsOverlapAndAdjacency(t *testing.T) {
	t.Parallel()

	f := NewField()
	if err := f.Generate(ShapeRectangle, 10, 10); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	first := NewShipLike(1, Destroyer)
	if err := f.OccupyCells(first, Coordinate{Y: 0, X: 0}, 0); err != nil {
		t.Fatalf("first placement failed: %v", err)
	}

	// The neighbour check runs before the occupancy check, so a Corvette dropped onto
	// the Destroyer's middle cell is reported as touching its other cells.
	second := NewShipLike(2, Corvette)
	if err := f.OccupyCells(second, Coordinate{Y: 0, X: 1}, 0); !errors.Is(err, ErrTouchesOther) {
		t.Errorf("overlapping placement error = %v, want %v", err, ErrTouchesOther)
	}

	third := NewShipLike(3, Corvette)
	if err := f.OccupyCells(third, Coordinate{Y: 1, X: 1}, 0); !errors.Is(err, ErrTouchesOther) {
		t.Errorf("adjacent placement error = %v, want %v", err, ErrTouchesOther)
	}

	fourth := NewShipLike(4, Corvette)
	if err := f.OccupyCells(fourth, Coordinate{Y: 5, X: 5}, 0); err != nil {
		t.Errorf("far-away placement failed: %v", err)
	}
}

func TestFieldOccupyCellsRejectsOutOfBoundsAndVoid(t *testing.T) {
	t.Parallel()

	f := NewField()
	if err := f.Generate(ShapeCircle, 4); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	ship := NewShipLike(1, Destroyer)
	if err := f.OccupyCells(ship, Coordinate{Y: 0, X: 0}, 0); err == nil {
		t.Error("expected placement through the voided corner to fail")
	}

	outOfBounds := NewShipLike(2, Corvette)
	if err := f.OccupyCells(outOfBounds, Coordinate{Y: 99, X: 99}, 0); !errors.Is(err, ErrMissingCell) {
		t.Errorf("out-of-bounds placement error = %v, want %v", err, ErrMissingCell)
	}
}

func TestFieldTakeShotMissHitAndAlreadyShot(t *testing.T) {
	t.Parallel()

	f := NewField()
	if err := f.Generate(ShapeRectangle, 5, 5); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	ship := NewShipLike(1, Corvette)
	if err := f.OccupyCells(ship, Coordinate{Y: 2, X: 2}, 0); err != nil {
		t.Fatalf("placement failed: %v", err)
	}

	miss, err := f.TakeShot(Coordinate{Y: 0, X: 0})
	if err != nil || miss != Miss {
		t.Errorf("shot on empty cell = (%v, %v), want (Miss, nil)", miss, err)
	}

	hit, err := f.TakeShot(Coordinate{Y: 2, X: 2})
	if err != nil || hit != Hit {
		t.Errorf("shot on ship = (%v, %v), want (Hit, nil)", hit, err)
	}
	if ship.Status != Destroyed {
		t.Errorf("one-cell ship status after hit = %v, want %v", ship.Status, Destroyed)
	}

	if _, err := f.TakeShot(Coordinate{Y: 2, X: 2}); !errors.Is(err, ErrNotATarget) {
		t.Errorf("re-shooting same cell error = %v, want %v", err, ErrNotATarget)
	}
}

func TestFieldTakeShotRelayReflects(t *testing.T) {
	t.Parallel()

	f := NewField()
	if err := f.Generate(ShapeRectangle, 5, 5); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	relay := NewShipLike(1, Relay)
	if err := f.OccupyCells(relay, Coordinate{Y: 3, X: 3}, 0); err != nil {
		t.Fatalf("placement failed: %v", err)
	}

	result, err := f.TakeShot(Coordinate{Y: 3, X: 3})
	if err != nil {
		t.Fatalf("shot on relay failed: %v", err)
	}
	if result != ReflectedByRelay {
		t.Errorf("shot on relay = %v, want %v", result, ReflectedByRelay)
	}
}

func TestFieldTakeShotOnPlanetOnlyHitsAnchor(t *testing.T) {
	t.Parallel()

	f := NewField()
	if err := f.Generate(ShapeRectangle, 21, 21); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	planet := NewPlanet(1, 3, Coordinate{Y: 10, X: 10}, 1, rand.New(rand.NewSource(1)))
	planet.Position = 0
	planet.Anchor = planet.OrbitCells[0]
	if err := f.SetupPlanet(planet); err != nil {
		t.Fatalf("SetupPlanet failed: %v", err)
	}

	for _, c := range planet.CellsOccupied {
		result, err := f.TakeShot(c)
		if err != nil {
			t.Fatalf("shot on orbit cell %+v failed: %v", c, err)
		}
		if c == planet.Anchor {
			if result != Hit {
				t.Errorf("shot on planet anchor = %v, want Hit", result)
			}
		} else if result != Miss {
			t.Errorf("shot on non-anchor orbit cell = %v, want Miss", result)
		}
	}
}
