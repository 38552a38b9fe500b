package engine_test

import (
	"math/rand"
	"testing"

	. "github.com/callegarimattia/starfleet/internal/engine"
)

func freeSnapshot(height, width int) map[Coordinate]CellStatus {
	out := make(map[Coordinate]CellStatus, height*width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[Coordinate{Y: y, X: x}] = CellStatusFree
		}
	}
	return out
}

func TestRandomerShootsOnlyFreeCells(t *testing.T) {
	t.Parallel()

	r := NewRandomer("bot")
	r.Seed(freeSnapshot(3, 3))
	rng := rand.New(rand.NewSource(1))

	for range 9 {
		c, ok := r.Shoot(rng)
		if !ok {
			t.Fatal("Shoot() returned ok=false before the field was exhausted")
		}
		r.ShotResult(c, CellStatusMiss)
	}

	if _, ok := r.Shoot(rng); ok {
		t.Error("Shoot() on an exhausted field returned ok=true")
	}
}

func TestHunterSwitchesToCrossNeighboursAfterHit(t *testing.T) {
	t.Parallel()

	h := NewHunter("bot")
	h.Seed(freeSnapshot(10, 10))
	rng := rand.New(rand.NewSource(1))

	hitAt := Coordinate{Y: 5, X: 5}
	h.ShotResult(hitAt, CellStatusHit)

	next, ok := h.Shoot(rng)
	if !ok {
		t.Fatal("Shoot() after a hit returned ok=false")
	}

	dy := abs2(next.Y - hitAt.Y)
	dx := abs2(next.X - hitAt.X)
	if dy+dx != 1 {
		t.Errorf("shot after a hit = %+v, want an orthogonal neighbour of %+v", next, hitAt)
	}
}

func TestHunterFallsBackToRandomAfterDestruction(t *testing.T) {
	t.Parallel()

	h := NewHunter("bot")
	h.Seed(freeSnapshot(10, 10))
	rng := rand.New(rand.NewSource(1))

	hitAt := Coordinate{Y: 5, X: 5}
	h.ShotResult(hitAt, CellStatusHit)
	if _, ok := h.Shoot(rng); !ok {
		t.Fatal("Shoot() after a hit returned ok=false")
	}

	h.ValidateDestruction([]Coordinate{hitAt})

	// Every neighbour of the destroyed cell should now be recorded as a miss,
	// and none should remain in the hunt set.
	for _, n := range [4]Coordinate{{Y: 4, X: 5}, {Y: 6, X: 5}, {Y: 5, X: 4}, {Y: 5, X: 6}} {
		h.ShotResult(n, CellStatusMiss)
	}

	if _, ok := h.Shoot(rng); !ok {
		t.Fatal("Shoot() after exhausting the hunt set returned ok=false with free cells remaining")
	}
}

func abs2(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
