package engine

import "math/rand"

// Bot is a shot-coordinate generator operating only on a shadow view of the
// opponent's field. It never reaches into Game or Field internals: everything it
// knows is either seeded once at the start of a match or reported back to it after
// each of its shots, exactly as a client renderer would see it.
type Bot interface {
	// Shoot returns the coordinate the bot wants to shoot next. ok is false only
	// when the bot has no candidate cell left.
	Shoot(rng *rand.Rand) (coords Coordinate, ok bool)

	// ShotResult reports the outcome of a coordinate the bot shot (or one an
	// opponent's shot revealed, for the shadow field to stay in sync).
	ShotResult(coords Coordinate, result CellStatus)

	// ValidateDestruction marks the immediate neighbours of newly destroyed cells
	// as missed, since no ship can be adjacent to another.
	ValidateDestruction(destroyedCells []Coordinate)
}

// baseBot holds the state and neighbor-geometry shared by every Bot implementation.
type baseBot struct {
	Name          string
	opponentField map[Coordinate]CellStatus
	lastShot      Coordinate
	lastResult    CellStatus
	hasShot       bool
}

func newBaseBot(name string) baseBot {
	return baseBot{
		Name:          name,
		opponentField: make(map[Coordinate]CellStatus),
	}
}

// Seed bootstraps the shadow field from an initial snapshot (shape, dimensions and
// void cells) built by a renderer before play starts.
func (b *baseBot) Seed(cells map[Coordinate]CellStatus) {
	for c, status := range cells {
		b.opponentField[c] = status
	}
}

func (b *baseBot) getFreeCoords() []Coordinate {
	var out []Coordinate
	for c, status := range b.opponentField {
		if status == CellStatusFree {
			out = append(out, c)
		}
	}
	return out
}

var neighbourDeltas = [8]Coordinate{
	{Y: 1, X: -1}, {Y: -1, X: 0}, {Y: 1, X: 1},
	{Y: 0, X: -1}, {Y: 0, X: 1},
	{Y: -1, X: -1}, {Y: 1, X: 0}, {Y: -1, X: 1},
}

func (b *baseBot) getNeighbours(coords Coordinate) []Coordinate {
	var out []Coordinate
	for _, d := range neighbourDeltas {
		n := Coordinate{Y: coords.Y + d.Y, X: coords.X + d.X}
		if _, ok := b.opponentField[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

var crossNeighbourDeltas = [4]Coordinate{
	{Y: -1, X: 0},
	{Y: 0, X: -1}, {Y: 0, X: 1},
	{Y: 1, X: 0},
}

func (b *baseBot) getCrossNeighbours(coords Coordinate) []Coordinate {
	var out []Coordinate
	for _, d := range crossNeighbourDeltas {
		n := Coordinate{Y: coords.Y + d.Y, X: coords.X + d.X}
		if _, ok := b.opponentField[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

func (b *baseBot) shotResult(coords Coordinate, result CellStatus) {
	b.opponentField[coords] = result
	b.lastShot = coords
	b.lastResult = result
	b.hasShot = true
}

func pickRandom(rng *rand.Rand, coords []Coordinate) (Coordinate, bool) {
	if len(coords) == 0 {
		return Coordinate{}, false
	}
	return coords[rng.Intn(len(coords))], true
}

// Randomer shoots a uniformly random free cell every turn.
type Randomer struct {
	baseBot
}

// NewRandomer creates a Randomer bot. Call Seed before the first Shoot.
func NewRandomer(name string) *Randomer {
	return &Randomer{baseBot: newBaseBot(name)}
}

func (r *Randomer) Shoot(rng *rand.Rand) (Coordinate, bool) {
	return pickRandom(rng, r.getFreeCoords())
}

func (r *Randomer) ShotResult(coords Coordinate, result CellStatus) {
	r.shotResult(coords, result)
}

func (r *Randomer) ValidateDestruction(destroyedCells []Coordinate) {
	for _, c := range destroyedCells {
		for _, n := range r.getNeighbours(c) {
			r.opponentField[n] = CellStatusMiss
		}
	}
}

func (r *Randomer) String() string {
	return "RandomerBot-" + r.Name
}

// Hunter shoots randomly until it scores a hit, then restricts itself to the
// cross-neighbours of every outstanding hit until the ship it found is destroyed,
// at which point it falls back to shooting randomly again.
type Hunter struct {
	baseBot
	hunt map[Coordinate]struct{}
}

// NewHunter creates a Hunter bot. Call Seed before the first Shoot.
func NewHunter(name string) *Hunter {
	return &Hunter{
		baseBot: newBaseBot(name),
		hunt:    make(map[Coordinate]struct{}),
	}
}

func (h *Hunter) huntValidation() {
	free := h.getFreeCoords()
	allowed := make(map[Coordinate]struct{}, len(free))
	for _, c := range free {
		allowed[c] = struct{}{}
	}
	for c := range h.hunt {
		if _, ok := allowed[c]; !ok {
			delete(h.hunt, c)
		}
	}
}

func (h *Hunter) Shoot(rng *rand.Rand) (Coordinate, bool) {
	if h.hasShot && h.lastResult == CellStatusHit {
		for _, n := range h.getCrossNeighbours(h.lastShot) {
			h.hunt[n] = struct{}{}
		}
	}

	h.huntValidation()

	candidates := make([]Coordinate, 0, len(h.hunt))
	for c := range h.hunt {
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		candidates = h.getFreeCoords()
	}

	return pickRandom(rng, candidates)
}

func (h *Hunter) ShotResult(coords Coordinate, result CellStatus) {
	h.shotResult(coords, result)
}

func (h *Hunter) ValidateDestruction(destroyedCells []Coordinate) {
	for _, c := range destroyedCells {
		for _, n := range h.getNeighbours(c) {
			h.opponentField[n] = CellStatusMiss
			delete(h.hunt, n)
		}
	}
}

func (h *Hunter) String() string {
	return "HunterBot-" + h.Name
}
