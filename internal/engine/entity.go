package engine

import "math/rand"

// EntityType identifies which kind of placeable object an Entity represents, and for
// ships doubles as its size (number of cells occupied).
type EntityType int

// Entity type constants. Corvette..Cruiser double as ship sizes 1..4.
const (
	Corvette EntityType = iota + 1
	Frigate
	Destroyer
	Cruiser
	Relay
	Planet
)

// Size returns the number of cells a non-planet entity of this type occupies.
// Planets do not have a fixed size (they occupy their on-field orbit cells) and
// return 0.
func (t EntityType) Size() int {
	switch t {
	case Corvette:
		return 1
	case Frigate:
		return 2
	case Destroyer:
		return 3
	case Cruiser:
		return 4
	case Relay:
		return 1
	default:
		return 0
	}
}

// String names the entity type for logs and events.
func (t EntityType) String() string {
	switch t {
	case Corvette:
		return "Corvette"
	case Frigate:
		return "Frigate"
	case Destroyer:
		return "Destroyer"
	case Cruiser:
		return "Cruiser"
	case Relay:
		return "Relay"
	case Planet:
		return "Planet"
	default:
		return "Unidentified"
	}
}

// EntityStatus is the lifecycle state of a placed (or not-yet-placed) entity.
type EntityStatus int

// EntityStatus constants.
const (
	NotPlaced EntityStatus = iota
	FullHealth
	Damaged
	Destroyed
)

// String names the status for logs and events.
func (s EntityStatus) String() string {
	switch s {
	case NotPlaced:
		return "not-placed"
	case FullHealth:
		return "full-health"
	case Damaged:
		return "damaged"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// rotationDeltas maps a normalized rotation (0..3) to a (dy, dx) displacement.
// Screen coordinates: Y grows downward. 0=right, 1=down, 2=left, 3=up.
var rotationDeltas = [4]Coordinate{
	{Y: 0, X: 1},
	{Y: 1, X: 0},
	{Y: 0, X: -1},
	{Y: -1, X: 0},
}

// normalizeRotation reduces an arbitrary rotation to the 0..3 range, matching
// negative values onto their positive equivalent.
func normalizeRotation(r int) int {
	return ((r % 4) + 4) % 4
}

// Entity is a tagged variant covering ships, relays and planets. Only the fields
// relevant to its Type are meaningful; damage and placement policy are expressed as
// switches over Type rather than virtual dispatch.
type Entity struct {
	ID     int
	Type   EntityType
	Status EntityStatus

	Anchor        Coordinate
	Rotation      int
	CellsOccupied []Coordinate
	CellsDamaged  map[int]struct{} // index into CellsOccupied

	// Planet-only fields.
	OrbitRadius  int
	OrbitCenter  Coordinate
	OrbitCells   []Coordinate // full orbit, sorted by angle, including off-field cells
	Position     int          // index into OrbitCells
	RotationSign int          // +1 or -1
}

// NewShipLike creates a not-yet-placed Ship or Relay entity.
func NewShipLike(id int, t EntityType) *Entity {
	return &Entity{
		ID:           id,
		Type:         t,
		Status:       NotPlaced,
		CellsDamaged: make(map[int]struct{}),
	}
}

// NewPlanet creates a Planet entity with its orbit already computed and a random
// starting position on it, drawn from rng for reproducibility. rotationSign is +1
// (clockwise) or -1 (counterclockwise); if 0 is passed one is chosen at random.
func NewPlanet(id int, radius int, center Coordinate, rotationSign int, rng *rand.Rand) *Entity {
	if rotationSign == 0 {
		rotationSign = 1
		if rng.Intn(2) == 0 {
			rotationSign = -1
		}
	}

	e := &Entity{
		ID:           id,
		Type:         Planet,
		Status:       NotPlaced,
		CellsDamaged: make(map[int]struct{}),
		OrbitRadius:  radius,
		OrbitCenter:  center,
		RotationSign: rotationSign,
	}

	if radius == 0 {
		e.OrbitCells = []Coordinate{center}
	} else {
		e.OrbitCells = sortByPolarAngle(center, circleCoords(radius, center))
	}
	e.Position = rng.Intn(len(e.OrbitCells))
	e.Anchor = e.OrbitCells[e.Position]

	return e
}

// ReserveCoords returns the run of Size() consecutive cells from anchor along the
// normalized rotation direction, plus the normalized rotation. Not valid for planets;
// fails with ErrInvalidShipSize for any type whose Size() isn't in 1..4 (Planet, or an
// out-of-range EntityType that slipped past ChangeEntityList unvalidated).
func (e *Entity) ReserveCoords(anchor Coordinate, rotation int) ([]Coordinate, int, error) {
	rotation = normalizeRotation(rotation)
	delta := rotationDeltas[rotation]

	size := e.Type.Size()
	if size <= 0 || size > 4 {
		return nil, rotation, ErrInvalidShipSize
	}

	coords := make([]Coordinate, size)
	for i := range size {
		coords[i] = Coordinate{Y: anchor.Y + i*delta.Y, X: anchor.X + i*delta.X}
	}
	return coords, rotation, nil
}

// ApplyPlacement synchronizes entity state after the field accepts a placement.
func (e *Entity) ApplyPlacement(anchor Coordinate, cellsOccupied []Coordinate, rotation int) {
	e.Anchor = anchor
	e.CellsOccupied = cellsOccupied
	e.Rotation = rotation
	e.Status = FullHealth
}

// ApplyOrbitPlacement synchronizes a planet's state after the field accepts its orbit.
// Status is set to Damaged, not FullHealth, so that a direct hit on the anchor does
// not transition it further — planets never change status from hits.
func (e *Entity) ApplyOrbitPlacement(cellsOccupied []Coordinate) {
	e.CellsOccupied = cellsOccupied
	e.Status = Damaged
}

// Damage records a hit at coords, which must be one of the entity's occupied cells.
// Status becomes Destroyed once every cell has been damaged, Damaged otherwise.
// Planets never take status-changing damage; callers must not invoke Damage on one.
// Fails with ErrInvalidStatus if the entity isn't currently on the field
// (NotPlaced) or has already been fully destroyed.
func (e *Entity) Damage(coords Coordinate) error {
	if e.Status == NotPlaced || e.Status == Destroyed {
		return ErrInvalidStatus
	}

	index := -1
	for i, c := range e.CellsOccupied {
		if c == coords {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrDamageOutOfBounds
	}

	e.CellsDamaged[index] = struct{}{}

	if len(e.CellsDamaged) == e.Type.Size() {
		e.Status = Destroyed
	} else {
		e.Status = Damaged
	}
	return nil
}

// Advance moves a planet's position by delta steps along its orbit (direction already
// folded into RotationSign), wrapping modulo the orbit length, and updates Anchor.
func (e *Entity) Advance(delta int) {
	length := len(e.OrbitCells)
	if length == 0 {
		return
	}
	e.Position = ((e.Position+delta*e.RotationSign)%length + length) % length
	e.Anchor = e.OrbitCells[e.Position]
}

// Destroy marks a planet destroyed and clears its anchor, per the collision rule in
// Player.MovePlanets.
func (e *Entity) Destroy() {
	e.Status = Destroyed
	e.Anchor = Coordinate{}
}
