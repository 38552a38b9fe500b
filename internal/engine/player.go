package engine

import "math/rand"

// Palette is the fixed set of colors a Player may be tagged with. Anything else
// silently becomes white.
var Palette = map[string]bool{
	"blue": true, "green": true, "orange": true, "pink": true,
	"purple": true, "red": true, "yellow": true, "white": true,
}

// Colorize normalizes a color name against Palette, defaulting to white.
func Colorize(color string) string {
	if Palette[color] {
		return color
	}
	return "white"
}

// Player owns a field, a pending-entity inventory, and the entities it has placed.
type Player struct {
	Name    string
	Color   string
	Field   *Field
	Pending map[EntityType]int
	Entities map[int]*Entity
}

// NewPlayer creates a player with an empty field and zeroed inventory.
func NewPlayer(name, color string) *Player {
	return &Player{
		Name:     name,
		Color:    Colorize(color),
		Field:    NewField(),
		Pending:  map[EntityType]int{},
		Entities: map[int]*Entity{},
	}
}

// PlaceShipParams carries the placement arguments for a ship or relay.
type PlaceShipParams struct {
	Anchor   Coordinate
	Rotation int
}

// PlacePlanetParams carries the placement arguments for a planet.
type PlacePlanetParams struct {
	Center Coordinate
	Radius int
}

// PlaceShip places a ship or relay entity of the given type, using nextID as its
// identifier. It fails if no units of that type remain pending.
func (p *Player) PlaceShip(nextID int, t EntityType, params PlaceShipParams) (*Entity, error) {
	if p.Pending[t] <= 0 {
		return nil, ErrNoEntitiesAvailable
	}

	e := NewShipLike(nextID, t)
	if err := p.Field.OccupyCells(e, params.Anchor, params.Rotation); err != nil {
		return nil, err
	}

	p.Pending[t]--
	p.Entities[e.ID] = e
	return e, nil
}

// PlacePlanet places a planet entity, using nextID as its identifier and rng to seed
// its rotation direction and initial orbit position.
func (p *Player) PlacePlanet(nextID int, params PlacePlanetParams, rng *rand.Rand) (*Entity, error) {
	if p.Pending[Planet] <= 0 {
		return nil, ErrNoEntitiesAvailable
	}

	e := NewPlanet(nextID, params.Radius, params.Center, 0, rng)
	if err := p.Field.SetupPlanet(e); err != nil {
		return nil, err
	}

	p.Pending[Planet]--
	p.Entities[e.ID] = e
	return e, nil
}

// HasPendingPlanets reports whether this player still owes planet placements.
func (p *Player) HasPendingPlanets() bool {
	return p.Pending[Planet] > 0
}

// HasPlacedEverything reports whether every pending count has reached zero.
func (p *Player) HasPlacedEverything() bool {
	for _, count := range p.Pending {
		if count > 0 {
			return false
		}
	}
	return true
}

// NonPlanetEntitiesDestroyed reports whether every non-planet entity this player has
// placed is destroyed. A player with no non-planet entities trivially satisfies this.
func (p *Player) NonPlanetEntitiesDestroyed() bool {
	for _, e := range p.Entities {
		if e.Type == Planet {
			continue
		}
		if e.Status != Destroyed {
			return false
		}
	}
	return true
}

// DestroyedCells returns the coordinates of every destroyed non-planet entity this
// player owns.
func (p *Player) DestroyedCells() []Coordinate {
	var cells []Coordinate
	for _, e := range p.Entities {
		if e.Type == Planet || e.Status != Destroyed {
			continue
		}
		cells = append(cells, e.CellsOccupied...)
	}
	return cells
}

// MovePlanets advances every non-destroyed planet this player owns by step and
// resolves collisions: two alive planets sharing a non-empty anchor both become
// destroyed and that cell is reported as Hit. Returns a map from coordinate to the
// CellStatus a renderer should show there.
func (p *Player) MovePlanets(step int) map[Coordinate]CellStatus {
	updates := make(map[Coordinate]CellStatus)

	var planets []*Entity
	for _, e := range p.Entities {
		if e.Type == Planet && e.Status != Destroyed {
			planets = append(planets, e)
		}
	}

	for _, planet := range planets {
		planet.Advance(step)
		updates[planet.Anchor] = CellStatusPlanet
	}

	for i, a := range planets {
		for j, b := range planets {
			if i == j {
				continue
			}
			if a.Status == Destroyed || b.Status == Destroyed {
				continue
			}
			if a.Anchor == b.Anchor {
				collidedAt := a.Anchor
				a.Destroy()
				b.Destroy()
				updates[collidedAt] = CellStatusHit
			}
		}
	}

	return updates
}
