package engine

// Shape names the silhouette a Field is rasterized into.
type Shape string

// Supported shapes.
const (
	ShapeRectangle Shape = "rectangle"
	ShapeCircle    Shape = "circle"
	ShapeTriangle  Shape = "triangle"
	ShapeRhombus   Shape = "rhombus"
	ShapePentagon  Shape = "pentagon"
	ShapeHexagon   Shape = "hexagon"
	ShapeHeptagon  Shape = "heptagon"
)

var ngonSides = map[Shape]int{
	ShapeTriangle: 3,
	ShapeRhombus:  4,
	ShapePentagon: 5,
	ShapeHexagon:  6,
	ShapeHeptagon: 7,
}

// Cell is the smallest field unit. Void cells are structural filler: present so every
// field is internally a rectangle even when its shape is circular or polygonal, never
// playable.
type Cell struct {
	Y, X       int
	IsVoid     bool
	WasShot    bool
	OccupiedBy *Entity
}

// Field is a shaped grid exclusively owned by one Player.
type Field struct {
	cells      map[Coordinate]*Cell
	Height     int
	Width      int
	Shape      Shape
}

// NewField constructs an empty Field with no cells. Call Generate to populate it.
func NewField() *Field {
	return &Field{cells: make(map[Coordinate]*Cell)}
}

// Generate (re)builds the field for the given shape and parameters, resetting all
// cell state. Rectangle takes (height, width); every other shape takes (radius,
// angleDegrees) and is embedded in the minimum bounding rectangle of its rasterized
// border, with every cell outside the border voided row by row.
func (f *Field) Generate(shape Shape, params ...int) error {
	switch shape {
	case ShapeRectangle:
		if len(params) < 2 {
			return ErrInvalidDimensions
		}
		return f.generateRectangle(params[0], params[1])

	case ShapeCircle:
		if len(params) < 1 {
			return ErrInvalidDimensions
		}
		return f.generateCircle(params[0])

	default:
		n, ok := ngonSides[shape]
		if !ok {
			return ErrUnsupportedShape
		}
		if len(params) < 1 {
			return ErrInvalidDimensions
		}
		angle := 0
		if len(params) > 1 {
			angle = params[1]
		}
		return f.generateNgon(shape, n, params[0], float64(angle))
	}
}

func (f *Field) reset(height, width int, shape Shape) {
	f.cells = make(map[Coordinate]*Cell, height*width)
	f.Height, f.Width, f.Shape = height, width, shape
	for y := range height {
		for x := range width {
			f.cells[Coordinate{Y: y, X: x}] = &Cell{Y: y, X: x}
		}
	}
}

func (f *Field) generateRectangle(height, width int) error {
	if height <= 0 || width <= 0 {
		return ErrInvalidDimensions
	}
	f.reset(height, width, ShapeRectangle)
	return nil
}

func (f *Field) generateCircle(radius int) error {
	if radius < 0 {
		return ErrInvalidDimensions
	}
	size := 2*radius + 1
	f.reset(size, size, ShapeCircle)
	border := circleCoords(radius, Coordinate{Y: radius, X: radius})
	f.voidOutside(border)
	return nil
}

func (f *Field) generateNgon(shape Shape, n, radius int, angle float64) error {
	if radius < 0 {
		return ErrInvalidDimensions
	}
	border := ngonCoords(n, radius, angle, Coordinate{})

	yMin, yMax, xMin, xMax := border[0].Y, border[0].Y, border[0].X, border[0].X
	for _, c := range border {
		yMin, yMax = min(yMin, c.Y), max(yMax, c.Y)
		xMin, xMax = min(xMin, c.X), max(xMax, c.X)
	}

	normalized := make([]Coordinate, len(border))
	for i, c := range border {
		normalized[i] = Coordinate{Y: c.Y - yMin, X: c.X - xMin}
	}

	f.reset(yMax-yMin+1, xMax-xMin+1, shape)
	f.voidOutside(normalized)
	return nil
}

// voidOutside marks every cell outside the given border coordinates as void, scanning
// each row from both sides inward until the border is reached.
func (f *Field) voidOutside(border []Coordinate) {
	onBorder := make(map[Coordinate]struct{}, len(border))
	for _, c := range border {
		onBorder[c] = struct{}{}
	}

	voided := make(map[Coordinate]struct{})
	for y := range f.Height {
		for x := range f.Width {
			if _, ok := onBorder[Coordinate{Y: y, X: x}]; ok {
				break
			}
			voided[Coordinate{Y: y, X: x}] = struct{}{}
		}
		for x := f.Width - 1; x >= 0; x-- {
			if _, ok := onBorder[Coordinate{Y: y, X: x}]; ok {
				break
			}
			voided[Coordinate{Y: y, X: x}] = struct{}{}
		}
	}

	for c := range voided {
		f.cells[c].IsVoid = true
	}
}

// IsEmpty reports whether the field holds no cells at all.
func (f *Field) IsEmpty() bool {
	return len(f.cells) == 0
}

// Snapshot renders every cell's current CellStatus, for building a view or seeding a
// bot's shadow field. Unlike TakeShot's outcome (which only ever reports what a
// single shot did), this reflects standing state: an un-shot ship cell is Entity, a
// shot one is Hit, a consumed relay is Relay, and so on.
func (f *Field) Snapshot() map[Coordinate]CellStatus {
	out := make(map[Coordinate]CellStatus, len(f.cells))
	for c, cell := range f.cells {
		out[c] = cellStatusOf(c, cell)
	}
	return out
}

func cellStatusOf(coords Coordinate, cell *Cell) CellStatus {
	if cell.IsVoid {
		return CellStatusVoid
	}
	occ := cell.OccupiedBy
	if occ == nil {
		if cell.WasShot {
			return CellStatusMiss
		}
		return CellStatusFree
	}
	switch occ.Type {
	case Planet:
		if !cell.WasShot {
			return CellStatusPlanet
		}
		if coords == occ.Anchor {
			return CellStatusHit
		}
		return CellStatusMiss
	case Relay:
		if cell.WasShot {
			return CellStatusRelay
		}
		return CellStatusEntity
	default:
		if cell.WasShot {
			return CellStatusHit
		}
		return CellStatusEntity
	}
}

// UsefulCells returns every non-void coordinate on the field.
func (f *Field) UsefulCells() []Coordinate {
	out := make([]Coordinate, 0, len(f.cells))
	for c, cell := range f.cells {
		if !cell.IsVoid {
			out = append(out, c)
		}
	}
	return out
}

// GetCell returns the cell at coords. It fails with ErrFieldEmpty when the field
// holds no cells and ErrMissingCell when coords are absent.
func (f *Field) GetCell(coords Coordinate) (*Cell, error) {
	if f.IsEmpty() {
		return nil, ErrFieldEmpty
	}
	cell, ok := f.cells[coords]
	if !ok {
		return nil, ErrMissingCell
	}
	return cell, nil
}

// Neighbours returns the eight-connected neighbors of the given coordinates that lie
// within the field and are not themselves part of the input set.
func (f *Field) Neighbours(coords []Coordinate) []Coordinate {
	in := make(map[Coordinate]struct{}, len(coords))
	for _, c := range coords {
		in[c] = struct{}{}
	}

	seen := make(map[Coordinate]struct{})
	for _, c := range coords {
		for _, d := range [8]Coordinate{
			{-1, -1}, {-1, 0}, {-1, 1},
			{0, -1}, {0, 1},
			{1, -1}, {1, 0}, {1, 1},
		} {
			n := Coordinate{Y: c.Y + d.Y, X: c.X + d.X}
			if _, inside := f.cells[n]; !inside {
				continue
			}
			if _, excluded := in[n]; excluded {
				continue
			}
			seen[n] = struct{}{}
		}
	}
	return coordSetToSlice(seen)
}

// OccupyCells places a non-planet entity at (anchor, rotation): reserves the cells,
// validates them, then commits — a failed placement never mutates the field.
func (f *Field) OccupyCells(e *Entity, anchor Coordinate, rotation int) error {
	reserved, rotation, err := e.ReserveCoords(anchor, rotation)
	if err != nil {
		return err
	}

	for _, c := range f.Neighbours(reserved) {
		cell, err := f.GetCell(c)
		if err != nil {
			return err
		}
		if cell.OccupiedBy != nil && cell.OccupiedBy.Type != Planet {
			return ErrTouchesOther
		}
	}

	cells := make([]*Cell, 0, len(reserved))
	for _, c := range reserved {
		cell, err := f.GetCell(c)
		if err != nil {
			return err
		}
		if cell.IsVoid {
			return ErrIntoVoid
		}
		if cell.OccupiedBy != nil {
			return ErrAlreadyOccupied
		}
		cells = append(cells, cell)
	}

	for _, c := range e.CellsOccupied {
		if cell, ok := f.cells[c]; ok {
			cell.OccupiedBy = nil
		}
	}
	for _, cell := range cells {
		cell.OccupiedBy = e
	}

	e.ApplyPlacement(anchor, reserved, rotation)
	return nil
}

// SetupPlanet places a planet's orbit on the field. The planet is accepted if at
// least one orbit cell lies on the field, void or not; every on-field orbit cell
// becomes its occupant.
func (f *Field) SetupPlanet(e *Entity) error {
	onField := make(map[Coordinate]struct{})

	for _, c := range e.OrbitCells {
		if _, err := f.GetCell(c); err != nil {
			continue
		}
		onField[c] = struct{}{}
	}

	if len(onField) == 0 {
		return ErrOrbitNeverCrosses
	}

	occupied := coordSetToSlice(onField)
	for _, c := range occupied {
		f.cells[c].OccupiedBy = e
	}

	e.ApplyOrbitPlacement(occupied)
	return nil
}

// ShotOutcome is the result of resolving a single shot against a Field.
type ShotOutcome int

// ShotOutcome constants.
const (
	Miss ShotOutcome = iota
	Hit
	ReflectedByRelay
)

// TakeShot resolves a shot at coords. It fails with ErrNotATarget when the cell is
// void or already shot.
func (f *Field) TakeShot(coords Coordinate) (ShotOutcome, error) {
	cell, err := f.GetCell(coords)
	if err != nil {
		return Miss, err
	}
	if cell.IsVoid || cell.WasShot {
		return Miss, ErrNotATarget
	}
	cell.WasShot = true

	if cell.OccupiedBy == nil {
		return Miss, nil
	}

	occupant := cell.OccupiedBy
	switch occupant.Type {
	case Planet:
		if coords == occupant.Anchor {
			return Hit, nil
		}
		return Miss, nil

	case Relay:
		if err := occupant.Damage(coords); err != nil {
			return Miss, err
		}
		return ReflectedByRelay, nil

	default:
		if err := occupant.Damage(coords); err != nil {
			return Miss, err
		}
		return Hit, nil
	}
}
