package engine

import (
	"math"
	"sort"
)

// circleCoords rasterizes the border of a circle of the given integer radius around
// center using the midpoint (Bresenham) algorithm, emitting the eight-way symmetric
// points. Radius 0 yields the singleton center. The result is deduplicated.
func circleCoords(radius int, center Coordinate) []Coordinate {
	if radius == 0 {
		return []Coordinate{center}
	}

	seen := make(map[Coordinate]struct{})
	x, y := 0, radius
	d := 1 - radius

	for x <= y {
		for _, p := range [8]Coordinate{
			{Y: center.Y + y, X: center.X + x}, {Y: center.Y - y, X: center.X + x},
			{Y: center.Y + y, X: center.X - x}, {Y: center.Y - y, X: center.X - x},
			{Y: center.Y + x, X: center.X + y}, {Y: center.Y - x, X: center.X + y},
			{Y: center.Y + x, X: center.X - y}, {Y: center.Y - x, X: center.X - y},
		} {
			seen[p] = struct{}{}
		}

		if d < 0 {
			d += 2*x + 3
		} else {
			d += 2 * (x - y)
			d += 5
			y--
		}
		x++
	}

	return coordSetToSlice(seen)
}

// sortByPolarAngle sorts coordinates around center by atan2(dy, dx) normalized to
// [0, 2π). This is the canonical orbit traversal order used to step a planet.
func sortByPolarAngle(center Coordinate, coords []Coordinate) []Coordinate {
	type withAngle struct {
		angle float64
		coord Coordinate
	}

	tagged := make([]withAngle, len(coords))
	for i, c := range coords {
		angle := math.Atan2(float64(c.Y-center.Y), float64(c.X-center.X))
		if angle < 0 {
			angle += 2 * math.Pi
		}
		tagged[i] = withAngle{angle: angle, coord: c}
	}

	sort.Slice(tagged, func(i, j int) bool { return tagged[i].angle < tagged[j].angle })

	out := make([]Coordinate, len(tagged))
	for i, t := range tagged {
		out[i] = t.coord
	}
	return out
}

// ngonCoords rasterizes the border of a regular polygon with n vertices, radius and
// starting angle (degrees) around center, connecting consecutive vertices (wrapping)
// with Bresenham line segments. Triangles round vertices with ceil to keep them
// visually centered on the tile grid; every other polygon rounds normally.
func ngonCoords(n int, radius int, angleDegrees float64, center Coordinate) []Coordinate {
	if radius == 0 {
		return []Coordinate{center}
	}

	angle := angleDegrees / 180 * math.Pi

	vertices := make([]Coordinate, n)
	for i := range n {
		theta := 2*math.Pi*float64(i)/float64(n) + angle
		fy := float64(center.Y) + float64(radius)*math.Sin(theta)
		fx := float64(center.X) + float64(radius)*math.Cos(theta)

		var y, x int
		if n == 3 {
			y, x = int(math.Ceil(fy)), int(math.Ceil(fx))
		} else {
			y, x = int(math.Round(fy)), int(math.Round(fx))
		}
		vertices[i] = Coordinate{Y: y, X: x}
	}

	seen := make(map[Coordinate]struct{})
	for i := range n {
		from := vertices[(i-1+n)%n]
		to := vertices[i]
		for _, p := range bresenhamLine(from, to) {
			seen[p] = struct{}{}
		}
	}

	return coordSetToSlice(seen)
}

// bresenhamLine rasterizes the integer points of the line segment between a and b,
// inclusive of both endpoints.
func bresenhamLine(a, b Coordinate) []Coordinate {
	points := []Coordinate{}

	x1, y1 := a.X, a.Y
	x2, y2 := b.X, b.Y

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 >= x2 {
		sx = -1
	}
	if y1 >= y2 {
		sy = -1
	}
	err := dx - dy

	for {
		points = append(points, Coordinate{Y: y1, X: x1})
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}

	return points
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func coordSetToSlice(set map[Coordinate]struct{}) []Coordinate {
	out := make([]Coordinate, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}
