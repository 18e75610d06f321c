// Package lattice holds the aggregate: a dot-resolution occupancy grid with per-cell attachment attributes
package lattice

import (
	"math"

	"github.com/lixenwraith/dla-sim/parameter"
)

// Dot factor of one terminal cell in braille rendering
const (
	DotCols = 2
	DotRows = 4
)

// Cell is one lattice site; attachment fields are meaningful only when Occupied
type Cell struct {
	Occupied  bool
	Order     int     // attachment sequence, 0 for seeds
	Distance  float64 // from lattice center at attach time
	Density   int     // neighbor count at attach time
	Direction float64 // approach angle, radians in (-π, π]
}

// Lattice is a row-major grid; not safe for concurrent use
type Lattice struct {
	width  int
	height int
	cells  []Cell

	count     int
	seedCount int
	maxOrder  int
	radius    float64
}

// New returns an empty lattice, rounding both dimensions up to whole terminal cells
func New(width, height int) *Lattice {
	width = roundUp(max(width, DotCols), DotCols)
	height = roundUp(max(height, DotRows), DotRows)
	return &Lattice{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// ForTerminal returns an empty lattice covering cols×rows terminal cells
func ForTerminal(cols, rows int) *Lattice {
	return New(cols*DotCols, rows*DotRows)
}

func roundUp(v, m int) int {
	return (v + m - 1) / m * m
}

// Width returns the dot width
func (l *Lattice) Width() int { return l.width }

// Height returns the dot height
func (l *Lattice) Height() int { return l.height }

// Cols returns the terminal cell width
func (l *Lattice) Cols() int { return l.width / DotCols }

// Rows returns the terminal cell height
func (l *Lattice) Rows() int { return l.height / DotRows }

// Area returns the number of lattice sites
func (l *Lattice) Area() int { return l.width * l.height }

// Center returns the geometric center in dot coordinates
func (l *Lattice) Center() (float64, float64) {
	return float64(l.width) / 2, float64(l.height) / 2
}

// InBounds reports whether (x, y) is a lattice site
func (l *Lattice) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.width && y < l.height
}

// IsOccupied reports occupancy; out of bounds is unoccupied
func (l *Lattice) IsOccupied(x, y int) bool {
	if !l.InBounds(x, y) {
		return false
	}
	return l.cells[y*l.width+x].Occupied
}

// Cell returns the site at (x, y), false when out of bounds
func (l *Lattice) Cell(x, y int) (Cell, bool) {
	if !l.InBounds(x, y) {
		return Cell{}, false
	}
	return l.cells[y*l.width+x], true
}

// NeighborCount counts occupied sites over the neighborhood offsets of (x, y)
func (l *Lattice) NeighborCount(x, y int, nh parameter.Neighborhood) int {
	n := 0
	for _, o := range nh.Offsets() {
		if l.IsOccupied(x+o[0], y+o[1]) {
			n++
		}
	}
	return n
}

// DistanceFromCenter returns the Euclidean distance of site (x, y) from Center
func (l *Lattice) DistanceFromCenter(x, y int) float64 {
	cx, cy := l.Center()
	return math.Hypot(float64(x)-cx, float64(y)-cy)
}

// Attach marks (x, y) occupied with the given attributes
// Order 0 marks a seed. The radius grows to cover the site.
func (l *Lattice) Attach(x, y, order int, distance float64, density int, direction float64) error {
	if !l.InBounds(x, y) {
		return &OutOfBoundsError{X: x, Y: y, Width: l.width, Height: l.height}
	}
	c := &l.cells[y*l.width+x]
	if c.Occupied {
		return &AlreadyOccupiedError{X: x, Y: y, Order: c.Order}
	}
	*c = Cell{
		Occupied:  true,
		Order:     order,
		Distance:  distance,
		Density:   density,
		Direction: direction,
	}

	l.count++
	if order == 0 {
		l.seedCount++
	}
	if order > l.maxOrder {
		l.maxOrder = order
	}
	if r := l.DistanceFromCenter(x, y); r > l.radius {
		l.radius = r
	}
	return nil
}

// CurrentRadius returns the largest center distance among occupied sites
func (l *Lattice) CurrentRadius() float64 { return l.radius }

// Count returns the number of occupied sites, seeds included
func (l *Lattice) Count() int { return l.count }

// SeedCount returns the number of order-0 sites
func (l *Lattice) SeedCount() int { return l.seedCount }

// MaxOrder returns the highest attachment order, 0 when only seeds exist
func (l *Lattice) MaxOrder() int { return l.maxOrder }

// Clear empties every site and resets the tracked aggregates
func (l *Lattice) Clear() {
	clear(l.cells)
	l.count = 0
	l.seedCount = 0
	l.maxOrder = 0
	l.radius = 0
}

// Block returns the braille dot mask and the highest-order occupied site of terminal cell (col, row)
// ok is false when the block is empty
func (l *Lattice) Block(col, row int) (mask uint8, top Cell, ok bool) {
	x0, y0 := col*DotCols, row*DotRows
	for dy := 0; dy < DotRows; dy++ {
		for dx := 0; dx < DotCols; dx++ {
			c, in := l.Cell(x0+dx, y0+dy)
			if !in || !c.Occupied {
				continue
			}
			mask |= DotBit(dx, dy)
			if !ok || c.Order > top.Order {
				top = c
				ok = true
			}
		}
	}
	return mask, top, ok
}

// dotBits maps (dx, dy) within a 2×4 block to its braille bit
var dotBits = [DotCols][DotRows]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// DotBit returns the braille bit for dot (dx, dy) of a block, 0 outside the block
func DotBit(dx, dy int) uint8 {
	if dx < 0 || dy < 0 || dx >= DotCols || dy >= DotRows {
		return 0
	}
	return dotBits[dx][dy]
}
