package lattice

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/vmath"
)

func TestNewRoundsToDotMultiples(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{10, 10, 10, 12},
		{11, 13, 12, 16},
		{0, 0, DotCols, DotRows},
		{-5, 3, DotCols, DotRows},
	}
	for _, tt := range tests {
		l := New(tt.w, tt.h)
		if l.Width() != tt.wantW || l.Height() != tt.wantH {
			t.Errorf("New(%d,%d) = %dx%d, want %dx%d", tt.w, tt.h, l.Width(), l.Height(), tt.wantW, tt.wantH)
		}
	}

	l := ForTerminal(40, 10)
	if l.Cols() != 40 || l.Rows() != 10 || l.Width() != 80 || l.Height() != 40 {
		t.Errorf("ForTerminal(40,10) = %dx%d dots", l.Width(), l.Height())
	}
}

func TestAttach(t *testing.T) {
	l := New(20, 20)
	if err := l.Attach(10, 10, 0, 0, 0, 0); err != nil {
		t.Fatalf("first attach: %v", err)
	}
	if !l.IsOccupied(10, 10) {
		t.Fatal("site not occupied after attach")
	}

	err := l.Attach(10, 10, 1, 0, 0, 0)
	var occ *AlreadyOccupiedError
	if !errors.As(err, &occ) || occ.X != 10 || occ.Y != 10 {
		t.Fatalf("second attach: got %v, want AlreadyOccupiedError", err)
	}

	err = l.Attach(-1, 3, 1, 0, 0, 0)
	var oob *OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("out of bounds attach: got %v", err)
	}

	if l.Count() != 1 || l.SeedCount() != 1 || l.MaxOrder() != 0 {
		t.Errorf("count=%d seeds=%d max=%d after failed attaches", l.Count(), l.SeedCount(), l.MaxOrder())
	}
}

func TestAttachFieldsAndAggregates(t *testing.T) {
	l := New(20, 20)
	_ = l.Attach(10, 10, 0, 0, 0, 0)
	_ = l.Attach(13, 14, 1, 5, 2, 1.5)

	c, ok := l.Cell(13, 14)
	if !ok || !c.Occupied || c.Order != 1 || c.Distance != 5 || c.Density != 2 || c.Direction != 1.5 {
		t.Errorf("cell = %+v", c)
	}
	if l.MaxOrder() != 1 || l.Count() != 2 || l.SeedCount() != 1 {
		t.Errorf("max=%d count=%d seeds=%d", l.MaxOrder(), l.Count(), l.SeedCount())
	}
	if math.Abs(l.CurrentRadius()-5) > 1e-9 {
		t.Errorf("radius = %v, want 5", l.CurrentRadius())
	}

	empty, ok := l.Cell(0, 0)
	if !ok || empty != (Cell{}) {
		t.Errorf("unoccupied cell has attributes: %+v", empty)
	}
	if _, ok := l.Cell(100, 0); ok {
		t.Error("out of bounds Cell reported ok")
	}
}

func TestNeighborCountBounds(t *testing.T) {
	l := New(10, 12)
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			_ = l.Attach(x, y, 0, 0, 0, 0)
		}
	}
	for _, nh := range []parameter.Neighborhood{parameter.VonNeumann, parameter.Moore, parameter.Extended} {
		for y := -1; y <= l.Height(); y++ {
			for x := -1; x <= l.Width(); x++ {
				n := l.NeighborCount(x, y, nh)
				if n < 0 || n > nh.Max() {
					t.Fatalf("%s at (%d,%d): %d outside [0,%d]", nh, x, y, n, nh.Max())
				}
			}
		}
		if got := l.NeighborCount(5, 6, nh); got != nh.Max() {
			t.Errorf("%s interior on full lattice = %d, want %d", nh, got, nh.Max())
		}
	}
	if got := l.NeighborCount(0, 0, parameter.Moore); got != 3 {
		t.Errorf("Moore corner = %d, want 3", got)
	}
}

func TestNeighborCountExcludesSelf(t *testing.T) {
	l := New(10, 12)
	_ = l.Attach(4, 4, 0, 0, 0, 0)
	if n := l.NeighborCount(4, 4, parameter.Extended); n != 0 {
		t.Errorf("isolated site counts itself: %d", n)
	}
	if n := l.NeighborCount(6, 4, parameter.Extended); n != 1 {
		t.Errorf("distance-2 neighbor in extended = %d, want 1", n)
	}
	if n := l.NeighborCount(6, 4, parameter.Moore); n != 0 {
		t.Errorf("distance-2 neighbor in moore = %d, want 0", n)
	}
}

func TestBlock(t *testing.T) {
	l := New(4, 8)
	_ = l.Attach(0, 0, 0, 0, 0, 0)
	_ = l.Attach(1, 3, 7, 0, 0, 0)
	_ = l.Attach(0, 3, 3, 0, 0, 0)

	mask, top, ok := l.Block(0, 0)
	if !ok || mask != 0x01|0x80|0x40 || top.Order != 7 {
		t.Errorf("Block(0,0) = %#x order %d ok=%v", mask, top.Order, ok)
	}
	if _, _, ok := l.Block(1, 1); ok {
		t.Error("empty block reported ok")
	}
}

func TestDotBitTable(t *testing.T) {
	seen := uint8(0)
	for dx := 0; dx < DotCols; dx++ {
		for dy := 0; dy < DotRows; dy++ {
			b := DotBit(dx, dy)
			if b == 0 || b&(b-1) != 0 || seen&b != 0 {
				t.Fatalf("DotBit(%d,%d) = %#x not a fresh single bit", dx, dy, b)
			}
			seen |= b
		}
	}
	if seen != 0xFF || DotBit(2, 0) != 0 {
		t.Errorf("dot bits cover %#x", seen)
	}
}

func TestClear(t *testing.T) {
	l := New(20, 20)
	l.Seed(parameter.SeedCross, vmath.NewFastRand(1))
	_ = l.Attach(0, 0, 5, 0, 0, 0)
	l.Clear()
	if l.Count() != 0 || l.MaxOrder() != 0 || l.CurrentRadius() != 0 || l.IsOccupied(0, 0) {
		t.Error("Clear left state behind")
	}
}
