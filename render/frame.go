package render

import (
	"bufio"
	"io"
)

// Cell is one terminal cell of a rendered frame
type Cell struct {
	Mask  uint8
	Glyph rune
	Color RGB
	Blank bool
}

// Frame is a Cols×Rows grid of terminal cells, row-major
type Frame struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewFrame returns an all-blank frame
func NewFrame(cols, rows int) Frame {
	f := Frame{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
	for i := range f.Cells {
		f.Cells[i] = Cell{Glyph: ' ', Blank: true}
	}
	return f
}

// At returns the cell at (col, row), a blank cell when out of bounds
func (f Frame) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= f.Cols || row >= f.Rows {
		return Cell{Glyph: ' ', Blank: true}
	}
	return f.Cells[row*f.Cols+col]
}

// Filled returns the number of non-blank cells
func (f Frame) Filled() int {
	n := 0
	for _, c := range f.Cells {
		if !c.Blank {
			n++
		}
	}
	return n
}

// ANSI writes the frame with 24-bit foreground escapes
func (f Frame) ANSI(w io.Writer) error {
	return f.WriteANSI(w, ColorModeTrueColor)
}

// WriteANSI writes one line per row; color escapes are emitted only on change and each colored line ends with a reset
func (f Frame) WriteANSI(w io.Writer, mode ColorMode) error {
	bw := bufio.NewWriter(w)
	for row := 0; row < f.Rows; row++ {
		var cur string
		for col := 0; col < f.Cols; col++ {
			c := f.Cells[row*f.Cols+col]
			if c.Blank {
				bw.WriteByte(' ')
				continue
			}
			if esc := fgEscape(c.Color, mode); esc != cur {
				bw.WriteString(esc)
				cur = esc
			}
			bw.WriteRune(c.Glyph)
		}
		if cur != "" {
			bw.WriteString("\x1b[0m")
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
