// Package render turns a city into cells for the window view or into a PNG image.
package render

// Cell is a single character cell.
type Cell struct {
	Glyph byte  // CP437 code
	FG    uint8 // palette index
	BG    uint8 // palette index
}

var blank = Cell{Glyph: ' ', FG: ColorWhite, BG: ColorBlack}

// CellBuffer is a grid of character cells.
type CellBuffer struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewCellBuffer creates a buffer of blank cells.
func NewCellBuffer(cols, rows int) *CellBuffer {
	b := &CellBuffer{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
	b.Clear()
	return b
}

func (b *CellBuffer) inside(x, y int) bool {
	return x >= 0 && x < b.Cols && y >= 0 && y < b.Rows
}

// Set writes one cell. Writes outside the buffer are dropped.
func (b *CellBuffer) Set(x, y int, glyph byte, fg, bg uint8) {
	if b.inside(x, y) {
		b.Cells[y*b.Cols+x] = Cell{Glyph: glyph, FG: fg, BG: bg}
	}
}

// SetStyle writes one cell in style s.
func (b *CellBuffer) SetStyle(x, y int, s Style) {
	b.Set(x, y, s.Glyph, s.FG, s.BG)
}

// Get reads one cell. Reads outside the buffer return the zero cell.
func (b *CellBuffer) Get(x, y int) Cell {
	if b.inside(x, y) {
		return b.Cells[y*b.Cols+x]
	}
	return Cell{}
}

// Clear blanks every cell.
func (b *CellBuffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = blank
	}
}

// ClearRow blanks row y.
func (b *CellBuffer) ClearRow(y int) {
	for x := 0; x < b.Cols; x++ {
		b.Set(x, y, ' ', ColorBlack, ColorBlack)
	}
}

// WriteString writes s from (x, y) rightwards, one byte per rune. Runes
// outside CP437's byte range become '?'.
func (b *CellBuffer) WriteString(x, y int, s string, fg, bg uint8) {
	i := 0
	for _, ch := range s {
		if ch > 255 {
			ch = '?'
		}
		b.Set(x+i, y, byte(ch), fg, bg)
		i++
	}
}

// Row returns the glyphs of row y as a string.
func (b *CellBuffer) Row(y int) string {
	if y < 0 || y >= b.Rows {
		return ""
	}
	row := make([]byte, b.Cols)
	for x := range row {
		row[x] = b.Cells[y*b.Cols+x].Glyph
	}
	return string(row)
}
