// Package screen draws cell buffers to an Ebitengine window.
package screen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spacehole-rogue/cityscape/internal/render"
)

// GridRenderer draws a CellBuffer to an Ebitengine image.
type GridRenderer struct {
	Atlas   *FontAtlas
	CellW   int
	CellH   int
	bgPixel *ebiten.Image // 1x1 white, scaled for backgrounds
}

// NewGridRenderer creates a renderer with cells of cellW x cellH pixels.
func NewGridRenderer(atlas *FontAtlas, cellW, cellH int) *GridRenderer {
	bgPixel := ebiten.NewImage(1, 1)
	bgPixel.Fill(color.White)
	return &GridRenderer{Atlas: atlas, CellW: cellW, CellH: cellH, bgPixel: bgPixel}
}

// Draw renders every cell of buf.
func (r *GridRenderer) Draw(dst *ebiten.Image, buf *render.CellBuffer) {
	for y := 0; y < buf.Rows; y++ {
		for x := 0; x < buf.Cols; x++ {
			cell := buf.Cells[y*buf.Cols+x]
			px := float64(x * r.CellW)
			py := float64(y * r.CellH)

			if cell.BG != render.ColorBlack {
				var op ebiten.DrawImageOptions
				op.GeoM.Scale(float64(r.CellW), float64(r.CellH))
				op.GeoM.Translate(px, py)
				op.ColorScale.ScaleWithColor(render.Palette[cell.BG])
				dst.DrawImage(r.bgPixel, &op)
			}
			r.drawGlyph(dst, cell.Glyph, cell.FG, px, py)
		}
	}
}

// DrawFloating renders glyphs that sit between cells, such as the starship
// in flight. Positions are in fractional cells.
func (r *GridRenderer) DrawFloating(dst *ebiten.Image, glyphs []render.Floating) {
	for _, f := range glyphs {
		r.drawGlyph(dst, f.Glyph, f.FG, f.X*float64(r.CellW), f.Y*float64(r.CellH))
	}
}

func (r *GridRenderer) drawGlyph(dst *ebiten.Image, glyph byte, fg uint8, px, py float64) {
	if glyph == ' ' || glyph == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(r.CellW)/GlyphWidth, float64(r.CellH)/GlyphHeight)
	op.GeoM.Translate(px, py)
	op.ColorScale.ScaleWithColor(render.Palette[fg])
	dst.DrawImage(r.Atlas.Glyph(glyph), &op)
}
