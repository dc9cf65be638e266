package screen

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphWidth  = 16
	GlyphHeight = 16
	atlasCols   = 16
)

// Shading glyphs drawn by hand; basicfont only covers ASCII.
const (
	GlyphLightShade = 176
	GlyphFullBlock  = 219
)

// FontAtlas holds one white glyph image per byte code.
type FontAtlas struct {
	glyphs [256]*ebiten.Image
}

// NewFontAtlas renders printable ASCII with basicfont.Face7x13 and the
// shading glyphs by hand.
func NewFontAtlas() *FontAtlas {
	img := image.NewNRGBA(image.Rect(0, 0, atlasCols*GlyphWidth, 256/atlasCols*GlyphHeight))
	face := basicfont.Face7x13

	for code := 0; code < 256; code++ {
		cx := code % atlasCols * GlyphWidth
		cy := code / atlasCols * GlyphHeight
		switch {
		case code >= 32 && code <= 126:
			drawFontGlyph(img, face, cx, cy, rune(code))
		case code == GlyphLightShade:
			fillCell(img, cx, cy, func(x, y int) bool { return (x+y)%4 == 0 })
		case code == GlyphFullBlock:
			fillCell(img, cx, cy, func(x, y int) bool { return true })
		}
	}

	eimg := ebiten.NewImageFromImage(img)
	a := &FontAtlas{}
	for code := 0; code < 256; code++ {
		x := code % atlasCols * GlyphWidth
		y := code / atlasCols * GlyphHeight
		a.glyphs[code] = eimg.SubImage(image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)).(*ebiten.Image)
	}
	return a
}

// Glyph returns the image for a byte code.
func (a *FontAtlas) Glyph(code byte) *ebiten.Image {
	return a.glyphs[code]
}

// drawFontGlyph centres a 7x13 basicfont glyph in its cell.
func drawFontGlyph(img *image.NRGBA, face font.Face, cellX, cellY int, r rune) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(cellX+4, cellY+13),
	}
	d.DrawString(string(r))
}

func fillCell(img *image.NRGBA, cellX, cellY int, on func(x, y int) bool) {
	white := color.NRGBA{255, 255, 255, 255}
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if on(x, y) {
				img.SetNRGBA(cellX+x, cellY+y, white)
			}
		}
	}
}
