package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/spacehole-rogue/cityscape/internal/world"
)

// Floating is a glyph between cells, in fractional cell coordinates.
type Floating struct {
	Glyph byte
	FG    uint8
	X, Y  float64
}

// CellCanvas draws a city into a CellBuffer, one cell per GridSpacing pixels.
// The starship moves smoothly, so it is collected as a Floating glyph for the
// screen to draw above the cells.
type CellCanvas struct {
	Buf      *CellBuffer
	OriginX  int // cell column of world pixel x = 0
	OriginY  int // cell row of world pixel y = 0
	Floating []Floating
}

// NewCellCanvas wraps buf with the world origin at cell (originX, originY).
func NewCellCanvas(buf *CellBuffer, originX, originY int) *CellCanvas {
	return &CellCanvas{Buf: buf, OriginX: originX, OriginY: originY}
}

// Reset drops the floating glyphs of the previous frame.
func (c *CellCanvas) Reset() {
	c.Floating = c.Floating[:0]
}

func (c *CellCanvas) DrawSprite(sprite string, x, y float64) {
	style := StyleFor(sprite)

	if sprite == world.StarshipImage {
		ax := (x-world.StarshipOffsetX)/world.GridSpacing + float64(c.OriginX)
		ay := (y-world.StarshipOffsetY)/world.GridSpacing + float64(c.OriginY)
		c.Floating = append(c.Floating, Floating{Glyph: style.Glyph, FG: style.FG, X: ax, Y: ay})
		return
	}

	col := int(math.Floor(x/world.GridSpacing)) + c.OriginX
	row := int(math.Floor(y/world.GridSpacing)) + c.OriginY
	for dx := -1; dx <= 1; dx++ {
		c.Buf.SetStyle(col+dx, row, style)
	}
}

// diamondHalfW and diamondHalfH are the tile footprint half extents in pixels.
const (
	diamondHalfW = world.TileWidth / 2
	diamondHalfH = world.TileHeight / 2
)

// CityBounds returns the pixel rectangle covering every tile footprint plus
// headroom for the starship's flight arc.
func CityBounds(c *world.City) image.Rectangle {
	var r image.Rectangle
	for i, t := range c.Tiles() {
		tr := image.Rect(t.X()-diamondHalfW, t.Y()-diamondHalfH, t.X()+diamondHalfW, t.Y()+diamondHalfH)
		if i == 0 {
			r = tr
		} else {
			r = r.Union(tr)
		}
	}
	if r.Empty() {
		return image.Rect(-diamondHalfW, -diamondHalfH, diamondHalfW, diamondHalfH)
	}
	r.Min.Y -= int(world.StarshipBezierY)
	return r
}

// PNGCanvas rasterizes a city to an image, each tile as a filled diamond.
type PNGCanvas struct {
	dc     *gg.Context
	origin image.Point
	scale  float64
}

// NewPNGCanvas creates a black canvas covering bounds (world pixels) at scale.
func NewPNGCanvas(bounds image.Rectangle, scale float64) *PNGCanvas {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(float64(bounds.Dx()) * scale))
	h := int(math.Ceil(float64(bounds.Dy()) * scale))

	dc := gg.NewContextForRGBA(image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1))))
	dc.SetColor(Palette[ColorBlack])
	dc.Clear()

	return &PNGCanvas{dc: dc, origin: bounds.Min, scale: scale}
}

// ToImage maps a world pixel to image coordinates.
func (p *PNGCanvas) ToImage(x, y float64) (float64, float64) {
	return (x - float64(p.origin.X)) * p.scale, (y - float64(p.origin.Y)) * p.scale
}

// FillColor is the diamond color of a sprite.
func FillColor(sprite string) color.RGBA {
	s := StyleFor(sprite)
	if s.BG != ColorBlack {
		return Palette[s.BG]
	}
	return Palette[s.FG]
}

func (p *PNGCanvas) DrawSprite(sprite string, x, y float64) {
	if sprite == world.StarshipImage {
		cx, cy := p.ToImage(x-world.StarshipOffsetX, y-world.StarshipOffsetY)
		p.dc.SetColor(Palette[ColorWhite])
		p.dc.DrawCircle(cx, cy, 10*p.scale)
		p.dc.Fill()
		return
	}

	cx, cy := p.ToImage(x, y)
	hw, hh := diamondHalfW*p.scale, diamondHalfH*p.scale
	p.dc.NewSubPath()
	p.dc.MoveTo(cx, cy-hh)
	p.dc.LineTo(cx+hw, cy)
	p.dc.LineTo(cx, cy+hh)
	p.dc.LineTo(cx-hw, cy)
	p.dc.ClosePath()
	p.dc.SetColor(FillColor(sprite))
	p.dc.FillPreserve()
	p.dc.SetColor(Palette[ColorDarkGray])
	p.dc.SetLineWidth(1)
	p.dc.Stroke()
}

// Image returns the rendered image.
func (p *PNGCanvas) Image() image.Image { return p.dc.Image() }

// SavePNG writes the image to path.
func (p *PNGCanvas) SavePNG(path string) error { return p.dc.SavePNG(path) }

// Snapshot renders c at scale and writes it to path as a PNG.
func Snapshot(c *world.City, scale float64, path string) error {
	canvas := NewPNGCanvas(CityBounds(c), scale)
	c.Draw(canvas)
	return canvas.SavePNG(path)
}
