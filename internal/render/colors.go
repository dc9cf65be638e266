package render

import (
	"image/color"

	"github.com/spacehole-rogue/cityscape/internal/world"
)

// CGA 16-color palette indices.
const (
	ColorBlack        = 0
	ColorBlue         = 1
	ColorGreen        = 2
	ColorCyan         = 3
	ColorRed          = 4
	ColorMagenta      = 5
	ColorBrown        = 6
	ColorLightGray    = 7
	ColorDarkGray     = 8
	ColorLightBlue    = 9
	ColorLightGreen   = 10
	ColorLightCyan    = 11
	ColorLightRed     = 12
	ColorLightMagenta = 13
	ColorYellow       = 14
	ColorWhite        = 15
)

// Palette is the classic CGA palette.
var Palette = [16]color.RGBA{
	{0, 0, 0, 255},
	{0, 0, 170, 255},
	{0, 170, 0, 255},
	{0, 170, 170, 255},
	{170, 0, 0, 255},
	{170, 0, 170, 255},
	{170, 85, 0, 255},
	{170, 170, 170, 255},
	{85, 85, 85, 255},
	{85, 85, 255, 255},
	{85, 255, 85, 255},
	{85, 255, 255, 255},
	{255, 85, 85, 255},
	{255, 85, 255, 255},
	{255, 255, 85, 255},
	{255, 255, 255, 255},
}

// Style is how a sprite appears in the cell view.
type Style struct {
	Glyph byte
	FG    uint8
	BG    uint8
}

var spriteStyles = map[string]Style{
	world.LandscapeImage: {'"', ColorGreen, ColorBlack},
	world.GardenImage:    {'*', ColorLightGreen, ColorGreen},
	world.WaterImage:     {'~', ColorLightCyan, ColorBlue},
	world.PadImage:       {'H', ColorYellow, ColorDarkGray},
	world.StarshipImage:  {'A', ColorWhite, ColorBlack},
}

// buildingStyle covers every building image; buildings carry their own file name.
var buildingStyle = Style{'#', ColorLightGray, ColorBrown}

// StyleFor returns the cell style of a sprite. Unknown sprites are buildings.
func StyleFor(sprite string) Style {
	if s, ok := spriteStyles[sprite]; ok {
		return s
	}
	return buildingStyle
}
