package world

import "fmt"

// Grid geometry in pixels.
const (
	GridSpacing = 32  // size of one adjacency cell
	TileWidth   = 128 // isometric diamond footprint
	TileHeight  = 64
)

// TileKind identifies the variant of a tile. It doubles as the persisted type tag.
type TileKind uint8

const (
	KindLandscape TileKind = iota
	KindBuilding
	KindGarden
	KindWater
	KindStarshipPad
)

var kindTags = map[TileKind]string{
	KindLandscape:   "landscape",
	KindBuilding:    "building",
	KindGarden:      "garden",
	KindWater:       "water",
	KindStarshipPad: "starship-pad",
}

// String returns the persisted type tag for the kind.
func (k TileKind) String() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind maps a persisted type tag back to a kind.
func ParseKind(tag string) (TileKind, bool) {
	for k, t := range kindTags {
		if t == tag {
			return k, true
		}
	}
	return 0, false
}

// Canvas is the render target handed to Draw. Sprite names are opaque to the core.
type Canvas interface {
	DrawSprite(sprite string, x, y float64)
}

// Tile is a placed, positioned member of a City.
type Tile interface {
	Kind() TileKind
	X() int
	Y() int
	SetLocation(x, y int)
	Image() string
	City() *City

	// HitTest reports whether pixel (x, y) falls inside the tile footprint.
	HitTest(x, y int) bool

	// Accept calls exactly one visitor method, the one for this variant.
	Accept(v Visitor)

	Update(elapsed float64)
	Draw(c Canvas)
	Report(r ReportSink)

	// PendingDelete is consulted before removal. A non-nil error vetoes the delete.
	PendingDelete() error

	Save(parent Node) Node
	Load(node Node)
}

// ReportSink receives the one-line summary a tile writes about itself.
type ReportSink interface {
	SetReport(text string)
}

// tile holds the attributes shared by every variant.
type tile struct {
	city  *City
	x, y  int
	image string
}

func (t *tile) X() int        { return t.x }
func (t *tile) Y() int        { return t.y }
func (t *tile) Image() string { return t.image }
func (t *tile) City() *City   { return t.city }

func (t *tile) SetLocation(x, y int) {
	t.x = x
	t.y = y
}

// SetImage sets the sprite name. An empty name draws nothing.
func (t *tile) SetImage(image string) { t.image = image }

// Cell returns the adjacency cell of the tile.
func (t *tile) Cell() (int, int) {
	return t.x / GridSpacing, t.y / GridSpacing
}

// HitTest is a diamond containment test centred on the tile location.
func (t *tile) HitTest(x, y int) bool {
	dx := float64(abs(x - t.x))
	dy := float64(abs(y - t.y))
	return dx/(TileWidth/2)+dy/(TileHeight/2) <= 1
}

func (t *tile) Update(elapsed float64) {}

func (t *tile) Draw(c Canvas) {
	if t.image != "" {
		c.DrawSprite(t.image, float64(t.x), float64(t.y))
	}
}

func (t *tile) PendingDelete() error { return nil }

// save writes the base attributes shared by every variant.
func (t *tile) save(parent Node, kind TileKind) Node {
	node := parent.AddChild("tile")
	node.SetAttr("x", fmt.Sprint(t.x))
	node.SetAttr("y", fmt.Sprint(t.y))
	node.SetAttr("type", kind.String())
	return node
}

func (t *tile) Load(node Node) {
	t.x = IntAttr(node, "x", 0)
	t.y = IntAttr(node, "y", 0)
}

// Adjacent returns the neighbour of tile in direction (dx, dy), or nil.
func Adjacent(t Tile, dx, dy int) Tile {
	if t.City() == nil {
		return nil
	}
	return t.City().GetAdjacent(t, dx, dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
