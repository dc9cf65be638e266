package world

// Default sprites for the fixed-image variants.
const (
	LandscapeImage = "grass"
	GardenImage    = "garden"
	WaterImage     = "water"
)

// Landscape is open ground.
type Landscape struct {
	tile
}

// NewLandscape creates a landscape tile belonging to city.
func NewLandscape(city *City) *Landscape {
	return &Landscape{tile: tile{city: city, image: LandscapeImage}}
}

func (l *Landscape) Kind() TileKind { return KindLandscape }
func (l *Landscape) Accept(v Visitor) { v.VisitLandscape(l) }
func (l *Landscape) Report(r ReportSink) { r.SetReport("Landscape") }
func (l *Landscape) Save(parent Node) Node { return l.save(parent, KindLandscape) }

// Building is a structure drawn from its own image file.
type Building struct {
	tile
	file string
}

// NewBuilding creates a building with no image; call SetImage to give it one.
func NewBuilding(city *City) *Building {
	return &Building{tile: tile{city: city}}
}

func (b *Building) Kind() TileKind { return KindBuilding }
func (b *Building) Accept(v Visitor) { v.VisitBuilding(b) }

// File returns the image file the building was created with.
func (b *Building) File() string { return b.file }

// SetImage sets the sprite. The first non-empty file is remembered for saving.
func (b *Building) SetImage(file string) {
	if file != "" && b.file == "" {
		b.file = file
	}
	b.tile.SetImage(file)
}

func (b *Building) Report(r ReportSink) {
	r.SetReport("Building - " + b.file)
}

func (b *Building) Save(parent Node) Node {
	node := b.save(parent, KindBuilding)
	node.SetAttr("file", b.file)
	return node
}

func (b *Building) Load(node Node) {
	b.tile.Load(node)
	b.SetImage(node.Attr("file"))
}

// Garden is a planted tile.
type Garden struct {
	tile
}

// NewGarden creates a garden tile belonging to city.
func NewGarden(city *City) *Garden {
	return &Garden{tile: tile{city: city, image: GardenImage}}
}

func (g *Garden) Kind() TileKind { return KindGarden }
func (g *Garden) Accept(v Visitor) { v.VisitGarden(g) }
func (g *Garden) Report(r ReportSink) { r.SetReport("Garden") }
func (g *Garden) Save(parent Node) Node { return g.save(parent, KindGarden) }

// Water is a pond or canal tile.
type Water struct {
	tile
}

// NewWater creates a water tile belonging to city.
func NewWater(city *City) *Water {
	return &Water{tile: tile{city: city, image: WaterImage}}
}

func (w *Water) Kind() TileKind { return KindWater }
func (w *Water) Accept(v Visitor) { v.VisitWater(w) }
func (w *Water) Report(r ReportSink) { r.SetReport("Water") }
func (w *Water) Save(parent Node) Node { return w.save(parent, KindWater) }

// NewTile creates an unplaced tile of the given kind for city.
// Pads go through the pad construction protocol.
func NewTile(city *City, kind TileKind) Tile {
	switch kind {
	case KindLandscape:
		return NewLandscape(city)
	case KindBuilding:
		return NewBuilding(city)
	case KindGarden:
		return NewGarden(city)
	case KindWater:
		return NewWater(city)
	case KindStarshipPad:
		return NewStarshipPad(city)
	default:
		return nil
	}
}
