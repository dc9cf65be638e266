package world

// Visitor performs a typed operation over tiles without type inspection.
// Each tile calls exactly one method, the one naming its own variant.
//
// Concrete visitors embed NoopVisitor and override only the methods they
// care about, so adding a variant here leaves existing visitors compiling.
type Visitor interface {
	VisitBuilding(b *Building)
	VisitLandscape(l *Landscape)
	VisitGarden(g *Garden)
	VisitWater(w *Water)
	VisitStarshipPad(p *StarshipPad)
}

// NoopVisitor ignores every variant.
type NoopVisitor struct{}

func (NoopVisitor) VisitBuilding(*Building)       {}
func (NoopVisitor) VisitLandscape(*Landscape)     {}
func (NoopVisitor) VisitGarden(*Garden)           {}
func (NoopVisitor) VisitWater(*Water)             {}
func (NoopVisitor) VisitStarshipPad(*StarshipPad) {}

var _ Visitor = NoopVisitor{}

// BuildingCounter counts buildings.
type BuildingCounter struct {
	NoopVisitor
	count int
}

func (c *BuildingCounter) VisitBuilding(*Building) { c.count++ }

// Count returns the number of buildings visited.
func (c *BuildingCounter) Count() int { return c.count }

// EmptyPadFinder looks for a starship pad with no starship.
//
// The first empty pad wins. Until one is found, the first pad of any kind is
// remembered as a fallback candidate.
type EmptyPadFinder struct {
	NoopVisitor
	pad   *StarshipPad
	empty bool
}

func (f *EmptyPadFinder) VisitStarshipPad(p *StarshipPad) {
	if p.Starship() == nil {
		if !f.empty {
			f.pad = p
			f.empty = true
		}
	} else if !f.empty && f.pad == nil {
		f.pad = p
	}
}

// Empty reports whether an empty pad was found.
func (f *EmptyPadFinder) Empty() bool { return f.empty }

// Pad returns the empty pad, the fallback candidate, or nil.
func (f *EmptyPadFinder) Pad() *StarshipPad { return f.pad }

// StarshipFinder records the last pad visited that holds a starship.
// Mid-flight two pads hold the same ship and the later one in draw order wins.
type StarshipFinder struct {
	NoopVisitor
	pad  *StarshipPad
	ship *Starship
}

func (f *StarshipFinder) VisitStarshipPad(p *StarshipPad) {
	if s := p.Starship(); s != nil {
		f.ship = s
		f.pad = p
	}
}

// Starship returns the starship found, or nil.
func (f *StarshipFinder) Starship() *Starship { return f.ship }

// Pad returns the pad holding the starship, or nil.
func (f *StarshipFinder) Pad() *StarshipPad { return f.pad }

// PadCheck is accepted by a single tile to learn whether it is a pad.
type PadCheck struct {
	NoopVisitor
	pad *StarshipPad
}

func (c *PadCheck) VisitStarshipPad(p *StarshipPad) { c.pad = p }

// IsPad reports whether the visited tile was a pad.
func (c *PadCheck) IsPad() bool { return c.pad != nil }

// Pad returns the visited pad, or nil.
func (c *PadCheck) Pad() *StarshipPad { return c.pad }
