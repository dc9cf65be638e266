package world

import (
	"errors"
	"fmt"
)

// PadImage is the sprite of a starship pad.
const PadImage = "pad"

var (
	// ErrDeleteVetoed wraps every refusal from PendingDelete.
	ErrDeleteVetoed = errors.New("delete vetoed")

	// ErrStrandedStarship means removing the pad would leave the city's
	// starship held by no pad.
	ErrStrandedStarship = errors.New("starship would be stranded")
)

// StarshipPad is where the starship takes off and lands.
type StarshipPad struct {
	tile
	starship *Starship
}

// NewStarshipPad creates a pad for city. If the city has no starship yet the
// new pad gets one, resting on it; otherwise the pad starts empty.
func NewStarshipPad(city *City) *StarshipPad {
	p := &StarshipPad{tile: tile{city: city, image: PadImage}}

	var finder StarshipFinder
	if city != nil {
		city.Accept(&finder)
	}
	if finder.Starship() == nil {
		NewStarship(p)
	}
	return p
}

func (p *StarshipPad) Kind() TileKind { return KindStarshipPad }

func (p *StarshipPad) Accept(v Visitor) { v.VisitStarshipPad(p) }

// Starship returns the starship this pad holds, or nil.
func (p *StarshipPad) Starship() *Starship { return p.starship }

func (p *StarshipPad) Save(parent Node) Node { return p.save(parent, KindStarshipPad) }

func (p *StarshipPad) Report(r ReportSink) {
	switch {
	case p.starship == nil:
		r.SetReport("Starship Pad")
	case p.starship.InFlight():
		r.SetReport("Starship Pad - starship in flight")
	default:
		r.SetReport("Starship Pad - starship docked")
	}
}

func (p *StarshipPad) Update(elapsed float64) {
	if p.starship != nil {
		p.starship.Update(p, elapsed)
	}
}

func (p *StarshipPad) Draw(c Canvas) {
	p.tile.Draw(c)
	if p.starship != nil {
		p.starship.Draw(p, c)
	}
}

// StarshipIsGone releases the starship after it landed elsewhere.
func (p *StarshipPad) StarshipIsGone() {
	p.starship = nil
}

// StarshipHasLanded makes this pad the starship's new launching pad.
func (p *StarshipPad) StarshipHasLanded() {
	if p.starship == nil {
		return
	}
	p.starship.SetLaunchingPad(p)
	if p.city != nil {
		p.city.log.Info().Int("x", p.x).Int("y", p.y).Msg("starship landed")
	}
}

// PendingDelete hands the starship to another pad before this one goes.
//
// An empty pad elsewhere receives the starship at rest. Failing that, the
// other end of a flight in progress keeps it. If this pad is the only one
// holding the starship and no other pad exists the delete is vetoed.
func (p *StarshipPad) PendingDelete() error {
	ship := p.starship
	if ship == nil {
		return nil
	}

	var finder EmptyPadFinder
	if p.city != nil {
		p.city.Accept(&finder)
	}

	var heir *StarshipPad
	switch {
	case finder.Empty() && finder.Pad() != p:
		heir = finder.Pad()
	case ship.LaunchPad() != nil && ship.LaunchPad() != p:
		heir = ship.LaunchPad()
	case ship.LandingPad() != nil && ship.LandingPad() != p:
		heir = ship.LandingPad()
	}

	if heir == nil {
		return fmt.Errorf("%w: pad at (%d, %d): %w", ErrDeleteVetoed, p.x, p.y, ErrStrandedStarship)
	}

	ship.SetLaunchingPad(heir)
	p.starship = nil
	if p.city != nil {
		p.city.log.Info().
			Int("fromX", p.x).Int("fromY", p.y).
			Int("toX", heir.x).Int("toY", heir.y).
			Msg("starship handed off")
	}
	return nil
}
