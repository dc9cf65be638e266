package world

// Starship flight constants.
const (
	// StarshipSpeed is in t units per second.
	StarshipSpeed = 0.5

	// StarshipBezierY lifts each control point above its pad.
	StarshipBezierY = 200.0

	// Sprite offset from the computed position.
	StarshipOffsetX = -64.0
	StarshipOffsetY = -105.0

	StarshipImage = "starship"
)

// Point is a sub-pixel position.
type Point struct {
	X, Y float64
}

// Starship is the single mobile unit of a city.
//
// At rest it has only a launching pad. In flight it has both a launching and a
// landing pad and each of them holds a reference to it. The starship keeps the
// pads' references in step with its own, so at any moment it is held by one
// pad (at rest) or two (in flight).
type Starship struct {
	launch  *StarshipPad
	landing *StarshipPad
	t       float64
	speed   float64
}

// NewStarship creates a starship resting on pad.
func NewStarship(pad *StarshipPad) *Starship {
	s := &Starship{}
	s.SetLaunchingPad(pad)
	return s
}

// LaunchPad returns the pad the starship rests on or departed from.
func (s *Starship) LaunchPad() *StarshipPad { return s.launch }

// LandingPad returns the flight destination, or nil at rest.
func (s *Starship) LandingPad() *StarshipPad { return s.landing }

// T returns flight progress in [0, 1].
func (s *Starship) T() float64 { return s.t }

// Speed returns the current speed in t units per second.
func (s *Starship) Speed() float64 { return s.speed }

// InFlight reports whether the starship is moving.
func (s *Starship) InFlight() bool { return s.speed > 0 }

// SetLaunchingPad puts the starship at rest on pad, abandoning any flight.
// Every other pad holding the starship releases it.
func (s *Starship) SetLaunchingPad(pad *StarshipPad) {
	for _, old := range []*StarshipPad{s.launch, s.landing} {
		if old != nil && old != pad && old.starship == s {
			old.starship = nil
		}
	}
	s.landing = nil
	s.launch = pad
	s.speed = 0
	s.t = 0
	if pad != nil {
		pad.starship = s
	}
}

// SetLandingPad starts a flight from the launching pad to pad.
// A previous destination other than pad releases the starship.
func (s *Starship) SetLandingPad(pad *StarshipPad) {
	if old := s.landing; old != nil && old != pad && old != s.launch && old.starship == s {
		old.starship = nil
	}
	s.landing = pad
	s.speed = StarshipSpeed
	s.t = 0
	if pad != nil {
		pad.starship = s
	}
}

// isLowerOwner reports whether pad is authoritative for updating and drawing.
// With two pads the one lower on screen (greater y) wins; ties go to the
// landing pad. With one pad every caller is authoritative.
func (s *Starship) isLowerOwner(pad *StarshipPad) bool {
	if s.launch == nil || s.landing == nil {
		return true
	}
	if s.launch.Y() > s.landing.Y() {
		return pad == s.launch
	}
	return pad == s.landing
}

// Update advances the flight by elapsed seconds when called by the lower owner.
func (s *Starship) Update(pad *StarshipPad, elapsed float64) {
	if !s.isLowerOwner(pad) {
		return
	}

	s.t += elapsed * s.speed
	if s.t < 1 || s.landing == nil {
		if s.t > 1 {
			s.t = 1
		}
		return
	}

	s.t = 1
	s.speed = 0

	launch, landing := s.launch, s.landing
	if launch != landing && launch != nil {
		launch.StarshipIsGone()
	}
	landing.StarshipHasLanded()
}

// Position returns the starship location in pixels.
// In flight it follows a cubic Bezier from launch to landing pad with both
// control points lifted StarshipBezierY above their pads.
func (s *Starship) Position() Point {
	if s.launch == nil {
		return Point{}
	}

	x1, y1 := float64(s.launch.X()), float64(s.launch.Y())
	if s.landing == nil {
		return Point{X: x1, Y: y1}
	}

	x4, y4 := float64(s.landing.X()), float64(s.landing.Y())
	x2, y2 := x1, y1-StarshipBezierY
	x3, y3 := x4, y4-StarshipBezierY

	t := s.t
	b1 := (1 - t) * (1 - t) * (1 - t)
	b2 := 3 * (1 - t) * (1 - t) * t
	b3 := 3 * (1 - t) * t * t
	b4 := t * t * t

	return Point{
		X: x1*b1 + x2*b2 + x3*b3 + x4*b4,
		Y: y1*b1 + y2*b2 + y3*b3 + y4*b4,
	}
}

// Draw draws the starship when called by the lower owner.
func (s *Starship) Draw(pad *StarshipPad, c Canvas) {
	if !s.isLowerOwner(pad) {
		return
	}
	p := s.Position()
	c.DrawSprite(StarshipImage, p.X+StarshipOffsetX, p.Y+StarshipOffsetY)
}
