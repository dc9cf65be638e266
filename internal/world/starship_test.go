package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// holders counts the pads in c referencing s.
func holders(c *City, s *Starship) int {
	n := 0
	for _, t := range c.Tiles() {
		var check PadCheck
		t.Accept(&check)
		if check.IsPad() && check.Pad().Starship() == s {
			n++
		}
	}
	return n
}

// flyUntilLanded steps c until the starship stops, failing after limit ticks.
func flyUntilLanded(t *testing.T, c *City, s *Starship, elapsed float64, limit int) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		c.Update(elapsed)
		if !s.InFlight() {
			return i
		}
	}
	t.Fatalf("starship still in flight after %d ticks (t=%.3f)", limit, s.T())
	return limit
}

func TestNewStarshipPad_FirstPadGetsTheStarship(t *testing.T) {
	c := NewCity()
	first := place(c, NewStarshipPad(c), 0, 0)
	second := place(c, NewStarshipPad(c), 128, 0)

	ship := first.Starship()
	require.NotNil(t, ship)
	assert.Nil(t, second.Starship())
	assert.Same(t, first, ship.LaunchPad())
	assert.Nil(t, ship.LandingPad())
	assert.False(t, ship.InFlight())
	assert.Equal(t, 1, holders(c, ship))
}

func TestStarship_LowerOwnerSuppression(t *testing.T) {
	c := NewCity()
	x, y := atCell(0, 3)
	upper := place(c, NewStarshipPad(c), x, y)
	x, y = atCell(8, 7)
	lower := place(c, NewStarshipPad(c), x, y)
	c.SortTiles()

	ship := upper.Starship()
	ship.SetLandingPad(lower)
	require.Equal(t, 2, holders(c, ship))

	upper.Update(0.5)
	assert.Equal(t, 0.0, ship.T())

	lower.Update(0.5)
	assert.InDelta(t, 0.25, ship.T(), 1e-9)

	var canvas recordingCanvas
	upper.Draw(&canvas)
	assert.Equal(t, []string{PadImage}, canvas.sprites)

	canvas = recordingCanvas{}
	lower.Draw(&canvas)
	assert.Equal(t, []string{PadImage, StarshipImage}, canvas.sprites)
}

func TestStarship_LaunchPadLowerIsAuthoritative(t *testing.T) {
	c := NewCity()
	lower := place(c, NewStarshipPad(c), 0, 224)
	upper := place(c, NewStarshipPad(c), 256, 96)

	ship := lower.Starship()
	ship.SetLandingPad(upper)

	upper.Update(1)
	assert.Equal(t, 0.0, ship.T())
	lower.Update(1)
	assert.InDelta(t, StarshipSpeed, ship.T(), 1e-9)
}

func TestStarship_FlightEndToEnd(t *testing.T) {
	c := NewCity()
	first := place(c, NewStarshipPad(c), 0, 0)
	second := place(c, NewStarshipPad(c), 256, 64)
	c.SortTiles()

	ship := first.Starship()
	require.NotNil(t, ship)
	ship.SetLandingPad(second)
	assert.Equal(t, 0.0, ship.T())
	assert.True(t, ship.InFlight())

	flyUntilLanded(t, c, ship, 0.1, 100)

	assert.Nil(t, first.Starship())
	assert.Same(t, ship, second.Starship())
	assert.Same(t, second, ship.LaunchPad())
	assert.Nil(t, ship.LandingPad())
	assert.Equal(t, 1, holders(c, ship))
	assert.Equal(t, Point{256, 64}, ship.Position())
}

func TestStarship_FlightTakesTwoSeconds(t *testing.T) {
	c := NewCity()
	a := place(c, NewStarshipPad(c), 0, 0)
	b := place(c, NewStarshipPad(c), 256, 64)
	ship := a.Starship()
	ship.SetLandingPad(b)

	// Half a second of flight per tick at speed 0.5 is a quarter of the curve.
	for range 3 {
		c.Update(0.5)
	}
	assert.True(t, ship.InFlight())
	assert.InDelta(t, 0.75, ship.T(), 1e-9)

	c.Update(0.5)
	assert.False(t, ship.InFlight())
	assert.Same(t, b, ship.LaunchPad())
}

func TestStarship_ExclusivityOverSequences(t *testing.T) {
	c := NewCity()
	a := place(c, NewStarshipPad(c), 0, 0)
	b := place(c, NewStarshipPad(c), 256, 64)
	d := place(c, NewStarshipPad(c), 0, 192)
	c.SortTiles()
	ship := a.Starship()

	check := func(step string) {
		t.Helper()
		n := holders(c, ship)
		if ship.LandingPad() != nil && ship.LandingPad() != ship.LaunchPad() {
			assert.Equalf(t, 2, n, "after %s", step)
		} else {
			assert.Equalf(t, 1, n, "after %s", step)
		}
	}

	check("construction")
	ship.SetLandingPad(b)
	check("launch a->b")
	ship.SetLandingPad(d)
	check("retarget to d")
	ship.SetLaunchingPad(b)
	check("abort onto b")
	ship.SetLandingPad(a)
	check("launch b->a")
	flyUntilLanded(t, c, ship, 0.25, 50)
	check("landing on a")
	ship.SetLandingPad(a)
	check("hop in place")
	flyUntilLanded(t, c, ship, 0.25, 50)
	check("landing in place")
	assert.Same(t, a, ship.LaunchPad())
}

func TestStarship_Position(t *testing.T) {
	c := NewCity()
	a := place(c, NewStarshipPad(c), 0, 100)
	b := place(c, NewStarshipPad(c), 300, 100)
	ship := a.Starship()

	assert.Equal(t, Point{0, 100}, ship.Position())

	ship.SetLandingPad(b)
	assert.Equal(t, Point{0, 100}, ship.Position())

	b.Update(1)
	mid := ship.Position()
	assert.InDelta(t, 150, mid.X, 1e-9)
	// Both control points are lifted 200px: 0.75 of the lift at t=0.5.
	assert.InDelta(t, 100-0.75*StarshipBezierY, mid.Y, 1e-9)
}

func TestStarship_DrawOffset(t *testing.T) {
	c := NewCity()
	a := place(c, NewStarshipPad(c), 200, 300)

	var canvas recordingCanvas
	a.Draw(&canvas)
	require.Len(t, canvas.points, 2)
	assert.Equal(t, Point{200 + StarshipOffsetX, 300 + StarshipOffsetY}, canvas.points[1])
}

func TestPendingDelete_EmptyPadAlwaysAllowed(t *testing.T) {
	c := NewCity()
	home := place(c, NewStarshipPad(c), 0, 0)
	spare := place(c, NewStarshipPad(c), 128, 0)

	require.NoError(t, c.DeleteItem(spare))
	assert.Equal(t, 1, c.Len())
	assert.NotNil(t, home.Starship())
}

func TestPendingDelete_HandsStarshipToEmptyPad(t *testing.T) {
	c := NewCity()
	home := place(c, NewStarshipPad(c), 0, 0)
	spare := place(c, NewStarshipPad(c), 128, 64)
	c.SortTiles()
	ship := home.Starship()

	require.NoError(t, c.DeleteItem(home))

	assert.Equal(t, 1, c.Len())
	assert.Nil(t, home.Starship())
	assert.Same(t, ship, spare.Starship())
	assert.Same(t, spare, ship.LaunchPad())
	assert.Equal(t, 1, holders(c, ship))
}

func TestPendingDelete_FirstEmptyPadWins(t *testing.T) {
	c := NewCity()
	home := place(c, NewStarshipPad(c), 0, 0)
	first := place(c, NewStarshipPad(c), 0, 64)
	place(c, NewStarshipPad(c), 0, 128)
	c.SortTiles()
	ship := home.Starship()

	require.NoError(t, c.DeleteItem(home))
	assert.Same(t, first, ship.LaunchPad())
}

func TestPendingDelete_MidFlightWithEmptyPadAbortsOntoIt(t *testing.T) {
	c := NewCity()
	a := place(c, NewStarshipPad(c), 0, 0)
	b := place(c, NewStarshipPad(c), 256, 64)
	spare := place(c, NewStarshipPad(c), 0, 192)
	c.SortTiles()
	ship := a.Starship()
	ship.SetLandingPad(b)
	b.Update(0.5)

	require.NoError(t, c.DeleteItem(a))

	assert.Nil(t, b.Starship())
	assert.Same(t, ship, spare.Starship())
	assert.False(t, ship.InFlight())
	assert.Equal(t, 1, holders(c, ship))
}

func TestPendingDelete_MidFlightOtherEndKeepsStarship(t *testing.T) {
	for _, deleteLaunch := range []bool{true, false} {
		c := NewCity()
		a := place(c, NewStarshipPad(c), 0, 0)
		b := place(c, NewStarshipPad(c), 256, 64)
		c.SortTiles()
		ship := a.Starship()
		ship.SetLandingPad(b)

		gone, kept := b, a
		if deleteLaunch {
			gone, kept = a, b
		}
		require.NoError(t, c.DeleteItem(gone))

		assert.Same(t, kept, ship.LaunchPad())
		assert.Nil(t, ship.LandingPad())
		assert.Nil(t, gone.Starship())
		assert.Equal(t, 1, holders(c, ship))
	}
}

func TestPendingDelete_SolePadIsVetoed(t *testing.T) {
	c := NewCity()
	place(c, NewLandscape(c), 128, 0)
	home := place(c, NewStarshipPad(c), 0, 0)
	ship := home.Starship()

	err := c.DeleteItem(home)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDeleteVetoed)
	assert.ErrorIs(t, err, ErrStrandedStarship)

	assert.Equal(t, 2, c.Len())
	assert.Same(t, ship, home.Starship())
	assert.Same(t, home, ship.LaunchPad())
}

type dispatchRecorder struct {
	calls []string
}

func (r *dispatchRecorder) VisitBuilding(*Building)       { r.calls = append(r.calls, "building") }
func (r *dispatchRecorder) VisitLandscape(*Landscape)     { r.calls = append(r.calls, "landscape") }
func (r *dispatchRecorder) VisitGarden(*Garden)           { r.calls = append(r.calls, "garden") }
func (r *dispatchRecorder) VisitWater(*Water)             { r.calls = append(r.calls, "water") }
func (r *dispatchRecorder) VisitStarshipPad(*StarshipPad) { r.calls = append(r.calls, "starship-pad") }

func TestAccept_DispatchesOncePerTileInDrawOrder(t *testing.T) {
	c := NewCity()
	place(c, NewStarshipPad(c), 0, 128)
	place(c, NewWater(c), 0, 96)
	place(c, NewGarden(c), 0, 64)
	place(c, NewBuilding(c), 0, 32)
	place(c, NewLandscape(c), 0, 0)
	c.SortTiles()

	var r dispatchRecorder
	c.Accept(&r)
	assert.Equal(t, []string{"landscape", "building", "garden", "water", "starship-pad"}, r.calls)

	for i, tl := range c.Tiles() {
		assert.Equal(t, tl.Kind().String(), r.calls[i])
	}
}

func TestNoopVisitor_LeavesCityUnchanged(t *testing.T) {
	c := NewCity()
	pad := place(c, NewStarshipPad(c), 0, 0)
	place(c, NewBuilding(c), 64, 32)
	c.SortTiles()
	before := layout(c)

	c.Accept(NoopVisitor{})

	assert.Equal(t, before, layout(c))
	assert.NotNil(t, pad.Starship())
}

func TestEmptyPadFinder(t *testing.T) {
	c := NewCity()
	home := place(c, NewStarshipPad(c), 0, 0)

	var finder EmptyPadFinder
	c.Accept(&finder)
	assert.False(t, finder.Empty())
	assert.Same(t, home, finder.Pad())

	place(c, NewLandscape(c), 0, 32)
	empty1 := place(c, NewStarshipPad(c), 0, 64)
	place(c, NewStarshipPad(c), 0, 96)

	finder = EmptyPadFinder{}
	c.Accept(&finder)
	assert.True(t, finder.Empty())
	assert.Same(t, empty1, finder.Pad())
}

func TestEmptyPadFinder_NoPads(t *testing.T) {
	c := NewCity()
	place(c, NewGarden(c), 0, 0)

	var finder EmptyPadFinder
	c.Accept(&finder)
	assert.False(t, finder.Empty())
	assert.Nil(t, finder.Pad())
}

func TestStarshipFinder_LastHolderWins(t *testing.T) {
	c := NewCity()
	a := place(c, NewStarshipPad(c), 0, 0)
	b := place(c, NewStarshipPad(c), 256, 64)
	c.SortTiles()

	ship, pad := c.Starship()
	assert.Same(t, a, pad)

	ship.SetLandingPad(b)
	var finder StarshipFinder
	c.Accept(&finder)
	assert.Same(t, ship, finder.Starship())
	assert.Same(t, b, finder.Pad())
}

func TestPadCheck_SingleTile(t *testing.T) {
	c := NewCity()
	pad := NewStarshipPad(c)
	water := NewWater(c)

	var check PadCheck
	pad.Accept(&check)
	assert.True(t, check.IsPad())
	assert.Same(t, pad, check.Pad())

	check = PadCheck{}
	water.Accept(&check)
	assert.False(t, check.IsPad())
	assert.Nil(t, check.Pad())
}
