package game

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spacehole-rogue/cityscape/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T) *Sim {
	t.Helper()
	return NewSim(world.NewCity(), 10, zerolog.Nop())
}

func lastEvent(s *Sim) Event {
	return s.Log.Recent(1)[0]
}

func TestNewSim_ReportsCity(t *testing.T) {
	s := newSim(t)
	assert.Equal(t, "No starship pad in this city.", lastEvent(s).Text)
	assert.InDelta(t, 0.1, s.TickSeconds(), 1e-12)

	x, y := s.CursorPos()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestSim_CursorMovesOnGrid(t *testing.T) {
	s := newSim(t)

	s.MoveCursor(1, 1)
	x, y := s.CursorPos()
	assert.Equal(t, 2*world.GridSpacing, x)
	assert.Equal(t, world.GridSpacing, y)

	s.MoveCursor(-5, -5)
	x, y = s.CursorPos()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	s.SetCursor(100, 70)
	x, y = s.CursorPos()
	assert.Equal(t, 96, x)
	assert.Equal(t, 64, y)
}

func TestSim_PlaceAndDescribe(t *testing.T) {
	s := newSim(t)
	assert.Empty(t, s.Describe())

	s.Place(world.KindStarshipPad)
	assert.Equal(t, "Starship Pad - starship docked", s.Describe())

	s.SetCursor(128, 64)
	s.Place(world.KindBuilding)
	assert.Equal(t, "Building - ", s.Describe())
	assert.Equal(t, 2, s.City.Len())
	assert.Equal(t, 2, s.Report().Len())
	assert.Equal(t, "Placed building at (128, 64).", lastEvent(s).Text)
}

func TestSim_DeleteLastPadIsRefused(t *testing.T) {
	s := newSim(t)
	s.Place(world.KindStarshipPad)

	err := s.DeleteAtCursor()
	require.ErrorIs(t, err, world.ErrStrandedStarship)
	assert.Equal(t, 1, s.City.Len())
	assert.Equal(t, Event{"Cannot remove the last pad holding the starship.", EventRefused}, lastEvent(s))

	s.SetCursor(256, 128)
	s.Place(world.KindStarshipPad)
	s.SetCursor(0, 0)
	require.NoError(t, s.DeleteAtCursor())
	assert.Equal(t, 1, s.City.Len())

	ship, pad := s.City.Starship()
	require.NotNil(t, ship)
	assert.Equal(t, 256, pad.X())
}

func TestSim_DeleteNothing(t *testing.T) {
	s := newSim(t)
	assert.NoError(t, s.DeleteAtCursor())
}

func TestSim_MoveToFrontAtCursor(t *testing.T) {
	s := newSim(t)
	s.Place(world.KindWater)
	s.SetCursor(0, 32)
	s.Place(world.KindGarden)

	// (0, 16) lies inside both diamonds.
	assert.Equal(t, world.KindGarden, s.City.HitTest(0, 16).Kind())

	// (32, 0) lies inside the water only.
	s.SetCursor(32, 0)
	s.MoveToFrontAtCursor()
	assert.Equal(t, world.KindWater, s.City.HitTest(0, 16).Kind())
}

func TestSim_FlightLogsLanding(t *testing.T) {
	s := newSim(t)
	s.Place(world.KindStarshipPad)
	s.SetCursor(256, 64)
	s.Place(world.KindStarshipPad)

	require.NoError(t, s.LaunchToCursor())
	assert.Equal(t, EventFlight, lastEvent(s).Kind)
	assert.ErrorIs(t, s.LaunchToCursor(), world.ErrInFlight)

	// Two seconds of flight at ten ticks a second.
	var seen []uint64
	s.Run(20, func(tick uint64) { seen = append(seen, tick) })
	assert.Len(t, seen, 20)
	assert.Equal(t, uint64(20), s.Ticks)

	ship, _ := s.City.Starship()
	require.NotNil(t, ship)
	if ship.InFlight() {
		s.Tick()
	}
	assert.False(t, ship.InFlight())
	assert.Equal(t, 256, ship.LaunchPad().X())
	assert.Equal(t, Event{"Starship landed at (256, 64).", EventFlight}, lastEvent(s))
}

func TestSim_LaunchOntoNonPad(t *testing.T) {
	s := newSim(t)
	s.Place(world.KindStarshipPad)
	s.SetCursor(256, 64)

	assert.ErrorIs(t, s.LaunchToCursor(), world.ErrNotPad)

	s.Place(world.KindLandscape)
	assert.ErrorIs(t, s.LaunchToCursor(), world.ErrNotPad)
	assert.Equal(t, EventRefused, lastEvent(s).Kind)
}

func TestEventLog_BoundedAndWrapped(t *testing.T) {
	var buf bytes.Buffer
	l := NewEventLog(3, 10, zerolog.New(&buf))

	l.Add("one", EventInfo)
	l.Add("two three four", EventWarning)
	assert.Equal(t, []Event{{"one", EventInfo}, {"two three", EventWarning}, {"four", EventWarning}}, l.Events)

	l.Add("five", EventInfo)
	assert.Equal(t, []Event{{"two three", EventWarning}, {"four", EventWarning}, {"five", EventInfo}}, l.Events)
	assert.Len(t, l.Recent(10), 3)
	assert.Equal(t, "five", l.Recent(1)[0].Text)

	assert.Contains(t, buf.String(), `"level":"warn","message":"two three four"`)
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{""}, wrapText("   ", 10))
	assert.Equal(t, []string{"short"}, wrapText("short", 10))
	assert.Equal(t, []string{"a", "verylongword", "b"}, wrapText("a verylongword b", 5))
}
