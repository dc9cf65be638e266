package game

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"github.com/rs/zerolog"
	"github.com/spacehole-rogue/cityscape/internal/report"
	"github.com/spacehole-rogue/cityscape/internal/world"
)

const (
	logSize  = 50
	logWidth = 55
)

// Position is a pixel location snapped to the adjacency grid.
type Position struct {
	X, Y int
}

// Cursor tags the editor cursor entity.
type Cursor struct{}

// Sim drives a city at a fixed tick rate and applies editor commands.
// It owns the city and the cursor.
type Sim struct {
	ECS   *ecs.World
	City  *world.City
	Log   *EventLog
	Ticks uint64

	tickSeconds float64
	cursor      ecs.Entity
	posMap      *ecs.Map[Position]
	logger      zerolog.Logger
}

// NewSim wraps city in a simulation stepping ticksPerSecond times a second.
func NewSim(city *world.City, ticksPerSecond int, logger zerolog.Logger) *Sim {
	if ticksPerSecond <= 0 {
		ticksPerSecond = 60
	}

	w := ecs.NewWorld(16)
	posMap := ecs.NewMap[Position](w)
	cursor := ecs.NewMap2[Position, Cursor](w).NewEntity(&Position{}, &Cursor{})

	city.SetLogger(logger)

	log := NewEventLog(logSize, logWidth, logger)
	log.Add(fmt.Sprintf("City loaded: %d tiles, %d buildings.", city.Len(), city.BuildingCount()), EventInfo)
	if ship, pad := city.Starship(); ship == nil {
		log.Add("No starship pad in this city.", EventWarning)
	} else {
		log.Add(fmt.Sprintf("Starship docked at (%d, %d).", pad.X(), pad.Y()), EventFlight)
	}

	return &Sim{
		ECS:         w,
		City:        city,
		Log:         log,
		tickSeconds: 1 / float64(ticksPerSecond),
		cursor:      cursor,
		posMap:      posMap,
		logger:      logger,
	}
}

// TickSeconds returns the simulated time of one tick.
func (s *Sim) TickSeconds() float64 { return s.tickSeconds }

// CursorPos returns the cursor location in pixels.
func (s *Sim) CursorPos() (int, int) {
	pos := s.posMap.Get(s.cursor)
	return pos.X, pos.Y
}

// SetCursor moves the cursor to the grid cell containing (x, y).
func (s *Sim) SetCursor(x, y int) {
	pos := s.posMap.Get(s.cursor)
	pos.X = max(x, 0) / world.GridSpacing * world.GridSpacing
	pos.Y = max(y, 0) / world.GridSpacing * world.GridSpacing
}

// MoveCursor steps the cursor to the neighbouring tile slot in direction
// (dx, dy). Horizontal steps span two cells, matching GetAdjacent.
func (s *Sim) MoveCursor(dx, dy int) {
	x, y := s.CursorPos()
	s.SetCursor(x+dx*2*world.GridSpacing, y+dy*world.GridSpacing)
}

// TileAtCursor returns the topmost tile under the cursor, or nil.
func (s *Sim) TileAtCursor() world.Tile {
	return s.City.HitTest(s.CursorPos())
}

// Describe returns the report line of the tile under the cursor.
func (s *Sim) Describe() string {
	t := s.TileAtCursor()
	if t == nil {
		return ""
	}
	entry := report.NewEntry(t.Kind().String())
	t.Report(entry)
	return entry.Text()
}

// Place adds a new tile of kind at the cursor and restores draw order.
func (s *Sim) Place(kind world.TileKind) world.Tile {
	x, y := s.CursorPos()
	t := world.NewTile(s.City, kind)
	t.SetLocation(x, y)
	s.City.Add(t)
	s.City.SortTiles()
	s.Log.Add(fmt.Sprintf("Placed %s at (%d, %d).", kind, x, y), EventInfo)
	return t
}

// DeleteAtCursor removes the tile under the cursor. A vetoed delete is
// reported in the log and returned.
func (s *Sim) DeleteAtCursor() error {
	t := s.TileAtCursor()
	if t == nil {
		return nil
	}
	if err := s.City.DeleteItem(t); err != nil {
		msg := fmt.Sprintf("Cannot remove %s: %v.", t.Kind(), err)
		if errors.Is(err, world.ErrStrandedStarship) {
			msg = "Cannot remove the last pad holding the starship."
		}
		s.Log.Add(msg, EventRefused)
		return err
	}
	s.City.BuildAdjacencies()
	s.Log.Add(fmt.Sprintf("Removed %s at (%d, %d).", t.Kind(), t.X(), t.Y()), EventInfo)
	return nil
}

// MoveToFrontAtCursor raises the tile under the cursor to the top of the
// draw order.
func (s *Sim) MoveToFrontAtCursor() {
	if t := s.TileAtCursor(); t != nil {
		s.City.MoveToFront(t)
	}
}

// LaunchToCursor sends the starship to the pad under the cursor.
func (s *Sim) LaunchToCursor() error {
	t := s.TileAtCursor()
	if t == nil {
		err := fmt.Errorf("launch: %w", world.ErrNotPad)
		s.Log.Add("Nothing under the cursor to land on.", EventRefused)
		return err
	}
	if err := s.City.LaunchStarship(t); err != nil {
		s.Log.Add(fmt.Sprintf("Launch refused: %v.", err), EventRefused)
		return err
	}
	s.Log.Add(fmt.Sprintf("Starship launched toward (%d, %d).", t.X(), t.Y()), EventFlight)
	return nil
}

// Tick advances the simulation by one step.
func (s *Sim) Tick() {
	s.Ticks++

	ship, _ := s.City.Starship()
	flying := ship != nil && ship.InFlight()

	s.City.Update(s.tickSeconds)

	if flying && !ship.InFlight() {
		pad := ship.LaunchPad()
		s.Log.Add(fmt.Sprintf("Starship landed at (%d, %d).", pad.X(), pad.Y()), EventFlight)
	}
}

// Run advances the simulation by n ticks, calling step after each.
func (s *Sim) Run(n int, step func(tick uint64)) {
	for range n {
		s.Tick()
		if step != nil {
			step(s.Ticks)
		}
	}
}

// Report collects the report of every tile.
func (s *Sim) Report() *report.Aggregator {
	return s.City.GenerateReport()
}
