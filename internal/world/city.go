package world

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spacehole-rogue/cityscape/internal/report"
)

var (
	ErrNotPad      = errors.New("tile is not a starship pad")
	ErrNoStarship  = errors.New("city has no starship")
	ErrInFlight    = errors.New("starship is already in flight")
	ErrPadOccupied = errors.New("pad already holds the starship")
)

// cell is an adjacency index key.
type cell struct {
	x, y int
}

// City owns the tiles of a city in draw order.
//
// Tiles are drawn first to last, so later tiles overlap earlier ones and win
// hit tests. The adjacency index is rebuilt wholesale by BuildAdjacencies (or
// SortTiles) and is stale after any add, move or delete until then.
type City struct {
	tiles     []Tile
	adjacency map[cell]Tile
	log       zerolog.Logger
}

// NewCity creates an empty city that logs nowhere.
func NewCity() *City {
	return &City{
		adjacency: make(map[cell]Tile),
		log:       zerolog.Nop(),
	}
}

// SetLogger sets the logger for hand-offs, vetoes and load problems.
func (c *City) SetLogger(log zerolog.Logger) { c.log = log }

// Len returns the number of tiles.
func (c *City) Len() int { return len(c.tiles) }

// Tiles returns the tiles in draw order. The slice is a copy.
func (c *City) Tiles() []Tile { return slices.Clone(c.tiles) }

// Add appends tile to the city. Order and index are not refreshed.
func (c *City) Add(t Tile) {
	c.tiles = append(c.tiles, t)
}

// Clear removes every tile.
func (c *City) Clear() {
	c.tiles = nil
	clear(c.adjacency)
}

// HitTest returns the topmost tile containing pixel (x, y), or nil.
func (c *City) HitTest(x, y int) Tile {
	for i := len(c.tiles) - 1; i >= 0; i-- {
		if c.tiles[i].HitTest(x, y) {
			return c.tiles[i]
		}
	}
	return nil
}

// MoveToFront moves t to the end of the draw order.
func (c *City) MoveToFront(t Tile) {
	if i := slices.Index(c.tiles, t); i >= 0 {
		c.tiles = slices.Delete(c.tiles, i, i+1)
	}
	c.tiles = append(c.tiles, t)
}

// DeleteItem removes t unless its PendingDelete vetoes the removal.
func (c *City) DeleteItem(t Tile) error {
	if err := t.PendingDelete(); err != nil {
		c.log.Warn().Err(err).Str("type", t.Kind().String()).Msg("delete refused")
		return err
	}
	if i := slices.Index(c.tiles, t); i >= 0 {
		c.tiles = slices.Delete(c.tiles, i, i+1)
	}
	return nil
}

// Update advances every tile by elapsed seconds, in draw order.
func (c *City) Update(elapsed float64) {
	for _, t := range c.tiles {
		t.Update(elapsed)
	}
}

// Draw draws every tile in draw order.
func (c *City) Draw(canvas Canvas) {
	for _, t := range c.tiles {
		t.Draw(canvas)
	}
}

// Accept hands v to every tile in draw order.
func (c *City) Accept(v Visitor) {
	for _, t := range c.tiles {
		t.Accept(v)
	}
}

// SortTiles restores draw order, rows top to bottom and right to left within
// a row, then rebuilds the adjacency index.
func (c *City) SortTiles() {
	slices.SortStableFunc(c.tiles, func(a, b Tile) int {
		if a.Y() != b.Y() {
			return a.Y() - b.Y()
		}
		return b.X() - a.X()
	})
	c.BuildAdjacencies()
}

// BuildAdjacencies rebuilds the cell index from the current tile locations.
func (c *City) BuildAdjacencies() {
	clear(c.adjacency)
	for _, t := range c.tiles {
		c.adjacency[cell{t.X() / GridSpacing, t.Y() / GridSpacing}] = t
	}
}

// GetAdjacent returns the tile next to t in direction (dx, dy), or nil.
//
//	-1 -1 upper left    1 -1 upper right
//	-1  1 lower left    1  1 lower right
//
// Columns step by two cells because the isometric pitch is twice as wide as
// it is tall.
func (c *City) GetAdjacent(t Tile, dx, dy int) Tile {
	at := cell{t.X()/GridSpacing + dx*2, t.Y()/GridSpacing + dy}
	return c.adjacency[at]
}

// BuildingCount counts the buildings in the city.
func (c *City) BuildingCount() int {
	var counter BuildingCounter
	c.Accept(&counter)
	return counter.Count()
}

// Starship returns the city's starship and a pad holding it, or nils.
func (c *City) Starship() (*Starship, *StarshipPad) {
	var finder StarshipFinder
	c.Accept(&finder)
	return finder.Starship(), finder.Pad()
}

// LaunchStarship sends the resting starship to the pad target.
func (c *City) LaunchStarship(target Tile) error {
	var check PadCheck
	target.Accept(&check)
	if !check.IsPad() {
		return fmt.Errorf("launch to %s at (%d, %d): %w", target.Kind(), target.X(), target.Y(), ErrNotPad)
	}

	ship, _ := c.Starship()
	switch {
	case ship == nil:
		return ErrNoStarship
	case ship.InFlight():
		return ErrInFlight
	case ship.LaunchPad() == check.Pad():
		return ErrPadOccupied
	}

	ship.SetLandingPad(check.Pad())
	c.log.Info().
		Int("fromX", ship.LaunchPad().X()).Int("fromY", ship.LaunchPad().Y()).
		Int("toX", target.X()).Int("toY", target.Y()).
		Msg("starship launched")
	return nil
}

// GenerateReport asks every tile, in draw order, for its report line.
func (c *City) GenerateReport() *report.Aggregator {
	agg := report.NewAggregator()
	for _, t := range c.tiles {
		entry := report.NewEntry(fmt.Sprintf("%s@(%d,%d)", t.Kind(), t.X(), t.Y()))
		t.Report(entry)
		agg.Add(entry)
	}
	return agg
}
