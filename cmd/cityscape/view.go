package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/subcommands"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/spacehole-rogue/cityscape/internal/config"
	"github.com/spacehole-rogue/cityscape/internal/game"
	"github.com/spacehole-rogue/cityscape/internal/render"
	"github.com/spacehole-rogue/cityscape/internal/render/screen"
	"github.com/spacehole-rogue/cityscape/internal/world"
)

const (
	cellWidth  = 16
	cellHeight = 16

	panelWidth = 22 // right-side legend
	logLines   = 6  // event log rows above the key help
)

// placeKeys maps number keys to the tile kind they place.
var placeKeys = []struct {
	key    ebiten.Key
	kind   world.TileKind
	sprite string
}{
	{ebiten.Key1, world.KindLandscape, world.LandscapeImage},
	{ebiten.Key2, world.KindBuilding, ""},
	{ebiten.Key3, world.KindGarden, world.GardenImage},
	{ebiten.Key4, world.KindWater, world.WaterImage},
	{ebiten.Key5, world.KindStarshipPad, world.PadImage},
}

// Game is the Ebitengine game. It owns rendering and input; the city lives
// in sim.
type Game struct {
	canvas *render.CellCanvas
	grid   *screen.GridRenderer
	buffer *render.CellBuffer
	sim    *game.Sim
	file   string
	title  string

	width, height int
	cols, rows    int
	mapRows       int
}

func NewGame(sim *game.Sim, file string, win config.WindowConfig) *Game {
	cols := win.Width / cellWidth
	rows := win.Height / cellHeight
	buffer := render.NewCellBuffer(cols, rows)

	return &Game{
		canvas:  render.NewCellCanvas(buffer, 0, 0),
		grid:    screen.NewGridRenderer(screen.NewFontAtlas(), cellWidth, cellHeight),
		buffer:  buffer,
		sim:     sim,
		file:    file,
		title:   win.Title,
		width:   win.Width,
		height:  win.Height,
		cols:    cols,
		rows:    rows,
		mapRows: rows - logLines - 3,
	}
}

// origin returns the cell holding world pixel (0, 0) so that the cursor
// stays centred in the map area.
func (g *Game) origin() (int, int) {
	x, y := g.sim.CursorPos()
	centerX := (g.cols - panelWidth) / 2
	centerY := 2 + (g.mapRows-2)/2
	return centerX - x/world.GridSpacing, centerY - y/world.GridSpacing
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	dx, dy := 0, 0
	if inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		dy = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) || inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		dy = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) || inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		dx = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) || inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		dx = 1
	}
	if dx != 0 || dy != 0 {
		g.sim.MoveCursor(dx, dy)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		ox, oy := g.origin()
		g.sim.SetCursor((mx/cellWidth-ox)*world.GridSpacing, (my/cellHeight-oy)*world.GridSpacing)
	}

	for _, pk := range placeKeys {
		if inpututil.IsKeyJustPressed(pk.key) {
			g.sim.Place(pk.kind)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) || inpututil.IsKeyJustPressed(ebiten.KeyDelete) {
		g.sim.DeleteAtCursor()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.sim.MoveToFrontAtCursor()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.sim.LaunchToCursor()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := g.sim.City.SaveFile(g.file); err != nil {
			g.sim.Log.Add(fmt.Sprintf("Save failed: %v", err), game.EventRefused)
		} else {
			g.sim.Log.Add("Saved "+g.file+".", game.EventInfo)
		}
	}

	g.sim.Tick()
	g.drawScreen()
	return nil
}

func (g *Game) drawScreen() {
	buf := g.buffer
	buf.Clear()

	ox, oy := g.origin()
	g.canvas.OriginX, g.canvas.OriginY = ox, oy
	g.canvas.Reset()
	g.sim.City.Draw(g.canvas)

	// Keep the map inside its band.
	for y := 0; y < 2; y++ {
		buf.ClearRow(y)
	}
	for y := g.mapRows; y < g.rows; y++ {
		buf.ClearRow(y)
	}
	for y := 0; y < g.rows; y++ {
		for x := g.cols - panelWidth; x < g.cols; x++ {
			buf.Set(x, y, ' ', render.ColorBlack, render.ColorBlack)
		}
	}

	cx, cy := g.sim.CursorPos()
	col, row := cx/world.GridSpacing+ox, cy/world.GridSpacing+oy
	buf.Set(col-2, row, '[', render.ColorWhite, render.ColorBlack)
	buf.Set(col+2, row, ']', render.ColorWhite, render.ColorBlack)

	buf.WriteString(2, 0, g.title, render.ColorWhite, render.ColorBlack)
	buf.WriteString(20, 0, fmt.Sprintf("[ %s ]", g.file), render.ColorLightCyan, render.ColorBlack)

	info := g.sim.Describe()
	if info == "" {
		info = "Empty ground"
	}
	buf.WriteString(2, 1, fmt.Sprintf("%s  [%d,%d]", info, cx, cy), render.ColorYellow, render.ColorBlack)

	px := g.cols - panelWidth + 1
	buf.WriteString(px, 3, "Place:", render.ColorLightCyan, render.ColorBlack)
	for i, pk := range placeKeys {
		style := render.StyleFor(pk.sprite)
		buf.Set(px+1, 4+i, style.Glyph, style.FG, style.BG)
		buf.WriteString(px+3, 4+i, fmt.Sprintf("%d %s", i+1, pk.kind), render.ColorLightGray, render.ColorBlack)
	}

	buf.WriteString(px, 10, "--- City ---", render.ColorLightCyan, render.ColorBlack)
	buf.WriteString(px, 11, fmt.Sprintf("Tiles     %d", g.sim.City.Len()), render.ColorLightGray, render.ColorBlack)
	buf.WriteString(px, 12, fmt.Sprintf("Buildings %d", g.sim.City.BuildingCount()), render.ColorLightGray, render.ColorBlack)
	if ship, pad := g.sim.City.Starship(); ship != nil {
		state, clr := "docked", uint8(render.ColorLightGreen)
		if ship.InFlight() {
			state, clr = fmt.Sprintf("flying %3.0f%%", ship.T()*100), render.ColorYellow
		}
		buf.WriteString(px, 13, "Starship "+state, clr, render.ColorBlack)
		buf.WriteString(px, 14, fmt.Sprintf(" at %d,%d", pad.X(), pad.Y()), render.ColorDarkGray, render.ColorBlack)
	}

	logRow := g.mapRows + 1
	buf.WriteString(2, logRow, "--- Events ---", render.ColorLightCyan, render.ColorBlack)
	for i, ev := range g.sim.Log.Recent(logLines) {
		buf.WriteString(2, logRow+1+i, ev.Text, eventColor(ev.Kind), render.ColorBlack)
	}

	buf.WriteString(2, g.rows-1, "WASD: Move  1-5: Place  X: Delete  F: Front  L: Launch  F5: Save  ESC: Quit",
		render.ColorDarkGray, render.ColorBlack)
}

func eventColor(k game.EventKind) uint8 {
	switch k {
	case game.EventRefused:
		return render.ColorLightRed
	case game.EventWarning:
		return render.ColorYellow
	case game.EventFlight:
		return render.ColorLightGreen
	default:
		return render.ColorCyan
	}
}

func (g *Game) Draw(dst *ebiten.Image) {
	g.grid.Draw(dst, g.buffer)
	g.grid.DrawFloating(dst, g.canvas.Floating)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

type viewCmd struct {
	cityFile string
}

func (c *viewCmd) Name() string     { return "view" }
func (c *viewCmd) Synopsis() string { return "open the city editor window" }
func (c *viewCmd) Usage() string {
	return "cityscape view [-i <city.xml>]\n"
}
func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cityFile, "i", "", "City file path (default from config city.file)")
}

func (c *viewCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	log, err := setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	path := cityPath(c.cityFile)
	city, err := loadCity(path, log)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("file", path).Msg("no city file yet, starting from the sample city")
		city, err = loadSample(log)
	}
	if err != nil {
		log.Error().Err(err).Msg("load failed")
		return subcommands.ExitFailure
	}

	return runView(city, path, log)
}

func runView(city *world.City, path string, log zerolog.Logger) subcommands.ExitStatus {
	win := config.Window()
	sim := game.NewSim(city, config.GetInt("sim.ticksPerSecond"), log)

	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.GetInt("sim.ticksPerSecond"))

	if err := ebiten.RunGame(NewGame(sim, path, win)); err != nil {
		log.Error().Err(err).Msg("window closed with error")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
