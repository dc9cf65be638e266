package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/spacehole-rogue/cityscape/assets"
	"github.com/spacehole-rogue/cityscape/internal/config"
	"github.com/spacehole-rogue/cityscape/internal/logging"
	"github.com/spacehole-rogue/cityscape/internal/world"
)

var configDir = flag.String("config", ".", "directory holding cityscape.json and .env")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&viewCmd{}, "")
	subcommands.Register(&reportCmd{}, "")
	subcommands.Register(&simulateCmd{}, "")
	subcommands.Register(&snapshotCmd{}, "")
	subcommands.Register(&storeCmd{}, "storage")
	subcommands.Register(&restoreCmd{}, "storage")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}

// setup loads configuration and builds the logger every command uses.
func setup() (zerolog.Logger, error) {
	if err := config.Load(*configDir); err != nil {
		return zerolog.Nop(), err
	}
	level := config.GetString("logLevel")
	if config.GetString("logFormat") == "json" {
		return logging.NewJSON(os.Stderr, level), nil
	}
	return logging.New(os.Stderr, level), nil
}

// cityPath returns path, or the configured city file when path is empty.
func cityPath(path string) string {
	if path == "" {
		return config.GetString("city.file")
	}
	return path
}

// loadCity reads a city document, logging tiles skipped for an unknown type.
func loadCity(path string, log zerolog.Logger) (*world.City, error) {
	c := world.NewCity()
	c.SetLogger(log)
	if err := c.LoadFile(path); err != nil {
		return nil, err
	}
	log.Info().Str("file", path).Int("tiles", c.Len()).Msg("city loaded")
	return c, nil
}

// loadSample reads the bundled sample city.
func loadSample(log zerolog.Logger) (*world.City, error) {
	f, err := assets.Cities.Open("cities/sample.xml")
	if err != nil {
		return nil, fmt.Errorf("load sample city: %w", err)
	}
	defer f.Close()

	root, err := world.ReadXML(f)
	if err != nil {
		return nil, fmt.Errorf("load sample city: %w", err)
	}
	c := world.NewCity()
	c.SetLogger(log)
	c.Load(root)
	return c, nil
}

// parsePoint parses "x,y" in pixels.
func parsePoint(s string) (int, int, error) {
	var x, y int
	if _, err := fmt.Sscanf(s, "%d,%d", &x, &y); err != nil {
		return 0, 0, fmt.Errorf("invalid point %q, want x,y: %w", s, err)
	}
	return x, y, nil
}
