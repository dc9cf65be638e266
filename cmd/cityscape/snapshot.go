package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/spacehole-rogue/cityscape/internal/config"
	"github.com/spacehole-rogue/cityscape/internal/render"
)

type snapshotCmd struct {
	cityFile   string
	outputFile string
	scale      float64
}

func (c *snapshotCmd) Name() string     { return "snapshot" }
func (c *snapshotCmd) Synopsis() string { return "render the city to a PNG image" }
func (c *snapshotCmd) Usage() string {
	return "cityscape snapshot [-i <city.xml>] [-o <city.png>] [-scale <factor>]\n"
}
func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cityFile, "i", "", "City file path (default from config city.file)")
	f.StringVar(&c.outputFile, "o", "", "Output PNG path (default from config snapshot.file)")
	f.Float64Var(&c.scale, "scale", 0, "Pixel scale (default from config snapshot.scale)")
}

func (c *snapshotCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	log, err := setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	city, err := loadCity(cityPath(c.cityFile), log)
	if err != nil {
		log.Error().Err(err).Msg("load failed")
		return subcommands.ExitFailure
	}

	out := c.outputFile
	if out == "" {
		out = config.GetString("snapshot.file")
	}
	scale := c.scale
	if scale <= 0 {
		scale = config.GetFloat("snapshot.scale")
	}

	if err := render.Snapshot(city, scale, out); err != nil {
		log.Error().Err(err).Str("file", out).Msg("snapshot failed")
		return subcommands.ExitFailure
	}
	log.Info().Str("file", out).Float64("scale", scale).Msg("snapshot written")
	return subcommands.ExitSuccess
}
