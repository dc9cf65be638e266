package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
	"github.com/spacehole-rogue/cityscape/internal/config"
	"github.com/spacehole-rogue/cityscape/internal/game"
)

type simulateCmd struct {
	cityFile   string
	outputFile string
	target     string
	seconds    float64
}

func (c *simulateCmd) Name() string     { return "simulate" }
func (c *simulateCmd) Synopsis() string { return "run the city headless, optionally flying the starship" }
func (c *simulateCmd) Usage() string {
	return "cityscape simulate [-i <city.xml>] [-to <x,y>] [-s <seconds>] [-o <city.xml>]\n"
}
func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cityFile, "i", "", "City file path (default from config city.file)")
	f.StringVar(&c.outputFile, "o", "", "Save the city here afterwards")
	f.StringVar(&c.target, "to", "", "Launch the starship to the pad at pixel x,y first")
	f.Float64Var(&c.seconds, "s", 0, "Simulated seconds (default from config sim.seconds)")
}

func (c *simulateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
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

	tps := config.GetInt("sim.ticksPerSecond")
	sim := game.NewSim(city, tps, log)

	if c.target != "" {
		x, y, err := parsePoint(c.target)
		if err != nil {
			log.Error().Err(err).Msg("bad target")
			return subcommands.ExitUsageError
		}
		sim.SetCursor(x, y)
		if err := sim.LaunchToCursor(); err != nil {
			return subcommands.ExitFailure
		}
	}

	seconds := c.seconds
	if seconds <= 0 {
		seconds = config.GetFloat("sim.seconds")
	}
	ticks := int(seconds / sim.TickSeconds())

	bar := progressbar.NewOptions(ticks,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("simulating"),
		progressbar.OptionShowIts(),
		progressbar.OptionShowCount(),
	)
	sim.Run(ticks, func(uint64) { bar.Add(1) })
	bar.Finish()
	fmt.Fprintln(os.Stderr)

	for _, ev := range sim.Log.Events {
		fmt.Println(ev.Text)
	}
	if ship, pad := city.Starship(); ship != nil {
		state := "docked"
		if ship.InFlight() {
			state = fmt.Sprintf("in flight, t=%.2f", ship.T())
		}
		fmt.Printf("starship at (%d, %d): %s\n", pad.X(), pad.Y(), state)
	}

	if c.outputFile != "" {
		if err := city.SaveFile(c.outputFile); err != nil {
			log.Error().Err(err).Msg("save failed")
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
