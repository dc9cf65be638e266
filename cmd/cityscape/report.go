package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/spacehole-rogue/cityscape/internal/report"
)

type reportCmd struct {
	cityFile string
}

func (c *reportCmd) Name() string     { return "report" }
func (c *reportCmd) Synopsis() string { return "print one report line per tile, grouped in bins" }
func (c *reportCmd) Usage() string {
	return "cityscape report [-i <city.xml>]\n"
}
func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cityFile, "i", "", "City file path (default from config city.file)")
}

func (c *reportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
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

	writeReport(os.Stdout, city.GenerateReport())
	fmt.Printf("%d buildings\n", city.BuildingCount())
	return subcommands.ExitSuccess
}

func writeReport(w io.Writer, agg *report.Aggregator) {
	for i, bin := range agg.Bins() {
		fmt.Fprintf(w, "--- bin %d (%d/%d) ---\n", i+1, bin.Len(), report.BinSize)
		for _, e := range bin.Entries() {
			fmt.Fprintf(w, "%-24s %s\n", e.Subject(), e.Text())
		}
	}
}
