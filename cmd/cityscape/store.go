package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/spacehole-rogue/cityscape/internal/config"
	"github.com/spacehole-rogue/cityscape/internal/storage"
	"github.com/spacehole-rogue/cityscape/internal/world"
)

func openStore(dbPath string, log zerolog.Logger) (*storage.Store, error) {
	if dbPath == "" {
		dbPath = config.GetString("storage.path")
	}
	return storage.Open(dbPath, log)
}

func cityName(name string) string {
	if name == "" {
		return config.GetString("city.name")
	}
	return name
}

type storeCmd struct {
	cityFile string
	dbPath   string
	name     string
	list     bool
}

func (c *storeCmd) Name() string     { return "store" }
func (c *storeCmd) Synopsis() string { return "save a city file into the city database" }
func (c *storeCmd) Usage() string {
	return "cityscape store [-i <city.xml>] [-db <path>] [-name <city>] | store -list\n"
}
func (c *storeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cityFile, "i", "", "City file path (default from config city.file)")
	f.StringVar(&c.dbPath, "db", "", "Database path (default from config storage.path)")
	f.StringVar(&c.name, "name", "", "Name to store the city under (default from config city.name)")
	f.BoolVar(&c.list, "list", false, "List stored cities instead")
}

func (c *storeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	log, err := setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	store, err := openStore(c.dbPath, log)
	if err != nil {
		log.Error().Err(err).Msg("open store failed")
		return subcommands.ExitFailure
	}
	defer store.Close()

	if c.list {
		names, err := store.Names()
		if err != nil {
			log.Error().Err(err).Msg("list failed")
			return subcommands.ExitFailure
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return subcommands.ExitSuccess
	}

	path := cityPath(c.cityFile)
	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Msg("open city failed")
		return subcommands.ExitFailure
	}
	defer f.Close()

	root, err := world.ReadXML(f)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("read city failed")
		return subcommands.ExitFailure
	}
	if err := store.Save(cityName(c.name), root); err != nil {
		log.Error().Err(err).Msg("store failed")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type restoreCmd struct {
	outputFile string
	dbPath     string
	name       string
}

func (c *restoreCmd) Name() string     { return "restore" }
func (c *restoreCmd) Synopsis() string { return "write a stored city back to a city file" }
func (c *restoreCmd) Usage() string {
	return "cityscape restore [-o <city.xml>] [-db <path>] [-name <city>]\n"
}
func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputFile, "o", "", "City file path (default from config city.file)")
	f.StringVar(&c.dbPath, "db", "", "Database path (default from config storage.path)")
	f.StringVar(&c.name, "name", "", "Stored city name (default from config city.name)")
}

func (c *restoreCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	log, err := setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	store, err := openStore(c.dbPath, log)
	if err != nil {
		log.Error().Err(err).Msg("open store failed")
		return subcommands.ExitFailure
	}
	defer store.Close()

	city := world.NewCity()
	city.SetLogger(log)
	skipped, err := store.LoadCity(cityName(c.name), city)
	if err != nil {
		log.Error().Err(err).Msg("restore failed")
		return subcommands.ExitFailure
	}
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("stored city has unknown tile types")
	}

	out := cityPath(c.outputFile)
	if err := city.SaveFile(out); err != nil {
		log.Error().Err(err).Msg("save failed")
		return subcommands.ExitFailure
	}
	log.Info().Str("file", out).Int("tiles", city.Len()).Msg("city restored")
	return subcommands.ExitSuccess
}
