// Package storage keeps saved cities in a SQLite database.
//
// A city is stored as the same node tree the XML codec writes: one row per
// city and one row per top-level child, with the child's attributes in a
// JSON column.
package storage

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/spacehole-rogue/cityscape/internal/world"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrCityNotFound is returned when no city is stored under a name.
var ErrCityNotFound = errors.New("city not found")

// CityRecord is one saved city.
type CityRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	Root      string `gorm:"not null;default:city"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tiles     []TileRecord `gorm:"foreignKey:CityID;constraint:OnDelete:CASCADE"`
}

func (CityRecord) TableName() string { return "cities" }

// TileRecord is one child node of a saved city, in document order.
type TileRecord struct {
	ID     uint              `gorm:"primaryKey"`
	CityID uint              `gorm:"index;not null"`
	Seq    int               `gorm:"not null"`
	Tag    string            `gorm:"not null"`
	Attrs  datatypes.JSONMap `gorm:"not null"`
}

func (TileRecord) TableName() string { return "tiles" }

// Store is a city database.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open opens or creates the database at path and migrates the schema.
// An empty path opens a private in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open city store %q: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// Every pooled connection to :memory: would see its own empty database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&CityRecord{}, &TileRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate city store: %w", err)
	}

	log.Debug().Str("path", dsn).Msg("city store ready")
	return &Store{db: db, log: log}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save stores root under name, replacing any city already saved there.
func (s *Store) Save(name string, root *world.Element) error {
	rec := CityRecord{Name: name, Root: root.Tag}
	for i, kid := range root.Kids {
		attrs := datatypes.JSONMap{}
		for _, a := range kid.Attrs {
			attrs[a.Name.Local] = a.Value
		}
		rec.Tiles = append(rec.Tiles, TileRecord{Seq: i, Tag: kid.Tag, Attrs: attrs})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.delete(tx, name); err != nil && !errors.Is(err, ErrCityNotFound) {
			return err
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return fmt.Errorf("save city %q: %w", name, err)
	}

	s.log.Info().Str("city", name).Int("tiles", len(rec.Tiles)).Msg("city stored")
	return nil
}

// Load returns the node tree stored under name. Attributes come back sorted
// by key.
func (s *Store) Load(name string) (*world.Element, error) {
	var rec CityRecord
	err := s.db.
		Preload("Tiles", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Where("name = ?", name).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load city %q: %w", name, ErrCityNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load city %q: %w", name, err)
	}

	root := world.NewElement(rec.Root)
	for _, t := range rec.Tiles {
		kid := root.AddChild(t.Tag)
		for _, key := range slices.Sorted(maps.Keys(t.Attrs)) {
			kid.SetAttr(key, fmt.Sprint(t.Attrs[key]))
		}
	}
	return root, nil
}

// SaveCity stores the tiles of c under name.
func (s *Store) SaveCity(name string, c *world.City) error {
	root := world.NewElement("city")
	c.Save(root)
	return s.Save(name, root)
}

// LoadCity replaces the contents of c with the city stored under name and
// returns the number of tiles skipped for an unknown type.
// c is left untouched if the city cannot be read.
func (s *Store) LoadCity(name string, c *world.City) (int, error) {
	root, err := s.Load(name)
	if err != nil {
		return 0, err
	}
	return c.Load(root), nil
}

// Names lists the stored cities alphabetically.
func (s *Store) Names() ([]string, error) {
	var names []string
	if err := s.db.Model(&CityRecord{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return names, nil
}

// Delete removes the city stored under name.
func (s *Store) Delete(name string) error {
	if err := s.delete(s.db, name); err != nil {
		return fmt.Errorf("delete city %q: %w", name, err)
	}
	s.log.Info().Str("city", name).Msg("city deleted")
	return nil
}

func (s *Store) delete(tx *gorm.DB, name string) error {
	var rec CityRecord
	err := tx.Where("name = ?", name).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCityNotFound
	}
	if err != nil {
		return err
	}
	if err := tx.Where("city_id = ?", rec.ID).Delete(&TileRecord{}).Error; err != nil {
		return err
	}
	return tx.Delete(&rec).Error
}
