package data

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/spencer-p/daylightchart/pkg/sunset"
)

var ErrNotFound = errors.New("location not found")

// Location is a saved place.
type Location struct {
	gorm.Model
	Name string  `gorm:"uniqueIndex;not null" json:"name"`
	Lat  float64 `json:"latitude"`
	Long float64 `json:"longitude"`
	Zone string  `json:"zone"`
}

// Place loads the location's time zone.
func (l Location) Place() (sunset.Place, error) {
	return sunset.LoadPlace(l.Name, l.Lat, l.Long, l.Zone)
}

func FromPlace(p sunset.Place) Location {
	return Location{
		Name: p.Name,
		Lat:  p.Lat,
		Long: p.Long,
		Zone: p.Location.String(),
	}
}

// PostgresConfig names a database in the same terms as the libpq environment.
type PostgresConfig struct {
	Host     string `envconfig:"PGHOST"`
	Port     string `envconfig:"PGPORT"`
	User     string `envconfig:"PGUSER" default:"postgres"`
	Password string `envconfig:"PGPASSWORD"`
	DBName   string `envconfig:"PGDATABASE" default:"daylightchart"`
}

// DSN renders c as a key/value connection string. Empty fields are left out
// so the driver can fall back to its defaults.
func (c PostgresConfig) DSN() string {
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", k, v))
		}
	}
	add("host", c.Host)
	add("user", c.User)
	add("password", c.Password)
	add("dbname", c.DBName)
	add("port", c.Port)
	parts = append(parts, "sslmode=disable", "TimeZone=UTC")
	return strings.Join(parts, " ")
}

// Store keeps saved locations in a database.
type Store struct {
	db *gorm.DB
}

// OpenPostgres connects to dsn and migrates the schema.
func OpenPostgres(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewStore(db)
}

// NewStore wraps an open database.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Location{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// List returns saved locations, most recently saved first.
func (s *Store) List() ([]Location, error) {
	var locs []Location
	if tx := s.db.Order("updated_at desc").Find(&locs); tx.Error != nil {
		return nil, tx.Error
	}
	return locs, nil
}

// Get finds a location by name.
func (s *Store) Get(name string) (Location, error) {
	var loc Location
	tx := s.db.Where("name = ?", name).First(&loc)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return loc, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return loc, tx.Error
}

// Save adds loc, replacing any saved location with the same name.
func (s *Store) Save(loc Location) (Location, error) {
	if _, err := loc.Place(); err != nil {
		return loc, err
	}
	existing, err := s.Get(loc.Name)
	switch {
	case err == nil:
		loc.Model = existing.Model
	case !errors.Is(err, ErrNotFound):
		return loc, err
	}
	if tx := s.db.Save(&loc); tx.Error != nil {
		return loc, fmt.Errorf("failed to save %q: %w", loc.Name, tx.Error)
	}
	return loc, nil
}

// Delete removes the location called name. The row is dropped outright so
// the name can be saved again.
func (s *Store) Delete(name string) error {
	tx := s.db.Unscoped().Where("name = ?", name).Delete(&Location{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return nil
}
