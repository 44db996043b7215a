package sunset

import (
	"errors"
	"fmt"
	"time"

	"github.com/spencer-p/daylightchart/pkg/ephemeris"
)

var ErrUnknownZone = errors.New("unknown time zone")

// Place is a named lat/long coordinate on the Earth matched with its time
// zone.
type Place struct {
	Name      string
	Lat, Long float64
	Location  *time.Location
}

var (
	SantaCruz = Place{
		"Santa Cruz",
		36.9741, -122.0308,
		locationOrPanic("America/Los_Angeles"),
	}
)

// LoadPlace builds a place from an IANA zone identifier such as
// "Europe/London".
func LoadPlace(name string, lat, long float64, zoneID string) (Place, error) {
	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		return Place{}, fmt.Errorf("%w %q: %v", ErrUnknownZone, zoneID, err)
	}
	p := Place{Name: name, Lat: lat, Long: long, Location: loc}
	if err := p.Observer(MeanSolarZone{}).Validate(); err != nil {
		return Place{}, err
	}
	return p, nil
}

// Observer places an observer at p whose clocks keep z's standard time.
func (p Place) Observer(z Zone) ephemeris.Observer {
	return ephemeris.Observer{
		Latitude:  p.Lat,
		Longitude: p.Long,
		Offset:    z.StandardOffsetHours(),
	}
}

func (p Place) String() string {
	zone := "UTC"
	if p.Location != nil {
		zone = p.Location.String()
	}
	return fmt.Sprintf("%s (%.4f, %.4f, %s)", p.Name, p.Lat, p.Long, zone)
}

// SunEvents is a time series of SunEvent.
type SunEvents []SunEvent

// SunEvent is a sunrise or sunset event.
type SunEvent struct {
	Time  time.Time `json:"time"`
	Event Event     `json:"event"`
}

func (s *SunEvent) String() string {
	return fmt.Sprintf("%s %s", s.Time.Format(time.RFC822), s.Event)
}

// Event encodes a sunrise or sunset event.
type Event bool

const (
	Sunrise Event = true
	Sunset  Event = false
)

func (e Event) String() string {
	if e == Sunrise {
		return "Sunrise"
	}
	return "Sunset"
}

func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func locationOrPanic(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}
