// Package ephemeris computes the position of the sun in the sky of an
// observer. It implements the low precision solar coordinates used for
// sunrise and sunset work; results are good to about a minute of time between
// the years 1500 and 3000.
package ephemeris

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	minYear = 1500
	maxYear = 3000

	// J2000 is the Julian day of 2000 January 1.5 TT.
	J2000 = 2451545.0
)

var (
	ErrLatitude  = errors.New("latitude out of range")
	ErrLongitude = errors.New("longitude out of range")
	ErrOffset    = errors.New("utc offset out of range")
	ErrYear      = errors.New("year out of range")
)

// Observer is a place on the Earth along with the standard offset of its
// clocks from UTC.
type Observer struct {
	// Degrees, north positive.
	Latitude float64
	// Degrees, east positive.
	Longitude float64
	// Hours east of UTC, not counting daylight saving time.
	Offset float64
}

// Validate reports whether the observer can be used for calculations.
func (o Observer) Validate() error {
	if math.IsNaN(o.Latitude) || math.Abs(o.Latitude) > 90 {
		return fmt.Errorf("%w: %v", ErrLatitude, o.Latitude)
	}
	if math.IsNaN(o.Longitude) || math.Abs(o.Longitude) > 180 {
		return fmt.Errorf("%w: %v", ErrLongitude, o.Longitude)
	}
	if math.IsNaN(o.Offset) || math.Abs(o.Offset) > 14 {
		return fmt.Errorf("%w: %v", ErrOffset, o.Offset)
	}
	return nil
}

// Position is an Observer on one calendar day.
type Position struct {
	Observer
	Year  int
	Month time.Month
	Day   int

	jd float64
}

// NewPosition validates o and fixes it to the calendar date of date. Only the
// year, month and day of date are used.
func NewPosition(o Observer, date time.Time) (Position, error) {
	if err := o.Validate(); err != nil {
		return Position{}, err
	}
	y, m, d := date.Date()
	if y < minYear || y > maxYear {
		return Position{}, fmt.Errorf("%w: %d", ErrYear, y)
	}
	return Position{
		Observer: o,
		Year:     y,
		Month:    m,
		Day:      d,
		jd:       julian.CalendarGregorianToJD(y, int(m), float64(d)),
	}, nil
}

// JD returns the Julian day at 0h UT of the position's date.
func (p Position) JD() float64 {
	return p.jd
}

// Calculator finds the altitude of the sun.
type Calculator interface {
	// Altitude returns the altitude of the sun's center in degrees above the
	// horizon, at hour of the position's date. The hour is counted in the
	// observer's standard time and may fall outside [0, 24).
	Altitude(p Position, hour float64) float64
}
