package sunset

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Zone answers the two questions the calculations ask of a time zone.
// Implementations must be safe for concurrent use.
type Zone interface {
	// IsDSTActive reports whether clocks are shifted for daylight saving
	// time on date.
	IsDSTActive(date time.Time) bool
	// StandardOffsetHours is the offset from UTC outside daylight saving
	// time.
	StandardOffsetHours() float64
}

// TimeZone is a Zone backed by the IANA database.
type TimeZone struct {
	loc    *time.Location
	offset float64
}

// NewTimeZone finds loc's standard offset in year. The offset is taken at
// noon on January 1 or July 1, whichever is not in daylight saving time.
func NewTimeZone(loc *time.Location, year int) TimeZone {
	if loc == nil {
		loc = time.UTC
	}
	t := time.Date(year, time.January, 1, 12, 0, 0, 0, loc)
	if t.IsDST() {
		t = time.Date(year, time.July, 1, 12, 0, 0, 0, loc)
	}
	_, seconds := t.Zone()
	return TimeZone{loc: loc, offset: float64(seconds) / 3600}
}

// IsDSTActive samples the zone at local noon so that the changeover hour
// itself does not matter.
func (z TimeZone) IsDSTActive(date time.Time) bool {
	y, m, d := date.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, z.loc).IsDST()
}

func (z TimeZone) StandardOffsetHours() float64 { return z.offset }

func (z TimeZone) Location() *time.Location { return z.loc }

func (z TimeZone) String() string { return z.loc.String() }

// MeanSolarZone keeps local mean time: the offset follows the longitude and
// there is never daylight saving time.
type MeanSolarZone struct {
	Longitude float64
}

func (MeanSolarZone) IsDSTActive(time.Time) bool { return false }

// StandardOffsetHours is the longitude in hours, to the nearest minute.
func (z MeanSolarZone) StandardOffsetHours() float64 {
	return math.Round(z.Longitude/15*60) / 60
}

// Location is a fixed zone at the mean solar offset.
func (z MeanSolarZone) Location() *time.Location {
	seconds := int(math.Round(z.StandardOffsetHours() * 3600))
	return time.FixedZone(z.String(), seconds)
}

func (z MeanSolarZone) String() string {
	minutes := int(math.Round(z.StandardOffsetHours() * 60))
	sign := '+'
	if minutes < 0 {
		sign, minutes = '-', -minutes
	}
	return fmt.Sprintf("LMT%c%02d:%02d", sign, minutes/60, minutes%60)
}

// TimeZoneOption picks which clock a chart is drawn in.
type TimeZoneOption int

const (
	// UseTimeZone follows the place's civil time zone, with daylight
	// saving time.
	UseTimeZone TimeZoneOption = iota
	// UseLocalTime follows local mean time.
	UseLocalTime
)

func (o TimeZoneOption) String() string {
	if o == UseLocalTime {
		return "local"
	}
	return "timezone"
}

func ParseTimeZoneOption(s string) (TimeZoneOption, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "timezone", "zone":
		return UseTimeZone, nil
	case "local", "localtime":
		return UseLocalTime, nil
	}
	return UseTimeZone, fmt.Errorf("unknown time zone option %q", s)
}

// ZoneFor returns the zone p's chart for year should be drawn in.
func ZoneFor(p Place, opt TimeZoneOption, year int) Zone {
	if opt == UseLocalTime {
		return MeanSolarZone{Longitude: p.Long}
	}
	return NewTimeZone(p.Location, year)
}

// Locate returns a *time.Location for z, for formatting instants.
func Locate(z Zone) *time.Location {
	switch z := z.(type) {
	case TimeZone:
		return z.Location()
	case MeanSolarZone:
		return z.Location()
	}
	seconds := int(math.Round(z.StandardOffsetHours() * 3600))
	return time.FixedZone("", seconds)
}

func (o TimeZoneOption) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *TimeZoneOption) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeZoneOption(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
