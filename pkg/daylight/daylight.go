// Package daylight puts together everything needed to draw a year of
// daylight at one place: the classified days and the bands built from them.
package daylight

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spencer-p/daylightchart/pkg/bands"
	"github.com/spencer-p/daylightchart/pkg/riseset"
	"github.com/spencer-p/daylightchart/pkg/sunset"
	"github.com/spencer-p/daylightchart/pkg/timetricks"
	"github.com/spencer-p/daylightchart/pkg/yearseries"
)

// Solvers maps the names accepted by SolverByName to their solvers.
var Solvers = map[string]riseset.Solver{
	"interpolation": riseset.Interpolator{},
	"closedform":    riseset.ClosedForm{},
	"reference":     sunset.Reference{},
}

// SolverByName picks one of Solvers. The empty name is interpolation.
func SolverByName(name string) (riseset.Solver, error) {
	if name == "" {
		name = "interpolation"
	}
	s, ok := Solvers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown solver %q", name)
	}
	return s, nil
}

type Options struct {
	// Twilight adds a twilight series and its bands when it is one of the
	// twilight horizons.
	Twilight   riseset.Horizon
	ZoneOption sunset.TimeZoneOption

	Solver riseset.Solver
	Logger *zap.Logger
}

// Chart is a year of daylight at a place.
type Chart struct {
	Place   sunset.Place
	Year    int
	Zone    sunset.Zone
	Options Options

	Series yearseries.Year
	Bands  []bands.Band
}

// Compute builds the chart for place in year.
func Compute(place sunset.Place, year int, opts Options) (*Chart, error) {
	zone := sunset.ZoneFor(place, opts.ZoneOption, year)
	b := yearseries.Builder{Solver: opts.Solver, Logger: opts.Logger}
	y, err := b.Build(yearseries.Request{
		Latitude:        place.Lat,
		Longitude:       place.Long,
		Year:            year,
		Zone:            zone,
		UseDaylightTime: true,
		Twilight:        opts.Twilight,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s in %d: %w", place.Name, year, err)
	}

	c := &Chart{
		Place:   place,
		Year:    year,
		Zone:    zone,
		Options: opts,
		Series:  y,
	}
	if c.HasDST() {
		c.Bands = append(c.Bands, bands.Segment(y.Plain.Records, bands.WithClockShift)...)
	}
	c.Bands = append(c.Bands, bands.Segment(y.Plain.StandardTime().Records, bands.WithoutClockShift)...)
	if y.Twilight != nil {
		c.Bands = append(c.Bands, bands.Segment(y.Twilight.Records, bands.Twilight)...)
	}
	return c, nil
}

// HasDST reports whether clocks change during the chart's year.
func (c *Chart) HasDST() bool {
	return !c.Series.DSTStart.IsZero() || !c.Series.DSTEnd.IsZero()
}

// BandsOf returns the bands of one type.
func (c *Chart) BandsOf(t bands.Type) []bands.Band {
	var out []bands.Band
	for _, b := range c.Bands {
		if b.Type == t {
			out = append(out, b)
		}
	}
	return out
}

// Day is everything the chart knows about one date.
type Day struct {
	Date     time.Time
	Plain    riseset.DayRecord
	Twilight *riseset.DayRecord
}

// Days lists the chart's dates in order.
func (c *Chart) Days() []Day {
	days := make([]Day, len(c.Series.Plain.Records))
	for i, r := range c.Series.Plain.Records {
		days[i] = Day{Date: r.Date(), Plain: r}
		if c.Series.Twilight != nil {
			days[i].Twilight = &c.Series.Twilight.Records[i]
		}
	}
	return days
}

func (c *Chart) Title() string {
	return fmt.Sprintf("%s - %d", c.Place.Name, c.Year)
}

func dateOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return timetricks.UniqueDay(t)
}

func (c *Chart) MarshalJSON() ([]byte, error) {
	type location struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Zone      string  `json:"zone"`
		Offset    float64 `json:"offset"`
	}
	out := struct {
		Location     location            `json:"location"`
		Year         int                 `json:"year"`
		DSTStart     string              `json:"dst_start,omitempty"`
		DSTEnd       string              `json:"dst_end,omitempty"`
		Twilight     string              `json:"twilight,omitempty"`
		Days         []riseset.DayRecord `json:"days"`
		TwilightDays []riseset.DayRecord `json:"twilight_days,omitempty"`
		Bands        []bands.Band        `json:"bands"`
	}{
		Location: location{
			Name:      c.Place.Name,
			Latitude:  c.Place.Lat,
			Longitude: c.Place.Long,
			Zone:      fmt.Sprint(c.Zone),
			Offset:    c.Zone.StandardOffsetHours(),
		},
		Year:     c.Year,
		DSTStart: dateOrEmpty(c.Series.DSTStart),
		DSTEnd:   dateOrEmpty(c.Series.DSTEnd),
		Days:     c.Series.Plain.Records,
		Bands:    c.Bands,
	}
	if c.Series.Twilight != nil {
		out.Twilight = c.Series.Twilight.Horizon.String()
		out.TwilightDays = c.Series.Twilight.Records
	}
	return json.Marshal(out)
}
