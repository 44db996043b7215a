package sunset

import (
	"math"
	"sort"
	"time"

	"github.com/spencer-p/daylightchart/pkg/ephemeris"
	"github.com/spencer-p/daylightchart/pkg/riseset"
	"github.com/spencer-p/daylightchart/pkg/timetricks"
)

// GetSunEvents returns a list of ordered sun events from the starting day to
// the end time in the given place. Days on which the sun does not rise or
// set contribute only the events that happen.
func GetSunEvents(start time.Time, duration time.Duration, place Place) (SunEvents, error) {
	return GetSunEventsWith(riseset.Interpolator{}, start, duration, place)
}

// GetSunEventsWith is GetSunEvents using a particular solver.
func GetSunEventsWith(solver riseset.Solver, start time.Time, duration time.Duration, place Place) (SunEvents, error) {
	loc := place.Location
	if loc == nil {
		loc = time.UTC
	}
	start = start.In(loc)

	numDays := int(math.Ceil(duration.Hours() / 24))
	ret := make(SunEvents, 0, numDays*2)
	for i := 0; i < numDays; i++ {
		date := timetricks.Midnight(start).AddDate(0, 0, i)
		zone := NewTimeZone(loc, date.Year())
		p, err := ephemeris.NewPosition(place.Observer(zone), date)
		if err != nil {
			return nil, err
		}
		c, err := solver.Solve(p, riseset.Sunrise)
		if err != nil {
			return nil, err
		}
		if c.HasRise() {
			ret = append(ret, SunEvent{instant(p, c.Rise).In(loc), Sunrise})
		}
		if c.HasSet() {
			ret = append(ret, SunEvent{instant(p, c.Set).In(loc), Sunset})
		}
	}
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Time.Before(ret[j].Time)
	})
	return ret, nil
}

// instant converts hours of p's standard time day into an absolute time.
func instant(p ephemeris.Position, hours float64) time.Time {
	utc := time.Date(p.Year, p.Month, p.Day, 0, 0, 0, 0, time.UTC)
	return utc.Add(time.Duration((hours - p.Offset) * float64(time.Hour)))
}
