// Package yearseries classifies every day of a year at one place.
package yearseries

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spencer-p/daylightchart/pkg/ephemeris"
	"github.com/spencer-p/daylightchart/pkg/riseset"
	"github.com/spencer-p/daylightchart/pkg/sunset"
	"github.com/spencer-p/daylightchart/pkg/timetricks"
)

// Request describes one year at one place.
type Request struct {
	Latitude, Longitude float64
	Year                int
	Zone                sunset.Zone

	// UseDaylightTime shifts times during daylight saving time. When it is
	// false all times are standard time.
	UseDaylightTime bool

	// Twilight is computed alongside plain sunrise and sunset when it is a
	// twilight horizon.
	Twilight riseset.Horizon
}

// YearSeries is one record per date of a year, in date order.
type YearSeries struct {
	Horizon riseset.Horizon
	Records []riseset.DayRecord

	// Zero when the zone does not change clocks that year.
	DSTStart, DSTEnd time.Time
}

func (s YearSeries) Len() int { return len(s.Records) }

// Year holds the plain series and, when requested, the twilight series for
// a place.
type Year struct {
	Observer ephemeris.Observer
	Year     int

	DSTStart, DSTEnd time.Time

	Plain    YearSeries
	Twilight *YearSeries
}

// Builder computes year series. The zero value uses the interpolating
// solver and discards logs. A Builder is safe for concurrent use as long as
// the request's zone is.
type Builder struct {
	Solver riseset.Solver
	Logger *zap.Logger
}

func (b Builder) solver() riseset.Solver {
	if b.Solver == nil {
		return riseset.Interpolator{}
	}
	return b.Solver
}

func (b Builder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

// Build computes every date of req.Year from January 1 through December 31.
func (b Builder) Build(req Request) (Year, error) {
	if req.Zone == nil {
		return Year{}, fmt.Errorf("no time zone for %d", req.Year)
	}
	obs := ephemeris.Observer{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Offset:    req.Zone.StandardOffsetHours(),
	}
	if err := obs.Validate(); err != nil {
		return Year{}, err
	}

	dates := timetricks.YearDates(req.Year)
	y := Year{
		Observer: obs,
		Year:     req.Year,
		Plain: YearSeries{
			Horizon: riseset.Sunrise,
			Records: make([]riseset.DayRecord, 0, len(dates)),
		},
	}
	if req.Twilight.IsTwilight() {
		y.Twilight = &YearSeries{
			Horizon: req.Twilight,
			Records: make([]riseset.DayRecord, 0, len(dates)),
		}
	}

	solver := b.solver()
	var wasDST bool
	for i, date := range dates {
		p, err := ephemeris.NewPosition(obs, date)
		if err != nil {
			return Year{}, err
		}

		dst := req.Zone.IsDSTActive(date)
		if i > 0 {
			if dst && !wasDST && y.DSTStart.IsZero() {
				y.DSTStart = date
			}
			if !dst && wasDST && y.DSTEnd.IsZero() {
				y.DSTEnd = date
			}
		}
		wasDST = dst

		r, err := classify(solver, p, riseset.Sunrise, date, req.UseDaylightTime, dst)
		if err != nil {
			return Year{}, err
		}
		y.Plain.Records = append(y.Plain.Records, r)

		if y.Twilight != nil {
			r, err := classify(solver, p, y.Twilight.Horizon, date, req.UseDaylightTime, dst)
			if err != nil {
				return Year{}, err
			}
			y.Twilight.Records = append(y.Twilight.Records, r)
		}
	}

	y.Plain.DSTStart, y.Plain.DSTEnd = y.DSTStart, y.DSTEnd
	if y.Twilight != nil {
		y.Twilight.DSTStart, y.Twilight.DSTEnd = y.DSTStart, y.DSTEnd
	}

	b.logger().Debug("Built year series",
		zap.Float64("latitude", obs.Latitude),
		zap.Float64("longitude", obs.Longitude),
		zap.Float64("offset", obs.Offset),
		zap.Int("year", req.Year),
		zap.Stringer("twilight", req.Twilight),
		zap.Time("dst_start", y.DSTStart),
		zap.Time("dst_end", y.DSTEnd))
	return y, nil
}

func classify(s riseset.Solver, p ephemeris.Position, h riseset.Horizon, date time.Time, useDaylightTime, dst bool) (riseset.DayRecord, error) {
	c, err := s.Solve(p, h)
	if err != nil {
		return riseset.DayRecord{}, fmt.Errorf("%s on %s: %w", h, timetricks.UniqueDay(date), err)
	}
	r, err := riseset.ClassifyChecked(date, c, useDaylightTime, dst)
	if err != nil {
		return riseset.DayRecord{}, fmt.Errorf("%s: %w", h, err)
	}
	return r, nil
}

// Count tallies the records of each kind.
func (s YearSeries) Count() map[riseset.Kind]int {
	counts := make(map[riseset.Kind]int)
	for _, r := range s.Records {
		counts[r.Kind()]++
	}
	return counts
}

// StandardTime is the series with every daylight saving shift undone.
func (s YearSeries) StandardTime() YearSeries {
	out := s
	out.Records = make([]riseset.DayRecord, len(s.Records))
	for i, r := range s.Records {
		out.Records[i] = r.StandardTime()
	}
	return out
}
