package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spencer-p/daylightchart/pkg/daylight"
	"github.com/spencer-p/daylightchart/pkg/riseset"
	"github.com/spencer-p/daylightchart/pkg/sunset"
)

var errBadQuery = errors.New("bad query")

// chartQuery is everything a request says about the chart it wants.
type chartQuery struct {
	Place    sunset.Place
	Year     int
	Twilight riseset.Horizon
	ZoneOpt  sunset.TimeZoneOption
}

// hasPlace is true when v names a place rather than leaving it to the
// session or the default.
func hasPlace(v url.Values) bool {
	return v.Get("location") != "" || v.Get("lat") != "" || v.Get("lon") != ""
}

// parseQuery reads a chart query. Saved locations are looked up by name in
// locs, which may be nil.
func parseQuery(v url.Values, now time.Time, locs Locations) (chartQuery, error) {
	q := chartQuery{
		Place: sunset.SantaCruz,
		Year:  now.Year(),
	}
	var err error

	if s := v.Get("year"); s != "" {
		if q.Year, err = strconv.Atoi(s); err != nil {
			return q, fmt.Errorf("%w: year %q", errBadQuery, s)
		}
	}
	if q.Twilight, err = riseset.ParseHorizon(v.Get("twilight")); err != nil {
		return q, fmt.Errorf("%w: %v", errBadQuery, err)
	}
	if q.ZoneOpt, err = sunset.ParseTimeZoneOption(v.Get("tzoption")); err != nil {
		return q, fmt.Errorf("%w: %v", errBadQuery, err)
	}

	switch {
	case v.Get("location") != "":
		if locs == nil {
			return q, fmt.Errorf("%w: no saved locations", errBadQuery)
		}
		loc, err := locs.Get(v.Get("location"))
		if err != nil {
			return q, err
		}
		if q.Place, err = loc.Place(); err != nil {
			return q, err
		}
	case v.Get("lat") != "" || v.Get("lon") != "":
		lat, err := strconv.ParseFloat(v.Get("lat"), 64)
		if err != nil {
			return q, fmt.Errorf("%w: latitude %q", errBadQuery, v.Get("lat"))
		}
		lon, err := strconv.ParseFloat(v.Get("lon"), 64)
		if err != nil {
			return q, fmt.Errorf("%w: longitude %q", errBadQuery, v.Get("lon"))
		}
		zone := v.Get("zone")
		if zone == "" {
			zone = "UTC"
		}
		name := v.Get("name")
		if name == "" {
			name = fmt.Sprintf("%.4f, %.4f", lat, lon)
		}
		if q.Place, err = sunset.LoadPlace(name, lat, lon, zone); err != nil {
			return q, err
		}
	}
	return q, nil
}

// values is the canonical form of q. It keys the cache and is remembered in
// the session.
func (q chartQuery) values() url.Values {
	return url.Values{
		"name":     {q.Place.Name},
		"lat":      {strconv.FormatFloat(q.Place.Lat, 'f', -1, 64)},
		"lon":      {strconv.FormatFloat(q.Place.Long, 'f', -1, 64)},
		"zone":     {q.Place.Location.String()},
		"year":     {strconv.Itoa(q.Year)},
		"twilight": {q.Twilight.ShortName()},
		"tzoption": {q.ZoneOpt.String()},
	}
}

func (q chartQuery) options() daylight.Options {
	return daylight.Options{
		Twilight:   q.Twilight,
		ZoneOption: q.ZoneOpt,
	}
}
