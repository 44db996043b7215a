package sunset

import (
	"fmt"
	"math"
	"time"

	"github.com/keep94/sunrise"

	"github.com/spencer-p/daylightchart/pkg/ephemeris"
	"github.com/spencer-p/daylightchart/pkg/riseset"
)

// maxReferenceLatitude bounds where the reference solver is trusted. It has
// no notion of days without a sunrise.
const maxReferenceLatitude = 60

// Reference solves for plain sunrise and sunset with the Wikipedia sunrise
// equation. It is kept as an independent check on the other solvers.
type Reference struct{}

var _ riseset.Solver = Reference{}

func (Reference) Solve(p ephemeris.Position, h riseset.Horizon) (riseset.Crossing, error) {
	if h != riseset.Sunrise {
		return riseset.Crossing{}, fmt.Errorf("%w: %v", riseset.ErrUnsupported, h)
	}
	if math.Abs(p.Latitude) > maxReferenceLatitude {
		return riseset.Crossing{}, fmt.Errorf("%w: latitude %v", riseset.ErrUnsupported, p.Latitude)
	}

	// Around picks the solar day nearest the given instant, so aim for
	// local noon.
	seconds := int(math.Round(p.Offset * 3600))
	noon := time.Date(p.Year, p.Month, p.Day, 12, 0, 0, 0, time.FixedZone("", seconds))

	var s sunrise.Sunrise
	s.Around(p.Latitude, p.Longitude, noon)
	return riseset.Crossing{
		Rise: riseset.StandardHours(p, s.Sunrise()),
		Set:  riseset.StandardHours(p, s.Sunset()),
	}, nil
}
