package riseset

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/spencer-p/daylightchart/pkg/ephemeris"
)

// ClosedForm solves the hour angle equation directly. It is faster than
// Interpolator but has no answer on days without a crossing; those days are
// classified by the altitude of the sun at local noon instead.
type ClosedForm struct {
	// Calculator is used only on days without a crossing. It defaults to
	// ephemeris.LowPrecision.
	Calculator ephemeris.Calculator
}

var _ Solver = ClosedForm{}

func (s ClosedForm) Solve(p ephemeris.Position, h Horizon) (Crossing, error) {
	morning, evening := sunrise.TimeOfElevation(p.Latitude, p.Longitude, h.Angle(), p.Year, p.Month, p.Day)
	if morning.IsZero() || evening.IsZero() {
		calc := s.Calculator
		if calc == nil {
			calc = ephemeris.LowPrecision{}
		}
		if calc.Altitude(p, 12) > h.Angle() {
			return Crossing{AboveHorizon, AboveHorizon}, nil
		}
		return Crossing{BelowHorizon, BelowHorizon}, nil
	}
	return Crossing{
		Rise: StandardHours(p, morning),
		Set:  StandardHours(p, evening),
	}, nil
}

// StandardHours is the hour of the position's standard time day at which
// instant t falls, folded into [0, 24).
func StandardHours(p ephemeris.Position, t time.Time) float64 {
	midnight := time.Date(p.Year, p.Month, p.Day, 0, 0, 0, 0, time.UTC)
	return ephemeris.ModPositive(t.Sub(midnight).Hours()+p.Offset, 24)
}
