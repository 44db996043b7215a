package ephemeris

import (
	"math"

	"github.com/soniakeys/unit"
)

// Ephemerides are the sun's coordinates at an instant.
type Ephemerides struct {
	Declination    float64 // degrees
	RightAscension float64 // hours
	HourAngle      float64 // degrees
	Altitude       float64 // degrees
	EquationOfTime float64 // minutes
}

// LowPrecision computes solar coordinates from the mean anomaly, the equation
// of center and the obliquity of the ecliptic, and finds the local hour angle
// from Greenwich mean sidereal time.
type LowPrecision struct{}

var _ Calculator = LowPrecision{}

func (LowPrecision) Altitude(p Position, hour float64) float64 {
	return LowPrecision{}.Ephemerides(p, hour).Altitude
}

// Ephemerides returns the sun's coordinates at hour (standard time) of the
// position's date.
func (LowPrecision) Ephemerides(p Position, hour float64) Ephemerides {
	ut := hour - p.Offset
	days := p.jd - J2000
	// Julian centuries since J2000.0, at the instant and at 0h UT.
	t := (days + ut/24) / 36525
	t0 := days / 36525

	gmst := 6.697374558 + 1.0027379093*ut +
		(8640184.812866+(0.093104-6.2e-6*t0)*t0)*t0/3600
	lmst := 24 * frac((gmst+p.Longitude/15)/24)

	// Mean anomaly and mean longitude, corrected for aberration.
	g := range360(357.52910 + (35999.05030-(0.0001559+0.00000048*t)*t)*t)
	q := range360(280.46645 + (36000.76983+0.0003032*t)*t)

	center := (1.914602-(0.004817-0.000014*t)*t)*sinD(g) +
		(0.019993-0.000101*t)*sinD(2*g) +
		0.000289*sinD(3*g)
	l := q + center
	alpha := l - 2.466*sinD(2*l) + 0.053*sinD(4*l)

	obliquity := 23.0 + (26.0+(21.448-t*(46.8150+t*(0.00059-t*0.001813)))/60.0)/60.0

	decl := unit.Angle(math.Atan(tanD(obliquity) * sinD(alpha))).Deg()
	ra := range360(unit.Angle(math.Atan2(cosD(obliquity)*sinD(l), cosD(l))).Deg()) / 15
	tau := 15 * (lmst - ra)

	alt := unit.Angle(math.Asin(
		sinD(p.Latitude)*sinD(decl) + cosD(p.Latitude)*cosD(decl)*cosD(tau),
	)).Deg()

	return Ephemerides{
		Declination:    decl,
		RightAscension: ra,
		HourAngle:      tau,
		Altitude:       alt,
		EquationOfTime: (q/15 - ra) * 60,
	}
}

func sinD(deg float64) float64 { return unit.AngleFromDeg(deg).Sin() }
func cosD(deg float64) float64 { return unit.AngleFromDeg(deg).Cos() }
func tanD(deg float64) float64 { return unit.AngleFromDeg(deg).Tan() }

// ModPositive is x modulo y, shifted into [0, y).
func ModPositive(x, y float64) float64 {
	r := math.Remainder(x, y)
	if r < 0 {
		r += y
	}
	return r
}

func range360(deg float64) float64 {
	return ModPositive(deg, 360)
}

// frac is the fractional part of x, always in [0, 1).
func frac(x float64) float64 {
	r := x - math.Trunc(x)
	if r < 0 {
		r++
	}
	return r
}
