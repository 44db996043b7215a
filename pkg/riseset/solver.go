package riseset

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/unit"

	"github.com/spencer-p/daylightchart/pkg/ephemeris"
)

var (
	// AboveHorizon marks a day on which the sun never goes below the horizon.
	AboveHorizon = math.Inf(1)
	// BelowHorizon marks a day on which the sun never comes above the horizon.
	BelowHorizon = math.Inf(-1)

	ErrUnsupported = errors.New("solver does not support this request")
	// ErrInvalidCrossing is returned for crossings that mix AboveHorizon and
	// BelowHorizon, or that are not numbers at all.
	ErrInvalidCrossing = errors.New("invalid crossing")
)

// Crossing is a solver's answer for one date and one horizon. Rise and Set
// are hours of standard time in [0, 24), or AboveHorizon/BelowHorizon when
// no crossing exists on that side of the day.
type Crossing struct {
	Rise, Set float64
}

func (c Crossing) HasRise() bool { return !math.IsInf(c.Rise, 0) }
func (c Crossing) HasSet() bool  { return !math.IsInf(c.Set, 0) }

// Validate rejects a crossing whose sides disagree about where the sun is
// all day.
func (c Crossing) Validate() error {
	if math.IsNaN(c.Rise) || math.IsNaN(c.Set) {
		return fmt.Errorf("%w: rise %v, set %v", ErrInvalidCrossing, c.Rise, c.Set)
	}
	if !c.HasRise() && !c.HasSet() && (c.Rise > 0) != (c.Set > 0) {
		return fmt.Errorf("%w: rise %v, set %v", ErrInvalidCrossing, c.Rise, c.Set)
	}
	return nil
}

// Solver finds the crossings of a horizon on a date.
type Solver interface {
	Solve(p ephemeris.Position, h Horizon) (Crossing, error)
}

// Interpolator scans the day hour by hour, fits a parabola through each
// three consecutive samples of the sun's altitude and takes its zeros as
// crossings. It copes with days that have no crossing at all, or only one.
type Interpolator struct {
	// Calculator defaults to ephemeris.LowPrecision.
	Calculator ephemeris.Calculator
}

var _ Solver = Interpolator{}

func (s Interpolator) calculator() ephemeris.Calculator {
	if s.Calculator == nil {
		return ephemeris.LowPrecision{}
	}
	return s.Calculator
}

func (s Interpolator) Solve(p ephemeris.Position, h Horizon) (Crossing, error) {
	calc := s.calculator()
	sinHorizon := sinD(h.Angle())
	sample := func(hour float64) float64 {
		return sinD(calc.Altitude(p, hour)) - sinHorizon
	}

	// Until a crossing turns up, the whole day is on the side of the
	// horizon the sun starts it on.
	c := Crossing{BelowHorizon, BelowHorizon}
	if sample(0) > 0 {
		c = Crossing{AboveHorizon, AboveHorizon}
	}

	yMinus, yThis := sample(-1), sample(0)
	for hour := 0.0; hour <= 24; hour++ {
		yPlus := sample(hour + 1)
		q := fitQuadratic(yMinus, yThis, yPlus)

		switch n, root1, root2 := q.zeros(); n {
		case 1:
			if yMinus < 0 {
				c.Rise = hour + root1
			} else {
				c.Set = hour + root1
			}
		case 2:
			if _, yExtreme := q.extremum(); yExtreme < 0 {
				c.Rise = hour + root2
				c.Set = hour + root1
			} else {
				c.Rise = hour + root1
				c.Set = hour + root2
			}
		}

		if c.HasRise() && c.HasSet() {
			break
		}
		yMinus, yThis = yThis, yPlus
	}

	if c.HasRise() {
		c.Rise = ephemeris.ModPositive(c.Rise, 24)
	}
	if c.HasSet() {
		c.Set = ephemeris.ModPositive(c.Set, 24)
	}
	return c, nil
}

// quadratic is y = ax² + bx + c through the points (-1, y₋), (0, y₀), (1, y₊).
type quadratic struct {
	a, b, c float64
}

func fitQuadratic(yMinus, yThis, yPlus float64) quadratic {
	return quadratic{
		a: 0.5*(yMinus+yPlus) - yThis,
		b: 0.5 * (yPlus - yMinus),
		c: yThis,
	}
}

func (q quadratic) extremum() (x, y float64) {
	x = -q.b / (2 * q.a)
	y = (q.a*x+q.b)*x + q.c
	return x, y
}

// zeros returns how many zeros of q lie in [-1, 1]. When there is exactly
// one, it is root1.
func (q quadratic) zeros() (n int, root1, root2 float64) {
	discriminant := q.b*q.b - 4*q.a*q.c
	if discriminant < 0 {
		return 0, 0, 0
	}
	xExtreme, _ := q.extremum()
	dx := 0.5 * math.Sqrt(discriminant) / math.Abs(q.a)
	root1 = xExtreme - dx
	root2 = xExtreme + dx
	if math.Abs(root1) <= 1 {
		n++
	}
	if math.Abs(root2) <= 1 {
		n++
	}
	if root1 < -1 {
		root1 = root2
	}
	return n, root1, root2
}

func sinD(deg float64) float64 {
	return unit.AngleFromDeg(deg).Sin()
}
