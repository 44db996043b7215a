package riseset

import (
	"fmt"
	"strings"
)

// Horizon selects the solar altitude that counts as rising or setting.
type Horizon int

const (
	// Sunrise is the apparent horizon, corrected for refraction and the
	// sun's semi-diameter.
	Sunrise Horizon = iota
	Civil
	Nautical
	Astronomical
)

// Horizons lists every horizon, plain sunrise first.
var Horizons = []Horizon{Sunrise, Civil, Nautical, Astronomical}

// Angle is the altitude of the sun's center at the crossing, in degrees.
func (h Horizon) Angle() float64 {
	switch h {
	case Civil:
		return -6
	case Nautical:
		return -12
	case Astronomical:
		return -18
	default:
		return -5.0 / 6.0
	}
}

// IsTwilight is true for the civil, nautical and astronomical horizons.
func (h Horizon) IsTwilight() bool {
	return h == Civil || h == Nautical || h == Astronomical
}

func (h Horizon) String() string {
	switch h {
	case Sunrise:
		return "Sunrise and sunset"
	case Civil:
		return "Civil twilight"
	case Nautical:
		return "Nautical twilight"
	case Astronomical:
		return "Astronomical twilight"
	default:
		return fmt.Sprintf("Horizon(%d)", int(h))
	}
}

// ParseHorizon reads a horizon by short name: none, sunrise, civil, nautical
// or astronomical.
func ParseHorizon(s string) (Horizon, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "sunrise", "sunset":
		return Sunrise, nil
	case "civil":
		return Civil, nil
	case "nautical":
		return Nautical, nil
	case "astronomical":
		return Astronomical, nil
	}
	return Sunrise, fmt.Errorf("unknown horizon %q", s)
}

// ShortName is the name ParseHorizon reads back.
func (h Horizon) ShortName() string {
	switch h {
	case Civil:
		return "civil"
	case Nautical:
		return "nautical"
	case Astronomical:
		return "astronomical"
	}
	return "none"
}

func (h Horizon) MarshalText() ([]byte, error) {
	return []byte(h.ShortName()), nil
}

func (h *Horizon) UnmarshalText(b []byte) error {
	parsed, err := ParseHorizon(string(b))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
