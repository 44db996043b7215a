package ephemeris

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	table := []struct {
		name string
		obs  Observer
		want error
	}{
		{"london", Observer{51.5, 0, 0}, nil},
		{"north pole", Observer{90, 0, 0}, nil},
		{"date line", Observer{-45, -180, -12}, nil},
		{"too far north", Observer{90.5, 0, 0}, ErrLatitude},
		{"too far south", Observer{-91, 0, 0}, ErrLatitude},
		{"nan latitude", Observer{math.NaN(), 0, 0}, ErrLatitude},
		{"too far east", Observer{0, 180.01, 0}, ErrLongitude},
		{"too far west", Observer{0, -200, 0}, ErrLongitude},
		{"offset", Observer{0, 0, 15}, ErrOffset},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.obs.Validate()
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, wanted %v", err, tc.want)
			}
		})
	}
}

func TestNewPositionYear(t *testing.T) {
	for _, year := range []int{1499, 3001} {
		_, err := NewPosition(Observer{}, time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC))
		if !errors.Is(err, ErrYear) {
			t.Errorf("year %d: got %v, wanted %v", year, err, ErrYear)
		}
	}
}

func TestNewPositionJD(t *testing.T) {
	p, err := NewPosition(Observer{}, time.Date(2000, time.January, 1, 18, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	// Clock time is dropped; 2000-01-01 0h UT is half a day before J2000.
	if got, want := p.JD(), J2000-0.5; got != want {
		t.Errorf("got JD %v, wanted %v", got, want)
	}
}

func TestAltitude(t *testing.T) {
	table := []struct {
		name string
		obs  Observer
		date time.Time
		hour float64
		want float64
	}{{
		name: "equator at the equinox",
		obs:  Observer{0, 0, 0},
		date: time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
		hour: 12,
		want: 88.16,
	}, {
		name: "london midsummer noon",
		obs:  Observer{51.5, 0, 0},
		date: time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC),
		hour: 12,
		want: 61.93,
	}, {
		name: "london midsummer midnight",
		obs:  Observer{51.5, 0, 0},
		date: time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC),
		hour: 0,
		want: -15.06,
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPosition(tc.obs, tc.date)
			if err != nil {
				t.Fatalf("unexpected: %v", err)
			}
			got := LowPrecision{}.Altitude(p, tc.hour)
			if math.Abs(got-tc.want) > 0.01 {
				t.Errorf("got altitude %.3f, wanted %.2f", got, tc.want)
			}
		})
	}
}

func TestAltitudeOffset(t *testing.T) {
	// The same instant seen from two clocks must give the same altitude.
	date := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)
	utc, _ := NewPosition(Observer{40, -74, 0}, date)
	est, _ := NewPosition(Observer{40, -74, -5}, date)
	calc := LowPrecision{}
	if a, b := calc.Altitude(utc, 15), calc.Altitude(est, 10); math.Abs(a-b) > 1e-9 {
		t.Errorf("altitudes differ: %v != %v", a, b)
	}
}

func TestModPositive(t *testing.T) {
	table := []struct{ x, y, want float64 }{
		{-3, 24, 21},
		{25.5, 24, 1.5},
		{720, 360, 0},
		{-0.25, 360, 359.75},
	}
	for _, tc := range table {
		if got := ModPositive(tc.x, tc.y); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("ModPositive(%v, %v) = %v, wanted %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func ExampleLowPrecision_Ephemerides() {
	p, _ := NewPosition(Observer{Latitude: 51.5}, time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC))
	e := LowPrecision{}.Ephemerides(p, 12)
	fmt.Printf("declination %.1f\n", e.Declination)
	// Output:
	// declination 23.4
}
