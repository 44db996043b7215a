package daylight

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/daylightchart/pkg/bands"
	"github.com/spencer-p/daylightchart/pkg/ephemeris"
	"github.com/spencer-p/daylightchart/pkg/riseset"
	"github.com/spencer-p/daylightchart/pkg/sunset"
	"github.com/spencer-p/daylightchart/pkg/timetricks"
)

func london(t *testing.T) sunset.Place {
	t.Helper()
	p, err := sunset.LoadPlace("London", 51.5, 0, "Europe/London")
	if err != nil {
		t.Skipf("no zoneinfo: %v", err)
	}
	return p
}

func bandNames(c *Chart) []string {
	var names []string
	for _, b := range c.Bands {
		names = append(names, b.Name())
	}
	return names
}

func TestCompute(t *testing.T) {
	table := []struct {
		name  string
		opts  Options
		names []string
	}{{
		name:  "time zone",
		opts:  Options{},
		names: []string{"With clock shift, #0", "Without clock shift, #0"},
	}, {
		name: "astronomical twilight",
		opts: Options{Twilight: riseset.Astronomical},
		names: []string{
			"With clock shift, #0",
			"Without clock shift, #0",
			"Twilight, #0",
			"Twilight, #1",
			"Twilight, #2",
		},
	}, {
		name:  "local mean time",
		opts:  Options{ZoneOption: sunset.UseLocalTime, Twilight: riseset.Civil},
		names: []string{"Without clock shift, #0", "Twilight, #0"},
	}}

	place := london(t)
	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Compute(place, 2024, tc.opts)
			if err != nil {
				t.Fatalf("unexpected: %v", err)
			}
			if diff := cmp.Diff(tc.names, bandNames(c)); diff != "" {
				t.Errorf("bands (-want,+got): %s", diff)
			}
			if got := len(c.Days()); got != 366 {
				t.Errorf("got %d days", got)
			}
		})
	}
}

func TestComputeClockShift(t *testing.T) {
	c, err := Compute(london(t), 2024, Options{})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if !c.HasDST() {
		t.Fatalf("London changes its clocks")
	}
	if got, want := timetricks.UniqueDay(c.Series.DSTStart), "2024-03-31"; got != want {
		t.Errorf("got DST start %s, wanted %s", got, want)
	}
	if got, want := timetricks.UniqueDay(c.Series.DSTEnd), "2024-10-27"; got != want {
		t.Errorf("got DST end %s, wanted %s", got, want)
	}

	midsummer := 172
	shifted := c.BandsOf(bands.WithClockShift)[0].Records()[midsummer]
	standard := c.BandsOf(bands.WithoutClockShift)[0].Records()[midsummer]
	if shifted.Sunrise()-standard.Sunrise() != time.Hour {
		t.Errorf("clock shift bands should be an hour later in summer: %v vs %v", shifted, standard)
	}
	if standard.DaylightSavingTime() {
		t.Errorf("standard time bands should not be shifted")
	}
}

func TestComputeErrors(t *testing.T) {
	place := sunset.Place{Name: "Nowhere", Lat: 100, Location: time.UTC}
	if _, err := Compute(place, 2024, Options{}); !errors.Is(err, ephemeris.ErrLatitude) {
		t.Errorf("got %v, wanted %v", err, ephemeris.ErrLatitude)
	}
}

func TestChartJSON(t *testing.T) {
	c, err := Compute(london(t), 2024, Options{Twilight: riseset.Civil})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	var got struct {
		Location struct {
			Name string
			Zone string
		}
		Year         int
		DSTStart     string `json:"dst_start"`
		DSTEnd       string `json:"dst_end"`
		Twilight     string
		Days         []json.RawMessage
		TwilightDays []json.RawMessage `json:"twilight_days"`
		Bands        []struct{ Name string }
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Location.Name != "London" || got.Location.Zone != "Europe/London" || got.Year != 2024 {
		t.Errorf("got location %+v in %d", got.Location, got.Year)
	}
	if got.DSTStart != "2024-03-31" || got.DSTEnd != "2024-10-27" || got.Twilight != "Civil twilight" {
		t.Errorf("got %q %q %q", got.DSTStart, got.DSTEnd, got.Twilight)
	}
	if len(got.Days) != 366 || len(got.TwilightDays) != 366 || len(got.Bands) != len(c.Bands) {
		t.Errorf("got %d days, %d twilight days, %d bands", len(got.Days), len(got.TwilightDays), len(got.Bands))
	}
}

func TestSolverByName(t *testing.T) {
	table := []struct {
		name    string
		want    riseset.Solver
		wantErr bool
	}{
		{name: "", want: riseset.Interpolator{}},
		{name: "ClosedForm", want: riseset.ClosedForm{}},
		{name: "reference", want: sunset.Reference{}},
		{name: "sundial", wantErr: true},
	}
	for _, tc := range table {
		got, err := SolverByName(tc.name)
		if (err != nil) != tc.wantErr {
			t.Errorf("SolverByName(%q) error %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("SolverByName(%q) = %T, wanted %T", tc.name, got, tc.want)
		}
	}
}
