package visualize

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spencer-p/daylightchart/pkg/daylight"
	"github.com/spencer-p/daylightchart/pkg/riseset"
	"github.com/spencer-p/daylightchart/pkg/sunset"
)

func encode(t *testing.T, place sunset.Place, opts daylight.Options) string {
	t.Helper()
	c, err := daylight.Compute(place, 2024, opts)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	var buf bytes.Buffer
	n, err := NewChart(c).Encode(&buf)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}
	return buf.String()
}

func TestEncode(t *testing.T) {
	greenwich := sunset.Place{Name: "London", Lat: 51.5, Long: 0, Location: time.UTC}
	svg := encode(t, greenwich, daylight.Options{Twilight: riseset.Civil})

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>") {
		t.Errorf("not an svg document: %.40q", svg)
	}
	for class, want := range map[string]int{
		`class="standard_time"`: 1,
		`class="twilight"`:      1,
		`class="clock_shift"`:   0,
		`class="dst_start"`:     0,
		`class="hour"`:          7,
		`class="month"`:         11,
	} {
		if got := strings.Count(svg, class); got != want {
			t.Errorf("got %d of %s, wanted %d", got, class, want)
		}
	}
	if !strings.Contains(svg, "<title>London - 2024</title>") {
		t.Errorf("missing title")
	}
}

func TestEncodeClockShift(t *testing.T) {
	london, err := sunset.LoadPlace("London", 51.5, 0, "Europe/London")
	if err != nil {
		t.Skipf("no zoneinfo: %v", err)
	}
	svg := encode(t, london, daylight.Options{})
	for _, class := range []string{`class="clock_shift"`, `class="dst_start"`, `class="dst_end"`} {
		if !strings.Contains(svg, class) {
			t.Errorf("missing %s", class)
		}
	}
}

func TestDurationToY(t *testing.T) {
	table := []struct {
		d    time.Duration
		want int
	}{
		{riseset.JustAfterMidnight, 0},
		{6 * time.Hour, height / 4},
		{12 * time.Hour, height / 2},
		{riseset.JustBeforeMidnight, height},
	}
	for _, tc := range table {
		if got := durationToY(tc.d); got != tc.want {
			t.Errorf("durationToY(%v) = %d, wanted %d", tc.d, got, tc.want)
		}
	}
}

func TestEncodeEmpty(t *testing.T) {
	if _, err := NewChart(&daylight.Chart{}).Encode(&bytes.Buffer{}); err == nil {
		t.Errorf("drew a chart with no days")
	}
}
