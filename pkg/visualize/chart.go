package visualize

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spencer-p/daylightchart/pkg/bands"
	"github.com/spencer-p/daylightchart/pkg/daylight"
	"github.com/spencer-p/daylightchart/pkg/riseset"
)

const (
	width  = 1200
	height = 600
	day    = 24 * time.Hour
)

var fills = map[bands.Type]string{
	bands.Twilight:          "#9ab6d6",
	bands.WithoutClockShift: "#f6e27f",
	bands.WithClockShift:    "#f4a261",
}

// Chart draws a year of daylight as an SVG. Dates run left to right and the
// time of day runs top to bottom.
type Chart struct {
	chart *daylight.Chart
	days  int
}

func NewChart(c *daylight.Chart) *Chart {
	return &Chart{
		chart: c,
		days:  len(c.Series.Plain.Records),
	}
}

// Encode writes the SVG to w.
func (img *Chart) Encode(w io.Writer) (int, error) {
	var n int
	var err error
	io := func(nextn int, nexterr error) {
		n += nextn
		if nexterr != nil && err == nil {
			err = nexterr
		}
	}

	if img.days == 0 {
		return 0, fmt.Errorf("no days to draw")
	}

	io(fmt.Fprintf(w, `<svg viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, width, height))
	io(fmt.Fprintf(w, `<title>%s</title>`, escape(img.chart.Title())))
	io(fmt.Fprintf(w, `<rect class="night" fill="#1d3557" x="0" y="0" width="%d" height="%d"/>`, width, height))

	// Twilight sits under the daylight it surrounds. Standard time is drawn
	// translucent over the clock shifted bands so both stay visible.
	for _, t := range []bands.Type{bands.Twilight, bands.WithClockShift, bands.WithoutClockShift} {
		for _, b := range img.chart.BandsOf(t) {
			io(img.band(w, b))
		}
	}

	// Hour lines every three hours.
	for h := 3; h < 24; h += 3 {
		y := durationToY(time.Duration(h) * time.Hour)
		io(fmt.Fprintf(w, `<line class="hour" stroke="white" stroke-opacity="30%%" x1="0" y1="%d" x2="%d" y2="%d"/>`,
			y, width, y))
	}

	// Month boundaries.
	for m := time.February; m <= time.December; m++ {
		x := img.dateToX(time.Date(img.chart.Year, m, 1, 0, 0, 0, 0, time.UTC))
		io(fmt.Fprintf(w, `<line class="month" stroke="white" stroke-opacity="30%%" x1="%d" y1="0" x2="%d" y2="%d"/>`,
			x, x, height))
	}

	for _, marker := range []struct {
		class string
		date  time.Time
	}{{"dst_start", img.chart.Series.DSTStart}, {"dst_end", img.chart.Series.DSTEnd}} {
		if marker.date.IsZero() {
			continue
		}
		x := img.dateToX(marker.date)
		io(fmt.Fprintf(w, `<line class="%s" stroke="#e63946" stroke-dasharray="4" x1="%d" y1="0" x2="%d" y2="%d"/>`,
			marker.class, x, x, height))
	}

	io(fmt.Fprintf(w, `</svg>`))
	return n, err
}

// band outlines b by walking its sunrises forwards and its sunsets back.
func (img *Chart) band(w io.Writer, b bands.Band) (int, error) {
	records := b.Records()
	if len(records) == 0 {
		return 0, nil
	}

	var points strings.Builder
	point := func(x, y int) {
		if points.Len() > 0 {
			points.WriteByte(' ')
		}
		fmt.Fprintf(&points, "%d,%d", x, y)
	}
	for _, r := range records {
		x := img.dateToX(r.Date())
		point(x, durationToY(r.Sunrise()))
		point(x+img.dayWidth(), durationToY(r.Sunrise()))
	}
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		x := img.dateToX(r.Date())
		point(x+img.dayWidth(), durationToY(r.Sunset()))
		point(x, durationToY(r.Sunset()))
	}

	opacity := "100%"
	if b.Type == bands.WithoutClockShift && img.chart.HasDST() {
		opacity = "60%"
	}
	return fmt.Fprintf(w, `<polygon class="%s" fill="%s" fill-opacity="%s" points="%s"><title>%s</title></polygon>`,
		className(b.Type), fills[b.Type], opacity, points.String(), escape(b.Name()))
}

func (img *Chart) dateToX(t time.Time) int {
	return (t.YearDay() - 1) * width / img.days
}

func (img *Chart) dayWidth() int {
	if dw := width / img.days; dw > 0 {
		return dw
	}
	return 1
}

func durationToY(d time.Duration) int {
	if d == riseset.JustBeforeMidnight {
		d = day
	}
	return int(d * height / day)
}

func className(t bands.Type) string {
	switch t {
	case bands.WithClockShift:
		return "clock_shift"
	case bands.WithoutClockShift:
		return "standard_time"
	case bands.Twilight:
		return "twilight"
	}
	return "band"
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string {
	return escaper.Replace(s)
}
