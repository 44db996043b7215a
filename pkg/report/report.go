// Package report writes the numbers behind a daylight chart.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/spencer-p/daylightchart/pkg/bands"
	"github.com/spencer-p/daylightchart/pkg/daylight"
	"github.com/spencer-p/daylightchart/pkg/riseset"
	"github.com/spencer-p/daylightchart/pkg/timetricks"
)

// WriteCalculations writes c as tab separated values: a short header naming
// the place and year, then one row per date with the day's sunrise and
// sunset, its twilight, and the times each band holds for that date.
func WriteCalculations(w io.Writer, c *daylight.Chart) error {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	header := [][]string{
		{"Location", c.Place.String()},
		{"Date", fmt.Sprint(c.Year)},
		{},
	}
	bandRow := []string{"", "", "", "", ""}
	for _, b := range c.Bands {
		bandRow = append(bandRow, "Band", b.Name())
	}
	columns := []string{"Date", "Sunrise", "Sunset", "Twilight Rise", "Twilight Set"}
	header = append(header, bandRow, columns)
	if err := tw.WriteAll(header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	lookups := make([]map[string]riseset.DayRecord, len(c.Bands))
	for i, b := range c.Bands {
		lookups[i] = byDate(b)
	}

	for _, day := range c.Days() {
		key := timetricks.UniqueDay(day.Date)
		row := []string{key, clock(day.Plain.Sunrise()), clock(day.Plain.Sunset()), "", ""}
		if day.Twilight != nil {
			row[3], row[4] = clock(day.Twilight.Sunrise()), clock(day.Twilight.Sunset())
		}
		for _, lookup := range lookups {
			r, ok := lookup[key]
			if !ok {
				row = append(row, "", "")
				continue
			}
			row = append(row, clock(r.Sunrise()), clock(r.Sunset()))
		}
		if err := tw.Write(row); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	tw.Flush()
	return tw.Error()
}

func byDate(b bands.Band) map[string]riseset.DayRecord {
	m := make(map[string]riseset.DayRecord, b.Len())
	for _, r := range b.Records() {
		m[timetricks.UniqueDay(r.Date())] = r
	}
	return m
}

func clock(d time.Duration) string {
	return timetricks.Clock(d)
}
