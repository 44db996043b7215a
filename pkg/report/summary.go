package report

import (
	"fmt"
	"io"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/spencer-p/daylightchart/pkg/daylight"
	"github.com/spencer-p/daylightchart/pkg/riseset"
	"github.com/spencer-p/daylightchart/pkg/timetricks"
)

// Summary describes a year of daylight in a few numbers.
type Summary struct {
	Title string `json:"title"`

	Mean   time.Duration `json:"mean"`
	StdDev time.Duration `json:"std_dev"`

	Shortest     time.Duration `json:"shortest"`
	ShortestDate time.Time     `json:"shortest_date"`
	Longest      time.Duration `json:"longest"`
	LongestDate  time.Time     `json:"longest_date"`

	DSTStart time.Time `json:"dst_start"`
	DSTEnd   time.Time `json:"dst_end"`

	Kinds map[riseset.Kind]int `json:"kinds"`
}

// Summarize measures the length of daylight on every date of c.
func Summarize(c *daylight.Chart) Summary {
	records := c.Series.Plain.Records
	s := Summary{
		Title:    c.Title(),
		DSTStart: c.Series.DSTStart,
		DSTEnd:   c.Series.DSTEnd,
		Kinds:    c.Series.Plain.Count(),
	}
	if len(records) == 0 {
		return s
	}

	hours := make([]float64, len(records))
	for i, r := range records {
		hours[i] = r.Daylight().Hours()
	}
	mean, std := stat.MeanStdDev(hours, nil)
	s.Mean = fromHours(mean)
	s.StdDev = fromHours(std)

	lo, hi := floats.MinIdx(hours), floats.MaxIdx(hours)
	s.Shortest, s.ShortestDate = records[lo].Daylight(), records[lo].Date()
	s.Longest, s.LongestDate = records[hi].Daylight(), records[hi].Date()
	return s
}

func fromHours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour)).Round(time.Second)
}

// WriteSummary writes s as a few lines of text.
func WriteSummary(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w, "%s\n"+
		"Mean daylight\t%s (standard deviation %s)\n"+
		"Shortest day\t%s\t%s\n"+
		"Longest day\t%s\t%s\n",
		s.Title,
		s.Mean, s.StdDev,
		timetricks.UniqueDay(s.ShortestDate), s.Shortest,
		timetricks.UniqueDay(s.LongestDate), s.Longest)
	if err != nil {
		return err
	}
	if !s.DSTStart.IsZero() || !s.DSTEnd.IsZero() {
		if _, err := fmt.Fprintf(w, "Clocks change\t%s\t%s\n",
			dateOrDash(s.DSTStart), dateOrDash(s.DSTEnd)); err != nil {
			return err
		}
	}
	for _, k := range []riseset.Kind{riseset.Normal, riseset.Partial, riseset.AllDaylight, riseset.AllNighttime} {
		if n := s.Kinds[k]; n > 0 {
			if _, err := fmt.Fprintf(w, "%s days\t%d\n", k, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func dateOrDash(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return timetricks.UniqueDay(t)
}
