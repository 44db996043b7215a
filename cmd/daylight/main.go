// Command daylight prints a year of sunrises, sunsets and daylight bands for
// one place.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/spencer-p/daylightchart/pkg/daylight"
	"github.com/spencer-p/daylightchart/pkg/logging"
	"github.com/spencer-p/daylightchart/pkg/report"
	"github.com/spencer-p/daylightchart/pkg/riseset"
	"github.com/spencer-p/daylightchart/pkg/sunset"
	"github.com/spencer-p/daylightchart/pkg/visualize"
)

// Config holds the defaults for every flag, read from DAYLIGHT_ variables.
type Config struct {
	Name     string  `default:"Santa Cruz"`
	Lat      float64 `default:"36.9741"`
	Lon      float64 `default:"-122.0308"`
	Zone     string  `default:"America/Los_Angeles"`
	Year     int
	Twilight riseset.Horizon
	TZOption sunset.TimeZoneOption
	Solver   string `default:"interpolation"`
	Format   string `default:"tsv"`
	Debug    bool
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed to read .env: %v\n", err)
		os.Exit(1)
	}
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var cfg Config
	if err := envconfig.Process("daylight", &cfg); err != nil {
		return err
	}
	if cfg.Year == 0 {
		cfg.Year = time.Now().Year()
	}

	fs := flag.NewFlagSet("daylight", flag.ContinueOnError)
	fs.StringVar(&cfg.Name, "name", cfg.Name, "name of the place")
	fs.Float64Var(&cfg.Lat, "lat", cfg.Lat, "latitude in degrees, north positive")
	fs.Float64Var(&cfg.Lon, "lon", cfg.Lon, "longitude in degrees, east positive")
	fs.StringVar(&cfg.Zone, "zone", cfg.Zone, "IANA time zone of the place")
	fs.IntVar(&cfg.Year, "year", cfg.Year, "calendar year")
	fs.TextVar(&cfg.Twilight, "twilight", cfg.Twilight, "none, civil, nautical or astronomical")
	fs.TextVar(&cfg.TZOption, "tzoption", cfg.TZOption, "timezone, or local for local mean time")
	fs.StringVar(&cfg.Solver, "solver", cfg.Solver, "interpolation, closedform or reference")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "tsv, json, svg, summary or events")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log each computed series")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := zap.NewNop()
	if cfg.Debug {
		var err error
		if logger, err = logging.New(true); err != nil {
			return err
		}
		defer logger.Sync()
	}

	solver, err := daylight.SolverByName(cfg.Solver)
	if err != nil {
		return err
	}
	place, err := sunset.LoadPlace(cfg.Name, cfg.Lat, cfg.Lon, cfg.Zone)
	if err != nil {
		return err
	}

	if cfg.Format == "events" {
		start := time.Date(cfg.Year, time.January, 1, 0, 0, 0, 0, place.Location)
		end := start.AddDate(1, 0, 0)
		events, err := sunset.GetSunEventsWith(solver, start, end.Sub(start), place)
		if err != nil {
			return err
		}
		for i := range events {
			fmt.Fprintf(stdout, "%s\n", events[i].String())
		}
		return nil
	}

	c, err := daylight.Compute(place, cfg.Year, daylight.Options{
		Twilight:   cfg.Twilight,
		ZoneOption: cfg.TZOption,
		Solver:     solver,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	switch cfg.Format {
	case "tsv":
		return report.WriteCalculations(stdout, c)
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	case "svg":
		_, err := visualize.NewChart(c).Encode(stdout)
		return err
	case "summary":
		return report.WriteSummary(stdout, report.Summarize(c))
	}
	return fmt.Errorf("unknown format %q", cfg.Format)
}
