package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/spencer-p/daylightchart/pkg/cache"
	"github.com/spencer-p/daylightchart/pkg/data"
	"github.com/spencer-p/daylightchart/pkg/daylight"
	"github.com/spencer-p/daylightchart/pkg/ephemeris"
	"github.com/spencer-p/daylightchart/pkg/metrics"
	"github.com/spencer-p/daylightchart/pkg/report"
	"github.com/spencer-p/daylightchart/pkg/riseset"
	"github.com/spencer-p/daylightchart/pkg/sunset"
	"github.com/spencer-p/daylightchart/pkg/visualize"
)

const (
	day            = 24 * time.Hour
	forecastLength = 7 * day
	maxForecast    = 366
)

// Locations stores named places. *data.Store is the real thing.
type Locations interface {
	List() ([]data.Location, error)
	Get(name string) (data.Location, error)
	Save(loc data.Location) (data.Location, error)
	Delete(name string) error
}

type Config struct {
	Prefix   string
	CacheTTL time.Duration

	// Solver names one of daylight.Solvers.
	Solver string

	SessionKey    string
	EncryptionKey string
}

// Server answers chart requests.
type Server struct {
	prefix     string
	solver     riseset.Solver
	solverName string

	logger    *zap.Logger
	locations Locations
	cache     *cache.Timed[[]byte]
	sessions  sessions.Store

	// now is swapped out by tests.
	now func() time.Time
}

// New builds a server. locs may be nil, in which case the saved location
// endpoints are not registered.
func New(cfg Config, logger *zap.Logger, locs Locations) (*Server, error) {
	solver, err := daylight.SolverByName(cfg.Solver)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	name := cfg.Solver
	if name == "" {
		name = "interpolation"
	}
	if cfg.SessionKey == "" || cfg.EncryptionKey == "" {
		logger.Warn("Session cookies are using the built in default keys; set SESSION_KEY and ENCRYPTION_KEY",
			zap.Bool("session_key_set", cfg.SessionKey != ""),
			zap.Bool("encryption_key_set", cfg.EncryptionKey != ""))
	}
	return &Server{
		prefix:     cfg.Prefix,
		solver:     solver,
		solverName: name,
		logger:     logger,
		locations:  locs,
		cache:      cache.NewTimed[[]byte](cfg.CacheTTL),
		sessions:   newCookieStore(cfg.SessionKey, cfg.EncryptionKey),
		now:        time.Now,
	}, nil
}

func (s *Server) Register(r *mux.Router) {
	r.Handle("/", s.makeIndexHandler()).Methods("GET")
	r.Handle("/api/v1/riseset", s.chartHandler("application/json", writeJSON)).Methods("GET")
	r.Handle("/api/v1/summary", s.chartHandler("application/json", writeSummary)).Methods("GET")
	r.Handle("/chart.svg", s.chartHandler("image/svg+xml", writeSVG)).Methods("GET")
	r.Handle("/report.tsv", s.chartHandler("text/tab-separated-values", report.WriteCalculations)).Methods("GET")
	r.Handle("/api/v1/sunevents", s.makeServeSunEvents()).Methods("GET")
	if s.locations != nil {
		r.HandleFunc("/api/v1/locations", s.listLocations).Methods("GET")
		r.HandleFunc("/api/v1/locations", s.saveLocation).Methods("POST")
		r.HandleFunc("/api/v1/locations/{name}", s.deleteLocation).Methods("DELETE")
	}
}

func writeJSON(w io.Writer, c *daylight.Chart) error {
	return json.NewEncoder(w).Encode(c)
}

func writeSummary(w io.Writer, c *daylight.Chart) error {
	return json.NewEncoder(w).Encode(report.Summarize(c))
}

func writeSVG(w io.Writer, c *daylight.Chart) error {
	_, err := visualize.NewChart(c).Encode(w)
	return err
}

// query reads the chart query of r, falling back to the one remembered in the
// session, and remembers the result.
func (s *Server) query(w http.ResponseWriter, r *http.Request) (chartQuery, error) {
	v := r.URL.Query()
	session := s.session(r)
	if !hasPlace(v) {
		if last, ok := lastQuery(session); ok {
			for k, vals := range v {
				last[k] = vals
			}
			v = last
		}
	}
	q, err := parseQuery(v, s.now(), s.locations)
	if err != nil {
		return q, err
	}
	rememberQuery(session, q)
	if err := session.Save(r, w); err != nil {
		s.logger.Warn("Failed to save session", zap.Error(err))
	}
	return q, nil
}

func (s *Server) compute(q chartQuery) (*daylight.Chart, error) {
	opts := q.options()
	opts.Solver = s.solver
	opts.Logger = s.logger
	start := time.Now()
	c, err := daylight.Compute(q.Place, q.Year, opts)
	if err != nil {
		return nil, err
	}
	metrics.ObserveChart(s.solverName, q.Twilight.ShortName(), time.Since(start))
	return c, nil
}

// chartHandler serves charts encoded by write, caching the encoded result.
func (s *Server) chartHandler(contentType string, write func(io.Writer, *daylight.Chart) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q, err := s.query(w, r)
		if err != nil {
			s.fail(w, err)
			return
		}

		// cache based on the path and the canonical query, which covers
		// queries filled in from the session
		key := fmt.Sprintf("%s %s?%s", r.Method, r.URL.Path, q.values().Encode())
		cached, ok := s.cache.Get(key)
		metrics.ObserveCache(ok)
		if ok {
			w.Header().Add("Content-Type", contentType)
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		c, err := s.compute(q)
		if err != nil {
			s.fail(w, err)
			return
		}

		// encode fully before writing so a failure can still be reported
		var buf bytes.Buffer
		if err := write(&buf, c); err != nil {
			s.fail(w, fmt.Errorf("failed to encode chart: %w", err))
			return
		}
		w.Header().Add("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
		s.cache.Set(key, buf.Bytes())
	})
}

// makeServeSunEvents lists the sunrises and sunsets of the coming days.
func (s *Server) makeServeSunEvents() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q, err := s.query(w, r)
		if err != nil {
			s.fail(w, err)
			return
		}
		length := forecastLength
		if d := r.FormValue("days"); d != "" {
			n, err := strconv.Atoi(d)
			if err != nil || n < 1 || n > maxForecast {
				s.fail(w, fmt.Errorf("%w: days %q", errBadQuery, d))
				return
			}
			length = time.Duration(n) * day
		}

		events, err := sunset.GetSunEventsWith(s.solver, s.now(), length, q.Place)
		if err != nil {
			s.fail(w, err)
			return
		}

		if r.FormValue("o") == "json" {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if err := json.NewEncoder(w).Encode(events); err != nil {
				s.logger.Error("Failed to encode JSON result", zap.Error(err))
			}
			return
		}
		w.Header().Add("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		for i := range events {
			fmt.Fprintf(w, "%s\n", events[i].String())
		}
	})
}

// fail reports err with a status matching its cause.
func (s *Server) fail(w http.ResponseWriter, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.Error(err))
	} else {
		s.logger.Debug("Rejected request", zap.Error(err), zap.Int("code", code))
	}
	http.Error(w, err.Error(), code)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, data.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadQuery),
		errors.Is(err, ephemeris.ErrLatitude),
		errors.Is(err, ephemeris.ErrLongitude),
		errors.Is(err, ephemeris.ErrOffset),
		errors.Is(err, ephemeris.ErrYear),
		errors.Is(err, sunset.ErrUnknownZone),
		errors.Is(err, riseset.ErrUnsupported):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
