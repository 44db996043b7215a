package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spencer-p/daylightchart/pkg/data"
	"github.com/spencer-p/daylightchart/pkg/handlers"
	"github.com/spencer-p/daylightchart/pkg/logging"
	"github.com/spencer-p/daylightchart/pkg/metrics"
)

type Config struct {
	Port   string `default:"8080"`
	Prefix string `default:"/"`
	Debug  bool

	// cache for slightly less than one day so daily clients don't see stale
	// data
	CacheTTL time.Duration `default:"23h" split_words:"true"`
	Solver   string        `default:"interpolation"`

	// DatabaseURL enables saved locations. Without it the libpq variables
	// are used if PGHOST is set.
	DatabaseURL   string `split_words:"true"`
	SessionKey    string `split_words:"true"`
	EncryptionKey string `split_words:"true"`
}

// dsn picks the database to connect to, if any.
func (c Config) dsn() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	if os.Getenv("PGHOST") == "" {
		return "", nil
	}
	var pg data.PostgresConfig
	if err := envconfig.Process("", &pg); err != nil {
		return "", err
	}
	return pg.DSN(), nil
}

func main() {
	// A missing .env file is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to read .env: %v", err)
	}

	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal(err.Error())
	}

	logger, err := logging.New(env.Debug)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer logger.Sync()

	var locs handlers.Locations
	dsn, err := env.dsn()
	if err != nil {
		logger.Fatal("Bad database configuration", zap.Error(err))
	}
	if dsn != "" {
		store, err := data.OpenPostgres(dsn)
		if err != nil {
			logger.Fatal("Failed to open database", zap.Error(err))
		}
		locs = store
	} else {
		logger.Info("No database configured, saved locations are disabled")
	}

	server, err := handlers.New(handlers.Config{
		Prefix:        env.Prefix,
		CacheTTL:      env.CacheTTL,
		Solver:        env.Solver,
		SessionKey:    env.SessionKey,
		EncryptionKey: env.EncryptionKey,
	}, logger, locs)
	if err != nil {
		logger.Fatal("Failed to set up handlers", zap.Error(err))
	}

	r := mux.NewRouter().StrictSlash(true)
	r.Handle("/metrics", promhttp.Handler())
	s := r.PathPrefix(env.Prefix).Subrouter()
	server.Register(s)
	s.Use(metrics.LatencyHandler)
	s.Use(func(next http.Handler) http.Handler {
		return logging.Requests(logger, next)
	})

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	logger.Info("Listening and serving",
		zap.String("addr", srv.Addr),
		zap.String("prefix", env.Prefix),
		zap.String("solver", env.Solver))
	logger.Fatal("Server stopped", zap.Error(srv.ListenAndServe()))
}
