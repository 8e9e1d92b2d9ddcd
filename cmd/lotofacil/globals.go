package main

import (
	"context"
	"fmt"
	"os"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/lotofacil/cmd/lotofacil/shared"
	"github.com/lox/lotofacil/internal/config"
	"github.com/lox/lotofacil/internal/history"
	"github.com/lox/lotofacil/internal/render"
	"github.com/lox/lotofacil/lotto"
)

// Globals are flags shared by every command. Analysis flags left unset keep
// the value from the config file or environment.
type Globals struct {
	Config  string `short:"c" help:"HCL config file" type:"path"`
	EnvFile string `name:"env-file" help:"Dotenv file loaded before reading LOTOFACIL_* variables" default:".env" type:"path"`
	Debug   bool   `help:"Enable debug logging"`
	LogJSON bool   `name:"log-json" help:"Log as JSON"`
	NoColor bool   `name:"no-color" help:"Disable colored output"`

	Data  string `short:"d" help:"Local CSV or XLSX draw table" type:"path"`
	URL   string `help:"URL of a CSV or XLSX draw table"`
	Sheet string `help:"Workbook sheet (default: first)"`

	Seed     *int64 `help:"Random seed for reproducible games"`
	Window   *int   `short:"w" help:"Number of most recent draws to analyze (0 = all)"`
	Quantity *int   `short:"n" help:"Games to generate"`
	Hot      *int   `help:"Size of the hot set"`
	Cold     *int   `help:"Size of the cold set"`
	SumMin   *int   `name:"sum-min" help:"Minimum sum of a game"`
	SumMax   *int   `name:"sum-max" help:"Maximum sum of a game"`
	EvenMin  *int   `name:"even-min" help:"Minimum even numbers in a game"`
	EvenMax  *int   `name:"even-max" help:"Maximum even numbers in a game"`
	Mix      *int   `help:"Numbers a heavy strategy borrows from the opposite set"`
}

// session is what every command needs: resolved settings, a logger, a
// printer and the draw history
type session struct {
	cfg     config.Config
	logger  zerolog.Logger
	printer *render.Printer
	history lotto.History
}

func (g *Globals) settings() (config.Config, error) {
	if err := config.LoadDotEnv(g.EnvFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(g.Config, config.EnvLookup)
	if err != nil {
		return config.Config{}, err
	}

	a := &cfg.Analysis
	for _, o := range []struct {
		flag *int
		dst  *int
	}{
		{g.Window, &a.Window},
		{g.Quantity, &a.Quantity},
		{g.Hot, &a.Hot},
		{g.Cold, &a.Cold},
		{g.SumMin, &a.SumMin},
		{g.SumMax, &a.SumMax},
		{g.EvenMin, &a.EvenMin},
		{g.EvenMax, &a.EvenMax},
		{g.Mix, &a.Mix},
	} {
		if o.flag != nil {
			*o.dst = *o.flag
		}
	}
	if g.Seed != nil {
		a.Seed = g.Seed
	}
	if g.Data != "" {
		cfg.Source.File = g.Data
	}
	if g.URL != "" {
		cfg.Source.URL = g.URL
	}
	if g.Sheet != "" {
		cfg.Source.Sheet = g.Sheet
	}

	return cfg, cfg.Validate()
}

func source(cfg config.Source, logger zerolog.Logger) (history.Source, error) {
	var local history.Source
	if cfg.File != "" {
		local = history.FileSource{Path: cfg.File, Sheet: cfg.Sheet}
	}
	if cfg.URL == "" {
		if local == nil {
			return nil, fmt.Errorf("%w: set --data, --url or a source block", lotto.ErrDataUnavailable)
		}
		return local, nil
	}

	remote := history.NewCache(
		history.NewHTTPSource(cfg.URL,
			history.WithTimeout(cfg.Timeout),
			history.WithSheet(cfg.Sheet),
			history.WithSourceLogger(logger),
		),
		cfg.TTL,
		quartz.NewReal(),
		logger,
	)
	if local == nil {
		return remote, nil
	}
	return history.FallbackSource{Primary: remote, Fallback: local, Logger: logger}, nil
}

func (g *Globals) logger() zerolog.Logger {
	return shared.SetupLogger(g.Debug, g.LogJSON)
}

func (g *Globals) printer() *render.Printer {
	return render.New(os.Stdout, g.NoColor)
}

func (g *Globals) open(ctx context.Context, logger zerolog.Logger) (*session, error) {
	cfg, err := g.settings()
	if err != nil {
		return nil, err
	}

	src, err := source(cfg.Source, logger)
	if err != nil {
		return nil, err
	}
	h, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if h.Len() == 0 {
		return nil, fmt.Errorf("%w: the draw table has no rows", lotto.ErrDataUnavailable)
	}

	latest, _ := h.Latest()
	logger.Debug().
		Int("draws", h.Len()).
		Int("latest_contest", latest.Contest).
		Msg("Loaded draw history")

	return &session{
		cfg:     cfg,
		logger:  logger,
		printer: g.printer(),
		history: h,
	}, nil
}

// window returns the configured slice of history
func (s *session) window() lotto.History {
	return s.history.Window(s.cfg.Analysis.Window)
}
