// Package config resolves analysis settings from defaults, an HCL file and
// the environment. Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	"github.com/lox/lotofacil/internal/generator"
	"github.com/lox/lotofacil/internal/history"
	"github.com/lox/lotofacil/internal/strategy"
	"github.com/lox/lotofacil/lotto"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "LOTOFACIL_"

const (
	MaxQuantity = 50
	MinSum      = 120 // 1+2+...+15
	MaxSum      = 270 // 11+12+...+25
)

// Config holds every tunable of an analysis pass
type Config struct {
	Analysis Analysis
	Source   Source
}

// Analysis holds the engine parameters
type Analysis struct {
	Quantity          int
	Window            int // 0 uses the whole history
	SumMin            int
	SumMax            int
	EvenMin           int
	EvenMax           int
	Hot               int
	Cold              int
	CoverageTarget    int
	Mix               int
	MaxAttemptsFactor int
	Seed              *int64 // nil picks a fresh seed per run
}

// Source says where the draw history comes from
type Source struct {
	URL     string
	File    string
	Sheet   string
	TTL     time.Duration
	Timeout time.Duration
}

// Default returns the built-in configuration
func Default() Config {
	c := generator.DefaultConstraints()
	return Config{
		Analysis: Analysis{
			Quantity:          10,
			Window:            100,
			SumMin:            c.SumMin,
			SumMax:            c.SumMax,
			EvenMin:           c.EvenMin,
			EvenMax:           c.EvenMax,
			Hot:               15,
			Cold:              15,
			CoverageTarget:    10,
			Mix:               strategy.DefaultMix,
			MaxAttemptsFactor: generator.DefaultAttemptFactor,
		},
		Source: Source{
			TTL:     history.DefaultTTL,
			Timeout: 30 * time.Second,
		},
	}
}

// Constraints returns the generator bounds
func (a Analysis) Constraints() generator.Constraints {
	return generator.Constraints{
		SumMin:  a.SumMin,
		SumMax:  a.SumMax,
		EvenMin: a.EvenMin,
		EvenMax: a.EvenMax,
	}
}

// Lookup reads one environment variable
type Lookup func(key string) (string, bool)

// Load layers the HCL file at path (skipped when empty) and then the
// environment over the defaults. The result is not validated.
func Load(path string, env Lookup) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	if env != nil {
		if err := cfg.applyEnv(env); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// LoadDotEnv copies variables from .env files into the process environment
// without overriding ones already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

type fileConfig struct {
	Analysis *analysisBlock `hcl:"analysis,block"`
	Source   *sourceBlock   `hcl:"source,block"`
}

type analysisBlock struct {
	Quantity          *int   `hcl:"quantity,optional"`
	Window            *int   `hcl:"window,optional"`
	SumMin            *int   `hcl:"sum_min,optional"`
	SumMax            *int   `hcl:"sum_max,optional"`
	EvenMin           *int   `hcl:"even_min,optional"`
	EvenMax           *int   `hcl:"even_max,optional"`
	Hot               *int   `hcl:"hot,optional"`
	Cold              *int   `hcl:"cold,optional"`
	CoverageTarget    *int   `hcl:"coverage_target,optional"`
	Mix               *int   `hcl:"mix,optional"`
	MaxAttemptsFactor *int   `hcl:"max_attempts_factor,optional"`
	Seed              *int64 `hcl:"seed,optional"`
}

type sourceBlock struct {
	URL     *string `hcl:"url,optional"`
	File    *string `hcl:"file,optional"`
	Sheet   *string `hcl:"sheet,optional"`
	TTL     *string `hcl:"ttl,optional"`
	Timeout *string `hcl:"timeout,optional"`
}

func (c *Config) applyFile(path string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse config %s: %s", path, diags.Error())
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return fmt.Errorf("failed to decode config %s: %s", path, diags.Error())
	}

	if a := fc.Analysis; a != nil {
		set(&c.Analysis.Quantity, a.Quantity)
		set(&c.Analysis.Window, a.Window)
		set(&c.Analysis.SumMin, a.SumMin)
		set(&c.Analysis.SumMax, a.SumMax)
		set(&c.Analysis.EvenMin, a.EvenMin)
		set(&c.Analysis.EvenMax, a.EvenMax)
		set(&c.Analysis.Hot, a.Hot)
		set(&c.Analysis.Cold, a.Cold)
		set(&c.Analysis.CoverageTarget, a.CoverageTarget)
		set(&c.Analysis.Mix, a.Mix)
		set(&c.Analysis.MaxAttemptsFactor, a.MaxAttemptsFactor)
		if a.Seed != nil {
			c.Analysis.Seed = a.Seed
		}
	}

	if s := fc.Source; s != nil {
		set(&c.Source.URL, s.URL)
		set(&c.Source.File, s.File)
		set(&c.Source.Sheet, s.Sheet)
		if err := setDuration(&c.Source.TTL, "ttl", s.TTL); err != nil {
			return err
		}
		if err := setDuration(&c.Source.Timeout, "timeout", s.Timeout); err != nil {
			return err
		}
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, field string, v *string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return lotto.Invalid(field, *v, "is not a duration")
	}
	*dst = d
	return nil
}

func (c *Config) applyEnv(env Lookup) error {
	ints := map[string]*int{
		"QUANTITY":            &c.Analysis.Quantity,
		"WINDOW":              &c.Analysis.Window,
		"SUM_MIN":             &c.Analysis.SumMin,
		"SUM_MAX":             &c.Analysis.SumMax,
		"EVEN_MIN":            &c.Analysis.EvenMin,
		"EVEN_MAX":            &c.Analysis.EvenMax,
		"HOT":                 &c.Analysis.Hot,
		"COLD":                &c.Analysis.Cold,
		"COVERAGE_TARGET":     &c.Analysis.CoverageTarget,
		"MIX":                 &c.Analysis.Mix,
		"MAX_ATTEMPTS_FACTOR": &c.Analysis.MaxAttemptsFactor,
	}
	for name, dst := range ints {
		v, ok := env(EnvPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return lotto.Invalid(EnvPrefix+name, v, "is not an integer")
		}
		*dst = n
	}

	if v, ok := env(EnvPrefix + "SEED"); ok && strings.TrimSpace(v) != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return lotto.Invalid(EnvPrefix+"SEED", v, "is not an integer")
		}
		c.Analysis.Seed = &seed
	}

	strs := map[string]*string{
		"URL":   &c.Source.URL,
		"FILE":  &c.Source.File,
		"SHEET": &c.Source.Sheet,
	}
	for name, dst := range strs {
		if v, ok := env(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	for name, dst := range map[string]*time.Duration{"TTL": &c.Source.TTL, "TIMEOUT": &c.Source.Timeout} {
		if v, ok := env(EnvPrefix + name); ok && v != "" {
			if err := setDuration(dst, EnvPrefix+name, &v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Validate reports the first bound the configuration violates
func (c Config) Validate() error {
	a := c.Analysis
	switch {
	case a.Quantity < 1 || a.Quantity > MaxQuantity:
		return lotto.Invalid("quantity", a.Quantity, "must be between 1 and %d", MaxQuantity)
	case a.Window < 0:
		return lotto.Invalid("window", a.Window, "must not be negative")
	case a.SumMin < MinSum || a.SumMin > MaxSum:
		return lotto.Invalid("sum min", a.SumMin, "must be between %d and %d", MinSum, MaxSum)
	case a.SumMax < a.SumMin || a.SumMax > MaxSum:
		return lotto.Invalid("sum max", a.SumMax, "must be between sum min %d and %d", a.SumMin, MaxSum)
	case a.EvenMin < 0 || a.EvenMin > lotto.DrawSize:
		return lotto.Invalid("even min", a.EvenMin, "must be between 0 and %d", lotto.DrawSize)
	case a.EvenMax < a.EvenMin || a.EvenMax > lotto.DrawSize:
		return lotto.Invalid("even max", a.EvenMax, "must be between even min %d and %d", a.EvenMin, lotto.DrawSize)
	case a.Hot < 1 || a.Hot > lotto.Universe:
		return lotto.Invalid("hot", a.Hot, "must be between 1 and %d", lotto.Universe)
	case a.Cold < 1 || a.Cold > lotto.Universe:
		return lotto.Invalid("cold", a.Cold, "must be between 1 and %d", lotto.Universe)
	case a.CoverageTarget < 1:
		return lotto.Invalid("coverage target", a.CoverageTarget, "must be at least 1")
	case a.Mix < 0 || a.Mix > lotto.DrawSize:
		return lotto.Invalid("mix", a.Mix, "must be between 0 and %d", lotto.DrawSize)
	case a.MaxAttemptsFactor < 1:
		return lotto.Invalid("max attempts factor", a.MaxAttemptsFactor, "must be at least 1")
	case c.Source.TTL < 0:
		return lotto.Invalid("ttl", c.Source.TTL, "must not be negative")
	case c.Source.Timeout < 0:
		return lotto.Invalid("timeout", c.Source.Timeout, "must not be negative")
	}
	return nil
}

// EnvLookup reads the process environment
func EnvLookup(key string) (string, bool) {
	return os.LookupEnv(key)
}
