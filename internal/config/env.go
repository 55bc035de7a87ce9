package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultSamples      = 100
	DefaultSpanFraction = 0.99
	DefaultOutputDir    = "."

	EnvSamples      = "GOBEAM_SAMPLES"
	EnvSpanFraction = "GOBEAM_SPAN_FRACTION"
	EnvOutputDir    = "GOBEAM_OUTPUT_DIR"
)

// Env holds the sampling and output settings that may come from the
// environment or a .env file.
type Env struct {
	Samples      int
	SpanFraction float64
	OutputDir    string
}

func DefaultEnv() Env {
	return Env{
		Samples:      DefaultSamples,
		SpanFraction: DefaultSpanFraction,
		OutputDir:    DefaultOutputDir,
	}
}

// LoadEnv reads the given dotenv files (".env" when none are named) and then
// the process environment, which takes precedence. Missing files are ignored.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	vars := map[string]string{}
	for _, f := range files {
		m, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Env{}, fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range m {
			vars[k] = v
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := vars[key]
		return v, ok && v != ""
	}

	env := DefaultEnv()
	if v, ok := lookup(EnvSamples); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Env{}, fmt.Errorf("%s: %w", EnvSamples, err)
		}
		env.Samples = n
	}
	if v, ok := lookup(EnvSpanFraction); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Env{}, fmt.Errorf("%s: %w", EnvSpanFraction, err)
		}
		env.SpanFraction = f
	}
	if v, ok := lookup(EnvOutputDir); ok {
		env.OutputDir = v
	}
	return env, env.Validate()
}

// Validate checks the sampling settings.
func (e Env) Validate() error {
	if e.Samples < 2 {
		return fmt.Errorf("samples must be at least 2, got %d", e.Samples)
	}
	if !(e.SpanFraction > 0 && e.SpanFraction <= 1) {
		return fmt.Errorf("span fraction must be in (0, 1], got %g", e.SpanFraction)
	}
	return nil
}
