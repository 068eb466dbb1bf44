package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/pdbfold/internal/logging"
	"github.com/danmuck/pdbfold/internal/pdb"
)

// Config is the resolved pdbfold configuration.
type Config struct {
	Workers         int
	Format          string
	Strict          bool
	FailFast        bool
	LogLevel        string
	MetricsTextfile string
	// Records restricts parsing to these tags. Empty means every supported tag.
	Records []string
}

type fileConfig struct {
	Workers         int      `toml:"workers"`
	Format          string   `toml:"format"`
	Strict          bool     `toml:"strict"`
	FailFast        bool     `toml:"fail_fast"`
	LogLevel        string   `toml:"log_level"`
	MetricsTextfile string   `toml:"metrics_textfile"`
	Records         []string `toml:"records"`
}

var formats = map[string]bool{"json": true, "yaml": true}

func Default() Config {
	return Config{
		Workers:  runtime.GOMAXPROCS(0),
		Format:   "json",
		LogLevel: "info",
		Records:  []string{},
	}
}

// Load reads a TOML file over Default. Keys absent from the file keep their
// default; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("load config (%s): unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}
	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
	}
	if meta.IsDefined("fail_fast") {
		cfg.FailFast = raw.FailFast
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("metrics_textfile") {
		cfg.MetricsTextfile = strings.TrimSpace(raw.MetricsTextfile)
	}
	if meta.IsDefined("records") {
		cfg.Records = normalizeRecords(raw.Records)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if !formats[cfg.Format] {
		return fmt.Errorf("unknown format %q (want json or yaml)", cfg.Format)
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if _, err := pdb.DefaultRegistry(cfg.Records...); err != nil {
		return fmt.Errorf("records: %w", err)
	}
	return nil
}

func normalizeRecords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, tag := range in {
		v := strings.ToUpper(strings.TrimSpace(tag))
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
