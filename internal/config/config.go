package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"getthetext/internal/extractor"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "getthetext.yaml"

type Config struct {
	Markers struct {
		// nil means "use the defaults"; an explicit empty list disables the category.
		Methods    []string `yaml:"methods"`
		Attributes []string `yaml:"attributes"`
	} `yaml:"markers"`
	Scan struct {
		Language  string   `yaml:"language"`
		Recursive bool     `yaml:"recursive"`
		Ignore    []string `yaml:"ignore"`
		Jobs      int      `yaml:"jobs"`
	} `yaml:"scan"`
	Cache struct {
		Path string `yaml:"path"`
	} `yaml:"cache"`
	Output struct {
		Color *bool `yaml:"color"`
	} `yaml:"output"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	var cfg Config
	cfg.Scan.Language = "csharp"
	cfg.Scan.Jobs = runtime.NumCPU()
	cfg.Scan.Ignore = []string{".git", ".vs", "bin", "obj", "node_modules"}
	return &cfg
}

// LoadConfig builds the configuration from defaults, an optional .env file,
// the YAML file at path and GETTHETEXT_* environment variables, in that order.
// A missing file at path is not an error when optional is set.
func LoadConfig(path string, optional bool) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case optional && errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// 3. Override with Environment Variables if present
	if v, ok := os.LookupEnv("GETTHETEXT_METHODS"); ok {
		cfg.Markers.Methods = ParseNameList(v)
	}
	if v, ok := os.LookupEnv("GETTHETEXT_ATTRIBUTES"); ok {
		cfg.Markers.Attributes = ParseNameList(v)
	}
	if v := os.Getenv("GETTHETEXT_JOBS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("GETTHETEXT_JOBS: %w", err)
		}
		cfg.Scan.Jobs = n
	}
	if v := os.Getenv("GETTHETEXT_CACHE"); v != "" {
		cfg.Cache.Path = v
	}

	if cfg.Scan.Jobs < 1 {
		cfg.Scan.Jobs = 1
	}
	return cfg, nil
}

// MarkerSet turns the configured name lists into the immutable marker set.
func (c *Config) MarkerSet() extractor.Markers {
	return extractor.NewMarkers(c.Markers.Methods, c.Markers.Attributes)
}

// ParseNameList splits a comma- or colon-separated list of names.
// Empty entries are dropped; the result is never nil.
func ParseNameList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ':'
	})
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			names = append(names, f)
		}
	}
	return names
}
