package search

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/eslex/internal"
	tt "github.com/gnolang/eslex/internal/types"
	"github.com/gnolang/eslex/matcher"
)

// DefaultConfigFile is looked up in the working directory when no path is given.
const DefaultConfigFile = ".eslex.yaml"

// Config represents the overall configuration with a name and a set of rules.
type Config struct {
	Name        string                   `yaml:"name"`
	Brackets    string                   `yaml:"brackets,omitempty"`
	Extensions  []string                 `yaml:"extensions,omitempty"`
	CacheDir    string                   `yaml:"cache_dir,omitempty"`
	CacheMaxAge time.Duration            `yaml:"cache_max_age,omitempty"`
	Rules       map[string]tt.ConfigRule `yaml:"rules"`
}

// DefaultConfig is what `eslex init` writes.
func DefaultConfig() Config {
	return Config{
		Name:       "eslex",
		Brackets:   matcher.BracketsInert.String(),
		Extensions: append([]string(nil), internal.DefaultExtensions...),
		Rules: map[string]tt.ConfigRule{
			"no-eval": {
				Pattern:  "eval(",
				Message:  "eval executes arbitrary code",
				Severity: tt.SeverityError,
			},
			"no-debugger": {
				Pattern:  "debugger",
				Message:  "remove debugger statements before committing",
				Severity: tt.SeverityWarning,
			},
			"no-console-log": {
				Pattern:  "console.log(",
				Severity: tt.SeverityInfo,
			},
		},
	}
}

// EngineOptions turns the configuration into engine options.
func (c Config) EngineOptions() ([]internal.EngineOption, error) {
	mode, err := matcher.ParseBracketMode(c.Brackets)
	if err != nil {
		return nil, err
	}
	opts := []internal.EngineOption{
		internal.WithBrackets(mode),
		internal.WithExtensions(c.Extensions...),
	}
	return opts, nil
}

func ParseConfig(configurationPath string) (Config, error) {
	var config Config

	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("parsing %s: %w", configurationPath, err)
	}
	return config, nil
}

func WriteConfig(configurationPath string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
