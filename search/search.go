package search

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnolang/eslex/internal"
	tt "github.com/gnolang/eslex/internal/types"
	"github.com/gnolang/eslex/scanner"
)

type SearchEngine interface {
	Run(filePath string) ([]tt.Match, error)
	RunSource(filename string, source []byte) ([]tt.Match, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
	IsIgnoredPath(path string) bool
	Accepts(filename string) bool
	Extensions() []string
}

// Source is in-memory input labelled with the name matches should carry.
type Source struct {
	Name string
	Data []byte
}

// New builds an engine from the configuration file at configurationPath.
// When the configuration names a cache directory, results are cached there
// and invalidated whenever the configuration file changes.
func New(configurationPath string, opts ...internal.EngineOption) (*internal.Engine, error) {
	config, err := ParseConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(config, configurationPath, opts...)
}

// NewFromConfig is New for a configuration already in memory. configurationPath
// may be empty; it only serves as a cache dependency.
func NewFromConfig(config Config, configurationPath string, opts ...internal.EngineOption) (*internal.Engine, error) {
	base, err := config.EngineOptions()
	if err != nil {
		return nil, err
	}
	if config.CacheDir != "" {
		var deps []string
		if configurationPath != "" {
			deps = append(deps, configurationPath)
		}
		cache, err := internal.NewCache(config.CacheDir, deps...)
		if err != nil {
			return nil, err
		}
		if config.CacheMaxAge > 0 {
			cache.SetMaxAge(config.CacheMaxAge)
		}
		base = append(base, internal.WithCache(cache))
	}
	return internal.NewEngine(config.Rules, append(base, opts...)...)
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine SearchEngine,
	sources []Source,
	processor func(SearchEngine, Source) ([]tt.Match, error),
) ([]tt.Match, error) {
	allMatches := make([]tt.Match, 0)
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return allMatches, err
		}
		matches, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.String("source", source.Name), zap.Error(err))
			}
			return nil, err
		}
		allMatches = append(allMatches, matches...)
	}

	return allMatches, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine SearchEngine,
	paths []string,
	processor func(SearchEngine, string) ([]tt.Match, error),
) ([]tt.Match, error) {
	allMatches := make([]tt.Match, 0)
	for _, path := range paths {
		matches, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return allMatches, err
		}
		allMatches = append(allMatches, matches...)
	}

	internal.SortMatches(allMatches)
	return allMatches, nil
}

type fileResult struct {
	matches []tt.Match
	err     error
}

// ProcessPath runs processor over path, or over every accepted file below it
// when path is a directory. Directory files are processed concurrently, at
// most one per CPU; a file that fails is logged and skipped.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine SearchEngine,
	path string,
	processor func(SearchEngine, string) ([]tt.Match, error),
) ([]tt.Match, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	matches := make([]tt.Match, 0)
	if !info.IsDir() {
		if !engine.Accepts(path) || engine.IsIgnoredPath(path) {
			return matches, nil
		}
		fileMatches, err := processor(engine, path)
		if err != nil {
			return nil, err
		}
		return append(matches, fileMatches...), nil
	}

	files, err := scanner.New(path, engine.Extensions()...).
		Exclude(engine.IsIgnoredPath).
		Paths()
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	defer bar.Finish()

	results := make(chan fileResult, len(files))

	// limit the number of workers
	sem := make(chan struct{}, runtime.NumCPU())

	launched := 0
	for _, filePath := range files {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		launched++
		go func(fp string) {
			defer func() { <-sem }()

			fileMatches, err := processor(engine, fp)
			if err != nil && logger != nil {
				logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			}
			_ = bar.Add(1)
			bar.Describe(filepath.Base(fp))
			results <- fileResult{matches: fileMatches, err: err}
		}(filePath)
	}

	// collect whatever was started, even when cancelled
	for i := 0; i < launched; i++ {
		r := <-results
		if r.err == nil {
			matches = append(matches, r.matches...)
		}
	}

	internal.SortMatches(matches)
	if err := ctx.Err(); err != nil {
		return matches, err
	}
	return matches, nil
}

func ProcessFile(engine SearchEngine, filePath string) ([]tt.Match, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine SearchEngine, source Source) ([]tt.Match, error) {
	return engine.RunSource(source.Name, source.Data)
}
