package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/gnolang/eslex/internal/nolint"
	tt "github.com/gnolang/eslex/internal/types"
	"github.com/gnolang/eslex/lexer"
	"github.com/gnolang/eslex/matcher"
)

// DefaultExtensions are the file extensions the engine accepts when none are configured.
var DefaultExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx"}

// Engine runs a set of pattern rules over source files.
type Engine struct {
	rules        map[string]*Rule
	ignoredRules map[string]bool
	ignoredPaths []string
	extensions   map[string]bool
	brackets     matcher.BracketMode
	cache        *Cache
	logger       *zap.Logger

	watchMu    sync.Mutex
	isWatching bool
}

// Rule is a compiled ConfigRule.
type Rule struct {
	Name     string
	Message  string
	Severity tt.Severity
	pattern  []lexer.Token
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithBrackets(mode matcher.BracketMode) EngineOption {
	return func(e *Engine) { e.brackets = mode }
}

// WithExtensions restricts Accepts to the given extensions.
func WithExtensions(exts ...string) EngineOption {
	return func(e *Engine) {
		if len(exts) == 0 {
			return
		}
		e.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			e.extensions[ext] = true
		}
	}
}

// WithCache makes Run reuse results for files that have not changed.
func WithCache(c *Cache) EngineOption {
	return func(e *Engine) { e.cache = c }
}

// NewEngine compiles rules into a new engine. Rules whose severity is off are
// left out; a rule whose pattern holds no tokens is an error.
func NewEngine(rules map[string]tt.ConfigRule, opts ...EngineOption) (*Engine, error) {
	engine := &Engine{
		rules:        make(map[string]*Rule, len(rules)),
		ignoredRules: make(map[string]bool),
		logger:       zap.NewNop(),
	}
	WithExtensions(DefaultExtensions...)(engine)
	for _, opt := range opts {
		opt(engine)
	}

	for name, cfg := range rules {
		if cfg.Severity == tt.SeverityOff {
			continue
		}
		rule, err := compileRule(name, cfg)
		if err != nil {
			return nil, err
		}
		engine.rules[name] = rule
	}

	if engine.cache != nil {
		if err := engine.cache.bind(engine.fingerprint()); err != nil {
			return nil, fmt.Errorf("binding cache: %w", err)
		}
	}
	return engine, nil
}

// fingerprint identifies everything that shapes Run's output besides the
// file itself: the bracket mode and every compiled rule.
func (e *Engine) fingerprint() string {
	names := make([]string, 0, len(e.rules))
	for name := range e.rules {
		names = append(names, name)
	}
	sort.Strings(names)

	h := md5.New()
	fmt.Fprintf(h, "brackets=%s\n", e.brackets)
	for _, name := range names {
		r := e.rules[name]
		fmt.Fprintf(h, "rule=%q severity=%s message=%q pattern=", r.Name, r.Severity, r.Message)
		for _, tok := range r.pattern {
			fmt.Fprintf(h, "%s:%q ", tok.Kind, tok.Text)
		}
		fmt.Fprintln(h)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func compileRule(name string, cfg tt.ConfigRule) (*Rule, error) {
	pattern := lexer.StripComments(lexer.Tokenize(cfg.Pattern))
	if len(pattern) == 0 {
		return nil, fmt.Errorf("rule %q: %w", name, matcher.ErrInvalidPattern)
	}
	message := cfg.Message
	if message == "" {
		message = fmt.Sprintf("found `%s`", strings.TrimSpace(cfg.Pattern))
	}
	return &Rule{
		Name:     name,
		Message:  message,
		Severity: cfg.Severity,
		pattern:  pattern,
	}, nil
}

// Rules returns the active rules sorted by name.
func (e *Engine) Rules() []*Rule {
	rules := make([]*Rule, 0, len(e.rules))
	for _, r := range e.rules {
		if !e.ignoredRules[r.Name] {
			rules = append(rules, r)
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Name < rules[j].Name })
	return rules
}

// Run applies all rules to the given file and returns the matches found.
func (e *Engine) Run(filename string) ([]tt.Match, error) {
	if e.IsIgnoredPath(filename) {
		return nil, nil
	}
	if e.cache != nil {
		if matches, ok := e.cache.Get(filename); ok {
			e.logger.Debug("cache hit", zap.String("file", filename))
			return e.filterIgnoredRules(matches), nil
		}
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	// cache everything that ran; rule ignores are applied on the way out
	matches := e.run(filename, source)
	if e.cache != nil {
		if err := e.cache.Set(filename, matches); err != nil {
			e.logger.Warn("failed to cache results", zap.String("file", filename), zap.Error(err))
		}
	}
	return e.filterIgnoredRules(matches), nil
}

// RunSource applies all rules to source. filename only labels the matches.
func (e *Engine) RunSource(filename string, source []byte) ([]tt.Match, error) {
	return e.filterIgnoredRules(e.run(filename, source)), nil
}

func (e *Engine) run(filename string, source []byte) []tt.Match {
	tokens := lexer.Tokenize(string(source))
	ignores := nolint.ParseTokens(filename, tokens)

	var wg sync.WaitGroup
	var mu sync.Mutex

	allMatches := make([]tt.Match, 0)
	for _, rule := range e.rules {
		wg.Add(1)
		go func(r *Rule) {
			defer wg.Done()
			ranges, err := matcher.Find(tokens, r.pattern,
				matcher.WithBrackets(e.brackets),
				matcher.WithLogger(e.logger.With(zap.String("rule", r.Name))),
			)
			if err != nil {
				e.logger.Error("rule failed", zap.String("rule", r.Name), zap.Error(err))
				return
			}

			matches := make([]tt.Match, 0, len(ranges))
			for _, rng := range ranges {
				if ignores.IsIgnored(filename, rng.Start, r.Name) {
					continue
				}
				matches = append(matches, tt.Match{
					Rule:     r.Name,
					Filename: filename,
					Message:  r.Message,
					Severity: r.Severity,
					Start:    rng.Start,
					End:      rng.End,
				})
			}

			mu.Lock()
			allMatches = append(allMatches, matches...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	SortMatches(allMatches)
	return allMatches
}

// SortMatches orders matches by file, position, then rule name.
func SortMatches(matches []tt.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Start.Offset != b.Start.Offset {
			return a.Start.Offset < b.Start.Offset
		}
		return a.Rule < b.Rule
	})
}

func (e *Engine) IgnoreRule(rule string) {
	e.ignoredRules[rule] = true
}

// IgnorePath skips files under path. Glob patterns are matched against the
// file's base name as well as its full path.
func (e *Engine) IgnorePath(path string) {
	if path == "" {
		return
	}
	e.ignoredPaths = append(e.ignoredPaths, filepath.Clean(path))
}

func (e *Engine) IsIgnoredPath(filename string) bool {
	clean := filepath.Clean(filename)
	for _, p := range e.ignoredPaths {
		if clean == p || strings.HasPrefix(clean, p+string(filepath.Separator)) {
			return true
		}
		if ok, _ := filepath.Match(p, clean); ok {
			return true
		}
		if ok, _ := filepath.Match(p, filepath.Base(clean)); ok {
			return true
		}
	}
	return false
}

// Accepts reports whether filename has one of the engine's extensions.
func (e *Engine) Accepts(filename string) bool {
	return e.extensions[filepath.Ext(filename)]
}

// Extensions returns the accepted extensions, sorted.
func (e *Engine) Extensions() []string {
	exts := make([]string, 0, len(e.extensions))
	for ext := range e.extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func (e *Engine) filterIgnoredRules(matches []tt.Match) []tt.Match {
	if len(e.ignoredRules) == 0 {
		return matches
	}
	filtered := make([]tt.Match, 0, len(matches))
	for _, m := range matches {
		if !e.ignoredRules[m.Rule] {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(string(content)), nil
}

// NewSourceCode splits text into lines the way the lexer counts them.
func NewSourceCode(text string) *SourceCode {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &SourceCode{Lines: lines}
}
