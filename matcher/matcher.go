package matcher

import (
	"errors"

	"go.uber.org/zap"

	"github.com/gnolang/eslex/lexer"
)

// ErrInvalidPattern is returned when a pattern has no tokens to match.
var ErrInvalidPattern = errors.New("matcher: invalid pattern: no tokens")

// BracketMode decides what the per-attempt bracket counters do.
type BracketMode int

const (
	// BracketsInert computes the counters but never consults them.
	BracketsInert BracketMode = iota
	// BracketsBalanced rejects a match unless every bracket family the
	// pattern touches nets out to zero.
	BracketsBalanced
)

func (m BracketMode) String() string {
	switch m {
	case BracketsInert:
		return "inert"
	case BracketsBalanced:
		return "balanced"
	default:
		return "unknown"
	}
}

// ParseBracketMode accepts "inert", "balanced" or "" (inert).
func ParseBracketMode(s string) (BracketMode, error) {
	switch s {
	case "", "inert":
		return BracketsInert, nil
	case "balanced":
		return BracketsBalanced, nil
	}
	return BracketsInert, errors.New("matcher: unknown bracket mode " + s)
}

type config struct {
	brackets BracketMode
	logger   *zap.Logger
}

// Option configures Find.
type Option func(*config)

func WithBrackets(mode BracketMode) Option {
	return func(c *config) { c.brackets = mode }
}

// WithLogger sends per-attempt debug records to logger. The default is a no-op.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newConfig(opts []Option) config {
	c := config{brackets: BracketsInert, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// FindSource tokenizes document and pattern and returns Find's result.
func FindSource(document, pattern string, opts ...Option) ([]lexer.Range, error) {
	return Find(lexer.Tokenize(document), lexer.Tokenize(pattern), opts...)
}

// Find returns the range of every place the pattern recurs in the document,
// in the order the occurrences end. Comments in the document are skipped
// over; comments in the pattern are dropped before matching.
//
// Each occurrence is found by anchoring on a document token equal to the
// last pattern token and walking both streams backward.
func Find(document, pattern []lexer.Token, opts ...Option) ([]lexer.Range, error) {
	pattern = lexer.StripComments(pattern)
	if len(pattern) == 0 {
		return nil, ErrInvalidPattern
	}
	c := newConfig(opts)

	anchor := pattern[len(pattern)-1]
	ranges := make([]lexer.Range, 0)
	for i, tok := range document {
		if !tok.Same(anchor) {
			continue
		}
		if r, ok := c.attempt(document, pattern, i); ok {
			ranges = append(ranges, r)
		}
	}
	return ranges, nil
}

// attempt tries to match pattern so that its last token lands on document[at].
func (c config) attempt(document, pattern []lexer.Token, at int) (lexer.Range, bool) {
	matched := make([]lexer.Token, 0, len(pattern))
	counters := newBracketCounters(c.brackets)

	i, j := at, len(pattern)-1
	for j >= 0 {
		if i < 0 {
			c.logger.Debug("attempt ran off document start", zap.Int("anchor", at))
			return lexer.Range{}, false
		}
		doc := document[i]
		if doc.IsComment() {
			c.logger.Debug("skip comment", zap.String("text", doc.Text), zap.Stringer("at", doc.Range.Start))
			i--
			continue
		}

		want := pattern[j]
		counters.track(want.Kind)

		if !doc.Same(want) {
			c.logger.Debug("attempt failed",
				zap.Int("anchor", at),
				zap.Stringer("want", want.Kind),
				zap.Stringer("got", doc.Kind),
			)
			return lexer.Range{}, false
		}
		matched = append(matched, doc)
		i--
		j--
	}

	if !counters.balanced() {
		c.logger.Debug("attempt rejected: unbalanced brackets", zap.Int("anchor", at), zap.Any("counters", counters.counts))
		return lexer.Range{}, false
	}

	// matched runs from the anchor backward
	first, last := matched[len(matched)-1], matched[0]
	return lexer.Range{Start: first.Range.Start, End: last.Range.End}, true
}

// bracketCounters tracks per-family nesting for one match attempt.
type bracketCounters struct {
	mode   BracketMode
	counts map[string]int
}

func newBracketCounters(mode BracketMode) *bracketCounters {
	return &bracketCounters{mode: mode, counts: make(map[string]int)}
}

func (b *bracketCounters) track(kind lexer.TokenKind) {
	family, open := kind.Family()
	if family == "" {
		return
	}
	count, tracked := b.counts[family]
	switch {
	case open:
		b.counts[family] = count + 1
	case tracked || b.mode == BracketsBalanced:
		// inert mode only decrements families an opener already started
		b.counts[family] = count - 1
	}
}

func (b *bracketCounters) balanced() bool {
	if b.mode != BracketsBalanced {
		return true
	}
	for _, n := range b.counts {
		if n != 0 {
			return false
		}
	}
	return true
}
