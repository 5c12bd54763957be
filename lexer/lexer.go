package lexer

import (
	"strings"
	"unicode"

	"github.com/gnolang/eslex/internal/trie"
)

// table holds every fixed spelling for maximal-munch lookups.
var table = trie.FromMap(literals)

// Rule priorities used to break ties between equal-length candidates.
// Higher wins.
const (
	prioWhitespace = iota + 1
	prioNumeric
	prioIdentifier
	prioLiteral
	prioLineTerminator
)

// Lexer turns source text into tokens. Positions are counted in runes.
type Lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

// New returns a lexer over text with trailing whitespace removed.
func New(text string) *Lexer {
	return &Lexer{
		src:  []rune(strings.TrimRightFunc(text, unicode.IsSpace)),
		line: 1,
		col:  1,
	}
}

// Tokenize lexes the whole of text. It never fails: characters that fit no
// rule become InvalidToken, and unterminated strings or comments run to the
// end of input.
func Tokenize(text string) []Token {
	l := New(text)
	tokens := make([]Token, 0, len(l.src)/3+1)
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Location returns the position of the next unread character.
func (l *Lexer) Location() Location {
	return Location{Offset: l.pos, Line: l.line, Col: l.col}
}

// Next returns the next non-trivia token, or false at end of input.
func (l *Lexer) Next() (Token, bool) {
	for l.pos < len(l.src) {
		kind, n := l.classify()
		switch kind {
		case LineTerminator:
			l.pos += n
			l.line++
			l.col = 1
			continue
		case Whitespace:
			l.pos += n
			l.col += n
			continue
		}

		start := l.Location()
		end := l.pos + n
		switch kind {
		case SingleQuote, DoubleQuote:
			end = l.scanString(end, l.src[l.pos])
		case Divide:
			if end < len(l.src) {
				switch l.src[end] {
				case '/':
					kind, end = Comment, l.scanLineComment(end+1)
				case '*':
					kind, end = Comment, l.scanBlockComment(end+1)
				}
			}
		}

		text := string(l.src[l.pos:end])
		l.advanceTo(end)
		return Token{
			Text:  text,
			Kind:  kind,
			Range: Range{Start: start, End: l.Location()},
		}, true
	}
	return Token{}, false
}

// classify picks the kind and rune length of the lexical unit at l.pos:
// the longest candidate wins, ties go to the higher priority.
func (l *Lexer) classify() (TokenKind, int) {
	kind, length, prio := InvalidToken, 1, 0
	consider := func(k TokenKind, n, p int) {
		if n > length || (n == length && p > prio) {
			kind, length, prio = k, n, p
		}
	}

	if n := l.lineTerminatorLen(l.pos); n > 0 {
		consider(LineTerminator, n, prioLineTerminator)
	}
	if n := l.whitespaceLen(); n > 0 {
		consider(Whitespace, n, prioWhitespace)
	}
	if n := l.identifierLen(); n > 0 {
		consider(Identifier, n, prioIdentifier)
	}
	if n := l.numericLen(); n > 0 {
		consider(NumericLiteral, n, prioNumeric)
	}
	if k, n, ok := table.LongestPrefix(l.src, l.pos); ok {
		consider(k, n, prioLiteral)
	}
	return kind, length
}

// lineTerminatorLen matches \r?\n at i.
func (l *Lexer) lineTerminatorLen(i int) int {
	if i < len(l.src) && l.src[i] == '\n' {
		return 1
	}
	if i+1 < len(l.src) && l.src[i] == '\r' && l.src[i+1] == '\n' {
		return 2
	}
	return 0
}

// whitespaceLen matches a run of white space that stops short of any line
// terminator, so that line counting never gets swallowed.
func (l *Lexer) whitespaceLen() int {
	i := l.pos
	for i < len(l.src) && unicode.IsSpace(l.src[i]) && l.lineTerminatorLen(i) == 0 {
		i++
	}
	return i - l.pos
}

func (l *Lexer) identifierLen() int {
	if l.pos >= len(l.src) || !isIdentifierStart(l.src[l.pos]) {
		return 0
	}
	i := l.pos + 1
	for i < len(l.src) && isIdentifierPart(l.src[i]) {
		i++
	}
	return i - l.pos
}

func (l *Lexer) numericLen() int {
	i := l.pos
	for i < len(l.src) && isNumericPart(l.src[i]) {
		i++
	}
	return i - l.pos
}

// scanString consumes a quoted string body starting at i. A backslash always
// takes the following character with it.
func (l *Lexer) scanString(i int, quote rune) int {
	for i < len(l.src) {
		c := l.src[i]
		if c == '\\' {
			i += 2
			continue
		}
		i++
		if c == quote {
			break
		}
	}
	return min(i, len(l.src))
}

// scanLineComment stops before the next line terminator.
func (l *Lexer) scanLineComment(i int) int {
	for i < len(l.src) && l.lineTerminatorLen(i) == 0 {
		i++
	}
	return i
}

// scanBlockComment consumes through the closing "*/". A backslash escapes the
// character after it.
func (l *Lexer) scanBlockComment(i int) int {
	for i < len(l.src) {
		switch {
		case l.src[i] == '\\':
			i += 2
		case l.src[i] == '*' && i+1 < len(l.src) && l.src[i+1] == '/':
			return i + 2
		default:
			i++
		}
	}
	return min(i, len(l.src))
}

// advanceTo moves the cursor to end, counting any line terminators inside the
// consumed span.
func (l *Lexer) advanceTo(end int) {
	for l.pos < end {
		if n := l.lineTerminatorLen(l.pos); n > 0 && l.pos+n <= end {
			l.pos += n
			l.line++
			l.col = 1
			continue
		}
		l.pos++
		l.col++
	}
}

func isIdentifierStart(r rune) bool {
	return r == '_' || r == '$' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}

func isNumericPart(r rune) bool {
	return isDigit(r) || r == '_' || r == '.'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
