package lexer

import "fmt"

// Location is a point in the source text. Offset counts characters (Unicode
// scalar values) from the start of the input and is 0-based; Line and Col are
// 1-based.
type Location struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Col    int `json:"col"`
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// Range spans [Start, End): End is one character past the last spanned character.
type Range struct {
	Start Location `json:"start"`
	End   Location `json:"end"`
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Token is a classified, positioned span of source text.
type Token struct {
	Text  string
	Kind  TokenKind
	Range Range
}

// Same reports whether two tokens agree on text and kind, ignoring position.
func (t Token) Same(other Token) bool {
	return t.Kind == other.Kind && t.Text == other.Text
}

func (t Token) IsComment() bool {
	return t.Kind == Comment
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Range.Start)
}

// StripComments returns the tokens that are not comments, preserving order.
func StripComments(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.IsComment() {
			out = append(out, tok)
		}
	}
	return out
}
