// Package eslex exposes the tokenizer and pattern matcher in the plain
// data-in/data-out shape a host application consumes.
package eslex

import (
	"encoding/json"
	"fmt"

	"github.com/gnolang/eslex/lexer"
	"github.com/gnolang/eslex/matcher"
)

// WireToken is the serialized form of a lexer.Token.
type WireToken struct {
	Value string      `json:"value"`
	Token string      `json:"token"`
	Range lexer.Range `json:"range"`
}

// Lex tokenizes text. The result is never nil.
func Lex(text string) []WireToken {
	tokens := lexer.Tokenize(text)
	out := make([]WireToken, len(tokens))
	for i, tok := range tokens {
		out[i] = WireToken{
			Value: tok.Text,
			Token: tok.Kind.String(),
			Range: tok.Range,
		}
	}
	return out
}

// FindRanges returns every range of document where pattern recurs.
func FindRanges(document, pattern string, opts ...matcher.Option) ([]lexer.Range, error) {
	return matcher.FindSource(document, pattern, opts...)
}

// LexJSON is Lex encoded as a JSON array.
func LexJSON(text string) ([]byte, error) {
	return json.Marshal(Lex(text))
}

// FindRangesJSON is FindRanges encoded as a JSON array.
func FindRangesJSON(document, pattern string, opts ...matcher.Option) ([]byte, error) {
	ranges, err := FindRanges(document, pattern, opts...)
	if err != nil {
		return nil, fmt.Errorf("find ranges: %w", err)
	}
	return json.Marshal(ranges)
}
