package lexer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindNamesRoundTrip(t *testing.T) {
	t.Parallel()
	for k := InvalidToken; k < numKinds; k++ {
		name := k.String()
		require.NotEmpty(t, name, "kind %d has no name", int(k))

		got, ok := KindFromString(name)
		assert.True(t, ok, name)
		assert.Equal(t, k, got, name)
	}
	assert.Equal(t, "Unknown", numKinds.String())
	assert.Equal(t, "Unknown", TokenKind(-1).String())
}

func TestEveryLiteralLexesAlone(t *testing.T) {
	t.Parallel()
	for spelling, want := range literals {
		tokens := Tokenize(spelling)
		require.Len(t, tokens, 1, "spelling %q", spelling)
		assert.Equal(t, want, tokens[0].Kind, "spelling %q", spelling)
		assert.Equal(t, spelling, tokens[0].Text)
	}
}

func TestKindFamily(t *testing.T) {
	t.Parallel()
	tests := []struct {
		kind   TokenKind
		family string
		open   bool
	}{
		{LeftParen, "Paren", true},
		{RightParen, "Paren", false},
		{LeftBrace, "Brace", true},
		{RightBrace, "Brace", false},
		{LeftBracket, "Bracket", true},
		{RightBracket, "Bracket", false},
		{Identifier, "", false},
	}
	for _, tt := range tests {
		family, open := tt.kind.Family()
		assert.Equal(t, tt.family, family, tt.kind.String())
		assert.Equal(t, tt.open, open, tt.kind.String())
	}
}

func TestKindJSON(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal([]TokenKind{ConstKeyword, Comment})
	require.NoError(t, err)
	assert.JSONEq(t, `["ConstKeyword","Comment"]`, string(b))

	var decoded []TokenKind
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, []TokenKind{ConstKeyword, Comment}, decoded)

	var bad TokenKind
	err = json.Unmarshal([]byte(`"NotAKind"`), &bad)
	var unknown *UnknownKindError
	assert.ErrorAs(t, err, &unknown)
}

func TestStripComments(t *testing.T) {
	t.Parallel()
	tokens := Tokenize("a /* x */ b // y")
	assert.Equal(t, []string{"a", "b"}, texts(StripComments(tokens)))
}
