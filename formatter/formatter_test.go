package formatter

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/gnolang/eslex/internal"
	tt "github.com/gnolang/eslex/internal/types"
	"github.com/gnolang/eslex/lexer"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func loc(line, col int) lexer.Location {
	return lexer.Location{Line: line, Col: col}
}

func TestGenerateFormattedMatches(t *testing.T) {
	t.Parallel()
	code := internal.NewSourceCode(`function main() {
    let x = eval(s)
    if (x) {}
}`)

	matches := []tt.Match{
		{
			Rule:     "no-eval",
			Filename: "test.js",
			Severity: tt.SeverityError,
			Start:    loc(2, 13),
			End:      loc(2, 18),
			Message:  "eval is dangerous",
		},
		{
			Rule:     "empty-if",
			Filename: "test.js",
			Severity: tt.SeverityWarning,
			Start:    loc(3, 5),
			End:      loc(3, 14),
			Message:  "empty branch",
		},
	}

	expected := `error: no-eval
 --> test.js:2:13
  |
2 | let x = eval(s)
  |         ~~~~~
  = eval is dangerous

warning: empty-if
 --> test.js:3:5
  |
3 | if (x) {}
  | ~~~~~~~~~
  = empty branch

`

	assert.Equal(t, expected, GenerateFormattedMatches(matches, code))
}

func TestGenerateFormattedMatchesMultiLine(t *testing.T) {
	t.Parallel()
	code := internal.NewSourceCode("\tfoo(\n\t\ta,\n\t)")

	matches := []tt.Match{{
		Rule:     "multi",
		Filename: "m.js",
		Severity: tt.SeverityInfo,
		Start:    loc(1, 2),
		End:      loc(3, 3),
		Message:  "spans lines",
	}}

	expected := `info: multi
 --> m.js:1:2
  |
1 | foo(
2 |         a,
3 | )
  | ~
  = spans lines

`
	assert.Equal(t, expected, GenerateFormattedMatches(matches, code))
}

func TestGenerateFormattedMatchesOutOfRange(t *testing.T) {
	t.Parallel()
	code := internal.NewSourceCode("x")
	matches := []tt.Match{{
		Rule:     "stale",
		Filename: "s.js",
		Start:    loc(7, 1),
		End:      loc(7, 2),
		Message:  "file changed",
	}}

	expected := `error: stale
 --> s.js:7:1
  |
  | file changed

`
	assert.Equal(t, expected, GenerateFormattedMatches(matches, code))
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()
	got := FormatTokens(lexer.Tokenize("let s = 'a'\n;"))
	expected := `1:1  LetKeyword   "let"
1:5  Identifier   "s"
1:7  Assign       "="
1:9  SingleQuote  "'a'"
2:1  Semicolon    ";"
`
	assert.Equal(t, expected, got)
	assert.Empty(t, FormatTokens(nil))
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "no matches\n", FormatSummary(0, nil))

	matches := []tt.Match{
		{Severity: tt.SeverityError},
		{Severity: tt.SeverityWarning},
		{Severity: tt.SeverityWarning},
	}
	assert.Equal(t, "1 error(s), 2 warning(s), 0 info in 2 file(s)\n", FormatSummary(2, matches))
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line   string
		column int
		want   int
	}{
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"abc", 4, 3},
		{"\tx", 2, 8},
		{"ab\tx", 4, 8},
		{"éé", 2, 1},
		{"abc", -1, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, calculateVisualColumn(tc.line, tc.column), "%q col %d", tc.line, tc.column)
	}
}

func TestFindCommonIndent(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "  ", findCommonIndent([]string{"    a", "", "  b"}))
	assert.Equal(t, "", findCommonIndent([]string{"a", "  b"}))
	assert.Equal(t, "", findCommonIndent(nil))
	assert.Equal(t, "\t", findCommonIndent([]string{"\ta", "\t\tb"}))
}
