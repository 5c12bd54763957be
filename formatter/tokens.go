package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gnolang/eslex/lexer"
)

// FormatTokens renders one token per line: position, kind and quoted text.
func FormatTokens(tokens []lexer.Token) string {
	posWidth, kindWidth := 0, 0
	for _, tok := range tokens {
		posWidth = max(posWidth, len(tok.Range.Start.String()))
		kindWidth = max(kindWidth, len(tok.Kind.String()))
	}

	var builder strings.Builder
	for _, tok := range tokens {
		pos := fmt.Sprintf("%-*s", posWidth, tok.Range.Start.String())
		kind := fmt.Sprintf("%-*s", kindWidth, tok.Kind.String())

		builder.WriteString(lineStyle.Sprint(pos))
		builder.WriteString("  ")
		if tok.Kind == lexer.InvalidToken {
			builder.WriteString(errorStyle.Sprint(kind))
		} else {
			builder.WriteString(kindStyle.Sprint(kind))
		}
		builder.WriteString("  ")
		builder.WriteString(strconv.Quote(tok.Text))
		builder.WriteString("\n")
	}
	return builder.String()
}
