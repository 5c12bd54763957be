package nolint

import (
	"fmt"
	"strings"

	"github.com/gnolang/eslex/lexer"
)

const (
	ignorePrefix     = "eslex-ignore"
	ignoreFilePrefix = "eslex-ignore-file"
)

// Manager manages ignore scopes and checks if a location is ignored.
type Manager struct {
	// scopes maps filename to a slice of ignore scopes.
	scopes map[string][]ignoreScope
}

// ignoreScope is a span of lines where matches are suppressed.
type ignoreScope struct {
	rules     map[string]struct{} // empty => every rule
	startLine int
	endLine   int
}

// ParseTokens scans the comment tokens of a lexed file for ignore directives.
func ParseTokens(filename string, tokens []lexer.Token) *Manager {
	m := &Manager{scopes: make(map[string][]ignoreScope)}
	m.Add(filename, tokens)
	return m
}

// Add records the directives found in tokens under filename, replacing any
// scopes recorded for it before.
func (m *Manager) Add(filename string, tokens []lexer.Token) {
	scopes := make([]ignoreScope, 0)
	seenCode := false
	for i, tok := range tokens {
		if !tok.IsComment() {
			seenCode = true
			continue
		}
		scope, err := parseDirective(tokens, i, seenCode)
		if err != nil {
			// not a directive, or a malformed one
			continue
		}
		scopes = append(scopes, scope)
	}
	m.scopes[filename] = scopes
}

func parseDirective(tokens []lexer.Token, i int, seenCode bool) (ignoreScope, error) {
	var scope ignoreScope
	comment := tokens[i]
	text := commentBody(comment.Text)

	if strings.HasPrefix(text, ignoreFilePrefix) {
		if seenCode {
			return scope, fmt.Errorf("file directive after code at %s", comment.Range.Start)
		}
		rest, err := ruleList(text[len(ignoreFilePrefix):])
		if err != nil {
			return scope, err
		}
		scope.rules = parseIgnoreRuleNames(rest)
		scope.startLine = 1
		scope.endLine = int(^uint(0) >> 1)
		return scope, nil
	}

	if !strings.HasPrefix(text, ignorePrefix) {
		return scope, fmt.Errorf("not an ignore directive")
	}
	rest, err := ruleList(text[len(ignorePrefix):])
	if err != nil {
		return scope, err
	}
	scope.rules = parseIgnoreRuleNames(rest)

	line := comment.Range.Start.Line
	if isInline(tokens, i) {
		scope.startLine, scope.endLine = line, comment.Range.End.Line
		return scope, nil
	}

	// standalone: covers the comment through the line of the next code token
	scope.startLine, scope.endLine = line, comment.Range.End.Line
	for _, next := range tokens[i+1:] {
		if next.IsComment() {
			continue
		}
		if next.Range.Start.Line <= comment.Range.End.Line+1 {
			scope.endLine = next.Range.Start.Line
		}
		break
	}
	return scope, nil
}

// ruleList validates what follows the directive name: nothing, or a colon and
// at least one rule name.
func ruleList(rest string) (string, error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", nil
	}
	if rest[0] != ':' {
		return "", fmt.Errorf("invalid ignore directive format")
	}
	rest = strings.TrimSpace(rest[1:])
	if rest == "" {
		return "", fmt.Errorf("invalid ignore directive: no rules specified after colon")
	}
	return rest, nil
}

// commentBody strips the comment delimiters.
func commentBody(text string) string {
	switch {
	case strings.HasPrefix(text, "//"):
		text = text[2:]
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(text[2:], "*/")
	}
	return strings.TrimSpace(text)
}

// parseIgnoreRuleNames parses the rule list from the directive.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	rules := strings.Split(text, ",")
	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// isInline reports whether a code token precedes the comment on its line.
func isInline(tokens []lexer.Token, i int) bool {
	line := tokens[i].Range.Start.Line
	for j := i - 1; j >= 0; j-- {
		if tokens[j].Range.End.Line < line {
			return false
		}
		if !tokens[j].IsComment() {
			return true
		}
	}
	return false
}

// IsIgnored checks if a match of ruleName starting at loc in filename is suppressed.
func (m *Manager) IsIgnored(filename string, loc lexer.Location, ruleName string) bool {
	scopes, exists := m.scopes[filename]
	if !exists {
		return false
	}
	for _, s := range scopes {
		if loc.Line < s.startLine || loc.Line > s.endLine {
			continue
		}
		// If the rules list is empty, the directive applies to all rules
		if len(s.rules) == 0 {
			return true
		}
		if _, exists := s.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
