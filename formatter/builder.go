package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/gnolang/eslex/internal"
	tt "github.com/gnolang/eslex/internal/types"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	infoStyle    = color.New(color.FgHiCyan, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	kindStyle    = color.New(color.FgGreen)
)

var matchTmpl = template.Must(template.New("match").Parse(matchTemplate))

// GenerateFormattedMatches renders matches found in one file, with the source
// lines each match covers.
func GenerateFormattedMatches(matches []tt.Match, source *internal.SourceCode) string {
	var out strings.Builder
	for _, m := range matches {
		if err := matchTmpl.Execute(&out, newMatchView(m, source)); err != nil {
			fmt.Fprintf(&out, "error formatting match: %v\n", err)
		}
	}
	return out.String()
}

// FormatSummary is the closing line of a report. files counts the files
// that had matches.
func FormatSummary(files int, matches []tt.Match) string {
	if len(matches) == 0 {
		return "no matches\n"
	}
	counts := make(map[tt.Severity]int)
	for _, m := range matches {
		counts[m.Severity]++
	}
	return fmt.Sprintf("%s, %s, %s in %d file(s)\n",
		errorStyle.Sprintf("%d error(s)", counts[tt.SeverityError]),
		warningStyle.Sprintf("%d warning(s)", counts[tt.SeverityWarning]),
		infoStyle.Sprintf("%d info", counts[tt.SeverityInfo]),
		files,
	)
}

// matchView is what matchTemplate renders for a single match.
type matchView struct {
	m      tt.Match
	lines  []string
	width  int    // digits in the widest line number
	indent string // leading whitespace shared by the shown lines
}

func newMatchView(m tt.Match, source *internal.SourceCode) matchView {
	v := matchView{
		m:     m,
		lines: source.Lines,
		width: len(strconv.Itoa(m.End.Line)),
	}
	if v.inRange() {
		v.indent = findCommonIndent(v.lines[m.Start.Line-1 : m.End.Line])
	}
	return v
}

func (v matchView) gutter() string {
	return strings.Repeat(" ", v.width+1)
}

func (v matchView) inRange() bool {
	first, last := v.m.Start.Line, v.m.End.Line
	return first > 0 && first <= last && last <= len(v.lines)
}

func (v matchView) Header() string {
	severity := v.m.Severity.String()
	var label string
	switch v.m.Severity {
	case tt.SeverityError:
		label = errorStyle.Sprintf("%s: ", severity)
	case tt.SeverityWarning:
		label = warningStyle.Sprintf("%s: ", severity)
	default:
		label = infoStyle.Sprintf("%s: ", severity)
	}
	return label +
		ruleStyle.Sprintf("%s\n", v.m.Rule) +
		lineStyle.Sprintf("%s--> ", strings.Repeat(" ", v.width)) +
		fileStyle.Sprintf("%s:%s\n", v.m.Filename, v.m.Start)
}

func (v matchView) Snippet() string {
	var b strings.Builder
	b.WriteString(lineStyle.Sprintf("%s|\n", v.gutter()))
	for n := max(v.m.Start.Line, 1); n <= v.m.End.Line && n <= len(v.lines); n++ {
		b.WriteString(lineStyle.Sprintf("%*d | ", v.width, n))
		b.WriteString(expandTabs(strings.TrimPrefix(v.lines[n-1], v.indent)))
		b.WriteByte('\n')
	}
	return b.String()
}

// Underline draws "~" under the matched span, then the message. End columns
// are exclusive; a span crossing lines is underlined from its start column on
// the first line to its end column on the last.
func (v matchView) Underline() string {
	prefix := lineStyle.Sprintf("%s| ", v.gutter())
	if !v.inRange() {
		return prefix + messageStyle.Sprintf("%s\n", v.m.Message)
	}

	shift := calculateVisualColumn(v.indent, utf8.RuneCountInString(v.indent)+1)
	from := max(calculateVisualColumn(v.lines[v.m.Start.Line-1], v.m.Start.Col)-shift, 0)
	to := calculateVisualColumn(v.lines[v.m.End.Line-1], v.m.End.Col) - shift

	return prefix +
		strings.Repeat(" ", from) +
		messageStyle.Sprintf("%s\n", strings.Repeat("~", max(to-from, 1))) +
		lineStyle.Sprintf("%s= ", v.gutter()) +
		messageStyle.Sprintf("%s\n", v.m.Message)
}

// calculateVisualColumn returns how many screen cells precede the 1-based
// character column on line, expanding tabs.
func calculateVisualColumn(line string, column int) int {
	cells := 0
	for i, ch := range []rune(line) {
		if i+1 >= column {
			break
		}
		cells = nextCell(cells, ch)
	}
	return cells
}

func nextCell(cells int, ch rune) int {
	if ch == '\t' {
		return cells + tabWidth - cells%tabWidth
	}
	return cells + 1
}

func expandTabs(line string) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	var b strings.Builder
	cells := 0
	for _, ch := range line {
		next := nextCell(cells, ch)
		if ch == '\t' {
			b.WriteString(strings.Repeat(" ", next-cells))
		} else {
			b.WriteRune(ch)
		}
		cells = next
	}
	return b.String()
}

// findCommonIndent returns the leading whitespace every non-blank line shares.
func findCommonIndent(lines []string) string {
	var indent string
	seen := false
	for _, line := range lines {
		body := strings.TrimLeftFunc(line, unicode.IsSpace)
		if body == "" {
			continue
		}
		lead := line[:len(line)-len(body)]
		if !seen {
			indent, seen = lead, true
			continue
		}
		if indent = sharedPrefix(indent, lead); indent == "" {
			break
		}
	}
	return indent
}

func sharedPrefix(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	for i > 0 && i < len(a) && !utf8.RuneStart(a[i]) {
		i--
	}
	return a[:i]
}
