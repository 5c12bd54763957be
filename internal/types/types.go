package types

import (
	"fmt"
	"strings"

	"github.com/gnolang/eslex/lexer"
)

// Match is a located rule hit found in a source file.
type Match struct {
	Rule     string         `json:"rule"`
	Filename string         `json:"filename"`
	Message  string         `json:"message"`
	Severity Severity       `json:"severity"`
	Start    lexer.Location `json:"start"`
	End      lexer.Location `json:"end"`
}

// Severity is how loudly a rule reports.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

var severityNames = [...]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
	SeverityOff:     "off",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// ParseSeverity is case-insensitive. An empty string means error.
func ParseSeverity(s string) (Severity, error) {
	if s == "" {
		return SeverityError, nil
	}
	for i, name := range severityNames {
		if strings.EqualFold(s, name) {
			return Severity(i), nil
		}
	}
	return SeverityError, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ConfigRule is one user-defined rule: a pattern to look for and what to say
// when it is found.
type ConfigRule struct {
	Pattern  string   `yaml:"pattern"`
	Message  string   `yaml:"message,omitempty"`
	Severity Severity `yaml:"severity"`
}
