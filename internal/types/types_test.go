package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseSeverity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"", SeverityError, false},
		{"error", SeverityError, false},
		{"WARNING", SeverityWarning, false},
		{"info", SeverityInfo, false},
		{"off", SeverityOff, false},
		{"fatal", SeverityError, true},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.Equal(t, "unknown", Severity(42).String())
}

func TestConfigRuleYAML(t *testing.T) {
	t.Parallel()
	src := `
no-eval:
  pattern: eval(
  message: eval is dangerous
  severity: warning
quiet:
  pattern: debugger
  severity: off
`
	var rules map[string]ConfigRule
	require.NoError(t, yaml.Unmarshal([]byte(src), &rules))
	assert.Equal(t, ConfigRule{Pattern: "eval(", Message: "eval is dangerous", Severity: SeverityWarning}, rules["no-eval"])
	assert.Equal(t, SeverityOff, rules["quiet"].Severity)

	out, err := yaml.Marshal(rules["no-eval"])
	require.NoError(t, err)
	assert.Contains(t, string(out), "severity: warning")

	var bad ConfigRule
	assert.Error(t, yaml.Unmarshal([]byte("pattern: x\nseverity: loud\n"), &bad))
}

func TestMatchJSON(t *testing.T) {
	t.Parallel()
	m := Match{Rule: "r", Filename: "a.js", Message: "m", Severity: SeverityInfo}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"severity":"info"`)
}
