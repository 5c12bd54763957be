package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLongestPrefix(t *testing.T) {
	t.Parallel()
	tr := FromMap(map[string]int{
		">":    1,
		">>":   2,
		">>>":  3,
		">>>=": 4,
		">=":   5,
		"if":   6,
	})

	tests := []struct {
		name    string
		input   string
		pos     int
		wantVal int
		wantLen int
		wantOK  bool
	}{
		{name: "single", input: ">", wantVal: 1, wantLen: 1, wantOK: true},
		{name: "longest wins", input: ">>>=x", wantVal: 4, wantLen: 4, wantOK: true},
		{name: "falls back to shorter terminal", input: ">>>+", wantVal: 3, wantLen: 3, wantOK: true},
		{name: "non-terminal interior", input: "i", wantOK: false},
		{name: "offset start", input: "a>=b", pos: 1, wantVal: 5, wantLen: 2, wantOK: true},
		{name: "no match", input: "+", wantOK: false},
		{name: "past end", input: ">", pos: 1, wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			val, n, ok := tr.LongestPrefix([]rune(tt.input), tt.pos)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantVal, val)
				assert.Equal(t, tt.wantLen, n)
			}
		})
	}
}

func TestInsertReplacesValue(t *testing.T) {
	t.Parallel()
	tr := New[int]()
	tr.Insert("=", 1)
	tr.Insert("=", 2)

	v, n, ok := tr.LongestPrefix([]rune("="), 0)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, n)
}

func TestDirectArenaOperations(t *testing.T) {
	t.Parallel()
	arena := NewArena[string]()
	for _, key := range []string{"abc", "abd", "ae", "f"} {
		arena.Insert(key, key)
	}

	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{input: "abcx", want: "abc", wantOK: true},
		{input: "abd", want: "abd", wantOK: true},
		{input: "aex", want: "ae", wantOK: true},
		{input: "ab", wantOK: false},
		{input: "fa", want: "f", wantOK: true},
		{input: "", wantOK: false},
	}
	for _, tt := range tests {
		v, n, ok := arena.LongestPrefix([]rune(tt.input), 0)
		assert.Equal(t, tt.wantOK, ok, tt.input)
		if tt.wantOK {
			assert.Equal(t, tt.want, v, tt.input)
			assert.Equal(t, len([]rune(tt.want)), n, tt.input)
		}
	}
}

func TestMultibyteKeys(t *testing.T) {
	t.Parallel()
	tr := New[int]()
	tr.Insert("→", 1)
	tr.Insert("→→", 2)

	v, n, ok := tr.LongestPrefix([]rune("x→→"), 1)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, n)
}
