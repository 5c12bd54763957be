package trie

/*
Arena-based Trie

Nodes live in one contiguous slice and refer to their children by index,
so a table of a few hundred fixed spellings costs a single allocation and
lookups walk a compact, cache-friendly array.

The trie is keyed by rune. LongestPrefix walks the input from a starting
position and remembers the deepest terminal node it passed, which is exactly
the maximal-munch question a scanner asks of its literal-token table.
*/

// NodeIndex represents the index of a trie node.
type NodeIndex int

const root NodeIndex = 0

// Arena is a memory pool that stores all trie nodes.
type Arena[V any] struct {
	nodes []arenaNode[V]
}

type arenaNode[V any] struct {
	// children maps the next rune to the index of the child node.
	children map[rune]NodeIndex
	// isEnd marks a node that terminates an inserted key.
	isEnd bool
	value V
}

// NewArena creates a new arena holding only the root node.
func NewArena[V any]() *Arena[V] {
	arena := &Arena[V]{
		nodes: make([]arenaNode[V], 0, 512),
	}
	arena.nodes = append(arena.nodes, arenaNode[V]{children: make(map[rune]NodeIndex)})
	return arena
}

func (a *Arena[V]) newNode() NodeIndex {
	idx := NodeIndex(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode[V]{children: make(map[rune]NodeIndex)})
	return idx
}

// Insert stores value under key, replacing any previous value.
func (a *Arena[V]) Insert(key string, value V) {
	current := root
	for _, r := range key {
		childIdx, exists := a.nodes[current].children[r]
		if !exists {
			childIdx = a.newNode()
			a.nodes[current].children[r] = childIdx
		}
		current = childIdx
	}
	a.nodes[current].isEnd = true
	a.nodes[current].value = value
}

// LongestPrefix returns the value of the longest inserted key that is a
// prefix of src[pos:], and that key's length in runes.
func (a *Arena[V]) LongestPrefix(src []rune, pos int) (value V, length int, ok bool) {
	current := root
	for i := pos; i < len(src); i++ {
		next, exists := a.nodes[current].children[src[i]]
		if !exists {
			break
		}
		current = next
		if a.nodes[current].isEnd {
			value, length, ok = a.nodes[current].value, i-pos+1, true
		}
	}
	return value, length, ok
}

// Trie wraps an Arena behind a smaller API.
type Trie[V any] struct {
	arena *Arena[V]
}

// New returns an initialized Trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{arena: NewArena[V]()}
}

// FromMap builds a trie holding every key of m.
func FromMap[V any](m map[string]V) *Trie[V] {
	t := New[V]()
	for k, v := range m {
		t.Insert(k, v)
	}
	return t
}

func (t *Trie[V]) Insert(key string, value V) {
	t.arena.Insert(key, value)
}

func (t *Trie[V]) LongestPrefix(src []rune, pos int) (V, int, bool) {
	return t.arena.LongestPrefix(src, pos)
}
