package value

import (
	"github.com/emirpasic/gods/maps/treemap"

	"github.com/MeexReay/sustlang/internal/types"
)

// Map is an associative container keyed by values of its key type. The
// backing treemap keeps entries ordered by Compare, which makes
// iteration and display deterministic and keeps lookups independent of
// insertion order.
type Map struct {
	T  *types.Type // full map[...] descriptor
	tm *treemap.Map
}

// NewMapValue builds an empty map of descriptor t.
func NewMapValue(t *types.Type) *Map {
	return &Map{T: t, tm: treemap.NewWith(func(a, b interface{}) int {
		return Compare(a.(Value), b.(Value))
	})}
}

func (m *Map) Type() *types.Type { return m.T }
func (m *Map) Inited() bool      { return true }

func (m *Map) Clone() Value {
	c := NewMapValue(m.T)
	m.Each(func(k, v Value) bool {
		c.Put(k.Clone(), v.Clone())
		return true
	})
	return c
}

// Len is the number of entries.
func (m *Map) Len() int { return m.tm.Size() }

// Get looks up the value stored under key.
func (m *Map) Get(key Value) (Value, bool) {
	v, ok := m.tm.Get(key)
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

// Put inserts or replaces the entry for key.
func (m *Map) Put(key, val Value) { m.tm.Put(key, val) }

// Remove deletes the entry for key, reporting whether it existed.
func (m *Map) Remove(key Value) bool {
	if _, ok := m.tm.Get(key); !ok {
		return false
	}
	m.tm.Remove(key)
	return true
}

// Each walks entries in key order until fn returns false.
func (m *Map) Each(fn func(k, v Value) bool) {
	it := m.tm.Iterator()
	for it.Next() {
		if !fn(it.Key().(Value), it.Value().(Value)) {
			return
		}
	}
}
