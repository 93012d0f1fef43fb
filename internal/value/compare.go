package value

import (
	"math"
	"strings"
)

// Equal reports full value equality: scalars by value, containers
// element-wise, maps as order-independent sets of key/value pairs,
// streams by handle identity. Two absent payloads of the same kind are
// equal; an absent payload never equals a present one.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case *Bool:
		bv, ok := b.(*Bool)
		return ok && av.Ok == bv.Ok && (!av.Ok || av.V == bv.V)
	case *String:
		bv, ok := b.(*String)
		return ok && av.Ok == bv.Ok && (!av.Ok || av.V == bv.V)
	case *Integer:
		bv, ok := b.(*Integer)
		return ok && av.Ok == bv.Ok && (!av.Ok || av.V == bv.V)
	case *Float:
		bv, ok := b.(*Float)
		return ok && av.Ok == bv.Ok && (!av.Ok || av.V == bv.V)
	case *Char:
		bv, ok := b.(*Char)
		return ok && av.Ok == bv.Ok && (!av.Ok || av.V == bv.V)
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		equal := true
		av.Each(func(k, v Value) bool {
			other, found := bv.Get(k)
			if !found || !Equal(v, other) {
				equal = false
				return false
			}
			return true
		})
		return equal
	case *Optional:
		bv, ok := b.(*Optional)
		if !ok {
			return false
		}
		if av.V == nil || bv.V == nil {
			return av.V == nil && bv.V == nil
		}
		return Equal(av.V, bv.V)
	case *InStream:
		bv, ok := b.(*InStream)
		return ok && av.H == bv.H
	case *OutStream:
		bv, ok := b.(*OutStream)
		return ok && av.H == bv.H
	}
	return false
}

// kindRank orders the variants for cross-kind comparison; within the
// script every map is keyed by a single type, so cross-kind ordering
// only has to be total and stable.
func kindRank(v Value) int { return int(v.Type().Kind) }

// Compare is a total order over values, consistent with Equal. It backs
// the ordered map payload.
func Compare(a, b Value) int {
	if ra, rb := kindRank(a), kindRank(b); ra != rb {
		return ra - rb
	}
	if ia, ib := a.Inited(), b.Inited(); ia != ib {
		if ia {
			return 1
		}
		return -1
	}
	if !a.Inited() {
		return 0
	}

	switch av := a.(type) {
	case *Bool:
		bv := b.(*Bool)
		switch {
		case av.V == bv.V:
			return 0
		case bv.V:
			return -1
		default:
			return 1
		}
	case *String:
		return strings.Compare(av.V, b.(*String).V)
	case *Integer:
		return cmpInt64(av.V, b.(*Integer).V)
	case *Float:
		return cmpFloat64(av.V, b.(*Float).V)
	case *Char:
		return int(av.V) - int(b.(*Char).V)
	case *Null:
		return 0
	case *List:
		bv := b.(*List)
		for i := 0; i < len(av.Items) && i < len(bv.Items); i++ {
			if c := Compare(av.Items[i], bv.Items[i]); c != 0 {
				return c
			}
		}
		return len(av.Items) - len(bv.Items)
	case *Map:
		bv := b.(*Map)
		if c := av.Len() - bv.Len(); c != 0 {
			return c
		}
		ea, eb := entries(av), entries(bv)
		for i := range ea {
			if c := Compare(ea[i][0], eb[i][0]); c != 0 {
				return c
			}
			if c := Compare(ea[i][1], eb[i][1]); c != 0 {
				return c
			}
		}
		return 0
	case *Optional:
		bv := b.(*Optional)
		if av.V == nil || bv.V == nil {
			switch {
			case av.V == nil && bv.V == nil:
				return 0
			case av.V == nil:
				return -1
			default:
				return 1
			}
		}
		return Compare(av.V, bv.V)
	case *InStream:
		return strings.Compare(av.H.ID().String(), b.(*InStream).H.ID().String())
	case *OutStream:
		return strings.Compare(av.H.ID().String(), b.(*OutStream).H.ID().String())
	}
	return 0
}

// cmpFloat64 orders NaN before every other float so the comparator
// stays total; a NaN key never lands on an ordinary key's slot.
func cmpFloat64(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func entries(m *Map) [][2]Value {
	out := make([][2]Value, 0, m.Len())
	m.Each(func(k, v Value) bool {
		out = append(out, [2]Value{k, v})
		return true
	})
	return out
}
