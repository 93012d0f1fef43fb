package value

import (
	"github.com/MeexReay/sustlang/internal/stream"
)

// The typed accessors fail with ErrTypeMismatch when either the variant
// or the presence of the payload does not match, mirroring how the
// dispatch engine treats an absent scalar: unusable, not zero.

func AsBool(v Value) (bool, error) {
	if b, ok := v.(*Bool); ok && b.Ok {
		return b.V, nil
	}
	return false, ErrTypeMismatch
}

func AsString(v Value) (string, error) {
	if s, ok := v.(*String); ok && s.Ok {
		return s.V, nil
	}
	return "", ErrTypeMismatch
}

func AsInteger(v Value) (int64, error) {
	if i, ok := v.(*Integer); ok && i.Ok {
		return i.V, nil
	}
	return 0, ErrTypeMismatch
}

func AsFloat(v Value) (float64, error) {
	if f, ok := v.(*Float); ok && f.Ok {
		return f.V, nil
	}
	return 0, ErrTypeMismatch
}

func AsChar(v Value) (byte, error) {
	if c, ok := v.(*Char); ok && c.Ok {
		return c.V, nil
	}
	return 0, ErrTypeMismatch
}

func AsList(v Value) (*List, error) {
	if l, ok := v.(*List); ok {
		return l, nil
	}
	return nil, ErrTypeMismatch
}

func AsMap(v Value) (*Map, error) {
	if m, ok := v.(*Map); ok {
		return m, nil
	}
	return nil, ErrTypeMismatch
}

func AsOptional(v Value) (*Optional, error) {
	if o, ok := v.(*Optional); ok {
		return o, nil
	}
	return nil, ErrTypeMismatch
}

func AsInStream(v Value) (*stream.In, error) {
	if s, ok := v.(*InStream); ok && s.H != nil {
		return s.H, nil
	}
	return nil, ErrTypeMismatch
}

func AsOutStream(v Value) (*stream.Out, error) {
	if s, ok := v.(*OutStream); ok && s.H != nil {
		return s.H, nil
	}
	return nil, ErrTypeMismatch
}

// Truthy is the to-bool coercion table: empty containers, empty
// optionals, zero scalars, absent payloads and null are false;
// non-empty, non-zero and any open stream are true. A string is true
// only when it spells "true" or "1".
func Truthy(v Value) bool {
	switch av := v.(type) {
	case *Bool:
		return av.Ok && av.V
	case *String:
		return av.Ok && (av.V == "true" || av.V == "1")
	case *Integer:
		return av.Ok && av.V != 0
	case *Float:
		return av.Ok && av.V != 0
	case *Char:
		return av.Ok && av.V != 0
	case *List:
		return len(av.Items) > 0
	case *Map:
		return av.Len() > 0
	case *Optional:
		return av.V != nil
	case *InStream:
		return av.H != nil
	case *OutStream:
		return av.H != nil
	}
	return false
}
