package value

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Display renders a human-readable form: lists as "[a, b]", maps as
// "{k: v, ...}" in key order, optionals as "(v)" or "none", streams as
// fixed placeholder tokens. A char list renders as UTF-8 text; invalid
// sequences fail with ErrUTF8. Reading an absent payload fails with
// ErrNotInited.
func Display(v Value) (string, error) {
	switch av := v.(type) {
	case *Bool:
		if !av.Ok {
			return "", ErrNotInited
		}
		if av.V {
			return "true", nil
		}
		return "false", nil

	case *String:
		if !av.Ok {
			return "", ErrNotInited
		}
		return av.V, nil

	case *Integer:
		if !av.Ok {
			return "", ErrNotInited
		}
		return strconv.FormatInt(av.V, 10), nil

	case *Float:
		if !av.Ok {
			return "", ErrNotInited
		}
		return strconv.FormatFloat(av.V, 'g', -1, 64), nil

	case *Char:
		if !av.Ok {
			return "", ErrNotInited
		}
		return bytesToText([]byte{av.V})

	case *Null:
		return "null", nil

	case *List:
		if av.T.IsCharList() {
			data, err := ToBytes(av)
			if err != nil {
				return "", err
			}
			return bytesToText(data)
		}
		var sb strings.Builder
		sb.WriteByte('[')
		for i, it := range av.Items {
			if i > 0 {
				sb.WriteString(", ")
			}
			s, err := Display(it)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		}
		sb.WriteByte(']')
		return sb.String(), nil

	case *Map:
		var sb strings.Builder
		var derr error
		sb.WriteByte('{')
		first := true
		av.Each(func(k, v Value) bool {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			ks, err := Display(k)
			if err != nil {
				derr = err
				return false
			}
			vs, err := Display(v)
			if err != nil {
				derr = err
				return false
			}
			sb.WriteString(ks)
			sb.WriteString(": ")
			sb.WriteString(vs)
			return true
		})
		if derr != nil {
			return "", derr
		}
		sb.WriteByte('}')
		return sb.String(), nil

	case *Optional:
		if av.V == nil {
			return "none", nil
		}
		s, err := Display(av.V)
		if err != nil {
			return "", err
		}
		return "(" + s + ")", nil

	case *InStream:
		if av.H == nil {
			return "", ErrNotInited
		}
		return "IN_STREAM", nil

	case *OutStream:
		if av.H == nil {
			return "", ErrNotInited
		}
		return "OUT_STREAM", nil
	}

	return "", ErrTypeMismatch
}

// ToBytes serializes a string, char or char-list value to raw bytes
// for stream writes. Other kinds fail with ErrTypeMismatch.
func ToBytes(v Value) ([]byte, error) {
	switch av := v.(type) {
	case *String:
		if !av.Ok {
			return nil, ErrTypeMismatch
		}
		return []byte(av.V), nil
	case *Char:
		if !av.Ok {
			return nil, ErrTypeMismatch
		}
		return []byte{av.V}, nil
	case *List:
		if !av.T.IsCharList() {
			return nil, ErrTypeMismatch
		}
		data := make([]byte, 0, len(av.Items))
		for _, it := range av.Items {
			ch, err := AsChar(it)
			if err != nil {
				return nil, err
			}
			data = append(data, ch)
		}
		return data, nil
	}
	return nil, ErrTypeMismatch
}

// ToText renders a string, char or char-list value as UTF-8 text.
func ToText(v Value) (string, error) {
	data, err := ToBytes(v)
	if err != nil {
		return "", err
	}
	return bytesToText(data)
}

// FromBytes builds a value of the target's kind from raw stream bytes:
// a string (UTF-8 validated) or a char list. The target only selects
// the representation.
func FromBytes(target Value, data []byte) (Value, error) {
	switch av := target.(type) {
	case *String:
		text, err := bytesToText(data)
		if err != nil {
			return nil, err
		}
		return NewString(text), nil
	case *List:
		if !av.T.IsCharList() {
			return nil, ErrTypeMismatch
		}
		items := make([]Value, len(data))
		for i, b := range data {
			items[i] = NewChar(b)
		}
		return NewList(av.T, items), nil
	}
	return nil, ErrTypeMismatch
}

func bytesToText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrUTF8
	}
	return string(data), nil
}
