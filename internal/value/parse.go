package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MeexReay/sustlang/internal/types"
)

// Parse builds a value of type t from literal text. Booleans accept
// "1"/"0" next to "true"/"false"; a char literal is its numeric byte
// value; optionals accept "none" or a bracketed inner literal.
// Container and stream types have no literal syntax.
func Parse(t *types.Type, text string) (Value, error) {
	switch t.Kind {
	case types.Bool:
		switch text {
		case "true", "1":
			return NewBool(true), nil
		case "false", "0":
			return NewBool(false), nil
		}
		return nil, fmt.Errorf("%w: %q as bool", ErrParse, text)

	case types.Null:
		return NewNull(), nil

	case types.String:
		return NewString(text), nil

	case types.Integer:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as integer", ErrParse, text)
		}
		return NewInteger(n), nil

	case types.Float:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as float", ErrParse, text)
		}
		return NewFloat(f), nil

	case types.Char:
		n, err := strconv.ParseUint(text, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as char", ErrParse, text)
		}
		return NewChar(byte(n)), nil

	case types.Optional:
		if text == "none" {
			return NewNone(t), nil
		}
		if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
			inner, err := Parse(t.Elem, text[1:len(text)-1])
			if err != nil {
				return nil, err
			}
			return NewSome(t, inner), nil
		}
		return nil, fmt.Errorf("%w: %q as %s", ErrParse, text, t)
	}

	return nil, fmt.Errorf("%w: type %s has no literal form", ErrParse, t)
}
